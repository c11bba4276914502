package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stayradar/rentadmin_backend/models"
)

// hardRowCap bounds every aggregation scan so a read-model request can
// never pull an unbounded result set.
const hardRowCap = 5000

// AnalyticsRepository serves the window-bounded, read-only scans behind the
// metrics, aging and churn passes.
type AnalyticsRepository struct {
	payments   *mongo.Collection
	bookings   *mongo.Collection
	properties *mongo.Collection
	agreements *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{
		payments:   db.Collection("payments"),
		bookings:   db.Collection("bookings"),
		properties: db.Collection("properties"),
		agreements: db.Collection("agreements"),
	}
}

// PaymentsSince returns payments created at or after since, all statuses.
func (r *AnalyticsRepository) PaymentsSince(ctx context.Context, since time.Time) ([]models.Payment, error) {
	opts := options.Find().SetLimit(hardRowCap).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.payments.Find(ctx, bson.M{"createdAt": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// PendingPayouts returns paid payments whose owner share has not been
// transferred yet, regardless of age.
func (r *AnalyticsRepository) PendingPayouts(ctx context.Context) ([]models.Payment, error) {
	filter := bson.M{
		"status":       models.PaymentStatusPaid,
		"payoutStatus": bson.M{"$ne": models.PayoutStatusTransferred},
	}
	opts := options.Find().SetLimit(hardRowCap).SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.payments.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// ApprovedBookingsEndingBetween returns approved bookings whose end date
// falls within [from, to]. Feeds the churn scorer and the unsigned
// agreement rule.
func (r *AnalyticsRepository) ApprovedBookingsEndingBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status": models.BookingStatusApproved,
		"toDate": bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetLimit(hardRowCap)
	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ActiveApprovedBookings returns approved bookings covering now.
func (r *AnalyticsRepository) ActiveApprovedBookings(ctx context.Context, now time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status":   models.BookingStatusApproved,
		"fromDate": bson.M{"$lte": now},
		"toDate":   bson.M{"$gte": now},
	}
	opts := options.Find().SetLimit(hardRowCap)
	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// PropertiesByIDs loads the referenced properties into a lookup map. A
// missing property is simply absent from the map; the metrics engine treats
// that as a zero contribution.
func (r *AnalyticsRepository) PropertiesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Property, error) {
	result := make(map[primitive.ObjectID]models.Property, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := r.properties.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	for _, p := range properties {
		result[p.ID] = p
	}
	return result, nil
}

// CountApprovedProperties is the occupancy denominator.
func (r *AnalyticsRepository) CountApprovedProperties(ctx context.Context) (int64, error) {
	return r.properties.CountDocuments(ctx, bson.M{"status": models.PropertyStatusApproved})
}

// AgreementsForBookings loads agreements keyed by booking id.
func (r *AnalyticsRepository) AgreementsForBookings(ctx context.Context, bookingIDs []primitive.ObjectID) (map[primitive.ObjectID]*models.Agreement, error) {
	result := make(map[primitive.ObjectID]*models.Agreement, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return result, nil
	}

	cursor, err := r.agreements.Find(ctx, bson.M{"bookingId": bson.M{"$in": bookingIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var agreements []models.Agreement
	if err := cursor.All(ctx, &agreements); err != nil {
		return nil, err
	}
	for i := range agreements {
		result[agreements[i].BookingID] = &agreements[i]
	}
	return result, nil
}
