package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stayradar/rentadmin_backend/middleware"
	"github.com/stayradar/rentadmin_backend/models"
	"github.com/stayradar/rentadmin_backend/utils"
)

// PaymentController serves the list surfaces operators use to find the
// payment or booking to act on.
type PaymentController struct {
	db *mongo.Database
}

// NewPaymentController creates a new payment controller
func NewPaymentController(db *mongo.Database) *PaymentController {
	return &PaymentController{db: db}
}

func paginationParams(c echo.Context) (page, limit int64) {
	page = 1
	limit = 20
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return page, limit
}

// GetPayments lists payments, newest first, filterable by status and
// payout status.
func (pc *PaymentController) GetPayments(c echo.Context) error {
	ctx := context.Background()

	filter := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}
	if payoutStatus := c.QueryParam("payoutStatus"); payoutStatus != "" {
		filter["payoutStatus"] = payoutStatus
	}

	page, limit := paginationParams(c)

	collection := pc.db.Collection("payments")
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error counting payments", Cause: err})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error retrieving payments", Cause: err})
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error decoding payments", Cause: err})
	}

	return c.JSON(http.StatusOK, models.PaymentsResponse{
		Status:  http.StatusOK,
		Message: "Payments retrieved successfully",
		Data:    payments,
		Total:   total,
	})
}

// GetBookings lists bookings, newest first, filterable by status.
func (pc *PaymentController) GetBookings(c echo.Context) error {
	ctx := context.Background()

	filter := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}

	page, limit := paginationParams(c)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := pc.db.Collection("bookings").Find(ctx, filter, opts)
	if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error retrieving bookings", Cause: err})
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error decoding bookings", Cause: err})
	}

	return c.JSON(http.StatusOK, models.BookingsResponse{
		Status:  http.StatusOK,
		Message: "Bookings retrieved successfully",
		Data:    bookings,
	})
}

// UpdateBookingStatus approves or rejects a booking.
func (pc *PaymentController) UpdateBookingStatus(c echo.Context) error {
	ctx := context.Background()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}
	adminID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid admin ID",
		})
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Invalid booking ID"})
	}

	var request models.BookingStatusUpdateRequest
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Invalid request body"})
	}
	if err := c.Validate(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Invalid booking status"})
	}

	var booking models.Booking
	err = pc.db.Collection("bookings").FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return errorJSON(c, &utils.NotFoundError{Message: "Booking not found"})
	}
	if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error finding booking", Cause: err})
	}

	now := time.Now()
	booking.Status = request.Status
	if request.AdminNote != "" {
		booking.AdminNote = request.AdminNote
	}
	booking.UpdatedAt = now

	set := bson.M{"status": booking.Status, "updatedAt": now}
	if request.AdminNote != "" {
		set["adminNote"] = booking.AdminNote
	}
	if _, err := pc.db.Collection("bookings").UpdateOne(ctx, bson.M{"_id": bookingID}, bson.M{"$set": set}); err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Failed to update booking status", Cause: err})
	}

	utils.SaveAuditLog(pc.db, adminID, "booking_status_updated", "booking", bookingID, bson.M{
		"status": booking.Status,
	})

	return c.JSON(http.StatusOK, models.BookingResponse{
		Status:  http.StatusOK,
		Message: "Booking status updated successfully",
		Data:    &booking,
	})
}

// GetAuditLogs lists audit events, newest first.
func (pc *PaymentController) GetAuditLogs(c echo.Context) error {
	ctx := context.Background()

	filter := bson.M{}
	if entityType := c.QueryParam("entityType"); entityType != "" {
		filter["entityType"] = entityType
	}
	if action := c.QueryParam("action"); action != "" {
		filter["action"] = action
	}

	page, limit := paginationParams(c)

	collection := pc.db.Collection("auditLogs")
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error counting audit logs", Cause: err})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error retrieving audit logs", Cause: err})
	}
	defer cursor.Close(ctx)

	var logs []models.AuditLog
	if err := cursor.All(ctx, &logs); err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error decoding audit logs", Cause: err})
	}

	return c.JSON(http.StatusOK, models.AuditLogsResponse{
		Status:  http.StatusOK,
		Message: "Audit logs retrieved successfully",
		Data:    logs,
		Total:   total,
	})
}
