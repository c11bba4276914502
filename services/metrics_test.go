package services

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stayradar/rentadmin_backend/models"
)

func approvedBooking(propertyID primitive.ObjectID, from, to time.Time) models.Booking {
	return models.Booking{
		ID:         primitive.NewObjectID(),
		PropertyID: propertyID,
		Status:     models.BookingStatusApproved,
		FromDate:   from,
		ToDate:     to,
	}
}

func TestLiveMRR(t *testing.T) {
	now := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	from := now.AddDate(0, 0, -10)
	to := now.AddDate(0, 0, 10)

	propA := primitive.NewObjectID()
	propB := primitive.NewObjectID()
	missing := primitive.NewObjectID()

	bookings := []models.Booking{
		approvedBooking(propA, from, to),
		approvedBooking(propB, from, to),
		approvedBooking(missing, from, to), // property lookup failed: contributes 0
		approvedBooking(propA, now.AddDate(0, 0, 5), to), // not started yet
	}

	pending := approvedBooking(propA, from, to)
	pending.Status = models.BookingStatusPending
	bookings = append(bookings, pending)

	properties := map[primitive.ObjectID]models.Property{
		propA: {ID: propA, Price: 1200.50},
		propB: {ID: propB, Price: 800},
	}

	if got := LiveMRR(bookings, properties, now); got != 2000.50 {
		t.Errorf("LiveMRR = %v, want 2000.50", got)
	}
}

func TestOccupancyRateZeroDenominator(t *testing.T) {
	now := time.Now()
	bookings := []models.Booking{
		approvedBooking(primitive.NewObjectID(), now.AddDate(0, 0, -1), now.AddDate(0, 0, 1)),
	}

	if got := OccupancyRate(bookings, 0, now); got != 0 {
		t.Errorf("OccupancyRate with 0 approved properties = %v, want 0", got)
	}
}

func TestOccupancyRateDistinctProperties(t *testing.T) {
	now := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	prop := primitive.NewObjectID()

	// Two active bookings on the same property count once.
	bookings := []models.Booking{
		approvedBooking(prop, now.AddDate(0, 0, -5), now.AddDate(0, 0, 5)),
		approvedBooking(prop, now.AddDate(0, 0, -2), now.AddDate(0, 0, 8)),
	}

	if got := OccupancyRate(bookings, 3, now); got != 33.33 {
		t.Errorf("OccupancyRate = %v, want 33.33", got)
	}
}

func TestMonthOverMonthChange(t *testing.T) {
	now := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC)

	payments := []models.Payment{
		mkPayment(500, models.PaymentStatusPaid, thisMonth),
		mkPayment(1000, models.PaymentStatusPaid, lastMonth),
	}

	current, previous, change := MonthOverMonthChange(payments, now)
	if current != 500 || previous != 1000 {
		t.Errorf("current/previous = %v/%v, want 500/1000", current, previous)
	}
	if change != -50 {
		t.Errorf("change = %v, want -50", change)
	}
}

func TestMonthOverMonthChangeZeroPrevious(t *testing.T) {
	now := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	payments := []models.Payment{
		mkPayment(500, models.PaymentStatusPaid, time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC)),
	}

	_, previous, change := MonthOverMonthChange(payments, now)
	if previous != 0 {
		t.Fatalf("previous = %v, want 0", previous)
	}
	if change != 0 {
		t.Errorf("change with zero previous month = %v, want 0 (no division)", change)
	}
}

func TestPlatformProfit(t *testing.T) {
	now := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC)

	transferred := mkPayment(1000, models.PaymentStatusPaid, created)
	transferred.PayoutStatus = models.PayoutStatusTransferred
	transferred.OwnerAmount = 900

	allocated := mkPayment(500, models.PaymentStatusPaid, created)
	allocated.PayoutStatus = models.PayoutStatusAllocated
	allocated.OwnerAmount = 450 // not yet transferred, not deducted

	payments := []models.Payment{transferred, allocated}

	// realized 1500 - transferred owner share 900
	if got := PlatformProfit(payments, now); got != 600 {
		t.Errorf("PlatformProfit = %v, want 600", got)
	}
}

func TestRealizedMRRCurrentMonthOnly(t *testing.T) {
	now := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	payments := []models.Payment{
		mkPayment(250, models.PaymentStatusPaid, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)),
		mkPayment(100, models.PaymentStatusPaid, time.Date(2026, time.July, 31, 23, 59, 59, 0, time.UTC)),
		mkPayment(75, models.PaymentStatusPending, time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)),
	}

	if got := RealizedMRR(payments, now); got != 250 {
		t.Errorf("RealizedMRR = %v, want 250", got)
	}
}
