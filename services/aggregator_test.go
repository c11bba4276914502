package services

import (
	"testing"
	"time"

	"github.com/stayradar/rentadmin_backend/models"
)

func mkPayment(amount float64, status string, createdAt time.Time) models.Payment {
	return models.Payment{
		Amount:    amount,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestMonthWindowBounds(t *testing.T) {
	d := time.Date(2026, time.August, 15, 13, 45, 0, 0, time.UTC)
	start, end := MonthWindow(d)

	wantStart := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	wantEnd := time.Date(2026, time.August, 31, 23, 59, 59, 999000000, time.UTC)
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestMonthWindowInclusive(t *testing.T) {
	d := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	start, end := MonthWindow(d)

	lastInstant := time.Date(2026, time.August, 31, 23, 59, 59, 999000000, time.UTC)
	nextMonth := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	payments := []models.Payment{
		mkPayment(100, models.PaymentStatusPaid, lastInstant),
		mkPayment(50, models.PaymentStatusPaid, nextMonth),
		mkPayment(25, models.PaymentStatusFailed, lastInstant),
	}

	if got := SumPaidAmount(payments, start, end); got != 100 {
		t.Errorf("SumPaidAmount = %v, want 100 (last instant in, next month and failed out)", got)
	}
}

func TestTrailingMonthlyRevenue(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	payments := []models.Payment{
		mkPayment(300, models.PaymentStatusPaid, time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)),
		mkPayment(200, models.PaymentStatusPaid, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)),
		mkPayment(100, models.PaymentStatusPaid, time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)),
		mkPayment(999, models.PaymentStatusFailed, time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)),
		mkPayment(50, models.PaymentStatusPaid, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)), // outside window
	}

	points := TrailingMonthlyRevenue(payments, now, 3)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	wantMonths := []string{"2026-06", "2026-07", "2026-08"}
	wantRevenue := []float64{300, 0, 300}
	wantCount := []int{1, 0, 2}
	for i, p := range points {
		if p.Month != wantMonths[i] {
			t.Errorf("point %d month = %q, want %q (ascending keys)", i, p.Month, wantMonths[i])
		}
		if p.Revenue != wantRevenue[i] {
			t.Errorf("point %d revenue = %v, want %v", i, p.Revenue, wantRevenue[i])
		}
		if p.Count != wantCount[i] {
			t.Errorf("point %d count = %d, want %d", i, p.Count, wantCount[i])
		}
	}
}

// Rounding happens once at the exposure boundary, not per payment: two
// amounts that would each round down still carry their fractions into the
// monthly sum.
func TestTrailingMonthlyRevenueRoundsAtBoundaryOnly(t *testing.T) {
	now := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC)
	payments := []models.Payment{
		mkPayment(10.004, models.PaymentStatusPaid, created),
		mkPayment(10.004, models.PaymentStatusPaid, created),
	}

	points := TrailingMonthlyRevenue(payments, now, 1)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	// 20.008 rounds to 20.01; rounding each payment first would give 20.00.
	if points[0].Revenue != 20.01 {
		t.Errorf("revenue = %v, want 20.01", points[0].Revenue)
	}
}

func TestBuildPaymentHealth(t *testing.T) {
	now := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	inWindow := now.AddDate(0, 0, -2)
	outOfWindow := now.AddDate(0, 0, -10)

	payments := []models.Payment{}
	for i := 0; i < 6; i++ {
		payments = append(payments, mkPayment(100, models.PaymentStatusPaid, inWindow))
	}
	payments = append(payments,
		mkPayment(100, models.PaymentStatusFailed, inWindow),
		mkPayment(100, models.PaymentStatusFailed, inWindow),
		mkPayment(100, models.PaymentStatusFailed, outOfWindow),
	)

	health := BuildPaymentHealth(payments, now)
	if health.Total != 8 {
		t.Errorf("total = %d, want 8", health.Total)
	}
	if health.Failed != 2 {
		t.Errorf("failed = %d, want 2", health.Failed)
	}
	if health.Paid != 6 {
		t.Errorf("paid = %d, want 6", health.Paid)
	}
	if health.FailedRatePct != 25.0 {
		t.Errorf("failedRatePct = %v, want 25.0", health.FailedRatePct)
	}
}

func TestBuildPaymentHealthEmptyWindow(t *testing.T) {
	now := time.Now()
	health := BuildPaymentHealth(nil, now)
	if health.Total != 0 || health.FailedRatePct != 0 {
		t.Errorf("empty window should yield zeroes, got %+v", health)
	}
}

func TestRollingWindow(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	start, end := RollingWindow(now, 7)
	if !start.Equal(now.AddDate(0, 0, -7)) || !end.Equal(now) {
		t.Errorf("RollingWindow = [%v, %v]", start, end)
	}
	if !InWindow(now, start, end) || !InWindow(start, start, end) {
		t.Error("rolling window bounds must be inclusive")
	}
}
