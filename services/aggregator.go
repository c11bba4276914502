// services/aggregator.go
package services

import (
	"time"

	"github.com/stayradar/rentadmin_backend/models"
	"github.com/stayradar/rentadmin_backend/utils"
)

// MonthWindow returns the inclusive bounds of t's calendar month in t's
// location: first day 00:00:00.000 through last day 23:59:59.999.
func MonthWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// RollingWindow returns [now - days, now].
func RollingWindow(now time.Time, days int) (start, end time.Time) {
	return now.AddDate(0, 0, -days), now
}

// InWindow reports whether t falls within [start, end] inclusive.
func InWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// MonthKey formats the grouping key for monthly buckets.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// SumPaidAmount folds the gross amount of paid payments created within the
// window. The sum is left unrounded; callers round at the exposure boundary.
func SumPaidAmount(payments []models.Payment, start, end time.Time) float64 {
	var total float64
	for i := range payments {
		p := &payments[i]
		if p.Status == models.PaymentStatusPaid && InWindow(p.CreatedAt, start, end) {
			total += p.Amount
		}
	}
	return total
}

// SumTransferredOwnerAmount folds the owner share already transferred for
// paid payments created within the window. Unrounded.
func SumTransferredOwnerAmount(payments []models.Payment, start, end time.Time) float64 {
	var total float64
	for i := range payments {
		p := &payments[i]
		if p.Status == models.PaymentStatusPaid &&
			p.PayoutStatus == models.PayoutStatusTransferred &&
			InWindow(p.CreatedAt, start, end) {
			total += p.OwnerAmount
		}
	}
	return total
}

// TrailingMonthlyRevenue groups paid payments by YYYY-MM of their creation
// time over the last months calendar months, oldest first. Months without
// payments appear with zero revenue so the trend axis stays continuous.
func TrailingMonthlyRevenue(payments []models.Payment, now time.Time, months int) []models.MonthlyRevenuePoint {
	if months <= 0 {
		return nil
	}

	points := make([]models.MonthlyRevenuePoint, 0, months)
	index := make(map[string]int, months)
	for i := months - 1; i >= 0; i-- {
		monthStart, _ := MonthWindow(now.AddDate(0, -i, -now.Day()+1))
		key := MonthKey(monthStart)
		index[key] = len(points)
		points = append(points, models.MonthlyRevenuePoint{Month: key})
	}

	for i := range payments {
		p := &payments[i]
		if p.Status != models.PaymentStatusPaid {
			continue
		}
		if idx, ok := index[MonthKey(p.CreatedAt)]; ok {
			points[idx].Revenue += p.Amount
			points[idx].Count++
		}
	}

	for i := range points {
		points[i].Revenue = utils.Round2(points[i].Revenue)
	}
	return points
}

// BuildPaymentHealth summarizes the trailing 7-day payment window.
func BuildPaymentHealth(payments []models.Payment, now time.Time) models.PaymentHealth {
	start, end := RollingWindow(now, 7)

	var health models.PaymentHealth
	for i := range payments {
		p := &payments[i]
		if !InWindow(p.CreatedAt, start, end) {
			continue
		}
		health.Total++
		switch p.Status {
		case models.PaymentStatusPaid:
			health.Paid++
		case models.PaymentStatusFailed:
			health.Failed++
		}
	}
	if health.Total > 0 {
		health.FailedRatePct = utils.Round2(float64(health.Failed) / float64(health.Total) * 100)
	}
	return health
}
