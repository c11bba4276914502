// services/metrics.go
package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stayradar/rentadmin_backend/models"
	"github.com/stayradar/rentadmin_backend/utils"
)

// isActiveBooking reports whether the booking is approved and covers now.
func isActiveBooking(b *models.Booking, now time.Time) bool {
	return b.Status == models.BookingStatusApproved &&
		!now.Before(b.FromDate) && !now.After(b.ToDate)
}

// LiveMRR is the forward-looking monthly recurring revenue: the sum of
// property rent over currently active approved bookings. A booking whose
// property lookup failed contributes 0 rather than an error.
func LiveMRR(bookings []models.Booking, properties map[primitive.ObjectID]models.Property, now time.Time) float64 {
	var total float64
	for i := range bookings {
		b := &bookings[i]
		if !isActiveBooking(b, now) {
			continue
		}
		if prop, ok := properties[b.PropertyID]; ok {
			total += prop.Price
		}
	}
	return utils.Round2(total)
}

// RealizedMRR is the actual revenue collected this calendar month.
func RealizedMRR(payments []models.Payment, now time.Time) float64 {
	start, end := MonthWindow(now)
	return utils.Round2(SumPaidAmount(payments, start, end))
}

// OccupancyRate is the share of approved properties with at least one
// currently active approved booking, as a percentage. Zero when there are
// no approved properties.
func OccupancyRate(bookings []models.Booking, approvedProperties int64, now time.Time) float64 {
	if approvedProperties <= 0 {
		return 0
	}
	occupied := make(map[primitive.ObjectID]struct{})
	for i := range bookings {
		b := &bookings[i]
		if isActiveBooking(b, now) {
			occupied[b.PropertyID] = struct{}{}
		}
	}
	return utils.Round2(float64(len(occupied)) / float64(approvedProperties) * 100)
}

// PlatformProfit is this month's realized revenue minus the owner share
// already transferred out for this month's paid payments.
func PlatformProfit(payments []models.Payment, now time.Time) float64 {
	start, end := MonthWindow(now)
	realized := SumPaidAmount(payments, start, end)
	transferred := SumTransferredOwnerAmount(payments, start, end)
	return utils.Round2(realized - transferred)
}

// MonthOverMonthChange compares this month's realized revenue with the
// previous month's. The change percentage is 0 when the previous month had
// no revenue, guarding the division.
func MonthOverMonthChange(payments []models.Payment, now time.Time) (current, previous, changePct float64) {
	curStart, curEnd := MonthWindow(now)
	prevStart, prevEnd := MonthWindow(curStart.AddDate(0, 0, -1))

	current = SumPaidAmount(payments, curStart, curEnd)
	previous = SumPaidAmount(payments, prevStart, prevEnd)

	if previous > 0 {
		changePct = utils.Round2((current - previous) / previous * 100)
	}
	return utils.Round2(current), utils.Round2(previous), changePct
}
