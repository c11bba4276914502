// services/anomaly.go
package services

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stayradar/rentadmin_backend/models"
	"github.com/stayradar/rentadmin_backend/utils"
)

const msPerDay = 86400000

// Anomaly rule thresholds
const (
	failRateThresholdPct  = 20
	failRateMinSamples    = 8
	payoutDelayDays       = 7
	payoutDelayHighDays   = 14
	revenueDropPct        = -25
	unsignedGraceDays     = 3
	unsignedLookaheadDays = 30
)

// ageInDays is the whole days elapsed since anchor, floored.
func ageInDays(anchor, now time.Time) int {
	ms := now.Sub(anchor).Milliseconds()
	if ms < 0 {
		return 0
	}
	return int(ms / msPerDay)
}

// BuildPayoutAging buckets every pending payout (paid, not yet transferred)
// by age. The age anchor is the allocation time when allocated, otherwise
// the payment creation time.
func BuildPayoutAging(payments []models.Payment, now time.Time) models.PayoutAging {
	buckets := []models.AgingBucket{
		{Range: "0-3d"},
		{Range: "4-7d"},
		{Range: "8-14d"},
		{Range: "15+d"},
	}

	aging := models.PayoutAging{}
	var pendingAmount float64
	for i := range payments {
		p := &payments[i]
		if p.Status != models.PaymentStatusPaid || p.PayoutStatus == models.PayoutStatusTransferred {
			continue
		}

		anchor := p.CreatedAt
		if p.PayoutStatus == models.PayoutStatusAllocated && p.PayoutAllocatedAt != nil {
			anchor = *p.PayoutAllocatedAt
		}
		age := ageInDays(anchor, now)

		var idx int
		switch {
		case age <= 3:
			idx = 0
		case age <= 7:
			idx = 1
		case age <= 14:
			idx = 2
		default:
			idx = 3
		}
		buckets[idx].Count++
		buckets[idx].OwnerAmount += p.OwnerAmount

		aging.PendingCount++
		pendingAmount += p.OwnerAmount
		if age > aging.OldestPendingDays {
			aging.OldestPendingDays = age
		}
	}

	for i := range buckets {
		buckets[i].OwnerAmount = utils.Round2(buckets[i].OwnerAmount)
	}
	aging.Buckets = buckets
	aging.PendingAmount = utils.Round2(pendingAmount)
	return aging
}

// CountUnsignedAgreements counts bookings that were approved at least the
// grace period ago, end within the lookahead window, and still lack a fully
// signed agreement (active version rule). agreements is keyed by booking id;
// a booking with no agreement document counts as unsigned.
func CountUnsignedAgreements(bookings []models.Booking, agreements map[primitive.ObjectID]*models.Agreement, now time.Time) int {
	cutoff := now.AddDate(0, 0, -unsignedGraceDays)
	horizon := now.AddDate(0, 0, unsignedLookaheadDays)

	count := 0
	for i := range bookings {
		b := &bookings[i]
		if b.Status != models.BookingStatusApproved {
			continue
		}
		if b.CreatedAt.After(cutoff) {
			continue
		}
		if b.ToDate.Before(now) || b.ToDate.After(horizon) {
			continue
		}
		if a, ok := agreements[b.ID]; ok && a.IsFullySigned() {
			continue
		}
		count++
	}
	return count
}

// DetectAnomalies evaluates all anomaly rules over precomputed inputs. The
// rules are independent; any subset may fire on the same pass.
func DetectAnomalies(aging models.PayoutAging, health models.PaymentHealth, momChangePct, prevMonthRevenue float64, unsignedCount int) []models.Anomaly {
	anomalies := []models.Anomaly{}

	// Integer comparison keeps the 20% threshold exact.
	if health.Total >= failRateMinSamples && health.Failed*100 >= health.Total*failRateThresholdPct {
		anomalies = append(anomalies, models.Anomaly{
			Code:     models.AnomalyPaymentFailRateSpike,
			Severity: models.SeverityHigh,
			Title:    "Payment failure rate spike",
			Detail: fmt.Sprintf("%d of %d payments failed in the last 7 days (%.1f%%)",
				health.Failed, health.Total, health.FailedRatePct),
		})
	}

	if aging.OldestPendingDays > payoutDelayDays {
		severity := models.SeverityMedium
		if aging.OldestPendingDays > payoutDelayHighDays {
			severity = models.SeverityHigh
		}
		anomalies = append(anomalies, models.Anomaly{
			Code:     models.AnomalyPayoutDelay,
			Severity: severity,
			Title:    "Owner payout delayed",
			Detail: fmt.Sprintf("Oldest pending payout has been waiting %d days (%d pending, %.2f total)",
				aging.OldestPendingDays, aging.PendingCount, aging.PendingAmount),
		})
	}

	if prevMonthRevenue > 0 && momChangePct <= revenueDropPct {
		anomalies = append(anomalies, models.Anomaly{
			Code:     models.AnomalyRevenueDrop,
			Severity: models.SeverityMedium,
			Title:    "Revenue drop",
			Detail:   fmt.Sprintf("Realized revenue is down %.2f%% versus last month", -momChangePct),
		})
	}

	if unsignedCount >= 1 {
		anomalies = append(anomalies, models.Anomaly{
			Code:     models.AnomalyUnsignedAgreements,
			Severity: models.SeverityMedium,
			Title:    "Unsigned agreement backlog",
			Detail: fmt.Sprintf("%d booking(s) approved over %d days ago still lack a fully signed agreement",
				unsignedCount, unsignedGraceDays),
		})
	}

	return anomalies
}
