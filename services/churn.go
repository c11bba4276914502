// services/churn.go
package services

import (
	"sort"
	"strings"
	"time"

	"github.com/stayradar/rentadmin_backend/models"
)

// Churn scoring weights. The score is a heuristic ranking for proactive
// outreach, not a probability.
const (
	churnLookaheadDays = 30
	churnMaxItems      = 12

	urgencyImminent = 45 // ends within 7 days
	urgencySoon     = 30 // ends within 14 days
	urgencyBase     = 20

	paymentPendingWeight = 35

	stalenessOld    = 20 // booking older than 14 days
	stalenessRecent = 8

	churnTierHigh   = 70
	churnTierMedium = 45
)

// ScoreChurnRisk ranks approved bookings ending within the next 30 days by
// cancellation/non-renewal risk. Output is sorted by score descending with
// ties kept in enumeration order, capped at the 12 highest-risk bookings.
func ScoreChurnRisk(bookings []models.Booking, now time.Time) []models.ChurnRiskItem {
	horizon := now.AddDate(0, 0, churnLookaheadDays)
	staleCutoff := now.AddDate(0, 0, -14)

	items := []models.ChurnRiskItem{}
	for i := range bookings {
		b := &bookings[i]
		if b.Status != models.BookingStatusApproved {
			continue
		}
		if b.ToDate.Before(now) || b.ToDate.After(horizon) {
			continue
		}

		daysToEnd := int((b.ToDate.Sub(now).Milliseconds() + msPerDay - 1) / msPerDay)
		if daysToEnd < 0 {
			daysToEnd = 0
		}

		urgency := urgencyBase
		switch {
		case daysToEnd <= 7:
			urgency = urgencyImminent
		case daysToEnd <= 14:
			urgency = urgencySoon
		}

		paymentPending := !strings.EqualFold(b.PaymentStatus, models.PaymentStatusPaid)
		score := urgency
		if paymentPending {
			score += paymentPendingWeight
		}
		if !b.CreatedAt.After(staleCutoff) {
			score += stalenessOld
		} else {
			score += stalenessRecent
		}
		if score > 100 {
			score = 100
		}

		tier := "low"
		switch {
		case score >= churnTierHigh:
			tier = "high"
		case score >= churnTierMedium:
			tier = "medium"
		}

		items = append(items, models.ChurnRiskItem{
			BookingID:      b.ID,
			PropertyID:     b.PropertyID,
			RenterID:       b.RenterID,
			ToDate:         b.ToDate,
			DaysToEnd:      daysToEnd,
			PaymentPending: paymentPending,
			Score:          score,
			Tier:           tier,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if len(items) > churnMaxItems {
		items = items[:churnMaxItems]
	}
	return items
}
