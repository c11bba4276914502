package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Anomaly severities
const (
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Anomaly codes
const (
	AnomalyPaymentFailRateSpike = "payment_fail_rate_spike"
	AnomalyPayoutDelay          = "payout_delay"
	AnomalyRevenueDrop          = "revenue_drop"
	AnomalyUnsignedAgreements   = "unsigned_agreements"
)

// KPI is one headline figure together with the formula it was computed by,
// so the dashboard can explain itself.
type KPI struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Formula string  `json:"formula"`
}

// AgingBucket accumulates pending payouts of a given age range.
type AgingBucket struct {
	Range       string  `json:"range"` // "0-3d", "4-7d", "8-14d", "15+d"
	Count       int     `json:"count"`
	OwnerAmount float64 `json:"ownerAmount"`
}

// PayoutAging is the full pending-payout picture.
type PayoutAging struct {
	Buckets           []AgingBucket `json:"buckets"`
	PendingCount      int           `json:"pendingCount"`
	PendingAmount     float64       `json:"pendingAmount"`
	OldestPendingDays int           `json:"oldestPendingDays"`
}

// Anomaly is a rule-triggered operator flag.
type Anomaly struct {
	Code     string `json:"code"`
	Severity string `json:"severity"` // "medium", "high"
	Title    string `json:"title"`
	Detail   string `json:"detail"`
}

// ChurnRiskItem scores one upcoming booking's non-renewal risk.
type ChurnRiskItem struct {
	BookingID      primitive.ObjectID `json:"bookingId"`
	PropertyID     primitive.ObjectID `json:"propertyId"`
	RenterID       primitive.ObjectID `json:"renterId"`
	ToDate         time.Time          `json:"toDate"`
	DaysToEnd      int                `json:"daysToEnd"`
	PaymentPending bool               `json:"paymentPending"`
	Score          int                `json:"score"`
	Tier           string             `json:"tier"` // "high", "medium", "low"
}

// MonthlyRevenuePoint is one trailing-month revenue bucket.
type MonthlyRevenuePoint struct {
	Month   string  `json:"month"` // "YYYY-MM"
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// PaymentHealth summarizes the trailing 7-day payment window.
type PaymentHealth struct {
	Total         int     `json:"total"`
	Paid          int     `json:"paid"`
	Failed        int     `json:"failed"`
	FailedRatePct float64 `json:"failedRatePct"`
}

// PayoutSummary is the transfer backlog headline on the overview page.
type PayoutSummary struct {
	AwaitingAllocation int     `json:"awaitingAllocation"`
	AwaitingTransfer   int     `json:"awaitingTransfer"`
	PendingOwnerAmount float64 `json:"pendingOwnerAmount"`
	TransferredMonth   float64 `json:"transferredThisMonth"`
}

// OverviewTotals are the entity counters on the overview page.
type OverviewTotals struct {
	Properties       int64 `json:"properties"`
	ActiveProperties int64 `json:"activeProperties"`
	Bookings         int64 `json:"bookings"`
	PendingBookings  int64 `json:"pendingBookings"`
	Payments         int64 `json:"payments"`
	RecentPayments   int64 `json:"recentPayments"`
}

// OverviewData is the payload of GET /overview.
type OverviewData struct {
	GeneratedAt  time.Time             `json:"generatedAt"`
	ActivityDays int                   `json:"activityDays"`
	Totals       OverviewTotals        `json:"totals"`
	KPIs         []KPI                 `json:"kpis"`
	Alerts       []Anomaly             `json:"alerts"`
	Payouts      PayoutSummary         `json:"payouts"`
	Trend        []MonthlyRevenuePoint `json:"trend"`
}

// RevenueCommandData is the payload of GET /revenue-command.
type RevenueCommandData struct {
	GeneratedAt   time.Time             `json:"generatedAt"`
	KPIs          []KPI                 `json:"kpis"`
	PayoutAging   PayoutAging           `json:"payoutAging"`
	ChurnRisk     []ChurnRiskItem       `json:"churnRisk"`
	Anomalies     []Anomaly             `json:"anomalies"`
	Trend         []MonthlyRevenuePoint `json:"trend"`
	PaymentHealth PaymentHealth         `json:"paymentHealth"`
}
