package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stayradar/rentadmin_backend/models"
	"github.com/stayradar/rentadmin_backend/repositories"
	"github.com/stayradar/rentadmin_backend/services"
	"github.com/stayradar/rentadmin_backend/utils"
)

const dashboardCacheTTL = 60 * time.Second

// AnalyticsController serves the two read models of the back office
// dashboard. Everything here is a read-committed snapshot fold; sub-metrics
// of one response may reflect slightly different instants, which is
// acceptable for a monitoring surface.
type AnalyticsController struct {
	db    *mongo.Database
	cache *redis.Client
	repo  *repositories.AnalyticsRepository
}

// NewAnalyticsController creates a new analytics controller
func NewAnalyticsController(db *mongo.Database, cache *redis.Client) *AnalyticsController {
	return &AnalyticsController{
		db:    db,
		cache: cache,
		repo:  repositories.NewAnalyticsRepository(db),
	}
}

// analyticsInputs carries one snapshot of everything the derived metrics
// need. Loaded once per request, window-bounded.
type analyticsInputs struct {
	now             time.Time
	payments        []models.Payment
	pendingPayouts  []models.Payment
	activeBookings  []models.Booking
	endingBookings  []models.Booking
	properties      map[primitive.ObjectID]models.Property
	approvedProps   int64
	agreements      map[primitive.ObjectID]*models.Agreement
	aging           models.PayoutAging
	health          models.PaymentHealth
	currentRevenue  float64
	previousRevenue float64
	momChangePct    float64
	unsignedCount   int
}

func (ac *AnalyticsController) loadInputs(ctx context.Context, now time.Time, trendMonths int) (*analyticsInputs, error) {
	in := &analyticsInputs{now: now}

	// One payment scan covers the trend, the current/previous month
	// comparison and the 7-day health window.
	monthStart, _ := services.MonthWindow(now)
	since := monthStart.AddDate(0, -trendMonths, 0)

	var err error
	if in.payments, err = ac.repo.PaymentsSince(ctx, since); err != nil {
		return nil, &utils.InternalError{Message: "Error loading payments", Cause: err}
	}
	if in.pendingPayouts, err = ac.repo.PendingPayouts(ctx); err != nil {
		return nil, &utils.InternalError{Message: "Error loading pending payouts", Cause: err}
	}
	if in.activeBookings, err = ac.repo.ActiveApprovedBookings(ctx, now); err != nil {
		return nil, &utils.InternalError{Message: "Error loading active bookings", Cause: err}
	}
	if in.endingBookings, err = ac.repo.ApprovedBookingsEndingBetween(ctx, now, now.AddDate(0, 0, 30)); err != nil {
		return nil, &utils.InternalError{Message: "Error loading ending bookings", Cause: err}
	}
	if in.approvedProps, err = ac.repo.CountApprovedProperties(ctx); err != nil {
		return nil, &utils.InternalError{Message: "Error counting properties", Cause: err}
	}

	propertyIDs := make([]primitive.ObjectID, 0, len(in.activeBookings))
	for i := range in.activeBookings {
		propertyIDs = append(propertyIDs, in.activeBookings[i].PropertyID)
	}
	if in.properties, err = ac.repo.PropertiesByIDs(ctx, propertyIDs); err != nil {
		// A failed lookup degrades to zero contributions, not an aborted report.
		log.Printf("Error loading properties for live MRR, degrading to zero contributions: %v", err)
		in.properties = map[primitive.ObjectID]models.Property{}
	}

	bookingIDs := make([]primitive.ObjectID, 0, len(in.endingBookings))
	for i := range in.endingBookings {
		bookingIDs = append(bookingIDs, in.endingBookings[i].ID)
	}
	if in.agreements, err = ac.repo.AgreementsForBookings(ctx, bookingIDs); err != nil {
		log.Printf("Error loading agreements, unsigned backlog check degraded: %v", err)
		in.agreements = map[primitive.ObjectID]*models.Agreement{}
	}

	in.aging = services.BuildPayoutAging(in.pendingPayouts, now)
	in.health = services.BuildPaymentHealth(in.payments, now)
	in.currentRevenue, in.previousRevenue, in.momChangePct = services.MonthOverMonthChange(in.payments, now)
	in.unsignedCount = services.CountUnsignedAgreements(in.endingBookings, in.agreements, now)

	return in, nil
}

func (ac *AnalyticsController) buildKPIs(in *analyticsInputs) []models.KPI {
	liveMRR := services.LiveMRR(in.activeBookings, in.properties, in.now)
	realized := services.RealizedMRR(in.payments, in.now)
	occupancy := services.OccupancyRate(in.activeBookings, in.approvedProps, in.now)
	profit := services.PlatformProfit(in.payments, in.now)

	return []models.KPI{
		{
			Label:   "Live MRR",
			Value:   liveMRR,
			Formula: "sum of property rent over currently active approved bookings",
		},
		{
			Label:   "Realized MRR",
			Value:   realized,
			Formula: "sum of paid payment amounts created this calendar month",
		},
		{
			Label:   "Occupancy Rate %",
			Value:   occupancy,
			Formula: "properties with an active approved booking / approved properties x 100",
		},
		{
			Label:   "Platform Profit (month)",
			Value:   profit,
			Formula: "realized MRR - owner share transferred for this month's paid payments",
		},
		{
			Label:   "MoM Revenue Change %",
			Value:   in.momChangePct,
			Formula: "(current month - previous month) / previous month x 100, 0 when previous is 0",
		},
	}
}

func (ac *AnalyticsController) cachedJSON(ctx context.Context, key string) []byte {
	if ac.cache == nil {
		return nil
	}
	raw, err := ac.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Dashboard cache read failed for %s: %v", key, err)
		}
		return nil
	}
	return raw
}

func (ac *AnalyticsController) storeJSON(ctx context.Context, key string, payload interface{}) []byte {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	if ac.cache != nil {
		if err := ac.cache.Set(ctx, key, raw, dashboardCacheTTL).Err(); err != nil {
			log.Printf("Dashboard cache write failed for %s: %v", key, err)
		}
	}
	return raw
}

// GetOverview returns the back-office landing dashboard: entity totals,
// headline KPIs with their formulas, anomaly alerts, the payout backlog
// summary and the revenue trend.
func (ac *AnalyticsController) GetOverview(c echo.Context) error {
	ctx := context.Background()

	activityDays := 30
	if raw := c.QueryParam("activityDays"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			activityDays = parsed
		}
	}
	if activityDays < 1 {
		activityDays = 1
	}
	if activityDays > 365 {
		activityDays = 365
	}

	cacheKey := fmt.Sprintf("dashboard:overview:%d", activityDays)
	if raw := ac.cachedJSON(ctx, cacheKey); raw != nil {
		return c.JSONBlob(http.StatusOK, raw)
	}

	now := time.Now()
	in, err := ac.loadInputs(ctx, now, 6)
	if err != nil {
		return errorJSON(c, err)
	}

	totals, err := ac.loadTotals(ctx, now, activityDays)
	if err != nil {
		return errorJSON(c, err)
	}

	var awaitingAllocation, awaitingTransfer int
	for i := range in.pendingPayouts {
		if in.pendingPayouts[i].PayoutStatus == models.PayoutStatusAllocated {
			awaitingTransfer++
		} else {
			awaitingAllocation++
		}
	}
	monthStart, monthEnd := services.MonthWindow(now)

	data := models.OverviewData{
		GeneratedAt:  now,
		ActivityDays: activityDays,
		Totals:       totals,
		KPIs:         ac.buildKPIs(in),
		Alerts:       services.DetectAnomalies(in.aging, in.health, in.momChangePct, in.previousRevenue, in.unsignedCount),
		Payouts: models.PayoutSummary{
			AwaitingAllocation: awaitingAllocation,
			AwaitingTransfer:   awaitingTransfer,
			PendingOwnerAmount: in.aging.PendingAmount,
			TransferredMonth:   utils.Round2(services.SumTransferredOwnerAmount(in.payments, monthStart, monthEnd)),
		},
		Trend: services.TrailingMonthlyRevenue(in.payments, now, 6),
	}

	response := models.Response{
		Status:  http.StatusOK,
		Message: "Overview generated successfully",
		Data:    data,
	}
	if raw := ac.storeJSON(ctx, cacheKey, response); raw != nil {
		return c.JSONBlob(http.StatusOK, raw)
	}
	return c.JSON(http.StatusOK, response)
}

func (ac *AnalyticsController) loadTotals(ctx context.Context, now time.Time, activityDays int) (models.OverviewTotals, error) {
	var totals models.OverviewTotals
	var err error

	if totals.Properties, err = ac.db.Collection("properties").CountDocuments(ctx, bson.M{}); err != nil {
		return totals, &utils.InternalError{Message: "Error counting properties", Cause: err}
	}
	if totals.ActiveProperties, err = ac.db.Collection("properties").CountDocuments(ctx, bson.M{"status": models.PropertyStatusApproved}); err != nil {
		return totals, &utils.InternalError{Message: "Error counting active properties", Cause: err}
	}
	if totals.Bookings, err = ac.db.Collection("bookings").CountDocuments(ctx, bson.M{}); err != nil {
		return totals, &utils.InternalError{Message: "Error counting bookings", Cause: err}
	}
	if totals.PendingBookings, err = ac.db.Collection("bookings").CountDocuments(ctx, bson.M{"status": models.BookingStatusPending}); err != nil {
		return totals, &utils.InternalError{Message: "Error counting pending bookings", Cause: err}
	}
	if totals.Payments, err = ac.db.Collection("payments").CountDocuments(ctx, bson.M{}); err != nil {
		return totals, &utils.InternalError{Message: "Error counting payments", Cause: err}
	}
	windowStart := now.AddDate(0, 0, -activityDays)
	if totals.RecentPayments, err = ac.db.Collection("payments").CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": windowStart}}); err != nil {
		return totals, &utils.InternalError{Message: "Error counting recent payments", Cause: err}
	}
	return totals, nil
}

// GetRevenueCommand returns the revenue command center: KPIs, payout aging
// buckets, churn-risk ranking, anomalies, the 3-month trend and 7-day
// payment health.
func (ac *AnalyticsController) GetRevenueCommand(c echo.Context) error {
	ctx := context.Background()

	cacheKey := "dashboard:revenue-command"
	if raw := ac.cachedJSON(ctx, cacheKey); raw != nil {
		return c.JSONBlob(http.StatusOK, raw)
	}

	now := time.Now()
	in, err := ac.loadInputs(ctx, now, 3)
	if err != nil {
		return errorJSON(c, err)
	}

	data := models.RevenueCommandData{
		GeneratedAt:   now,
		KPIs:          ac.buildKPIs(in),
		PayoutAging:   in.aging,
		ChurnRisk:     services.ScoreChurnRisk(in.endingBookings, now),
		Anomalies:     services.DetectAnomalies(in.aging, in.health, in.momChangePct, in.previousRevenue, in.unsignedCount),
		Trend:         services.TrailingMonthlyRevenue(in.payments, now, 3),
		PaymentHealth: in.health,
	}

	response := models.Response{
		Status:  http.StatusOK,
		Message: "Revenue command center generated successfully",
		Data:    data,
	}
	if raw := ac.storeJSON(ctx, cacheKey, response); raw != nil {
		return c.JSONBlob(http.StatusOK, raw)
	}
	return c.JSON(http.StatusOK, response)
}
