package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stayradar/rentadmin_backend/middleware"
	"github.com/stayradar/rentadmin_backend/models"
	"github.com/stayradar/rentadmin_backend/services"
	"github.com/stayradar/rentadmin_backend/utils"
)

// PayoutController drives the payout state machine:
// unallocated -> allocated -> transferred, with a reset back to unallocated
// whenever the payment itself leaves "paid".
type PayoutController struct {
	db *mongo.Database
}

// NewPayoutController creates a new payout controller
func NewPayoutController(db *mongo.Database) *PayoutController {
	return &PayoutController{db: db}
}

func (pc *PayoutController) findPayment(ctx context.Context, c echo.Context) (*models.Payment, primitive.ObjectID, error) {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return nil, primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	adminID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "Invalid admin ID")
	}

	paymentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, primitive.NilObjectID, &utils.ValidationError{Message: "Invalid payment ID"}
	}

	var payment models.Payment
	err = pc.db.Collection("payments").FindOne(ctx, bson.M{"_id": paymentID}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, primitive.NilObjectID, &utils.NotFoundError{Message: "Payment not found"}
	}
	if err != nil {
		return nil, primitive.NilObjectID, &utils.InternalError{Message: "Error finding payment", Cause: err}
	}
	return &payment, adminID, nil
}

func errorJSON(c echo.Context, err error) error {
	if httpErr, ok := err.(*echo.HTTPError); ok {
		return c.JSON(httpErr.Code, models.Response{
			Status:  httpErr.Code,
			Message: fmt.Sprintf("%v", httpErr.Message),
		})
	}
	var ie *utils.InternalError
	if errors.As(err, &ie) {
		log.Printf("%s: %v", ie.Message, ie.Cause)
	}
	status := utils.HTTPStatus(err)
	return c.JSON(status, models.Response{
		Status:  status,
		Message: utils.PublicMessage(err),
	})
}

// AllocateOwnerPayout computes and records the commission/owner split for a
// paid payment. The owner is resolved through the booking's property at
// allocation time, never cached ahead of it. Re-allocation recomputes the
// split and supersedes any prior transfer mark.
func (pc *PayoutController) AllocateOwnerPayout(c echo.Context) error {
	ctx := context.Background()

	payment, adminID, err := pc.findPayment(ctx, c)
	if err != nil {
		return errorJSON(c, err)
	}

	var request models.AllocatePayoutRequest
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Invalid request body"})
	}
	if err := c.Validate(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Commission percent must be between 0 and 100"})
	}

	if err := services.CanAllocate(payment); err != nil {
		return errorJSON(c, err)
	}

	// Resolve the owner via booking -> property.
	var booking models.Booking
	err = pc.db.Collection("bookings").FindOne(ctx, bson.M{"_id": payment.BookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return errorJSON(c, &utils.NotFoundError{Message: "Booking for this payment not found"})
	}
	if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error finding booking", Cause: err})
	}

	var property models.Property
	err = pc.db.Collection("properties").FindOne(ctx, bson.M{"_id": booking.PropertyID}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return errorJSON(c, &utils.NotFoundError{Message: "Property owner could not be resolved"})
	}
	if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error finding property", Cause: err})
	}

	// Platform default. A missing settings document falls back to the
	// constant inside the resolver; a stored 0 is a real free-commission
	// setting and must be passed through, so presence travels as a pointer.
	var platformDefault *float64
	var settings models.PlatformSettings
	err = pc.db.Collection("settings").FindOne(ctx, bson.M{}).Decode(&settings)
	switch {
	case err == nil:
		platformDefault = &settings.CommissionPercent
	case err == mongo.ErrNoDocuments:
	default:
		return errorJSON(c, &utils.InternalError{Message: "Error loading platform settings", Cause: err})
	}

	pct, err := services.ResolveCommissionPercent(request.CommissionPercent, platformDefault)
	if err != nil {
		return errorJSON(c, err)
	}

	now := time.Now()
	services.ApplyAllocation(payment, property.OwnerID, pct, request.PayoutNote, now)

	update := bson.M{
		"$set": bson.M{
			"payoutStatus":      payment.PayoutStatus,
			"ownerId":           payment.OwnerID,
			"commissionPercent": payment.CommissionPercent,
			"commissionAmount":  payment.CommissionAmount,
			"ownerAmount":       payment.OwnerAmount,
			"payoutAllocatedAt": payment.PayoutAllocatedAt,
			"payoutNote":        payment.PayoutNote,
			"updatedAt":         payment.UpdatedAt,
		},
		"$unset": bson.M{"payoutTransferredAt": ""},
	}
	if _, err := pc.db.Collection("payments").UpdateOne(ctx, bson.M{"_id": payment.ID}, update); err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Failed to allocate payout", Cause: err})
	}

	utils.SaveAuditLog(pc.db, adminID, "payout_allocated", "payment", payment.ID, bson.M{
		"payoutStatus":      payment.PayoutStatus,
		"ownerId":           payment.OwnerID.Hex(),
		"commissionPercent": payment.CommissionPercent,
		"commissionAmount":  payment.CommissionAmount,
		"ownerAmount":       payment.OwnerAmount,
	})

	return c.JSON(http.StatusOK, models.PaymentResponse{
		Status:  http.StatusOK,
		Message: "Payout allocated successfully",
		Data:    payment,
	})
}

// TransferOwnerPayout marks an allocated payout as paid out to the owner.
// Re-confirming an already transferred payout is allowed.
func (pc *PayoutController) TransferOwnerPayout(c echo.Context) error {
	ctx := context.Background()

	payment, adminID, err := pc.findPayment(ctx, c)
	if err != nil {
		return errorJSON(c, err)
	}

	var request models.TransferPayoutRequest
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Invalid request body"})
	}

	if err := services.CanTransfer(payment); err != nil {
		return errorJSON(c, err)
	}

	now := time.Now()
	services.ApplyTransfer(payment, request.PayoutNote, now)

	update := bson.M{
		"$set": bson.M{
			"payoutStatus":        payment.PayoutStatus,
			"payoutTransferredAt": payment.PayoutTransferredAt,
			"payoutNote":          payment.PayoutNote,
			"updatedAt":           payment.UpdatedAt,
		},
	}
	if _, err := pc.db.Collection("payments").UpdateOne(ctx, bson.M{"_id": payment.ID}, update); err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Failed to transfer payout", Cause: err})
	}

	utils.SaveAuditLog(pc.db, adminID, "payout_transferred", "payment", payment.ID, bson.M{
		"payoutStatus": payment.PayoutStatus,
		"ownerId":      payment.OwnerID.Hex(),
		"ownerAmount":  payment.OwnerAmount,
	})

	return c.JSON(http.StatusOK, models.PaymentResponse{
		Status:  http.StatusOK,
		Message: "Payout marked as transferred",
		Data:    payment,
	})
}

// UpdatePaymentStatus moves the payment between pending/paid/failed/refunded
// and keeps the linked booking's mirror field in sync. Leaving "paid" resets
// the payout fields; re-entering "paid" does not re-allocate, that stays an
// explicit action.
func (pc *PayoutController) UpdatePaymentStatus(c echo.Context) error {
	ctx := context.Background()

	payment, adminID, err := pc.findPayment(ctx, c)
	if err != nil {
		return errorJSON(c, err)
	}

	var request models.PaymentStatusUpdateRequest
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Invalid request body"})
	}
	if err := c.Validate(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Invalid payment status"})
	}

	now := time.Now()
	priorStatus := payment.Status
	payment.Status = request.Status
	if request.AdminRemark != "" {
		payment.AdminRemark = request.AdminRemark
	}
	payment.UpdatedAt = now

	set := bson.M{
		"status":    payment.Status,
		"updatedAt": payment.UpdatedAt,
	}
	if request.AdminRemark != "" {
		set["adminRemark"] = payment.AdminRemark
	}
	update := bson.M{"$set": set}

	// Any transition away from "paid" voids the allocation.
	leftPaid := priorStatus == models.PaymentStatusPaid && request.Status != models.PaymentStatusPaid
	if leftPaid {
		services.ResetPayoutFields(payment, now)
		set["payoutStatus"] = models.PayoutStatusUnallocated
		set["commissionPercent"] = 0.0
		set["commissionAmount"] = 0.0
		set["ownerAmount"] = 0.0
		update["$unset"] = bson.M{
			"ownerId":             "",
			"payoutAllocatedAt":   "",
			"payoutTransferredAt": "",
		}
	}

	if _, err := pc.db.Collection("payments").UpdateOne(ctx, bson.M{"_id": payment.ID}, update); err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Failed to update payment status", Cause: err})
	}

	// Sync the booking's paymentStatus mirror. It only feeds churn
	// heuristics, so a failed sync is logged, not surfaced.
	var mirror string
	switch {
	case request.Status == models.PaymentStatusPaid:
		mirror = "paid"
	case (request.Status == models.PaymentStatusFailed || request.Status == models.PaymentStatusPending) && priorStatus != request.Status:
		mirror = "pending"
	}
	if mirror != "" {
		_, err := pc.db.Collection("bookings").UpdateOne(ctx,
			bson.M{"_id": payment.BookingID},
			bson.M{"$set": bson.M{"paymentStatus": mirror, "updatedAt": now}})
		if err != nil {
			log.Printf("Failed to sync booking payment status for %s: %v", payment.BookingID.Hex(), err)
		}
	}

	utils.SaveAuditLog(pc.db, adminID, "payment_status_updated", "payment", payment.ID, bson.M{
		"priorStatus":  priorStatus,
		"status":       payment.Status,
		"payoutStatus": payment.PayoutStatus,
	})

	return c.JSON(http.StatusOK, models.PaymentResponse{
		Status:  http.StatusOK,
		Message: "Payment status updated successfully",
		Data:    payment,
	})
}
