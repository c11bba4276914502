// services/payout.go
package services

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stayradar/rentadmin_backend/models"
	"github.com/stayradar/rentadmin_backend/utils"
)

// ResolveCommissionPercent picks the commission percentage for an
// allocation. Priority: explicit request value (when finite) over the
// platform default setting over the fallback constant. platformDefault is
// nil when no settings document exists; a stored 0 is an honored
// free-commission setting, not an absence. Out-of-range values are rejected
// before any mutation.
func ResolveCommissionPercent(override, platformDefault *float64) (float64, error) {
	pct := float64(models.DefaultCommissionPercent)
	if platformDefault != nil && !math.IsNaN(*platformDefault) && !math.IsInf(*platformDefault, 0) {
		pct = *platformDefault
	}
	if override != nil && !math.IsNaN(*override) && !math.IsInf(*override, 0) {
		pct = *override
	}
	if pct < 0 || pct > 100 {
		return 0, &utils.ValidationError{Message: "Commission percent must be between 0 and 100"}
	}
	return pct, nil
}

// ComputeCommissionSplit splits a paid amount into platform commission and
// owner share. Both sides are rounded to 2 decimals; the owner share is
// derived from the rounded commission so the two always sum back to the
// amount within a cent.
func ComputeCommissionSplit(amount, pct float64) (commissionAmount, ownerAmount float64) {
	commissionAmount = utils.Round2(amount * pct / 100)
	ownerAmount = utils.Round2(amount - commissionAmount)
	return commissionAmount, ownerAmount
}

// CanAllocate checks the allocation precondition. Re-allocating an already
// allocated or transferred payout is allowed; it recomputes the split.
func CanAllocate(p *models.Payment) error {
	if p.Status != models.PaymentStatusPaid {
		return &utils.PreconditionError{Message: "Only paid payments can have a payout allocated"}
	}
	return nil
}

// CanTransfer checks the transfer preconditions. Re-confirming a transfer
// is allowed; transferring an unallocated payout is not.
func CanTransfer(p *models.Payment) error {
	if p.Status != models.PaymentStatusPaid {
		return &utils.PreconditionError{Message: "Only paid payments can have a payout transferred"}
	}
	if p.PayoutStatus != models.PayoutStatusAllocated && p.PayoutStatus != models.PayoutStatusTransferred {
		return &utils.PreconditionError{Message: "Allocate payout before marking as transferred"}
	}
	return nil
}

// ApplyAllocation records the commission split on the payment. Allocation
// always supersedes a prior transfer mark, so the transfer timestamp is
// cleared.
func ApplyAllocation(p *models.Payment, ownerID primitive.ObjectID, pct float64, note string, now time.Time) {
	commissionAmount, ownerAmount := ComputeCommissionSplit(p.Amount, pct)
	p.PayoutStatus = models.PayoutStatusAllocated
	p.OwnerID = ownerID
	p.CommissionPercent = pct
	p.CommissionAmount = commissionAmount
	p.OwnerAmount = ownerAmount
	p.PayoutAllocatedAt = &now
	p.PayoutTransferredAt = nil
	if note != "" {
		p.PayoutNote = note
	}
	p.UpdatedAt = now
}

// ApplyTransfer marks the owner's share as paid out externally.
func ApplyTransfer(p *models.Payment, note string, now time.Time) {
	p.PayoutStatus = models.PayoutStatusTransferred
	p.PayoutTransferredAt = &now
	if note != "" {
		p.PayoutNote = note
	}
	p.UpdatedAt = now
}

// ResetPayoutFields returns the payment to its unallocated zero state. Runs
// whenever the payment status leaves "paid", keeping the invariant that an
// allocated or transferred payout always belongs to a paid payment.
func ResetPayoutFields(p *models.Payment, now time.Time) {
	p.PayoutStatus = models.PayoutStatusUnallocated
	p.OwnerID = primitive.NilObjectID
	p.CommissionPercent = 0
	p.CommissionAmount = 0
	p.OwnerAmount = 0
	p.PayoutAllocatedAt = nil
	p.PayoutTransferredAt = nil
	p.UpdatedAt = now
}
