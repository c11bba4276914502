package services

import (
	"math"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stayradar/rentadmin_backend/models"
	"github.com/stayradar/rentadmin_backend/utils"
)

func paidPayment(amount float64) *models.Payment {
	now := time.Now()
	return &models.Payment{
		ID:           primitive.NewObjectID(),
		Amount:       amount,
		Status:       models.PaymentStatusPaid,
		PayoutStatus: models.PayoutStatusUnallocated,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestResolveCommissionPercent(t *testing.T) {
	override := 15.0
	nan := math.NaN()
	inf := math.Inf(1)
	outOfRange := 120.0
	storedDefault := 12.5
	storedZero := 0.0

	tests := []struct {
		name            string
		override        *float64
		platformDefault *float64
		want            float64
		wantErr         bool
	}{
		{"fallback constant when nothing set", nil, nil, 10, false},
		{"platform default wins over constant", nil, &storedDefault, 12.5, false},
		{"stored zero default is honored", nil, &storedZero, 0, false},
		{"explicit override wins over default", &override, &storedDefault, 15, false},
		{"explicit override wins over stored zero", &override, &storedZero, 15, false},
		{"NaN override ignored", &nan, &storedDefault, 12.5, false},
		{"Inf override ignored", &inf, &storedDefault, 12.5, false},
		{"out of range rejected", &outOfRange, nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveCommissionPercent(tt.override, tt.platformDefault)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if _, ok := err.(*utils.ValidationError); !ok {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllocateDefaultCommission(t *testing.T) {
	p := paidPayment(1000)
	ownerID := primitive.NewObjectID()

	pct, err := ResolveCommissionPercent(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ApplyAllocation(p, ownerID, pct, "", time.Now())

	if p.CommissionAmount != 100.00 {
		t.Errorf("commissionAmount = %v, want 100.00", p.CommissionAmount)
	}
	if p.OwnerAmount != 900.00 {
		t.Errorf("ownerAmount = %v, want 900.00", p.OwnerAmount)
	}
	if p.PayoutStatus != models.PayoutStatusAllocated {
		t.Errorf("payoutStatus = %q, want allocated", p.PayoutStatus)
	}
	if p.PayoutAllocatedAt == nil {
		t.Error("payoutAllocatedAt not stamped")
	}
	if p.OwnerID != ownerID {
		t.Error("ownerId not recorded")
	}
}

// A platform that deliberately sets its default commission to 0% must not
// charge the fallback constant on allocations.
func TestAllocateStoredZeroDefault(t *testing.T) {
	p := paidPayment(1000)
	storedZero := 0.0

	pct, err := ResolveCommissionPercent(nil, &storedZero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pct != 0 {
		t.Fatalf("stored platform default of 0%% resolved to %v%%", pct)
	}
	ApplyAllocation(p, primitive.NewObjectID(), pct, "", time.Now())

	if p.CommissionAmount != 0 {
		t.Errorf("commissionAmount = %v, want 0", p.CommissionAmount)
	}
	if p.OwnerAmount != 1000.00 {
		t.Errorf("ownerAmount = %v, want 1000.00", p.OwnerAmount)
	}
}

func TestSplitAlwaysReconciles(t *testing.T) {
	amounts := []float64{0.01, 1, 33.33, 99.99, 1000, 1234.56, 54321.09}
	percents := []float64{0, 1, 7.5, 10, 12.34, 50, 99.99, 100}

	for _, amount := range amounts {
		for _, pct := range percents {
			commission, owner := ComputeCommissionSplit(amount, pct)
			if diff := math.Abs(commission + owner - amount); diff > 0.01 {
				t.Errorf("split of %v at %v%% does not reconcile: %v + %v (off by %v)",
					amount, pct, commission, owner, diff)
			}
		}
	}
}

func TestTransferRequiresAllocation(t *testing.T) {
	p := paidPayment(500)

	err := CanTransfer(p)
	if err == nil {
		t.Fatal("expected precondition error for unallocated payout")
	}
	pe, ok := err.(*utils.PreconditionError)
	if !ok {
		t.Fatalf("expected PreconditionError, got %T", err)
	}
	if pe.Message != "Allocate payout before marking as transferred" {
		t.Errorf("unexpected message: %q", pe.Message)
	}
}

func TestTransferReconfirmAllowed(t *testing.T) {
	p := paidPayment(500)
	ApplyAllocation(p, primitive.NewObjectID(), 10, "", time.Now())
	ApplyTransfer(p, "", time.Now())

	if err := CanTransfer(p); err != nil {
		t.Errorf("re-confirming a transfer should be allowed, got %v", err)
	}
}

// Allocation always supersedes a prior transfer mark: allocate, transfer,
// allocate again leaves the payout allocated with no transfer timestamp.
func TestReallocationSupersedesTransfer(t *testing.T) {
	p := paidPayment(1000)
	ownerID := primitive.NewObjectID()

	ApplyAllocation(p, ownerID, 10, "", time.Now())
	ApplyTransfer(p, "", time.Now())
	if p.PayoutTransferredAt == nil {
		t.Fatal("transfer timestamp missing after transfer")
	}

	ApplyAllocation(p, ownerID, 20, "", time.Now())
	if p.PayoutStatus != models.PayoutStatusAllocated {
		t.Errorf("payoutStatus = %q, want allocated", p.PayoutStatus)
	}
	if p.PayoutTransferredAt != nil {
		t.Error("re-allocation must clear the transfer timestamp")
	}
	if p.CommissionAmount != 200.00 || p.OwnerAmount != 800.00 {
		t.Errorf("re-allocation did not recompute split: %v / %v", p.CommissionAmount, p.OwnerAmount)
	}
}

// Concurrent allocations are last-writer-wins on the split fields. That is
// an accepted trade-off: each allocation is a full recomputation from the
// amount and percent, never an increment, so no update is partially lost.
func TestAllocationIsIdempotentRecomputation(t *testing.T) {
	p := paidPayment(1000)
	ownerID := primitive.NewObjectID()

	ApplyAllocation(p, ownerID, 15, "", time.Now())
	ApplyAllocation(p, ownerID, 10, "", time.Now())

	if p.CommissionPercent != 10 || p.CommissionAmount != 100.00 || p.OwnerAmount != 900.00 {
		t.Errorf("final state must equal the last allocation alone: pct=%v commission=%v owner=%v",
			p.CommissionPercent, p.CommissionAmount, p.OwnerAmount)
	}
}

func TestCanAllocateRequiresPaid(t *testing.T) {
	p := paidPayment(100)
	p.Status = models.PaymentStatusPending

	if err := CanAllocate(p); err == nil {
		t.Fatal("expected precondition error for non-paid payment")
	} else if _, ok := err.(*utils.PreconditionError); !ok {
		t.Errorf("expected PreconditionError, got %T", err)
	}
}

// Invariant: payoutStatus in {allocated, transferred} implies status paid.
// Leaving "paid" resets the payout to its zero state.
func TestResetPayoutFields(t *testing.T) {
	p := paidPayment(1000)
	ApplyAllocation(p, primitive.NewObjectID(), 10, "note", time.Now())
	ApplyTransfer(p, "", time.Now())

	p.Status = models.PaymentStatusFailed
	ResetPayoutFields(p, time.Now())

	if p.PayoutStatus != models.PayoutStatusUnallocated {
		t.Errorf("payoutStatus = %q, want unallocated", p.PayoutStatus)
	}
	if p.CommissionPercent != 0 || p.CommissionAmount != 0 || p.OwnerAmount != 0 {
		t.Error("commission fields not zeroed")
	}
	if p.PayoutAllocatedAt != nil || p.PayoutTransferredAt != nil {
		t.Error("payout timestamps not cleared")
	}
	if !p.OwnerID.IsZero() {
		t.Error("ownerId not cleared")
	}
}
