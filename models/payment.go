package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment statuses
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payout statuses. A payout status other than "unallocated" is only
// meaningful while the payment itself is "paid".
const (
	PayoutStatusUnallocated = "unallocated"
	PayoutStatusAllocated   = "allocated"
	PayoutStatusTransferred = "transferred"
)

// Payment model
type Payment struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	BookingID           primitive.ObjectID `json:"bookingId" bson:"bookingId"`
	RenterID            primitive.ObjectID `json:"renterId" bson:"renterId"`
	Amount              float64            `json:"amount" bson:"amount"`
	Status              string             `json:"status" bson:"status"`             // "pending", "paid", "failed", "refunded"
	PayoutStatus        string             `json:"payoutStatus" bson:"payoutStatus"` // "unallocated", "allocated", "transferred"
	CommissionPercent   float64            `json:"commissionPercent" bson:"commissionPercent"`
	CommissionAmount    float64            `json:"commissionAmount" bson:"commissionAmount"`
	OwnerAmount         float64            `json:"ownerAmount" bson:"ownerAmount"`
	OwnerID             primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty"` // resolved at allocation time
	PayoutAllocatedAt   *time.Time         `json:"payoutAllocatedAt,omitempty" bson:"payoutAllocatedAt,omitempty"`
	PayoutTransferredAt *time.Time         `json:"payoutTransferredAt,omitempty" bson:"payoutTransferredAt,omitempty"`
	PayoutNote          string             `json:"payoutNote,omitempty" bson:"payoutNote,omitempty"`
	AdminRemark         string             `json:"adminRemark,omitempty" bson:"adminRemark,omitempty"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AllocatePayoutRequest is the body of POST /payments/:id/allocate-owner.
// CommissionPercent overrides the platform default when present.
type AllocatePayoutRequest struct {
	CommissionPercent *float64 `json:"commissionPercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	PayoutNote        string   `json:"payoutNote,omitempty"`
}

// TransferPayoutRequest is the body of PATCH /payments/:id/transfer-owner
type TransferPayoutRequest struct {
	PayoutNote string `json:"payoutNote,omitempty"`
}

// PaymentStatusUpdateRequest is the body of PATCH /payments/:id/status
type PaymentStatusUpdateRequest struct {
	Status      string `json:"status" validate:"required,oneof=pending paid failed refunded"`
	AdminRemark string `json:"adminRemark,omitempty"`
}

// PaymentResponse model
type PaymentResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Data    *Payment `json:"data,omitempty"`
}

// PaymentsResponse model for multiple payments
type PaymentsResponse struct {
	Status  int       `json:"status"`
	Message string    `json:"message"`
	Data    []Payment `json:"data,omitempty"`
	Total   int64     `json:"total,omitempty"`
}
