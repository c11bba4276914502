package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses
const (
	BookingStatusPending  = "pending"
	BookingStatusApproved = "approved"
	BookingStatusRejected = "rejected"
)

// Booking model. PaymentStatus mirrors the renter-facing payment state and
// feeds churn heuristics only; authoritative financial state lives on Payment.
type Booking struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PropertyID    primitive.ObjectID `json:"propertyId" bson:"propertyId"`
	RenterID      primitive.ObjectID `json:"renterId" bson:"renterId"`
	FromDate      time.Time          `json:"fromDate" bson:"fromDate"`
	ToDate        time.Time          `json:"toDate" bson:"toDate"`
	Status        string             `json:"status" bson:"status"` // "pending", "approved", "rejected"
	PaymentStatus string             `json:"paymentStatus" bson:"paymentStatus"`
	AdminNote     string             `json:"adminNote,omitempty" bson:"adminNote,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BookingStatusUpdateRequest model for approving/rejecting a booking
type BookingStatusUpdateRequest struct {
	Status    string `json:"status" validate:"required,oneof=pending approved rejected"`
	AdminNote string `json:"adminNote,omitempty"`
}

// BookingResponse model
type BookingResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Data    *Booking `json:"data,omitempty"`
}

// BookingsResponse model for multiple bookings
type BookingsResponse struct {
	Status  int       `json:"status"`
	Message string    `json:"message"`
	Data    []Booking `json:"data,omitempty"`
}
