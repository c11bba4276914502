package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property statuses
const (
	PropertyStatusPending  = "pending"
	PropertyStatusApproved = "approved"
	PropertyStatusRejected = "rejected"
)

// Property model. Price is the monthly rent and is the basis of live MRR.
type Property struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID   primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	Title     string             `json:"title" bson:"title"`
	City      string             `json:"city,omitempty" bson:"city,omitempty"`
	Price     float64            `json:"price" bson:"price"`
	Status    string             `json:"status" bson:"status"` // "pending", "approved", "rejected"
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
