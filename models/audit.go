package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLog is one structured event per state-changing admin operation.
// Written fire-and-forget; a failed write never fails the operation.
type AuditLog struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EventID    string             `json:"eventId" bson:"eventId"`
	AdminID    primitive.ObjectID `json:"adminId" bson:"adminId"`
	Action     string             `json:"action" bson:"action"`
	EntityType string             `json:"entityType" bson:"entityType"`
	EntityID   primitive.ObjectID `json:"entityId" bson:"entityId"`
	Details    bson.M             `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// AuditLogsResponse model for the audit trail listing
type AuditLogsResponse struct {
	Status  int        `json:"status"`
	Message string     `json:"message"`
	Data    []AuditLog `json:"data,omitempty"`
	Total   int64      `json:"total,omitempty"`
}
