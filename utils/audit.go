package utils

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stayradar/rentadmin_backend/models"
)

// SaveAuditLog writes one audit event for a state-changing admin operation.
// Fire-and-forget: failures are logged and swallowed so the primary
// operation never fails or rolls back on a sink error.
func SaveAuditLog(db *mongo.Database, adminID primitive.ObjectID, action, entityType string, entityID primitive.ObjectID, details bson.M) {
	entry := models.AuditLog{
		ID:         primitive.NewObjectID(),
		EventID:    uuid.NewString(),
		AdminID:    adminID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.Collection("auditLogs").InsertOne(ctx, entry); err != nil {
		log.Printf("Failed to save audit log for %s %s: %v", action, entityID.Hex(), err)
	}
}
