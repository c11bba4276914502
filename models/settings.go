package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCommissionPercent is the fallback commission when no platform
// setting exists and the allocation request carries no override.
const DefaultCommissionPercent = 10

// PlatformSettings is a singleton document holding marketplace-wide knobs.
type PlatformSettings struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CommissionPercent float64            `json:"commissionPercent" bson:"commissionPercent"`
	UpdatedBy         primitive.ObjectID `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SettingsUpdateRequest model for PUT /settings
type SettingsUpdateRequest struct {
	CommissionPercent float64 `json:"commissionPercent" validate:"gte=0,lte=100"`
}
