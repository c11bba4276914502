package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Agreement version statuses
const (
	AgreementPendingOwner  = "pending_owner"
	AgreementPendingRenter = "pending_renter"
	AgreementFullySigned   = "fully_signed"
)

// AgreementVersion is one revision of a rental agreement document.
type AgreementVersion struct {
	Version   int       `json:"version" bson:"version"`
	Status    string    `json:"status" bson:"status"` // "pending_owner", "pending_renter", "fully_signed"
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Agreement holds the ordered revision history of a booking's rental
// agreement. One agreement per booking.
type Agreement struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	BookingID      primitive.ObjectID `json:"bookingId" bson:"bookingId"`
	CurrentVersion int                `json:"currentVersion" bson:"currentVersion"`
	Versions       []AgreementVersion `json:"versions" bson:"versions"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ActiveVersion returns the version whose number equals CurrentVersion,
// falling back to the last element when no exact match exists. The fallback
// is load-bearing: older documents carry a stale CurrentVersion and the UI
// has always shown the last revision for those.
func (a *Agreement) ActiveVersion() *AgreementVersion {
	if len(a.Versions) == 0 {
		return nil
	}
	for i := range a.Versions {
		if a.Versions[i].Version == a.CurrentVersion {
			return &a.Versions[i]
		}
	}
	return &a.Versions[len(a.Versions)-1]
}

// IsFullySigned reports whether the active version has been signed by both
// parties.
func (a *Agreement) IsFullySigned() bool {
	v := a.ActiveVersion()
	return v != nil && v.Status == AgreementFullySigned
}
