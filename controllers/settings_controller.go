package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stayradar/rentadmin_backend/middleware"
	"github.com/stayradar/rentadmin_backend/models"
	"github.com/stayradar/rentadmin_backend/utils"
)

// SettingsController manages the platform settings singleton, including the
// default commission percent consumed at payout allocation time.
type SettingsController struct {
	db *mongo.Database
}

// NewSettingsController creates a new settings controller
func NewSettingsController(db *mongo.Database) *SettingsController {
	return &SettingsController{db: db}
}

// GetSettings returns the current platform settings, falling back to the
// built-in defaults when nothing has been saved yet.
func (sc *SettingsController) GetSettings(c echo.Context) error {
	ctx := context.Background()

	var settings models.PlatformSettings
	err := sc.db.Collection("settings").FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		settings = models.PlatformSettings{CommissionPercent: models.DefaultCommissionPercent}
	} else if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error loading settings", Cause: err})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Settings retrieved successfully",
		Data:    settings,
	})
}

// UpdateSettings replaces the platform settings singleton. Changes apply to
// future allocations only; existing allocations keep their recorded split.
func (sc *SettingsController) UpdateSettings(c echo.Context) error {
	ctx := context.Background()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}
	adminID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid admin ID",
		})
	}

	var request models.SettingsUpdateRequest
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Invalid request body"})
	}
	if err := c.Validate(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Commission percent must be between 0 and 100"})
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"commissionPercent": request.CommissionPercent,
			"updatedBy":         adminID,
			"updatedAt":         now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := sc.db.Collection("settings").UpdateOne(ctx, bson.M{}, update, opts); err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Failed to update settings", Cause: err})
	}

	var settings models.PlatformSettings
	if err := sc.db.Collection("settings").FindOne(ctx, bson.M{}).Decode(&settings); err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error reloading settings", Cause: err})
	}

	utils.SaveAuditLog(sc.db, adminID, "settings_updated", "settings", settings.ID, bson.M{
		"commissionPercent": settings.CommissionPercent,
	})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Settings updated successfully",
		Data:    settings,
	})
}
