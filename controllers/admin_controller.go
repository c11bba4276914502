package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/stayradar/rentadmin_backend/middleware"
	"github.com/stayradar/rentadmin_backend/models"
	"github.com/stayradar/rentadmin_backend/utils"
)

// AdminController handles admin account endpoints
type AdminController struct {
	db *mongo.Database
}

// NewAdminController creates a new admin controller
func NewAdminController(db *mongo.Database) *AdminController {
	return &AdminController{db: db}
}

// Login authenticates an admin and returns a session token
func (ac *AdminController) Login(c echo.Context) error {
	ctx := context.Background()

	var request models.AdminLoginRequest
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Invalid request body"})
	}
	if err := c.Validate(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Email and password are required"})
	}

	var admin models.Admin
	err := ac.db.Collection("admins").FindOne(ctx, bson.M{"email": request.Email}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}
	if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error finding admin", Cause: err})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(request.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	token, err := utils.GenerateToken(&admin)
	if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Failed to generate token", Cause: err})
	}

	admin.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"admin": admin,
		},
	})
}

// RegisterAdmin creates an additional admin account. Super admin only.
func (ac *AdminController) RegisterAdmin(c echo.Context) error {
	ctx := context.Background()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}
	creatorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid admin ID",
		})
	}

	var request models.AdminRegisterRequest
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "Invalid request body"})
	}
	if err := c.Validate(&request); err != nil {
		return errorJSON(c, &utils.ValidationError{Message: "A valid email and a password of at least 8 characters are required"})
	}

	count, err := ac.db.Collection("admins").CountDocuments(ctx, bson.M{"email": request.Email})
	if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Error checking existing admin", Cause: err})
	}
	if count > 0 {
		return errorJSON(c, &utils.ValidationError{Message: "An admin with this email already exists"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Failed to hash password", Cause: err})
	}

	now := time.Now()
	admin := models.Admin{
		ID:        primitive.NewObjectID(),
		Email:     request.Email,
		Password:  string(hashed),
		FullName:  request.FullName,
		Role:      "admin",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := ac.db.Collection("admins").InsertOne(ctx, admin); err != nil {
		return errorJSON(c, &utils.InternalError{Message: "Failed to create admin", Cause: err})
	}

	utils.SaveAuditLog(ac.db, creatorID, "admin_registered", "admin", admin.ID, bson.M{
		"email": admin.Email,
	})

	admin.Password = ""
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Admin registered successfully",
		Data:    admin,
	})
}
