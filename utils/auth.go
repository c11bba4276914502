// utils/auth.go
package utils

import (
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/stayradar/rentadmin_backend/middleware"
	"github.com/stayradar/rentadmin_backend/models"
)

// GenerateToken issues an HS256 session token for an admin account.
func GenerateToken(admin *models.Admin) (string, error) {
	claims := &middleware.JwtCustomClaims{
		UserID:   admin.ID.Hex(),
		Email:    admin.Email,
		UserType: admin.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(middleware.GetJWTSecret()))
}
