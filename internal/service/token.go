package service

import (
	"os"
	"time"

	"broadcast-eval-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
)

// generateAccessToken issues the session JWT used by every protected
// route. Claims mirror what JwtMiddleware copies into Locals.
func generateAccessToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": user.EmployeeID,
		"name":        user.FullName,
		"role":        string(user.Role),
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
