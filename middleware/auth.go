package middleware

import (
	"os"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/medicore/hospital-app/utils"
)

// Protected verifies the bearer token and stashes the caller's identity in
// locals, where RequirePermission/RequireRole and the doctor-scoped handlers
// pick it up as "userID" and "role".
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(signingSecret()),
		ErrorHandler: rejectToken,
		SuccessHandler: func(c *fiber.Ctx) error {
			userID, role, ok := callerIdentity(c.Locals("user"))
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
					Message: "Malformed access token",
				})
			}
			c.Locals("userID", userID)
			c.Locals("role", role)
			return c.Next()
		},
	})
}

// callerIdentity pulls the user id and role name out of a verified token.
// Login issues tokens with a numeric "id" claim and a string "role" claim;
// anything shaped differently is rejected.
func callerIdentity(v interface{}) (uint, string, bool) {
	token, ok := v.(*jwt.Token)
	if !ok {
		return 0, "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}
	id, ok := claims["id"].(float64)
	if !ok || id < 1 {
		return 0, "", false
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return 0, "", false
	}
	return uint(id), role, true
}

func signingSecret() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}
	return "solid_secret_key" // Replace with secure key in production
}

func rejectToken(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
		Message: "Invalid or expired token",
		Error:   err.Error(),
	})
}
