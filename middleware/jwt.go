package middleware

import (
	"errors"
	"fmt"
	"strings"

	"capacita/models"
	"capacita/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionKey = "session"

// Sessions verifies the bearer token issued by the auth service, loads the
// caller's profile once and stores a *services.Session for the handlers.
func Sessions(db *gorm.DB, secret string, log *zap.Logger) fiber.Handler {
	key := []byte(secret)

	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
		}
		tokenString := authHeader[len("Bearer "):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
		}
		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
		}

		var profile models.Profile
		err = db.WithContext(c.UserContext()).Where("id = ?", userID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JsonResponse(c, fiber.StatusForbidden, false, "No profile found for this account!", nil)
		}
		if err != nil {
			log.Error("loading session profile failed", zap.String("user_id", userID.String()), zap.Error(err))
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while loading your profile!", nil)
		}

		c.Locals(sessionKey, &services.Session{UserID: profile.ID, FullName: profile.FullName, Role: profile.Role})
		return c.Next()
	}
}

// SessionFrom returns the session stored by Sessions, or nil.
func SessionFrom(c *fiber.Ctx) *services.Session {
	s, _ := c.Locals(sessionKey).(*services.Session)
	return s
}
