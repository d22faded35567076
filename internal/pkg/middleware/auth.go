package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/khanh-pt/realworld/app/repository"
	"github.com/khanh-pt/realworld/internal/pkg/apperror"
	"github.com/khanh-pt/realworld/internal/pkg/env"
	"github.com/khanh-pt/realworld/internal/pkg/security"
	"github.com/khanh-pt/realworld/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the bearer token (if any) into a request
// user context. Missing or invalid tokens leave the request anonymous;
// endpoints requiring auth reject via RequireAuth.
func UserContextMiddleware(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	claims, err := security.ParseToken(token, env.GetEnv("JWT_SECRET", ""))
	if err != nil || claims.TokenType != security.TokenTypeAccess {
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(claims.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewInternal("Failed to load user")
		}
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:     user.ID,
		Username:   user.Username,
		IsLoggedIn: true,
	})
	return c.Next()
}

// RequireAuth ensures an authenticated user and returns JSON 401 otherwise.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return apperror.NewUnauthorized("Missing or invalid authentication")
	}
	return c.Next()
}

// bearerToken extracts the JWT from the Authorization header. Both the
// RealWorld "Token <jwt>" and the standard "Bearer <jwt>" schemes are accepted.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	for _, scheme := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(header, scheme) {
			return strings.TrimSpace(strings.TrimPrefix(header, scheme))
		}
	}
	return ""
}
