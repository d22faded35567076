package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/khanh-pt/realworld/app/models"
	"github.com/khanh-pt/realworld/app/repository"
	"github.com/khanh-pt/realworld/internal/pkg/apperror"
	"github.com/khanh-pt/realworld/internal/pkg/env"
	"github.com/khanh-pt/realworld/internal/pkg/security"
	"github.com/khanh-pt/realworld/internal/pkg/usercontext"
	"github.com/khanh-pt/realworld/internal/pkg/validation"
	"github.com/khanh-pt/realworld/internal/pkg/viewmodel"
)

type registerRequest struct {
	User struct {
		Username string `json:"username" validate:"required,min=3,max=150"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	} `json:"user"`
}

type loginRequest struct {
	User struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	} `json:"user"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type updateUserRequest struct {
	User struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	} `json:"user"`
}

// HandleRegister creates a new user account and issues the first token pair.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.NewBadRequest("Invalid request body")
	}
	if appErr := validation.CheckStruct(&req.User); appErr != nil {
		return appErr
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	if exists, err := userRepo.ExistsByUsername(req.User.Username); err != nil {
		return apperror.NewInternal("Failed to check username")
	} else if exists {
		return apperror.NewConflict("Username already exists")
	}
	if exists, err := userRepo.ExistsByEmail(req.User.Email); err != nil {
		return apperror.NewInternal("Failed to check email")
	} else if exists {
		return apperror.NewConflict("Email already exists")
	}

	user, err := models.CreateUser(req.User.Username, req.User.Email, req.User.Password)
	if err != nil {
		return apperror.NewValidation("Invalid user data", nil)
	}
	if err := userRepo.Create(user); err != nil {
		return apperror.FromDBError(err, "User not found")
	}

	token, refreshToken, err := issueTokens(user.ID)
	if err != nil {
		return apperror.NewInternal("Failed to issue tokens")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": viewmodel.NewUser(user, token, refreshToken),
	})
}

// HandleLogin verifies credentials and issues a fresh token pair.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.NewBadRequest("Invalid request body")
	}
	if appErr := validation.CheckStruct(&req.User); appErr != nil {
		return appErr
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByEmail(req.User.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewUnauthorized("Invalid email or password")
		}
		return apperror.NewInternal("Failed to load user")
	}
	if !user.CheckPassword(req.User.Password) {
		return apperror.NewUnauthorized("Invalid email or password")
	}

	token, refreshToken, err := issueTokens(user.ID)
	if err != nil {
		return apperror.NewInternal("Failed to issue tokens")
	}
	return c.JSON(fiber.Map{
		"user": viewmodel.NewUser(user, token, refreshToken),
	})
}

// HandleRefreshToken rotates an unexpired refresh token into a new token pair.
// The presented token must match a stored session by hash.
func HandleRefreshToken(c *fiber.Ctx) error {
	var req refreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.NewBadRequest("Invalid request body")
	}
	if appErr := validation.CheckStruct(&req); appErr != nil {
		return appErr
	}

	claims, err := security.ParseToken(req.RefreshToken, env.GetEnv("JWT_SECRET", ""))
	if err != nil || claims.TokenType != security.TokenTypeRefresh {
		return apperror.NewUnauthorized("Invalid refresh token")
	}

	factory := repository.GetGlobalFactory()
	session, err := factory.GetSessionRepository().
		GetByUserAndHash(claims.UserID, models.HashRefreshToken(req.RefreshToken))
	if err != nil || session.IsExpired() {
		return apperror.NewUnauthorized("Invalid refresh token")
	}

	user, err := factory.GetUserRepository().GetByID(claims.UserID)
	if err != nil {
		return apperror.NewUnauthorized("Invalid refresh token")
	}

	token, err := security.GenerateToken(user.ID, security.TokenTypeAccess, accessTokenTTL(), env.GetEnv("JWT_SECRET", ""))
	if err != nil {
		return apperror.NewInternal("Failed to issue tokens")
	}
	refreshToken, err := security.GenerateToken(user.ID, security.TokenTypeRefresh, refreshTokenTTL(), env.GetEnv("JWT_SECRET", ""))
	if err != nil {
		return apperror.NewInternal("Failed to issue tokens")
	}

	session.RefreshTokenHash = models.HashRefreshToken(refreshToken)
	session.ExpiresAt = time.Now().Add(refreshTokenTTL())
	if err := factory.GetSessionRepository().Update(session); err != nil {
		return apperror.NewInternal("Failed to rotate session")
	}

	return c.JSON(fiber.Map{
		"user": viewmodel.NewUser(user, token, refreshToken),
	})
}

// HandleGetCurrentUser returns the authenticated user.
func HandleGetCurrentUser(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(userCtx.UserID)
	if err != nil {
		return apperror.FromDBError(err, "User not found")
	}
	return c.JSON(fiber.Map{
		"user": viewmodel.NewUser(user, "", ""),
	})
}

// HandleUpdateCurrentUser merges the supplied fields into the authenticated user.
func HandleUpdateCurrentUser(c *fiber.Ctx) error {
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.NewBadRequest("Invalid request body")
	}

	userCtx := usercontext.GetUserContext(c)
	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByID(userCtx.UserID)
	if err != nil {
		return apperror.FromDBError(err, "User not found")
	}

	if req.User.Username != nil {
		user.Username = *req.User.Username
	}
	if req.User.Email != nil {
		user.Email = *req.User.Email
	}
	if req.User.Bio != nil {
		user.Bio = *req.User.Bio
	}
	if req.User.Image != nil {
		user.Image = *req.User.Image
	}
	if req.User.Password != nil {
		if err := user.SetPassword(*req.User.Password); err != nil {
			return apperror.NewInternal("Failed to hash password")
		}
	}
	if err := user.Validate(); err != nil {
		return apperror.NewValidation("Invalid user data", nil)
	}

	if err := userRepo.Update(user); err != nil {
		return apperror.FromDBError(err, "User not found")
	}
	return c.JSON(fiber.Map{
		"user": viewmodel.NewUser(user, "", ""),
	})
}

// issueTokens generates an access/refresh token pair and records the refresh
// token's hash as a session row.
func issueTokens(userID uint) (token, refreshToken string, err error) {
	secret := env.GetEnv("JWT_SECRET", "")
	token, err = security.GenerateToken(userID, security.TokenTypeAccess, accessTokenTTL(), secret)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = security.GenerateToken(userID, security.TokenTypeRefresh, refreshTokenTTL(), secret)
	if err != nil {
		return "", "", err
	}

	session := &models.Session{
		UserID:           userID,
		RefreshTokenHash: models.HashRefreshToken(refreshToken),
		ExpiresAt:        time.Now().Add(refreshTokenTTL()),
	}
	if err := repository.GetGlobalFactory().GetSessionRepository().Create(session); err != nil {
		return "", "", err
	}
	return token, refreshToken, nil
}

func accessTokenTTL() time.Duration {
	return ttlFromEnv("JWT_EXPIRES_IN", 3600)
}

func refreshTokenTTL() time.Duration {
	return ttlFromEnv("JWT_REFRESH_EXPIRES_IN", 30*24*3600)
}

func ttlFromEnv(key string, defSeconds int) time.Duration {
	seconds, err := strconv.Atoi(env.GetEnv(key, strconv.Itoa(defSeconds)))
	if err != nil || seconds <= 0 {
		seconds = defSeconds
	}
	return time.Duration(seconds) * time.Second
}
