package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khanh-pt/realworld/app/repository"
	"github.com/khanh-pt/realworld/internal/pkg/apperror"
	"github.com/khanh-pt/realworld/internal/pkg/usercontext"
	"github.com/khanh-pt/realworld/internal/pkg/viewmodel"
)

// HandleGetProfile returns a user's public profile. The following flag is
// computed against the requester when one is logged in.
func HandleGetProfile(c *fiber.Ctx) error {
	factory := repository.GetGlobalFactory()
	user, err := factory.GetUserRepository().GetByUsername(c.Params("username"))
	if err != nil {
		return apperror.FromDBError(err, "Profile not found")
	}

	following := false
	userCtx := usercontext.GetUserContext(c)
	if userCtx.IsLoggedIn {
		following, err = factory.GetFollowRepository().Exists(userCtx.UserID, user.ID)
		if err != nil {
			return apperror.NewInternal("Failed to load follow state")
		}
	}

	return c.JSON(fiber.Map{
		"profile": viewmodel.NewProfile(user, following),
	})
}

// HandleFollowUser adds the target user to the requester's following set.
// Following an already-followed user is a no-op.
func HandleFollowUser(c *fiber.Ctx) error {
	factory := repository.GetGlobalFactory()
	user, err := factory.GetUserRepository().GetByUsername(c.Params("username"))
	if err != nil {
		return apperror.FromDBError(err, "Profile not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if user.ID == userCtx.UserID {
		return apperror.NewValidation("You cannot follow yourself", nil)
	}

	followRepo := factory.GetFollowRepository()
	exists, err := followRepo.Exists(userCtx.UserID, user.ID)
	if err != nil {
		return apperror.NewInternal("Failed to load follow state")
	}
	if !exists {
		if err := followRepo.Create(userCtx.UserID, user.ID); err != nil {
			return apperror.FromDBError(err, "Profile not found")
		}
	}

	return c.JSON(fiber.Map{
		"profile": viewmodel.NewProfile(user, true),
	})
}

// HandleUnfollowUser removes the target user from the requester's following
// set. Unfollowing a user that is not followed is a no-op.
func HandleUnfollowUser(c *fiber.Ctx) error {
	factory := repository.GetGlobalFactory()
	user, err := factory.GetUserRepository().GetByUsername(c.Params("username"))
	if err != nil {
		return apperror.FromDBError(err, "Profile not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if err := factory.GetFollowRepository().Delete(userCtx.UserID, user.ID); err != nil {
		return apperror.NewInternal("Failed to unfollow user")
	}

	return c.JSON(fiber.Map{
		"profile": viewmodel.NewProfile(user, false),
	})
}
