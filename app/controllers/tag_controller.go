package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khanh-pt/realworld/app/repository"
	"github.com/khanh-pt/realworld/internal/pkg/apperror"
)

// HandleGetTags returns all known tag names, newest first.
func HandleGetTags(c *fiber.Ctx) error {
	names, err := repository.GetGlobalFactory().GetTagRepository().ListNames()
	if err != nil {
		return apperror.NewInternal("Failed to load tags")
	}
	return c.JSON(fiber.Map{
		"tags": names,
	})
}
