package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khanh-pt/realworld/app/repository"
	"github.com/khanh-pt/realworld/internal/pkg/apperror"
	"github.com/khanh-pt/realworld/internal/pkg/search"
	"github.com/khanh-pt/realworld/internal/pkg/usercontext"
)

// HandleFavoriteArticle marks an article as favorited by the requester.
// Favoriting an already-favorited article is a no-op.
func HandleFavoriteArticle(c *fiber.Ctx) error {
	articleRepo := repository.GetGlobalFactory().GetArticleRepository()
	article, err := articleRepo.GetBySlug(c.Params("slug"))
	if err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	if err := articleRepo.Favorite(article.ID, usercontext.GetUserID(c)); err != nil {
		return apperror.NewInternal("Failed to favorite article")
	}

	// Neu laden, damit favorited und favoritesCount aktuell sind
	article, err = articleRepo.GetBySlug(article.Slug)
	if err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	syncSearchIndex("update article", func(indexer *search.Indexer) error {
		return indexer.UpdateArticle(article)
	})
	return respondArticle(c, article, fiber.StatusOK)
}

// HandleUnfavoriteArticle removes the requester's favorite from an article.
// Unfavoriting an article that is not favorited is a no-op.
func HandleUnfavoriteArticle(c *fiber.Ctx) error {
	articleRepo := repository.GetGlobalFactory().GetArticleRepository()
	article, err := articleRepo.GetBySlug(c.Params("slug"))
	if err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	if err := articleRepo.Unfavorite(article.ID, usercontext.GetUserID(c)); err != nil {
		return apperror.NewInternal("Failed to unfavorite article")
	}

	article, err = articleRepo.GetBySlug(article.Slug)
	if err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	syncSearchIndex("update article", func(indexer *search.Indexer) error {
		return indexer.UpdateArticle(article)
	})
	return respondArticle(c, article, fiber.StatusOK)
}
