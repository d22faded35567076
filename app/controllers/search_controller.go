package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khanh-pt/realworld/internal/pkg/apperror"
	"github.com/khanh-pt/realworld/internal/pkg/search"
	"github.com/khanh-pt/realworld/internal/pkg/usercontext"
)

// HandleSearchArticles runs a full-text query against the article index with
// optional filters, sorting and facets.
func HandleSearchArticles(c *fiber.Ctx) error {
	indexer := search.GetIndexer()
	if indexer == nil {
		return apperror.NewInternal("Search is not available")
	}

	limit, offset := parsePagination(c)
	params := search.Params{
		Query:     c.Query("q"),
		Author:    c.Query("author"),
		Tag:       c.Query("tag"),
		Favorited: c.Query("favorited"),
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	result, err := indexer.SearchArticles(c.Context(), params, usercontext.GetUserID(c))
	if err != nil {
		return apperror.NewInternal("Search failed")
	}
	return c.JSON(result)
}
