package search

import (
	"time"

	"github.com/khanh-pt/realworld/app/models"
)

// ArticleDocument is the denormalized article representation stored in the
// search index. Author and favoriter data is embedded so search results can
// be rendered without touching the primary database.
type ArticleDocument struct {
	ArticleID      uint           `json:"articleId"`
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Body           string         `json:"body"`
	TagList        []string       `json:"tagList"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
	Author         DocumentAuthor `json:"author"`
	FavoritesCount int            `json:"favoritesCount"`
	FavoritedBy    []uint         `json:"favoritedBy"`
}

// DocumentAuthor is the author sub-document
type DocumentAuthor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// NewArticleDocument builds the index document for a fully loaded article
// (author, tags and favoriters preloaded).
func NewArticleDocument(article *models.Article) ArticleDocument {
	favoritedBy := make([]uint, 0, len(article.FavoritedBy))
	for _, u := range article.FavoritedBy {
		favoritedBy = append(favoritedBy, u.ID)
	}

	return ArticleDocument{
		ArticleID:      article.ID,
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        article.TagNames(),
		CreatedAt:      article.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      article.UpdatedAt.UTC().Format(time.RFC3339),
		Author: DocumentAuthor{
			ID:       article.Author.ID,
			Username: article.Author.Username,
			Bio:      article.Author.Bio,
			Image:    article.Author.Image,
		},
		FavoritesCount: article.FavoritesCount(),
		FavoritedBy:    favoritedBy,
	}
}
