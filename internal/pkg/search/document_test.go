package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/khanh-pt/realworld/app/models"
)

func TestNewArticleDocument(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	article := &models.Article{
		ID:          9,
		Slug:        "how-to-train-your-dragon-abc123",
		Title:       "How to train your dragon",
		Description: "Ever wondered how?",
		Body:        "You have to believe",
		Author: models.User{
			ID:       3,
			Username: "jake",
			Bio:      "I work at state farm",
			Image:    "https://example.com/jake.jpg",
		},
		Tags: []models.Tag{
			{ID: 1, Name: "dragons"},
			{ID: 2, Name: "training"},
		},
		FavoritedBy: []models.User{{ID: 5}, {ID: 8}},
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Hour),
	}

	doc := NewArticleDocument(article)

	assert.Equal(t, uint(9), doc.ArticleID)
	assert.Equal(t, "how-to-train-your-dragon-abc123", doc.Slug)
	assert.Equal(t, "2026-03-01T12:00:00Z", doc.CreatedAt)
	assert.Equal(t, "2026-03-01T13:00:00Z", doc.UpdatedAt)

	// Tags neueste zuerst
	assert.Equal(t, []string{"training", "dragons"}, doc.TagList)

	assert.Equal(t, uint(3), doc.Author.ID)
	assert.Equal(t, "jake", doc.Author.Username)
	assert.Equal(t, 2, doc.FavoritesCount)
	assert.Equal(t, []uint{5, 8}, doc.FavoritedBy)
}

func TestNewArticleDocumentEmptyRelations(t *testing.T) {
	doc := NewArticleDocument(&models.Article{ID: 1, Title: "bare"})
	assert.Empty(t, doc.TagList)
	assert.Empty(t, doc.FavoritedBy)
	assert.Equal(t, 0, doc.FavoritesCount)
}
