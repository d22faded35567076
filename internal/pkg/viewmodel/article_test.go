package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/khanh-pt/realworld/app/models"
)

func testArticle() *models.Article {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.Article{
		ID:          9,
		Slug:        "how-to-train-your-dragon-abc123",
		Title:       "How to train your dragon",
		Description: "Ever wondered how?",
		Body:        "You have to believe",
		UserID:      3,
		Author: models.User{
			ID:       3,
			Username: "jake",
			Bio:      "I work at state farm",
		},
		Tags: []models.Tag{
			{ID: 1, Name: "dragons"},
			{ID: 2, Name: "training"},
		},
		FavoritedBy: []models.User{{ID: 5}, {ID: 8}},
		Files: []models.ArticleFile{
			{FileID: 11, Role: models.FILE_ROLE_THUMBNAIL},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestNewArticle(t *testing.T) {
	t.Run("favorited reflects the requesting user", func(t *testing.T) {
		article := testArticle()
		vm := NewArticle(article, 5, nil, nil)
		assert.True(t, vm.Favorited)
		assert.Equal(t, 2, vm.FavoritesCount)

		vm = NewArticle(article, 99, nil, nil)
		assert.False(t, vm.Favorited)
	})

	t.Run("anonymous requesters never see favorited", func(t *testing.T) {
		vm := NewArticle(testArticle(), 0, nil, nil)
		assert.False(t, vm.Favorited)
	})

	t.Run("tag list is newest tag first", func(t *testing.T) {
		vm := NewArticle(testArticle(), 0, nil, nil)
		assert.Equal(t, []string{"training", "dragons"}, vm.TagList)
	})

	t.Run("following comes from the precomputed set", func(t *testing.T) {
		article := testArticle()
		vm := NewArticle(article, 5, map[uint]bool{3: true}, nil)
		assert.True(t, vm.Author.Following)

		vm = NewArticle(article, 5, map[uint]bool{}, nil)
		assert.False(t, vm.Author.Following)
	})

	t.Run("timestamps are RFC3339 UTC", func(t *testing.T) {
		vm := NewArticle(testArticle(), 0, nil, nil)
		assert.Equal(t, "2026-03-01T12:00:00Z", vm.CreatedAt)
	})

	t.Run("file URLs are resolved from the map", func(t *testing.T) {
		article := testArticle()
		vm := NewArticle(article, 0, nil, map[uint]string{11: "https://cdn.example.com/a.jpg"})
		assert.Len(t, vm.Files, 1)
		assert.Equal(t, uint(11), vm.Files[0].FileID)
		assert.Equal(t, models.FILE_ROLE_THUMBNAIL, vm.Files[0].Role)
		assert.Equal(t, "https://cdn.example.com/a.jpg", vm.Files[0].URL)

		// missing URL entries leave the field empty
		vm = NewArticle(article, 0, nil, nil)
		assert.Empty(t, vm.Files[0].URL)
	})
}

func TestArticleAuthorIDs(t *testing.T) {
	articles := []models.Article{
		{UserID: 3},
		{UserID: 7},
		{UserID: 3},
	}
	assert.Equal(t, []uint{3, 7}, ArticleAuthorIDs(articles))
	assert.Empty(t, ArticleAuthorIDs(nil))
}

func TestCommentAuthorIDs(t *testing.T) {
	comments := []models.Comment{
		{UserID: 1},
		{UserID: 1},
		{UserID: 2},
	}
	assert.Equal(t, []uint{1, 2}, CommentAuthorIDs(comments))
}
