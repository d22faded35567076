package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/khanh-pt/realworld/app/models"
	"github.com/khanh-pt/realworld/internal/pkg/env"
)

// setupTestDB connects to the test database or skips the test when no MySQL
// endpoint is reachable.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=2s",
		env.GetEnv("TEST_DB_USER", env.GetEnv("DB_USER", "realworld")),
		env.GetEnv("TEST_DB_PASSWORD", env.GetEnv("DB_PASSWORD", "realworld")),
		env.GetEnv("TEST_DB_HOST", env.GetEnv("DB_HOST", "127.0.0.1")),
		env.GetEnv("TEST_DB_PORT", env.GetEnv("DB_PORT", "3306")),
		env.GetEnv("TEST_DB_NAME", "realworld_test"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Skipf("Skipping MySQL-dependent test: no reachable database (%v)", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Follow{},
		&models.Article{},
		&models.Tag{},
		&models.Comment{},
		&models.File{},
		&models.ArticleFile{},
	)
	require.NoError(t, err)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, prefix string) *models.User {
	t.Helper()

	suffix := uuid.NewString()[:8]
	user, err := models.CreateUser(prefix+"-"+suffix, prefix+"-"+suffix+"@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, db.Create(user).Error)
	t.Cleanup(func() {
		db.Unscoped().Delete(user)
	})
	return user
}

func createTestArticle(t *testing.T, db *gorm.DB, author *models.User, tagNames []string) *models.Article {
	t.Helper()

	suffix := uuid.NewString()[:8]
	article := &models.Article{
		Slug:        "test-article-" + suffix,
		Title:       "Test Article " + suffix,
		Description: "A test article",
		Body:        "Body of the test article",
		UserID:      author.ID,
	}
	repo := NewArticleRepository(db)
	require.NoError(t, repo.Create(article, tagNames, nil))
	t.Cleanup(func() {
		repo.Delete(article.ID)
		if len(tagNames) > 0 {
			db.Where("name IN ?", tagNames).Delete(&models.Tag{})
		}
	})
	return article
}

func TestArticleRepositoryFavorite(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	article := createTestArticle(t, db, author, nil)

	t.Run("favoriting twice counts once", func(t *testing.T) {
		require.NoError(t, repo.Favorite(article.ID, reader.ID))
		require.NoError(t, repo.Favorite(article.ID, reader.ID))

		loaded, err := repo.GetBySlug(article.Slug)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.FavoritesCount())
		assert.True(t, loaded.IsFavoritedBy(reader.ID))
	})

	t.Run("unfavoriting removes the favorite", func(t *testing.T) {
		require.NoError(t, repo.Unfavorite(article.ID, reader.ID))

		loaded, err := repo.GetBySlug(article.Slug)
		require.NoError(t, err)
		assert.Equal(t, 0, loaded.FavoritesCount())
	})

	t.Run("unfavoriting a non-favorited article is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Unfavorite(article.ID, reader.ID))
	})
}

func TestArticleRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	tagName := "tag-" + uuid.NewString()[:8]
	tagged := createTestArticle(t, db, author, []string{tagName})
	createTestArticle(t, db, author, nil)

	t.Run("tag filter matches only tagged articles", func(t *testing.T) {
		articles, total, err := repo.List(ArticleFilter{Tag: tagName, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, articles, 1)
		assert.Equal(t, tagged.Slug, articles[0].Slug)
	})

	t.Run("author filter matches both articles", func(t *testing.T) {
		_, total, err := repo.List(ArticleFilter{Author: author.Username, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("favorited filter matches the favoriter's articles", func(t *testing.T) {
		require.NoError(t, repo.Favorite(tagged.ID, reader.ID))

		articles, total, err := repo.List(ArticleFilter{FavoritedBy: reader.Username, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, articles, 1)
		assert.Equal(t, tagged.Slug, articles[0].Slug)
	})

	t.Run("feed filter requires a follow relation", func(t *testing.T) {
		_, total, err := repo.List(ArticleFilter{FollowedBy: reader.ID, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)

		followRepo := NewFollowRepository(db)
		require.NoError(t, followRepo.Create(reader.ID, author.ID))
		t.Cleanup(func() {
			followRepo.Delete(reader.ID, author.ID)
		})

		_, total, err = repo.List(ArticleFilter{FollowedBy: reader.ID, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}

func TestCommentRepositoryDeleteOwned(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	author := createTestUser(t, db, "author")
	intruder := createTestUser(t, db, "intruder")
	article := createTestArticle(t, db, author, nil)

	comment := &models.Comment{UserID: author.ID, ArticleID: article.ID, Body: "a comment"}
	require.NoError(t, repo.Create(comment))

	t.Run("non-author delete reads as not found", func(t *testing.T) {
		err := repo.DeleteOwned(comment.ID, article.ID, intruder.ID)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

		comments, err := repo.GetByArticleID(article.ID)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("author delete removes the comment", func(t *testing.T) {
		require.NoError(t, repo.DeleteOwned(comment.ID, article.ID, author.ID))

		comments, err := repo.GetByArticleID(article.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
