package repository

import (
	"github.com/khanh-pt/realworld/app/models"
	"gorm.io/gorm"
)

// articleRepository implements the ArticleRepository interface
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository instance
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create persists a new article together with its tag associations and the
// optional file attachment in a single transaction.
func (r *articleRepository) Create(article *models.Article, tagNames []string, file *models.ArticleFile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		if len(tagNames) > 0 {
			tags, err := findOrCreateTags(tx, tagNames)
			if err != nil {
				return err
			}
			if err := tx.Model(article).Association("Tags").Replace(tags); err != nil {
				return err
			}
			article.Tags = tags
		}
		if file != nil {
			file.ArticleID = article.ID
			if err := tx.Create(file).Error; err != nil {
				return err
			}
			article.Files = append(article.Files, *file)
		}
		return nil
	})
}

// GetBySlug retrieves an article by its slug with all relations loaded
func (r *articleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").Preload("Tags").Preload("FavoritedBy").
		Preload("Files.File").Where("slug = ?", slug).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetBySlugAndAuthor retrieves an article by slug, restricted to its author.
// A slug/author mismatch yields gorm.ErrRecordNotFound; callers must not
// distinguish not-found from forbidden.
func (r *articleRepository) GetBySlugAndAuthor(slug string, authorID uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").Preload("Tags").Preload("FavoritedBy").
		Preload("Files.File").Where("slug = ? AND user_id = ?", slug, authorID).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetAllForIndexing retrieves every article with the relations the search
// index document needs.
func (r *articleRepository) GetAllForIndexing() ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Tags").Preload("FavoritedBy").
		Order("articles.id").Find(&articles).Error
	return articles, err
}

// listQuery builds a fresh filtered base query. Count and Find must not share
// a statement, otherwise the Distinct from counting leaks into the page query.
func (r *articleRepository) listQuery(filter ArticleFilter) *gorm.DB {
	q := r.db.Model(&models.Article{}).
		Joins("JOIN users AS authors ON authors.id = articles.user_id")

	if filter.Tag != "" {
		q = q.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.name = ?", filter.Tag)
	}
	if filter.Author != "" {
		q = q.Where("authors.username = ?", filter.Author)
	}
	if filter.FavoritedBy != "" {
		q = q.Joins("JOIN article_users ON article_users.article_id = articles.id").
			Joins("JOIN users AS favoriters ON favoriters.id = article_users.user_id").
			Where("favoriters.username = ?", filter.FavoritedBy)
	}
	if filter.FollowedBy != 0 {
		q = q.Joins("JOIN follows ON follows.following_id = articles.user_id").
			Where("follows.follower_id = ?", filter.FollowedBy)
	}

	return q
}

// List retrieves a filtered, paginated page of articles plus the total count,
// newest first.
func (r *articleRepository) List(filter ArticleFilter) ([]models.Article, int64, error) {
	var total int64
	if err := r.listQuery(filter).Distinct("articles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var articles []models.Article
	err := r.listQuery(filter).
		Select("articles.*").Group("articles.id").
		Preload("Author").Preload("Tags").Preload("FavoritedBy").Preload("Files.File").
		Order("articles.created_at DESC").
		Limit(limit).Offset(filter.Offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// Update saves the article and, when tagNames is non-nil, replaces its tag set
func (r *articleRepository) Update(article *models.Article, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}
		if tagNames != nil {
			tags, err := findOrCreateTags(tx, tagNames)
			if err != nil {
				return err
			}
			if err := tx.Model(article).Association("Tags").Replace(tags); err != nil {
				return err
			}
			article.Tags = tags
		}
		return nil
	})
}

// Delete removes an article and cleans up its comments, tag links, favorite
// links and file links in one transaction. Comments must not be orphaned.
func (r *articleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleFile{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM article_tags WHERE article_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM article_users WHERE article_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, id).Error
	})
}

// Favorite adds the user to the article's favoriter set. Favoriting an
// already-favorited article is a no-op.
func (r *articleRepository) Favorite(articleID, userID uint) error {
	var count int64
	err := r.db.Table("article_users").
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.Exec("INSERT INTO article_users (article_id, user_id) VALUES (?, ?)", articleID, userID).Error
}

// Unfavorite removes the user from the article's favoriter set. Unfavoriting
// a non-favorited article is a no-op.
func (r *articleRepository) Unfavorite(articleID, userID uint) error {
	return r.db.Exec("DELETE FROM article_users WHERE article_id = ? AND user_id = ?", articleID, userID).Error
}
