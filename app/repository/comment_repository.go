package repository

import (
	"github.com/khanh-pt/realworld/app/models"
	"gorm.io/gorm"
)

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create creates a new comment in the database
func (r *commentRepository) Create(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return err
	}
	return r.db.Preload("User").First(comment, comment.ID).Error
}

// GetByArticleID retrieves all comments for an article, newest first
func (r *commentRepository) GetByArticleID(articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").Where("article_id = ?", articleID).
		Order("created_at DESC").Find(&comments).Error
	return comments, err
}

// DeleteOwned removes a comment when it belongs to both the given article and
// author. Ownership and scope are enforced in one filtered lookup so the
// caller cannot tell not-found from no-permission.
func (r *commentRepository) DeleteOwned(commentID, articleID, authorID uint) error {
	var comment models.Comment
	err := r.db.Where("id = ? AND article_id = ? AND user_id = ?", commentID, articleID, authorID).
		First(&comment).Error
	if err != nil {
		return err
	}
	return r.db.Delete(&comment).Error
}
