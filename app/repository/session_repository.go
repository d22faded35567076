package repository

import (
	"time"

	"github.com/khanh-pt/realworld/app/models"
	"gorm.io/gorm"
)

// sessionRepository implements the SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository instance
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new refresh-token session
func (r *sessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

// GetByUserAndHash retrieves the session matching the user and refresh-token hash
func (r *sessionRepository) GetByUserAndHash(userID uint, hash string) (*models.Session, error) {
	var session models.Session
	err := r.db.Where("user_id = ? AND refresh_token_hash = ?", userID, hash).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Update updates an existing session (token rotation)
func (r *sessionRepository) Update(session *models.Session) error {
	return r.db.Save(session).Error
}

// DeleteExpired removes sessions whose refresh token has expired
func (r *sessionRepository) DeleteExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}
