package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

type Session struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	User             User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RefreshTokenHash string    `gorm:"type:varchar(100);index;not null" json:"-"`
	ExpiresAt        time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// HashRefreshToken returns the storable hash of a refresh token.
// Only the hash hits the database, never the token itself.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// IsExpired reports whether the session's refresh token has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
