package models

import (
	"time"
)

const (
	FILE_ROLE_THUMBNAIL = "thumbnail"
	FILE_ROLE_IMAGE     = "image"
	FILE_ROLE_VIDEO     = "video"
)

type ArticleFile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"index;not null" json:"article_id"`
	FileID    uint      `gorm:"index;not null" json:"file_id"`
	File      File      `gorm:"foreignKey:FileID" json:"file,omitempty"`
	Role      string    `gorm:"type:varchar(50);not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsValidFileRole reports whether the given role is one of the known attachment roles.
func IsValidFileRole(role string) bool {
	switch role {
	case FILE_ROLE_THUMBNAIL, FILE_ROLE_IMAGE, FILE_ROLE_VIDEO:
		return true
	}
	return false
}
