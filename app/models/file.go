package models

import (
	"time"

	"gorm.io/gorm"
)

type File struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Key         string         `gorm:"type:varchar(255) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"key"`
	Filename    string         `gorm:"type:varchar(255);not null" json:"filename"`
	ContentType string         `gorm:"type:varchar(100);not null" json:"content_type"`
	ServiceName string         `gorm:"type:varchar(50);not null" json:"service_name"`
	ByteSize    int64          `gorm:"type:bigint" json:"byte_size"`
	Checksum    string         `gorm:"type:varchar(100);index;not null" json:"checksum"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// FindFileByChecksum findet eine Datei anhand ihrer Prüfsumme (Deduplizierung)
func FindFileByChecksum(db *gorm.DB, checksum string) (*File, error) {
	var file File
	result := db.Where("checksum = ?", checksum).First(&file)
	return &file, result.Error
}
