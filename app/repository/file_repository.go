package repository

import (
	"github.com/khanh-pt/realworld/app/models"
	"gorm.io/gorm"
)

// fileRepository implements the FileRepository interface
type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new file repository instance
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

// Create creates a new file record in the database
func (r *fileRepository) Create(file *models.File) error {
	return r.db.Create(file).Error
}

// GetByChecksum retrieves a file record by its content checksum
func (r *fileRepository) GetByChecksum(checksum string) (*models.File, error) {
	return models.FindFileByChecksum(r.db, checksum)
}

// GetByIDAndKey retrieves a file record matching both id and storage key.
// Article attachments must reference an existing id+key pair.
func (r *fileRepository) GetByIDAndKey(id uint, key string) (*models.File, error) {
	var file models.File
	err := r.db.Where("id = ? AND `key` = ?", id, key).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}
