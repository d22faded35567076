package repository

import (
	"github.com/khanh-pt/realworld/app/models"
	"gorm.io/gorm"
)

// tagRepository implements the TagRepository interface
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// findOrCreateTags resolves tag names to tag rows, creating missing ones.
// Names are matched as-is; no trimming or case-folding.
func findOrCreateTags(db *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag := models.Tag{Name: name}
		if err := tag.FindOrCreate(db); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// FindOrCreateByNames resolves the given tag names, creating any that don't exist
func (r *tagRepository) FindOrCreateByNames(names []string) ([]models.Tag, error) {
	return findOrCreateTags(r.db, names)
}

// ListNames returns all tag names, most recently created first
func (r *tagRepository) ListNames() ([]string, error) {
	var tags []models.Tag
	if err := r.db.Order("id DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names, nil
}
