package models

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type Article struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"type:varchar(255) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"slug"`
	Title       string `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	Description string `gorm:"type:text" json:"description" validate:"required"`
	Body        string `gorm:"type:text" json:"body" validate:"required"`
	UserID      uint   `gorm:"index" json:"user_id"`
	Author      User   `gorm:"foreignKey:UserID" json:"author,omitempty" validate:"-"`
	// relations
	Tags        []Tag          `gorm:"many2many:article_tags;" json:"tags,omitempty"`
	FavoritedBy []User         `gorm:"many2many:article_users;" json:"favorited_by,omitempty"`
	Comments    []Comment      `gorm:"foreignKey:ArticleID" json:"comments,omitempty"`
	Files       []ArticleFile  `gorm:"foreignKey:ArticleID" json:"files,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Article) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

// IsFavoritedBy prüft, ob der angegebene Benutzer den Artikel favorisiert hat
func (a *Article) IsFavoritedBy(userID uint) bool {
	if userID == 0 {
		return false
	}
	for _, u := range a.FavoritedBy {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// FavoritesCount liefert die Anzahl der Favoriten für den Artikel
func (a *Article) FavoritesCount() int {
	return len(a.FavoritedBy)
}

// TagNames returns the article's tag names ordered by tag id descending
// (most recently created tag first, matching the tag listing order).
func (a *Article) TagNames() []string {
	tags := make([]Tag, len(a.Tags))
	copy(tags, a.Tags)
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID > tags[j].ID })

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}

// FindArticleBySlug findet einen Artikel anhand seines Slugs
func FindArticleBySlug(db *gorm.DB, slug string) (*Article, error) {
	var article Article
	result := db.Where("slug = ?", slug).First(&article)
	return &article, result.Error
}
