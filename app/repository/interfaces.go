package repository

import (
	"github.com/khanh-pt/realworld/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	Update(user *models.User) error
}

// ArticleFilter narrows the article listing query. Zero values mean "no filter".
type ArticleFilter struct {
	Tag         string // only articles carrying this tag name
	Author      string // only articles written by this username
	FavoritedBy string // only articles favorited by this username
	FollowedBy  uint   // only articles by authors this user follows (feed)
	Limit       int
	Offset      int
}

// ArticleRepository defines the interface for article-related database operations
type ArticleRepository interface {
	Create(article *models.Article, tagNames []string, file *models.ArticleFile) error
	GetBySlug(slug string) (*models.Article, error)
	GetBySlugAndAuthor(slug string, authorID uint) (*models.Article, error)
	GetAllForIndexing() ([]models.Article, error)
	List(filter ArticleFilter) ([]models.Article, int64, error)
	Update(article *models.Article, tagNames []string) error
	Delete(id uint) error
	Favorite(articleID, userID uint) error
	Unfavorite(articleID, userID uint) error
}

// TagRepository defines the interface for tag-related database operations
type TagRepository interface {
	FindOrCreateByNames(names []string) ([]models.Tag, error)
	ListNames() ([]string, error)
}

// CommentRepository defines the interface for comment-related database operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByArticleID(articleID uint) ([]models.Comment, error)
	// DeleteOwned removes the comment only when it belongs to the given
	// article and author. Returns gorm.ErrRecordNotFound otherwise.
	DeleteOwned(commentID, articleID, authorID uint) error
}

// FollowRepository defines the interface for follow-related database operations
type FollowRepository interface {
	Exists(followerID, followingID uint) (bool, error)
	Create(followerID, followingID uint) error
	Delete(followerID, followingID uint) error
	// FollowingIDSet returns, in one query, the subset of candidateIDs the
	// given user follows. Used to enrich author sub-objects without N+1 lookups.
	FollowingIDSet(followerID uint, candidateIDs []uint) (map[uint]bool, error)
}

// FileRepository defines the interface for uploaded file metadata
type FileRepository interface {
	Create(file *models.File) error
	GetByChecksum(checksum string) (*models.File, error)
	GetByIDAndKey(id uint, key string) (*models.File, error)
}

// SessionRepository defines the interface for refresh-token sessions
type SessionRepository interface {
	Create(session *models.Session) error
	GetByUserAndHash(userID uint, hash string) (*models.Session, error)
	Update(session *models.Session) error
	DeleteExpired() error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User    UserRepository
	Article ArticleRepository
	Tag     TagRepository
	Comment CommentRepository
	Follow  FollowRepository
	File    FileRepository
	Session SessionRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Article: NewArticleRepository(db),
		Tag:     NewTagRepository(db),
		Comment: NewCommentRepository(db),
		Follow:  NewFollowRepository(db),
		File:    NewFileRepository(db),
		Session: NewSessionRepository(db),
	}
}
