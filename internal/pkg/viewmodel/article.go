package viewmodel

import (
	"time"

	"github.com/khanh-pt/realworld/app/models"
)

// Author is the author sub-object embedded in articles, comments and profiles
type Author struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// ArticleFile is a serialized file attachment with its resolved display URL
type ArticleFile struct {
	FileID uint   `json:"fileId"`
	Role   string `json:"role"`
	URL    string `json:"url,omitempty"`
}

// Article is the wire representation of an article
type Article struct {
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Body           string        `json:"body"`
	TagList        []string      `json:"tagList"`
	CreatedAt      string        `json:"createdAt"`
	UpdatedAt      string        `json:"updatedAt"`
	Favorited      bool          `json:"favorited"`
	FavoritesCount int           `json:"favoritesCount"`
	Author         Author        `json:"author"`
	Files          []ArticleFile `json:"files,omitempty"`
}

// NewAuthor maps a user to the author sub-object. followingIDs is the
// requester's precomputed following-set; anonymous requesters pass nil.
func NewAuthor(user *models.User, followingIDs map[uint]bool) Author {
	return Author{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: followingIDs[user.ID],
	}
}

// NewArticle assembles the wire shape for a loaded article. fileURLs maps
// file ids to resolved display URLs; entries may be missing when the storage
// backend could not produce a URL.
func NewArticle(article *models.Article, currentUserID uint, followingIDs map[uint]bool, fileURLs map[uint]string) Article {
	files := make([]ArticleFile, 0, len(article.Files))
	for _, af := range article.Files {
		files = append(files, ArticleFile{
			FileID: af.FileID,
			Role:   af.Role,
			URL:    fileURLs[af.FileID],
		})
	}

	return Article{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        article.TagNames(),
		CreatedAt:      article.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      article.UpdatedAt.UTC().Format(time.RFC3339),
		Favorited:      article.IsFavoritedBy(currentUserID),
		FavoritesCount: article.FavoritesCount(),
		Author:         NewAuthor(&article.Author, followingIDs),
		Files:          files,
	}
}

// ArticleAuthorIDs collects the distinct author ids of a page of articles,
// the input for the batch following-set lookup.
func ArticleAuthorIDs(articles []models.Article) []uint {
	seen := make(map[uint]bool, len(articles))
	ids := make([]uint, 0, len(articles))
	for _, a := range articles {
		if !seen[a.UserID] {
			seen[a.UserID] = true
			ids = append(ids, a.UserID)
		}
	}
	return ids
}
