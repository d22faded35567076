package viewmodel

import (
	"time"

	"github.com/khanh-pt/realworld/app/models"
)

// Comment is the wire representation of a comment
type Comment struct {
	ID        uint   `json:"id"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Author    Author `json:"author"`
}

// NewComment assembles the wire shape for a loaded comment
func NewComment(comment *models.Comment, followingIDs map[uint]bool) Comment {
	return Comment{
		ID:        comment.ID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: comment.UpdatedAt.UTC().Format(time.RFC3339),
		Author:    NewAuthor(&comment.User, followingIDs),
	}
}

// CommentAuthorIDs collects the distinct author ids of a list of comments
func CommentAuthorIDs(comments []models.Comment) []uint {
	seen := make(map[uint]bool, len(comments))
	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			ids = append(ids, c.UserID)
		}
	}
	return ids
}
