package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khanh-pt/realworld/app/models"
	"github.com/khanh-pt/realworld/app/repository"
	"github.com/khanh-pt/realworld/internal/pkg/apperror"
	"github.com/khanh-pt/realworld/internal/pkg/usercontext"
	"github.com/khanh-pt/realworld/internal/pkg/validation"
	"github.com/khanh-pt/realworld/internal/pkg/viewmodel"
)

type addCommentRequest struct {
	Comment struct {
		Body string `json:"body" validate:"required"`
	} `json:"comment"`
}

// HandleAddComment attaches a comment by the authenticated user to an article.
func HandleAddComment(c *fiber.Ctx) error {
	var req addCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.NewBadRequest("Invalid request body")
	}
	if appErr := validation.CheckStruct(&req.Comment); appErr != nil {
		return appErr
	}

	factory := repository.GetGlobalFactory()
	article, err := factory.GetArticleRepository().GetBySlug(c.Params("slug"))
	if err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	comment := &models.Comment{
		UserID:    usercontext.GetUserID(c),
		ArticleID: article.ID,
		Body:      req.Comment.Body,
	}
	if err := factory.GetCommentRepository().Create(comment); err != nil {
		return apperror.NewInternal("Failed to create comment")
	}

	followingIDs, err := followingSetFor(c, []uint{comment.UserID})
	if err != nil {
		return apperror.NewInternal("Failed to load follow state")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"comment": viewmodel.NewComment(comment, followingIDs),
	})
}

// HandleGetComments returns all comments of an article, newest first.
func HandleGetComments(c *fiber.Ctx) error {
	factory := repository.GetGlobalFactory()
	article, err := factory.GetArticleRepository().GetBySlug(c.Params("slug"))
	if err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	comments, err := factory.GetCommentRepository().GetByArticleID(article.ID)
	if err != nil {
		return apperror.NewInternal("Failed to load comments")
	}

	followingIDs, err := followingSetFor(c, viewmodel.CommentAuthorIDs(comments))
	if err != nil {
		return apperror.NewInternal("Failed to load follow state")
	}

	results := make([]viewmodel.Comment, 0, len(comments))
	for i := range comments {
		results = append(results, viewmodel.NewComment(&comments[i], followingIDs))
	}
	return c.JSON(fiber.Map{
		"comments": results,
	})
}

// HandleDeleteComment removes a comment. Only the comment's author may delete
// it; a comment owned by someone else reads as not found.
func HandleDeleteComment(c *fiber.Ctx) error {
	commentIDInt, _ := c.ParamsInt("id", 0)
	commentID := uint(commentIDInt)
	if commentID == 0 {
		return apperror.NewBadRequest("Invalid comment id")
	}

	factory := repository.GetGlobalFactory()
	article, err := factory.GetArticleRepository().GetBySlug(c.Params("slug"))
	if err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	err = factory.GetCommentRepository().DeleteOwned(commentID, article.ID, usercontext.GetUserID(c))
	if err != nil {
		return apperror.FromDBError(err, "Comment not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
