package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khanh-pt/realworld/app/models"
	"github.com/khanh-pt/realworld/app/repository"
	"github.com/khanh-pt/realworld/internal/pkg/apperror"
	"github.com/khanh-pt/realworld/internal/pkg/search"
	"github.com/khanh-pt/realworld/internal/pkg/slugger"
	"github.com/khanh-pt/realworld/internal/pkg/usercontext"
	"github.com/khanh-pt/realworld/internal/pkg/validation"
	"github.com/khanh-pt/realworld/internal/pkg/viewmodel"
)

type createArticleRequest struct {
	Article struct {
		Title       string   `json:"title" validate:"required,max=255"`
		Description string   `json:"description" validate:"required"`
		Body        string   `json:"body" validate:"required"`
		TagList     []string `json:"tagList"`
		FileID      *uint    `json:"fileId"`
		Key         string   `json:"key"`
		Role        string   `json:"role"`
	} `json:"article"`
}

type updateArticleRequest struct {
	Article struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Body        *string   `json:"body"`
		TagList     *[]string `json:"tagList"`
	} `json:"article"`
}

// HandleListArticles returns the global article feed, optionally filtered by
// tag, author username or favoriting username.
func HandleListArticles(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	filter := repository.ArticleFilter{
		Tag:         c.Query("tag"),
		Author:      c.Query("author"),
		FavoritedBy: c.Query("favorited"),
		Limit:       limit,
		Offset:      offset,
	}
	return respondArticleList(c, filter)
}

// HandleFeedArticles returns articles authored by users the requester follows.
func HandleFeedArticles(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	filter := repository.ArticleFilter{
		FollowedBy: usercontext.GetUserID(c),
		Limit:      limit,
		Offset:     offset,
	}
	return respondArticleList(c, filter)
}

// HandleGetArticle returns a single article by slug.
func HandleGetArticle(c *fiber.Ctx) error {
	article, err := repository.GetGlobalFactory().GetArticleRepository().GetBySlug(c.Params("slug"))
	if err != nil {
		return apperror.FromDBError(err, "Article not found")
	}
	return respondArticle(c, article, fiber.StatusOK)
}

// HandleCreateArticle creates an article for the authenticated user, including
// its tags and an optional file attachment, and mirrors it into the search
// index.
func HandleCreateArticle(c *fiber.Ctx) error {
	var req createArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.NewBadRequest("Invalid request body")
	}
	if appErr := validation.CheckStruct(&req.Article); appErr != nil {
		return appErr
	}

	articleFile, appErr := resolveArticleFile(req.Article.FileID, req.Article.Key, req.Article.Role)
	if appErr != nil {
		return appErr
	}

	article := &models.Article{
		Slug:        slugger.Generate(req.Article.Title),
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		UserID:      usercontext.GetUserID(c),
	}

	articleRepo := repository.GetGlobalFactory().GetArticleRepository()
	if err := articleRepo.Create(article, req.Article.TagList, articleFile); err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	// Neu laden, damit Author, Tags und Dateien fuer die Antwort dabei sind
	article, err := articleRepo.GetBySlug(article.Slug)
	if err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	syncSearchIndex("index article", func(indexer *search.Indexer) error {
		return indexer.IndexArticle(article)
	})
	return respondArticle(c, article, fiber.StatusCreated)
}

// HandleUpdateArticle merges the supplied fields into an article owned by the
// requester. A title change regenerates the slug.
func HandleUpdateArticle(c *fiber.Ctx) error {
	var req updateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.NewBadRequest("Invalid request body")
	}

	articleRepo := repository.GetGlobalFactory().GetArticleRepository()
	article, err := articleRepo.GetBySlugAndAuthor(c.Params("slug"), usercontext.GetUserID(c))
	if err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	if req.Article.Title != nil && *req.Article.Title != article.Title {
		article.Title = *req.Article.Title
		article.Slug = slugger.Generate(article.Title)
	}
	if req.Article.Description != nil {
		article.Description = *req.Article.Description
	}
	if req.Article.Body != nil {
		article.Body = *req.Article.Body
	}

	if err := article.Validate(); err != nil {
		return apperror.NewValidation("Invalid article data", nil)
	}

	tagNames := article.TagNames()
	if req.Article.TagList != nil {
		tagNames = *req.Article.TagList
	}

	if err := articleRepo.Update(article, tagNames); err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	article, err = articleRepo.GetBySlug(article.Slug)
	if err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	syncSearchIndex("update article", func(indexer *search.Indexer) error {
		return indexer.UpdateArticle(article)
	})
	return respondArticle(c, article, fiber.StatusOK)
}

// HandleDeleteArticle removes an article owned by the requester together with
// its comments, tags and favorites, and drops it from the search index.
func HandleDeleteArticle(c *fiber.Ctx) error {
	articleRepo := repository.GetGlobalFactory().GetArticleRepository()
	article, err := articleRepo.GetBySlugAndAuthor(c.Params("slug"), usercontext.GetUserID(c))
	if err != nil {
		return apperror.FromDBError(err, "Article not found")
	}

	if err := articleRepo.Delete(article.ID); err != nil {
		return apperror.NewInternal("Failed to delete article")
	}

	articleID := article.ID
	syncSearchIndex("delete article", func(indexer *search.Indexer) error {
		return indexer.DeleteArticle(articleID)
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// resolveArticleFile validates an optional file attachment reference. The
// referenced file must exist under exactly the given id and storage key.
func resolveArticleFile(fileID *uint, key, role string) (*models.ArticleFile, *apperror.AppError) {
	if fileID == nil {
		return nil, nil
	}
	if !models.IsValidFileRole(role) {
		return nil, apperror.NewValidation("Invalid file role", []apperror.FieldError{
			{Field: "role", Message: "role must be one of thumbnail, image, video"},
		})
	}

	file, err := repository.GetGlobalFactory().GetFileRepository().GetByIDAndKey(*fileID, key)
	if err != nil {
		return nil, apperror.NewValidation("Invalid file reference", []apperror.FieldError{
			{Field: "fileId", Message: "file does not exist"},
		})
	}
	return &models.ArticleFile{FileID: file.ID, Role: role}, nil
}

// respondArticle serializes a single article with the requester's follow and
// favorite state resolved.
func respondArticle(c *fiber.Ctx, article *models.Article, status int) error {
	followingIDs, err := followingSetFor(c, []uint{article.UserID})
	if err != nil {
		return apperror.NewInternal("Failed to load follow state")
	}
	fileURLs := articleFileURLs(article)
	return c.Status(status).JSON(fiber.Map{
		"article": viewmodel.NewArticle(article, usercontext.GetUserID(c), followingIDs, fileURLs),
	})
}

// respondArticleList runs a filtered listing and serializes the page together
// with the total count.
func respondArticleList(c *fiber.Ctx, filter repository.ArticleFilter) error {
	articles, total, err := repository.GetGlobalFactory().GetArticleRepository().List(filter)
	if err != nil {
		return apperror.NewInternal("Failed to load articles")
	}

	followingIDs, err := followingSetFor(c, viewmodel.ArticleAuthorIDs(articles))
	if err != nil {
		return apperror.NewInternal("Failed to load follow state")
	}

	currentUserID := usercontext.GetUserID(c)
	results := make([]viewmodel.Article, 0, len(articles))
	for i := range articles {
		fileURLs := articleFileURLs(&articles[i])
		results = append(results, viewmodel.NewArticle(&articles[i], currentUserID, followingIDs, fileURLs))
	}

	return c.JSON(fiber.Map{
		"articles":      results,
		"articlesCount": total,
	})
}
