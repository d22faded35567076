package controllers

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khanh-pt/realworld/app/models"
	"github.com/khanh-pt/realworld/app/repository"
	"github.com/khanh-pt/realworld/internal/pkg/apperror"
	"github.com/khanh-pt/realworld/internal/pkg/storage"
	"github.com/khanh-pt/realworld/internal/pkg/validation"
)

const maxFileSize = 5 * 1024 * 1024

// allowed content types and the extensions each one accepts
var allowedExtensions = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
}

type presignedURLRequest struct {
	File struct {
		Filename    string `json:"filename" validate:"required,max=255"`
		ContentType string `json:"contentType" validate:"required"`
		ByteSize    int64  `json:"byteSize" validate:"required,gt=0"`
		Checksum    string `json:"checksum" validate:"required"`
	} `json:"file"`
}

type presignedURLResponse struct {
	FileID    uint    `json:"fileId"`
	Key       string  `json:"key"`
	Exists    bool    `json:"exists"`
	UploadURL *string `json:"uploadUrl"`
}

// HandleCreatePresignedURL registers an upload and returns a presigned PUT
// URL. Uploads are deduplicated by checksum: a known checksum returns the
// existing file without a new storage write.
func HandleCreatePresignedURL(c *fiber.Ctx) error {
	var req presignedURLRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.NewBadRequest("Invalid request body")
	}
	if appErr := validation.CheckStruct(&req.File); appErr != nil {
		return appErr
	}
	if appErr := validateUpload(req.File.Filename, req.File.ContentType, req.File.ByteSize); appErr != nil {
		return appErr
	}

	fileRepo := repository.GetGlobalFactory().GetFileRepository()
	existing, err := fileRepo.GetByChecksum(req.File.Checksum)
	if err == nil {
		// Datei mit gleicher Pruefsumme existiert bereits, kein Upload noetig
		return c.JSON(presignedURLResponse{
			FileID: existing.ID,
			Key:    existing.Key,
			Exists: true,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NewInternal("Failed to check file checksum")
	}

	client := storage.GetClient()
	if client == nil {
		return apperror.NewInternal("Object storage is not available")
	}

	file := &models.File{
		Key:         "uploads/" + uuid.New().String() + strings.ToLower(filepath.Ext(req.File.Filename)),
		Filename:    req.File.Filename,
		ContentType: req.File.ContentType,
		ServiceName: "s3",
		ByteSize:    req.File.ByteSize,
		Checksum:    req.File.Checksum,
	}
	if err := fileRepo.Create(file); err != nil {
		return apperror.FromDBError(err, "File not found")
	}

	uploadURL, err := client.PresignUpload(c.Context(), file.Key, file.ContentType, file.ByteSize)
	if err != nil {
		return apperror.NewInternal("Failed to presign upload")
	}

	return c.Status(fiber.StatusCreated).JSON(presignedURLResponse{
		FileID:    file.ID,
		Key:       file.Key,
		Exists:    false,
		UploadURL: &uploadURL,
	})
}

// validateUpload enforces the content type, extension and size limits for
// uploads.
func validateUpload(filename, contentType string, byteSize int64) *apperror.AppError {
	extensions, ok := allowedExtensions[contentType]
	if !ok {
		return apperror.NewValidation("Unsupported content type", []apperror.FieldError{
			{Field: "contentType", Message: "only image/jpeg and image/png are allowed"},
		})
	}

	ext := strings.ToLower(filepath.Ext(filename))
	extOK := false
	for _, allowed := range extensions {
		if ext == allowed {
			extOK = true
			break
		}
	}
	if !extOK {
		return apperror.NewValidation("File extension does not match content type", []apperror.FieldError{
			{Field: "filename", Message: "extension does not match the declared content type"},
		})
	}

	if byteSize > maxFileSize {
		return apperror.NewValidation("File too large", []apperror.FieldError{
			{Field: "byteSize", Message: "file size must not exceed 5 MB"},
		})
	}
	return nil
}
