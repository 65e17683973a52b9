package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"speakers-backend/internal/domains/speaker/model"
	"speakers-backend/internal/infrastructure/storage"
	"speakers-backend/internal/shared/response"
)

const (
	// StagedUploadKey is the gin context key carrying the staged photo.
	StagedUploadKey = "staged_upload"

	// MaxPhotoSize caps speaker photos at 5 MiB.
	MaxPhotoSize = 5 << 20

	photoFormField = "speaker_photo"
)

// SpeakerPhotoUpload parses an optional multipart photo, enforces the
// image-only and size restrictions, and stages the file into the asset store
// before the handler runs. Rejections here never reach the service; the
// service only ever sees an already-staged upload (or none).
func SpeakerPhotoUpload(assets storage.AssetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")
		if !strings.HasPrefix(contentType, "multipart/form-data") {
			c.Next()
			return
		}

		file, header, err := c.Request.FormFile(photoFormField)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				c.Next()
				return
			}
			response.ErrorResponse(c, http.StatusBadRequest, "UPLOAD_ERROR", "Failed to parse uploaded file")
			c.Abort()
			return
		}
		defer file.Close()

		if header.Size > MaxPhotoSize {
			response.ErrorResponse(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File size should not exceed 5MB")
			c.Abort()
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(mimeType, "image/") {
			response.ErrorResponse(c, http.StatusBadRequest, "INVALID_FILE", "Only image files are allowed")
			c.Abort()
			return
		}

		key, err := assets.Save(c.Request.Context(), header.Filename, file)
		if err != nil {
			log.Error().Err(err).Str("filename", header.Filename).Msg("Failed to stage uploaded photo")
			response.ErrorResponse(c, http.StatusInternalServerError, "STORAGE_WRITE_ERROR", "Failed to store uploaded file")
			c.Abort()
			return
		}

		c.Set(StagedUploadKey, &model.StagedUpload{
			Key:          key,
			OriginalName: header.Filename,
			MimeType:     mimeType,
		})

		c.Next()
	}
}

// StagedUpload pulls the staged photo out of the context, nil when the
// request carried no file.
func StagedUpload(c *gin.Context) *model.StagedUpload {
	if v, ok := c.Get(StagedUploadKey); ok {
		if upload, ok := v.(*model.StagedUpload); ok {
			return upload
		}
	}
	return nil
}
