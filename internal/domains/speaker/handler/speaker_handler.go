package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"speakers-backend/internal/domains/speaker/model"
	"speakers-backend/internal/domains/speaker/service"
	"speakers-backend/internal/shared/middleware"
	"speakers-backend/internal/shared/response"
	"speakers-backend/pkg/logger"
)

// SpeakerHandler translates HTTP requests into service calls. Stateless;
// only holds dependencies.
type SpeakerHandler struct {
	service service.Service
}

// NewSpeakerHandler creates a handler instance.
func NewSpeakerHandler(service service.Service) *SpeakerHandler {
	return &SpeakerHandler{service: service}
}

// pathID parses the :id path parameter. Invalid input yields 0, which the
// service rejects as INVALID_PARAMETER after discarding any staged upload -
// short-circuiting here would leak the staged file.
func pathID(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// formField returns a form field as a patch value; absent or empty fields
// mean "leave unchanged", matching partial-merge semantics.
func formField(c *gin.Context, name string) *string {
	if v, ok := c.GetPostForm(name); ok && v != "" {
		return &v
	}
	return nil
}

// Create handles POST /eminent-speakers
func (h *SpeakerHandler) Create(c *gin.Context) {
	req := model.CreateSpeakerRequest{
		Name:        c.PostForm("speaker_name"),
		Type:        c.PostForm("type"),
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
		Display:     c.PostForm("display"),
	}
	if req.Display == "" {
		req.Display = string(model.DisplayActive)
	}

	sp, err := h.service.Create(c.Request.Context(), req, middleware.StagedUpload(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Eminent speaker created successfully", sp)
}

// List handles GET /eminent-speakers
func (h *SpeakerHandler) List(c *gin.Context) {
	var query model.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_PARAMETER", "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK,
		"Eminent speakers retrieved successfully", result.Data, result.Pagination)
}

// GetByID handles GET /eminent-speakers/:id
func (h *SpeakerHandler) GetByID(c *gin.Context) {
	sp, err := h.service.GetByID(c.Request.Context(), pathID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Eminent speaker retrieved successfully", sp)
}

// Update handles PUT /eminent-speakers/:id
func (h *SpeakerHandler) Update(c *gin.Context) {
	req := model.UpdateSpeakerRequest{
		Name:        formField(c, "speaker_name"),
		Type:        formField(c, "type"),
		Category:    formField(c, "category"),
		Description: formField(c, "description"),
		Display:     formField(c, "display"),
	}

	sp, err := h.service.Update(c.Request.Context(), pathID(c), req, middleware.StagedUpload(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Eminent speaker updated successfully", sp)
}

// Delete handles DELETE /eminent-speakers/:id
func (h *SpeakerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), pathID(c)); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Eminent speaker deleted successfully", nil)
}

// handleError maps domain errors to the stable errorKind -> status contract.
func (h *SpeakerHandler) handleError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	code := model.ToErrorCode(err)

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		response.ErrorWithDetails(c, status, code, "Validation failed", ve.Err)
		return
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Speaker operation failed", err)
		response.ErrorResponse(c, status, code, "Internal server error")
		return
	}

	response.ErrorResponse(c, status, code, err.Error())
}
