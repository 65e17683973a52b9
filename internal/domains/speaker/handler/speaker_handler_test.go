package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"speakers-backend/internal/domains/speaker/repository"
	"speakers-backend/internal/domains/speaker/service"
	"speakers-backend/internal/infrastructure/storage"
	"speakers-backend/internal/shared/middleware"
)

type SpeakerHandlerSuite struct {
	suite.Suite
	router *gin.Engine
	assets *storage.LocalStore
}

func (s *SpeakerHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	assets, err := storage.NewLocalStore(s.T().TempDir())
	s.Require().NoError(err)
	s.assets = assets

	repo := repository.NewInMemory()
	svc := service.NewSpeakerService(repo, assets)
	h := NewSpeakerHandler(svc)

	s.router = gin.New()
	uploadPhoto := middleware.SpeakerPhotoUpload(assets)

	speakers := s.router.Group("/api/eminent-speakers")
	{
		speakers.POST("", uploadPhoto, h.Create)
		speakers.GET("", h.List)
		speakers.GET("/:id", h.GetByID)
		speakers.PUT("/:id", uploadPhoto, h.Update)
		speakers.DELETE("/:id", h.Delete)
	}
}

func TestSpeakerHandlerSuite(t *testing.T) {
	suite.Run(t, new(SpeakerHandlerSuite))
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Error   *errorBody             `json:"error"`
	Page    map[string]interface{} `json:"pagination"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *SpeakerHandlerSuite) do(method, path string, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Buffer
	if body == nil {
		reader = &bytes.Buffer{}
	} else {
		reader = body
	}

	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func (s *SpeakerHandlerSuite) postForm(path string, form url.Values) (*httptest.ResponseRecorder, envelope) {
	return s.do(http.MethodPost, path,
		bytes.NewBufferString(form.Encode()), "application/x-www-form-urlencoded")
}

func (s *SpeakerHandlerSuite) putForm(path string, form url.Values) (*httptest.ResponseRecorder, envelope) {
	return s.do(http.MethodPut, path,
		bytes.NewBufferString(form.Encode()), "application/x-www-form-urlencoded")
}

func validForm(name string) url.Values {
	return url.Values{
		"speaker_name": {name},
		"type":         {"keynote"},
		"category":     {"science"},
		"description":  {"An eminent speaker"},
	}
}

// createSpeaker creates a record through the API and returns its id.
func (s *SpeakerHandlerSuite) createSpeaker(name string) int64 {
	rec, env := s.postForm("/api/eminent-speakers", validForm(name))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var data struct {
		ID int64 `json:"speaker_id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Require().NotZero(data.ID)
	return data.ID
}

func (s *SpeakerHandlerSuite) TestCreateSpeaker() {
	rec, env := s.postForm("/api/eminent-speakers", validForm("Ada Lovelace"))

	s.Equal(http.StatusCreated, rec.Code)
	s.True(env.Success)

	var data struct {
		ID      int64   `json:"speaker_id"`
		Name    string  `json:"speaker_name"`
		Display string  `json:"display"`
		Photo   *string `json:"speaker_photo"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.NotZero(data.ID)
	s.Equal("Ada Lovelace", data.Name)
	s.Equal("active", data.Display)
	s.Nil(data.Photo)
}

func (s *SpeakerHandlerSuite) TestCreateValidationError() {
	form := validForm("Ada Lovelace")
	form.Del("description")

	rec, env := s.postForm("/api/eminent-speakers", form)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.False(env.Success)
	s.Require().NotNil(env.Error)
	s.Equal("VALIDATION_ERROR", env.Error.Code)
}

func (s *SpeakerHandlerSuite) TestCreateDuplicateName() {
	s.createSpeaker("Ada Lovelace")

	rec, env := s.postForm("/api/eminent-speakers", validForm("Ada Lovelace"))

	s.Equal(http.StatusConflict, rec.Code)
	s.Require().NotNil(env.Error)
	s.Equal("DUPLICATE_ENTRY", env.Error.Code)
}

func (s *SpeakerHandlerSuite) TestGetByID() {
	id := s.createSpeaker("Ada Lovelace")

	rec, env := s.do(http.MethodGet, fmt.Sprintf("/api/eminent-speakers/%d", id), nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.True(env.Success)
}

func (s *SpeakerHandlerSuite) TestGetByIDNonNumeric() {
	rec, env := s.do(http.MethodGet, "/api/eminent-speakers/abc", nil, "")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Require().NotNil(env.Error)
	s.Equal("INVALID_PARAMETER", env.Error.Code)
}

func (s *SpeakerHandlerSuite) TestGetByIDNotFound() {
	rec, env := s.do(http.MethodGet, "/api/eminent-speakers/999", nil, "")

	s.Equal(http.StatusNotFound, rec.Code)
	s.Require().NotNil(env.Error)
	s.Equal("NOT_FOUND", env.Error.Code)
}

func (s *SpeakerHandlerSuite) TestListWithPagination() {
	for i := 0; i < 5; i++ {
		s.createSpeaker(fmt.Sprintf("Speaker %d", i))
	}

	rec, env := s.do(http.MethodGet, "/api/eminent-speakers?page=1&limit=2", nil, "")

	s.Equal(http.StatusOK, rec.Code)
	s.True(env.Success)
	s.Require().NotNil(env.Page)
	s.EqualValues(1, env.Page["currentPage"])
	s.EqualValues(3, env.Page["totalPages"])
	s.EqualValues(5, env.Page["totalRecords"])
	s.Equal(true, env.Page["hasNext"])
	s.Equal(false, env.Page["hasPrev"])
}

func (s *SpeakerHandlerSuite) TestListEmpty() {
	rec, env := s.do(http.MethodGet, "/api/eminent-speakers", nil, "")

	s.Equal(http.StatusOK, rec.Code)
	// Empty catalog yields an empty array, not null.
	s.Equal("[]", strings.TrimSpace(string(env.Data)))
}

func (s *SpeakerHandlerSuite) TestUpdatePartial() {
	id := s.createSpeaker("Ada Lovelace")

	rec, env := s.putForm(fmt.Sprintf("/api/eminent-speakers/%d", id),
		url.Values{"category": {"mathematics"}})

	s.Equal(http.StatusOK, rec.Code)

	var data struct {
		Name     string `json:"speaker_name"`
		Category string `json:"category"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Equal("mathematics", data.Category)
	s.Equal("Ada Lovelace", data.Name, "unsupplied fields keep their value")
}

func (s *SpeakerHandlerSuite) TestUpdateNonNumericID() {
	rec, env := s.putForm("/api/eminent-speakers/abc",
		url.Values{"category": {"mathematics"}})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Require().NotNil(env.Error)
	s.Equal("INVALID_PARAMETER", env.Error.Code)
}

func (s *SpeakerHandlerSuite) TestDeleteThenGet() {
	id := s.createSpeaker("Ada Lovelace")

	rec, env := s.do(http.MethodDelete, fmt.Sprintf("/api/eminent-speakers/%d", id), nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.True(env.Success)

	rec, _ = s.do(http.MethodGet, fmt.Sprintf("/api/eminent-speakers/%d", id), nil, "")
	s.Equal(http.StatusNotFound, rec.Code)
}

// multipartForm builds a multipart body with the given fields and one photo
// part carrying the given content type.
func multipartForm(t *testing.T, fields map[string]string, filename, fileContentType string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}

	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="speaker_photo"; filename="%s"`, filename))
		h.Set("Content-Type", fileContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte("image-bytes")); err != nil {
			t.Fatal(err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return body, w.FormDataContentType()
}

func (s *SpeakerHandlerSuite) TestCreateWithPhoto() {
	fields := map[string]string{
		"speaker_name": "Ada Lovelace",
		"type":         "keynote",
		"category":     "science",
		"description":  "An eminent speaker",
	}
	body, contentType := multipartForm(s.T(), fields, "portrait.jpg", "image/jpeg")

	rec, env := s.do(http.MethodPost, "/api/eminent-speakers", body, contentType)

	s.Equal(http.StatusCreated, rec.Code)

	var data struct {
		Photo *string `json:"speaker_photo"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Require().NotNil(data.Photo)

	exists, err := s.assets.Exists(context.Background(), *data.Photo)
	s.Require().NoError(err)
	s.True(exists)
}

func (s *SpeakerHandlerSuite) TestCreateRejectsNonImageUpload() {
	fields := map[string]string{"speaker_name": "Ada Lovelace"}
	body, contentType := multipartForm(s.T(), fields, "payload.pdf", "application/pdf")

	rec, env := s.do(http.MethodPost, "/api/eminent-speakers", body, contentType)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Require().NotNil(env.Error)
	s.Equal("INVALID_FILE", env.Error.Code)

	// Rejected uploads never reach the store.
	assets, err := s.assets.List(context.Background())
	s.Require().NoError(err)
	s.Empty(assets)
}

func (s *SpeakerHandlerSuite) TestCreateRejectsOversizedUpload() {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="speaker_photo"; filename="huge.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	s.Require().NoError(err)
	_, err = part.Write(bytes.Repeat([]byte("x"), middleware.MaxPhotoSize+1))
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	rec, env := s.do(http.MethodPost, "/api/eminent-speakers", body, w.FormDataContentType())

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Require().NotNil(env.Error)
	s.Equal("FILE_TOO_LARGE", env.Error.Code)
}

func (s *SpeakerHandlerSuite) TestFailedCreateCleansStagedPhoto() {
	// Photo is fine, but the form is missing required fields.
	fields := map[string]string{"speaker_name": "Ada Lovelace"}
	body, contentType := multipartForm(s.T(), fields, "portrait.jpg", "image/jpeg")

	rec, _ := s.do(http.MethodPost, "/api/eminent-speakers", body, contentType)

	s.Equal(http.StatusBadRequest, rec.Code)

	assets, err := s.assets.List(context.Background())
	s.Require().NoError(err)
	s.Empty(assets, "staged photo must be cleaned up after the rejected request")
}
