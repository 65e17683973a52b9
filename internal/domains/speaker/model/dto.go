package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// StagedUpload describes a photo the upload middleware already persisted to
// the asset store before the service ran. The service either commits the key
// onto a record or discards it on failure; it never re-reads the bytes.
type StagedUpload struct {
	Key          string
	OriginalName string
	MimeType     string
}

// CreateSpeakerRequest - POST /eminent-speakers (multipart form fields)
type CreateSpeakerRequest struct {
	Name        string `form:"speaker_name" json:"speaker_name"`
	Type        string `form:"type" json:"type"`
	Category    string `form:"category" json:"category"`
	Description string `form:"description" json:"description"`
	Display     string `form:"display" json:"display"`
}

// Normalize trims surrounding whitespace so validation runs against the
// effective values: a whitespace-only required field fails Required instead
// of being persisted as an empty string.
func (r *CreateSpeakerRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.TrimSpace(r.Type)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
	r.Display = strings.TrimSpace(r.Display)
}

func (r CreateSpeakerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("speaker_name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Type,
			validation.Required.Error("type is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
		),
		validation.Field(&r.Display,
			validation.In(string(DisplayActive), string(DisplayInactive)).
				Error("display must be active or inactive"),
		),
	)
}

// UpdateSpeakerRequest - PUT /eminent-speakers/:id
// All fields optional; only supplied fields change (partial merge).
type UpdateSpeakerRequest struct {
	Name        *string `form:"speaker_name" json:"speaker_name,omitempty"`
	Type        *string `form:"type" json:"type,omitempty"`
	Category    *string `form:"category" json:"category,omitempty"`
	Description *string `form:"description" json:"description,omitempty"`
	Display     *string `form:"display" json:"display,omitempty"`
}

// Normalize trims the supplied fields in place. A field that is whitespace
// only becomes empty and fails NilOrNotEmpty, the same rejection Create
// applies to its required fields.
func (r *UpdateSpeakerRequest) Normalize() {
	for _, field := range []*string{r.Name, r.Type, r.Category, r.Description, r.Display} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

func (r UpdateSpeakerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty.Error("speaker_name must not be empty"), validation.Length(1, 255)),
		validation.Field(&r.Type, validation.NilOrNotEmpty.Error("type must not be empty"), validation.Length(1, 100)),
		validation.Field(&r.Category, validation.NilOrNotEmpty.Error("category must not be empty"), validation.Length(1, 100)),
		validation.Field(&r.Description, validation.NilOrNotEmpty.Error("description must not be empty")),
		validation.Field(&r.Display,
			validation.When(r.Display != nil,
				validation.In(string(DisplayActive), string(DisplayInactive)).
					Error("display must be active or inactive"),
			),
		),
	)
}

// ToPatch converts the request into the declarative column patch.
func (r UpdateSpeakerRequest) ToPatch() Patch {
	return Patch{
		Name:        r.Name,
		Type:        r.Type,
		Category:    r.Category,
		Description: r.Description,
		Display:     r.Display,
	}
}

// ListQuery carries the raw list parameters from the transport layer.
type ListQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Category string `form:"category"`
	Type     string `form:"type"`
	Display  string `form:"display"`
}

// Normalize clamps page/limit so the repository never sees values that
// would miscompute the offset.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
}

// Filter extracts the exact-match conjunction from the query.
func (q ListQuery) Filter() Filter {
	return Filter{
		Category: q.Category,
		Type:     q.Type,
		Display:  q.Display,
	}
}

// Pagination is the envelope returned next to every list page.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}

// NewPagination computes the envelope: totalPages = ceil(total/limit),
// hasNext = page < totalPages, hasPrev = page > 1.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalRecords: total,
		HasNext:      page < totalPages,
		HasPrev:      page > 1,
	}
}

// SpeakerListResponse pairs a page of records with its pagination envelope.
type SpeakerListResponse struct {
	Data       []Speaker  `json:"data"`
	Pagination Pagination `json:"pagination"`
}
