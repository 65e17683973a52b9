package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateSpeakerRequestValidate(t *testing.T) {
	valid := CreateSpeakerRequest{
		Name:        "Ada Lovelace",
		Type:        "keynote",
		Category:    "science",
		Description: "Pioneer of computing",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateSpeakerRequest)
	}{
		{"missing name", func(r *CreateSpeakerRequest) { r.Name = "" }},
		{"missing type", func(r *CreateSpeakerRequest) { r.Type = "" }},
		{"missing category", func(r *CreateSpeakerRequest) { r.Category = "" }},
		{"missing description", func(r *CreateSpeakerRequest) { r.Description = "" }},
		{"unknown display", func(r *CreateSpeakerRequest) { r.Display = "hidden" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}

	t.Run("display values", func(t *testing.T) {
		req := valid
		req.Display = "active"
		assert.NoError(t, req.Validate())
		req.Display = "inactive"
		assert.NoError(t, req.Validate())
	})
}

func TestCreateSpeakerRequestNormalize(t *testing.T) {
	req := CreateSpeakerRequest{
		Name:        "  Ada Lovelace  ",
		Type:        " keynote ",
		Category:    "science",
		Description: "\tPioneer of computing\n",
		Display:     " active ",
	}
	req.Normalize()

	assert.Equal(t, "Ada Lovelace", req.Name)
	assert.Equal(t, "keynote", req.Type)
	assert.Equal(t, "Pioneer of computing", req.Description)
	assert.Equal(t, "active", req.Display)
	assert.NoError(t, req.Validate())
}

func TestCreateSpeakerRequestWhitespaceOnlyFails(t *testing.T) {
	// Whitespace-only required fields must not survive as empty strings.
	req := CreateSpeakerRequest{
		Name:        "   ",
		Type:        "keynote",
		Category:    "science",
		Description: "A speaker",
	}
	req.Normalize()
	assert.Error(t, req.Validate())
}

func TestUpdateSpeakerRequestNormalize(t *testing.T) {
	padded := "  Ada  "
	blank := " \t "
	req := UpdateSpeakerRequest{Name: &padded, Category: &blank}
	req.Normalize()

	assert.Equal(t, "Ada", *req.Name)
	assert.Error(t, req.Validate(), "whitespace-only supplied field is rejected")
	assert.Nil(t, req.Type, "absent fields stay absent")
}

func TestUpdateSpeakerRequestValidate(t *testing.T) {
	assert.NoError(t, UpdateSpeakerRequest{}.Validate(), "all fields optional")

	name := "Ada"
	assert.NoError(t, UpdateSpeakerRequest{Name: &name}.Validate())

	empty := ""
	assert.Error(t, UpdateSpeakerRequest{Name: &empty}.Validate(), "supplied fields must not be empty")

	bad := "hidden"
	assert.Error(t, UpdateSpeakerRequest{Display: &bad}.Validate())
}

func TestDisplayIsValid(t *testing.T) {
	assert.True(t, DisplayActive.IsValid())
	assert.True(t, DisplayInactive.IsValid())
	assert.False(t, Display("hidden").IsValid())
	assert.False(t, Display("").IsValid())
}

func TestPatchIsZero(t *testing.T) {
	assert.True(t, Patch{}.IsZero())
	assert.True(t, UpdateSpeakerRequest{}.ToPatch().IsZero())

	name := "Ada"
	assert.False(t, Patch{Name: &name}.IsZero())
	assert.False(t, UpdateSpeakerRequest{Name: &name}.ToPatch().IsZero())
}

func TestListQueryNormalize(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative", -3, -1, 1, 10},
		{"capped limit", 2, 500, 2, 100},
		{"valid untouched", 4, 25, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ListQuery{Page: tt.page, Limit: tt.limit}
			q.Normalize()
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		total       int64
		wantPages   int
		hasNext     bool
		hasPrev     bool
	}{
		{"exact division", 1, 5, 10, 2, true, false},
		{"ceil on remainder", 1, 3, 7, 3, true, false},
		{"last page", 3, 3, 7, 3, false, true},
		{"single page", 1, 10, 4, 1, false, false},
		{"empty result", 1, 10, 0, 0, false, false},
		{"beyond last page", 9, 10, 4, 1, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.total, p.TotalRecords)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
		})
	}
}
