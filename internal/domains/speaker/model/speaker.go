package model

import (
	"time"
)

// Display controls whether a speaker is publicly visible.
type Display string

const (
	DisplayActive   Display = "active"
	DisplayInactive Display = "inactive"
)

// IsValid reports whether d is one of the known display states.
func (d Display) IsValid() bool {
	return d == DisplayActive || d == DisplayInactive
}

// Speaker is the persisted eminent speaker record. The json tags follow the
// public wire shape of the API.
type Speaker struct {
	ID          int64     `json:"speaker_id" db:"speaker_id"`
	Name        string    `json:"speaker_name" db:"speaker_name"`
	Type        string    `json:"type" db:"type"`
	Photo       *string   `json:"speaker_photo" db:"speaker_photo"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	Display     Display   `json:"display" db:"display"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// HasPhoto checks whether the record references an asset.
func (s *Speaker) HasPhoto() bool {
	return s.Photo != nil && *s.Photo != ""
}

// Filter is an exact-match conjunction over the optional list filters.
// Empty fields are omitted from the predicate, never matched as "".
// Count and page queries consume the same Filter so totals always agree
// with the filtered set.
type Filter struct {
	Category string
	Type     string
	Display  string
}

// Patch is a declarative partial update: nil means "leave the column
// untouched", non-nil means "set to this value". The repository turns it
// into one parameterized UPDATE; id and created_at can never appear here.
type Patch struct {
	Name        *string
	Type        *string
	Category    *string
	Description *string
	Display     *string
	Photo       *string
}

// IsZero reports whether the patch sets nothing.
func (p Patch) IsZero() bool {
	return p.Name == nil && p.Type == nil && p.Category == nil &&
		p.Description == nil && p.Display == nil && p.Photo == nil
}
