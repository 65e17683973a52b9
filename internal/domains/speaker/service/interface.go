package service

import (
	"context"

	"speakers-backend/internal/domains/speaker/model"
)

// Service defines business logic for the eminent speaker catalog.
//
// Operations that accept a staged upload guarantee that every validation or
// persistence failure triggers exactly one best-effort cleanup of the file
// staged during that request; cleanup failures are logged, never propagated.
type Service interface {
	// Create validates required fields, enforces name uniqueness and
	// persists a new record. A staged upload becomes the record's photo;
	// on any failure the staged file is discarded.
	Create(ctx context.Context, req model.CreateSpeakerRequest, upload *model.StagedUpload) (*model.Speaker, error)

	// GetByID returns ErrSpeakerNotFound when the record is absent.
	GetByID(ctx context.Context, id int64) (*model.Speaker, error)

	// List returns one page plus the pagination envelope. page/limit are
	// normalized here so the repository never miscomputes an offset.
	List(ctx context.Context, query model.ListQuery) (*model.SpeakerListResponse, error)

	// Update merges only the supplied fields. A staged upload replaces the
	// photo: the repository update commits the new key first, the previous
	// asset is deleted after, so the record never references a missing file.
	// On failure the staged file is discarded and old state left untouched.
	Update(ctx context.Context, id int64, req model.UpdateSpeakerRequest, upload *model.StagedUpload) (*model.Speaker, error)

	// Delete removes the row first, then its asset, so a crash between the
	// two leaves only an orphaned file for the sweep to reclaim - never a
	// record pointing at a deleted file.
	Delete(ctx context.Context, id int64) error
}
