package repository

import (
	"context"

	"speakers-backend/internal/domains/speaker/model"
)

// Repository defines data access for eminent speaker records.
type Repository interface {
	// Create inserts a row and returns the persisted record, re-read from
	// the database so server-side defaults (display, timestamps, id) are
	// reflected, not the input echoed back.
	Create(ctx context.Context, sp *model.Speaker) (*model.Speaker, error)

	// GetByID returns nil, nil when no record exists; absence is not an error.
	GetByID(ctx context.Context, id int64) (*model.Speaker, error)

	// List returns one page, ordered by created_at DESC then id DESC for a
	// deterministic order across pages.
	List(ctx context.Context, filter model.Filter, limit, offset int) ([]model.Speaker, error)

	// Count returns the number of rows matching the same filter List uses.
	Count(ctx context.Context, filter model.Filter) (int64, error)

	// Update applies the patch, always refreshing updated_at, and returns
	// the updated row. ErrSpeakerNotFound if the id is absent.
	Update(ctx context.Context, id int64, patch model.Patch) (*model.Speaker, error)

	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)

	// ExistsByName supports name uniqueness checks; excludeID > 0 skips the
	// record being updated.
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)

	// PhotoKeys returns every non-null speaker_photo value. Used by the
	// orphan asset sweep.
	PhotoKeys(ctx context.Context) ([]string, error)
}
