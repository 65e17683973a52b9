package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"speakers-backend/internal/domains/speaker/model"
	"speakers-backend/internal/shared/utils"
	"speakers-backend/pkg/cache"
)

const (
	speakerColumns = `speaker_id, speaker_name, type, speaker_photo, category,
		description, display, created_at, updated_at`

	cacheTTL = 5 * time.Minute
)

// postgresRepository implements Repository on pgxpool with a read-through
// cache on GetByID.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a speaker repository instance.
// Dependency injection pattern - receives pool and cache from the container.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("speaker:%d", id)
}

func scanSpeaker(row pgx.Row) (*model.Speaker, error) {
	var sp model.Speaker
	err := row.Scan(
		&sp.ID,
		&sp.Name,
		&sp.Type,
		&sp.Photo,
		&sp.Category,
		&sp.Description,
		&sp.Display,
		&sp.CreatedAt,
		&sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

// filterClauses turns the declarative filter into parameterized WHERE
// clauses. List and Count both call this, so the count always matches the
// paged set.
func filterClauses(f model.Filter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if f.Category != "" {
		args = append(args, f.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		clauses = append(clauses, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Display != "" {
		args = append(args, f.Display)
		clauses = append(clauses, fmt.Sprintf("display = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + utils.JoinWithAnd(clauses), args
}

// Create inserts a new speaker row and re-reads it so server-side defaults
// are reflected in the result.
func (r *postgresRepository) Create(ctx context.Context, sp *model.Speaker) (*model.Speaker, error) {
	query := `
		INSERT INTO eminent_speakers
			(speaker_name, type, speaker_photo, category, description, display, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + speakerColumns

	display := sp.Display
	if display == "" {
		display = model.DisplayActive
	}

	row := r.pool.QueryRow(ctx, query,
		sp.Name, sp.Type, sp.Photo, sp.Category, sp.Description, display,
	)

	created, err := scanSpeaker(row)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") {
			return nil, model.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create speaker: %w", err)
	}

	return created, nil
}

// GetByID retrieves a speaker by id, nil when absent.
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Speaker, error) {
	var cached model.Speaker
	if found, err := r.cache.Get(ctx, cacheKey(id), &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + speakerColumns + ` FROM eminent_speakers WHERE speaker_id = $1`

	sp, err := scanSpeaker(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get speaker by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey(id), sp, cacheTTL); err != nil {
		log.Warn().Err(err).Int64("speaker_id", id).Msg("Failed to cache speaker")
	}

	return sp, nil
}

// List retrieves one page ordered newest first. The tie-break on speaker_id
// keeps the order deterministic when created_at collides.
func (r *postgresRepository) List(ctx context.Context, filter model.Filter, limit, offset int) ([]model.Speaker, error) {
	where, args := filterClauses(filter)

	query := fmt.Sprintf(
		`SELECT %s FROM eminent_speakers%s ORDER BY created_at DESC, speaker_id DESC LIMIT $%d OFFSET $%d`,
		speakerColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list speakers: %w", err)
	}
	defer rows.Close()

	var speakers []model.Speaker
	for rows.Next() {
		sp, err := scanSpeaker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan speaker row: %w", err)
		}
		speakers = append(speakers, *sp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating speaker rows: %w", err)
	}

	return speakers, nil
}

// Count executes the same filter predicate as List against COUNT(*). The two
// are structurally independent queries; neither is derived from the other.
func (r *postgresRepository) Count(ctx context.Context, filter model.Filter) (int64, error) {
	where, args := filterClauses(filter)

	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM eminent_speakers`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count speakers: %w", err)
	}

	return count, nil
}

// Update applies the patch in one parameterized statement. updated_at always
// refreshes; speaker_id and created_at are not patchable columns.
func (r *postgresRepository) Update(ctx context.Context, id int64, patch model.Patch) (*model.Speaker, error) {
	var set []string
	var args []interface{}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		appendSet("speaker_name", *patch.Name)
	}
	if patch.Type != nil {
		appendSet("type", *patch.Type)
	}
	if patch.Category != nil {
		appendSet("category", *patch.Category)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.Display != nil {
		appendSet("display", *patch.Display)
	}
	if patch.Photo != nil {
		appendSet("speaker_photo", *patch.Photo)
	}
	set = append(set, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE eminent_speakers SET %s WHERE speaker_id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), speakerColumns,
	)

	updated, err := scanSpeaker(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSpeakerNotFound
		}
		if strings.Contains(err.Error(), "unique constraint") {
			return nil, model.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update speaker: %w", err)
	}

	r.invalidate(ctx, id)

	return updated, nil
}

// Delete removes the row; true iff something was deleted.
func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM eminent_speakers WHERE speaker_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete speaker: %w", err)
	}

	r.invalidate(ctx, id)

	return result.RowsAffected() > 0, nil
}

// ExistsByName checks name uniqueness, optionally excluding one record.
func (r *postgresRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM eminent_speakers WHERE speaker_name = $1 AND speaker_id != $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check speaker name: %w", err)
	}

	return exists, nil
}

// PhotoKeys returns every referenced asset key, for the orphan sweep.
func (r *postgresRepository) PhotoKeys(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT speaker_photo FROM eminent_speakers WHERE speaker_photo IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to list photo keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan photo key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photo keys: %w", err)
	}

	return keys, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		log.Warn().Err(err).Int64("speaker_id", id).Msg("Failed to invalidate speaker cache")
	}
}
