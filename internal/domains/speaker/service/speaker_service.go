package service

import (
	"context"
	"fmt"

	"speakers-backend/internal/domains/speaker/model"
	"speakers-backend/internal/domains/speaker/repository"
	"speakers-backend/internal/infrastructure/storage"
	"speakers-backend/pkg/logger"
)

// speakerService implements Service.
type speakerService struct {
	repo   repository.Repository
	assets storage.AssetStore
}

// NewSpeakerService creates a speaker service instance.
// Dependency injection pattern - receives repository and asset store from the container.
func NewSpeakerService(repo repository.Repository, assets storage.AssetStore) Service {
	return &speakerService{
		repo:   repo,
		assets: assets,
	}
}

// discardUpload is the single compensating action for staged uploads. Every
// failure branch funnels through here so a rejected or failed request never
// leaves an orphaned asset behind. Best-effort: a cleanup error must not
// mask the primary error, so it is only logged.
func (s *speakerService) discardUpload(ctx context.Context, upload *model.StagedUpload) {
	if upload == nil {
		return
	}
	if _, err := s.assets.Delete(ctx, upload.Key); err != nil {
		logger.Warn("Failed to discard staged upload "+upload.Key, err)
	}
}

// removeAsset deletes a no-longer-referenced asset. Best-effort for the same
// reason as discardUpload: the record mutation already committed.
func (s *speakerService) removeAsset(ctx context.Context, key string) {
	if _, err := s.assets.Delete(ctx, key); err != nil {
		logger.Warn("Failed to remove asset "+key, err)
	}
}

func (s *speakerService) Create(ctx context.Context, req model.CreateSpeakerRequest, upload *model.StagedUpload) (*model.Speaker, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		s.discardUpload(ctx, upload)
		return nil, model.NewValidationError(err)
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name, 0)
	if err != nil {
		s.discardUpload(ctx, upload)
		return nil, fmt.Errorf("failed to check speaker name: %w", err)
	}
	if exists {
		s.discardUpload(ctx, upload)
		return nil, model.ErrDuplicateName
	}

	sp := &model.Speaker{
		Name:        req.Name,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Display:     model.Display(req.Display),
	}
	if upload != nil {
		key := upload.Key
		sp.Photo = &key
	}

	created, err := s.repo.Create(ctx, sp)
	if err != nil {
		// No orphan asset survives a failed create.
		s.discardUpload(ctx, upload)
		return nil, err
	}

	return created, nil
}

func (s *speakerService) GetByID(ctx context.Context, id int64) (*model.Speaker, error) {
	if id <= 0 {
		return nil, model.ErrInvalidSpeakerID
	}

	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, model.ErrSpeakerNotFound
	}

	return sp, nil
}

func (s *speakerService) List(ctx context.Context, query model.ListQuery) (*model.SpeakerListResponse, error) {
	query.Normalize()
	filter := query.Filter()

	// Count and page run the same filter as two independent queries.
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	offset := (query.Page - 1) * query.Limit
	speakers, err := s.repo.List(ctx, filter, query.Limit, offset)
	if err != nil {
		return nil, err
	}
	if speakers == nil {
		speakers = []model.Speaker{}
	}

	return &model.SpeakerListResponse{
		Data:       speakers,
		Pagination: model.NewPagination(query.Page, query.Limit, total),
	}, nil
}

func (s *speakerService) Update(ctx context.Context, id int64, req model.UpdateSpeakerRequest, upload *model.StagedUpload) (*model.Speaker, error) {
	if id <= 0 {
		s.discardUpload(ctx, upload)
		return nil, model.ErrInvalidSpeakerID
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		s.discardUpload(ctx, upload)
		return nil, model.NewValidationError(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.discardUpload(ctx, upload)
		return nil, err
	}
	if existing == nil {
		s.discardUpload(ctx, upload)
		return nil, model.ErrSpeakerNotFound
	}

	if req.Name != nil && *req.Name != existing.Name {
		exists, err := s.repo.ExistsByName(ctx, *req.Name, id)
		if err != nil {
			s.discardUpload(ctx, upload)
			return nil, fmt.Errorf("failed to check speaker name: %w", err)
		}
		if exists {
			s.discardUpload(ctx, upload)
			return nil, model.ErrDuplicateName
		}
	}

	patch := req.ToPatch()
	if upload != nil {
		key := upload.Key
		patch.Photo = &key
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		// The record still references the previous asset; only the newly
		// staged file is discarded.
		s.discardUpload(ctx, upload)
		return nil, err
	}

	// Delete the replaced asset only after the update committed, so there is
	// no window where the record points at a vanished file.
	if upload != nil && existing.HasPhoto() {
		s.removeAsset(ctx, *existing.Photo)
	}

	return updated, nil
}

func (s *speakerService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrInvalidSpeakerID
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return model.ErrSpeakerNotFound
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		// Lost a race with a concurrent delete.
		return model.ErrSpeakerNotFound
	}

	// Row first, asset second: a crash here leaves an orphaned file for the
	// sweep worker, never a record referencing a deleted file.
	if existing.HasPhoto() {
		s.removeAsset(ctx, *existing.Photo)
	}

	return nil
}
