package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"speakers-backend/internal/domains/speaker/repository"
	"speakers-backend/internal/infrastructure/storage"
)

// SweepOrphanAssetsPayload configures one sweep run.
type SweepOrphanAssetsPayload struct {
	GraceMins int `json:"grace_mins"`
}

// SweepOrphanAssetsHandler reclaims stored photos no speaker record
// references. Orphans appear when a crash lands between asset and row
// operations; the grace period keeps uploads staged by in-flight requests
// safe from the sweep.
type SweepOrphanAssetsHandler struct {
	assets storage.AssetStore
	repo   repository.Repository
}

func NewSweepOrphanAssetsHandler(assets storage.AssetStore, repo repository.Repository) *SweepOrphanAssetsHandler {
	return &SweepOrphanAssetsHandler{
		assets: assets,
		repo:   repo,
	}
}

func (h *SweepOrphanAssetsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload SweepOrphanAssetsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal SweepOrphanAssets payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if payload.GraceMins <= 0 {
		payload.GraceMins = 60
	}

	removed, err := h.Sweep(ctx, time.Duration(payload.GraceMins)*time.Minute)
	if err != nil {
		log.Error().Err(err).Msg("Orphan asset sweep failed")
		return fmt.Errorf("sweep orphan assets: %w", err)
	}

	log.Info().
		Int("removed", removed).
		Msg("Orphan asset sweep completed")

	return nil
}

// Sweep deletes assets older than grace that no record references and
// returns how many were removed. Referenced keys are snapshotted before
// listing assets, so a photo attached mid-sweep is at worst skipped until
// the next run, never deleted.
func (h *SweepOrphanAssetsHandler) Sweep(ctx context.Context, grace time.Duration) (int, error) {
	referenced, err := h.repo.PhotoKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("load referenced keys: %w", err)
	}

	keep := make(map[string]struct{}, len(referenced))
	for _, key := range referenced {
		keep[key] = struct{}{}
	}

	assets, err := h.assets.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list assets: %w", err)
	}

	cutoff := time.Now().Add(-grace)
	removed := 0
	for _, asset := range assets {
		if _, ok := keep[asset.Key]; ok {
			continue
		}
		if asset.ModTime.After(cutoff) {
			continue
		}

		if _, err := h.assets.Delete(ctx, asset.Key); err != nil {
			log.Warn().
				Err(err).
				Str("key", asset.Key).
				Msg("Failed to delete orphan asset")
			continue
		}
		removed++
	}

	return removed, nil
}
