package main

import (
	"github.com/hibiken/asynq"

	speakerJob "speakers-backend/internal/domains/speaker/job"
	"speakers-backend/internal/shared"
	"speakers-backend/pkg/container"
)

// HandlerRegistry holds all task handlers the worker serves.
type HandlerRegistry struct {
	sweepOrphanAssets *speakerJob.SweepOrphanAssetsHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		sweepOrphanAssets: speakerJob.NewSweepOrphanAssetsHandler(c.Assets, c.SpeakerRepo),
	}
}

func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(shared.TypeSweepOrphanAssets, r.sweepOrphanAssets)
}
