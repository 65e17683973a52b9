package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"speakers-backend/internal/config"
	"speakers-backend/internal/domains/speaker/job"
	"speakers-backend/internal/shared"
	"speakers-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	workerCfg config.WorkerConfig
}

func NewScheduler(redisAddress string, workerCfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		workerCfg: workerCfg,
	}
}

// RegisterMaintenanceJobs wires all recurring background jobs.
func (s *Scheduler) RegisterMaintenanceJobs() error {
	return s.registerSweepOrphanAssetsJob()
}

// Sweep runs on a low priority queue; orphaned photos only waste disk, so
// timeliness matters less than staying out of the way of request traffic.
func (s *Scheduler) registerSweepOrphanAssetsJob() error {
	payload, err := json.Marshal(job.SweepOrphanAssetsPayload{
		GraceMins: s.workerCfg.SweepGraceMins,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSweepOrphanAssets, payload)

	_, err = s.scheduler.Register(
		s.workerCfg.SweepSchedule,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register SweepOrphanAssets job", err)
		return err
	}

	logger.Info("Registered SweepOrphanAssets", map[string]interface{}{
		"schedule":   s.workerCfg.SweepSchedule,
		"grace_mins": s.workerCfg.SweepGraceMins,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
