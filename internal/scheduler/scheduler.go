// internal/scheduler/scheduler.go
//
// Package scheduler owns the process-wide gocron scheduler. Jobs register
// through AddJob between Init and Start.
package scheduler

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotInitialized = errors.New("scheduler not initialized")
	ErrEmptyJobName   = errors.New("job name is required")
	ErrEmptyCronExpr  = errors.New("cron expression is required")
)

var (
	initOnce  sync.Once
	initErr   error
	scheduler gocron.Scheduler

	stopOnce sync.Once
	stopErr  error
)

// Init creates the scheduler singleton. Job panics are logged, never fatal.
func Init() error {
	initOnce.Do(func() {
		scheduler, initErr = gocron.NewScheduler(
			gocron.WithGlobalJobOptions(
				gocron.WithEventListeners(
					gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
						log.Error().
							Str("job_id", jobID.String()).
							Str("job_name", jobName).
							Interface("panic", recoverData).
							Msg("Scheduler job panicked")
					}),
				),
			),
		)
		if initErr == nil {
			log.Info().Msg("Scheduler initialized")
		}
	})
	return initErr
}

// Start begins running registered jobs.
func Start() error {
	if scheduler == nil {
		return ErrNotInitialized
	}
	log.Info().Msg("Scheduler starting")
	scheduler.Start()
	return nil
}

// Stop shuts the scheduler down and waits for running jobs.
func Stop() error {
	if scheduler == nil {
		return ErrNotInitialized
	}
	stopOnce.Do(func() {
		log.Info().Msg("Scheduler stopping")
		stopErr = scheduler.Shutdown()
	})
	return stopErr
}

// AddJob registers a cron-based job.
func AddJob(name, cronExpr string, task func(), options ...gocron.JobOption) (gocron.Job, error) {
	if scheduler == nil {
		return nil, ErrNotInitialized
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}
	if strings.TrimSpace(cronExpr) == "" {
		return nil, ErrEmptyCronExpr
	}

	jobLogger := log.With().Str("job_name", name).Str("cron", cronExpr).Logger()
	wrappedTask := func() {
		jobLogger.Debug().Msg("Scheduler job started")
		task()
		jobLogger.Debug().Msg("Scheduler job completed")
	}

	job, err := scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(wrappedTask),
		append([]gocron.JobOption{gocron.WithName(name)}, options...)...,
	)
	if err != nil {
		jobLogger.Error().Err(err).Msg("Failed to register scheduler job")
		return nil, err
	}
	jobLogger.Info().Msg("Scheduler job registered")
	return job, nil
}
