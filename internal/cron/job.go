package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/controller"
	"github.com/coinbase/l2node/internal/utils/instrument"
)

type (
	// Job runs a task on its schedule. A tick is skipped while the task already
	// occupies all of its parallelism slots.
	Job struct {
		ctx        context.Context
		logger     *zap.Logger
		instrument instrument.Call
		task       controller.CronTask
		semaphore  *semaphore.Weighted
		skipped    tally.Counter
	}
)

const (
	jobScope                = "job"
	taskTag                 = "task"
	loggerMsg               = "cron.job"
	delayStartDurationLocal = 2 * time.Second
)

var _ cron.Job = (*Job)(nil)

func NewJob(ctx context.Context, cfg *config.Config, logger *zap.Logger, scope tally.Scope, task controller.CronTask) (*Job, error) {
	parallelism := task.Parallelism()
	if parallelism <= 0 {
		return nil, xerrors.Errorf("invalid parallelism: %v", parallelism)
	}

	// All slots are held until the start delay elapses.
	sem := semaphore.NewWeighted(parallelism)
	if err := sem.Acquire(ctx, parallelism); err != nil {
		return nil, xerrors.Errorf("failed to acquire the semaphore: %w", err)
	}

	// The metric name is static ("l2node.cron.job") and the task name is a tag.
	taskName := task.Name()
	logger = logger.With(zap.String(taskTag, taskName))
	scope = scope.Tagged(map[string]string{
		taskTag: taskName,
	})
	call := instrument.NewCall(
		scope,
		jobScope,
		instrument.WithLogger(logger, loggerMsg),
	)

	delayStartDuration := task.DelayStartDuration()
	if cfg.Env() == config.EnvLocal && delayStartDuration > delayStartDurationLocal {
		delayStartDuration = delayStartDurationLocal
	}

	go func() {
		logger.Info("delay start", zap.Duration("duration", delayStartDuration))
		timer := time.NewTimer(delayStartDuration)
		defer timer.Stop()
		select {
		case <-timer.C:
			sem.Release(parallelism)
		case <-ctx.Done():
		}
	}()

	return &Job{
		ctx:        ctx,
		logger:     logger,
		instrument: call,
		task:       task,
		semaphore:  sem,
		skipped:    scope.SubScope(jobScope).Counter("skipped"),
	}, nil
}

func (j *Job) Run() {
	if j.ctx.Err() != nil {
		return
	}

	if !j.semaphore.TryAcquire(1) {
		j.skipped.Inc(1)
		j.logger.Debug("skipped task")
		return
	}
	defer j.semaphore.Release(1)

	_ = j.instrument.Instrument(j.ctx, func(ctx context.Context) error {
		return j.task.Run(ctx)
	})
}
