package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/coinbase/l2node/internal/controller"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/log"
)

type (
	RunnerParams struct {
		fx.In
		fxparams.Params
		Lifecycle  fx.Lifecycle
		Controller controller.Controller
	}
)

const (
	subScope    = "cron"
	stopTimeout = time.Second * 5
)

// RegisterRunner schedules the enabled tasks of the controller for the lifetime of the app.
func RegisterRunner(params RunnerParams) error {
	logger := log.WithPackage(params.Logger)
	cfg := params.Config
	metrics := params.Metrics.SubScope(subScope)

	c := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(zap.NewStdLog(logger)))))
	jobCtx, cancel := context.WithCancel(context.Background())

	tasks := params.Controller.CronTasks()
	for _, task := range tasks {
		taskName := task.Name()
		if !task.Enabled() {
			logger.Info("task is disabled", zap.String("task", taskName))
			continue
		}

		job, err := NewJob(jobCtx, cfg, logger, metrics, task)
		if err != nil {
			cancel()
			return xerrors.Errorf("failed to create job %v: %w", taskName, err)
		}

		if _, err := c.AddJob(task.Spec(), job); err != nil {
			cancel()
			return xerrors.Errorf("failed to add job %v (%v): %w", taskName, task.Spec(), err)
		}
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting cron", zap.Int("num_jobs", len(c.Entries())))
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping cron")
			timer := time.NewTimer(stopTimeout)
			defer timer.Stop()
			cancel()
			select {
			case <-c.Stop().Done():
				logger.Info("stopped cron")
			case <-timer.C:
				logger.Error("timed out while stopping cron")
			case <-ctx.Done():
				logger.Error("interrupted while stopping cron", zap.Error(ctx.Err()))
			}
			return nil
		},
	})

	return nil
}
