package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"

	"github.com/coinbase/l2node/internal/config"
	"github.com/coinbase/l2node/internal/controller"
	"github.com/coinbase/l2node/internal/utils/fxparams"
	"github.com/coinbase/l2node/internal/utils/testapp"
	"github.com/coinbase/l2node/internal/utils/testutil"
)

type (
	CronTestSuite struct {
		suite.Suite
		cfg *config.Config
	}

	fakeTask struct {
		name        string
		enabled     bool
		parallelism int64
		delay       time.Duration
		spec        string
		runs        int32
		block       chan struct{}
	}

	fakeController struct {
		tasks []controller.CronTask
	}
)

func TestCronTestSuite(t *testing.T) {
	suite.Run(t, new(CronTestSuite))
}

func (s *CronTestSuite) SetupTest() {
	cfg, err := config.New(config.WithEnvironment(config.EnvDevelopment))
	s.Require().NoError(err)
	s.cfg = cfg
}

func (s *CronTestSuite) TestJob() {
	require := testutil.Require(s.T())
	app := testapp.New(s.T(), testapp.WithConfig(s.cfg))
	defer app.Close()

	task := &fakeTask{name: "test", parallelism: 1}
	job, err := NewJob(context.Background(), s.cfg, app.Logger(), app.Metrics(), task)
	require.NoError(err)

	require.Eventually(func() bool {
		job.Run()
		return atomic.LoadInt32(&task.runs) == 1
	}, time.Second, 10*time.Millisecond)
}

func (s *CronTestSuite) TestJob_DelayStart() {
	require := testutil.Require(s.T())
	app := testapp.New(s.T(), testapp.WithConfig(s.cfg))
	defer app.Close()

	task := &fakeTask{name: "test", parallelism: 1, delay: time.Hour}
	job, err := NewJob(context.Background(), s.cfg, app.Logger(), app.Metrics(), task)
	require.NoError(err)

	job.Run()
	require.Zero(atomic.LoadInt32(&task.runs))
	require.Equal(int64(1), app.Metrics().Snapshot().Counters()["l2node.job.skipped+task=test"].Value())
}

func (s *CronTestSuite) TestJob_SkipWhileRunning() {
	require := testutil.Require(s.T())
	app := testapp.New(s.T(), testapp.WithConfig(s.cfg))
	defer app.Close()

	task := &fakeTask{name: "test", parallelism: 1, block: make(chan struct{})}
	job, err := NewJob(context.Background(), s.cfg, app.Logger(), app.Metrics(), task)
	require.NoError(err)

	// Wait for the start delay to elapse.
	require.Eventually(func() bool {
		if !job.semaphore.TryAcquire(1) {
			return false
		}
		job.semaphore.Release(1)
		return true
	}, time.Second, time.Millisecond)

	done := make(chan struct{})
	go func() {
		job.Run()
		close(done)
	}()
	require.Eventually(func() bool {
		return atomic.LoadInt32(&task.runs) == 1
	}, time.Second, time.Millisecond)

	job.Run()
	require.Equal(int32(1), atomic.LoadInt32(&task.runs))

	close(task.block)
	<-done
}

func (s *CronTestSuite) TestJob_InvalidParallelism() {
	require := testutil.Require(s.T())
	app := testapp.New(s.T(), testapp.WithConfig(s.cfg))
	defer app.Close()

	_, err := NewJob(context.Background(), s.cfg, app.Logger(), app.Metrics(), &fakeTask{name: "test"})
	require.Error(err)
	require.Contains(err.Error(), "invalid parallelism")
}

func (s *CronTestSuite) TestRunner() {
	require := testutil.Require(s.T())

	enabled := &fakeTask{name: "enabled", enabled: true, parallelism: 1, spec: "@every 1s"}
	disabled := &fakeTask{name: "disabled", parallelism: 1, spec: "@every 1s"}
	app := testapp.New(
		s.T(),
		testapp.WithConfig(s.cfg),
		Module,
		fx.Provide(func() controller.Controller {
			return &fakeController{tasks: []controller.CronTask{enabled, disabled}}
		}),
	)
	defer app.Close()

	require.Eventually(func() bool {
		return atomic.LoadInt32(&enabled.runs) > 0
	}, 5*time.Second, 50*time.Millisecond)
	require.Zero(atomic.LoadInt32(&disabled.runs))
}

func (s *CronTestSuite) TestRunner_InvalidSpec() {
	require := testutil.Require(s.T())

	task := &fakeTask{name: "invalid", enabled: true, parallelism: 1, spec: "every now and then"}
	app := testapp.New(s.T(), testapp.WithConfig(s.cfg))
	defer app.Close()

	err := RegisterRunner(RunnerParams{
		Params:     fxparams.Params{Config: s.cfg, Logger: app.Logger(), Metrics: app.Metrics()},
		Lifecycle:  nopLifecycle{},
		Controller: &fakeController{tasks: []controller.CronTask{task}},
	})
	require.Error(err)
	require.Contains(err.Error(), "failed to add job invalid")
}

func (t *fakeTask) Name() string                      { return t.name }
func (t *fakeTask) Spec() string                      { return t.spec }
func (t *fakeTask) Parallelism() int64                { return t.parallelism }
func (t *fakeTask) Enabled() bool                     { return t.enabled }
func (t *fakeTask) DelayStartDuration() time.Duration { return t.delay }

func (t *fakeTask) Run(ctx context.Context) error {
	atomic.AddInt32(&t.runs, 1)
	if t.block != nil {
		<-t.block
	}

	return nil
}

func (c *fakeController) Handler() controller.Handler {
	return nil
}

func (c *fakeController) CronTasks() []controller.CronTask {
	return c.tasks
}

type nopLifecycle struct{}

func (nopLifecycle) Append(fx.Hook) {}
