package service

import (
	"context"
	"fmt"
	"time"

	"tnp-quickview/internal/dashboard/config"
	"tnp-quickview/pkg/logger"
	"tnp-quickview/pkg/utils"

	"github.com/robfig/cron/v3"
)

// Job is one step of the periodic refresh. Jobs run in registration order.
type Job interface {
	Execute(ctx context.Context) (string, error)
	GetType() string
}

// SchedulerService runs the registered jobs on the refresh schedule.
type SchedulerService interface {
	// Start runs the jobs once, then on every tick until ctx is done.
	Start(ctx context.Context) error
	RunJobs(ctx context.Context)
}

type schedulerService struct {
	cfg  *config.Config
	log  *logger.Logger
	jobs []Job
}

// NewSchedulerService creates a SchedulerService.
func NewSchedulerService(cfg *config.Config, log *logger.Logger, jobs ...Job) SchedulerService {
	return &schedulerService{
		cfg:  cfg,
		log:  log,
		jobs: jobs,
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(utils.GetJSTTimeLocation()))
	if _, err := c.AddFunc(s.cfg.Scheduler.RefreshCron, func() { s.RunJobs(ctx) }); err != nil {
		return fmt.Errorf("invalid refresh cron %q: %w", s.cfg.Scheduler.RefreshCron, err)
	}

	s.RunJobs(ctx)
	c.Start()
	s.log.Info("Scheduler started", logger.StringField("cron", s.cfg.Scheduler.RefreshCron), logger.IntField("jobs", len(s.jobs)))

	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	s.log.Info("Scheduler service stopping")
	return nil
}

// RunJobs executes every job sequentially. A failing job is logged and does
// not stop the ones after it.
func (s *schedulerService) RunJobs(ctx context.Context) {
	for _, job := range s.jobs {
		if !utils.ShouldContinue(ctx, s.log) {
			return
		}

		jobCtx, cancel := ctx, context.CancelFunc(func() {})
		if s.cfg.Scheduler.JobTimeout > 0 {
			jobCtx, cancel = context.WithTimeout(ctx, s.cfg.Scheduler.JobTimeout)
		}

		started := time.Now()
		output, err := job.Execute(jobCtx)
		cancel()

		if err != nil {
			s.log.Error("Job failed", logger.StringField("job", job.GetType()), logger.ErrorField(err), logger.Field("duration", time.Since(started)))
			continue
		}
		s.log.Info("Job completed", logger.StringField("job", job.GetType()), logger.StringField("output", output), logger.Field("duration", time.Since(started)))
	}
}
