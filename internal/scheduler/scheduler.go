package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

type JobFunc func(ctx context.Context)

type job struct {
	name string
	spec string
	fn   JobFunc
}

type Scheduler struct {
	logger *slog.Logger
	s      *gocron.Scheduler
	ctx    context.Context
	jobs   []job
}

func New(ctx context.Context, logger *slog.Logger, loc *time.Location) *Scheduler {
	return &Scheduler{logger: logger.With("component", "scheduler"), s: gocron.NewScheduler(loc), ctx: ctx}
}

func (sch *Scheduler) Add(name string, spec string, fn JobFunc) {
	sch.jobs = append(sch.jobs, job{name: name, spec: spec, fn: fn})
}

// Start runs all registered jobs until the context is done.
func (sch *Scheduler) Start() {
	for _, j := range sch.jobs {
		log := sch.logger.With("job", j.name)

		sch.s.Cron(j.spec).Do(func(fn JobFunc) {
			select {
			case <-sch.ctx.Done():
				return
			default:
				log.Info("running job")
				fn(sch.ctx)
			}
		}, j.fn)
	}
	sch.s.StartAsync()

	<-sch.ctx.Done()
	sch.s.Stop()
}
