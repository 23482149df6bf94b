// Package scheduler drives the task runner on a real timer. Due times are
// persisted on each task row, so a beat that fires after downtime still picks
// up everything whose next run is in the past.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/tasks"
)

// TaskLister is the slice of the task repository the beat needs.
type TaskLister interface {
	ListAll(ctx context.Context) ([]models.Task, error)
}

// Runner runs one named task to completion.
type Runner interface {
	Run(ctx context.Context, slug string) (tasks.RunResult, error)
}

type Scheduler struct {
	lister   TaskLister
	runner   Runner
	interval time.Duration
}

func New(lister TaskLister, runner Runner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{lister: lister, runner: runner, interval: interval}
}

// Start launches the beat loop in a goroutine. The first beat fires
// immediately so tasks that came due while the process was down are not
// delayed by a full interval.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		s.beat(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("[Scheduler] stopping")
				return
			case <-ticker.C:
				s.beat(ctx)
			}
		}
	}()
}

// beat evaluates every registered task once. A failing task never stops its
// siblings; it is logged and attempted again on the next beat.
func (s *Scheduler) beat(ctx context.Context) {
	all, err := s.lister.ListAll(ctx)
	if err != nil {
		log.Printf("[Scheduler] list tasks failed: %v", err)
		return
	}

	for _, task := range all {
		result, err := s.runner.Run(ctx, task.Slug)
		if err != nil {
			log.Printf("[Scheduler] %s failed: %v", task.Slug, err)
			continue
		}
		if result.Ran {
			log.Printf("[Scheduler] %s: %s", task.Slug, result.Summary())
		}
	}
}
