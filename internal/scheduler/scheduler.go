// Package scheduler runs periodic background tasks.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/logger"
)

// Task is one periodic job.
type Task interface {
	Name() string
	Interval() time.Duration
	Run(ctx context.Context) error
}

// Scheduler drives registered tasks on their own tickers.
type Scheduler struct {
	tasks  []Task
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Register adds a task.
func (s *Scheduler) Register(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start launches one goroutine per task. Each task runs once immediately,
// then on its interval, until Stop.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, task)
	}

	logger.Info("scheduler started", logger.Int("tasks", len(s.tasks)))
}

func (s *Scheduler) loop(ctx context.Context, task Task) {
	defer s.wg.Done()

	run := func() {
		start := time.Now()
		if err := task.Run(ctx); err != nil {
			logger.Error("scheduled task failed",
				logger.String("task", task.Name()),
				logger.Err(err),
			)
			return
		}
		logger.Debug("scheduled task done",
			logger.String("task", task.Name()),
			logger.Duration("took", time.Since(start)),
		)
	}

	run()

	ticker := time.NewTicker(task.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

// Stop cancels all tasks and waits for them to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	logger.Info("scheduler stopped")
}
