// Package scheduler runs enabled synchronization rules in the background on their
// cron frequency.
package scheduler

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/syncrule"
)

// DefaultUser is stored on the reports of scheduled runs
const DefaultUser = "scheduler"

// RunFunc executes one rule
type RunFunc func(ctx context.Context, rule syncrule.SyncRule) (report.SynchronizationReport, error)

// Scheduler runs scheduled sync rules
//
//go:generate mockgen -destination=mocks/mock_scheduler.go -package=mocks -source=scheduler.go Scheduler
type Scheduler interface {
	// Start registers every scheduled rule and runs them until the context is
	// cancelled or Stop is called
	Start(ctx context.Context) error

	// Stop stops the scheduler and waits for running jobs to finish
	Stop() error

	// Reload replaces the registered jobs with the rules currently scheduled
	Reload(ctx context.Context) error

	// Scheduled returns the ids of the registered rules
	Scheduled() []string
}

type cronScheduler struct {
	rules syncrule.Repository
	run   RunFunc
	cron  *cron.Cron
	chain cron.JobWrapper
	now   func() time.Time

	// jobCtx is the context of scheduled runs, cancelled when the scheduler stops
	jobCtx context.Context

	mu      sync.Mutex
	entries map[string]cron.EntryID

	// Lifecycle management
	cancelFunc context.CancelFunc
	done       chan struct{}
}

// Option configures the scheduler
type Option func(*cronScheduler)

// WithClock sets the clock used for the last execution time of rules
func WithClock(now func() time.Time) Option {
	return func(s *cronScheduler) {
		s.now = now
	}
}

// New creates a scheduler reading rules from repo and executing them with run
func New(repo syncrule.Repository, run RunFunc, opts ...Option) Scheduler {
	cronLog := cronLogger{}
	chain := cron.NewChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog))
	s := &cronScheduler{
		rules:   repo,
		run:     run,
		cron:    cron.New(cron.WithParser(syncrule.CronParser), cron.WithLogger(cronLog)),
		chain:   chain.Then,
		now:     time.Now,
		jobCtx:  context.Background(),
		entries: make(map[string]cron.EntryID),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *cronScheduler) Start(ctx context.Context) error {
	schedCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.jobCtx = schedCtx
	s.cancelFunc = cancel
	s.mu.Unlock()
	defer close(s.done)

	if err := s.Reload(schedCtx); err != nil {
		cancel()
		return fmt.Errorf("failed to load scheduled rules: %w", err)
	}

	logger.Infof("Starting scheduler with %d rules", len(s.Scheduled()))
	s.cron.Start()

	<-schedCtx.Done()

	logger.Info("Scheduler stopping")
	<-s.cron.Stop().Done()
	return nil
}

func (s *cronScheduler) Stop() error {
	s.mu.Lock()
	cancel := s.cancelFunc
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-s.done
	}
	return nil
}

func (s *cronScheduler) Reload(ctx context.Context) error {
	rules, err := s.rules.ListScheduled(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.entries {
		s.cron.Remove(entry)
		delete(s.entries, id)
	}

	for _, rule := range rules {
		schedule, err := rule.Schedule()
		if err != nil {
			logger.Warnf("Skipping rule %s with invalid frequency %q: %v", rule.ID, rule.Frequency, err)
			continue
		}
		s.entries[rule.ID] = s.cron.Schedule(schedule, s.chain(s.job(s.jobCtx, rule.ID)))
		logger.Debugf("Scheduled rule %s (%s) at %q", rule.Name, rule.ID, rule.Frequency)
	}
	return nil
}

func (s *cronScheduler) Scheduled() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.entries))
	for id := range s.entries {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// job reloads the rule on every tick so that edits apply without rescheduling
func (s *cronScheduler) job(ctx context.Context, id string) cron.Job {
	return cron.FuncJob(func() {
		rule, found, err := s.rules.Get(ctx, id)
		if err != nil {
			logger.Errorf("Failed to load rule %s: %v", id, err)
			return
		}
		if !found || !rule.IsScheduled() {
			logger.Debugf("Rule %s is no longer scheduled", id)
			return
		}

		logger.Infof("Running scheduled rule %s (%s)", rule.Name, rule.ID)
		syncReport, err := s.run(ctx, rule)
		if err != nil {
			logger.Errorf("Scheduled rule %s failed: %v", rule.ID, err)
		} else {
			logger.Infof("Scheduled rule %s finished with status %s", rule.ID, syncReport.Status)
		}

		if _, err := s.rules.Save(ctx, rule.UpdateLastExecuted(s.now())); err != nil {
			logger.Warnf("Failed to update last execution of rule %s: %v", rule.ID, err)
		}
	})
}

// cronLogger forwards cron messages to the application logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
