package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/repository"
	"github.com/robfig/cron/v3"
)

const (
	pruneSchedule = "0 * * * * *" // every minute
	limiterIdle   = 10 * time.Minute
	statsTimeout  = 10 * time.Second
)

// StatsSource reports store totals.
type StatsSource interface {
	Stats(ctx context.Context) (repository.Stats, error)
}

// Pruner drops idle per-client state.
type Pruner interface {
	Prune(idle time.Duration) int
}

type Scheduler struct {
	cron  *cron.Cron
	stats StatsSource
	limit Pruner
}

// NewScheduler registers the stats report on statsSchedule (six fields,
// seconds first) and a per-minute rate limiter prune. limit may be nil.
func NewScheduler(statsSchedule string, stats StatsSource, limit Pruner) (*Scheduler, error) {
	s := &Scheduler{
		cron:  cron.New(cron.WithSeconds()),
		stats: stats,
		limit: limit,
	}

	if statsSchedule != "" && stats != nil {
		if _, err := s.cron.AddFunc(statsSchedule, s.ReportStats); err != nil {
			return nil, err
		}
	}
	if limit != nil {
		if _, err := s.cron.AddFunc(pruneSchedule, s.PruneLimiters); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Start runs the scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("[cron] scheduler started (%d jobs)", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[cron] scheduler stopped")
}

// ReportStats logs project and issue totals.
func (s *Scheduler) ReportStats() {
	ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
	defer cancel()

	st, err := s.stats.Stats(ctx)
	if err != nil {
		log.Printf("[cron] stats failed: %v", err)
		return
	}
	log.Printf("[cron] stats projects=%d issues=%d open=%d", st.Projects, st.Issues, st.OpenIssues)
}

// PruneLimiters forgets clients that have been idle for a while.
func (s *Scheduler) PruneLimiters() {
	if n := s.limit.Prune(limiterIdle); n > 0 {
		log.Printf("[cron] pruned %d idle rate limit entries", n)
	}
}
