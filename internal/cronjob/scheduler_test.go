package cronjob

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStats struct {
	stats repository.Stats
	err   error
}

func (f fakeStats) Stats(context.Context) (repository.Stats, error) {
	return f.stats, f.err
}

type fakePruner struct {
	idle   time.Duration
	pruned int
}

func (f *fakePruner) Prune(idle time.Duration) int {
	f.idle = idle
	return f.pruned
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestNewScheduler(t *testing.T) {
	s, err := NewScheduler("0 0 * * * *", fakeStats{}, &fakePruner{})
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 2)

	s, err = NewScheduler("", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, s.cron.Entries())

	_, err = NewScheduler("every hour", fakeStats{}, nil)
	assert.Error(t, err)
}

func TestReportStats(t *testing.T) {
	buf := captureLog(t)

	s, err := NewScheduler("", fakeStats{stats: repository.Stats{Projects: 2, Issues: 5, OpenIssues: 3}}, nil)
	require.NoError(t, err)
	s.ReportStats()
	assert.Contains(t, buf.String(), "[cron] stats projects=2 issues=5 open=3")

	buf.Reset()
	s.stats = fakeStats{err: errors.New("db down")}
	s.ReportStats()
	assert.Contains(t, buf.String(), "[cron] stats failed: db down")
}

func TestPruneLimiters(t *testing.T) {
	buf := captureLog(t)

	p := &fakePruner{pruned: 4}
	s, err := NewScheduler("", nil, p)
	require.NoError(t, err)

	s.PruneLimiters()
	assert.Equal(t, limiterIdle, p.idle)
	assert.Contains(t, buf.String(), "pruned 4 idle rate limit entries")
}

func TestStartStop(t *testing.T) {
	s, err := NewScheduler("", nil, &fakePruner{})
	require.NoError(t, err)
	s.Start()
	s.Stop()
}
