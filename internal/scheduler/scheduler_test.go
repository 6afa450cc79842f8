package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/tradeactivity/internal/logger"
)

type stubRunner struct {
	calls atomic.Int32
	text  string
	err   error
}

func (s *stubRunner) GenerateReport(_ context.Context) (string, error) {
	s.calls.Add(1)
	return s.text, s.err
}

func TestRegister_InvalidSpec(t *testing.T) {
	s := NewScheduler(context.Background(), &stubRunner{})
	err := s.Register("not a cron spec")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register report task")
}

func TestRegister_RequiresSecondsField(t *testing.T) {
	s := NewScheduler(context.Background(), &stubRunner{})
	require.NoError(t, s.Register("0 0 6 * * *"))
	assert.Len(t, s.Cron.Entries(), 1)
}

// syncBuffer is written by cron goroutines and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func captureLogs(t *testing.T) *syncBuffer {
	t.Helper()
	buf := &syncBuffer{}
	logger.Configure(logger.Options{Level: "info", Out: buf})
	t.Cleanup(logger.Init)
	return buf
}

// reportLines returns the "report" field of every logged report.
func reportLines(t *testing.T, buf *syncBuffer) []string {
	t.Helper()
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		if r, ok := entry["report"].(string); ok {
			out = append(out, r)
		}
	}
	return out
}

func TestRunNow_LogsReportAtInfo(t *testing.T) {
	buf := captureLogs(t)
	r := &stubRunner{text: "Assets to remove (1):\nDASH"}
	s := NewScheduler(context.Background(), r)

	s.RunNow()

	assert.Equal(t, []string{"Assets to remove (1):\nDASH"}, reportLines(t, buf))
	assert.Contains(t, buf.String(), `"level":"info"`)
}

func TestRunNow_FailureLogsError(t *testing.T) {
	buf := captureLogs(t)
	r := &stubRunner{err: errors.New("boom")}
	s := NewScheduler(context.Background(), r)

	s.RunNow()

	assert.Empty(t, reportLines(t, buf))
	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.EqualValues(t, 1, r.calls.Load())
}

func TestStartStop_RunsOnSchedule(t *testing.T) {
	buf := captureLogs(t)
	r := &stubRunner{text: "ok"}
	s := NewScheduler(context.Background(), r)
	require.NoError(t, s.Register("* * * * * *"))

	s.Start()
	require.Eventually(t, func() bool { return r.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	s.Stop()

	assert.Contains(t, reportLines(t, buf), "ok")
}
