package tui

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chi-llm/chi-tui/internal/chillm"
)

// pollInterval is the cadence of the render-loop tick that drains a live
// session. Progress lines and the verdict are only consumed here, never
// from the worker goroutine.
const pollInterval = 100 * time.Millisecond

// testInFlight enforces a single provider test at a time across the whole
// application.
var testInFlight atomic.Bool

// tickMsg drives session polling.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// testSession is one in-flight provider test. The worker appends progress
// lines to an unbounded slice under the mutex and sends a single verdict;
// the render loop takes the accumulated lines and polls the verdict each
// tick. Progress is never dropped: these are user-facing diagnostics, and
// local model startup can emit a lot of them between ticks.
type testSession struct {
	mu       sync.Mutex
	progress []string

	verdict chan chillm.Verdict

	// pendingHash is the form content hash captured when the test started.
	// Promoted to the verified hash only on a passing verdict.
	pendingHash string
	ptype       string
	started     time.Time
	cancel      context.CancelFunc
}

// startTestSession launches the provider test worker. It returns false
// without starting anything when another test is already running.
func startTestSession(runner *chillm.Runner, ptype string, values map[string]string, timeout time.Duration, pendingHash string) (*testSession, bool) {
	if !testInFlight.CompareAndSwap(false, true) {
		return nil, false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &testSession{
		verdict:     make(chan chillm.Verdict, 1),
		pendingHash: pendingHash,
		ptype:       ptype,
		started:     time.Now(),
		cancel:      cancel,
	}

	go func() {
		defer testInFlight.Store(false)
		v := runner.RunTest(ctx, ptype, values, timeout, func(line string) {
			s.mu.Lock()
			s.progress = append(s.progress, line)
			s.mu.Unlock()
		})
		s.verdict <- v
	}()

	return s, true
}

// DrainProgress takes every progress line accumulated since the last call
// and delivers them in arrival order.
func (s *testSession) DrainProgress(fn func(string)) {
	s.mu.Lock()
	lines := s.progress
	s.progress = nil
	s.mu.Unlock()
	for _, line := range lines {
		fn(line)
	}
}

// PollVerdict returns the final verdict if the worker has delivered one.
func (s *testSession) PollVerdict() (chillm.Verdict, bool) {
	select {
	case v := <-s.verdict:
		return v, true
	default:
		return chillm.Verdict{}, false
	}
}

// Cancel aborts the session's worker. The worker still delivers a verdict,
// which the caller must poll away or abandon with the session.
func (s *testSession) Cancel() {
	s.cancel()
}

// Elapsed reports how long the session has been running.
func (s *testSession) Elapsed() time.Duration {
	return time.Since(s.started)
}
