package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"tracefield-site/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (ft *fakeTimer) Stop() bool {
	ft.stopped = true
	return true
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	ft := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, ft)
	return ft
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fireAll runs every scheduled callback that was not stopped.
func (c *fakeClock) fireAll() {
	c.mu.Lock()
	timers := c.timers
	c.timers = nil
	c.mu.Unlock()
	for _, ft := range timers {
		if !ft.stopped {
			ft.f()
		}
	}
}

var (
	outcomeOK   = domain.SubmissionOutcome{Status: domain.StatusSuccess}
	outcomeFail = domain.SubmissionOutcome{Status: domain.StatusError, Cause: domain.FailureStatus}
)

func TestSubmissionTrackerTransitions(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	t.Run("Success reverts to idle after the display duration", func(t *testing.T) {
		clock := newFakeClock()
		tr := newSubmissionTracker(5*time.Second, clock.AfterFunc, clock.Now)

		assert.Equal(t, domain.StatusIdle, tr.Status())
		attempt, began := tr.Begin()
		require.True(t, began)
		assert.Equal(t, domain.StatusPending, tr.Status())

		assert.True(t, tr.Settle(attempt, outcomeOK))
		assert.Equal(t, domain.StatusSuccess, tr.Status())
		require.Len(t, clock.timers, 1)
		assert.Equal(t, 5*time.Second, clock.timers[0].d)

		clock.fireAll()
		assert.Equal(t, domain.StatusIdle, tr.Status())
	})

	t.Run("Error stays until the next attempt", func(t *testing.T) {
		clock := newFakeClock()
		tr := newSubmissionTracker(5*time.Second, clock.AfterFunc, clock.Now)

		attempt, _ := tr.Begin()
		tr.Settle(attempt, outcomeFail)
		assert.Equal(t, domain.StatusError, tr.Status())
		assert.Empty(t, clock.timers)

		_, began := tr.Begin()
		assert.True(t, began)
		assert.Equal(t, domain.StatusPending, tr.Status())
	})

	t.Run("Begin is refused while pending", func(t *testing.T) {
		tr := NewSubmissionTracker(time.Second)
		defer tr.Close()

		_, began := tr.Begin()
		require.True(t, began)
		_, again := tr.Begin()
		assert.False(t, again)
	})

	t.Run("Each attempt settles exactly once", func(t *testing.T) {
		clock := newFakeClock()
		tr := newSubmissionTracker(0, clock.AfterFunc, clock.Now)

		attempt, _ := tr.Begin()
		assert.True(t, tr.Settle(attempt, outcomeFail))
		assert.False(t, tr.Settle(attempt, outcomeOK))
		assert.Equal(t, domain.StatusError, tr.Status())
	})

	t.Run("A new attempt cancels the pending revert", func(t *testing.T) {
		clock := newFakeClock()
		tr := newSubmissionTracker(5*time.Second, clock.AfterFunc, clock.Now)

		first, _ := tr.Begin()
		tr.Settle(first, outcomeOK)
		second, _ := tr.Begin()

		clock.fireAll()
		assert.Equal(t, domain.StatusPending, tr.Status())
		assert.False(t, tr.Settle(first, outcomeFail))
		assert.True(t, tr.Settle(second, outcomeFail))
	})

	t.Run("Results after Close are discarded", func(t *testing.T) {
		clock := newFakeClock()
		tr := newSubmissionTracker(5*time.Second, clock.AfterFunc, clock.Now)

		attempt, _ := tr.Begin()
		tr.Close()
		assert.False(t, tr.Settle(attempt, outcomeOK))
		assert.Equal(t, domain.StatusPending, tr.Status())
		_, began := tr.Begin()
		assert.False(t, began)
	})

	t.Run("Real timer reverts success", func(t *testing.T) {
		tr := NewSubmissionTracker(20 * time.Millisecond)
		defer tr.Close()

		attempt, _ := tr.Begin()
		tr.Settle(attempt, outcomeOK)
		assert.Eventually(t, func() bool {
			return tr.Status() == domain.StatusIdle
		}, time.Second, 5*time.Millisecond)
	})
}

type stubContactUsecase struct {
	outcome domain.SubmissionOutcome
	calls   int
}

func (s *stubContactUsecase) Validate(domain.ContactFields) (*domain.ContactInquiry, error) {
	return &domain.ContactInquiry{}, nil
}

func (s *stubContactUsecase) Submit(context.Context, *domain.ContactInquiry) domain.SubmissionOutcome {
	s.calls++
	return s.outcome
}

func TestRunSubmission(t *testing.T) {
	clock := newFakeClock()
	tr := newSubmissionTracker(time.Second, clock.AfterFunc, clock.Now)
	uc := &stubContactUsecase{outcome: outcomeFail}

	outcome, err := RunSubmission(context.Background(), uc, tr, &domain.ContactInquiry{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, outcome.Status)
	assert.Equal(t, domain.StatusError, tr.Status())
	assert.Equal(t, 1, uc.calls)

	tr.Begin()
	_, err = RunSubmission(context.Background(), uc, tr, &domain.ContactInquiry{})
	assert.ErrorIs(t, err, ErrSubmissionPending)
	assert.Equal(t, 1, uc.calls)
}

func TestStatusBoard(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	clock := newFakeClock()
	board := NewStatusBoard(time.Second)
	board.afterFunc = clock.AfterFunc
	board.now = clock.Now

	assert.Equal(t, domain.StatusIdle, board.Status("nobody"))
	assert.Equal(t, 0, board.Len())

	a := board.Tracker("a")
	assert.Same(t, a, board.Tracker("a"))
	b := board.Tracker("b")
	b.Begin()

	attempt, _ := a.Begin()
	a.Settle(attempt, outcomeFail)
	assert.Equal(t, domain.StatusError, board.Status("a"))

	clock.Advance(time.Hour)
	assert.Equal(t, 1, board.Sweep(30*time.Minute))
	assert.Equal(t, 1, board.Len(), "pending tracker is kept")
	assert.Equal(t, domain.StatusPending, board.Status("b"))
	assert.Equal(t, domain.StatusIdle, board.Status("a"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		board.Run(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()
	<-done
}

func TestStatusBoardSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("A swept tracker is replaced instead of reported as pending", func(t *testing.T) {
		clock := newFakeClock()
		board := NewStatusBoard(time.Second)
		board.afterFunc = clock.AfterFunc
		board.now = clock.Now

		stale := board.Tracker("a")
		clock.Advance(time.Hour)
		require.Equal(t, 1, board.Sweep(30*time.Minute))

		_, began := stale.Begin()
		assert.False(t, began, "closed tracker refuses new attempts")

		uc := &stubContactUsecase{outcome: outcomeOK}
		outcome, status, err := board.Submit(ctx, uc, "a", &domain.ContactInquiry{})
		require.NoError(t, err)
		assert.True(t, outcome.Succeeded())
		assert.Equal(t, domain.StatusSuccess, status)
		assert.Equal(t, 1, uc.calls)
	})

	t.Run("A pending visitor is refused without calling the relay", func(t *testing.T) {
		board := NewStatusBoard(time.Second)
		board.Tracker("b").Begin()

		uc := &stubContactUsecase{outcome: outcomeOK}
		_, status, err := board.Submit(ctx, uc, "b", &domain.ContactInquiry{})
		assert.ErrorIs(t, err, ErrSubmissionPending)
		assert.Equal(t, domain.StatusPending, status)
		assert.Equal(t, 0, uc.calls)
	})

	t.Run("Failures settle on error", func(t *testing.T) {
		clock := newFakeClock()
		board := NewStatusBoard(time.Second)
		board.afterFunc = clock.AfterFunc
		board.now = clock.Now

		_, status, err := board.Submit(ctx, &stubContactUsecase{outcome: outcomeFail}, "c", &domain.ContactInquiry{})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusError, status)
		assert.Equal(t, domain.StatusError, board.Status("c"))
	})
}
