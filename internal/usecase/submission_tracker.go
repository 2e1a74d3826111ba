package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"tracefield-site/internal/domain"
)

// DefaultSuccessDisplay is how long the success banner stays up.
const DefaultSuccessDisplay = 5 * time.Second

// ErrSubmissionPending is returned when a visitor submits again while the
// previous attempt is still in flight.
var ErrSubmissionPending = errors.New("a submission is already in progress")

// Timer is the part of *time.Timer the tracker needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SubmissionTracker is the status state machine of one contact form:
//
//	idle|success|error --Begin--> pending --Settle--> success|error
//	success --(after the display duration)--> idle
//
// Each Begin starts a new attempt; settling a stale attempt, or any attempt
// after Close, is ignored.
type SubmissionTracker struct {
	mu         sync.Mutex
	status     domain.SubmissionStatus
	attempt    uint64
	resetAfter time.Duration
	afterFunc  AfterFunc
	timer      Timer
	closed     bool
	touched    time.Time
	now        func() time.Time
}

// NewSubmissionTracker returns an idle tracker whose success state reverts
// to idle after resetAfter. A zero resetAfter keeps success until the next
// attempt.
func NewSubmissionTracker(resetAfter time.Duration) *SubmissionTracker {
	return newSubmissionTracker(resetAfter, realAfterFunc, time.Now)
}

func newSubmissionTracker(resetAfter time.Duration, afterFunc AfterFunc, now func() time.Time) *SubmissionTracker {
	return &SubmissionTracker{
		status:     domain.StatusIdle,
		resetAfter: resetAfter,
		afterFunc:  afterFunc,
		now:        now,
		touched:    now(),
	}
}

// Status returns the current state.
func (t *SubmissionTracker) Status() domain.SubmissionStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Begin enters pending and returns the attempt number to settle. It refuses
// while an attempt is pending or after Close.
func (t *SubmissionTracker) Begin() (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.status == domain.StatusPending {
		return 0, false
	}
	t.stopTimerLocked()
	t.attempt++
	t.status = domain.StatusPending
	t.touched = t.now()
	return t.attempt, true
}

// Settle records the outcome of attempt. It reports false when the result
// was discarded.
func (t *SubmissionTracker) Settle(attempt uint64, outcome domain.SubmissionOutcome) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || attempt != t.attempt || t.status != domain.StatusPending {
		return false
	}
	t.touched = t.now()

	if !outcome.Succeeded() {
		t.status = domain.StatusError
		return true
	}

	t.status = domain.StatusSuccess
	if t.resetAfter > 0 {
		t.timer = t.afterFunc(t.resetAfter, func() { t.revert(attempt) })
	}
	return true
}

func (t *SubmissionTracker) revert(attempt uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || attempt != t.attempt || t.status != domain.StatusSuccess {
		return
	}
	t.status = domain.StatusIdle
	t.timer = nil
}

func (t *SubmissionTracker) stopTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Close detaches the tracker: pending results that arrive later are dropped.
func (t *SubmissionTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	t.stopTimerLocked()
}

func (t *SubmissionTracker) idleSince() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.touched, t.status != domain.StatusPending
}

// RunSubmission drives one attempt through the tracker: Begin, a single
// Submit, then Settle.
func RunSubmission(ctx context.Context, uc domain.ContactUsecase, tracker *SubmissionTracker, inquiry *domain.ContactInquiry) (domain.SubmissionOutcome, error) {
	attempt, ok := tracker.Begin()
	if !ok {
		return domain.SubmissionOutcome{}, ErrSubmissionPending
	}
	outcome := uc.Submit(ctx, inquiry)
	tracker.Settle(attempt, outcome)
	return outcome, nil
}

// StatusBoard hands out one tracker per visitor.
type StatusBoard struct {
	mu         sync.Mutex
	trackers   map[string]*SubmissionTracker
	resetAfter time.Duration
	afterFunc  AfterFunc
	now        func() time.Time
}

// NewStatusBoard creates a board whose trackers revert success after resetAfter.
func NewStatusBoard(resetAfter time.Duration) *StatusBoard {
	return &StatusBoard{
		trackers:   make(map[string]*SubmissionTracker),
		resetAfter: resetAfter,
		afterFunc:  realAfterFunc,
		now:        time.Now,
	}
}

// Tracker returns the visitor's tracker, creating an idle one on first use.
func (b *StatusBoard) Tracker(visitorID string) *SubmissionTracker {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trackerLocked(visitorID)
}

func (b *StatusBoard) trackerLocked(visitorID string) *SubmissionTracker {
	if tr, ok := b.trackers[visitorID]; ok {
		return tr
	}
	tr := newSubmissionTracker(b.resetAfter, b.afterFunc, b.now)
	b.trackers[visitorID] = tr
	return tr
}

// begin starts an attempt on the visitor's tracker. Lookup and Begin share
// the board lock, so Sweep cannot close the tracker in between.
func (b *StatusBoard) begin(visitorID string) (*SubmissionTracker, uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tr := b.trackerLocked(visitorID)
	attempt, ok := tr.Begin()
	if !ok {
		return nil, 0, ErrSubmissionPending
	}
	return tr, attempt, nil
}

// Submit runs one attempt for the visitor and returns the outcome together
// with the tracker state right after settling.
func (b *StatusBoard) Submit(ctx context.Context, uc domain.ContactUsecase, visitorID string, inquiry *domain.ContactInquiry) (domain.SubmissionOutcome, domain.SubmissionStatus, error) {
	tr, attempt, err := b.begin(visitorID)
	if err != nil {
		return domain.SubmissionOutcome{}, domain.StatusPending, err
	}
	outcome := uc.Submit(ctx, inquiry)
	tr.Settle(attempt, outcome)
	return outcome, tr.Status(), nil
}

// Status is the visitor's current state without allocating a tracker.
func (b *StatusBoard) Status(visitorID string) domain.SubmissionStatus {
	b.mu.Lock()
	tr, ok := b.trackers[visitorID]
	b.mu.Unlock()
	if !ok {
		return domain.StatusIdle
	}
	return tr.Status()
}

// Len is the number of tracked visitors.
func (b *StatusBoard) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.trackers)
}

// Sweep closes and forgets trackers untouched for longer than idle. Pending
// trackers are kept.
func (b *StatusBoard) Sweep(idle time.Duration) int {
	cutoff := b.now().Add(-idle)

	b.mu.Lock()
	defer b.mu.Unlock()

	removed := 0
	for id, tr := range b.trackers {
		touched, settled := tr.idleSince()
		if settled && touched.Before(cutoff) {
			tr.Close()
			delete(b.trackers, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (b *StatusBoard) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Sweep(idle)
		}
	}
}
