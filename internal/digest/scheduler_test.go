package digest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fluxhq/flux/internal/domain"
	"github.com/fluxhq/flux/internal/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	fire chan time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now, fire: make(chan time.Time, 1)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(time.Duration) <-chan time.Time { return c.fire }

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	c.mu.Unlock()
	c.fire <- now
}

type fakeRepo struct {
	mu       sync.Mutex
	sessions []domain.Session
	calls    int
}

func (r *fakeRepo) StartSession(context.Context, domain.Mode, time.Time) (domain.Session, error) {
	return domain.Session{}, nil
}
func (r *fakeRepo) ActiveSession(context.Context) (domain.Session, error) {
	return domain.Session{}, domain.ErrNoActiveSession
}
func (r *fakeRepo) EndSession(context.Context, domain.Session) error   { return nil }
func (r *fakeRepo) IncrementCheckIn(context.Context, int64) error      { return nil }
func (r *fakeRepo) SessionByID(context.Context, int64) (domain.Session, error) {
	return domain.Session{}, domain.ErrSessionNotFound
}
func (r *fakeRepo) RecentSessions(context.Context, time.Time) ([]domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.sessions, nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	minutes []float64
	counts  []int
}

func (n *fakeNotifier) WeeklyDigest(totalMinutes float64, sessionCount int, _ *notifier.ExternalLink) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minutes = append(n.minutes, totalMinutes)
	n.counts = append(n.counts, sessionCount)
}

func endedSession(t *testing.T, minutes int64) domain.Session {
	t.Helper()
	start := time.Now().Add(-time.Duration(minutes) * time.Minute)
	end := start.Add(time.Duration(minutes) * time.Minute)
	dur := minutes * 60
	s, err := domain.ReconstituteSession(1, domain.ModeAiAssisted, start, &end, &dur, 0)
	require.NoError(t, err)
	return s
}

func TestScheduler_FiresDigestWithNonEmptySessions(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 8, 3, 8, 0, 0, 0, time.UTC)) // a Monday, before 9am
	repo := &fakeRepo{sessions: []domain.Session{endedSession(t, 30), endedSession(t, 45)}}
	notifier := &fakeNotifier{}

	a := New(Config{Repo: repo, Notifier: notifier, Clock: clock, Location: time.UTC, Weekday: time.Monday, Hour: 9})
	ctx, cancel := context.WithCancel(context.Background())
	shutdown := make(chan struct{})
	go a.Run(ctx, shutdown)
	defer cancel()

	clock.Advance(time.Hour)

	require.Eventually(t, func() bool {
		notifier.mu.Lock()
		defer notifier.mu.Unlock()
		return len(notifier.minutes) == 1
	}, time.Second, time.Millisecond)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Equal(t, float64(75), notifier.minutes[0])
	assert.Equal(t, 2, notifier.counts[0])
}

func TestScheduler_SkipsEmptyWeek(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 8, 3, 8, 0, 0, 0, time.UTC))
	repo := &fakeRepo{}
	notifier := &fakeNotifier{}

	a := New(Config{Repo: repo, Notifier: notifier, Clock: clock, Location: time.UTC, Weekday: time.Monday, Hour: 9})
	ctx, cancel := context.WithCancel(context.Background())
	shutdown := make(chan struct{})
	go a.Run(ctx, shutdown)
	defer cancel()

	clock.Advance(time.Hour)

	require.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return repo.calls == 1
	}, time.Second, time.Millisecond)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Empty(t, notifier.minutes)
}

func TestNextOccurrence_TodayStillFuture(t *testing.T) {
	a := &Actor{cfg: Config{Location: time.UTC, Weekday: time.Monday, Hour: 9}}
	now := time.Date(2026, 8, 3, 8, 0, 0, 0, time.UTC) // Monday 8am
	next := a.nextOccurrence(now)
	assert.Equal(t, time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrence_TodayAlreadyPassedSkipsAWeek(t *testing.T) {
	a := &Actor{cfg: Config{Location: time.UTC, Weekday: time.Monday, Hour: 9}}
	now := time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC) // Monday 10am, past 9am
	next := a.nextOccurrence(now)
	assert.Equal(t, time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC), next)
}

func TestParseWeekday(t *testing.T) {
	assert.Equal(t, time.Friday, ParseWeekday("Friday"))
	assert.Equal(t, time.Monday, ParseWeekday("not-a-day"))
}
