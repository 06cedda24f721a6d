package apptracker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fluxhq/flux/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	tck *fakeTicker
}

func (c *fakeClock) Now() time.Time { return time.Unix(0, 0).UTC() }
func (c *fakeClock) NewTicker(time.Duration) Ticker {
	c.tck = &fakeTicker{c: make(chan time.Time, 1)}
	return c.tck
}
func (c *fakeClock) Fire() { c.tck.c <- time.Now() }

type fakeTicker struct{ c chan time.Time }

func (t *fakeTicker) C() <-chan time.Time { return t.c }
func (t *fakeTicker) Stop()               {}

type fakeAppUsageRepo struct {
	mu    sync.Mutex
	added []domain.AppUsageKey
	sums  map[domain.AppUsageKey]int64
}

func newFakeAppUsageRepo() *fakeAppUsageRepo {
	return &fakeAppUsageRepo{sums: make(map[domain.AppUsageKey]int64)}
}

func (r *fakeAppUsageRepo) AddUsage(_ context.Context, key domain.AppUsageKey, seconds int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, key)
	r.sums[key] += seconds
	return nil
}

func (r *fakeAppUsageRepo) UsageForSession(context.Context, int64) ([]domain.AppUsage, error) {
	return nil, nil
}

type fakeMetricsRepo struct {
	mu    sync.Mutex
	saved []domain.SessionMetrics
}

func (r *fakeMetricsRepo) SaveMetrics(_ context.Context, m domain.SessionMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, m)
	return nil
}

func (r *fakeMetricsRepo) MetricsForSession(_ context.Context, sessionID int64) (domain.SessionMetrics, error) {
	return domain.NewSessionMetrics(sessionID), nil
}

type fakeSuggestionStore struct {
	mu     sync.Mutex
	saved  []domain.SuggestionReport
}

func (s *fakeSuggestionStore) Save(report domain.SuggestionReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, report)
	return nil
}

func (s *fakeSuggestionStore) Load() (domain.SuggestionReport, error) {
	return domain.SuggestionReport{}, nil
}

type fakeNotifier struct {
	mu           sync.Mutex
	distractions []string
	reminders    []string
	escalations  []string
	lastChan     chan FrictionReply
}

func (n *fakeNotifier) DistractionAlert(app string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.distractions = append(n.distractions, app)
}

func (n *fakeNotifier) FrictionReminder(app string) <-chan FrictionReply {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reminders = append(n.reminders, app)
	ch := make(chan FrictionReply, 1)
	n.lastChan = ch
	return ch
}

func (n *fakeNotifier) FrictionEscalated(app string) <-chan FrictionReply {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.escalations = append(n.escalations, app)
	ch := make(chan FrictionReply, 1)
	n.lastChan = ch
	return ch
}

func newTestActor(t *testing.T, detector Detector) (*Actor, Handle, *fakeClock, *fakeAppUsageRepo, *fakeMetricsRepo, *fakeSuggestionStore, *fakeNotifier) {
	t.Helper()
	clock := &fakeClock{}
	usageRepo := newFakeAppUsageRepo()
	metricsRepo := &fakeMetricsRepo{}
	suggestionStore := &fakeSuggestionStore{}
	notifier := &fakeNotifier{}

	a, h := New(Config{
		AppUsage:             usageRepo,
		Metrics:              metricsRepo,
		Suggestions:          suggestionStore,
		Notifier:             notifier,
		Detector:             detector,
		Clock:                clock,
		SampleInterval:       5 * time.Second,
		ShortBurstThreshold:  15 * time.Second,
		DistractionApps:      []string{"reddit", "twitter"},
		FrictionApps:         []string{"slack"},
		Whitelist:            []string{},
		AlertingEnabled:      true,
		DistractionThreshold: 15 * time.Second,
		FrictionThreshold:    10 * time.Second,
		MailboxCapacity:      8,
	})
	return a, h, clock, usageRepo, metricsRepo, suggestionStore, notifier
}

func runActor(a *Actor) (context.CancelFunc, chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	shutdown := make(chan struct{})
	go a.Run(ctx, shutdown)
	return cancel, shutdown
}

func TestActor_AccumulatesUsageAcrossTicks(t *testing.T) {
	a, h, clock, usageRepo, _, _, _ := newTestActor(t, &StaticDetector{Samples: []Sample{{App: "vscode", Title: "main.go"}}})
	cancel, _ := runActor(a)
	defer cancel()

	h.Started(1)
	clock.Fire()
	clock.Fire()
	h.Ended()

	require.Eventually(t, func() bool {
		usageRepo.mu.Lock()
		defer usageRepo.mu.Unlock()
		return len(usageRepo.added) > 0
	}, time.Second, time.Millisecond)

	usageRepo.mu.Lock()
	defer usageRepo.mu.Unlock()
	key := domain.AppUsageKey{SessionID: 1, ApplicationName: "vscode", WindowTitle: "main.go"}
	assert.Equal(t, int64(10), usageRepo.sums[key])
}

func TestActor_ContextSwitchAndShortBurst(t *testing.T) {
	detector := &StaticDetector{Samples: []Sample{
		{App: "vscode", Title: ""},
		{App: "terminal", Title: ""},
	}}
	a, h, clock, _, metricsRepo, _, _ := newTestActor(t, detector)
	cancel, _ := runActor(a)
	defer cancel()

	h.Started(1)
	clock.Fire() // vscode, 5s
	clock.Fire() // terminal: vscode held for 5s (< 15s threshold) -> short burst, context switch
	h.Ended()

	require.Eventually(t, func() bool {
		metricsRepo.mu.Lock()
		defer metricsRepo.mu.Unlock()
		return len(metricsRepo.saved) == 1
	}, time.Second, time.Millisecond)

	metricsRepo.mu.Lock()
	defer metricsRepo.mu.Unlock()
	saved := metricsRepo.saved[0]
	assert.Equal(t, 1, saved.ContextSwitchCount)
	assert.Equal(t, 1, saved.ShortBurstsByApp["vscode"])
	assert.Equal(t, 1, saved.TotalShortBursts)
}

func TestActor_DistractionAlertFiresOncePerBurst(t *testing.T) {
	detector := &StaticDetector{Samples: []Sample{{App: "reddit.com", Title: ""}}}
	a, h, clock, _, _, _, notifier := newTestActor(t, detector)
	cancel, _ := runActor(a)
	defer cancel()

	h.Started(1)
	clock.Fire() // 5s
	clock.Fire() // 10s
	clock.Fire() // 15s, threshold reached
	clock.Fire() // stays over threshold, must not re-alert

	require.Eventually(t, func() bool {
		notifier.mu.Lock()
		defer notifier.mu.Unlock()
		return len(notifier.distractions) == 1
	}, time.Second, time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Equal(t, []string{"reddit.com"}, notifier.distractions)
}

func TestActor_FrictionReminderThenEscalated(t *testing.T) {
	detector := &StaticDetector{Samples: []Sample{{App: "slack", Title: ""}}}
	a, h, clock, _, _, _, notifier := newTestActor(t, detector)
	cancel, _ := runActor(a)
	defer cancel()

	h.Started(1)
	clock.Fire() // 5s
	clock.Fire() // 10s, threshold reached -> reminder, pending set, consecutive reset

	require.Eventually(t, func() bool {
		notifier.mu.Lock()
		defer notifier.mu.Unlock()
		return len(notifier.reminders) == 1
	}, time.Second, time.Millisecond)

	notifier.mu.Lock()
	reply := notifier.lastChan
	notifier.mu.Unlock()
	reply <- Continue

	clock.Fire() // drains the pending reply, resets consecutive seconds only
	clock.Fire() // 5s
	clock.Fire() // 10s, threshold reached again -> escalated, since a reminder was already sent

	require.Eventually(t, func() bool {
		notifier.mu.Lock()
		defer notifier.mu.Unlock()
		return len(notifier.escalations) == 1
	}, time.Second, time.Millisecond)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Len(t, notifier.reminders, 1)
	assert.Equal(t, []string{"slack"}, notifier.escalations)
}

func TestActor_PausedFlushesAndClearsState(t *testing.T) {
	detector := &StaticDetector{Samples: []Sample{{App: "vscode", Title: ""}}}
	a, h, clock, usageRepo, _, _, _ := newTestActor(t, detector)
	cancel, _ := runActor(a)
	defer cancel()

	h.Started(1)
	clock.Fire()
	h.Paused()

	require.Eventually(t, func() bool {
		usageRepo.mu.Lock()
		defer usageRepo.mu.Unlock()
		return len(usageRepo.added) == 1
	}, time.Second, time.Millisecond)

	h.Resumed()
	clock.Fire()
	h.Ended()

	require.Eventually(t, func() bool {
		usageRepo.mu.Lock()
		defer usageRepo.mu.Unlock()
		return len(usageRepo.added) == 2
	}, time.Second, time.Millisecond)
}

func TestActor_EndedWithNoSamplesSkipsSuggestions(t *testing.T) {
	a, h, _, _, metricsRepo, suggestionStore, _ := newTestActor(t, NoopDetector{})
	cancel, _ := runActor(a)
	defer cancel()

	h.Started(1)
	h.Ended()

	require.Eventually(t, func() bool {
		metricsRepo.mu.Lock()
		defer metricsRepo.mu.Unlock()
		return len(metricsRepo.saved) == 1
	}, time.Second, time.Millisecond)

	suggestionStore.mu.Lock()
	defer suggestionStore.mu.Unlock()
	assert.Empty(t, suggestionStore.saved)
}

func TestActor_EndedSuggestsAppWithFrequentShortBursts(t *testing.T) {
	// youtube alternates with a distinct filler app each time, so each
	// switch away from youtube (5s held, under the 15s threshold) counts a
	// short burst while no single filler ever repeats enough to qualify
	// itself.
	detector := &StaticDetector{Samples: []Sample{
		{App: "youtube"}, {App: "f1"},
		{App: "youtube"}, {App: "f2"},
		{App: "youtube"}, {App: "f3"},
	}}
	a, h, clock, _, _, suggestionStore, _ := newTestActor(t, detector)
	cancel, _ := runActor(a)
	defer cancel()

	h.Started(1)
	for i := 0; i < 6; i++ {
		clock.Fire()
	}
	h.Ended()

	require.Eventually(t, func() bool {
		suggestionStore.mu.Lock()
		defer suggestionStore.mu.Unlock()
		return len(suggestionStore.saved) == 1
	}, time.Second, time.Millisecond)

	suggestionStore.mu.Lock()
	defer suggestionStore.mu.Unlock()
	suggestions := suggestionStore.saved[0].Suggestions
	require.Len(t, suggestions, 1)
	assert.Equal(t, "youtube", suggestions[0].ApplicationName)
	assert.Equal(t, 3, suggestions[0].OccurrenceCount)
}

func TestActor_SuggestionsExcludeExistingDistractionsAndWhitelist(t *testing.T) {
	// reddit is already a configured distraction app; cursor is whitelisted.
	// Both accrue short bursts same as slack, but only slack should surface.
	detector := &StaticDetector{Samples: []Sample{
		{App: "reddit"}, {App: "cursor"}, {App: "slack"},
		{App: "reddit"}, {App: "cursor"}, {App: "slack"},
		{App: "reddit"}, {App: "cursor"}, {App: "slack"},
		{App: "reddit"},
	}}
	usageRepo := newFakeAppUsageRepo()
	metricsRepo := &fakeMetricsRepo{}
	suggestionStore := &fakeSuggestionStore{}
	notifier := &fakeNotifier{}
	clock := &fakeClock{}

	a, h := New(Config{
		AppUsage:             usageRepo,
		Metrics:              metricsRepo,
		Suggestions:          suggestionStore,
		Notifier:             notifier,
		Detector:             detector,
		Clock:                clock,
		SampleInterval:       5 * time.Second,
		ShortBurstThreshold:  15 * time.Second,
		DistractionApps:      []string{"reddit"},
		FrictionApps:         []string{},
		Whitelist:            []string{"cursor"},
		AlertingEnabled:      true,
		DistractionThreshold: 15 * time.Second,
		FrictionThreshold:    10 * time.Second,
		MailboxCapacity:      8,
	})
	cancel, _ := runActor(a)
	defer cancel()

	h.Started(1)
	for i := 0; i < 10; i++ {
		clock.Fire()
	}
	h.Ended()

	require.Eventually(t, func() bool {
		suggestionStore.mu.Lock()
		defer suggestionStore.mu.Unlock()
		return len(suggestionStore.saved) == 1
	}, time.Second, time.Millisecond)

	suggestionStore.mu.Lock()
	defer suggestionStore.mu.Unlock()
	suggestions := suggestionStore.saved[0].Suggestions
	require.Len(t, suggestions, 1)
	assert.Equal(t, "slack", suggestions[0].ApplicationName)
}

func TestActor_SuggestionsFilterBelowThresholdAndSortDescending(t *testing.T) {
	// twitch switches away only twice (below the 3-burst minimum) and must
	// be excluded; spotify switches away three times and discord four, so
	// both qualify and discord must come first. Each switches to a distinct
	// filler so no filler app accumulates enough bursts to qualify on its own.
	detector := &StaticDetector{Samples: []Sample{
		{App: "twitch"}, {App: "f1"},
		{App: "twitch"}, {App: "f2"},
		{App: "spotify"}, {App: "f3"},
		{App: "spotify"}, {App: "f4"},
		{App: "spotify"}, {App: "f5"},
		{App: "discord"}, {App: "f6"},
		{App: "discord"}, {App: "f7"},
		{App: "discord"}, {App: "f8"},
		{App: "discord"}, {App: "f9"},
	}}
	a, h, clock, _, _, suggestionStore, _ := newTestActor(t, detector)
	cancel, _ := runActor(a)
	defer cancel()

	h.Started(1)
	for i := 0; i < 18; i++ {
		clock.Fire()
	}
	h.Ended()

	require.Eventually(t, func() bool {
		suggestionStore.mu.Lock()
		defer suggestionStore.mu.Unlock()
		return len(suggestionStore.saved) == 1
	}, time.Second, time.Millisecond)

	suggestionStore.mu.Lock()
	defer suggestionStore.mu.Unlock()
	suggestions := suggestionStore.saved[0].Suggestions
	require.Len(t, suggestions, 2)
	assert.Equal(t, "discord", suggestions[0].ApplicationName)
	assert.Equal(t, 4, suggestions[0].OccurrenceCount)
	assert.Equal(t, "spotify", suggestions[1].ApplicationName)
	assert.Equal(t, 3, suggestions[1].OccurrenceCount)
}
