package service

import (
	"alcyxob/exercise-lookup/internal/catalog"
	"alcyxob/exercise-lookup/internal/config"
	"alcyxob/exercise-lookup/internal/domain"
	"alcyxob/exercise-lookup/internal/logging"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeFetcher counts calls and optionally blocks until released.
type fakeFetcher struct {
	calls     atomic.Int32
	mu        sync.Mutex
	exercises []domain.Exercise
	err       error
	started   chan struct{}
	release   chan struct{}
	once      sync.Once
}

func (f *fakeFetcher) FetchExercises(ctx context.Context, limit int) ([]domain.Exercise, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.once.Do(func() { close(f.started) })
	}
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.exercises, nil
}

func (f *fakeFetcher) set(exercises []domain.Exercise, err error) {
	f.mu.Lock()
	f.exercises = exercises
	f.err = err
	f.mu.Unlock()
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
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

func remoteCatalog() []domain.Exercise {
	return []domain.Exercise{
		{ID: "0001", Name: "3/4 sit-up", Target: "abs", BodyPart: "waist", Equipment: "body weight"},
		{ID: "0002", Name: "45° side bend", Target: "abs", BodyPart: "waist", Equipment: "body weight"},
		{ID: "0003", Name: "air bike", Target: "abs", BodyPart: "waist", Equipment: "body weight"},
		{ID: "0004", Name: "barbell full squat", Target: "glutes", BodyPart: "upper legs", Equipment: "barbell"},
		{ID: "0005", Name: "front plank", Target: "abs", BodyPart: "waist", Equipment: "body weight"},
		{ID: "0006", Name: "dumbbell curl", Target: "biceps", BodyPart: "upper arms", Equipment: "dumbbell"},
		{ID: "0007", Name: "russian swing", Target: "glutes", BodyPart: "hips", Equipment: "kettlebell"},
	}
}

func lookupConfig(apiKey string) config.CatalogConfig {
	cfg := config.DefaultCatalogConfig()
	cfg.APIKey = apiKey
	cfg.SearchDelay = 0
	return cfg
}

func newTestLookup(fetcher CatalogFetcher, cfg config.CatalogConfig, clock *fakeClock) ExerciseLookupService {
	return NewExerciseLookupService(fetcher, cfg, logging.Discard(), WithClock(clock.Now))
}

func TestSearch_EmptyQueryDoesNotFetch(t *testing.T) {
	fetcher := &fakeFetcher{exercises: remoteCatalog()}
	cfg := lookupConfig("key")
	cfg.SearchDelay = time.Second
	svc := newTestLookup(fetcher, cfg, &fakeClock{now: time.Now()})

	for _, q := range []string{"", " ", "\t\n", "   "} {
		start := time.Now()
		got := svc.Search(context.Background(), q)
		if got == nil || len(got) != 0 {
			t.Errorf("Search(%q) = %v, want empty non-nil slice", q, got)
		}
		if time.Since(start) >= cfg.SearchDelay {
			t.Errorf("Search(%q) waited for the search delay", q)
		}
	}
	if n := fetcher.calls.Load(); n != 0 {
		t.Errorf("fetch calls = %d, want 0", n)
	}
}

func TestSearch_FixtureScenario(t *testing.T) {
	svc := newTestLookup(nil, lookupConfig(""), &fakeClock{now: time.Now()})

	got := svc.Search(context.Background(), "squat")
	if len(got) != 1 {
		t.Fatalf("Search(squat) returned %d records, want 1: %+v", len(got), got)
	}
	if got[0].ID != "2" || got[0].Name != "Squat" {
		t.Errorf("Search(squat) = %+v, want id 2 Squat", got[0])
	}
}

func TestSearch_PlaceholderKeyUsesFixtures(t *testing.T) {
	fetcher := &fakeFetcher{exercises: remoteCatalog()}
	svc := newTestLookup(fetcher, lookupConfig(config.PlaceholderAPIKey), &fakeClock{now: time.Now()})

	got := svc.Search(context.Background(), "Plank")
	if len(got) != 1 || got[0].ID != "3" {
		t.Errorf("Search(Plank) = %+v, want fixture id 3", got)
	}
	if n := fetcher.calls.Load(); n != 0 {
		t.Errorf("fetch calls = %d, want 0 in fixture mode", n)
	}
	if svc.Status().UsingRealAPI {
		t.Error("Status().UsingRealAPI = true, want false")
	}
}

func TestSearch_FailedFetchServesFixtures(t *testing.T) {
	fetcher := &fakeFetcher{err: &catalog.TransportError{Err: errors.New("dial tcp: no such host")}}
	svc := newTestLookup(fetcher, lookupConfig("key"), &fakeClock{now: time.Now()})

	got := svc.Search(context.Background(), "body")
	var ids []string
	for _, ex := range got {
		ids = append(ids, ex.ID)
	}
	if fmt.Sprint(ids) != "[1 2]" {
		t.Errorf("Search(body) ids = %v, want fixtures [1 2] (upper body, lower body)", ids)
	}

	// Equipment is not searched, so no fixture matches "body weight".
	if got := svc.Search(context.Background(), "body weight"); len(got) != 0 {
		t.Errorf("Search(body weight) = %+v, want no results", got)
	}
}

func TestSearch_ResultsMatchCaseInsensitively(t *testing.T) {
	fetcher := &fakeFetcher{exercises: remoteCatalog()}
	svc := newTestLookup(fetcher, lookupConfig("key"), &fakeClock{now: time.Now()})

	testCases := []struct {
		query   string
		wantIDs []string
	}{
		{"SQUAT", []string{"0004"}},
		{"  plank  ", []string{"0005"}},
		{"Biceps", []string{"0006"}},
		{"upper", []string{"0004", "0006"}},
		{"waist", []string{"0001", "0002", "0003", "0005"}},
		{"swing", []string{"0007"}},
		// Present only in equipment, which is not searched.
		{"kettlebell", nil},
		{"body weight", nil},
		{"smith machine", nil},
	}

	for _, tc := range testCases {
		got := svc.Search(context.Background(), tc.query)
		var ids []string
		for _, ex := range got {
			ids = append(ids, ex.ID)
			needle := strings.ToLower(strings.TrimSpace(tc.query))
			if !strings.Contains(strings.ToLower(ex.Name), needle) &&
				!strings.Contains(strings.ToLower(ex.Target), needle) &&
				!strings.Contains(strings.ToLower(ex.BodyPart), needle) {
				t.Errorf("Search(%q) returned non-matching record %+v", tc.query, ex)
			}
		}
		if fmt.Sprint(ids) != fmt.Sprint(tc.wantIDs) {
			t.Errorf("Search(%q) ids = %v, want %v", tc.query, ids, tc.wantIDs)
		}
	}
}

func TestSearch_TruncatesInCatalogOrder(t *testing.T) {
	var big []domain.Exercise
	for i := 0; i < 20; i++ {
		big = append(big, domain.Exercise{ID: fmt.Sprintf("%02d", i), Name: fmt.Sprintf("cable curl %d", i), Target: "biceps"})
	}
	fetcher := &fakeFetcher{exercises: big}
	svc := newTestLookup(fetcher, lookupConfig("key"), &fakeClock{now: time.Now()})

	got := svc.Search(context.Background(), "curl")
	if len(got) != 8 {
		t.Fatalf("got %d results, want 8", len(got))
	}
	for i, ex := range got {
		if ex.ID != fmt.Sprintf("%02d", i) {
			t.Errorf("result %d id = %q, want %02d", i, ex.ID, i)
		}
	}
}

func TestSearch_CachesWithinFreshnessWindow(t *testing.T) {
	fetcher := &fakeFetcher{exercises: remoteCatalog()}
	svc := newTestLookup(fetcher, lookupConfig("key"), &fakeClock{now: time.Now()})

	svc.Search(context.Background(), "plank")
	svc.Search(context.Background(), "plank")

	if n := fetcher.calls.Load(); n != 1 {
		t.Errorf("fetch calls = %d, want 1", n)
	}
}

func TestSearch_RefreshesAfterTTL(t *testing.T) {
	fetcher := &fakeFetcher{exercises: remoteCatalog()}
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestLookup(fetcher, lookupConfig("key"), clock)

	svc.Search(context.Background(), "plank")
	if n := fetcher.calls.Load(); n != 1 {
		t.Fatalf("fetch calls = %d, want 1", n)
	}

	clock.Advance(10*time.Minute - time.Nanosecond)
	svc.Search(context.Background(), "plank")
	if n := fetcher.calls.Load(); n != 1 {
		t.Fatalf("fetch calls just before expiry = %d, want 1", n)
	}

	clock.Advance(time.Nanosecond)
	svc.Search(context.Background(), "plank")
	if n := fetcher.calls.Load(); n != 2 {
		t.Fatalf("fetch calls at expiry = %d, want 2", n)
	}

	svc.Search(context.Background(), "plank")
	if n := fetcher.calls.Load(); n != 2 {
		t.Errorf("fetch calls after refresh = %d, want 2", n)
	}
}

func TestSearch_ServesStaleSnapshotWhenRefreshFails(t *testing.T) {
	fetcher := &fakeFetcher{exercises: remoteCatalog()}
	clock := &fakeClock{now: time.Now()}
	svc := newTestLookup(fetcher, lookupConfig("key"), clock)

	if got := svc.Search(context.Background(), "air bike"); len(got) != 1 {
		t.Fatalf("initial search returned %d records", len(got))
	}

	clock.Advance(11 * time.Minute)
	fetcher.set(nil, &catalog.TimeoutError{Err: context.DeadlineExceeded})

	got := svc.Search(context.Background(), "air bike")
	if len(got) != 1 || got[0].ID != "0003" {
		t.Errorf("Search after failed refresh = %+v, want stale record 0003", got)
	}
	if n := fetcher.calls.Load(); n != 2 {
		t.Errorf("fetch calls = %d, want 2", n)
	}

	status := svc.Status()
	if status.CachedCount != len(remoteCatalog()) {
		t.Errorf("CachedCount = %d, want snapshot kept after failure", status.CachedCount)
	}
	if status.Fresh {
		t.Error("Status().Fresh = true for a stale snapshot")
	}
}

func TestSearch_EmptyFetchFallsBackToFixtures(t *testing.T) {
	fetcher := &fakeFetcher{exercises: []domain.Exercise{}}
	svc := newTestLookup(fetcher, lookupConfig("key"), &fakeClock{now: time.Now()})

	got := svc.Search(context.Background(), "squat")
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("Search(squat) = %+v, want fixture id 2", got)
	}
	if svc.Status().CachedCount != 0 {
		t.Error("empty fetch must not be stored as a snapshot")
	}

	// No snapshot was stored, so the next search tries again.
	svc.Search(context.Background(), "squat")
	if n := fetcher.calls.Load(); n != 2 {
		t.Errorf("fetch calls = %d, want 2", n)
	}
}

func TestSearch_ConcurrentCallersShareOneRefresh(t *testing.T) {
	fetcher := &fakeFetcher{
		exercises: remoteCatalog(),
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	svc := newTestLookup(fetcher, lookupConfig("key"), &fakeClock{now: time.Now()})

	const callers = 16
	var wg sync.WaitGroup
	results := make([][]domain.Exercise, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Search(context.Background(), "abs")
		}(i)
	}

	<-fetcher.started
	time.Sleep(20 * time.Millisecond)
	close(fetcher.release)
	wg.Wait()

	if n := fetcher.calls.Load(); n != 1 {
		t.Errorf("fetch calls = %d, want exactly 1", n)
	}
	for i, r := range results {
		if len(r) != 4 {
			t.Errorf("caller %d got %d results, want 4", i, len(r))
		}
	}
}

func TestSearch_ConcurrentCallersShareOneRefreshOfExpiredSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{exercises: remoteCatalog()}
	clock := &fakeClock{now: time.Now()}
	svc := newTestLookup(fetcher, lookupConfig("key"), clock)

	svc.Search(context.Background(), "abs")
	if n := fetcher.calls.Load(); n != 1 {
		t.Fatalf("initial fetch calls = %d, want 1", n)
	}

	clock.Advance(10 * time.Minute)
	fetcher.started = make(chan struct{})
	fetcher.release = make(chan struct{})

	const callers = 16
	var wg sync.WaitGroup
	results := make([][]domain.Exercise, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Search(context.Background(), "abs")
		}(i)
	}

	<-fetcher.started
	time.Sleep(20 * time.Millisecond)
	close(fetcher.release)
	wg.Wait()

	if n := fetcher.calls.Load(); n != 2 {
		t.Errorf("fetch calls = %d, want exactly one refresh after expiry (2 total)", n)
	}
	for i, r := range results {
		if len(r) != 4 {
			t.Errorf("caller %d got %d results, want 4", i, len(r))
		}
	}
	if !svc.Status().Fresh {
		t.Error("expected snapshot to be fresh after the shared refresh")
	}
}

func TestSearch_CanceledCallerDoesNotAbortSharedFetch(t *testing.T) {
	fetcher := &fakeFetcher{exercises: remoteCatalog()}
	svc := newTestLookup(fetcher, lookupConfig("key"), &fakeClock{now: time.Now()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := svc.Search(ctx, "curl")
	if len(got) != 1 || got[0].ID != "0006" {
		t.Errorf("Search with canceled ctx = %+v, want remote record 0006", got)
	}
}

func TestSearch_DelayIsApplied(t *testing.T) {
	cfg := lookupConfig("")
	cfg.SearchDelay = 40 * time.Millisecond
	svc := newTestLookup(nil, cfg, &fakeClock{now: time.Now()})

	start := time.Now()
	svc.Search(context.Background(), "squat")
	if elapsed := time.Since(start); elapsed < cfg.SearchDelay {
		t.Errorf("Search returned after %v, want at least %v", elapsed, cfg.SearchDelay)
	}
}

func TestSearch_DelayEndsWithContext(t *testing.T) {
	cfg := lookupConfig("")
	cfg.SearchDelay = 5 * time.Second
	svc := newTestLookup(nil, cfg, &fakeClock{now: time.Now()})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	got := svc.Search(ctx, "squat")
	if time.Since(start) > 2*time.Second {
		t.Error("Search kept waiting after the context was done")
	}
	if len(got) != 1 {
		t.Errorf("Search(squat) returned %d records, want 1", len(got))
	}
}

func TestClearCache(t *testing.T) {
	fetcher := &fakeFetcher{exercises: remoteCatalog()}
	clock := &fakeClock{now: time.Now()}
	svc := newTestLookup(fetcher, lookupConfig("key"), clock)

	svc.Search(context.Background(), "plank")
	status := svc.Status()
	if !status.UsingRealAPI || !status.Fresh || status.CachedCount != len(remoteCatalog()) || status.FetchedAt == nil {
		t.Fatalf("unexpected status after fetch: %+v", status)
	}

	svc.ClearCache()
	status = svc.Status()
	if status.CachedCount != 0 || status.FetchedAt != nil || status.Fresh {
		t.Errorf("unexpected status after ClearCache: %+v", status)
	}

	svc.Search(context.Background(), "plank")
	if n := fetcher.calls.Load(); n != 2 {
		t.Errorf("fetch calls = %d, want 2 after ClearCache", n)
	}
}
