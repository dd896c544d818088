package service

import (
	"alcyxob/exercise-lookup/internal/catalog"
	"alcyxob/exercise-lookup/internal/config"
	"alcyxob/exercise-lookup/internal/domain"
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const refreshKey = "catalog"

// CatalogFetcher loads one page of the remote exercise catalog.
// *catalog.Client satisfies it.
type CatalogFetcher interface {
	FetchExercises(ctx context.Context, limit int) ([]domain.Exercise, error)
}

// LookupStatus describes where search results are currently coming from.
type LookupStatus struct {
	UsingRealAPI bool       `json:"usingRealApi"`
	CachedCount  int        `json:"cachedCount"`
	FetchedAt    *time.Time `json:"fetchedAt,omitempty"`
	Fresh        bool       `json:"fresh"`
}

// ExerciseLookupService answers search-as-you-type queries against the catalog.
type ExerciseLookupService interface {
	// Search never fails. It returns at most MaxResults matches, possibly none.
	Search(ctx context.Context, query string) []domain.Exercise
	ClearCache()
	Status() LookupStatus
}

// LookupOption customizes an exerciseLookupService.
type LookupOption func(*exerciseLookupService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) LookupOption {
	return func(s *exerciseLookupService) {
		s.now = now
	}
}

// snapshot is replaced as a whole and never modified after it is stored.
type snapshot struct {
	exercises []domain.Exercise
	fetchedAt time.Time
}

func (s snapshot) empty() bool { return len(s.exercises) == 0 }

type exerciseLookupService struct {
	fetcher CatalogFetcher
	cfg     config.CatalogConfig
	logger  *slog.Logger
	now     func() time.Time

	mu    sync.RWMutex
	snap  snapshot
	group singleflight.Group
}

// NewExerciseLookupService creates the lookup service. Without a usable API key
// in cfg the fetcher is never called and searches run on the fixture set.
func NewExerciseLookupService(fetcher CatalogFetcher, cfg config.CatalogConfig, logger *slog.Logger, opts ...LookupOption) ExerciseLookupService {
	if logger == nil {
		logger = slog.Default()
	}
	def := config.DefaultCatalogConfig()
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	s := &exerciseLookupService{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger.With("component", "exercise_lookup"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search filters the catalog by name, target or body part.
func (s *exerciseLookupService) Search(ctx context.Context, query string) []domain.Exercise {
	term := strings.TrimSpace(query)
	if term == "" {
		return []domain.Exercise{}
	}

	s.wait(ctx)

	exercises := s.catalog(ctx)
	results := filterExercises(exercises, term, s.cfg.MaxResults)

	s.logger.Debug("search completed", "query", term, "results", len(results))
	return results
}

// ClearCache drops the snapshot so the next search fetches again.
func (s *exerciseLookupService) ClearCache() {
	s.mu.Lock()
	s.snap = snapshot{}
	s.mu.Unlock()
	s.logger.Info("catalog cache cleared")
}

func (s *exerciseLookupService) Status() LookupStatus {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	status := LookupStatus{
		UsingRealAPI: s.usingRealAPI(),
		CachedCount:  len(snap.exercises),
	}
	if !snap.empty() {
		fetchedAt := snap.fetchedAt
		status.FetchedAt = &fetchedAt
		status.Fresh = s.isFresh(snap)
	}
	return status
}

// wait applies the configured UI smoothing delay. It ends early when ctx is done.
func (s *exerciseLookupService) wait(ctx context.Context) {
	if s.cfg.SearchDelay <= 0 {
		return
	}
	t := time.NewTimer(s.cfg.SearchDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (s *exerciseLookupService) usingRealAPI() bool {
	return s.fetcher != nil && s.cfg.APIKeyConfigured()
}

// catalog returns the records to search: a fresh snapshot, a newly fetched
// one, the last good snapshot, or the fixtures, in that order of preference.
func (s *exerciseLookupService) catalog(ctx context.Context) []domain.Exercise {
	if !s.usingRealAPI() {
		return catalog.Fixtures()
	}

	if exercises, ok := s.freshSnapshot(); ok {
		s.logger.Debug("catalog cache hit", "count", len(exercises))
		return exercises
	}

	v, _, shared := s.group.Do(refreshKey, func() (interface{}, error) {
		return s.refresh(ctx), nil
	})
	if shared {
		s.logger.Debug("joined in-flight catalog refresh")
	}
	return v.([]domain.Exercise)
}

func (s *exerciseLookupService) freshSnapshot() ([]domain.Exercise, bool) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap.empty() || !s.isFresh(snap) {
		return nil, false
	}
	return snap.exercises, true
}

func (s *exerciseLookupService) isFresh(snap snapshot) bool {
	return s.now().Sub(snap.fetchedAt) < s.cfg.CacheTTL
}

// refresh runs inside the single-flight group.
func (s *exerciseLookupService) refresh(ctx context.Context) []domain.Exercise {
	// Another caller may have finished a refresh between our check and Do.
	if exercises, ok := s.freshSnapshot(); ok {
		return exercises
	}

	// The fetch is shared, so one caller going away must not cancel it for the rest.
	fetchCtx := context.WithoutCancel(ctx)
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(fetchCtx, s.cfg.RequestTimeout)
		defer cancel()
	}

	started := s.now()
	exercises, err := s.fetcher.FetchExercises(fetchCtx, s.cfg.PageSize)
	if err != nil {
		s.logger.Warn("catalog fetch failed, serving fallback",
			"error", err,
			"error_kind", catalog.Kind(err),
		)
		return s.fallback()
	}
	if len(exercises) == 0 {
		s.logger.Warn("catalog fetch returned no exercises, serving fallback")
		return s.fallback()
	}

	stored := make([]domain.Exercise, len(exercises))
	copy(stored, exercises)

	s.mu.Lock()
	s.snap = snapshot{exercises: stored, fetchedAt: s.now()}
	s.mu.Unlock()

	s.logger.Info("catalog refreshed", "count", len(stored), "duration", s.now().Sub(started))
	return stored
}

// fallback prefers stale data over no data.
func (s *exerciseLookupService) fallback() []domain.Exercise {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if !snap.empty() {
		return snap.exercises
	}
	return catalog.Fixtures()
}

// filterExercises keeps catalog order and stops after limit matches.
func filterExercises(exercises []domain.Exercise, term string, limit int) []domain.Exercise {
	needle := strings.ToLower(term)
	results := make([]domain.Exercise, 0, limit)
	for _, ex := range exercises {
		if len(results) >= limit {
			break
		}
		if matches(ex, needle) {
			results = append(results, ex)
		}
	}
	return results
}

func matches(ex domain.Exercise, needle string) bool {
	return strings.Contains(strings.ToLower(ex.Name), needle) ||
		strings.Contains(strings.ToLower(ex.Target), needle) ||
		strings.Contains(strings.ToLower(ex.BodyPart), needle)
}
