// ABOUTME: Search orchestrator coordinating classification, fan-out and ranking
// ABOUTME: Runs per-source searches concurrently, refines, dedups, sorts and caches

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"devpulse-search-api/core/domain"
	apperrors "devpulse-search-api/core/errors"
	"devpulse-search-api/core/intent"
	"devpulse-search-api/core/interfaces"
	"devpulse-search-api/core/registry"
	"devpulse-search-api/core/relevance"
	"devpulse-search-api/core/searchcache"
)

const (
	// DefaultResultLimit is how many results a search returns when the
	// query carries no count directive.
	DefaultResultLimit = 15

	// DefaultPerSourceTimeout bounds each individual source call.
	DefaultPerSourceTimeout = 10 * time.Second

	// DefaultGlobalTimeout is the ceiling for the whole fan-out. A source
	// still pending at the ceiling is treated as failed.
	DefaultGlobalTimeout = 25 * time.Second

	// refineThreshold is the result count below which a source gets one
	// relaxed-filter retry.
	refineThreshold = 5

	// maxResultLimit caps user-requested result counts.
	maxResultLimit = 50
)

// Orchestrator coordinates a full search: intent classification, cache
// lookup, concurrent per-source fan-out, progressive refinement, global
// dedup, relevance ranking and the final cache write. Per-source failures
// are isolated into the response's errors list and never fail the request.
type Orchestrator struct {
	classifier *intent.Classifier
	registry   *registry.Registry
	scorer     *relevance.Scorer
	cache      *searchcache.SearchCache
	logger     interfaces.Logger

	perSourceTimeout time.Duration
	globalTimeout    time.Duration
	defaultLimit     int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTimeouts overrides the per-source and global fan-out timeouts.
func WithTimeouts(perSource, global time.Duration) Option {
	return func(o *Orchestrator) {
		if perSource > 0 {
			o.perSourceTimeout = perSource
		}
		if global > 0 {
			o.globalTimeout = global
		}
	}
}

// WithDefaultLimit overrides the result count used without a directive.
func WithDefaultLimit(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.defaultLimit = n
		}
	}
}

// NewOrchestrator wires the orchestrator's collaborators. The registry must
// be fully populated before the first Search call; it is read-only after.
func NewOrchestrator(
	classifier *intent.Classifier,
	reg *registry.Registry,
	scorer *relevance.Scorer,
	cache *searchcache.SearchCache,
	logger interfaces.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		classifier:       classifier,
		registry:         reg,
		scorer:           scorer,
		cache:            cache,
		logger:           logger,
		perSourceTimeout: DefaultPerSourceTimeout,
		globalTimeout:    DefaultGlobalTimeout,
		defaultLimit:     DefaultResultLimit,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// sourceCall is one planned fan-out unit.
type sourceCall struct {
	source  interfaces.ContentSource
	query   string
	limit   int
	filters domain.SearchFilters
}

// sourceOutcome is one source's contribution after fan-out and refinement.
type sourceOutcome struct {
	name    string
	results []domain.SearchResult
	err     error
}

// Search executes the full pipeline for one query and always returns a
// response: even a total fan-out failure yields empty results plus errors.
func (o *Orchestrator) Search(ctx context.Context, query string) domain.SearchResponse {
	in := o.classifier.Classify(query)
	plan := parseDirectives(query)

	limit := plan.limit
	if limit <= 0 {
		limit = o.defaultLimit
	}

	key := o.cache.Key(query, in)
	if entry := o.cache.Get(ctx, key); entry != nil {
		o.logDebug("serving search from cache", map[string]interface{}{
			"query":   query,
			"results": len(entry.Results),
			"hits":    entry.HitCount,
		})
		return domain.SearchResponse{
			Query:      query,
			Intent:     in,
			Results:    entry.Results,
			TotalFound: len(entry.Results),
			FromCache:  true,
		}
	}

	calls := o.planCalls(in, plan, limit)
	outcomes := o.fanOut(ctx, query, calls)

	var merged []domain.SearchResult
	var errs []string
	for _, out := range outcomes {
		if out.err != nil {
			errs = append(errs, fmt.Sprintf("searching %s: %v", out.name, out.err))
			continue
		}
		merged = append(merged, out.results...)
	}

	merged = dedupeByURL(merged)
	merged = o.scorer.RankResults(ctx, query, merged)
	o.sortResults(merged, in)

	if len(merged) > limit {
		merged = merged[:limit]
	}

	o.cache.Put(ctx, key, merged)

	o.logInfo("search completed", map[string]interface{}{
		"query":   query,
		"intent":  string(in.Type),
		"sources": len(calls),
		"results": len(merged),
		"errors":  len(errs),
	})

	return domain.SearchResponse{
		Query:      query,
		Intent:     in,
		Results:    merged,
		TotalFound: len(merged),
		Errors:     errs,
		FromCache:  false,
	}
}

// planCalls resolves the intent's sources against the registry and builds
// the per-source query and filters. Unknown sources are skipped with a
// warning, never surfaced as user-facing errors.
func (o *Orchestrator) planCalls(in domain.Intent, plan queryPlan, limit int) []sourceCall {
	calls := make([]sourceCall, 0, len(in.Sources))
	for _, name := range in.Sources {
		src := o.registry.Get(name)
		if src == nil {
			o.logWarn("skipping unknown source", map[string]interface{}{"source": name})
			continue
		}

		caps := src.Capabilities()
		callLimit := limit
		if caps.MaxResultLimit > 0 && callLimit > caps.MaxResultLimit {
			callLimit = caps.MaxResultLimit
		}

		calls = append(calls, sourceCall{
			source:  src,
			query:   buildSourceQuery(in, caps),
			limit:   callLimit,
			filters: buildFilters(in, plan, caps),
		})
	}
	return calls
}

// fanOut runs every planned call concurrently. Each call gets its own
// timeout under the global ceiling; outcomes land in per-call slots so no
// source's failure blocks or cancels the others.
func (o *Orchestrator) fanOut(ctx context.Context, query string, calls []sourceCall) []sourceOutcome {
	ctx, cancel := context.WithTimeout(ctx, o.globalTimeout)
	defer cancel()

	outcomes := make([]sourceOutcome, len(calls))

	var g errgroup.Group
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			callCtx, callCancel := context.WithTimeout(ctx, o.perSourceTimeout)
			defer callCancel()

			results, err := o.searchSource(callCtx, call)
			outcomes[i] = sourceOutcome{
				name:    call.source.Name(),
				results: results,
				err:     err,
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// searchSource performs one source's strict search and, when it returns
// fewer than refineThreshold results and the source has a score floor to
// relax, exactly one sequential relaxed retry. The retry never recurses.
func (o *Orchestrator) searchSource(ctx context.Context, call sourceCall) ([]domain.SearchResult, error) {
	name := call.source.Name()

	results, err := call.source.Search(ctx, call.query, call.limit, call.filters)
	if err != nil {
		return nil, normalizeSourceError(name, err)
	}

	if len(results) >= refineThreshold || !call.source.Capabilities().Supports(domain.FilterMinScore) {
		return results, nil
	}

	relaxed := call.filters
	floor := 0
	relaxed.MinScore = &floor

	o.logDebug("refining under-returning source", map[string]interface{}{
		"source":  name,
		"results": len(results),
	})

	retried, retryErr := call.source.Search(ctx, call.query, call.limit, relaxed)
	if retryErr != nil {
		// Keep the strict results; refinement failures are not fatal.
		o.logWarn("refinement retry failed", map[string]interface{}{
			"source": name,
			"error":  retryErr.Error(),
		})
		return results, nil
	}

	return mergeByURL(results, retried), nil
}

// sortResults imposes the final total order. Time-sensitive intents rank by
// recency first; everything else by relevance then native score. Ties fall
// back to source registration order so identical inputs always produce
// identical output.
func (o *Orchestrator) sortResults(results []domain.SearchResult, in domain.Intent) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if in.TimeSensitive {
			if !a.PublishedAt.Equal(b.PublishedAt) {
				return a.PublishedAt.After(b.PublishedAt)
			}
			if a.RelevanceScore != b.RelevanceScore {
				return a.RelevanceScore > b.RelevanceScore
			}
		} else {
			if a.RelevanceScore != b.RelevanceScore {
				return a.RelevanceScore > b.RelevanceScore
			}
			if a.Score != b.Score {
				return a.Score > b.Score
			}
		}
		return o.registry.OrderIndex(a.Source) < o.registry.OrderIndex(b.Source)
	})
}

// normalizeSourceError folds context deadline errors into the source error
// taxonomy so callers see a uniform failure vocabulary.
func normalizeSourceError(source string, err error) error {
	if _, ok := apperrors.IsSourceError(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewSourceError(source, apperrors.SourceTimeout, "search timed out")
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.NewSourceError(source, apperrors.SourceTimeout, "search canceled")
	}
	return apperrors.NewSourceError(source, apperrors.SourceUnavailable, err.Error())
}

// dedupeByURL drops results sharing a normalized URL, keeping the first
// occurrence. Input order follows intent.Sources, so explicitly requested
// sources win collisions.
func dedupeByURL(results []domain.SearchResult) []domain.SearchResult {
	seen := make(map[string]struct{}, len(results))
	unique := results[:0]
	for _, r := range results {
		key := domain.NormalizeURL(r.URL)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}

// mergeByURL appends extras onto base, skipping URLs base already has. The
// strict pass's results stay first on collision.
func mergeByURL(base, extras []domain.SearchResult) []domain.SearchResult {
	seen := make(map[string]struct{}, len(base))
	for _, r := range base {
		seen[domain.NormalizeURL(r.URL)] = struct{}{}
	}
	for _, r := range extras {
		key := domain.NormalizeURL(r.URL)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		base = append(base, r)
	}
	return base
}

func (o *Orchestrator) logDebug(msg string, fields map[string]interface{}) {
	if o.logger != nil {
		o.logger.Debug(msg, fields)
	}
}

func (o *Orchestrator) logInfo(msg string, fields map[string]interface{}) {
	if o.logger != nil {
		o.logger.Info(msg, fields)
	}
}

func (o *Orchestrator) logWarn(msg string, fields map[string]interface{}) {
	if o.logger != nil {
		o.logger.Warn(msg, fields)
	}
}
