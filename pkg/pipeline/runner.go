package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/latticekit/pkg/cache"
	"github.com/matzehuels/latticekit/pkg/config"
	"github.com/matzehuels/latticekit/pkg/hilbert"
	"github.com/matzehuels/latticekit/pkg/lattice"
	"github.com/matzehuels/latticekit/pkg/observability"
	"github.com/matzehuels/latticekit/pkg/render/nodelink"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeAnalysis = "analysis"
	keyTypeArtifact = "artifact"
)

// Runner executes pipeline stages with caching.
//
// The Runner holds no per-request state, so one value can serve many
// goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Build constructs the lattice described by cfg and the Hilbert space on it.
// The space is nil when cfg has no hilbert section.
func (r *Runner) Build(ctx context.Context, cfg *config.Config) (*lattice.Graph, *hilbert.Space, error) {
	hooks := observability.Pipeline()
	kind := cfg.Graph.Name
	hooks.OnBuildStart(ctx, kind)
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		hooks.OnBuildComplete(ctx, kind, 0, 0, time.Since(start), err)
		return nil, nil, err
	}
	g, sp, err := cfg.Build()
	if err != nil {
		hooks.OnBuildComplete(ctx, kind, 0, 0, time.Since(start), err)
		return nil, nil, err
	}
	d := time.Since(start)
	hooks.OnBuildComplete(ctx, kind, g.NumSites(), g.NumEdges(), d, nil)

	r.Logger.Debug("built lattice",
		"kind", g.Kind(),
		"sites", g.NumSites(),
		"edges", g.NumEdges(),
		"duration", d)
	return g, sp, nil
}

// AnalyzeWithCacheInfo computes g's analysis, reading and filling the cache.
// The boolean reports a cache hit.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, g *lattice.Graph, full bool) (lattice.Analysis, bool, error) {
	hash, err := GraphHash(g)
	if err != nil {
		return lattice.Analysis{}, false, err
	}
	key := r.Keyer.AnalysisKey(hash, cache.AnalysisKeyOpts{Full: full})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var a lattice.Analysis
		if err := json.Unmarshal(data, &a); err == nil {
			observability.Cache().OnCacheHit(ctx, keyTypeAnalysis)
			return a, true, nil
		}
		// Undecodable entries are recomputed and overwritten.
	} else if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeAnalysis)

	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, g.NumSites())
	start := time.Now()
	a := g.Analyze(full)
	d := time.Since(start)
	hooks.OnAnalyzeComplete(ctx, g.NumSites(), d, nil)

	r.Logger.Debug("analyzed lattice",
		"sites", a.NumSites,
		"symmetries", a.NumSymmetries,
		"duration", d)

	r.store(ctx, key, keyTypeAnalysis, a, cache.AnalysisTTL)
	return a, false, nil
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, g *lattice.Graph, full bool) (lattice.Analysis, error) {
	a, _, err := r.AnalyzeWithCacheInfo(ctx, g, full)
	return a, err
}

// RenderWithCacheInfo draws g, reading and filling the cache unless
// opts.Refresh is set. The boolean reports a cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *lattice.Graph, opts RenderOptions) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hash, err := GraphHash(g)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()
	data, err := nodelink.Render(ctx, g, opts.Format, nodelink.Engine(opts.Engine),
		nodelink.Options{ShowColors: opts.ShowColors})
	d := time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Format, d, err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Debug("rendered lattice",
		"format", opts.Format,
		"engine", opts.Engine,
		"bytes", len(data),
		"duration", d)

	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	return data, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *lattice.Graph, opts RenderOptions) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return data, err
}

func (r *Runner) store(ctx context.Context, key, keyType string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
