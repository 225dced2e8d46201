package cli

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/latticekit/pkg/cache"
	errs "github.com/matzehuels/latticekit/pkg/errors"
	"github.com/matzehuels/latticekit/pkg/observability"
	"github.com/matzehuels/latticekit/pkg/pipeline"
	"github.com/matzehuels/latticekit/pkg/server"
	"github.com/matzehuels/latticekit/pkg/store"
)

// shutdownTimeout bounds graceful shutdown after the context ends.
const shutdownTimeout = 10 * time.Second

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr        string
	redisURL    string // analysis/render cache; file cache when empty
	cachePrefix string
	mongoURI    string // graph store; in-memory when empty
	mongoDB     string
	metrics     bool
	maxSites    int
	timeout     time.Duration
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:        server.DefaultAddr,
		cachePrefix: appName + ":v1:",
		mongoDB:     appName,
		metrics:     true,
		maxSites:    server.DefaultMaxSites,
		timeout:     server.DefaultTimeout,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Analyses and pictures are cached in redis when --redis is given and in the
local cache directory otherwise. Stored graphs live in MongoDB when --mongo is
given and in memory otherwise.`,
		Example: `  latticekit serve --addr :8080
  latticekit serve --redis redis://localhost:6379/0 --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.addr, "addr", opts.addr, "listen address")
	fs.StringVar(&opts.redisURL, "redis", "", "redis URL for the analysis/render cache")
	fs.StringVar(&opts.cachePrefix, "cache-prefix", opts.cachePrefix, "key prefix in the redis cache")
	fs.StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for stored graphs")
	fs.StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	fs.BoolVar(&opts.metrics, "metrics", opts.metrics, "expose Prometheus metrics on /metrics")
	fs.IntVar(&opts.maxSites, "max-sites", opts.maxSites, "largest lattice the API analyses")
	fs.DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.serveRunner(ctx, opts)
	if err != nil {
		return err
	}
	defer runner.Close()

	st, err := openStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warn("close store", "err", err)
		}
	}()

	var metrics http.Handler
	if opts.metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		prom := observability.NewPrometheus(reg)
		observability.SetPipelineHooks(prom)
		observability.SetCacheHooks(prom)
		observability.SetHTTPHooks(prom)
		defer observability.Reset()
		metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	srv := server.New(server.Options{
		Runner:   runner,
		Store:    st,
		Logger:   logger,
		Metrics:  metrics,
		MaxSites: opts.maxSites,
		Timeout:  opts.timeout,
	}).HTTPServer(opts.addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		printInfo("Serving on %s", StyleLink.Render(serveURL(srv.Addr)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errs.Wrap(errs.ErrCodeNetwork, err, "listen on %s", srv.Addr)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// serveRunner builds the runner, caching in redis when configured.
func (c *CLI) serveRunner(ctx context.Context, opts serveOpts) (*pipeline.Runner, error) {
	if opts.redisURL == "" {
		return c.newRunner(false)
	}
	rc, err := cache.NewRedisCache(ctx, opts.redisURL)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), opts.cachePrefix)
	return pipeline.NewRunner(rc, keyer, c.Logger), nil
}

func openStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	if opts.mongoURI == "" {
		printWarning("No --mongo given, stored graphs are kept in memory")
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
}

// serveURL turns a listen address into a clickable URL.
func serveURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
