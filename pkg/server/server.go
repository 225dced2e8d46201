// Package server exposes lattice analysis and Hilbert-space indexing over
// HTTP.
//
// # Routes
//
//	GET  /healthz                  build info
//	GET  /v1/hypercube             analysis of ?length=&dim=&pbc=&full=
//	POST /v1/render                picture of a posted graph (?format=&engine=)
//	POST /v1/graphs                store a graph document with its analysis
//	GET  /v1/graphs                list stored graphs (?limit=)
//	GET  /v1/graphs/{id}           fetch one stored graph
//	POST /v1/hilbert/state         configuration → basis index
//	POST /v1/hilbert/number        basis index → configuration
//	GET  /metrics                  Prometheus exposition, when configured
//
// Errors are JSON objects {"code", "message"}; the HTTP status follows the
// error code (see [StatusFor]).
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/latticekit/pkg/pipeline"
	"github.com/matzehuels/latticekit/pkg/store"
)

// Defaults for the HTTP server.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 1 << 20
	DefaultTimeout      = 30 * time.Second

	// DefaultMaxSites bounds the lattices the server analyses. Distances
	// are computed for every pair of sites.
	DefaultMaxSites = 4096
)

// Options configures a Server. Runner and Store default to an uncached
// runner and an in-memory store.
type Options struct {
	Runner       *pipeline.Runner
	Store        store.Store
	Logger       *log.Logger
	Metrics      http.Handler
	MaxBodyBytes int64
	MaxSites     int
	Timeout      time.Duration
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	metrics  http.Handler
	maxBody  int64
	maxSites int
	timeout  time.Duration
}

// New creates a server.
func New(opts Options) *Server {
	s := &Server{
		runner:   opts.Runner,
		store:    opts.Store,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		maxBody:  opts.MaxBodyBytes,
		maxSites: opts.MaxSites,
		timeout:  opts.Timeout,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	if s.maxSites <= 0 {
		s.maxSites = DefaultMaxSites
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFoundError(r))
	})
	r.MethodNotAllowed(writeMethodNotAllowed)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/hypercube", s.handleHypercube)
		r.Post("/render", s.handleRender)

		r.Route("/graphs", func(r chi.Router) {
			r.Post("/", s.handleCreateGraph)
			r.Get("/", s.handleListGraphs)
			r.Get("/{id}", s.handleGetGraph)
		})

		r.Route("/hilbert", func(r chi.Router) {
			r.Post("/state", s.handleStateToNumber)
			r.Post("/number", s.handleNumberToState)
		})
	})
	return r
}

// HTTPServer wraps Handler in an http.Server listening on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.timeout + 5*time.Second,
	}
}
