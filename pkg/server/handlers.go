package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/latticekit/pkg/buildinfo"
	"github.com/matzehuels/latticekit/pkg/config"
	errs "github.com/matzehuels/latticekit/pkg/errors"
	"github.com/matzehuels/latticekit/pkg/hilbert"
	lio "github.com/matzehuels/latticekit/pkg/io"
	"github.com/matzehuels/latticekit/pkg/lattice"
	"github.com/matzehuels/latticekit/pkg/pipeline"
	"github.com/matzehuels/latticekit/pkg/render"
	"github.com/matzehuels/latticekit/pkg/store"
)

var contentTypes = map[string]string{
	render.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	render.FormatSVG: "image/svg+xml",
	render.FormatPNG: "image/png",
	render.FormatPDF: "application/pdf",
}

// fail writes err, logging it first when it is the server's fault.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if StatusFor(errs.GetCode(err)) >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeError(w, err)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleHypercube(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	length, err := intParam(q.Get("length"), "length")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	dim, err := intParam(q.Get("dim"), "dim")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pbc, err := boolParam(q.Get("pbc"), "pbc", true)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	full, err := boolParam(q.Get("full"), "full", false)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	shape := lattice.Shape{Length: length, Dimension: dim, PBC: pbc}
	if n, err := shape.Validate(); err != nil {
		s.fail(w, r, err)
		return
	} else if err := s.checkSize(n); err != nil {
		s.fail(w, r, err)
		return
	}

	cfg := &config.Config{Graph: config.GraphConfig{
		Name:      "hypercube",
		Length:    length,
		Dimension: dim,
		PBC:       &pbc,
	}}
	g, _, err := s.runner.Build(r.Context(), cfg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	a, err := s.runner.Analyze(r.Context(), g, full)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	colors, err := boolParam(q.Get("colors"), "colors", false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts := pipeline.RenderOptions{Format: q.Get("format"), Engine: q.Get("engine"), ShowColors: colors}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.fail(w, r, err)
		return
	}

	data, err := s.runner.Render(r.Context(), g, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[opts.Format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	hash, err := pipeline.GraphHash(g)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	a, err := s.runner.Analyze(r.Context(), g, false)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rec := store.NewRecord(r.URL.Query().Get("name"), hash, g, a)
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/graphs/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := intParam(v, "limit")
		if err != nil {
			s.fail(w, r, err)
			return
		}
		limit = n
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Graphs []*store.Record `json:"graphs"`
	}{recs})
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// hilbertRequest names a space by its config and a basis state either by
// configuration or by number.
type hilbertRequest struct {
	config.Config
	State  []float64 `json:"state,omitempty"`
	Number *int      `json:"number,omitempty"`
}

type hilbertResponse struct {
	NStates int       `json:"n_states"`
	Number  int       `json:"number"`
	State   []float64 `json:"state"`
}

func (s *Server) handleStateToNumber(w http.ResponseWriter, r *http.Request) {
	req, idx, err := s.readIndex(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	n, err := idx.StateToNumber(req.State)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hilbertResponse{NStates: idx.NStates(), Number: n, State: req.State})
}

func (s *Server) handleNumberToState(w http.ResponseWriter, r *http.Request) {
	req, idx, err := s.readIndex(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Number == nil {
		s.fail(w, r, errs.New(errs.ErrCodeInvalidInput, "number is required"))
		return
	}
	state, err := idx.NumberToState(*req.Number)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hilbertResponse{NStates: idx.NStates(), Number: *req.Number, State: state})
}

// readGraph decodes the request body as a graph document.
func (s *Server) readGraph(w http.ResponseWriter, r *http.Request) (*lattice.Graph, error) {
	doc, err := lio.DecodeDocument(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return nil, err
	}
	g, err := doc.Graph()
	if err != nil {
		return nil, err
	}
	if err := s.checkSize(g.NumSites()); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Server) checkSize(sites int) error {
	if sites > s.maxSites {
		return errs.New(errs.ErrCodeInvalidInput, "lattice has %d sites, server limit is %d", sites, s.maxSites)
	}
	return nil
}

// readIndex decodes a hilbertRequest and builds the index of its space.
func (s *Server) readIndex(w http.ResponseWriter, r *http.Request) (*hilbertRequest, *hilbert.Index, error) {
	var req hilbertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode request")
	}
	if req.Hilbert == nil {
		return nil, nil, errs.New(errs.ErrCodeInvalidInput, "hilbert section is required")
	}
	if err := req.Config.Validate(); err != nil {
		return nil, nil, err
	}
	// The graph is built and size-checked on its own, before the space
	// allocates anything per site.
	g, _, err := s.runner.Build(r.Context(), &config.Config{Graph: req.Graph})
	if err != nil {
		return nil, nil, err
	}
	if err := s.checkSize(g.NumSites()); err != nil {
		return nil, nil, err
	}
	sp, err := req.Hilbert.Build(g)
	if err != nil {
		return nil, nil, err
	}
	idx, err := hilbert.NewIndex(sp)
	if err != nil {
		return nil, nil, err
	}
	return &req, idx, nil
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, errs.New(errs.ErrCodeInvalidInput, "query parameter %s is required", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "query parameter %s must be an integer", name)
	}
	return n, nil
}

func boolParam(v, name string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errs.Wrap(errs.ErrCodeInvalidInput, err, "query parameter %s must be a boolean", name)
	}
	return b, nil
}
