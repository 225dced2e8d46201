// Package pipeline runs the build → analyze → render stages shared by the CLI
// and the HTTP server.
//
// # Stages
//
//  1. Build: turn a [config.Config] into a lattice and, optionally, a
//     Hilbert space on it
//  2. Analyze: compute the derived properties of the lattice
//  3. Render: draw the lattice as DOT, SVG, PNG or PDF
//
// Analyze and Render are cached. Keys are derived from the SHA-256 of the
// graph's canonical JSON document (see [GraphHash]), so two requests for the
// same lattice hit the same entry however the lattice was described.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	g, sp, err := runner.Build(ctx, cfg)
//	analysis, err := runner.Analyze(ctx, g, false)
//	svg, err := runner.Render(ctx, g, pipeline.RenderOptions{Format: "svg"})
//
// Every stage reports to the hooks registered in [observability].
package pipeline

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/matzehuels/latticekit/pkg/cache"
	errs "github.com/matzehuels/latticekit/pkg/errors"
	lio "github.com/matzehuels/latticekit/pkg/io"
	"github.com/matzehuels/latticekit/pkg/lattice"
	"github.com/matzehuels/latticekit/pkg/render"
	"github.com/matzehuels/latticekit/pkg/render/nodelink"
)

// DefaultFormat is the render format used when none is given.
const DefaultFormat = render.FormatSVG

// RenderOptions selects what Render produces.
type RenderOptions struct {
	Format     string `json:"format"`
	Engine     string `json:"engine,omitempty"`
	ShowColors bool   `json:"show_colors,omitempty"`
	Refresh    bool   `json:"-"`
}

// ValidateAndSetDefaults fills in the default format and engine and checks
// both.
func (o *RenderOptions) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	engine, err := nodelink.ParseEngine(o.Engine)
	if err != nil {
		return err
	}
	o.Engine = string(engine)
	return nil
}

// ArtifactKeyOpts returns the cache key inputs for these options.
func (o RenderOptions) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: o.Format, Engine: o.Engine, ShowLabel: o.ShowColors}
}

// ValidateFormat checks that format is one of render.Formats.
func ValidateFormat(format string) error {
	if !slices.Contains(render.Formats, format) {
		return errs.New(errs.ErrCodeUnsupported, "invalid format %q (want one of %s)",
			format, strings.Join(render.Formats, ", "))
	}
	return nil
}

// GraphHash returns the content hash of g's canonical JSON document.
func GraphHash(g *lattice.Graph) (string, error) {
	data, err := json.Marshal(lio.FromGraph(g))
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInternal, err, "encode graph")
	}
	return cache.Hash(data), nil
}
