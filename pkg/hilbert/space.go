package hilbert

import (
	"math"
	"math/rand/v2"
	"slices"

	errs "github.com/matzehuels/latticekit/pkg/errors"
)

// Lattice is the part of a graph a Space needs. *lattice.Graph satisfies it.
type Lattice interface {
	NumSites() int
}

// Kind names the family a Space belongs to.
type Kind string

const (
	KindSpin   Kind = "spin"
	KindQubit  Kind = "qubit"
	KindBoson  Kind = "boson"
	KindCustom Kind = "custom"
)

// Space is a local-state descriptor: an ordered, finite list of allowed values
// for each of N sites, plus an optional constraint fixing the sum of the
// values. A Space is immutable.
type Space struct {
	kind    Kind
	local   [][]float64
	uniform bool

	// target is the fixed sum of local-state ordinals when constrained. For
	// spins and bosons the values are evenly spaced, so a fixed value sum is
	// a fixed ordinal sum.
	target      int
	constrained bool
	sum         float64
}

type spinConfig struct {
	totalSz    float64
	hasTotalSz bool
}

// SpinOption configures Spin.
type SpinOption func(*spinConfig)

// WithTotalSz restricts configurations to total magnetization m, that is to
// a sum of local values equal to 2m.
func WithTotalSz(m float64) SpinOption {
	return func(c *spinConfig) {
		c.totalSz = m
		c.hasTotalSz = true
	}
}

// Spin returns the space of N spin-s degrees of freedom, one per site of g.
// Local values are -2s, -2s+2, ..., 2s.
func Spin(g Lattice, s float64, opts ...SpinOption) (*Space, error) {
	var cfg spinConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	twoS := 2 * s
	if !(twoS >= 1) || twoS >= MaxStates || twoS != math.Trunc(twoS) {
		return nil, errs.Malformed(ErrInvalidSpin, "s = %v (must be a positive multiple of 1/2)", s)
	}
	d := int(twoS) + 1
	values := make([]float64, d)
	for i := range values {
		values[i] = -twoS + 2*float64(i)
	}

	sp, err := uniformSpace(KindSpin, g, values)
	if err != nil {
		return nil, err
	}
	if !cfg.hasTotalSz {
		return sp, nil
	}

	// Ordinal sum K satisfies 2m = -2sN + 2K.
	n := float64(sp.Size())
	k := cfg.totalSz + s*n
	if k != math.Trunc(k) || k < 0 || k > twoS*n {
		return nil, errs.Malformed(ErrInfeasibleConstraint,
			"total_sz = %v is unreachable with %d spin-%v sites", cfg.totalSz, sp.Size(), s)
	}
	sp.target, sp.constrained, sp.sum = int(k), true, 2*cfg.totalSz
	return sp, nil
}

// Qubit returns the space of N qubits with local values {0, 1}.
func Qubit(g Lattice) (*Space, error) {
	return uniformSpace(KindQubit, g, []float64{0, 1})
}

type bosonConfig struct {
	nBosons    int
	hasNBosons bool
}

// BosonOption configures Boson.
type BosonOption func(*bosonConfig)

// WithTotalBosons restricts configurations to exactly n bosons in total.
func WithTotalBosons(n int) BosonOption {
	return func(c *bosonConfig) {
		c.nBosons = n
		c.hasNBosons = true
	}
}

// Boson returns the space of N bosonic modes with occupations 0..nMax.
func Boson(g Lattice, nMax int, opts ...BosonOption) (*Space, error) {
	var cfg bosonConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if nMax < 1 {
		return nil, errs.Malformed(ErrInvalidLocalStates, "n_max = %d (must be >= 1)", nMax)
	}
	values := make([]float64, nMax+1)
	for i := range values {
		values[i] = float64(i)
	}

	sp, err := uniformSpace(KindBoson, g, values)
	if err != nil {
		return nil, err
	}
	if !cfg.hasNBosons {
		return sp, nil
	}
	if cfg.nBosons < 0 || cfg.nBosons > nMax*sp.Size() {
		return nil, errs.Malformed(ErrInfeasibleConstraint,
			"%d bosons do not fit on %d sites with n_max = %d", cfg.nBosons, sp.Size(), nMax)
	}
	sp.target, sp.constrained, sp.sum = cfg.nBosons, true, float64(cfg.nBosons)
	return sp, nil
}

// CustomSpace returns a space where every site of g takes one of localStates.
func CustomSpace(g Lattice, localStates []float64) (*Space, error) {
	return uniformSpace(KindCustom, g, slices.Clone(localStates))
}

// NewSpace returns a space with an individual local-state list per site.
func NewSpace(perSite [][]float64) (*Space, error) {
	local := make([][]float64, len(perSite))
	for i, values := range perSite {
		if err := checkLocalStates(values); err != nil {
			return nil, err
		}
		local[i] = slices.Clone(values)
	}
	uniform := true
	for i := 1; i < len(local); i++ {
		if !slices.Equal(local[i], local[0]) {
			uniform = false
			break
		}
	}
	return &Space{kind: KindCustom, local: local, uniform: uniform}, nil
}

func uniformSpace(kind Kind, g Lattice, values []float64) (*Space, error) {
	if err := checkLocalStates(values); err != nil {
		return nil, err
	}
	n := g.NumSites()
	local := make([][]float64, n)
	for i := range local {
		local[i] = values
	}
	return &Space{kind: kind, local: local, uniform: true}, nil
}

func checkLocalStates(values []float64) error {
	if len(values) == 0 {
		return errs.Malformed(ErrInvalidLocalStates, "empty local-state list")
	}
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.Malformed(ErrInvalidLocalStates, "local state %v is not finite", v)
		}
		if _, dup := seen[v]; dup {
			return errs.Malformed(ErrInvalidLocalStates, "local state %v listed more than once", v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// Kind reports the family of the space.
func (s *Space) Kind() Kind { return s.kind }

// Size returns the number of sites.
func (s *Space) Size() int { return len(s.local) }

// LocalSize returns the number of local states per site. For a non-uniform
// space it is the largest per-site count.
func (s *Space) LocalSize() int {
	d := 0
	for _, values := range s.local {
		d = max(d, len(values))
	}
	return d
}

// LocalStates returns the shared local-state list of a uniform space, or nil
// when the sites differ.
func (s *Space) LocalStates() []float64 {
	if !s.uniform || len(s.local) == 0 {
		return nil
	}
	return slices.Clone(s.local[0])
}

// LocalStatesAt returns the allowed values of one site, in ordinal order.
func (s *Space) LocalStatesAt(site int) []float64 {
	if site < 0 || site >= len(s.local) {
		return nil
	}
	return slices.Clone(s.local[site])
}

// IsDiscrete is always true; every Space has finitely many local states.
func (s *Space) IsDiscrete() bool { return true }

// IsUniform reports whether every site shares the same local-state list.
func (s *Space) IsUniform() bool { return s.uniform }

// Constraint returns the fixed sum of configuration values, if the space has
// one. For a spin space with total_sz m this is 2m.
func (s *Space) Constraint() (sum float64, ok bool) {
	return s.sum, s.constrained
}

// Validate checks that conf has one allowed value per site and, for a
// constrained space, that it meets the constraint.
func (s *Space) Validate(conf []float64) error {
	if len(conf) != len(s.local) {
		return errs.Malformed(ErrConfigLength, "configuration has %d values, space has %d sites",
			len(conf), len(s.local))
	}
	total := 0.0
	for i, v := range conf {
		if !slices.Contains(s.local[i], v) {
			return errs.Malformed(ErrUnknownLocalState, "value %v is not allowed at site %d", v, i)
		}
		total += v
	}
	if s.constrained && total != s.sum {
		return errs.Malformed(ErrInfeasibleConstraint, "values sum to %v, want %v", total, s.sum)
	}
	return nil
}

// RandomVals draws a configuration. Without a constraint every site is drawn
// uniformly. With one, sites start at their lowest state and are raised one
// step at a time at random until the constraint is met.
func (s *Space) RandomVals(rng *rand.Rand) []float64 {
	conf := make([]float64, len(s.local))
	if !s.constrained {
		for i, values := range s.local {
			conf[i] = values[rng.IntN(len(values))]
		}
		return conf
	}

	ord := make([]int, len(s.local))
	open := make([]int, 0, len(s.local))
	for i, values := range s.local {
		if len(values) > 1 {
			open = append(open, i)
		}
	}
	for range s.target {
		k := rng.IntN(len(open))
		site := open[k]
		ord[site]++
		if ord[site] == len(s.local[site])-1 {
			open[k] = open[len(open)-1]
			open = open[:len(open)-1]
		}
	}
	for i, o := range ord {
		conf[i] = s.local[i][o]
	}
	return conf
}

// UpdateConf sets v[toChange[k]] = newConf[k] for every k. It validates all
// inputs before writing, so v is left untouched on error.
func (s *Space) UpdateConf(v []float64, toChange []int, newConf []float64) error {
	if len(v) != len(s.local) {
		return errs.Malformed(ErrConfigLength, "configuration has %d values, space has %d sites",
			len(v), len(s.local))
	}
	if len(toChange) != len(newConf) {
		return errs.Malformed(ErrConfigLength, "%d sites to change but %d new values",
			len(toChange), len(newConf))
	}
	for k, site := range toChange {
		if site < 0 || site >= len(s.local) {
			return errs.Malformed(ErrInvalidSite, "site %d outside [0, %d)", site, len(s.local))
		}
		if !slices.Contains(s.local[site], newConf[k]) {
			return errs.Malformed(ErrUnknownLocalState, "value %v is not allowed at site %d", newConf[k], site)
		}
	}
	for k, site := range toChange {
		v[site] = newConf[k]
	}
	return nil
}
