package hilbert

import (
	"iter"
	"slices"

	errs "github.com/matzehuels/latticekit/pkg/errors"
)

// MaxStates is the largest state count NewIndex accepts. Exact enumeration is
// meant for small systems only; callers can compare the product of their
// local dimensions against it before building an index.
const MaxStates = 1 << 30

// Descriptor is a per-site local-state description. *Space satisfies it.
type Descriptor interface {
	Size() int
	LocalStatesAt(site int) []float64
}

// Index is a bijection between full configurations and the integers
// [0, NStates).
//
// The numbering is mixed radix with site 0 as the most significant digit: the
// weight of site i is the product of the local dimensions of sites i+1..N-1,
// and the digit is the ordinal of the value within its site's list. For two
// spin-1/2 sites the order is (-1,-1), (-1,1), (1,-1), (1,1).
//
// Sum constraints of the descriptor are ignored; the index covers the full
// product basis. An Index is immutable and safe for concurrent use.
type Index struct {
	values  [][]float64
	lookup  []map[float64]int
	weights []int
	nstates int
}

// NewIndex builds the index for d. It fails with MALFORMED_INPUT when the
// state count would exceed MaxStates or a site's list is empty or repeats a
// value.
func NewIndex(d Descriptor) (*Index, error) {
	n := d.Size()
	total, err := stateCount(d, n)
	if err != nil {
		return nil, err
	}
	idx := &Index{
		values:  make([][]float64, n),
		lookup:  make([]map[float64]int, n),
		weights: make([]int, n),
		nstates: total,
	}

	for i := range n {
		values := d.LocalStatesAt(i)
		if i > 0 && slices.Equal(values, idx.values[i-1]) {
			idx.values[i], idx.lookup[i] = idx.values[i-1], idx.lookup[i-1]
			continue
		}
		if err := checkLocalStates(values); err != nil {
			return nil, err
		}
		lookup := make(map[float64]int, len(values))
		for ord, v := range values {
			lookup[v] = ord
		}
		idx.values[i], idx.lookup[i] = values, lookup
	}

	w := 1
	for i := n - 1; i >= 0; i-- {
		idx.weights[i] = w
		w *= len(idx.values[i])
	}
	return idx, nil
}

// stateCount multiplies the local dimensions of d from the last site down,
// stopping at the first site that takes the product past MaxStates. It runs
// before any per-site table is allocated.
func stateCount(d Descriptor, n int) (int, error) {
	total := 1
	for i := n - 1; i >= 0; i-- {
		dim := len(d.LocalStatesAt(i))
		if dim == 0 {
			return 0, errs.Malformed(ErrInvalidLocalStates, "empty local-state list at site %d", i)
		}
		if total > MaxStates/dim {
			return 0, errs.Malformed(ErrTooManyStates,
				"state count exceeds %d (site %d of %d has %d local states)", MaxStates, i, n, dim)
		}
		total *= dim
	}
	return total, nil
}

// NStates returns the number of basis states.
func (x *Index) NStates() int { return x.nstates }

// Size returns the number of sites.
func (x *Index) Size() int { return len(x.values) }

// StateToNumber returns the index of conf.
func (x *Index) StateToNumber(conf []float64) (int, error) {
	if len(conf) != len(x.values) {
		return 0, errs.Malformed(ErrConfigLength, "configuration has %d values, index has %d sites",
			len(conf), len(x.values))
	}
	number := 0
	for i, v := range conf {
		ord, ok := x.lookup[i][v]
		if !ok {
			return 0, errs.Malformed(ErrUnknownLocalState, "value %v is not allowed at site %d", v, i)
		}
		number += ord * x.weights[i]
	}
	return number, nil
}

// NumberToState returns the configuration with the given index.
func (x *Index) NumberToState(i int) ([]float64, error) {
	conf := make([]float64, len(x.values))
	if err := x.NumberToStateInto(i, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// NumberToStateInto writes the configuration with index i into dst, which
// must have one entry per site.
func (x *Index) NumberToStateInto(i int, dst []float64) error {
	if i < 0 || i >= x.nstates {
		return errs.Malformed(ErrIndexOutOfRange, "index %d outside [0, %d)", i, x.nstates)
	}
	if len(dst) != len(x.values) {
		return errs.Malformed(ErrConfigLength, "buffer has %d entries, index has %d sites",
			len(dst), len(x.values))
	}
	for site := len(x.values) - 1; site >= 0; site-- {
		dim := len(x.values[site])
		dst[site] = x.values[site][i%dim]
		i /= dim
	}
	return nil
}

// All yields every basis state in index order. The yielded slice is reused
// between iterations; clone it to keep it.
func (x *Index) All() iter.Seq2[int, []float64] {
	return func(yield func(int, []float64) bool) {
		conf := make([]float64, len(x.values))
		for i := range x.nstates {
			_ = x.NumberToStateInto(i, conf)
			if !yield(i, conf) {
				return
			}
		}
	}
}
