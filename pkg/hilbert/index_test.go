package hilbert_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/latticekit/pkg/errors"
	"github.com/matzehuels/latticekit/pkg/hilbert"
	"github.com/matzehuels/latticekit/pkg/lattice"
)

// sites is a bare Lattice with a fixed site count.
type sites int

func (n sites) NumSites() int { return int(n) }

func requireMalformed(t *testing.T, err error, sentinel error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeMalformedInput), "code = %q", errs.GetCode(err))
	assert.True(t, errors.Is(err, sentinel), "err = %v, want cause %v", err, sentinel)
}

func TestIndex_TwoSitesTwoStates(t *testing.T) {
	sp, err := hilbert.Qubit(sites(2))
	require.NoError(t, err)
	idx, err := hilbert.NewIndex(sp)
	require.NoError(t, err)
	require.Equal(t, 4, idx.NStates())

	for i := range idx.NStates() {
		conf, err := idx.NumberToState(i)
		require.NoError(t, err)
		back, err := idx.StateToNumber(conf)
		require.NoError(t, err)
		assert.Equal(t, i, back)
	}

	for _, conf := range [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		i, err := idx.StateToNumber(conf)
		require.NoError(t, err)
		back, err := idx.NumberToState(i)
		require.NoError(t, err)
		assert.Equal(t, conf, back)
	}
}

func TestIndex_SiteZeroMostSignificant(t *testing.T) {
	sp, err := hilbert.Spin(sites(2), 0.5)
	require.NoError(t, err)
	idx, err := hilbert.NewIndex(sp)
	require.NoError(t, err)

	var got [][]float64
	for _, conf := range idx.All() {
		got = append(got, append([]float64(nil), conf...))
	}
	assert.Equal(t, [][]float64{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}, got)
}

func TestIndex_MixedRadix(t *testing.T) {
	sp, err := hilbert.NewSpace([][]float64{{0, 1, 2}, {-1, 1}, {5, 6, 7, 8}})
	require.NoError(t, err)
	assert.False(t, sp.IsUniform())
	assert.Equal(t, 4, sp.LocalSize())

	idx, err := hilbert.NewIndex(sp)
	require.NoError(t, err)
	assert.Equal(t, 24, idx.NStates())

	// weights are 8, 4, 1
	n, err := idx.StateToNumber([]float64{2, 1, 6})
	require.NoError(t, err)
	assert.Equal(t, 2*8+1*4+1, n)

	seen := make(map[int]bool)
	for i, conf := range idx.All() {
		back, err := idx.StateToNumber(conf)
		require.NoError(t, err)
		assert.Equal(t, i, back)
		seen[i] = true
	}
	assert.Len(t, seen, 24)
}

func TestIndex_MaxStates(t *testing.T) {
	// 2^30 == MaxStates
	sp, err := hilbert.Qubit(sites(30))
	require.NoError(t, err)
	idx, err := hilbert.NewIndex(sp)
	require.NoError(t, err)
	assert.Equal(t, hilbert.MaxStates, idx.NStates())

	// 4^15 == MaxStates
	sp, err = hilbert.CustomSpace(sites(15), []float64{0, 1, 2, 3})
	require.NoError(t, err)
	idx, err = hilbert.NewIndex(sp)
	require.NoError(t, err)
	assert.Equal(t, hilbert.MaxStates, idx.NStates())

	conf, err := idx.NumberToState(hilbert.MaxStates - 1)
	require.NoError(t, err)
	for _, v := range conf {
		assert.Equal(t, 3.0, v)
	}
}

func TestIndex_TooManyStates(t *testing.T) {
	tests := []struct {
		name  string
		sites int
		local []float64
	}{
		{"2^31", 31, []float64{0, 1}},
		{"3^19", 19, []float64{0, 1, 2}},
		{"4^16", 16, []float64{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp, err := hilbert.CustomSpace(sites(tt.sites), tt.local)
			require.NoError(t, err)
			idx, err := hilbert.NewIndex(sp)
			requireMalformed(t, err, hilbert.ErrTooManyStates)
			assert.Nil(t, idx)
		})
	}
}

func TestIndex_QueryErrors(t *testing.T) {
	g, err := lattice.Hypercube(3, 1, true)
	require.NoError(t, err)
	sp, err := hilbert.Spin(g, 1)
	require.NoError(t, err)
	idx, err := hilbert.NewIndex(sp)
	require.NoError(t, err)
	require.Equal(t, 27, idx.NStates())

	_, err = idx.NumberToState(27)
	requireMalformed(t, err, hilbert.ErrIndexOutOfRange)
	_, err = idx.NumberToState(-1)
	requireMalformed(t, err, hilbert.ErrIndexOutOfRange)

	_, err = idx.StateToNumber([]float64{-2, 0, 1})
	requireMalformed(t, err, hilbert.ErrUnknownLocalState)
	_, err = idx.StateToNumber([]float64{-2, 0})
	requireMalformed(t, err, hilbert.ErrConfigLength)

	err = idx.NumberToStateInto(0, make([]float64, 2))
	requireMalformed(t, err, hilbert.ErrConfigLength)
}

// duplicated is a Descriptor that does not go through Space validation.
type duplicated struct{}

func (duplicated) Size() int { return 2 }

func (duplicated) LocalStatesAt(int) []float64 { return []float64{1, 1} }

func TestIndex_RejectsDuplicateLocalStates(t *testing.T) {
	_, err := hilbert.NewIndex(duplicated{})
	requireMalformed(t, err, hilbert.ErrInvalidLocalStates)
}

// wide claims an enormous site count; NewIndex must reject it from the
// local dimensions alone.
type wide struct{ calls *int }

func (wide) Size() int { return 1 << 45 }

func (w wide) LocalStatesAt(int) []float64 {
	*w.calls++
	return []float64{0, 1}
}

func TestIndex_TooManyStatesBeforeAllocation(t *testing.T) {
	calls := 0
	idx, err := hilbert.NewIndex(wide{calls: &calls})
	requireMalformed(t, err, hilbert.ErrTooManyStates)
	assert.Nil(t, idx)
	assert.LessOrEqual(t, calls, 31)
}

func TestIndex_EmptySpace(t *testing.T) {
	sp, err := hilbert.Qubit(sites(0))
	require.NoError(t, err)
	idx, err := hilbert.NewIndex(sp)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.NStates())

	n, err := idx.StateToNumber(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
