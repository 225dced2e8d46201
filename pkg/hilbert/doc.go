// Package hilbert describes discrete many-body state spaces on a lattice and
// indexes their basis states.
//
// A [Space] lists the allowed local values of every site: [Spin], [Qubit],
// [Boson] and [CustomSpace] share one list across all sites of a lattice,
// while [NewSpace] takes a list per site. Spin and boson spaces may carry a
// constraint on the total magnetization or particle number, which
// [Space.RandomVals] honours.
//
// An [Index] maps every configuration of a space to a dense integer and back:
//
//	sp, _ := hilbert.Spin(g, 0.5)
//	idx, err := hilbert.NewIndex(sp)
//	if err != nil {
//	    return err // more than MaxStates states
//	}
//	for i, conf := range idx.All() {
//	    fmt.Println(i, conf)
//	}
//
// Site 0 is the most significant digit of the index. Both Space and Index are
// immutable once built.
package hilbert
