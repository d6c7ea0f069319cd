package compose

import (
	"sort"

	"github.com/cockroachdb/errors"

	"derive-generator/internal/expr"
)

// orderDeclarations sorts auxiliary declarations so that every declaration
// appears after the declarations it references. Mutually recursive
// declarations have no such order; they are left in creation order.
func orderDeclarations(decls []expr.Declaration) []expr.Declaration {
	order, err := topoSort(len(decls), func(i int) []int {
		var deps []int

		for j := range decls {
			if j != i && expr.ReferencesName(decls[i].Body, decls[j].Name) {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil {
		return decls
	}

	out := make([]expr.Declaration, len(decls))
	for pos, i := range order {
		out[pos] = decls[i]
	}

	return out
}

// topoSort returns indices in execution order.
//
// Nodes are by index; depsFn(i) yields indices that must come before i.
// The result is deterministic: when multiple nodes are available, the
// smallest index wins. A cycle yields an error.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, errors.Newf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	// Deterministic traversal.
	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	sort.Ints(ready)

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				ready = append(ready, j)
				sort.Ints(ready)
			}
		}
	}

	if len(order) != n {
		return nil, errors.New("declaration cycle detected")
	}

	return order, nil
}
