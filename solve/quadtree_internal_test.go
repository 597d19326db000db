package solve

import "testing"

// TestSplitSubgridExactlyPartitionsParent checks the structural partition
// property independent of interval culling: the four quadrants' vertex
// ranges exactly cover the parent's range with no gap and no overlap of
// cell (not vertex) coordinates, for both even and odd cell counts.
func TestSplitSubgridExactlyPartitionsParent(t *testing.T) {
	for _, sg := range []Subgrid{
		{PX: 0, PY: 0, NX: 8, NY: 8},
		{PX: 3, PY: 5, NX: 7, NY: 9}, // odd dimensions exercise floor/ceil split
		{PX: 0, PY: 0, NX: 1, NY: 1}, // minimal splittable subgrid
	} {
		quads := splitSubgrid(sg)

		cells := make(map[[2]int]bool)
		for _, q := range quads {
			for j := 0; j < q.NY; j++ {
				for i := 0; i < q.NX; i++ {
					key := [2]int{q.PX + i, q.PY + j}
					if cells[key] {
						t.Fatalf("subgrid %+v: cell %v claimed by more than one quadrant", sg, key)
					}
					cells[key] = true
				}
			}
		}
		if got, want := len(cells), sg.NX*sg.NY; got != want {
			t.Fatalf("subgrid %+v: quadrants cover %d cells, want %d", sg, got, want)
		}
	}
}
