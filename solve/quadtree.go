// Package solve recursively subdivides the [-1,1]^2 grid domain, culling
// quadrants with interval arithmetic and pruning their tapes, and contours
// the surviving leaf tiles with marching squares (C7, C8).
//
// The recursion is grounded on glrender/octree.go's octree decomposition:
// the same "split, interval-test, recurse-or-skip" shape, here driven by
// genuine interval evaluation against a compiled tape instead of
// octree.go's single-center-sample bounding-sphere heuristic, and over a
// 2D quadtree instead of a 3D octree.
package solve

import (
	"context"
	"fmt"

	"github.com/soypat/tapesdf"
	"github.com/soypat/tapesdf/tape"
	"github.com/soypat/tapesdf/vm"
)

// Subgrid identifies a contiguous rectangle of grid vertices: PX,PY is the
// lower-left vertex index and NX,NY are cell counts along x,y, covering
// (NX+1)x(NY+1) vertices. Grounded on SPEC_FULL.md §3's Subgrid data model.
type Subgrid struct {
	PX, PY int
	NX, NY int
}

// VertexCount returns the number of grid vertices the subgrid covers.
func (sg Subgrid) VertexCount() int { return (sg.NX + 1) * (sg.NY + 1) }

// Tile is a leaf of the quadtree: a Subgrid plus its row-major sampled
// values (index = j*(NX+1)+i) and the pruned tape that produced them.
type Tile struct {
	Subgrid
	Values []float32
	Tape   tape.Tape
}

// Value returns the sampled value at local vertex (i,j) within the tile.
func (t Tile) Value(i, j int) float32 {
	return t.Values[j*(t.NX+1)+i]
}

// Domain describes the world-space square a full-resolution grid covers
// and the resolution (vertex count per side) used to map grid indices to
// world coordinates.
type Domain struct {
	Resolution int
	Lo, Hi     float32 // world bounds, identical on both axes per SPEC_FULL.md §6 ([-1,1])
}

func (d Domain) step() float32 {
	return (d.Hi - d.Lo) / float32(d.Resolution-1)
}

func (d Domain) worldX(px int) float32 { return d.Lo + float32(px)*d.step() }
func (d Domain) worldY(py int) float32 { return d.Lo + float32(py)*d.step() }

// Solve recursively subdivides the full Resolution x Resolution grid of
// dom, evaluating t (already compiled and optimized) in batch mode over
// leaves and interval-evaluated/pruned over internal nodes, and returns
// every surviving leaf Tile. Grounded on SPEC_FULL.md §4.7.
//
// ctx is checked cooperatively between top-level quadtree recursion steps
// (never inside a single tile's batch evaluation), per SPEC_FULL.md §5: a
// canceled ctx aborts the run and returns ctx.Err(), discarding any tiles
// already collected. Pass context.Background() for a run that should
// never be preempted.
func Solve(ctx context.Context, t tape.Tape, dom Domain, vmi *vm.VM) ([]Tile, error) {
	if dom.Resolution < 2 {
		return nil, fmt.Errorf("solve: invalid resolution %d", dom.Resolution)
	}
	if !t.Valid() {
		return nil, fmt.Errorf("solve: %w", tapesdf.ErrInvalidTape)
	}
	if len(t) == 0 {
		return nil, nil // empty expression: no tiles, hence an empty mesh
	}
	root := Subgrid{PX: 0, PY: 0, NX: dom.Resolution - 1, NY: dom.Resolution - 1}
	var tiles []Tile
	if err := solveRec(ctx, t, root, dom, vmi, &tiles); err != nil {
		return nil, err
	}
	return tiles, nil
}

func solveRec(ctx context.Context, t tape.Tape, sg Subgrid, dom Domain, vmi *vm.VM, tiles *[]Tile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sg.VertexCount() <= vmi.Capacity() {
		xs, ys := gridPoints(sg, dom)
		out := make([]float32, len(xs))
		if err := vmi.EvalBatch(t, xs, ys, out); err != nil {
			return err
		}
		*tiles = append(*tiles, Tile{Subgrid: sg, Values: out, Tape: t})
		return nil
	}

	tapesdf.Logger().Debug("splitSubgrid",
		"px", sg.PX, "py", sg.PY, "nx", sg.NX, "ny", sg.NY, "tape_len", len(t))

	quads := splitSubgrid(sg)
	var xiv, yiv vm.Interval4
	for i, q := range quads {
		xiv[i] = vm.Interval{Lo: dom.worldX(q.PX), Hi: dom.worldX(q.PX + q.NX)}
		yiv[i] = vm.Interval{Lo: dom.worldY(q.PY), Hi: dom.worldY(q.PY + q.NY)}
	}
	vals := vm.EvalInterval4(t, xiv, yiv)
	pruned := vm.Prune4(t, vals)
	rootIv := vals[len(vals)-1]

	pruneCount := 0
	for i, q := range quads {
		iv := rootIv[i]
		if iv.Lo > 0 || iv.Hi < 0 {
			pruneCount++
			continue // strictly empty or strictly interior: no zero crossing possible
		}
		if err := solveRec(ctx, pruned[i], q, dom, vmi, tiles); err != nil {
			return err
		}
	}
	tapesdf.Logger().Debug("prune",
		"px", sg.PX, "py", sg.PY, "pruned", pruneCount, "kept", len(quads)-pruneCount)
	return nil
}

// splitSubgrid bisects sg into four quadrants. An odd cell count gives the
// lower half floor(n/2) cells and the upper half the remaining ceil(n/2),
// so the quadrants' cell ranges exactly partition the parent's with no
// overlap (vertex ranges share one boundary vertex per axis, as is
// standard for a shared-edge grid split).
func splitSubgrid(sg Subgrid) [4]Subgrid {
	nxLo := sg.NX / 2
	nxHi := sg.NX - nxLo
	nyLo := sg.NY / 2
	nyHi := sg.NY - nyLo
	return [4]Subgrid{
		{PX: sg.PX, PY: sg.PY, NX: nxLo, NY: nyLo},                   // bottom-left
		{PX: sg.PX + nxLo, PY: sg.PY, NX: nxHi, NY: nyLo},             // bottom-right
		{PX: sg.PX, PY: sg.PY + nyLo, NX: nxLo, NY: nyHi},             // top-left
		{PX: sg.PX + nxLo, PY: sg.PY + nyLo, NX: nxHi, NY: nyHi},      // top-right
	}
}

func gridPoints(sg Subgrid, dom Domain) (xs, ys []float32) {
	n := sg.VertexCount()
	xs = make([]float32, n)
	ys = make([]float32, n)
	k := 0
	for j := 0; j <= sg.NY; j++ {
		y := dom.worldY(sg.PY + j)
		for i := 0; i <= sg.NX; i++ {
			xs[k] = dom.worldX(sg.PX + i)
			ys[k] = y
			k++
		}
	}
	return xs, ys
}
