package solve_test

import (
	"context"
	"testing"

	"github.com/soypat/tapesdf"
	"github.com/soypat/tapesdf/tape"
	"github.com/soypat/tapesdf/vm"

	"github.com/soypat/tapesdf/solve"
)

type namedShape string

func (n namedShape) ShapeName() string { return string(n) }

func contourDisk(t *testing.T, cx, cy, r float32, resolution int) solve.Mesh {
	t.Helper()
	s := tapesdf.NewStore()
	d := s.Disk(cx, cy, r)
	defer d.Release()
	tp := tape.Optimize(tape.Compile(d))
	m := vm.New(vm.MaxTileSize)
	tiles, err := solve.Solve(context.Background(), tp, domain(resolution), m)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	return solve.Contour(tiles, domain(resolution))
}

// TestContourUnitDiskProducesClosedLoop exercises scenario 1's contouring
// side: a unit disk centered at the origin should yield a nonempty mesh
// whose every segment endpoint sits on a strict sign-change edge.
func TestContourUnitDiskProducesClosedLoop(t *testing.T) {
	mesh := contourDisk(t, 0, 0, 1, 33)
	if len(mesh.Edges) == 0 {
		t.Fatalf("expected a nonempty contour for a unit disk crossing the domain")
	}
	// Every vertex referenced by an edge must be a valid index.
	for _, e := range mesh.Edges {
		if e[0] < 0 || e[0] >= len(mesh.Vertices) || e[1] < 0 || e[1] >= len(mesh.Vertices) {
			t.Fatalf("edge references out-of-range vertex: %v (have %d vertices)", e, len(mesh.Vertices))
		}
	}
}

// TestUnionAttribution exercises scenario 4: min(x+0.2, y+0.2) on a 17x17
// grid should, away from the diagonal, produce leaf tiles whose surviving
// tape is attributed to a single originating shape, since one operand of
// the Min interval-dominates there.
func TestUnionAttribution(t *testing.T) {
	s := tapesdf.NewStore()
	shapeA := namedShape("shape-A")
	shapeB := namedShape("shape-B")

	x := s.VarX()
	defer x.Release()
	a := s.Add(x, s.Const(0.2)).Tag(shapeA)
	defer a.Release()

	y := s.VarY()
	defer y.Release()
	b := s.Add(y, s.Const(0.2)).Tag(shapeB)
	defer b.Release()

	u := s.Min(a, b)
	defer u.Release()

	tp := tape.Optimize(tape.Compile(u))
	const resolution = 17
	m := vm.New(vm.MaxTileSize)
	tiles, err := solve.Solve(context.Background(), tp, domain(resolution), m)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	sawA, sawB, sawMixed := false, false, false
	for _, tile := range tiles {
		if len(tile.Tape) == 0 {
			continue
		}
		switch tile.Tape[len(tile.Tape)-1].Shape {
		case shapeA:
			sawA = true
		case shapeB:
			sawB = true
		default:
			sawMixed = true
		}
	}
	if !sawA || !sawB {
		t.Fatalf("expected both shape-A-only and shape-B-only leaf tiles; got A=%v B=%v mixed=%v", sawA, sawB, sawMixed)
	}
}

// TestSaddleConfigurationsEmitTwoSegments directly checks the table-driven
// boundary behavior of §8: configurations 6 and 9 must each emit exactly
// two segments for a single isolated cell.
func TestSaddleConfigurationsEmitTwoSegments(t *testing.T) {
	// Build a single-tile grid whose four corners we control directly by
	// constructing a tape that ignores the tape machinery and instead
	// exercises solve.Contour directly against a hand-built Tile.
	tile := solve.Tile{
		Subgrid: solve.Subgrid{PX: 0, PY: 0, NX: 1, NY: 1},
		Values:  []float32{-1, 1, 1, -1}, // TL=-1(neg) TR=1 BL=1 BR=-1(neg): config 9
	}
	mesh := solve.Contour([]solve.Tile{tile}, solve.Domain{Resolution: 2, Lo: -1, Hi: 1})
	if len(mesh.Edges) != 2 {
		t.Fatalf("case 9 (saddle) should emit exactly 2 segments, got %d", len(mesh.Edges))
	}

	tile2 := solve.Tile{
		Subgrid: solve.Subgrid{PX: 0, PY: 0, NX: 1, NY: 1},
		Values:  []float32{1, -1, -1, 1}, // TL=1 TR=-1(neg) BL=-1(neg) BR=1: config 6
	}
	mesh2 := solve.Contour([]solve.Tile{tile2}, solve.Domain{Resolution: 2, Lo: -1, Hi: 1})
	if len(mesh2.Edges) != 2 {
		t.Fatalf("case 6 (saddle) should emit exactly 2 segments, got %d", len(mesh2.Edges))
	}
}
