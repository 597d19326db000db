package solve

import (
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/tapesdf"
)

// cellCorner indexes the four corners of a marching-squares cell: TL, TR,
// BL, BR respectively, matching the bit order the spec assigns them
// (TL=1, TR=2, BL=4, BR=8) and original_source/marching_squares.cpp's
// cell[] = {i00, i01, i10, i11}.
const (
	cornerTL = 0
	cornerTR = 1
	cornerBL = 2
	cornerBR = 3
)

// msEdge names a cell edge by the pair of corners it connects.
type msEdge [2]int

// msSegment is one output line segment, expressed as the two cell edges
// whose zero-crossing intersections become its endpoints.
type msSegment struct{ E0, E1 msEdge }

// marchingSquaresTable maps a 4-bit corner-sign configuration to its
// output segments (0, 1, or 2 of them — configurations 6 and 9 are the
// saddle cases). Transcribed verbatim from
// original_source/marching_squares.cpp's marching_squares_table.
var marchingSquaresTable = [16][]msSegment{
	0:  nil,
	1:  {{msEdge{cornerTL, cornerBL}, msEdge{cornerTL, cornerTR}}},
	2:  {{msEdge{cornerTL, cornerTR}, msEdge{cornerTR, cornerBR}}},
	3:  {{msEdge{cornerTL, cornerBL}, msEdge{cornerTR, cornerBR}}},
	4:  {{msEdge{cornerTL, cornerBL}, msEdge{cornerBL, cornerBR}}},
	5:  {{msEdge{cornerTL, cornerTR}, msEdge{cornerBL, cornerBR}}},
	6:  {{msEdge{cornerTL, cornerTR}, msEdge{cornerTL, cornerBL}}, {msEdge{cornerBL, cornerBR}, msEdge{cornerTR, cornerBR}}},
	7:  {{msEdge{cornerBL, cornerBR}, msEdge{cornerTR, cornerBR}}},
	8:  {{msEdge{cornerBL, cornerBR}, msEdge{cornerTR, cornerBR}}},
	9:  {{msEdge{cornerTL, cornerTR}, msEdge{cornerTR, cornerBR}}, {msEdge{cornerBL, cornerBR}, msEdge{cornerTL, cornerBL}}},
	10: {{msEdge{cornerTL, cornerTR}, msEdge{cornerBL, cornerBR}}},
	11: {{msEdge{cornerTL, cornerBL}, msEdge{cornerBL, cornerBR}}},
	12: {{msEdge{cornerTL, cornerBL}, msEdge{cornerTR, cornerBR}}},
	13: {{msEdge{cornerTL, cornerTR}, msEdge{cornerTR, cornerBR}}},
	14: {{msEdge{cornerTL, cornerTR}, msEdge{cornerTL, cornerBL}}},
	15: nil,
}

// edgeKey canonicalizes a cell edge by its two global grid-vertex ids,
// lower id first, per SPEC_FULL.md §4.8.
type edgeKey struct{ Lo, Hi int }

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// SignChange records the diagnostic attribution data SPEC_FULL.md §4.8
// asks for: for a grid vertex adjacent to a sign change, its value and
// which tile (and, when unambiguous, which authoring shape) produced it.
type SignChange struct {
	Value     float32
	TileIndex int
	Shape     tapesdf.Shape
}

// Mesh is the output of contouring: a vertex buffer plus undirected edges
// (index pairs), with per-vertex sign-change diagnostics.
type Mesh struct {
	Vertices   []ms2.Vec
	Edges      [][2]int
	SignChange map[int]SignChange
}

// interpolate returns the zero-crossing parameter along [v1,v2], per
// SPEC_FULL.md §4.8 / original_source/marching_squares.cpp's interpolate.
func interpolate(v1, v2 float32) float32 {
	t := -v1 / (v2 - v1)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t
}

// sign returns 0 for NaN so a NaN sample never registers as a sign change
// in either direction, per SPEC_FULL.md §7's "not a sign change" policy.
func sign(v float32) int {
	if v != v { // NaN
		return 0
	}
	if v < 0 {
		return -1
	}
	return 1
}

// Contour runs the two-pass marching-squares algorithm of SPEC_FULL.md
// §4.8 over tiles (as produced by Solve) and returns the resulting Mesh.
// dom must be the same Domain the tiles were solved against.
func Contour(tiles []Tile, dom Domain) Mesh {
	resolution := dom.Resolution
	cellSize := dom.step()

	var vertices []ms2.Vec
	edgeToVertex := make(map[edgeKey]int)

	// Pass 1: intersection computation.
	for _, tile := range tiles {
		sg := tile.Subgrid
		for ly := 0; ly <= sg.NY; ly++ {
			gy := sg.PY + ly
			for lx := 0; lx <= sg.NX; lx++ {
				gx := sg.PX + lx
				i00 := gy*resolution + gx
				v00 := tile.Value(lx, ly)
				s00 := sign(v00)

				if lx < sg.NX {
					v01 := tile.Value(lx+1, ly)
					key := newEdgeKey(i00, gy*resolution+gx+1)
					// Adjacent tiles share their boundary vertex column/row
					// (splitSubgrid partitions cells, not vertices), so the
					// same edge can be visited once per tile touching it;
					// only the first visit should mint a vertex.
					if _, seen := edgeToVertex[key]; !seen && s00*sign(v01) < 0 {
						t := interpolate(v00, v01)
						wx := dom.Lo + (float32(gx)+t)*cellSize
						wy := dom.Lo + float32(gy)*cellSize
						edgeToVertex[key] = len(vertices)
						vertices = append(vertices, ms2.Vec{X: wx, Y: wy})
					}
				}
				if ly < sg.NY {
					v10 := tile.Value(lx, ly+1)
					key := newEdgeKey(i00, (gy+1)*resolution+gx)
					if _, seen := edgeToVertex[key]; !seen && s00*sign(v10) < 0 {
						t := interpolate(v00, v10)
						wx := dom.Lo + float32(gx)*cellSize
						wy := dom.Lo + (float32(gy)+t)*cellSize
						edgeToVertex[key] = len(vertices)
						vertices = append(vertices, ms2.Vec{X: wx, Y: wy})
					}
				}
			}
		}
	}

	mesh := Mesh{Vertices: vertices, SignChange: make(map[int]SignChange)}

	// Pass 2: edge emission.
	for ti, tile := range tiles {
		sg := tile.Subgrid
		var tileShape tapesdf.Shape
		if len(tile.Tape) > 0 {
			tileShape = tile.Tape[len(tile.Tape)-1].Shape
		}
		for ly := 0; ly < sg.NY; ly++ {
			gy := sg.PY + ly
			for lx := 0; lx < sg.NX; lx++ {
				gx := sg.PX + lx
				i00 := gy*resolution + gx
				i01 := gy*resolution + gx + 1
				i10 := (gy+1)*resolution + gx
				i11 := (gy+1)*resolution + gx + 1
				cell := [4]int{i00, i01, i10, i11}
				vs := [4]float32{
					tile.Value(lx, ly),
					tile.Value(lx+1, ly),
					tile.Value(lx, ly+1),
					tile.Value(lx+1, ly+1),
				}
				config := 0
				if vs[cornerTL] < 0 {
					config |= 1
				}
				if vs[cornerTR] < 0 {
					config |= 2
				}
				if vs[cornerBL] < 0 {
					config |= 4
				}
				if vs[cornerBR] < 0 {
					config |= 8
				}
				if config == 0 || config == 15 {
					continue
				}

				for k, id := range cell {
					mesh.SignChange[id] = SignChange{Value: vs[k], TileIndex: ti, Shape: tileShape}
				}

				for _, seg := range marchingSquaresTable[config] {
					a := edgeToVertex[newEdgeKey(cell[seg.E0[0]], cell[seg.E0[1]])]
					b := edgeToVertex[newEdgeKey(cell[seg.E1[0]], cell[seg.E1[1]])]
					mesh.Edges = append(mesh.Edges, [2]int{a, b})
				}
			}
		}
	}

	return mesh
}
