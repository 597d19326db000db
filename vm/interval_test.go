package vm_test

import (
	"math"
	"testing"

	"github.com/soypat/tapesdf"
	"github.com/soypat/tapesdf/tape"
	"github.com/soypat/tapesdf/vm"
)

// TestIntervalSoundness checks the core property of §8: for every point
// actually inside a lane's box, the scalar evaluation at that point lies
// within the interval computed for the whole box.
func TestIntervalSoundness(t *testing.T) {
	s := tapesdf.NewStore()
	d := s.SmoothUnion(s.Disk(-0.3, 0, 0.4), s.Disk(0.3, 0, 0.4), 0.2)
	defer d.Release()
	tp := tape.Optimize(tape.Compile(d))

	boxes := [4][2][2]float32{
		{{-1, -1}, {0, 0}},
		{{0, -1}, {1, 0}},
		{{-1, 0}, {0, 1}},
		{{0, 0}, {1, 1}},
	}
	var xiv, yiv vm.Interval4
	for i, b := range boxes {
		xiv[i] = vm.Interval{Lo: b[0][0], Hi: b[1][0]}
		yiv[i] = vm.Interval{Lo: b[0][1], Hi: b[1][1]}
	}
	vals := vm.EvalInterval4(tp, xiv, yiv)
	root := vals[len(vals)-1]

	const n = 9
	for lane, b := range boxes {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				x := b[0][0] + (b[1][0]-b[0][0])*float32(i)/float32(n-1)
				y := b[0][1] + (b[1][1]-b[0][1])*float32(j)/float32(n-1)
				got := vm.Eval(tp, x, y)
				iv := root[lane]
				if got < iv.Lo-1e-4 || got > iv.Hi+1e-4 {
					t.Fatalf("lane %d point (%v,%v): value %v outside interval [%v,%v]", lane, x, y, got, iv.Lo, iv.Hi)
				}
			}
		}
	}
}

func TestDivIntervalStraddlingZeroIsUnbounded(t *testing.T) {
	a := vm.Interval{Lo: 1, Hi: 1}
	b := vm.Interval{Lo: -1, Hi: 1}
	s := tapesdf.NewStore()
	x := s.VarX()
	defer x.Release()
	y := s.VarY()
	defer y.Release()
	expr := s.Div(x, y)
	defer expr.Release()
	tp := tape.Compile(expr)

	xiv := vm.Interval4{a, a, a, a}
	yiv := vm.Interval4{b, b, b, b}
	vals := vm.EvalInterval4(tp, xiv, yiv)
	root := vals[len(vals)-1][0]
	if !math.IsInf(float64(root.Lo), -1) || !math.IsInf(float64(root.Hi), 1) {
		t.Fatalf("expected unbounded interval for division by a zero-straddling interval, got [%v,%v]", root.Lo, root.Hi)
	}
}

func TestSqrtIntervalEntirelyNegativeCollapsesToZero(t *testing.T) {
	s := tapesdf.NewStore()
	c := s.Const(-5)
	defer c.Release()
	expr := s.Sqrt(c)
	defer expr.Release()
	tp := tape.Compile(expr)

	vals := vm.EvalInterval4(tp, vm.Interval4{}, vm.Interval4{})
	root := vals[len(vals)-1][0]
	if root.Lo != 0 || root.Hi != 0 {
		t.Fatalf("expected [0,0] for sqrt of an all-negative Const interval, got [%v,%v]", root.Lo, root.Hi)
	}
}
