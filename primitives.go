package tapesdf

import "github.com/chewxy/math32"

// Disk builds the signed-distance expression of a circle of radius r
// centered at (cx,cy): sqrt((x-cx)^2 + (y-cy)^2) - r.
//
// Grounded on the reference implementation's disk() (original_source/node.cpp):
// (dx.square() + dy.square()).sqrt() - r.
func (s *Store) Disk(cx, cy, r float32) Scalar {
	x, y := s.VarX(), s.VarY()
	defer x.Release()
	defer y.Release()

	cxv, cyv, rv := s.Const(cx), s.Const(cy), s.Const(r)
	defer cxv.Release()
	defer cyv.Release()
	defer rv.Release()

	dx := s.Sub(x, cxv)
	dy := s.Sub(y, cyv)
	defer dx.Release()
	defer dy.Release()

	sqx, sqy := s.Square(dx), s.Square(dy)
	defer sqx.Release()
	defer sqy.Release()

	sum := s.Add(sqx, sqy)
	defer sum.Release()

	dist := s.Sqrt(sum)
	defer dist.Release()

	return s.Sub(dist, rv)
}

// Rectangle builds the signed-distance expression of an axis-aligned
// rectangle of size w x h centered at (cx,cy).
//
// Grounded on original_source/node.cpp's rectangle(): with
// dx = |x-cx| - w/2, dy = |y-cy| - h/2,
// rectangle(p) = sqrt(max(dx,0)^2 + max(dy,0)^2) + min(max(dx,dy), 0).
func (s *Store) Rectangle(cx, cy, w, h float32) Scalar {
	x, y := s.VarX(), s.VarY()
	defer x.Release()
	defer y.Release()

	cxv, cyv := s.Const(cx), s.Const(cy)
	defer cxv.Release()
	defer cyv.Release()
	hw, hh := s.Const(w/2), s.Const(h/2)
	defer hw.Release()
	defer hh.Release()

	subX, subY := s.Sub(x, cxv), s.Sub(y, cyv)
	defer subX.Release()
	defer subY.Release()
	absX, absY := s.Abs(subX), s.Abs(subY)
	defer absX.Release()
	defer absY.Release()

	dx := s.Sub(absX, hw)
	dy := s.Sub(absY, hh)
	defer dx.Release()
	defer dy.Release()

	zero := s.Const(0)
	defer zero.Release()

	maxDx0 := s.Max(dx, zero)
	maxDy0 := s.Max(dy, zero)
	defer maxDx0.Release()
	defer maxDy0.Release()

	sqx, sqy := s.Square(maxDx0), s.Square(maxDy0)
	defer sqx.Release()
	defer sqy.Release()

	sumSq := s.Add(sqx, sqy)
	defer sumSq.Release()
	outside := s.Sqrt(sumSq)
	defer outside.Release()

	maxDxDy := s.Max(dx, dy)
	defer maxDxDy.Release()
	inside := s.Min(maxDxDy, zero)
	defer inside.Release()

	return s.Add(outside, inside)
}

// Union builds the sharp boolean union min(a,b). It borrows (does not
// release) a and b.
func (s *Store) Union(a, b Scalar) Scalar {
	return s.Min(a, b)
}

// SmoothUnion builds the Quilez smooth-min union of a and b with blend
// radius r: with k = r*(1/(1-sqrt(0.5))), h = max(k-|a-b|,0)/k,
// result = min(a,b) - k/2*(1 + h - sqrt(1 - h*(h-2))).
//
// This matches the commented-out inigo_smin() in original_source/node.cpp
// and github.com/soypat/gsdf's SmoothUnion operation (operations.go,
// smoothUnion.AppendShaderBody / cpu_evaluators.go's smoothUnion.Evaluate),
// not the differently-formulated smooth_union() that file actually wires up
// — see SPEC_FULL.md §4.9 for the discrepancy this resolves.
func (s *Store) SmoothUnion(a, b Scalar, r float32) Scalar {
	k := r * (1 / (1 - math32.Sqrt(0.5)))
	kc := s.Const(k)
	defer kc.Release()

	diff := s.Sub(a, b)
	defer diff.Release()
	absDiff := s.Abs(diff)
	defer absDiff.Release()

	zero := s.Const(0)
	defer zero.Release()

	kMinusAbs := s.Sub(kc, absDiff)
	defer kMinusAbs.Release()
	numer := s.Max(kMinusAbs, zero)
	defer numer.Release()
	h := s.Div(numer, kc)
	defer h.Release()

	minAB := s.Min(a, b)
	defer minAB.Release()

	one := s.Const(1)
	defer one.Release()
	two := s.Const(2)
	defer two.Release()
	half := s.Const(0.5)
	defer half.Release()

	hMinus2 := s.Sub(h, two)
	defer hMinus2.Release()
	hTimesHMinus2 := s.Mul(h, hMinus2)
	defer hTimesHMinus2.Release()
	underRoot := s.Sub(one, hTimesHMinus2)
	defer underRoot.Release()
	sqrtTerm := s.Sqrt(underRoot)
	defer sqrtTerm.Release()

	onePlusH := s.Add(one, h)
	defer onePlusH.Release()
	bracket := s.Sub(onePlusH, sqrtTerm)
	defer bracket.Release()

	kHalf := s.Mul(kc, half)
	defer kHalf.Release()
	sub := s.Mul(kHalf, bracket)
	defer sub.Release()

	return s.Sub(minAB, sub)
}

// Disk, Rectangle, Union and SmoothUnion, operating on the default Store.
func Disk(cx, cy, r float32) Scalar             { return defaultStore.Disk(cx, cy, r) }
func Rectangle(cx, cy, w, h float32) Scalar     { return defaultStore.Rectangle(cx, cy, w, h) }
func Union(a, b Scalar) Scalar                  { return defaultStore.Union(a, b) }
func SmoothUnion(a, b Scalar, r float32) Scalar { return defaultStore.SmoothUnion(a, b, r) }
