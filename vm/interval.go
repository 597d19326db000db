package vm

import "github.com/soypat/tapesdf/tape"

// Interval is a closed, conservative bound [Lo, Hi] on a scalar quantity.
type Interval struct {
	Lo, Hi float32
}

// Contains reports whether v lies within the interval, inclusive.
func (iv Interval) Contains(v float32) bool {
	return v >= iv.Lo && v <= iv.Hi
}

// Interval4 bounds four lanes at once — one per quadrant of a 2x2 subgrid
// split, per SPEC_FULL.md §4.5/§4.7. Evaluating four quadrants together
// instead of one at a time is what lets Prune4 make a single pruning pass
// shared across all four.
type Interval4 [4]Interval

// PointInterval4 builds a degenerate (zero-width) Interval4, one bound per
// lane value. Solve does not use it; it seeds VarX/VarY with the quadrants'
// full box intervals.
func PointInterval4(v [4]float32) Interval4 {
	var r Interval4
	for i, x := range v {
		r[i] = Interval{x, x}
	}
	return r
}

// EvalInterval4 evaluates every instruction of t over four interval lanes
// at once, returning one Interval4 per tape position (vals[i] is the bound
// computed for t[i]). The full per-instruction array — not just the root's
// result — is required by Prune4, which needs every instruction's interval
// to decide dominance. Grounded on original_source/vm.cpp's
// evaluate_interval4 and SPEC_FULL.md §4.5's per-opcode interval rules.
func EvalInterval4(t tape.Tape, x, y Interval4) []Interval4 {
	vals := make([]Interval4, len(t))
	for i, inst := range t {
		vals[i] = evalIntervalInst(inst, x, y, vals)
	}
	return vals
}

func evalIntervalInst(inst tape.Instruction, x, y Interval4, vals []Interval4) Interval4 {
	switch inst.Op {
	case tape.OpVarX:
		return x
	case tape.OpVarY:
		return y
	case tape.OpConst:
		var r Interval4
		for i := range r {
			r[i] = Interval{inst.Const, inst.Const}
		}
		return r
	case tape.OpAdd:
		a, b := vals[inst.In0], vals[inst.In1]
		var r Interval4
		for i := range r {
			r[i] = Interval{a[i].Lo + b[i].Lo, a[i].Hi + b[i].Hi}
		}
		return r
	case tape.OpSub:
		a, b := vals[inst.In0], vals[inst.In1]
		var r Interval4
		for i := range r {
			r[i] = Interval{a[i].Lo - b[i].Hi, a[i].Hi - b[i].Lo}
		}
		return r
	case tape.OpMul:
		a, b := vals[inst.In0], vals[inst.In1]
		var r Interval4
		for i := range r {
			r[i] = mulInterval(a[i], b[i])
		}
		return r
	case tape.OpDiv:
		a, b := vals[inst.In0], vals[inst.In1]
		var r Interval4
		for i := range r {
			r[i] = divInterval(a[i], b[i])
		}
		return r
	case tape.OpNeg:
		a := vals[inst.In0]
		var r Interval4
		for i := range r {
			r[i] = Interval{-a[i].Hi, -a[i].Lo}
		}
		return r
	case tape.OpAbs:
		a := vals[inst.In0]
		var r Interval4
		for i := range r {
			r[i] = absInterval(a[i])
		}
		return r
	case tape.OpSquare:
		a := vals[inst.In0]
		var r Interval4
		for i := range r {
			r[i] = squareInterval(a[i])
		}
		return r
	case tape.OpSqrt:
		a := vals[inst.In0]
		var r Interval4
		for i := range r {
			r[i] = sqrtInterval(a[i])
		}
		return r
	case tape.OpMax:
		a, b := vals[inst.In0], vals[inst.In1]
		var r Interval4
		for i := range r {
			r[i] = Interval{maxf(a[i].Lo, b[i].Lo), maxf(a[i].Hi, b[i].Hi)}
		}
		return r
	case tape.OpMin:
		a, b := vals[inst.In0], vals[inst.In1]
		var r Interval4
		for i := range r {
			r[i] = Interval{minf(a[i].Lo, b[i].Lo), minf(a[i].Hi, b[i].Hi)}
		}
		return r
	default:
		panic("vm: unknown opcode in interval evaluation")
	}
}

func mulInterval(a, b Interval) Interval {
	p0, p1, p2, p3 := a.Lo*b.Lo, a.Lo*b.Hi, a.Hi*b.Lo, a.Hi*b.Hi
	lo := minf(minf(p0, p1), minf(p2, p3))
	hi := maxf(maxf(p0, p1), maxf(p2, p3))
	return Interval{lo, hi}
}

// divInterval follows SPEC_FULL.md §4.5: if the divisor interval straddles
// zero, the quotient is unbounded in both directions ([-Inf, +Inf]) rather
// than a spurious finite bound.
func divInterval(a, b Interval) Interval {
	if b.Lo <= 0 && b.Hi >= 0 {
		return Interval{negInf, posInf}
	}
	q0, q1, q2, q3 := a.Lo/b.Lo, a.Lo/b.Hi, a.Hi/b.Lo, a.Hi/b.Hi
	lo := minf(minf(q0, q1), minf(q2, q3))
	hi := maxf(maxf(q0, q1), maxf(q2, q3))
	return Interval{lo, hi}
}

func absInterval(a Interval) Interval {
	switch {
	case a.Lo >= 0:
		return a
	case a.Hi <= 0:
		return Interval{-a.Hi, -a.Lo}
	default:
		return Interval{0, maxf(-a.Lo, a.Hi)}
	}
}

func squareInterval(a Interval) Interval {
	abs := absInterval(a)
	return Interval{abs.Lo * abs.Lo, abs.Hi * abs.Hi}
}

// sqrtInterval follows SPEC_FULL.md §4.5: when the entire interval is
// negative there is no real result anywhere in range, so the conservative
// (but not NaN-propagating) bound [0,0] is returned instead; a partially
// negative interval clamps its lower bound to zero before taking the root.
func sqrtInterval(a Interval) Interval {
	if a.Hi < 0 {
		return Interval{0, 0}
	}
	lo := a.Lo
	if lo < 0 {
		lo = 0
	}
	return Interval{sqrtf(lo), sqrtf(a.Hi)}
}
