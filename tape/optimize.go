package tape

import "github.com/chewxy/math32"

// evalConst computes the scalar result of a single instruction whose
// inputs (if any) are themselves Const instructions. Semantics mirror the
// runtime VM exactly (package vm's scalar evaluator) per SPEC_FULL.md
// §4.3/§4.4: division by zero yields IEEE ±Inf/NaN, sqrt of a negative
// literal yields NaN, never a panic.
//
// This duplicates a handful of opcode semantics also implemented by
// package vm; the two packages cannot share the helper without an import
// cycle (vm already imports tape for Instruction/Tape), so both implement
// the same "mirror the runtime VM" contract independently, exactly as the
// spec requires them to.
func evalConst(op OpCode, a, b float32) float32 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	case OpNeg:
		return -a
	case OpAbs:
		return math32.Abs(a)
	case OpSquare:
		return a * a
	case OpSqrt:
		return math32.Sqrt(a)
	case OpMax:
		return math32.Max(a, b)
	case OpMin:
		return math32.Min(a, b)
	default:
		panic("tape: evalConst called on non-arithmetic opcode " + op.String())
	}
}

// Optimize runs constant folding then dead-code elimination over t and
// returns a new, independently-owned Tape. Grounded on SPEC_FULL.md §4.3;
// there is no direct original_source analogue (the reference implementation
// has no optimizer), so the two-pass backward-liveness / forward-compaction
// shape is grounded on the structurally similar two-pass algorithm in
// original_source/vm.cpp's prune_instructions4 (package vm's Prune4), which
// this component mirrors at tape granularity instead of per-quadrant.
func Optimize(t Tape) Tape {
	return deadCodeEliminate(constantFold(t))
}

// constantFold performs the forward constant-folding sweep of §4.3: any
// instruction whose inputs are already Const (or which is itself Const)
// is replaced by a Const holding its computed value. Instructions that
// aren't foldable are copied through unchanged, preserving positions so
// later instructions' input indices remain valid.
func constantFold(t Tape) Tape {
	out := make(Tape, len(t))
	isConst := make([]bool, len(t))
	constVal := make([]float32, len(t))

	for i, inst := range t {
		switch {
		case inst.Op == OpConst:
			isConst[i] = true
			constVal[i] = inst.Const
			out[i] = inst
		case inst.Op == OpVarX || inst.Op == OpVarY:
			out[i] = inst
		case inst.In1 == NoInput && inst.In0 != NoInput && isConst[inst.In0]:
			v := evalConst(inst.Op, constVal[inst.In0], 0)
			isConst[i] = true
			constVal[i] = v
			out[i] = Instruction{Op: OpConst, Const: v, In0: NoInput, In1: NoInput, Shape: inst.Shape}
		case inst.In0 != NoInput && inst.In1 != NoInput && isConst[inst.In0] && isConst[inst.In1]:
			v := evalConst(inst.Op, constVal[inst.In0], constVal[inst.In1])
			isConst[i] = true
			constVal[i] = v
			out[i] = Instruction{Op: OpConst, Const: v, In0: NoInput, In1: NoInput, Shape: inst.Shape}
		default:
			out[i] = inst
		}
	}
	return out
}

// deadCodeEliminate performs the backward-liveness / forward-compaction
// sweep of §4.3: only instructions reachable from the tape's last
// instruction survive, and surviving input indices are rewritten through
// an old-to-new translation table.
func deadCodeEliminate(t Tape) Tape {
	if len(t) == 0 {
		return t
	}
	live := make([]bool, len(t))
	live[len(t)-1] = true
	for i := len(t) - 1; i >= 0; i-- {
		if !live[i] {
			continue
		}
		inst := t[i]
		if inst.In0 != NoInput {
			live[inst.In0] = true
		}
		if inst.In1 != NoInput {
			live[inst.In1] = true
		}
	}

	newIndex := make([]int32, len(t))
	out := make(Tape, 0, len(t))
	for i, inst := range t {
		if !live[i] {
			newIndex[i] = -1
			continue
		}
		rewritten := inst
		if inst.In0 != NoInput {
			rewritten.In0 = newIndex[inst.In0]
		}
		if inst.In1 != NoInput {
			rewritten.In1 = newIndex[inst.In1]
		}
		newIndex[i] = int32(len(out))
		out = append(out, rewritten)
	}
	return out
}
