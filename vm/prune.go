package vm

import "github.com/soypat/tapesdf/tape"

// decision codes used during Prune4's backward liveness sweep.
const (
	decDead    int8 = -1 // instruction not reachable from the root in this lane
	decLive    int8 = 0  // live, and will be emitted as its own instruction
	decDomIn0  int8 = 1  // live, but aliases to In0's surviving instruction (Max/Min dominance)
	decDomIn1  int8 = 2  // live, but aliases to In1's surviving instruction (Max/Min dominance)
)

// Prune4 computes, for each of the four lanes of vals (the per-instruction
// Interval4s produced by EvalInterval4 over the same tape t), an
// independently pruned Tape. A Max/Min instruction whose interval bounds
// prove one operand always wins is elided entirely — its consumers are
// rewired straight to the surviving operand's instruction — and any
// instruction no longer reachable from the root is dropped.
//
// Grounded on original_source/vm.cpp's prune_instructions4: the backward
// dominance-marking pass followed by forward compaction-and-rewrite, here
// expressed with Go slices instead of the original's raw index arrays.
func Prune4(t tape.Tape, vals []Interval4) [4]tape.Tape {
	var out [4]tape.Tape
	if len(t) == 0 {
		return out
	}
	n := len(t)
	decision := make([][4]int8, n)
	for i := range decision {
		decision[i] = [4]int8{decDead, decDead, decDead, decDead}
	}
	for j := 0; j < 4; j++ {
		decision[n-1][j] = decLive
	}

	markLive := func(id int32, j int) {
		if decision[id][j] == decDead {
			decision[id][j] = decLive
		}
	}

	for i := n - 1; i >= 0; i-- {
		inst := t[i]
		for j := 0; j < 4; j++ {
			if decision[i][j] == decDead {
				continue
			}
			switch inst.Op {
			case tape.OpMax, tape.OpMin:
				a, b := vals[inst.In0][j], vals[inst.In1][j]
				dom0, dom1 := dominance(inst.Op, a, b)
				switch {
				case dom0 && !dom1:
					decision[i][j] = decDomIn0
					markLive(inst.In0, j)
				case dom1 && !dom0:
					decision[i][j] = decDomIn1
					markLive(inst.In1, j)
				default:
					markLive(inst.In0, j)
					markLive(inst.In1, j)
				}
			case tape.OpVarX, tape.OpVarY, tape.OpConst:
				// leaves, nothing to propagate
			default:
				if inst.In0 != tape.NoInput {
					markLive(inst.In0, j)
				}
				if inst.In1 != tape.NoInput {
					markLive(inst.In1, j)
				}
			}
		}
	}

	for j := 0; j < 4; j++ {
		newIndex := make([]int32, n)
		emitted := make(tape.Tape, 0, n)
		for i, inst := range t {
			switch decision[i][j] {
			case decDead:
				newIndex[i] = -1
			case decDomIn0:
				newIndex[i] = newIndex[inst.In0]
			case decDomIn1:
				newIndex[i] = newIndex[inst.In1]
			default: // decLive
				rewritten := inst
				if inst.In0 != tape.NoInput {
					rewritten.In0 = newIndex[inst.In0]
				}
				if inst.In1 != tape.NoInput {
					rewritten.In1 = newIndex[inst.In1]
				}
				newIndex[i] = int32(len(emitted))
				emitted = append(emitted, rewritten)
			}
		}
		out[j] = emitted
	}
	return out
}

// dominance reports, for a Max or Min instruction with operand bounds a
// and b, whether each operand is provably always-greater/always-smaller
// (per op) than the other across the entire interval, per SPEC_FULL.md
// §4.6. Both may report true only for degenerate equal-bound intervals, in
// which case the caller falls back to keeping both operands live.
func dominance(op tape.OpCode, a, b Interval) (dom0, dom1 bool) {
	if op == tape.OpMax {
		dom0 = a.Lo >= b.Hi
		dom1 = b.Lo >= a.Hi
	} else {
		dom0 = a.Hi <= b.Lo
		dom1 = b.Hi <= a.Lo
	}
	return dom0, dom1
}
