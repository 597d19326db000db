// Package vm evaluates tapesdf/tape.Tapes in three modes — scalar,
// batched, and four-wide interval arithmetic — and prunes a tape per
// quadrant using interval dominance (C4, C5, C6).
//
// Grounded on original_source/vm.{h,cpp}, whose evaluate_batch,
// evaluate_interval4 and prune_instructions4 this package's Eval, EvalBatch,
// EvalInterval4 and Prune4 mirror respectively.
package vm

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/tapesdf/tape"
)

// MaxTileSize is the largest number of (x,y) points a single VM batch
// evaluation may cover, and therefore the largest leaf a quadtree solver
// may emit without further subdivision. Grounded on original_source/vm.h's
// `constexpr int MAX_TILE_SIZE = 256`.
const MaxTileSize = 256

// VM owns the scratch buffer used for batch evaluation. A VM is not safe
// for concurrent use: per SPEC_FULL.md §5, an evaluation run — the
// recursive quadtree solve, its interval evaluation, pruning and tile
// emission — exclusively owns the VM's buffers for its duration.
type VM struct {
	capacity int
	buf      []float32 // len == capacity * (tape length of the last EvalBatch call)
}

// New creates a VM whose batch buffer is sized for up to capacity points
// per call. A non-positive capacity selects MaxTileSize, and a larger one is
// clamped to MaxTileSize.
func New(capacity int) *VM {
	if capacity <= 0 {
		capacity = MaxTileSize
	}
	if capacity > MaxTileSize {
		capacity = MaxTileSize
	}
	return &VM{capacity: capacity}
}

// Capacity returns the maximum batch size this VM was constructed with.
func (vm *VM) Capacity() int { return vm.capacity }

func (vm *VM) ensure(tapeLen int) {
	need := vm.capacity * tapeLen
	if cap(vm.buf) < need {
		vm.buf = make([]float32, need)
	} else {
		vm.buf = vm.buf[:need]
	}
}

// Eval computes t at a single point (x,y). IEEE-754 semantics apply
// exactly as in EvalBatch: division by zero yields ±Inf/NaN, sqrt of a
// negative yields NaN, never a panic.
func Eval(t tape.Tape, x, y float32) float32 {
	if len(t) == 0 {
		return 0
	}
	vals := make([]float32, len(t))
	for i, inst := range t {
		vals[i] = evalScalar(inst, x, y, vals)
	}
	return vals[len(vals)-1]
}

func evalScalar(inst tape.Instruction, x, y float32, vals []float32) float32 {
	switch inst.Op {
	case tape.OpVarX:
		return x
	case tape.OpVarY:
		return y
	case tape.OpConst:
		return inst.Const
	case tape.OpAdd:
		return vals[inst.In0] + vals[inst.In1]
	case tape.OpSub:
		return vals[inst.In0] - vals[inst.In1]
	case tape.OpMul:
		return vals[inst.In0] * vals[inst.In1]
	case tape.OpDiv:
		return vals[inst.In0] / vals[inst.In1]
	case tape.OpNeg:
		return -vals[inst.In0]
	case tape.OpAbs:
		return math32.Abs(vals[inst.In0])
	case tape.OpSquare:
		v := vals[inst.In0]
		return v * v
	case tape.OpSqrt:
		return math32.Sqrt(vals[inst.In0])
	case tape.OpMax:
		return math32.Max(vals[inst.In0], vals[inst.In1])
	case tape.OpMin:
		return math32.Min(vals[inst.In0], vals[inst.In1])
	default:
		panic(fmt.Sprintf("vm: unknown opcode %v", inst.Op))
	}
}

// EvalBatch computes t simultaneously at len(xs) points, writing results to
// out. len(xs) must equal len(ys) and len(out), and must not exceed the
// VM's capacity. The batch buffer stores one capacity-wide row per
// instruction, reused across calls (SPEC_FULL.md §4.4/§5).
func (vm *VM) EvalBatch(t tape.Tape, xs, ys, out []float32) error {
	n := len(xs)
	if n != len(ys) || n != len(out) {
		return fmt.Errorf("vm: xs/ys/out length mismatch: %d/%d/%d", len(xs), len(ys), len(out))
	}
	if n > vm.capacity {
		return fmt.Errorf("vm: batch of %d exceeds capacity %d", n, vm.capacity)
	}
	if len(t) == 0 {
		return nil
	}
	vm.ensure(len(t))
	stride := vm.capacity

	for i, inst := range t {
		row := vm.buf[i*stride : i*stride+n]
		switch inst.Op {
		case tape.OpVarX:
			copy(row, xs)
		case tape.OpVarY:
			copy(row, ys)
		case tape.OpConst:
			for k := range row {
				row[k] = inst.Const
			}
		case tape.OpAdd:
			a, b := vm.row(inst.In0, stride, n), vm.row(inst.In1, stride, n)
			for k := range row {
				row[k] = a[k] + b[k]
			}
		case tape.OpSub:
			a, b := vm.row(inst.In0, stride, n), vm.row(inst.In1, stride, n)
			for k := range row {
				row[k] = a[k] - b[k]
			}
		case tape.OpMul:
			a, b := vm.row(inst.In0, stride, n), vm.row(inst.In1, stride, n)
			for k := range row {
				row[k] = a[k] * b[k]
			}
		case tape.OpDiv:
			a, b := vm.row(inst.In0, stride, n), vm.row(inst.In1, stride, n)
			for k := range row {
				row[k] = a[k] / b[k]
			}
		case tape.OpNeg:
			a := vm.row(inst.In0, stride, n)
			for k := range row {
				row[k] = -a[k]
			}
		case tape.OpAbs:
			a := vm.row(inst.In0, stride, n)
			for k := range row {
				row[k] = math32.Abs(a[k])
			}
		case tape.OpSquare:
			a := vm.row(inst.In0, stride, n)
			for k := range row {
				row[k] = a[k] * a[k]
			}
		case tape.OpSqrt:
			a := vm.row(inst.In0, stride, n)
			for k := range row {
				row[k] = math32.Sqrt(a[k])
			}
		case tape.OpMax:
			a, b := vm.row(inst.In0, stride, n), vm.row(inst.In1, stride, n)
			for k := range row {
				row[k] = math32.Max(a[k], b[k])
			}
		case tape.OpMin:
			a, b := vm.row(inst.In0, stride, n), vm.row(inst.In1, stride, n)
			for k := range row {
				row[k] = math32.Min(a[k], b[k])
			}
		default:
			return fmt.Errorf("%w: unknown opcode %v", errInternal, inst.Op)
		}
	}
	copy(out, vm.buf[(len(t)-1)*stride:(len(t)-1)*stride+n])
	return nil
}

func (vm *VM) row(idx int32, stride, n int) []float32 {
	return vm.buf[int(idx)*stride : int(idx)*stride+n]
}
