// Package tape lowers a tapesdf expression DAG to a linear instruction
// stream (C2, the tape compiler) and optimizes that stream via constant
// folding and dead-code elimination (C3).
//
// Grounded on original_source/compiler.{h,cpp} for the compilation
// algorithm and original_source/vm.h's Instruction/OpCode layout.
package tape

import "github.com/soypat/tapesdf"

// OpCode identifies the operation an Instruction performs. It mirrors
// tapesdf.NodeKind one-for-one; the two are kept as distinct types because
// a Node lives in the DAG (with ref counts and children) while an
// Instruction lives in a flat, positionally-addressed tape.
type OpCode uint8

const (
	OpVarX OpCode = iota
	OpVarY
	OpConst
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpAbs
	OpSquare
	OpSqrt
	OpMax
	OpMin
)

func (op OpCode) String() string {
	switch op {
	case OpVarX:
		return "VarX"
	case OpVarY:
		return "VarY"
	case OpConst:
		return "Const"
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	case OpNeg:
		return "Neg"
	case OpAbs:
		return "Abs"
	case OpSquare:
		return "Square"
	case OpSqrt:
		return "Sqrt"
	case OpMax:
		return "Max"
	case OpMin:
		return "Min"
	default:
		return "OpCode(?)"
	}
}

func opFromKind(k tapesdf.NodeKind) OpCode {
	switch k {
	case tapesdf.KindVarX:
		return OpVarX
	case tapesdf.KindVarY:
		return OpVarY
	case tapesdf.KindConst:
		return OpConst
	case tapesdf.KindAdd:
		return OpAdd
	case tapesdf.KindSub:
		return OpSub
	case tapesdf.KindMul:
		return OpMul
	case tapesdf.KindDiv:
		return OpDiv
	case tapesdf.KindNeg:
		return OpNeg
	case tapesdf.KindAbs:
		return OpAbs
	case tapesdf.KindSquare:
		return OpSquare
	case tapesdf.KindSqrt:
		return OpSqrt
	case tapesdf.KindMax:
		return OpMax
	case tapesdf.KindMin:
		return OpMin
	default:
		panic("tape: unknown NodeKind")
	}
}

// NoInput marks an unused instruction input slot.
const NoInput int32 = -1

// Instruction is a fixed-size tape entry. Const is meaningful only when Op
// is OpConst; In0/In1 are indices of earlier instructions in the same tape
// (NoInput when unused). Shape carries the back-pointer of the DAG node
// this instruction was compiled from, propagated through optimization and
// (in package vm) pruning.
type Instruction struct {
	Op    OpCode
	Const float32
	In0   int32
	In1   int32
	Shape tapesdf.Shape
}

// Tape is an ordered instruction sequence; the last instruction is the
// tape's output. Tapes are value types (a []Instruction slice) — cloning
// one for exclusive per-quadrant ownership is a plain slice copy.
type Tape []Instruction

// Clone returns an independent copy of t that shares no backing array with
// it. (vm.Prune4 does not need it: it builds each lane's tape from scratch.)
func (t Tape) Clone() Tape {
	out := make(Tape, len(t))
	copy(out, t)
	return out
}

// Valid reports whether every instruction's inputs reference strictly
// earlier positions, the structural invariant the spec calls InvalidTape
// when violated.
func (t Tape) Valid() bool {
	for i, inst := range t {
		if inst.In0 != NoInput && (inst.In0 < 0 || int(inst.In0) >= i) {
			return false
		}
		if inst.In1 != NoInput && (inst.In1 < 0 || int(inst.In1) >= i) {
			return false
		}
	}
	return true
}
