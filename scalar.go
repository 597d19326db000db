package tapesdf

import "fmt"

// Scalar is a lightweight, explicitly-owned handle onto a node in a Store.
// Go has no copy constructors, so unlike the reference implementation's
// Scalar (whose copy ctor transparently bumps the handle count), sharing a
// Scalar across owners requires an explicit Dup call and dropping one
// requires an explicit Release call — the same manual acquire/release
// discipline the corpus already uses for scratch buffers
// (gleval.VecPool.Float.Acquire/Release in the teacher's cpu_evaluators.go).
type Scalar struct {
	store *Store
	id    NodeID
}

// Store returns the Store s.id belongs to.
func (s Scalar) Store() *Store { return s.store }

// ID returns the underlying NodeID. Exported for use by the tape/vm/solve
// packages, which walk the DAG directly.
func (s Scalar) ID() NodeID { return s.id }

// IsValid reports whether s owns a node (the zero Scalar does not).
func (s Scalar) IsValid() bool { return s.store != nil }

// Dup mints an additional handle onto the same node, incrementing its
// handle count. The caller now owns two independent Scalar values and must
// Release each exactly once.
func (s Scalar) Dup() Scalar {
	s.store.acquire(s.id)
	return s
}

// Release drops this handle. When it was the last handle and no sibling
// node still references the underlying node, the node (and, transitively,
// any children whose own counts reach zero) is torn down. Release must be
// called exactly once per Scalar value obtained from a constructor or Dup.
func (s Scalar) Release() {
	if s.store == nil {
		return
	}
	s.store.release(s.id)
}

// Tag attaches shape as the originating shape of s's node, returning s for
// chaining. The primitive builders (Disk, Rectangle, ...) return untagged
// handles; a caller attaches the shape back-pointer by calling Tag on the
// result.
func (s Scalar) Tag(shape Shape) Scalar {
	s.store.setShape(s.id, shape)
	return s
}

// Shape returns the shape tag attached to s's node, or nil if untagged.
func (s Scalar) Shape() Shape {
	return s.store.Node(s.id).Shape
}

func mustSameStore(a, b Scalar) {
	if a.store != b.store {
		panic("tapesdf: operands belong to different Stores")
	}
}

func (s *Store) unary(kind NodeKind, a Scalar) Scalar {
	if a.store != s {
		panic(fmt.Sprintf("tapesdf: %s operand belongs to a different Store", kind))
	}
	return Scalar{store: s, id: s.createNode(kind, a.id, NoNode)}
}

func (s *Store) binary(kind NodeKind, a, b Scalar) Scalar {
	mustSameStore(a, b)
	if a.store != s {
		panic(fmt.Sprintf("tapesdf: %s operand belongs to a different Store", kind))
	}
	return Scalar{store: s, id: s.createNode(kind, a.id, b.id)}
}

// VarX returns a fresh handle to the store's X variable node.
func (s *Store) VarX() Scalar {
	s.acquire(VarX)
	return Scalar{store: s, id: VarX}
}

// VarY returns a fresh handle to the store's Y variable node.
func (s *Store) VarY() Scalar {
	s.acquire(VarY)
	return Scalar{store: s, id: VarY}
}

// Const returns a handle to a fresh constant-valued leaf node.
func (s *Store) Const(v float32) Scalar {
	return Scalar{store: s, id: s.createConst(v)}
}

// Add, Sub, Mul, Div, Max and Min combine two Scalars from the same Store
// into a new binary node; they borrow (do not release) their operands.
func (s *Store) Add(a, b Scalar) Scalar { return s.binary(KindAdd, a, b) }
func (s *Store) Sub(a, b Scalar) Scalar { return s.binary(KindSub, a, b) }
func (s *Store) Mul(a, b Scalar) Scalar { return s.binary(KindMul, a, b) }
func (s *Store) Div(a, b Scalar) Scalar { return s.binary(KindDiv, a, b) }
func (s *Store) Max(a, b Scalar) Scalar { return s.binary(KindMax, a, b) }
func (s *Store) Min(a, b Scalar) Scalar { return s.binary(KindMin, a, b) }

// Neg, Abs, Square and Sqrt build a unary node from a Scalar; they borrow
// (do not release) their operand.
func (s *Store) Neg(a Scalar) Scalar    { return s.unary(KindNeg, a) }
func (s *Store) Abs(a Scalar) Scalar    { return s.unary(KindAbs, a) }
func (s *Store) Square(a Scalar) Scalar { return s.unary(KindSquare, a) }
func (s *Store) Sqrt(a Scalar) Scalar   { return s.unary(KindSqrt, a) }

// Convenience methods mirroring the spec's `a+b`, `a-b`, ... builder
// surface, operating on the receiver's Store.
func (a Scalar) Add(b Scalar) Scalar { return a.store.Add(a, b) }
func (a Scalar) Sub(b Scalar) Scalar { return a.store.Sub(a, b) }
func (a Scalar) Mul(b Scalar) Scalar { return a.store.Mul(a, b) }
func (a Scalar) Div(b Scalar) Scalar { return a.store.Div(a, b) }
func (a Scalar) Max(b Scalar) Scalar { return a.store.Max(a, b) }
func (a Scalar) Min(b Scalar) Scalar { return a.store.Min(a, b) }
func (a Scalar) Neg() Scalar         { return a.store.Neg(a) }
func (a Scalar) Abs() Scalar         { return a.store.Abs(a) }
func (a Scalar) Square() Scalar      { return a.store.Square(a) }
func (a Scalar) Sqrt() Scalar        { return a.store.Sqrt(a) }

// X returns a fresh handle to the default Store's X variable.
func X() Scalar { return defaultStore.VarX() }

// Y returns a fresh handle to the default Store's Y variable.
func Y() Scalar { return defaultStore.VarY() }

// Const returns a handle to a constant-valued leaf node in the default Store.
func Const(v float32) Scalar { return defaultStore.Const(v) }
