package tapesdf

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// Sentinel errors for the structural failure modes enumerated in
// SPEC_FULL.md §7. Wrapped with fmt.Errorf("%w: ...") so callers can
// errors.Is against them, following the corpus's error-wrapping idiom.
var (
	// ErrInvalidTape means an instruction referenced an input at or after
	// its own position — a programming error, never a runtime condition.
	// Returned by solve.Solve, which checks tape.Tape.Valid() before
	// recursing.
	ErrInvalidTape = errors.New("tapesdf: invalid tape")
	// ErrInternal marks an unreachable code path (e.g. an unknown opcode).
	ErrInternal = errors.New("tapesdf: internal error")
)

// Builder wraps parameter validation for primitive construction, offering
// the same panic-or-accumulate duality as github.com/soypat/gsdf's
// Builder.shapeErrorf: by default a bad parameter panics immediately;
// setting NoDimensionPanic accumulates a validation error instead so a
// caller building many shapes in a loop can check err once at the end.
type Builder struct {
	Store            *Store
	NoDimensionPanic bool
	accumErrs        []error
}

// NewBuilder creates a Builder over store. A nil store uses DefaultStore().
func NewBuilder(store *Store) *Builder {
	if store == nil {
		store = defaultStore
	}
	return &Builder{Store: store}
}

// Err returns the accumulated validation errors, or nil if there are none.
func (bld *Builder) Err() error {
	if len(bld.accumErrs) == 0 {
		return nil
	}
	return errors.Join(bld.accumErrs...)
}

func (bld *Builder) shapeErrorf(msg string, args ...any) {
	if !bld.NoDimensionPanic {
		panic(fmt.Sprintf(msg, args...))
	}
	bld.accumErrs = append(bld.accumErrs, fmt.Errorf(msg, args...))
}

// Disk validates radius before delegating to Store.Disk; a non-positive or
// non-finite radius is a dimension error.
func (bld *Builder) Disk(cx, cy, r float32) Scalar {
	if !(r > 0) || math32.IsInf(r, 0) {
		bld.shapeErrorf("tapesdf: disk radius must be positive and finite, got %v", r)
	}
	return bld.Store.Disk(cx, cy, r)
}

// Rectangle validates width/height before delegating to Store.Rectangle.
func (bld *Builder) Rectangle(cx, cy, w, h float32) Scalar {
	if !(w > 0) || !(h > 0) || math32.IsInf(w, 0) || math32.IsInf(h, 0) {
		bld.shapeErrorf("tapesdf: rectangle dimensions must be positive and finite, got w=%v h=%v", w, h)
	}
	return bld.Store.Rectangle(cx, cy, w, h)
}

// SmoothUnion validates the blend radius before delegating to
// Store.SmoothUnion.
func (bld *Builder) SmoothUnion(a, b Scalar, r float32) Scalar {
	if !(r > 0) || math32.IsInf(r, 0) {
		bld.shapeErrorf("tapesdf: smooth-union radius must be positive and finite, got %v", r)
	}
	return bld.Store.SmoothUnion(a, b, r)
}

// Union builds the sharp boolean union min(a,b). It has no parameters to
// validate, so it delegates directly to Store.Union.
func (bld *Builder) Union(a, b Scalar) Scalar {
	return bld.Store.Union(a, b)
}
