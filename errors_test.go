package tapesdf_test

import (
	"math"
	"testing"

	"github.com/soypat/tapesdf"
)

func TestBuilderPanicsOnInvalidDiskRadius(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Disk with non-positive radius to panic by default")
		}
	}()
	bld := tapesdf.NewBuilder(nil)
	bld.Disk(0, 0, 0)
}

func TestBuilderAccumulatesInsteadOfPanicking(t *testing.T) {
	bld := tapesdf.NewBuilder(nil)
	bld.NoDimensionPanic = true

	d := bld.Disk(0, 0, -1)
	defer d.Release()
	if err := bld.Err(); err == nil {
		t.Fatalf("expected accumulated error for negative radius")
	}
}

func TestBuilderRejectsNonFiniteDimensions(t *testing.T) {
	bld := tapesdf.NewBuilder(nil)
	bld.NoDimensionPanic = true

	inf := float32(math.Inf(1))

	d := bld.Disk(0, 0, inf)
	defer d.Release()
	r := bld.Rectangle(0, 0, inf, 1)
	defer r.Release()
	u := bld.SmoothUnion(d, r, inf)
	defer u.Release()

	if err := bld.Err(); err == nil {
		t.Fatalf("expected accumulated error for +Inf dimensions")
	}
}

func TestBuilderUnionHasNoValidation(t *testing.T) {
	bld := tapesdf.NewBuilder(nil)
	a := bld.Disk(0, 0, 1)
	defer a.Release()
	b := bld.Disk(1, 1, 1)
	defer b.Release()
	u := bld.Union(a, b)
	defer u.Release()
	if err := bld.Err(); err != nil {
		t.Fatalf("Union should never add validation errors, got %v", err)
	}
}
