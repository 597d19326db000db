// Command contourgen builds a small demonstration scene, compiles it,
// contours it with the quadtree/marching-squares solver, and reports mesh
// statistics. It exists to exercise the library end-to-end; it is not a
// scene-description CLI or DSL (per SPEC_FULL.md §6, no wire protocol, no
// file format, no CLI is part of the core itself).
//
// Grounded on examples/gasket/main.go's flag-driven, log-reporting shape.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/soypat/tapesdf"
	"github.com/soypat/tapesdf/solve"
	"github.com/soypat/tapesdf/tape"
	"github.com/soypat/tapesdf/vm"
)

type diskShape struct {
	name           string
	cx, cy, radius float32
}

func (d diskShape) ShapeName() string { return d.name }

func scene(bld *tapesdf.Builder) (tapesdf.Scalar, error) {
	left := diskShape{"left-disk", -0.35, 0, 0.5}
	right := diskShape{"right-disk", 0.35, 0, 0.5}

	a := bld.Disk(left.cx, left.cy, left.radius).Tag(left)
	b := bld.Disk(right.cx, right.cy, right.radius).Tag(right)
	u := bld.SmoothUnion(a, b, 0.2)
	a.Release()
	b.Release()
	return u, bld.Err()
}

func main() {
	resolution := flag.Int("resolution", 65, "grid resolution (vertices per side), clamped to [4,256]")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	tapesdf.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	res := *resolution
	if res < 4 {
		res = 4
	} else if res > vm.MaxTileSize {
		res = vm.MaxTileSize
	}

	store := tapesdf.NewStore()
	bld := tapesdf.NewBuilder(store)
	root, err := scene(bld)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scene construction error:", err)
		os.Exit(1)
	}
	defer root.Release()

	tp := tape.Optimize(tape.Compile(root))
	tapesdf.Logger().Info("compiled scene", "instructions", len(tp))

	dom := solve.Domain{Resolution: res, Lo: -1, Hi: 1}
	m := vm.New(vm.MaxTileSize)
	tiles, err := solve.Solve(context.Background(), tp, dom, m)
	if err != nil {
		fmt.Fprintln(os.Stderr, "solve error:", err)
		os.Exit(1)
	}

	mesh := solve.Contour(tiles, dom)
	tapesdf.Logger().Info("contoured scene",
		"resolution", res,
		"tiles", len(tiles),
		"vertices", len(mesh.Vertices),
		"edges", len(mesh.Edges),
	)
	fmt.Printf("tiles=%d vertices=%d edges=%d\n", len(tiles), len(mesh.Vertices), len(mesh.Edges))
}
