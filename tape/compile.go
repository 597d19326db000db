package tape

import "github.com/soypat/tapesdf"

type frame struct {
	id        tapesdf.NodeID
	processed bool
}

// Compile lowers the DAG rooted at root to a Tape in which every
// instruction's inputs precede it; the root becomes the tape's last
// instruction.
//
// Algorithm: iterative DFS with an explicit work-list, each node visited
// twice ("pre" pushes children, "post" emits the instruction). A node
// already present in nodeToInst is skipped on its "pre" visit, so a node
// reachable through multiple parents (DAG sharing) is emitted exactly
// once. Grounded on original_source/compiler.cpp's compile().
func Compile(root tapesdf.Scalar) Tape {
	store := root.Store()
	var tape Tape
	nodeToInst := make(map[tapesdf.NodeID]int32)

	stack := []frame{{id: root.ID()}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.processed {
			id := top.id
			stack = stack[:len(stack)-1]
			if _, done := nodeToInst[id]; done {
				continue
			}
			n := store.Node(id)
			inst := Instruction{Op: opFromKind(n.Kind), In0: NoInput, In1: NoInput, Shape: n.Shape}
			if n.Kind == tapesdf.KindConst {
				inst.Const = n.Value
			}
			if n.Kind.IsUnary() || n.Kind.IsBinary() {
				inst.In0 = nodeToInst[n.Left]
			}
			if n.Kind.IsBinary() {
				inst.In1 = nodeToInst[n.Right]
			}
			idx := int32(len(tape))
			tape = append(tape, inst)
			nodeToInst[id] = idx
			continue
		}

		top.processed = true
		id := top.id
		if _, done := nodeToInst[id]; done {
			stack = stack[:len(stack)-1]
			continue
		}
		n := store.Node(id)
		// Push right before left so left is processed (and thus emitted)
		// first, matching the reference implementation's traversal order.
		if n.Kind.IsBinary() {
			stack = append(stack, frame{id: n.Right})
		}
		if n.Kind.IsUnary() || n.Kind.IsBinary() {
			stack = append(stack, frame{id: n.Left})
		}
	}

	return tape
}
