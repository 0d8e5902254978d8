// Package dataflow schedules scalar computations as a dependency graph with
// deterministic storage lifetimes: every node's result is allocated when the
// node is processed and released as soon as its last dependent has consumed
// it, so a full run allocates and releases in exact balance.
//
// Nodes live in an arena owned by the Graph and are addressed by NodeID;
// edges are recorded at construction time, which fixes each node's dependent
// count before processing starts. Processing happens through the ambient
// execution context (see package backends), so the same graph runs
// immediately under backends/compute or lowers to a program under
// backends/emitter.
package dataflow

import (
	"github.com/gomlx/gopjrt/dtypes"
	"k8s.io/klog/v2"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
	"github.com/emlift/emlift/value"
)

// NodeID addresses a node within its Graph's arena.
type NodeID int

// InvalidNode is the zero-suitable out-of-range NodeID.
const InvalidNode NodeID = -1

type nodeKind int

const (
	nodeLiteral nodeKind = iota
	nodeBinary
)

type node struct {
	kind    nodeKind
	dtype   dtypes.DType
	literal any                   // literal nodes only
	op      backends.BinaryOpType // binary nodes only
	inputs  [2]NodeID             // binary nodes only

	// pending is the number of dependent consumptions still to come,
	// fixed at construction time. Each input edge counts once, so a node
	// used twice by the same dependent is consumed twice.
	pending   int
	processed bool
	result    value.Scalar
	hasResult bool
}

// Graph is an arena of computation nodes. The zero value is not usable; see
// NewGraph.
type Graph struct {
	nodes    []node
	onResult func(id NodeID, result value.Scalar)
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// OnResult installs an observer invoked with every node's result right after
// it is computed, before any release. Results passed to the observer must be
// read during the call; the graph may release them immediately after.
func (g *Graph) OnResult(fn func(id NodeID, result value.Scalar)) {
	g.onResult = fn
}

// NumNodes returns the number of nodes in the arena.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// Literal adds a node producing a scalar constant of the given dtype.
func (g *Graph) Literal(dtype dtypes.DType, v any) NodeID {
	g.nodes = append(g.nodes, node{kind: nodeLiteral, dtype: dtype, literal: v})
	return NodeID(len(g.nodes) - 1)
}

// Binary adds a node computing a OP b. Both inputs must already be in the
// graph and agree on dtype; each gains one dependent consumption, even when a
// and b name the same node.
func (g *Graph) Binary(op backends.BinaryOpType, a, b NodeID) NodeID {
	na, nb := g.node(a, "Binary"), g.node(b, "Binary")
	if na.dtype != nb.dtype {
		backends.Raise(backends.ErrTypeMismatch, "Binary: inputs %d and %d have element types %s and %s",
			a, b, na.dtype, nb.dtype)
	}
	na.pending++
	nb.pending++
	g.nodes = append(g.nodes, node{
		kind:   nodeBinary,
		dtype:  na.dtype,
		op:     op,
		inputs: [2]NodeID{a, b},
	})
	return NodeID(len(g.nodes) - 1)
}

// Process computes the node's result, recursively processing its inputs
// first. Processing a node twice is a no-op. Input results are consumed after
// the node's result is computed; an input whose last dependent consumed it is
// released on the spot. A node with no dependents of its own is released at
// the end of its Process, after the OnResult observer has seen its result.
func (g *Graph) Process(id NodeID) {
	n := g.node(id, "Process")
	if n.processed {
		return
	}
	n.processed = true

	switch n.kind {
	case nodeLiteral:
		s := value.NewScalar(value.Allocate(n.dtype, layouts.ScalarLayout))
		s.AddAssign(value.NewScalar(value.Constant(n.dtype, n.literal)))
		n.result = s
	case nodeBinary:
		g.Process(n.inputs[0])
		g.Process(n.inputs[1])
		a := g.resultOf(n.inputs[0])
		b := g.resultOf(n.inputs[1])
		n.result = value.NewScalar(value.Apply(n.op, a.Value(), b.Value()))
		g.consume(n.inputs[0])
		g.consume(n.inputs[1])
	}
	n.hasResult = true
	klog.V(2).Infof("dataflow: processed node %d (%d dependents pending)", id, n.pending)

	if g.onResult != nil {
		g.onResult(id, n.result)
	}
	if n.pending == 0 {
		g.release(id)
	}
}

// Run processes the given output nodes in order.
func (g *Graph) Run(outputs ...NodeID) {
	for _, id := range outputs {
		g.Process(id)
	}
}

func (g *Graph) node(id NodeID, opName string) *node {
	if id < 0 || int(id) >= len(g.nodes) {
		backends.Raise(backends.ErrInvalidArgument, "%s: node %d is not in the graph (%d nodes)",
			opName, id, len(g.nodes))
	}
	return &g.nodes[id]
}

func (g *Graph) resultOf(id NodeID) value.Scalar {
	n := &g.nodes[id]
	if !n.hasResult {
		backends.Raise(backends.ErrInvalidArgument, "node %d consumed before its last dependent", id)
	}
	return n.result
}

// consume records one dependent having read the node's result, releasing the
// result on the last consumption.
func (g *Graph) consume(id NodeID) {
	n := &g.nodes[id]
	n.pending--
	if n.pending == 0 {
		g.release(id)
	}
}

func (g *Graph) release(id NodeID) {
	n := &g.nodes[id]
	n.result.Value().Release()
	n.hasResult = false
	klog.V(2).Infof("dataflow: released node %d", id)
}
