/*
 *	Copyright 2025 Chris Volzka
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package ir

import (
	"fmt"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/cjvolzka/onnx-mlir/types/shapes"
)

// dtypeInt is the element type of all integer quantities the compiler
// manipulates during shape inference.
const dtypeInt = dtypes.Int64

// NodeID is the unique id of a Node within its Graph.
type NodeID int

// OpType identifies the operation performed by a Node.
type OpType int

const (
	OpInvalid OpType = iota
	OpParameter
	OpConstant
	OpDimOf
	OpElementOf
)

// String implements stringer for OpType.
func (op OpType) String() string {
	switch op {
	case OpParameter:
		return "Parameter"
	case OpConstant:
		return "Constant"
	case OpDimOf:
		return "DimOf"
	case OpElementOf:
		return "ElementOf"
	}
	return fmt.Sprintf("OpType(%d)", int(op))
}

// Node is a value in a Graph. It is created through the Graph methods and
// owned by its Graph; a *Node works as a borrowed, comparable handle
// everywhere else.
type Node struct {
	graph *Graph
	id    NodeID
	op    OpType
	name  string
	shape shapes.Shape

	// inputNodes are the edges of the value graph.
	inputs []*Node

	// index is the axis for OpDimOf and the element index for OpElementOf.
	index int

	// ints is the payload of integer constants.
	ints []int64
}

// Graph that holds this Node.
func (n *Node) Graph() *Graph { return n.graph }

// ID is the unique id of this node within the Graph.
func (n *Node) ID() NodeID { return n.id }

// Op identifies the operation performed by the node.
func (n *Node) Op() OpType { return n.op }

// Name given at creation, empty for derived nodes.
func (n *Node) Name() string { return n.name }

// Shape of the Node's value. It is invalid (shapes.Invalid()) for values
// without a ranked shaped type. Node implements shapes.HasShape.
func (n *Node) Shape() shapes.Shape { return n.shape }

// DType returns the DType of the node's shape.
func (n *Node) DType() dtypes.DType { return n.shape.DType }

// Rank returns the rank of the node's shape.
func (n *Node) Rank() int { return n.shape.Rank() }

// IsScalar returns whether the node's shape is a scalar.
func (n *Node) IsScalar() bool { return n.shape.IsScalar() }

// Inputs returns the input nodes, the edges of the graph. The caller must not
// mutate the returned slice.
func (n *Node) Inputs() []*Node { return n.inputs }

// Index returns the axis (OpDimOf) or element index (OpElementOf) of an
// extraction node, and 0 for every other op.
func (n *Node) Index() int { return n.index }

// IntData returns the int64 payload of a constant node. It returns false for
// non-constant nodes. The caller must not mutate the returned slice.
func (n *Node) IntData() ([]int64, bool) {
	if n.op != OpConstant {
		return nil, false
	}
	return n.ints, true
}

// String implements stringer, printing a short description of the node.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.op {
	case OpParameter:
		return fmt.Sprintf("%%%d=Parameter(%q)%s", n.id, n.name, n.shape)
	case OpConstant:
		return fmt.Sprintf("%%%d=Constant(%v)%s", n.id, n.ints, n.shape)
	case OpDimOf:
		return fmt.Sprintf("%%%d=DimOf(%%%d, axis=%d)", n.id, n.inputs[0].id, n.index)
	case OpElementOf:
		return fmt.Sprintf("%%%d=ElementOf(%%%d, %d)", n.id, n.inputs[0].id, n.index)
	}
	return fmt.Sprintf("%%%d=%s", n.id, n.op)
}
