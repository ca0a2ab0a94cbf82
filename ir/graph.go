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

// Package ir holds the value graph the shape-inference stage runs over.
//
// A Graph is an ordered collection of Nodes; each Node is an SSA-like value
// with a static shapes.Shape describing its type. The graph is deliberately
// minimal: parameters, integer constants and the two scalar extraction
// operations shape inference needs to materialize runtime quantities
// (DimOf for "size of axis a of value v", ElementOf for "element i of a
// rank<=1 integer operand).
//
// Nodes are referenced by pointer: a *Node is the opaque, copyable value
// handle the rest of the compiler passes around. The graph owns its nodes;
// everyone else borrows.
package ir

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/cjvolzka/onnx-mlir/types/shapes"
)

// Graph is a value graph under construction. Create one with New, and add
// values with the Parameter, ConstInts, DimOf and ElementOf methods.
//
// A Graph is not safe for concurrent mutation.
type Graph struct {
	name  string
	nodes []*Node
}

// New creates an empty Graph with the given name (used only for messages).
func New(name string) *Graph {
	return &Graph{name: name}
}

// Name of the graph.
func (g *Graph) Name() string { return g.name }

// NumNodes returns the number of nodes created in the graph so far.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NodeByID returns the node with the given id.
// It panics if the id is out of range.
func (g *Graph) NodeByID(id NodeID) *Node {
	if int(id) < 0 || int(id) >= len(g.nodes) {
		exceptions.Panicf("graph %q has no node with id %d", g.name, id)
	}
	return g.nodes[id]
}

// NodeByName returns the first node created with the given name, or an error
// if the graph has none.
func (g *Graph) NodeByName(name string) (*Node, error) {
	for _, n := range g.nodes {
		if n.name == name {
			return n, nil
		}
	}
	return nil, errors.Errorf("graph %q has no node named %q", g.name, name)
}

func (g *Graph) newNode(op OpType, name string, shape shapes.Shape, inputs ...*Node) *Node {
	for _, input := range inputs {
		if input.graph != g {
			exceptions.Panicf("graph %q: input node %s belongs to graph %q", g.name, input, input.graph.name)
		}
	}
	n := &Node{
		graph:  g,
		id:     NodeID(len(g.nodes)),
		op:     op,
		name:   name,
		shape:  shape,
		inputs: inputs,
	}
	g.nodes = append(g.nodes, n)
	return n
}

// Parameter creates a graph input with the given shape. Pass shapes.Invalid()
// for a parameter whose type is not a ranked shaped type.
func (g *Graph) Parameter(name string, shape shapes.Shape) *Node {
	return g.newNode(OpParameter, name, shape)
}

// ConstInts creates a 1-D int64 constant with the given values.
func (g *Graph) ConstInts(name string, values ...int64) *Node {
	n := g.newNode(OpConstant, name, shapes.Make(dtypeInt, len(values)))
	n.ints = append([]int64(nil), values...)
	return n
}

// ConstScalarInt creates a rank-0 int64 constant.
func (g *Graph) ConstScalarInt(name string, value int64) *Node {
	n := g.newNode(OpConstant, name, shapes.Scalar(dtypeInt))
	n.ints = []int64{value}
	return n
}

// DimOf creates a scalar int64 node denoting the runtime size of the given
// axis of v. It panics if v is unranked or axis is out of range.
func (g *Graph) DimOf(v *Node, axis int) *Node {
	if !v.shape.Ok() {
		exceptions.Panicf("graph %q: DimOf(%s, %d) on a value without a ranked shaped type", g.name, v, axis)
	}
	if axis < 0 || axis >= v.shape.Rank() {
		exceptions.Panicf("graph %q: DimOf(%s, %d) axis out-of-bounds for rank %d", g.name, v, axis, v.shape.Rank())
	}
	n := g.newNode(OpDimOf, "", shapes.Scalar(dtypeInt), v)
	n.index = axis
	return n
}

// ElementOf creates a scalar node denoting element i of v, which must be a
// scalar (taken as a length-1 array) or a rank-1 operand. It panics on any
// other rank or if i is out of the operand's static bounds.
func (g *Graph) ElementOf(v *Node, i int) *Node {
	if !v.shape.Ok() || v.shape.Rank() > 1 {
		exceptions.Panicf("graph %q: ElementOf(%s, %d) expects a scalar or 1-D operand", g.name, v, i)
	}
	size := 1
	if v.shape.Rank() == 1 {
		size = v.shape.Dim(0)
	}
	if size != shapes.DynamicDim && i >= size {
		exceptions.Panicf("graph %q: ElementOf(%s, %d) index out-of-bounds for size %d", g.name, v, i, size)
	}
	n := g.newNode(OpElementOf, "", shapes.Scalar(v.shape.DType), v)
	n.index = i
	return n
}
