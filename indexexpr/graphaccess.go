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

package indexexpr

import (
	"k8s.io/klog/v2"

	"github.com/cjvolzka/onnx-mlir/ir"
)

// GraphAccess is the Access of lowering passes: besides constant folding, it
// materializes runtime handles by appending scalar extraction nodes
// (ir.Graph.ElementOf, ir.Graph.DimOf) to the graph being built.
//
// Each handle request appends a fresh node; deduplication is left to later IR
// cleanup, which sees the whole graph.
type GraphAccess struct {
	graph *ir.Graph
}

var _ Access = (*GraphAccess)(nil)

// NewGraphAccess returns a GraphAccess materializing handles into g.
func NewGraphAccess(g *ir.Graph) *GraphAccess {
	return &GraphAccess{graph: g}
}

// ConstantData implements Access: it reports the payload of ir constant nodes.
func (a *GraphAccess) ConstantData(v Value) ([]int64, bool) {
	return constantData(v)
}

// ElementHandle implements Access, materializing an ElementOf node for
// element i of v.
func (a *GraphAccess) ElementHandle(v Value, i int) (Value, bool) {
	node, ok := v.(*ir.Node)
	if !ok {
		klog.V(2).Infof("indexexpr: graph access cannot materialize element %d of foreign value %v", i, v)
		return nil, false
	}
	return a.graph.ElementOf(node, i), true
}

// DimensionHandle implements Access, materializing a DimOf node for the size
// of the given axis of v.
func (a *GraphAccess) DimensionHandle(v Value, axis int) (Value, bool) {
	node, ok := v.(*ir.Node)
	if !ok {
		klog.V(2).Infof("indexexpr: graph access cannot materialize axis %d of foreign value %v", axis, v)
		return nil, false
	}
	return a.graph.DimOf(node, axis), true
}
