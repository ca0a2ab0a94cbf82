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

// AnalysisAccess is the Access of pure compile-time analysis passes: it folds
// constants out of the owning ir.Graph but never materializes runtime
// handles, so every dynamic quantity classifies as a Questionmark.
//
// Analysis runs before any lowering, possibly many times; questionmarks
// produced here are re-resolved later by lowering passes that can afford
// GraphAccess.
type AnalysisAccess struct{}

var _ Access = AnalysisAccess{}

// ConstantData implements Access: it reports the payload of ir constant nodes.
func (AnalysisAccess) ConstantData(v Value) ([]int64, bool) {
	return constantData(v)
}

// ElementHandle implements Access. Analysis never materializes handles.
func (AnalysisAccess) ElementHandle(v Value, i int) (Value, bool) {
	klog.V(2).Infof("indexexpr: analysis access leaves element %d of %v unresolved", i, v)
	return nil, false
}

// DimensionHandle implements Access. Analysis never materializes handles.
func (AnalysisAccess) DimensionHandle(v Value, axis int) (Value, bool) {
	klog.V(2).Infof("indexexpr: analysis access leaves axis %d of %v unresolved", axis, v)
	return nil, false
}

// constantData folds v if it is an ir constant node.
func constantData(v Value) ([]int64, bool) {
	node, ok := v.(*ir.Node)
	if !ok {
		return nil, false
	}
	return node.IntData()
}
