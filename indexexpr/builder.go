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
	"github.com/gomlx/exceptions"

	"github.com/cjvolzka/onnx-mlir/types/shapes"
)

// IntArrayAttr is a compile-time integer array attribute, e.g. the axes or
// pads list of an operation.
type IntArrayAttr []int64

// Access supplies the two host-compiler capabilities the Builder cannot derive
// from static types: constant folding and runtime-handle materialization.
// There is one implementation per kind of value representation (see
// AnalysisAccess and GraphAccess).
//
// All methods report ok=false for "not obtainable", which is an expected
// outcome, never an error.
type Access interface {
	// ConstantData returns the fully folded contents of v if and only if v is
	// provably a compile-time constant integer array.
	ConstantData(v Value) ([]int64, bool)

	// ElementHandle returns a handle to a runtime scalar denoting element i of
	// the array-valued operand v.
	ElementHandle(v Value, i int) (Value, bool)

	// DimensionHandle returns a handle to a runtime scalar denoting the size
	// of the given axis of the shaped value v.
	DimensionHandle(v Value, axis int) (Value, bool)
}

// Builder extracts IndexExpr values from attributes, scalar/1-D integer
// operands, and the shapes of tensor values.
//
// Every operation is a stateless classification pipeline, applied per element:
// static type check, then constant-fold attempt, then runtime-handle attempt,
// then questionmark. Nothing is cached: the underlying IR may be rewritten
// between calls, so repeated queries re-run the pipeline.
//
// Precondition violations (unranked values, out-of-range batch lengths, wrong
// operand ranks) indicate a bug in the calling pass and panic via
// exceptions.Panicf. Unresolvable quantities are not errors; they come back as
// questionmarks.
type Builder struct {
	access Access
}

// NewBuilder returns a Builder resolving through the given Access.
func NewBuilder(access Access) *Builder {
	if access == nil {
		exceptions.Panicf("indexexpr.NewBuilder: nil Access")
	}
	return &Builder{access: access}
}

// AttrSize returns the number of elements of an integer array attribute.
func (b *Builder) AttrSize(attr IntArrayAttr) int {
	return len(attr)
}

// AttrLiteral returns Literal(attr[i]), or Undefined if i is past the end of
// the attribute. Callers of optional attribute lists use this form when they
// need to know an element is absent.
func (b *Builder) AttrLiteral(attr IntArrayAttr, i int) IndexExpr {
	if i < 0 {
		exceptions.Panicf("Builder.AttrLiteral: negative index %d", i)
	}
	if i >= len(attr) {
		return IndexExpr{}
	}
	return MakeLiteral(attr[i])
}

// AttrLiteralWithDefault is AttrLiteral with absent elements replaced by
// Literal(defaultValue).
func (b *Builder) AttrLiteralWithDefault(attr IntArrayAttr, i int, defaultValue int64) IndexExpr {
	indexExpr := b.AttrLiteral(attr, i)
	if indexExpr.IsUndefined() {
		return MakeLiteral(defaultValue)
	}
	return indexExpr
}

// Rank returns the static rank of v. The value must have a ranked shaped
// type; anything else means the builder was invoked on an unsupported value
// and panics.
func (b *Builder) Rank(v Value) int {
	shape := v.Shape()
	if !shape.Ok() {
		exceptions.Panicf("Builder.Rank(%v): expected a value with a ranked shaped type", v)
	}
	return shape.Rank()
}

// StaticDim returns the static size of the given axis of v, or
// shapes.DynamicDim (-1) if the size is only known at runtime. It panics if
// axis is not below Rank(v).
func (b *Builder) StaticDim(v Value, axis int) int64 {
	rank := b.Rank(v)
	if axis < 0 || axis >= rank {
		exceptions.Panicf("Builder.StaticDim(%v, %d): axis out-of-bounds for rank %d", v, axis, rank)
	}
	return int64(v.Shape().Dim(axis))
}

// IsStaticDim returns whether the given axis of v has a compile-time size.
func (b *Builder) IsStaticDim(v Value, axis int) bool {
	return b.StaticDim(v, axis) != shapes.DynamicDim
}

// IsFullyStatic returns whether every axis of v has a compile-time size.
func (b *Builder) IsFullyStatic(v Value) bool {
	rank := b.Rank(v)
	for axis := 0; axis < rank; axis++ {
		if !b.IsStaticDim(v, axis) {
			return false
		}
	}
	return true
}

// ArraySize returns the number of elements of an array-valued operand: a
// scalar counts as a length-1 array, a 1-D operand reports its dimension,
// which may be shapes.DynamicDim. Any other rank panics.
func (b *Builder) ArraySize(v Value) int {
	rank := b.Rank(v)
	if rank > 1 {
		exceptions.Panicf("Builder.ArraySize(%v): expected a scalar or a 1-D array of int values, got rank %d", v, rank)
	}
	if rank == 0 {
		return 1
	}
	return v.Shape().Dim(0)
}

// SymbolAt extracts element i of the array-valued operand v:
// Literal if the operand constant-folds, Symbol if a runtime handle for the
// element is obtainable, Questionmark (without provenance) otherwise.
// If i is past the operand's static size, it returns Undefined.
func (b *Builder) SymbolAt(v Value, i int) IndexExpr {
	size := b.ArraySize(v)
	if i < 0 {
		exceptions.Panicf("Builder.SymbolAt(%v, %d): negative index", v, i)
	}
	if size != shapes.DynamicDim && i >= size {
		return IndexExpr{}
	}
	if data, ok := b.access.ConstantData(v); ok {
		if i >= len(data) {
			exceptions.Panicf("Builder.SymbolAt(%v, %d): constant data has only %d elements", v, i, len(data))
		}
		return MakeLiteral(data[i])
	}
	if handle, ok := b.access.ElementHandle(v, i); ok {
		return MakeSymbol(handle)
	}
	return MakeQuestionmark()
}

// SymbolAtWithDefault is SymbolAt with out-of-range elements replaced by
// Literal(defaultValue).
func (b *Builder) SymbolAtWithDefault(v Value, i int, defaultValue int64) IndexExpr {
	indexExpr := b.SymbolAt(v, i)
	if indexExpr.IsUndefined() {
		return MakeLiteral(defaultValue)
	}
	return indexExpr
}

// SymbolList extracts the first n elements of the array-valued operand v into
// list, clearing it first. n == -1 means the operand's full static size,
// which must then be known. Asking for more elements than the operand has is
// a bug in the calling pass and panics.
//
// Unlike SymbolAt, the batch form is strict: every produced element is
// defined (Literal, Symbol or Questionmark, never Undefined). Callers that
// need per-element defaults must apply them via SymbolAtWithDefault before
// asking for a full list; tolerating gaps here would hide caller bugs.
func (b *Builder) SymbolList(v Value, list *List, n int) {
	*list = (*list)[:0]
	size := b.ArraySize(v)
	if n == -1 {
		if size == shapes.DynamicDim {
			exceptions.Panicf("Builder.SymbolList(%v): operand has no static size to take the full list from", v)
		}
		n = size
	} else if n < 0 || (size != shapes.DynamicDim && n > size) {
		exceptions.Panicf("Builder.SymbolList(%v): requesting %d elements, operand has %d", v, n, size)
	}
	for i := 0; i < n; i++ {
		indexExpr := b.SymbolAt(v, i)
		if indexExpr.IsUndefined() {
			exceptions.Panicf("Builder.SymbolList(%v): element %d is undefined", v, i)
		}
		*list = append(*list, indexExpr)
	}
}

// ShapeLiteral returns the size of the given axis of v as a Literal. The
// dimension must be static; asking for a dynamic one is a bug in the calling
// pass and panics.
func (b *Builder) ShapeLiteral(v Value, axis int) IndexExpr {
	dim := b.StaticDim(v, axis)
	if dim == shapes.DynamicDim {
		exceptions.Panicf("Builder.ShapeLiteral(%v, %d): expected a compile-time constant dimension", v, axis)
	}
	return MakeLiteral(dim)
}

// ShapeSymbol returns the size of the given axis of v: a Literal if static, a
// Symbol if a runtime dimension handle is obtainable, and otherwise a
// Questionmark carrying (v, axis) provenance.
func (b *Builder) ShapeSymbol(v Value, axis int) IndexExpr {
	if b.IsStaticDim(v, axis) {
		return b.ShapeLiteral(v, axis)
	}
	if handle, ok := b.access.DimensionHandle(v, axis); ok {
		return MakeSymbol(handle)
	}
	return MakeQuestionmarkFor(v, axis)
}

// ShapeDim resolves exactly like ShapeSymbol but tags an obtained runtime
// handle as a Dim. Use it for quantities that become affine-map dimension
// operands downstream; the operand class cannot be retagged later.
func (b *Builder) ShapeDim(v Value, axis int) IndexExpr {
	if b.IsStaticDim(v, axis) {
		return b.ShapeLiteral(v, axis)
	}
	if handle, ok := b.access.DimensionHandle(v, axis); ok {
		return MakeDim(handle, axis)
	}
	return MakeQuestionmarkFor(v, axis)
}

// ShapeLiterals extracts the whole shape of v into list as Literals, clearing
// it first. Every dimension must be static.
func (b *Builder) ShapeLiterals(v Value, list *List) {
	*list = (*list)[:0]
	rank := b.Rank(v)
	for axis := 0; axis < rank; axis++ {
		*list = append(*list, b.ShapeLiteral(v, axis))
	}
}

// ShapeSymbols extracts the whole shape of v into list via ShapeSymbol,
// clearing it first. The result has exactly Rank(v) defined elements.
func (b *Builder) ShapeSymbols(v Value, list *List) {
	*list = (*list)[:0]
	rank := b.Rank(v)
	for axis := 0; axis < rank; axis++ {
		*list = append(*list, b.ShapeSymbol(v, axis))
	}
}

// ShapeDims extracts the whole shape of v into list via ShapeDim, clearing it
// first. The result has exactly Rank(v) defined elements.
func (b *Builder) ShapeDims(v Value, list *List) {
	*list = (*list)[:0]
	rank := b.Rank(v)
	for axis := 0; axis < rank; axis++ {
		*list = append(*list, b.ShapeDim(v, axis))
	}
}
