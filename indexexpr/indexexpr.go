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

// Package indexexpr extracts symbolic integer quantities -- array elements and
// dimension sizes -- during shape inference.
//
// Shape inference needs a uniform representation for "some integer the
// compiler cares about", whether it comes from a compile-time attribute, from
// a scalar/1-D integer operand, or from the shape of a tensor value. IndexExpr
// is that representation. Each one is exactly one of:
//
//   - Literal: known at compile time.
//   - Symbol: known only at runtime, backed by a handle to a runtime scalar,
//     used as a free symbol operand in later affine composition.
//   - Dim: like Symbol, but reserved for quantities used as affine-map
//     dimension operands. The two classes follow different substitution rules
//     downstream, so the tag is fixed at extraction time, by the call site.
//   - Questionmark: not resolvable at all. Shape-derived questionmarks keep
//     (owner, axis) provenance so a later pass can retry with more context.
//   - Undefined: the zero value, meaning "index out of the requested range".
//     It is an internal signal between the Builder and its caller: either
//     surfaced directly by the strict single-element operations, or replaced
//     by a default literal. It never appears in a batch result.
//
// The Builder produces IndexExpr values; an Access supplies the two host
// capabilities the Builder cannot derive from static types: constant folding
// and runtime-handle materialization. This package only extracts and
// classifies -- it never simplifies or combines index expressions.
package indexexpr

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"

	"github.com/cjvolzka/onnx-mlir/pkg/support/xslices"
	"github.com/cjvolzka/onnx-mlir/types/shapes"
)

// Value is an opaque handle to a value in the host IR, anything that can
// report its static shape. Handles are borrowed: their lifetime is governed by
// the host's value graph, and they must be lightweight and comparable
// (IndexExpr.Equal compares them with ==).
//
// An invalid shape (shapes.Invalid()) means the value has no ranked shaped type.
type Value interface {
	Shape() shapes.Shape
}

// Kind discriminates the active case of an IndexExpr.
type Kind int

const (
	// KindUndefined is the zero Kind: the IndexExpr of an index that was out
	// of the valid range of the query.
	KindUndefined Kind = iota
	KindLiteral
	KindSymbol
	KindDim
	KindQuestionmark
)

// String implements stringer for Kind.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "Undefined"
	case KindLiteral:
		return "Literal"
	case KindSymbol:
		return "Symbol"
	case KindDim:
		return "Dim"
	case KindQuestionmark:
		return "Questionmark"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IndexExpr is one symbolic integer quantity, exactly one of the cases listed
// in the package documentation. The zero IndexExpr is Undefined.
//
// IndexExpr is a pure value: it never owns or mutates the handles it carries.
type IndexExpr struct {
	kind    Kind
	literal int64

	// handle is the runtime scalar of Symbol and Dim.
	handle Value

	// owner is the provenance value of a shape-derived Questionmark.
	owner Value

	// axis is the dimension position of Dim and of Questionmark provenance.
	axis int
}

// MakeLiteral returns the IndexExpr of a compile-time constant.
func MakeLiteral(value int64) IndexExpr {
	return IndexExpr{kind: KindLiteral, literal: value}
}

// MakeSymbol returns the IndexExpr of a runtime scalar used as a free affine
// symbol operand. The handle must not be nil.
func MakeSymbol(handle Value) IndexExpr {
	if handle == nil {
		exceptions.Panicf("indexexpr.MakeSymbol: nil handle")
	}
	return IndexExpr{kind: KindSymbol, handle: handle}
}

// MakeDim returns the IndexExpr of a runtime scalar used as an affine
// dimension operand, recording the axis it was extracted from. The handle
// must not be nil.
func MakeDim(handle Value, axis int) IndexExpr {
	if handle == nil {
		exceptions.Panicf("indexexpr.MakeDim: nil handle")
	}
	return IndexExpr{kind: KindDim, handle: handle, axis: axis}
}

// MakeQuestionmark returns an unresolved IndexExpr with no provenance, for
// quantities extracted from an opaque array.
func MakeQuestionmark() IndexExpr {
	return IndexExpr{kind: KindQuestionmark}
}

// MakeQuestionmarkFor returns an unresolved IndexExpr that remembers it is
// the size of the given axis of owner, so later passes can retry resolution.
func MakeQuestionmarkFor(owner Value, axis int) IndexExpr {
	if owner == nil {
		exceptions.Panicf("indexexpr.MakeQuestionmarkFor: nil owner")
	}
	return IndexExpr{kind: KindQuestionmark, owner: owner, axis: axis}
}

// Kind of the expression.
func (e IndexExpr) Kind() Kind { return e.kind }

// IsUndefined returns whether this is the out-of-range sentinel.
func (e IndexExpr) IsUndefined() bool { return e.kind == KindUndefined }

// IsDefined returns whether the expression is anything but Undefined.
func (e IndexExpr) IsDefined() bool { return e.kind != KindUndefined }

// IsLiteral returns whether the quantity is known at compile time.
func (e IndexExpr) IsLiteral() bool { return e.kind == KindLiteral }

// IsSymbol returns whether this is a runtime quantity tagged as a symbol operand.
func (e IndexExpr) IsSymbol() bool { return e.kind == KindSymbol }

// IsDim returns whether this is a runtime quantity tagged as a dimension operand.
func (e IndexExpr) IsDim() bool { return e.kind == KindDim }

// IsQuestionmark returns whether the quantity could not be resolved.
func (e IndexExpr) IsQuestionmark() bool { return e.kind == KindQuestionmark }

// Literal returns the compile-time value. It panics unless IsLiteral.
func (e IndexExpr) Literal() int64 {
	if e.kind != KindLiteral {
		exceptions.Panicf("IndexExpr.Literal() called on a %s expression", e.kind)
	}
	return e.literal
}

// Handle returns the runtime scalar handle. It panics unless IsSymbol or IsDim.
func (e IndexExpr) Handle() Value {
	if e.kind != KindSymbol && e.kind != KindDim {
		exceptions.Panicf("IndexExpr.Handle() called on a %s expression", e.kind)
	}
	return e.handle
}

// Axis returns the dimension position a Dim was extracted from. It panics
// unless IsDim.
func (e IndexExpr) Axis() int {
	if e.kind != KindDim {
		exceptions.Panicf("IndexExpr.Axis() called on a %s expression", e.kind)
	}
	return e.axis
}

// Provenance returns the (owner, axis) a shape-derived Questionmark was
// extracted from. ok is false for every other expression, including
// questionmarks extracted from opaque arrays.
func (e IndexExpr) Provenance() (owner Value, axis int, ok bool) {
	if e.kind != KindQuestionmark || e.owner == nil {
		return nil, 0, false
	}
	return e.owner, e.axis, true
}

// Equal compares two expressions structurally: same kind, and same literal,
// handle, axis and provenance where the kind has them.
func (e IndexExpr) Equal(other IndexExpr) bool {
	if e.kind != other.kind {
		return false
	}
	switch e.kind {
	case KindLiteral:
		return e.literal == other.literal
	case KindSymbol:
		return e.handle == other.handle
	case KindDim:
		return e.handle == other.handle && e.axis == other.axis
	case KindQuestionmark:
		return e.owner == other.owner && (e.owner == nil || e.axis == other.axis)
	}
	return true
}

// String implements stringer, pretty-prints the expression.
func (e IndexExpr) String() string {
	switch e.kind {
	case KindLiteral:
		return fmt.Sprintf("Literal(%d)", e.literal)
	case KindSymbol:
		return fmt.Sprintf("Symbol(%v)", e.handle)
	case KindDim:
		return fmt.Sprintf("Dim(%v, axis=%d)", e.handle, e.axis)
	case KindQuestionmark:
		if e.owner == nil {
			return "?"
		}
		return fmt.Sprintf("?(%v, axis=%d)", e.owner, e.axis)
	}
	return "Undefined"
}

// List is an ordered sequence of IndexExpr, produced per batch call. The
// Builder's batch operations clear and repopulate a caller-supplied *List in
// place; every element of a produced List is defined.
type List []IndexExpr

// String implements stringer, pretty-prints the list.
func (l List) String() string {
	return "[" + strings.Join(xslices.Map(l, IndexExpr.String), ", ") + "]"
}

// AllDefined returns whether no element of the list is Undefined. Lists
// produced by the Builder always satisfy it.
func (l List) AllDefined() bool {
	for _, e := range l {
		if e.IsUndefined() {
			return false
		}
	}
	return true
}
