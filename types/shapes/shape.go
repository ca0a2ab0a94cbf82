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

// Package shapes defines Shape, the static type descriptor of tensor values.
//
// A Shape carries the element type (DType, from github.com/gomlx/gopjrt/dtypes)
// and the per-axis dimensions. Unlike a concrete tensor shape, a dimension may
// be DynamicDim (-1), meaning its size is only known at runtime -- shape
// inference resolves those through runtime handles where it can.
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of a value.
//   - Axis: the index of a dimension. A dimension is the size along one axis.
//   - Scalar: a shape with no axes (rank 0), a single value of the DType.
//   - Static dimension: a dimension whose size is known at compile time.
//   - Dynamic dimension: a dimension marked DynamicDim, resolved at runtime.
//
// A zero-valued Shape is invalid (Ok() == false) and stands for "no ranked
// shaped type": values whose type the compiler cannot describe.
package shapes

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/cjvolzka/onnx-mlir/pkg/support/xslices"
)

// DynamicDim marks a dimension whose size is not known at compile time.
const DynamicDim = -1

// Shape represents the static type of a tensor value: element type plus
// dimensions, where individual dimensions may be DynamicDim.
//
// Use Make (all dimensions static) or MakeDynamic to create one.
type Shape struct {
	DType      dtypes.DType
	Dimensions []int
}

// Make returns a Shape with the given static dimensions.
// It panics if any dimension is not positive; use MakeDynamic for shapes with
// runtime-sized axes.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	s := Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}
	for _, dim := range dimensions {
		if dim <= 0 {
			exceptions.Panicf("shapes.Make(%s): cannot create a shape with an axis with dimension <= 0", s)
		}
	}
	return s
}

// MakeDynamic returns a Shape where each dimension is either a positive static
// size or DynamicDim. Any other value panics.
func MakeDynamic(dtype dtypes.DType, dimensions ...int) Shape {
	s := Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}
	for _, dim := range dimensions {
		if dim <= 0 && dim != DynamicDim {
			exceptions.Panicf("shapes.MakeDynamic(%s): dimensions must be positive or DynamicDim", s)
		}
	}
	return s
}

// Scalar returns a rank-0 shape of the given dtype.
func Scalar(dtype dtypes.DType) Shape {
	return Shape{DType: dtype}
}

// Invalid returns an invalid shape.
//
// Invalid().Ok() == false. It stands for a value without a ranked shaped type.
func Invalid() Shape {
	return Shape{DType: dtypes.InvalidDType}
}

// Ok returns whether this is a valid Shape. The zero Shape{} is invalid.
func (s Shape) Ok() bool { return s.DType != dtypes.InvalidDType }

// Rank of the shape, that is, the number of dimensions.
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar returns whether the shape represents a scalar: a valid shape with rank 0.
func (s Shape) IsScalar() bool { return s.Ok() && s.Rank() == 0 }

// Dim returns the dimension of the given axis, which may be DynamicDim.
// axis can take negative numbers, in which case it counts from the end --
// axis=-1 refers to the last axis. It panics for an out-of-bounds axis.
func (s Shape) Dim(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dimensions[adjustedAxis]
}

// DimIsStatic returns whether the dimension of the given axis is known at
// compile time. Like Dim, axis may be negative to count from the end.
func (s Shape) DimIsStatic(axis int) bool {
	return s.Dim(axis) != DynamicDim
}

// IsFullyDefined returns whether every dimension is static.
// A scalar is trivially fully defined.
func (s Shape) IsFullyDefined() bool {
	return !slices.Contains(s.Dimensions, DynamicDim)
}

// Shape returns a shallow copy of itself. It implements the HasShape interface.
func (s Shape) Shape() Shape { return s }

// String implements stringer, pretty-prints the shape. Dynamic dimensions
// print as "?".
func (s Shape) String() string {
	if !s.Ok() {
		return "(invalid)"
	}
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)", s.DType)
	}
	dims := xslices.Map(s.Dimensions, func(dim int) string {
		if dim == DynamicDim {
			return "?"
		}
		return strconv.Itoa(dim)
	})
	return fmt.Sprintf("(%s)[%s]", s.DType, strings.Join(dims, " "))
}

// Size returns the number of elements of DType needed for this shape, the
// product of all dimensions. It returns -1 if the shape is not fully defined.
func (s Shape) Size() int {
	size := 1
	for _, dim := range s.Dimensions {
		if dim == DynamicDim {
			return -1
		}
		size *= dim
	}
	return size
}

// Equal compares two shapes for equality: dtype and dimensions are compared.
func (s Shape) Equal(s2 Shape) bool {
	return s.DType == s2.DType && slices.Equal(s.Dimensions, s2.Dimensions)
}

// Clone returns a new deep copy of the shape.
func (s Shape) Clone() Shape {
	return Shape{DType: s.DType, Dimensions: slices.Clone(s.Dimensions)}
}
