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

package shapes

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	invalidShape := Invalid()
	require.False(t, invalidShape.Ok())
	require.False(t, Shape{}.Ok())

	shape0 := Scalar(dtypes.Int64)
	require.True(t, shape0.Ok())
	require.True(t, shape0.IsScalar())
	require.Equal(t, 0, shape0.Rank())
	require.Equal(t, 1, shape0.Size())

	shape1 := Make(dtypes.Float32, 4, 3, 2)
	require.True(t, shape1.Ok())
	require.False(t, shape1.IsScalar())
	require.Equal(t, 3, shape1.Rank())
	require.Equal(t, 4*3*2, shape1.Size())
	require.True(t, shape1.IsFullyDefined())

	require.Panics(t, func() { Make(dtypes.Float32, 4, 0) })
	require.Panics(t, func() { Make(dtypes.Float32, DynamicDim) })
}

func TestMakeDynamic(t *testing.T) {
	shape := MakeDynamic(dtypes.Float32, 2, DynamicDim, 3)
	require.True(t, shape.Ok())
	require.Equal(t, 3, shape.Rank())
	require.False(t, shape.IsFullyDefined())
	require.Equal(t, -1, shape.Size())

	require.True(t, shape.DimIsStatic(0))
	require.False(t, shape.DimIsStatic(1))
	require.True(t, shape.DimIsStatic(2))

	// No dynamic axes also works; it is then equal to the static form.
	require.True(t, MakeDynamic(dtypes.Float32, 2, 3).Equal(Make(dtypes.Float32, 2, 3)))
	require.Panics(t, func() { MakeDynamic(dtypes.Float32, 2, -3) })
	require.Panics(t, func() { MakeDynamic(dtypes.Float32, 0) })
}

func TestDim(t *testing.T) {
	shape := MakeDynamic(dtypes.Float32, 4, DynamicDim, 2)
	assert.Equal(t, 4, shape.Dim(0))
	assert.Equal(t, DynamicDim, shape.Dim(1))
	assert.Equal(t, 2, shape.Dim(-1))
	assert.Equal(t, 4, shape.Dim(-3))
	assert.Panics(t, func() { shape.Dim(3) })
	assert.Panics(t, func() { shape.Dim(-4) })
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "(invalid)", Invalid().String())
	assert.Equal(t, "(float32)", Scalar(dtypes.Float32).String())
	assert.Equal(t, "(float32)[4 3]", Make(dtypes.Float32, 4, 3).String())
	assert.Equal(t, "(int64)[2 ?]", MakeDynamic(dtypes.Int64, 2, DynamicDim).String())
}

func TestEqualAndClone(t *testing.T) {
	shape := MakeDynamic(dtypes.Float32, 2, DynamicDim)
	assert.True(t, shape.Equal(shape.Clone()))
	assert.False(t, shape.Equal(Make(dtypes.Float32, 2, 2)))
	assert.False(t, shape.Equal(MakeDynamic(dtypes.Float64, 2, DynamicDim)))

	clone := shape.Clone()
	clone.Dimensions[0] = 7
	assert.Equal(t, 2, shape.Dimensions[0], "Clone must not share the dimensions slice")

	// Shape() returns itself, implementing HasShape.
	assert.True(t, shape.Shape().Equal(shape))
}

func TestChecksAndAsserts(t *testing.T) {
	shape := Make(dtypes.Float32, 4, 3)

	require.NoError(t, shape.CheckDims(4, 3))
	require.NoError(t, shape.CheckDims(UncheckedAxis, 3))
	require.Error(t, shape.CheckDims(4))
	require.Error(t, shape.CheckDims(4, 2))

	require.NoError(t, shape.Check(dtypes.Float32, 4, 3))
	require.Error(t, shape.Check(dtypes.Int64, 4, 3))

	require.NoError(t, shape.CheckRank(2))
	require.Error(t, shape.CheckRank(1))

	require.NotPanics(t, func() { shape.AssertDims(4, UncheckedAxis) })
	require.Panics(t, func() { shape.AssertDims(4, 2) })
	require.NotPanics(t, func() { shape.Assert(dtypes.Float32, 4, 3) })
	require.Panics(t, func() { shape.Assert(dtypes.Int64, 4, 3) })
	require.NotPanics(t, func() { shape.AssertRank(2) })
	require.Panics(t, func() { shape.AssertRank(3) })

	require.NotPanics(t, func() { AssertRank(shape, 2) })
	require.NotPanics(t, func() { AssertDims(shape, 4, 3) })
	require.Panics(t, func() { AssertRank(shape, 1) })
}
