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
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjvolzka/onnx-mlir/types/shapes"
)

func TestGraphConstruction(t *testing.T) {
	g := New("main")
	require.Equal(t, "main", g.Name())
	require.Equal(t, 0, g.NumNodes())

	x := g.Parameter("x", shapes.Make(dtypes.Float32, 2, 3))
	c := g.ConstInts("dims", 3, 5, 7)
	require.Equal(t, 2, g.NumNodes())

	require.Equal(t, NodeID(0), x.ID())
	require.Equal(t, NodeID(1), c.ID())
	require.Same(t, g, x.Graph())
	require.Same(t, x, g.NodeByID(0))
	require.Panics(t, func() { g.NodeByID(2) })

	found, err := g.NodeByName("dims")
	require.NoError(t, err)
	require.Same(t, c, found)
	_, err = g.NodeByName("missing")
	require.Error(t, err)
}

func TestParameter(t *testing.T) {
	g := New("main")
	x := g.Parameter("x", shapes.MakeDynamic(dtypes.Float32, shapes.DynamicDim, 3))
	assert.Equal(t, OpParameter, x.Op())
	assert.Equal(t, "x", x.Name())
	assert.Equal(t, 2, x.Rank())
	assert.Equal(t, dtypes.Float32, x.DType())
	_, isConst := x.IntData()
	assert.False(t, isConst)

	unranked := g.Parameter("u", shapes.Invalid())
	assert.False(t, unranked.Shape().Ok())
}

func TestConstants(t *testing.T) {
	g := New("main")

	c := g.ConstInts("dims", 3, 5, 7)
	assert.Equal(t, OpConstant, c.Op())
	assert.True(t, c.Shape().Equal(shapes.Make(dtypes.Int64, 3)))
	data, ok := c.IntData()
	require.True(t, ok)
	assert.Equal(t, []int64{3, 5, 7}, data)

	s := g.ConstScalarInt("axis", -1)
	assert.True(t, s.IsScalar())
	data, ok = s.IntData()
	require.True(t, ok)
	assert.Equal(t, []int64{-1}, data)
}

func TestDimOf(t *testing.T) {
	g := New("main")
	x := g.Parameter("x", shapes.MakeDynamic(dtypes.Float32, 2, shapes.DynamicDim))

	d := g.DimOf(x, 1)
	assert.Equal(t, OpDimOf, d.Op())
	assert.True(t, d.IsScalar())
	assert.Equal(t, dtypes.Int64, d.DType())
	assert.Equal(t, 1, d.Index())
	require.Len(t, d.Inputs(), 1)
	assert.Same(t, x, d.Inputs()[0])

	// Static axes can be materialized too; the caller decides whether it is
	// worth it.
	assert.Equal(t, 0, g.DimOf(x, 0).Index())

	require.Panics(t, func() { g.DimOf(x, 2) })
	require.Panics(t, func() { g.DimOf(x, -1) })
	unranked := g.Parameter("u", shapes.Invalid())
	require.Panics(t, func() { g.DimOf(unranked, 0) })
}

func TestElementOf(t *testing.T) {
	g := New("main")
	sizes := g.Parameter("sizes", shapes.Make(dtypes.Int64, 4))

	e := g.ElementOf(sizes, 2)
	assert.Equal(t, OpElementOf, e.Op())
	assert.True(t, e.IsScalar())
	assert.Equal(t, dtypes.Int64, e.DType())
	assert.Equal(t, 2, e.Index())
	assert.Same(t, sizes, e.Inputs()[0])

	scalar := g.Parameter("s", shapes.Scalar(dtypes.Int64))
	assert.Equal(t, 0, g.ElementOf(scalar, 0).Index())
	require.Panics(t, func() { g.ElementOf(scalar, 1) })

	require.Panics(t, func() { g.ElementOf(sizes, 4) })
	matrix := g.Parameter("m", shapes.Make(dtypes.Int64, 2, 2))
	require.Panics(t, func() { g.ElementOf(matrix, 0) })

	// Elements of a dynamically sized operand have no static bound.
	dyn := g.Parameter("dyn", shapes.MakeDynamic(dtypes.Int64, shapes.DynamicDim))
	assert.Equal(t, 10, g.ElementOf(dyn, 10).Index())
}

func TestCrossGraphInputs(t *testing.T) {
	g1 := New("g1")
	g2 := New("g2")
	x := g1.Parameter("x", shapes.Make(dtypes.Float32, 2))
	require.Panics(t, func() { g2.DimOf(x, 0) })
	require.Panics(t, func() { g2.ElementOf(x, 0) })
}

func TestNodeString(t *testing.T) {
	g := New("main")
	x := g.Parameter("x", shapes.MakeDynamic(dtypes.Float32, 2, shapes.DynamicDim))
	c := g.ConstInts("dims", 3, 5)

	assert.Contains(t, x.String(), "Parameter")
	assert.Contains(t, x.String(), "?")
	assert.Contains(t, c.String(), "[3 5]")
	assert.Contains(t, g.DimOf(x, 1).String(), "axis=1")
	assert.Contains(t, g.ElementOf(c, 0).String(), "ElementOf")
	assert.Equal(t, "<nil>", (*Node)(nil).String())
}

func TestOpTypeString(t *testing.T) {
	assert.Equal(t, "Parameter", OpParameter.String())
	assert.Equal(t, "Constant", OpConstant.String())
	assert.Equal(t, "DimOf", OpDimOf.String())
	assert.Equal(t, "ElementOf", OpElementOf.String())
}
