// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colstore/colmerge/pkg/common"
)

func TestVectorValueRoundTrip(t *testing.T) {
	vec := NewFlatVector(common.IntegerType(), 4)
	vec.SetValue(0, &Value{Typ: common.IntegerType(), I64: 7})
	vec.SetValue(1, &Value{Typ: common.IntegerType(), IsNull: true})
	vec.SetValue(2, &Value{Typ: common.IntegerType(), I64: -3})

	assert.Equal(t, int64(7), vec.GetValue(0).I64)
	assert.True(t, vec.GetValue(1).IsNull)
	assert.Equal(t, int64(-3), vec.GetValue(2).I64)
	assert.Equal(t, 1, vec.NullCount(4))
}

func TestVectorCopyRow(t *testing.T) {
	src := NewFlatVector(common.VarcharType(), 2)
	src.Str[0] = "aa"
	src.Str[1] = "bb"

	dst := NewFlatVector(common.VarcharType(), 2)
	dst.CopyRow(0, src, 1)
	dst.CopyRow(1, src, 0)
	assert.Equal(t, []string{"bb", "aa"}, dst.Str)
}

func TestTableShape(t *testing.T) {
	types := []common.LType{common.IntegerType(), common.DoubleType()}
	tab := NewTable(types, 8)
	require.Equal(t, 2, tab.ColumnCount())
	require.Equal(t, 8, tab.RowCount())
	assert.False(t, tab.Nullable())

	tab.Cols[1].SetValue(3, &Value{Typ: common.DoubleType(), IsNull: true})
	assert.True(t, tab.Nullable())

	proj := tab.Project([]int{1})
	require.Equal(t, 1, proj.ColumnCount())
	assert.Equal(t, common.LTID_DOUBLE, proj.Cols[0].Typ().Id)
	// projection shares storage
	assert.Same(t, tab.Cols[1], proj.Cols[0])

	rep := tab.ReplaceColumn(0, NewFlatVector(common.IntegerType(), 8))
	assert.NotSame(t, tab.Cols[0], rep.Cols[0])
	assert.Same(t, tab.Cols[1], rep.Cols[1])
}
