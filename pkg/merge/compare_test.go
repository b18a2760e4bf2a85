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

package merge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colstore/colmerge/pkg/chunk"
	"github.com/colstore/colmerge/pkg/common"
)

func f64Vec(vals []float64) *chunk.Vector {
	vec := chunk.NewFlatVector(common.DoubleType(), len(vals))
	copy(vec.F64, vals)
	return vec
}

func decVec(vals ...string) *chunk.Vector {
	vec := chunk.NewFlatVector(common.DecimalType(18, 2), len(vals))
	for i, s := range vals {
		d, err := common.ParseDecimal(s)
		if err != nil {
			panic(err)
		}
		vec.Dec[i] = d
	}
	return vec
}

func TestCompareShortCircuit(t *testing.T) {
	left := tableOf(1, i32Vec([]int32{1}), strVec([]string{"z"}))
	right := tableOf(1, i32Vec([]int32{2}), strVec([]string{"a"}))
	cmp := newRowComparator(left, right, asc(2), OBNT_NULLS_FIRST)

	// first key decides, second never flips it
	assert.Equal(t, -1, cmp.compare(0, 0))
	assert.False(t, cmp.rightPrecedesLeft(0, 0))
}

func TestCompareSecondKeyBreaksTie(t *testing.T) {
	left := tableOf(1, i32Vec([]int32{7}), strVec([]string{"m"}))
	right := tableOf(1, i32Vec([]int32{7}), strVec([]string{"b"}))
	cmp := newRowComparator(left, right, asc(2), OBNT_NULLS_FIRST)
	assert.True(t, cmp.rightPrecedesLeft(0, 0))
}

func TestCompareNullIgnoresDirection(t *testing.T) {
	left := tableOf(1, i32Vec([]int32{0}, 0))
	right := tableOf(1, i32Vec([]int32{5}))

	// nulls-first: null smallest under asc and desc alike
	for _, ot := range []OrderType{OT_ASC, OT_DESC} {
		cmp := newRowComparator(left, right, []OrderType{ot}, OBNT_NULLS_FIRST)
		assert.Equal(t, -1, cmp.compare(0, 0), "order %v", ot)
	}
	for _, ot := range []OrderType{OT_ASC, OT_DESC} {
		cmp := newRowComparator(left, right, []OrderType{ot}, OBNT_NULLS_LAST)
		assert.Equal(t, 1, cmp.compare(0, 0), "order %v", ot)
	}
}

func TestCompareBothNullTieFallsThrough(t *testing.T) {
	left := tableOf(1, i32Vec([]int32{0}, 0), strVec([]string{"l"}))
	right := tableOf(1, i32Vec([]int32{0}, 0), strVec([]string{"r"}))
	cmp := newRowComparator(left, right, asc(2), OBNT_NULLS_FIRST)
	// both null at key 0, second key decides
	assert.Equal(t, -1, cmp.compare(0, 0))
}

func TestCompareDecimal(t *testing.T) {
	left := tableOf(2, decVec("1.50", "2.25"))
	right := tableOf(2, decVec("1.75", "2.25"))
	cmp := newRowComparator(left, right, asc(1), OBNT_NULLS_FIRST)
	assert.Equal(t, -1, cmp.compare(0, 0))
	assert.Equal(t, 0, cmp.compare(1, 1))
	assert.Equal(t, 1, cmp.compare(1, 0))
}

func TestCompareFloatNaNOrdersLast(t *testing.T) {
	left := tableOf(2, f64Vec([]float64{1.5, math.NaN()}))
	right := tableOf(2, f64Vec([]float64{math.NaN(), math.NaN()}))
	cmp := newRowComparator(left, right, asc(1), OBNT_NULLS_FIRST)
	assert.Equal(t, -1, cmp.compare(0, 0))
	assert.Equal(t, 1, cmp.compare(1, 0))

	// NaN ties with NaN, keeps merge total
	assert.Equal(t, 0, cmp.compare(1, 1))
}

func TestCompareBool(t *testing.T) {
	lvec := chunk.NewFlatVector(common.BooleanType(), 2)
	rvec := chunk.NewFlatVector(common.BooleanType(), 2)
	lvec.Bool[0], lvec.Bool[1] = false, true
	rvec.Bool[0], rvec.Bool[1] = true, true
	cmp := newRowComparator(tableOf(2, lvec), tableOf(2, rvec), asc(1), OBNT_NULLS_FIRST)
	assert.Equal(t, -1, cmp.compare(0, 0))
	assert.Equal(t, 0, cmp.compare(1, 1))
}

func TestCompareNonNullableFastPathMatchesNullable(t *testing.T) {
	vals := []int32{3, 1}
	rvals := []int32{2, 2}

	bare := makeComparator(vals, rvals)

	lvec := i32Vec(vals)
	lvec.Mask.Init(len(vals))
	rvec := i32Vec(rvals)
	rvec.Mask.Init(len(rvals))
	masked := newRowComparator(tableOf(2, lvec), tableOf(2, rvec), asc(1), OBNT_NULLS_FIRST)

	for li := 0; li < 2; li++ {
		for ri := 0; ri < 2; ri++ {
			require.Equal(t, masked.compare(li, ri), bare.compare(li, ri))
		}
	}
}
