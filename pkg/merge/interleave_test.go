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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeComparator(lvals, rvals []int32) *rowComparator {
	left := tableOf(len(lvals), i32Vec(lvals))
	right := tableOf(len(rvals), i32Vec(rvals))
	return newRowComparator(left, right, asc(1), OBNT_NULLS_FIRST)
}

func TestInterleaveMatchesSerial(t *testing.T) {
	const n = 10000
	lvals := make([]int32, n)
	rvals := make([]int32, n)
	for i := 0; i < n; i++ {
		// plenty of cross-table duplicates
		lvals[i] = int32(i / 3)
		rvals[i] = int32(i / 2)
	}
	cmp := makeComparator(lvals, rvals)

	serial, err := generateMergedIndices(cmp, n, n, 1)
	require.NoError(t, err)
	for _, para := range []int{2, 4, 7, 16} {
		parallel, err := generateMergedIndices(cmp, n, n, para)
		require.NoError(t, err)
		require.Equal(t, serial, parallel, "parallelism %d", para)
	}
}

func TestInterleaveEverySourceRowOnce(t *testing.T) {
	lvals := []int32{1, 1, 2, 5}
	rvals := []int32{1, 2, 2, 3, 4}
	cmp := makeComparator(lvals, rvals)

	out, err := generateMergedIndices(cmp, len(lvals), len(rvals), 1)
	require.NoError(t, err)
	require.Equal(t, len(lvals)+len(rvals), len(out))

	seenL := make(map[uint32]bool)
	seenR := make(map[uint32]bool)
	for _, ent := range out {
		if ent.Side == SideLeft {
			assert.False(t, seenL[ent.Row])
			seenL[ent.Row] = true
		} else {
			assert.False(t, seenR[ent.Row])
			seenR[ent.Row] = true
		}
	}
	assert.Equal(t, len(lvals), len(seenL))
	assert.Equal(t, len(rvals), len(seenR))
}

func TestInterleaveTiesKeepLeftFirst(t *testing.T) {
	lvals := []int32{1, 2, 2}
	rvals := []int32{2, 2, 3}
	cmp := makeComparator(lvals, rvals)

	out, err := generateMergedIndices(cmp, len(lvals), len(rvals), 1)
	require.NoError(t, err)
	want := []MergedEntry{
		{SideLeft, 0},
		{SideLeft, 1},
		{SideLeft, 2},
		{SideRight, 0},
		{SideRight, 1},
		{SideRight, 2},
	}
	assert.Equal(t, want, out)
}

func TestInterleaveEmptySides(t *testing.T) {
	cmp := makeComparator([]int32{1, 2}, nil)
	out, err := generateMergedIndices(cmp, 2, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, []MergedEntry{{SideLeft, 0}, {SideLeft, 1}}, out)

	cmp = makeComparator(nil, []int32{7})
	out, err = generateMergedIndices(cmp, 0, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []MergedEntry{{SideRight, 0}}, out)
}

func TestMergePathSplit(t *testing.T) {
	lvals := []int32{1, 3, 5, 7}
	rvals := []int32{2, 4, 6, 8}
	cmp := makeComparator(lvals, rvals)

	// diagonal 0 and the full diagonal are fixed points
	assert.Equal(t, 0, mergePathSplit(cmp, 4, 4, 0))
	assert.Equal(t, 4, mergePathSplit(cmp, 4, 4, 8))

	// first 4 merged entries are 1,2,3,4: two from each side
	assert.Equal(t, 2, mergePathSplit(cmp, 4, 4, 4))

	// with equal keys the split prefers left rows
	tie := makeComparator([]int32{5, 5}, []int32{5, 5})
	assert.Equal(t, 2, mergePathSplit(tie, 2, 2, 2))
	assert.Equal(t, 2, mergePathSplit(tie, 2, 2, 3))
}
