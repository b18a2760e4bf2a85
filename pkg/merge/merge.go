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
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/colstore/colmerge/pkg/chunk"
	"github.com/colstore/colmerge/pkg/util"
)

// Merge interleaves two tables already sorted under the same keys,
// directions and null order into one sorted table. Rows from the same
// input keep their relative order and a left row wins every tie
// against a right row.
func Merge(
	left *chunk.Table,
	right *chunk.Table,
	keys []int,
	orders []OrderType,
	nullOrder OrderByNullType) (*chunk.Table, error) {
	return MergeWithParallelism(left, right, keys, orders, nullOrder,
		runtime.GOMAXPROCS(0))
}

func MergeWithParallelism(
	left *chunk.Table,
	right *chunk.Table,
	keys []int,
	orders []OrderType,
	nullOrder OrderByNullType,
	para int) (*chunk.Table, error) {
	if err := validateMergeArgs(left, right, keys, orders, nullOrder); err != nil {
		return nil, err
	}
	if left.ColumnCount() == 0 {
		return &chunk.Table{}, nil
	}
	if para < 1 {
		para = 1
	}

	// remap categorical columns onto shared dictionaries. The synced
	// vectors are call-private; the caller's tables stay untouched.
	srcLeft, srcRight := left, right
	for j := 0; j < left.ColumnCount(); j++ {
		if !left.Cols[j].Typ().IsCategorical() {
			continue
		}
		lsync, rsync := chunk.SyncDictionaries(left.Cols[j], right.Cols[j])
		srcLeft = srcLeft.ReplaceColumn(j, lsync)
		srcRight = srcRight.ReplaceColumn(j, rsync)
	}

	cmp := newRowComparator(
		srcLeft.Project(keys), srcRight.Project(keys), orders, nullOrder)
	indices, err := generateMergedIndices(
		cmp, left.RowCount(), right.RowCount(), para)
	if err != nil {
		return nil, err
	}

	total := left.RowCount() + right.RowCount()
	dst := chunk.NewTable(left.Types(), total)
	for j := 0; j < dst.ColumnCount(); j++ {
		if dst.Cols[j].Typ().IsCategorical() {
			dst.Cols[j].Dict = srcLeft.Cols[j].Dict.Clone()
		}
	}

	if err = materializePayload(dst, srcLeft, srcRight, indices, para); err != nil {
		return nil, err
	}
	for j := 0; j < dst.ColumnCount(); j++ {
		lvec, rvec := srcLeft.Cols[j], srcRight.Cols[j]
		if err = materializeValidity(dst.Cols[j], lvec, rvec, indices, para); err != nil {
			return nil, err
		}
		// a merge repartitions rows, it never changes nullness
		util.AssertFunc(dst.Cols[j].NullCount(total) ==
			lvec.NullCount(left.RowCount())+rvec.NullCount(right.RowCount()))
	}

	util.Debug("merged sorted tables",
		zap.Int("leftRows", left.RowCount()),
		zap.Int("rightRows", right.RowCount()),
		zap.Int("keys", len(keys)),
		zap.Int("parallelism", para))
	return dst, nil
}

func validateMergeArgs(
	left *chunk.Table,
	right *chunk.Table,
	keys []int,
	orders []OrderType,
	nullOrder OrderByNullType) error {
	if left == nil || right == nil {
		return fmt.Errorf("merge: nil input table")
	}
	if left.ColumnCount() != right.ColumnCount() {
		return fmt.Errorf("merge: column count mismatch %d vs %d",
			left.ColumnCount(), right.ColumnCount())
	}
	for j := 0; j < left.ColumnCount(); j++ {
		if !left.Cols[j].Typ().Equal(right.Cols[j].Typ()) {
			return fmt.Errorf("merge: column %d type mismatch %s vs %s",
				j, left.Cols[j].Typ(), right.Cols[j].Typ())
		}
	}
	if left.ColumnCount() == 0 {
		return nil
	}
	if len(keys) == 0 {
		return fmt.Errorf("merge: empty key column list")
	}
	if len(orders) != len(keys) {
		return fmt.Errorf("merge: %d key columns but %d order directions",
			len(keys), len(orders))
	}
	for _, k := range keys {
		if k < 0 || k >= left.ColumnCount() {
			return fmt.Errorf("merge: key column %d out of range [0,%d)",
				k, left.ColumnCount())
		}
	}
	for _, o := range orders {
		if o != OT_ASC && o != OT_DESC {
			return fmt.Errorf("merge: invalid order direction %d", o)
		}
	}
	if nullOrder != OBNT_NULLS_FIRST && nullOrder != OBNT_NULLS_LAST {
		return fmt.Errorf("merge: invalid null order %d", nullOrder)
	}
	return nil
}

// MergeAll folds a list of sorted tables into one, merging left to
// right so that on full-key ties rows from an earlier table precede
// rows from a later one.
func MergeAll(
	tables []*chunk.Table,
	keys []int,
	orders []OrderType,
	nullOrder OrderByNullType) (*chunk.Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("merge: no input tables")
	}
	acc := tables[0]
	for _, tab := range tables[1:] {
		merged, err := Merge(acc, tab, keys, orders, nullOrder)
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}
