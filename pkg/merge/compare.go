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
	"strings"

	"github.com/colstore/colmerge/pkg/chunk"
	"github.com/colstore/colmerge/pkg/common"
	"github.com/colstore/colmerge/pkg/util"
)

// rowComparator compares one left row against one right row over the
// key columns, lexicographically with short circuit. Null placement
// follows the null order and ignores the key direction; the direction
// only flips the ordering of non-null values.
type rowComparator struct {
	_lcols     []*chunk.Vector
	_rcols     []*chunk.Vector
	_orders    []OrderType
	_nullOrder OrderByNullType
	// per key, whether the side's mask must be probed at all
	_lProbe []bool
	_rProbe []bool
}

func newRowComparator(
	left *chunk.Table,
	right *chunk.Table,
	orders []OrderType,
	nullOrder OrderByNullType) *rowComparator {
	util.AssertFunc(left.ColumnCount() == right.ColumnCount())
	util.AssertFunc(left.ColumnCount() == len(orders))
	cmp := &rowComparator{
		_lcols:     left.Cols,
		_rcols:     right.Cols,
		_orders:    orders,
		_nullOrder: nullOrder,
	}
	for i := 0; i < left.ColumnCount(); i++ {
		cmp._lProbe = append(cmp._lProbe, left.Cols[i].Nullable())
		cmp._rProbe = append(cmp._rProbe, right.Cols[i].Nullable())
	}
	return cmp
}

// compare returns <0 when the left row precedes, >0 when the right row
// precedes, 0 when all keys tie.
func (cmp *rowComparator) compare(lrow, rrow int) int {
	for i := range cmp._lcols {
		lvalid := !cmp._lProbe[i] || cmp._lcols[i].RowIsValid(lrow)
		rvalid := !cmp._rProbe[i] || cmp._rcols[i].RowIsValid(rrow)
		switch {
		case lvalid && rvalid:
			res := compareValue(cmp._lcols[i], lrow, cmp._rcols[i], rrow)
			if cmp._orders[i] == OT_DESC {
				res = -res
			}
			if res != 0 {
				return res
			}
		case !lvalid && !rvalid:
			// equal at this key
		case !lvalid:
			if cmp._nullOrder == OBNT_NULLS_FIRST {
				return -1
			}
			return 1
		default:
			if cmp._nullOrder == OBNT_NULLS_FIRST {
				return 1
			}
			return -1
		}
	}
	return 0
}

// rightPrecedesLeft is the merge predicate: take the right row before
// the left row only on a strict precedence. Ties keep the left row
// first.
func (cmp *rowComparator) rightPrecedesLeft(lrow, rrow int) bool {
	return cmp.compare(lrow, rrow) > 0
}

func compareValue(lvec *chunk.Vector, lrow int, rvec *chunk.Vector, rrow int) int {
	switch lvec.Typ().GetInternalType() {
	case common.BOOL:
		return compareBool(lvec.Bool[lrow], rvec.Bool[rrow])
	case common.INT32:
		return compareOrdered(lvec.I32[lrow], rvec.I32[rrow])
	case common.INT64:
		return compareOrdered(lvec.I64[lrow], rvec.I64[rrow])
	case common.UINT64:
		return compareOrdered(lvec.U64[lrow], rvec.U64[rrow])
	case common.FLOAT:
		return compareFloat(lvec.F32[lrow], rvec.F32[rrow])
	case common.DOUBLE:
		return compareFloat(lvec.F64[lrow], rvec.F64[rrow])
	case common.DECIMAL:
		return lvec.Dec[lrow].Cmp(rvec.Dec[rrow].Decimal)
	case common.VARCHAR:
		return strings.Compare(lvec.Str[lrow], rvec.Str[rrow])
	case common.UINT32:
		// categorical codes compare like their strings once both
		// sides share one dictionary
		return compareOrdered(lvec.Codes[lrow], rvec.Codes[rrow])
	default:
		panic("usp")
	}
}

func compareOrdered[T int32 | int64 | uint32 | uint64](l, r T) int {
	if l < r {
		return -1
	} else if l > r {
		return 1
	}
	return 0
}

func compareBool(l, r bool) int {
	if l == r {
		return 0
	}
	if !l {
		return -1
	}
	return 1
}

// compareFloat orders NaN after every other value so float keys stay
// totally ordered.
func compareFloat[T ~float32 | ~float64](l, r T) int {
	if util.GreaterFloat(r, l) {
		return -1
	}
	if util.GreaterFloat(l, r) {
		return 1
	}
	return 0
}
