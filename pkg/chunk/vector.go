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
	"github.com/colstore/colmerge/pkg/common"
	"github.com/colstore/colmerge/pkg/util"
)

// Vector is one column: typed flat storage plus a validity mask. An
// unset mask means every row is valid. Categorical vectors store uint32
// codes into Dict.
type Vector struct {
	_Typ common.LType
	Mask *util.Bitmap

	Bool  []bool
	I32   []int32
	I64   []int64
	U64   []uint64
	F32   []float32
	F64   []float64
	Dec   []common.Decimal
	Str   []string
	Codes []uint32

	Dict *Dictionary
}

func NewFlatVector(typ common.LType, cap int) *Vector {
	vec := &Vector{
		_Typ: typ,
		Mask: &util.Bitmap{},
	}
	switch typ.GetInternalType() {
	case common.BOOL:
		vec.Bool = make([]bool, cap)
	case common.INT32:
		vec.I32 = make([]int32, cap)
	case common.INT64:
		vec.I64 = make([]int64, cap)
	case common.UINT64:
		vec.U64 = make([]uint64, cap)
	case common.FLOAT:
		vec.F32 = make([]float32, cap)
	case common.DOUBLE:
		vec.F64 = make([]float64, cap)
	case common.DECIMAL:
		vec.Dec = make([]common.Decimal, cap)
	case common.VARCHAR:
		vec.Str = make([]string, cap)
	case common.UINT32:
		vec.Codes = make([]uint32, cap)
	case common.NA:
	default:
		panic("usp")
	}
	return vec
}

func (vec *Vector) Typ() common.LType {
	return vec._Typ
}

// Nullable reports whether the vector carries a materialized mask.
func (vec *Vector) Nullable() bool {
	return vec.Mask.IsMaskSet()
}

func (vec *Vector) RowIsValid(idx int) bool {
	return vec.Mask.RowIsValid(uint64(idx))
}

// NullCount counts invalid rows among the first cnt rows.
func (vec *Vector) NullCount(cnt int) int {
	return cnt - vec.Mask.CountValid(cnt)
}

func (vec *Vector) GetValue(idx int) *Value {
	if !vec.Mask.RowIsValid(uint64(idx)) {
		return &Value{
			Typ:    vec.Typ(),
			IsNull: true,
		}
	}
	val := &Value{Typ: vec.Typ()}
	switch vec.Typ().Id {
	case common.LTID_BOOLEAN:
		val.Bool = vec.Bool[idx]
	case common.LTID_INTEGER, common.LTID_DATE:
		val.I64 = int64(vec.I32[idx])
	case common.LTID_BIGINT:
		val.I64 = vec.I64[idx]
	case common.LTID_UBIGINT:
		val.U64 = vec.U64[idx]
	case common.LTID_FLOAT:
		val.F64 = float64(vec.F32[idx])
	case common.LTID_DOUBLE:
		val.F64 = vec.F64[idx]
	case common.LTID_DECIMAL:
		val.Dec = vec.Dec[idx]
	case common.LTID_VARCHAR:
		val.Str = vec.Str[idx]
	case common.LTID_CATEGORICAL:
		val.U64 = uint64(vec.Codes[idx])
		val.Str = vec.Dict.ValueOf(vec.Codes[idx])
	default:
		panic("usp")
	}
	return val
}

func (vec *Vector) SetValue(idx int, val *Value) {
	if val.IsNull {
		vec.Mask.PrepareSpace(vec.Cap())
		vec.Mask.SetInvalid(uint64(idx))
		return
	}
	switch vec.Typ().Id {
	case common.LTID_BOOLEAN:
		vec.Bool[idx] = val.Bool
	case common.LTID_INTEGER, common.LTID_DATE:
		vec.I32[idx] = int32(val.I64)
	case common.LTID_BIGINT:
		vec.I64[idx] = val.I64
	case common.LTID_UBIGINT:
		vec.U64[idx] = val.U64
	case common.LTID_FLOAT:
		vec.F32[idx] = float32(val.F64)
	case common.LTID_DOUBLE:
		vec.F64[idx] = val.F64
	case common.LTID_DECIMAL:
		vec.Dec[idx] = val.Dec
	case common.LTID_VARCHAR:
		vec.Str[idx] = val.Str
	case common.LTID_CATEGORICAL:
		vec.Codes[idx] = uint32(val.U64)
	default:
		panic("usp")
	}
}

// CopyRow copies one value from src[srcIdx] into vec[idx] without
// boxing. Masks are not touched. For categorical vectors the raw code
// is copied, which is only correct once both sides share one
// dictionary.
func (vec *Vector) CopyRow(idx int, src *Vector, srcIdx int) {
	switch vec.Typ().GetInternalType() {
	case common.BOOL:
		vec.Bool[idx] = src.Bool[srcIdx]
	case common.INT32:
		vec.I32[idx] = src.I32[srcIdx]
	case common.INT64:
		vec.I64[idx] = src.I64[srcIdx]
	case common.UINT64:
		vec.U64[idx] = src.U64[srcIdx]
	case common.FLOAT:
		vec.F32[idx] = src.F32[srcIdx]
	case common.DOUBLE:
		vec.F64[idx] = src.F64[srcIdx]
	case common.DECIMAL:
		vec.Dec[idx] = src.Dec[srcIdx]
	case common.VARCHAR:
		vec.Str[idx] = src.Str[srcIdx]
	case common.UINT32:
		vec.Codes[idx] = src.Codes[srcIdx]
	default:
		panic("usp")
	}
}

// Cap is the allocated row capacity of the typed storage.
func (vec *Vector) Cap() int {
	switch vec.Typ().GetInternalType() {
	case common.BOOL:
		return len(vec.Bool)
	case common.INT32:
		return len(vec.I32)
	case common.INT64:
		return len(vec.I64)
	case common.UINT64:
		return len(vec.U64)
	case common.FLOAT:
		return len(vec.F32)
	case common.DOUBLE:
		return len(vec.F64)
	case common.DECIMAL:
		return len(vec.Dec)
	case common.VARCHAR:
		return len(vec.Str)
	case common.UINT32:
		return len(vec.Codes)
	default:
		return 0
	}
}
