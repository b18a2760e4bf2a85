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

package tableio

import (
	"fmt"

	pqLocal "github.com/xitongsys/parquet-go-source/local"
	pqReader "github.com/xitongsys/parquet-go/reader"

	"github.com/colstore/colmerge/pkg/chunk"
	"github.com/colstore/colmerge/pkg/common"
)

// ReadParquet loads a parquet file column by column into a table.
func ReadParquet(path string, types []common.LType) (*chunk.Table, error) {
	pqFile, err := pqLocal.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer pqFile.Close()

	reader, err := pqReader.NewParquetColumnReader(pqFile, 1)
	if err != nil {
		return nil, err
	}
	defer reader.ReadStop()

	rowCnt := int(reader.GetNumRows())
	tab := chunk.NewTable(types, rowCnt)

	for j, typ := range types {
		values, _, dls, err := reader.ReadColumnByIndex(int64(j), int64(rowCnt))
		if err != nil {
			return nil, err
		}
		if len(values) != rowCnt {
			return nil, fmt.Errorf("column %d has %d values, want %d",
				j, len(values), rowCnt)
		}
		if typ.IsCategorical() {
			rawStrs := make([]string, rowCnt)
			rawNulls := make([]bool, rowCnt)
			for i := 0; i < rowCnt; i++ {
				if fieldIsNull(values[i], dls, i) {
					rawNulls[i] = true
					continue
				}
				s, ok := values[i].(string)
				if !ok {
					panic("usp")
				}
				rawStrs[i] = s
			}
			tab.Cols[j] = chunk.EncodeCategorical(rawStrs, rawNulls)
			continue
		}
		for i := 0; i < rowCnt; i++ {
			if fieldIsNull(values[i], dls, i) {
				tab.Cols[j].SetValue(i, &chunk.Value{Typ: typ, IsNull: true})
				continue
			}
			val, err := parquetColToValue(values[i], typ)
			if err != nil {
				return nil, err
			}
			tab.Cols[j].SetValue(i, val)
		}
	}
	return tab, nil
}

func fieldIsNull(field any, dls []int32, idx int) bool {
	if field == nil {
		return true
	}
	return idx < len(dls) && dls[idx] == 0
}

func parquetColToValue(field any, lTyp common.LType) (*chunk.Value, error) {
	val := &chunk.Value{Typ: lTyp}
	switch lTyp.Id {
	case common.LTID_DATE:
		switch fVal := field.(type) {
		case int32:
			val.I64 = int64(fVal)
		case int64:
			val.I64 = fVal
		default:
			panic("usp")
		}
	case common.LTID_INTEGER, common.LTID_BIGINT:
		switch fVal := field.(type) {
		case int32:
			val.I64 = int64(fVal)
		case int64:
			val.I64 = fVal
		default:
			panic("usp")
		}
	case common.LTID_UBIGINT:
		switch fVal := field.(type) {
		case int32:
			val.U64 = uint64(fVal)
		case int64:
			val.U64 = uint64(fVal)
		default:
			panic("usp")
		}
	case common.LTID_FLOAT, common.LTID_DOUBLE:
		switch fVal := field.(type) {
		case float32:
			val.F64 = float64(fVal)
		case float64:
			val.F64 = fVal
		default:
			panic("usp")
		}
	case common.LTID_BOOLEAN:
		bVal, ok := field.(bool)
		if !ok {
			panic("usp")
		}
		val.Bool = bVal
	case common.LTID_VARCHAR:
		sVal, ok := field.(string)
		if !ok {
			panic("usp")
		}
		val.Str = sVal
	case common.LTID_DECIMAL:
		switch fVal := field.(type) {
		case int32:
			dec, err := common.DecimalFromInt64(int64(fVal), lTyp.Scale)
			if err != nil {
				return nil, err
			}
			val.Dec = dec
		case int64:
			dec, err := common.DecimalFromInt64(fVal, lTyp.Scale)
			if err != nil {
				return nil, err
			}
			val.Dec = dec
		default:
			panic("usp")
		}
	default:
		panic("usp")
	}
	return val, nil
}
