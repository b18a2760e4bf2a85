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
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/colstore/colmerge/pkg/chunk"
	"github.com/colstore/colmerge/pkg/common"
)

// NullField marks an absent value in csv files.
const NullField = `\N`

// ReadCSV loads a csv file into a table. Categorical columns are read
// as raw strings and dictionary-encoded per column.
func ReadCSV(path string, types []common.LType, comma rune) (*chunk.Table, error) {
	dataFile, err := os.OpenFile(path, os.O_RDONLY, 0755)
	if err != nil {
		return nil, err
	}
	defer dataFile.Close()

	reader := csv.NewReader(dataFile)
	if comma != 0 {
		reader.Comma = comma
	}
	lines, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	tab := chunk.NewTable(types, len(lines))
	// categorical columns buffer raw strings for dictionary encoding
	rawStrs := make(map[int][]string)
	rawNulls := make(map[int][]bool)
	for j, typ := range types {
		if typ.IsCategorical() {
			rawStrs[j] = make([]string, len(lines))
			rawNulls[j] = make([]bool, len(lines))
		}
	}

	for i, line := range lines {
		if len(line) < len(types) {
			return nil, fmt.Errorf("line %d: %d fields but %d columns",
				i+1, len(line), len(types))
		}
		for j, typ := range types {
			field := line[j]
			if typ.IsCategorical() {
				if field == NullField {
					rawNulls[j][i] = true
				} else {
					rawStrs[j][i] = field
				}
				continue
			}
			val, err := parseCsvField(field, typ)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", i+1, j, err)
			}
			tab.Cols[j].SetValue(i, val)
		}
	}

	for j := range rawStrs {
		vec := chunk.EncodeCategorical(rawStrs[j], rawNulls[j])
		tab.Cols[j] = vec
	}
	return tab, nil
}

func parseCsvField(field string, typ common.LType) (*chunk.Value, error) {
	val := &chunk.Value{Typ: typ}
	if field == NullField {
		val.IsNull = true
		return val, nil
	}
	switch typ.Id {
	case common.LTID_INTEGER, common.LTID_BIGINT:
		ival, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, err
		}
		val.I64 = ival
	case common.LTID_UBIGINT:
		uval, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, err
		}
		val.U64 = uval
	case common.LTID_FLOAT, common.LTID_DOUBLE:
		fval, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		val.F64 = fval
	case common.LTID_BOOLEAN:
		bval, err := strconv.ParseBool(field)
		if err != nil {
			return nil, err
		}
		val.Bool = bval
	case common.LTID_DECIMAL:
		dval, err := common.ParseDecimal(field)
		if err != nil {
			return nil, err
		}
		val.Dec = dval
	case common.LTID_VARCHAR:
		val.Str = field
	case common.LTID_DATE:
		d, err := time.Parse(time.DateOnly, field)
		if err != nil {
			return nil, err
		}
		val.I64 = d.Unix() / 86400
	default:
		panic("usp")
	}
	return val, nil
}

// WriteCSV writes a table, nulls as \N, one record per row.
func WriteCSV(path string, tab *chunk.Table, needHeadline bool, comma rune) error {
	outFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	defer outFile.Close()

	writer := csv.NewWriter(outFile)
	if comma != 0 {
		writer.Comma = comma
	}
	defer writer.Flush()

	if needHeadline {
		head := make([]string, tab.ColumnCount())
		for j, typ := range tab.Types() {
			head[j] = fmt.Sprintf("c%d:%s", j, typ)
		}
		if err = writer.Write(head); err != nil {
			return err
		}
	}

	record := make([]string, tab.ColumnCount())
	for i := 0; i < tab.RowCount(); i++ {
		for j := 0; j < tab.ColumnCount(); j++ {
			val := tab.GetValue(j, i)
			if val.IsNull {
				record[j] = NullField
			} else {
				record[j] = val.String()
			}
		}
		if err = writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
