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

// Table is a rectangle of Vectors sharing one row count.
type Table struct {
	Cols  []*Vector
	Count int
}

func NewTable(types []common.LType, rowCount int) *Table {
	tab := &Table{Count: rowCount}
	for _, typ := range types {
		tab.Cols = append(tab.Cols, NewFlatVector(typ, rowCount))
	}
	return tab
}

func (tab *Table) RowCount() int {
	if tab == nil {
		return 0
	}
	return tab.Count
}

func (tab *Table) ColumnCount() int {
	if tab == nil {
		return 0
	}
	return len(tab.Cols)
}

func (tab *Table) Column(idx int) *Vector {
	return tab.Cols[idx]
}

func (tab *Table) Types() []common.LType {
	typs := make([]common.LType, 0, len(tab.Cols))
	for _, col := range tab.Cols {
		typs = append(typs, col.Typ())
	}
	return typs
}

// Nullable reports whether any column carries a materialized mask.
func (tab *Table) Nullable() bool {
	for _, col := range tab.Cols {
		if col.Nullable() {
			return true
		}
	}
	return false
}

// Project builds a table sharing the picked columns. No data is copied.
func (tab *Table) Project(indice []int) *Table {
	proj := &Table{Count: tab.Count}
	for _, idx := range indice {
		util.AssertFunc(idx >= 0 && idx < len(tab.Cols))
		proj.Cols = append(proj.Cols, tab.Cols[idx])
	}
	return proj
}

// ReplaceColumn swaps one column in a shallow copy of the table. The
// receiver is untouched.
func (tab *Table) ReplaceColumn(idx int, vec *Vector) *Table {
	rep := &Table{Count: tab.Count}
	rep.Cols = util.CopyTo(tab.Cols)
	rep.Cols[idx] = vec
	return rep
}

func (tab *Table) GetValue(colIdx int, rowIdx int) *Value {
	return tab.Cols[colIdx].GetValue(rowIdx)
}
