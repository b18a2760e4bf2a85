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
	"fmt"

	"github.com/xlab/treeprint"
)

// WriteSchemaTree renders the table shape for display.
func WriteSchemaTree(tree treeprint.Tree, tab *Table) {
	tree.AddNode(fmt.Sprintf("rows : %d", tab.RowCount()))
	cols := tree.AddBranch(fmt.Sprintf("columns : %d", tab.ColumnCount()))
	for j, col := range tab.Cols {
		branch := cols.AddBranch(fmt.Sprintf("c%d %s", j, col.Typ()))
		if col.Nullable() {
			branch.AddNode(fmt.Sprintf("nulls : %d", col.NullCount(tab.RowCount())))
		}
		if col.Typ().IsCategorical() {
			branch.AddNode(fmt.Sprintf("dictionary : %d entries", col.Dict.Len()))
		}
	}
}

// SchemaString renders the schema tree to a string.
func SchemaString(tab *Table) string {
	tree := treeprint.New()
	WriteSchemaTree(tree, tab)
	return tree.String()
}
