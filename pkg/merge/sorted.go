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
	"github.com/colstore/colmerge/pkg/chunk"
)

// IsSorted reports whether the table is ordered under the given keys,
// directions and null order. Inputs of Merge must satisfy this; its
// output always does.
func IsSorted(
	tab *chunk.Table,
	keys []int,
	orders []OrderType,
	nullOrder OrderByNullType) bool {
	if tab.RowCount() < 2 || len(keys) == 0 {
		return true
	}
	proj := tab.Project(keys)
	cmp := newRowComparator(proj, proj, orders, nullOrder)
	for i := 0; i+1 < tab.RowCount(); i++ {
		if cmp.compare(i, i+1) > 0 {
			return false
		}
	}
	return true
}
