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
	"golang.org/x/sync/errgroup"

	"github.com/colstore/colmerge/pkg/chunk"
	"github.com/colstore/colmerge/pkg/util"
)

// materializePayload fills every destination value from the source row
// each merged entry designates. Work splits over columns and over row
// blocks within a column; blocks are disjoint, so writers never share a
// destination location. Validity masks are not touched here.
func materializePayload(
	dst *chunk.Table,
	left *chunk.Table,
	right *chunk.Table,
	indices []MergedEntry,
	para int) error {
	rows := len(indices)
	util.AssertFunc(dst.RowCount() == rows)

	if para <= 1 {
		for j := 0; j < dst.ColumnCount(); j++ {
			copyColumnRange(dst.Cols[j], left.Cols[j], right.Cols[j], indices, 0, rows)
		}
		return nil
	}

	wg := errgroup.Group{}
	wg.SetLimit(para)
	for j := 0; j < dst.ColumnCount(); j++ {
		j := j
		for beg := 0; beg < rows; beg += payloadBlockSize {
			beg := beg
			end := util.Min(beg+payloadBlockSize, rows)
			wg.Go(func() (retErr error) {
				defer func() {
					if re := recover(); re != nil {
						retErr = util.ConvertPanicError(re)
					}
				}()
				copyColumnRange(dst.Cols[j], left.Cols[j], right.Cols[j], indices, beg, end)
				return
			})
		}
	}
	return wg.Wait()
}

func copyColumnRange(
	dst *chunk.Vector,
	lvec *chunk.Vector,
	rvec *chunk.Vector,
	indices []MergedEntry,
	beg, end int) {
	for i := beg; i < end; i++ {
		ent := indices[i]
		if ent.Side == SideLeft {
			dst.CopyRow(i, lvec, int(ent.Row))
		} else {
			dst.CopyRow(i, rvec, int(ent.Row))
		}
	}
}
