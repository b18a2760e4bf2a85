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

	"github.com/colstore/colmerge/pkg/util"
)

// generateMergedIndices interleaves the row indices of two sorted
// inputs into the merged entry sequence. Workers own disjoint output
// ranges found by merge-path partitioning, so no two workers write the
// same entry.
func generateMergedIndices(
	cmp *rowComparator,
	lcnt, rcnt int,
	para int) ([]MergedEntry, error) {
	total := lcnt + rcnt
	out := make([]MergedEntry, total)
	if lcnt == 0 || rcnt == 0 {
		side := SideLeft
		if lcnt == 0 {
			side = SideRight
		}
		for i := 0; i < total; i++ {
			out[i] = MergedEntry{Side: side, Row: uint32(i)}
		}
		return out, nil
	}

	if para <= 1 || total < 2*payloadBlockSize {
		interleaveRange(cmp, lcnt, rcnt, 0, 0, out)
		return out, nil
	}

	chunkSize := (total + para - 1) / para
	wg := errgroup.Group{}
	for beg := 0; beg < total; beg += chunkSize {
		beg := beg
		end := util.Min(beg+chunkSize, total)
		wg.Go(func() (retErr error) {
			defer func() {
				if re := recover(); re != nil {
					retErr = util.ConvertPanicError(re)
				}
			}()
			li := mergePathSplit(cmp, lcnt, rcnt, beg)
			interleaveRange(cmp, lcnt, rcnt, li, beg-li, out[beg:end])
			return
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// mergePathSplit finds, for output diagonal d, how many left rows
// precede position d in the merged order. Ties resolve left-first, so
// the split is the smallest left count consistent with the merge.
func mergePathSplit(cmp *rowComparator, lcnt, rcnt, d int) int {
	lo := util.Max(0, d-rcnt)
	hi := util.Min(d, lcnt)
	for lo < hi {
		li := (lo + hi) / 2
		ri := d - li
		if ri > 0 && li < lcnt && !cmp.rightPrecedesLeft(li, ri-1) {
			// left row li must be emitted before right row ri-1
			lo = li + 1
		} else {
			hi = li
		}
	}
	return lo
}

// interleaveRange runs the classic two-pointer merge starting at
// (li, ri) and fills out. The left row is emitted unless the right row
// strictly precedes it.
func interleaveRange(cmp *rowComparator, lcnt, rcnt, li, ri int, out []MergedEntry) {
	for k := range out {
		if ri >= rcnt || (li < lcnt && !cmp.rightPrecedesLeft(li, ri)) {
			out[k] = MergedEntry{Side: SideLeft, Row: uint32(li)}
			li++
		} else {
			out[k] = MergedEntry{Side: SideRight, Row: uint32(ri)}
			ri++
		}
	}
}
