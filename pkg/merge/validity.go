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

// materializeValidity packs the merged validity bits of one column.
// Output rows are grouped 64 per bitmap word; a group accumulates its
// word locally and stores it exactly once, so words are never written
// by two workers. Columns with no mask on either side keep no mask at
// all.
//
// The three packing loops below specialize on which side carries a
// mask; an all-valid side contributes constant one bits instead of a
// probe. Output is bit-identical across the specializations.
func materializeValidity(
	dst *chunk.Vector,
	lvec *chunk.Vector,
	rvec *chunk.Vector,
	indices []MergedEntry,
	para int) error {
	lHas := lvec.Mask.IsMaskSet()
	rHas := rvec.Mask.IsMaskSet()
	if !lHas && !rHas {
		dst.Mask.Reset()
		return nil
	}

	rows := len(indices)
	dst.Mask.Init(rows)
	words := util.EntryCount(rows)

	pack := packValidityBoth
	switch {
	case lHas && !rHas:
		pack = packValidityLeftOnly
	case !lHas && rHas:
		pack = packValidityRightOnly
	}

	if para <= 1 || words < 2*validityBlockWords {
		pack(dst.Mask, lvec.Mask, rvec.Mask, indices, rows, 0, words)
		return nil
	}

	wg := errgroup.Group{}
	wg.SetLimit(para)
	for beg := 0; beg < words; beg += validityBlockWords {
		beg := beg
		end := util.Min(beg+validityBlockWords, words)
		wg.Go(func() (retErr error) {
			defer func() {
				if re := recover(); re != nil {
					retErr = util.ConvertPanicError(re)
				}
			}()
			pack(dst.Mask, lvec.Mask, rvec.Mask, indices, rows, beg, end)
			return
		})
	}
	return wg.Wait()
}

func packValidityBoth(
	dst *util.Bitmap,
	lMask, rMask *util.Bitmap,
	indices []MergedEntry,
	rows, wordBeg, wordEnd int) {
	for w := wordBeg; w < wordEnd; w++ {
		base := w * util.BitmapEntryBits
		lanes := util.Min(util.BitmapEntryBits, rows-base)
		word := tailValidBits(lanes)
		for lane := 0; lane < lanes; lane++ {
			ent := indices[base+lane]
			var valid bool
			if ent.Side == SideLeft {
				valid = lMask.RowIsValidUnsafe(uint64(ent.Row))
			} else {
				valid = rMask.RowIsValidUnsafe(uint64(ent.Row))
			}
			if valid {
				word |= uint64(1) << uint64(lane)
			}
		}
		dst.SetEntry(uint64(w), word)
	}
}

func packValidityLeftOnly(
	dst *util.Bitmap,
	lMask, _ *util.Bitmap,
	indices []MergedEntry,
	rows, wordBeg, wordEnd int) {
	for w := wordBeg; w < wordEnd; w++ {
		base := w * util.BitmapEntryBits
		lanes := util.Min(util.BitmapEntryBits, rows-base)
		word := tailValidBits(lanes)
		for lane := 0; lane < lanes; lane++ {
			ent := indices[base+lane]
			if ent.Side == SideRight || lMask.RowIsValidUnsafe(uint64(ent.Row)) {
				word |= uint64(1) << uint64(lane)
			}
		}
		dst.SetEntry(uint64(w), word)
	}
}

func packValidityRightOnly(
	dst *util.Bitmap,
	_, rMask *util.Bitmap,
	indices []MergedEntry,
	rows, wordBeg, wordEnd int) {
	for w := wordBeg; w < wordEnd; w++ {
		base := w * util.BitmapEntryBits
		lanes := util.Min(util.BitmapEntryBits, rows-base)
		word := tailValidBits(lanes)
		for lane := 0; lane < lanes; lane++ {
			ent := indices[base+lane]
			if ent.Side == SideLeft || rMask.RowIsValidUnsafe(uint64(ent.Row)) {
				word |= uint64(1) << uint64(lane)
			}
		}
		dst.SetEntry(uint64(w), word)
	}
}

// tailValidBits keeps lanes past the row count valid, matching what
// Bitmap.Init leaves in a partial last word.
func tailValidBits(lanes int) uint64 {
	if lanes == util.BitmapEntryBits {
		return 0
	}
	return util.AllValidEntry << uint64(lanes)
}
