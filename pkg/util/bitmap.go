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

package util

import "math/bits"

// BitmapEntryBits is the width of one bitmap word. Validity is packed
// one bit per row, 64 rows per word.
const BitmapEntryBits = 64

const AllValidEntry = ^uint64(0)

// Bitmap is a word-packed validity mask. A nil Bits slice means every
// row is valid.
type Bitmap struct {
	Bits []uint64
}

func (bm *Bitmap) Data() []uint64 {
	return bm.Bits
}

func (bm *Bitmap) Init(count int) {
	cnt := EntryCount(count)
	bm.Bits = make([]uint64, cnt)
	for i := range bm.Bits {
		bm.Bits[i] = AllValidEntry
	}
}

func (bm *Bitmap) ShareWith(other *Bitmap) {
	bm.Bits = other.Bits
}

func (bm *Bitmap) Invalid() bool {
	return len(bm.Bits) == 0
}

func (bm *Bitmap) AllValid() bool {
	return bm.Invalid()
}

func (bm *Bitmap) GetEntry(eIdx uint64) uint64 {
	if bm.Invalid() {
		return AllValidEntry
	}
	return bm.Bits[eIdx]
}

// SetEntry stores one packed word. The backing storage must exist.
func (bm *Bitmap) SetEntry(eIdx uint64, e uint64) {
	bm.Bits[eIdx] = e
}

func GetEntryIndex(idx uint64) (uint64, uint64) {
	return idx / BitmapEntryBits, idx % BitmapEntryBits
}

func EntryIsSet(e uint64, pos uint64) bool {
	return e&(uint64(1)<<pos) != 0
}

func (bm *Bitmap) RowIsValidUnsafe(idx uint64) bool {
	eIdx, pos := GetEntryIndex(idx)
	e := bm.GetEntry(eIdx)
	return EntryIsSet(e, pos)
}

func (bm *Bitmap) RowIsValid(idx uint64) bool {
	if bm.Invalid() {
		return true
	}
	return bm.RowIsValidUnsafe(idx)
}

func (bm *Bitmap) Set(ridx uint64, valid bool) {
	if valid {
		bm.SetValid(ridx)
	} else {
		bm.SetInvalid(ridx)
	}
}

func (bm *Bitmap) SetValid(ridx uint64) {
	if bm.Invalid() {
		return
	}
	bm.SetValidUnsafe(ridx)
}

func (bm *Bitmap) SetValidUnsafe(ridx uint64) {
	eIdx, pos := GetEntryIndex(ridx)
	bm.Bits[eIdx] |= uint64(1) << pos
}

func (bm *Bitmap) SetInvalid(ridx uint64) {
	AssertFunc(!bm.Invalid())
	bm.SetInvalidUnsafe(ridx)
}

func (bm *Bitmap) SetInvalidUnsafe(ridx uint64) {
	eIdx, pos := GetEntryIndex(ridx)
	bm.Bits[eIdx] &= ^(uint64(1) << pos)
}

func (bm *Bitmap) Reset() {
	bm.Bits = nil
}

func EntryCount(cnt int) int {
	return (cnt + BitmapEntryBits - 1) / BitmapEntryBits
}

func (bm *Bitmap) PrepareSpace(cnt int) {
	if bm.Invalid() {
		bm.Init(cnt)
	}
}

func (bm *Bitmap) SetAllValid(cnt int) {
	bm.PrepareSpace(cnt)
	if cnt == 0 {
		return
	}
	lastEidx := EntryCount(cnt) - 1
	for i := 0; i < lastEidx; i++ {
		bm.Bits[i] = AllValidEntry
	}
	lastBits := uint64(cnt % BitmapEntryBits)
	if lastBits == 0 {
		bm.Bits[lastEidx] = AllValidEntry
	} else {
		bm.Bits[lastEidx] = ^(AllValidEntry << lastBits)
	}
}

func (bm *Bitmap) SetAllInvalid(cnt int) {
	bm.PrepareSpace(cnt)
	if cnt == 0 {
		return
	}
	lastEidx := EntryCount(cnt) - 1
	for i := 0; i < lastEidx; i++ {
		bm.Bits[i] = 0
	}
	lastBits := uint64(cnt % BitmapEntryBits)
	if lastBits == 0 {
		bm.Bits[lastEidx] = 0
	} else {
		bm.Bits[lastEidx] = AllValidEntry << lastBits
	}
}

// CountValid counts valid rows among the first cnt rows. Bits past cnt
// in the last word are ignored.
func (bm *Bitmap) CountValid(cnt int) int {
	if bm.Invalid() || cnt == 0 {
		return cnt
	}
	valid := 0
	lastEidx := EntryCount(cnt) - 1
	for i := 0; i < lastEidx; i++ {
		valid += bits.OnesCount64(bm.Bits[i])
	}
	lastBits := uint64(cnt % BitmapEntryBits)
	last := bm.Bits[lastEidx]
	if lastBits != 0 {
		last &= ^(AllValidEntry << lastBits)
	}
	valid += bits.OnesCount64(last)
	return valid
}

func (bm *Bitmap) CopyFrom(other *Bitmap, count int) {
	if other.AllValid() {
		bm.Bits = nil
	} else {
		eCnt := EntryCount(count)
		bm.Bits = make([]uint64, eCnt)
		copy(bm.Bits, other.Bits[:eCnt])
	}
}

func (bm *Bitmap) IsMaskSet() bool {
	return bm.Bits != nil
}
