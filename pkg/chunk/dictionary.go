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
	"strings"

	"github.com/huandu/go-clone"
	treemap "github.com/liyue201/gostl/ds/map"
	"github.com/tidwall/btree"

	"github.com/colstore/colmerge/pkg/common"
	"github.com/colstore/colmerge/pkg/util"
)

// Dictionary holds the distinct strings of a categorical column in
// sorted order. The code of a string is its rank, so codes under one
// dictionary compare exactly like the strings they encode.
type Dictionary struct {
	Values []string
	Index  map[string]uint32
}

// NewDictionary builds a dictionary over the distinct strings of vals.
func NewDictionary(vals []string) *Dictionary {
	set := btree.NewBTreeG[string](func(a, b string) bool {
		return a < b
	})
	for _, v := range vals {
		set.Set(v)
	}
	dict := &Dictionary{
		Values: make([]string, 0, set.Len()),
		Index:  make(map[string]uint32, set.Len()),
	}
	set.Scan(func(v string) bool {
		dict.Index[v] = uint32(len(dict.Values))
		dict.Values = append(dict.Values, v)
		return true
	})
	return dict
}

func (dict *Dictionary) Len() int {
	return len(dict.Values)
}

func (dict *Dictionary) Code(s string) (uint32, bool) {
	code, has := dict.Index[s]
	return code, has
}

func (dict *Dictionary) ValueOf(code uint32) string {
	util.AssertFunc(int(code) < len(dict.Values))
	return dict.Values[code]
}

func (dict *Dictionary) Clone() *Dictionary {
	return clone.Clone(dict).(*Dictionary)
}

// EncodeCategorical turns raw strings into a categorical vector with a
// fresh dictionary. nulls marks rows whose value is absent.
func EncodeCategorical(vals []string, nulls []bool) *Vector {
	distinct := make([]string, 0, len(vals))
	for i, v := range vals {
		if nulls != nil && nulls[i] {
			continue
		}
		distinct = append(distinct, v)
	}
	dict := NewDictionary(distinct)
	vec := NewFlatVector(common.CategoricalType(), len(vals))
	vec.Dict = dict
	for i, v := range vals {
		if nulls != nil && nulls[i] {
			vec.Mask.PrepareSpace(len(vals))
			vec.Mask.SetInvalid(uint64(i))
			continue
		}
		code, has := dict.Code(v)
		util.AssertFunc(has)
		vec.Codes[i] = code
	}
	return vec
}

// SyncDictionaries remaps two categorical vectors onto one shared
// dictionary and returns two fresh vectors with comparable codes. The
// input vectors are untouched; the caller owns the returned temporaries.
func SyncDictionaries(left, right *Vector) (*Vector, *Vector) {
	util.AssertFunc(left.Typ().IsCategorical() && right.Typ().IsCategorical())

	union := treemap.New[string, uint32](strings.Compare)
	for _, v := range left.Dict.Values {
		union.Insert(v, 0)
	}
	for _, v := range right.Dict.Values {
		union.Insert(v, 0)
	}

	shared := &Dictionary{
		Values: make([]string, 0, union.Size()),
		Index:  make(map[string]uint32, union.Size()),
	}
	for iter := union.Begin(); iter.IsValid(); iter.Next() {
		shared.Index[iter.Key()] = uint32(len(shared.Values))
		shared.Values = append(shared.Values, iter.Key())
	}

	return remapCodes(left, shared), remapCodes(right, shared)
}

func remapCodes(vec *Vector, shared *Dictionary) *Vector {
	cnt := vec.Cap()
	out := NewFlatVector(common.CategoricalType(), cnt)
	out.Dict = shared
	out.Mask.CopyFrom(vec.Mask, cnt)
	for i := 0; i < cnt; i++ {
		if !vec.Mask.RowIsValid(uint64(i)) {
			continue
		}
		code, has := shared.Code(vec.Dict.ValueOf(vec.Codes[i]))
		util.AssertFunc(has)
		out.Codes[i] = code
	}
	return out
}
