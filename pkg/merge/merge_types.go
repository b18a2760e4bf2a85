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

type OrderType int

const (
	OT_INVALID OrderType = iota
	OT_DEFAULT
	OT_ASC
	OT_DESC
)

// OrderByNullType places nulls relative to every non-null value.
// OBNT_NULLS_FIRST means null sorts as the smallest value, independent
// of the key direction; OBNT_NULLS_LAST as the largest.
type OrderByNullType int

const (
	OBNT_INVALID OrderByNullType = iota
	OBNT_DEFAULT
	OBNT_NULLS_FIRST
	OBNT_NULLS_LAST
)

// Side tags which input table a merged row was sourced from.
type Side uint32

const (
	SideLeft  Side = 0
	SideRight Side = 1
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// MergedEntry designates the source of one output row. The full entry
// sequence is the single source of truth for payload and validity
// materialization.
type MergedEntry struct {
	Side Side
	Row  uint32
}

const (
	// rows copied by one payload worker at a time
	payloadBlockSize = 4096
	// bitmap words packed by one validity worker at a time
	validityBlockWords = 64
)
