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

type InputTable struct {
	Path   string `toml:"path"`
	Format string `toml:"format"`
}

type MergeOptions struct {
	Keys        []int    `toml:"keys"`
	Orders      []string `toml:"orders"`
	NullsFirst  bool     `toml:"nullsFirst"`
	Types       []string `toml:"types"`
	Categorical []int    `toml:"categorical"`
	CheckSorted bool     `toml:"checkSorted"`
}

type OutputOptions struct {
	Path         string `toml:"path"`
	NeedHeadLine bool   `toml:"needHeadline"`
	PrintSchema  bool   `toml:"printSchema"`
}

type DebugOptions struct {
	ShowRaw     bool `toml:"showRaw"`
	PrintResult bool `toml:"printResult"`
	Parallelism int  `toml:"parallelism"`
}

type Config struct {
	Left   InputTable    `toml:"left"`
	Right  InputTable    `toml:"right"`
	Merge  MergeOptions  `toml:"merge"`
	Output OutputOptions `toml:"output"`
	Debug  DebugOptions  `toml:"debug"`
}
