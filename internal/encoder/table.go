// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package encoder

import "sort"

const sentinel = ""

// Strings accumulates the distinct strings of a block under construction.
type Strings struct {
	tbl map[string]struct{}
}

// Table is a frozen block string table: the sorted string array plus the
// reverse index used while packing tag and role references.
type Table struct {
	tbl     map[string]int32
	strings []string
}

func NewStrings() *Strings {
	return &Strings{
		tbl: make(map[string]struct{}),
	}
}

func (s *Strings) Add(value string) {
	s.tbl[value] = struct{}{}
}

// CalcTable freezes the accumulated strings into an indexable table.  The
// sentinel empty string sorts to index 0, which dense tag streams reserve as
// their terminator.
func (s *Strings) CalcTable() *Table {
	strings := make([]string, 0, len(s.tbl)+1)
	strings = append(strings, sentinel)

	for k := range s.tbl {
		if k != sentinel {
			strings = append(strings, k)
		}
	}

	sort.Strings(strings)

	tbl := make(map[string]int32, len(strings))
	for i, k := range strings {
		tbl[k] = int32(i)
	}

	return &Table{
		tbl:     tbl,
		strings: strings,
	}
}

// IndexOf returns the table index of a string collected before the table was
// frozen.
func (t *Table) IndexOf(value string) int32 {
	index, ok := t.tbl[value]
	if !ok {
		panic("string was not collected: " + value)
	}

	return index
}

// AsArray returns the table in wire order.
func (t *Table) AsArray() []string {
	return t.strings
}
