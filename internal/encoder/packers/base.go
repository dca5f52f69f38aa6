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

// Package packers compresses blob payloads for the test-fixture writer, one
// packer per compression encoding.
package packers

import (
	"io"
)

// base adapts a compressing io.WriteCloser to the packer contract.
type base struct {
	w io.WriteCloser
}

func newBasePacker(w io.WriteCloser) *base {
	return &base{w: w}
}

func (b *base) Write(p []byte) (int, error) {
	return b.w.Write(p)
}

// Close flushes the compressor; the packed bytes are complete only after
// Close returns.
func (b *base) Close() error {
	return b.w.Close()
}
