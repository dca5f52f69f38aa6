// Copyright 2017-25 the original author or authors.
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

// Package core holds small shared runtime helpers.
package core

import (
	"bytes"
	"io"
	"sync"
)

const initialBufferSize = 1024 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

// PooledBuffer is a bytes.Buffer drawn from a process-wide pool.  Callers
// must Close it when done; the bytes it exposes are invalid afterwards.
type PooledBuffer struct {
	buf *bytes.Buffer
}

// NewPooledBuffer draws an empty buffer from the pool.
func NewPooledBuffer() *PooledBuffer {
	b, _ := bufferPool.Get().(*bytes.Buffer)
	b.Reset()

	return &PooledBuffer{buf: b}
}

func (p *PooledBuffer) Write(b []byte) (int, error) {
	return p.buf.Write(b)
}

// ReadFrom reads from r until EOF, growing the buffer as needed.
func (p *PooledBuffer) ReadFrom(r io.Reader) (int64, error) {
	return p.buf.ReadFrom(r)
}

func (p *PooledBuffer) Bytes() []byte {
	return p.buf.Bytes()
}

func (p *PooledBuffer) Len() int {
	return p.buf.Len()
}

func (p *PooledBuffer) Cap() int {
	return p.buf.Cap()
}

func (p *PooledBuffer) Grow(n int) {
	p.buf.Grow(n)
}

func (p *PooledBuffer) Reset() {
	p.buf.Reset()
}

// Close returns the buffer to the pool.
func (p *PooledBuffer) Close() error {
	if p.buf != nil {
		bufferPool.Put(p.buf)
		p.buf = nil
	}

	return nil
}
