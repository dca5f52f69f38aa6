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

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPooledBufferReuse(t *testing.T) {
	buf := NewPooledBuffer()

	n, err := buf.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), buf.Bytes())
	assert.Equal(t, 5, buf.Len())

	buf.Reset()
	assert.Equal(t, 0, buf.Len())

	require.NoError(t, buf.Close())

	// a fresh buffer from the pool starts empty even if recycled
	again := NewPooledBuffer()
	defer again.Close()

	assert.Equal(t, 0, again.Len())
}

func TestPooledBufferReadFrom(t *testing.T) {
	buf := NewPooledBuffer()
	defer buf.Close()

	n, err := buf.ReadFrom(strings.NewReader("stream"))
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.Equal(t, "stream", string(buf.Bytes()))
}

func TestPooledBufferGrow(t *testing.T) {
	buf := NewPooledBuffer()
	defer buf.Close()

	buf.Grow(4 * 1024 * 1024)
	assert.GreaterOrEqual(t, buf.Cap(), 4*1024*1024)
}
