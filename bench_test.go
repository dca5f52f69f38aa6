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

package osmpbf

import (
	"bytes"
	"context"
	"testing"
)

func BenchmarkForEach(b *testing.B) {
	data := wideFixture(b)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r, err := NewElementReader(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}

		var count int

		if err := r.ForEach(func(e Element) error {
			count++

			return nil
		}); err != nil {
			b.Fatal(err)
		}

		if count != 442 {
			b.Fatalf("unexpected element count %d", count)
		}
	}
}

func BenchmarkParMapReduce(b *testing.B) {
	data := wideFixture(b)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r, err := NewElementReader(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}

		count, err := ParMapReduce(context.Background(), r,
			func(e Element) int { return 1 }, 0, func(x, y int) int { return x + y })
		if err != nil {
			b.Fatal(err)
		}

		if count != 442 {
			b.Fatalf("unexpected element count %d", count)
		}
	}
}

func BenchmarkBlobScan(b *testing.B) {
	data := wideFixture(b)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := BuildIndex(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
