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
	"errors"
	"io"
)

// BlobSpan locates one blob inside the file.  Offset is valid input to
// BlobReader.SeekTo, so an index built once allows random access to any
// blob later.
type BlobSpan struct {
	Offset int64
	Size   int64
	Type   BlobType
}

// BuildIndex scans every frame of r and records its span.  No payload is
// decompressed; indexing a file costs framing only.
func BuildIndex(r io.Reader) ([]BlobSpan, error) {
	br := NewBlobReader(r)

	var spans []BlobSpan

	for {
		blob, err := br.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return spans, nil
			}

			return nil, err
		}

		spans = append(spans, BlobSpan{
			Offset: blob.Offset(),
			Size:   blob.Size(),
			Type:   blob.Type(),
		})
	}
}
