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
	"fmt"
	"io"
	"iter"
	"os"

	"m4o.io/osmpbf/model"
)

// ElementReader streams the elements of one PBF source in file order.  The
// header blob is read and its required features checked at construction, so
// no element is ever produced from a file the reader cannot faithfully
// decode.  A reader is single-pass; open a new one to rescan.
type ElementReader struct {
	br     *BlobReader
	header *Header
	closer io.Closer
}

// NewElementReader wraps an io.Reader positioned at the start of a PBF
// stream.
func NewElementReader(r io.Reader) (*ElementReader, error) {
	br := NewBlobReader(r)

	blob, err := br.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty stream", ErrMissingHeader)
		}

		return nil, err
	}

	if blob.Type() != BlobTypeOSMHeader {
		return nil, fmt.Errorf("%w: first blob is %q", ErrMissingHeader, blob.Type())
	}

	header, err := blob.ToHeaderBlock()
	if err != nil {
		return nil, err
	}

	if err := header.CheckRequiredFeatures(); err != nil {
		return nil, err
	}

	return &ElementReader{br: br, header: header}, nil
}

// Open creates an ElementReader over the named file.  Close releases the
// file.
func Open(name string) (*ElementReader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	r, err := NewElementReader(f)
	if err != nil {
		f.Close()

		return nil, err
	}

	r.closer = f

	return r, nil
}

// Close releases the underlying file, if the reader owns one.
func (r *ElementReader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

// Header returns the file's header metadata.
func (r *ElementReader) Header() model.Header {
	return r.header.Header
}

// Blocks returns the file's primitive blocks in file order, decoding each
// lazily as the sequence advances.  OSMHeader and unrecognized blobs are
// skipped.
func (r *ElementReader) Blocks() iter.Seq2[*PrimitiveBlock, error] {
	return func(yield func(*PrimitiveBlock, error) bool) {
		for blob, err := range r.br.All() {
			if err != nil {
				yield(nil, err)

				return
			}

			if blob.Type() != BlobTypeOSMData {
				continue
			}

			block, err := blob.ToPrimitiveBlock()
			if !yield(block, err) || err != nil {
				return
			}
		}
	}
}

// Elements returns the file's elements as one flattened sequence in strict
// file order: blob order, then group order, then element order.  OSMHeader
// and unrecognized blobs are skipped.  The first decode error ends the
// sequence.
func (r *ElementReader) Elements() iter.Seq2[Element, error] {
	return func(yield func(Element, error) bool) {
		for block, err := range r.Blocks() {
			if err != nil {
				yield(nil, err)

				return
			}

			for e, err := range block.Elements() {
				if !yield(e, err) || err != nil {
					return
				}
			}
		}
	}
}

// ForEach invokes f once per element in file order, stopping at and
// returning the first decode or user error.  It is the internal-iteration
// form of Elements.
func (r *ElementReader) ForEach(f func(Element) error) error {
	for e, err := range r.Elements() {
		if err != nil {
			return err
		}

		if err := f(e); err != nil {
			return err
		}
	}

	return nil
}
