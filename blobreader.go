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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"

	"m4o.io/osmpbf/internal/core"
	"m4o.io/osmpbf/internal/pb"
)

// BlobReader scans a byte stream as a sequence of framed blobs without
// decompressing any payload.  A clean EOF between frames ends iteration with
// io.EOF; EOF inside a frame is ErrTruncated.  After any error the reader is
// latched and keeps returning that error.
type BlobReader struct {
	r      io.Reader
	offset int64
	err    error
}

// NewBlobReader creates a BlobReader positioned at offset zero of r.
func NewBlobReader(r io.Reader) *BlobReader {
	return &BlobReader{r: r}
}

// Offset is the file offset of the next frame.
func (br *BlobReader) Offset() int64 {
	return br.offset
}

// SeekTo repositions the reader at a previously recorded frame offset and
// clears any latched error.  The underlying reader must be an io.Seeker.
func (br *BlobReader) SeekTo(offset int64) error {
	s, ok := br.r.(io.Seeker)
	if !ok {
		return ErrNotSeekable
	}

	if _, err := s.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("osmpbf: seek to %d: %w", offset, err)
	}

	br.offset = offset
	br.err = nil

	return nil
}

// Next reads the next frame: the 4-byte big-endian descriptor length, the
// descriptor message and the raw payload message.  The payload is parsed as
// a Blob envelope but not decompressed.
func (br *BlobReader) Next() (*Blob, error) {
	if br.err != nil {
		return nil, br.err
	}

	blob, err := br.next()
	if err != nil {
		br.err = err

		return nil, err
	}

	return blob, nil
}

func (br *BlobReader) next() (*Blob, error) {
	start := br.offset

	var prefix [4]byte

	if _, err := io.ReadFull(br.r, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: EOF inside frame length at offset %d", ErrTruncated, start)
		}

		return nil, fmt.Errorf("osmpbf: error reading frame length: %w", err)
	}

	size := binary.BigEndian.Uint32(prefix[:])
	if size == 0 || size > MaxBlobHeaderSize {
		return nil, fmt.Errorf("%w: %d at offset %d", ErrBlobHeaderSize, size, start)
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	header := &pb.BlobHeader{}
	if err := br.readMessage(buf, int64(size), header); err != nil {
		return nil, fmt.Errorf("error reading blob header: %w", err)
	}

	datasize := header.GetDatasize()
	if datasize <= 0 || datasize > MaxBlobSize {
		return nil, fmt.Errorf("%w: %d at offset %d", ErrBlobDataSize, datasize, start)
	}

	buf.Reset()

	data := &pb.Blob{}
	if err := br.readMessage(buf, int64(datasize), data); err != nil {
		return nil, fmt.Errorf("error reading blob: %w", err)
	}

	size64 := 4 + int64(size) + int64(datasize)
	br.offset = start + size64

	return &Blob{header: header, data: data, offset: start, size: size64}, nil
}

// readMessage copies size bytes off the stream into buf and unmarshals them
// into msg.
func (br *BlobReader) readMessage(buf *core.PooledBuffer, size int64, msg interface{ Unmarshal([]byte) error }) error {
	if n, err := io.CopyN(buf, br.r, size); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: expected %d bytes, got %d", ErrTruncated, size, n)
		}

		return err
	}

	return msg.Unmarshal(buf.Bytes())
}

// All returns the frames as a push iterator.  Iteration ends silently on a
// clean EOF; any other error is yielded once with a nil blob.
func (br *BlobReader) All() iter.Seq2[*Blob, error] {
	return func(yield func(*Blob, error) bool) {
		for {
			blob, err := br.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(nil, err)
				}

				return
			}

			if !yield(blob, nil) {
				return
			}
		}
	}
}
