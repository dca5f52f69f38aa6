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

// Package decoder holds the blob payload unpacker shared by the sequential
// and parallel decode paths.
package decoder

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"

	"m4o.io/osmpbf/internal/core"
	"m4o.io/osmpbf/internal/pb"
)

var (
	ErrUnknownCompressionType = errors.New("osmpbf: unknown blob compression type")
	ErrUnsupportedCompression = errors.New("osmpbf: unsupported blob compression")
	ErrSizeMismatch           = errors.New("osmpbf: decompressed size mismatch")
)

// Unpack uncompresses the blob payload into buf and returns the message
// bytes.  The returned slice aliases buf and is only valid until the buffer
// is reset or closed.
//
// This is kept separate from blob reading so that decompression of blobs can
// be performed concurrently.
func Unpack(buf *core.PooledBuffer, blob *pb.Blob, maxSize int) ([]byte, error) {
	var factory func(blob *pb.Blob) (io.Reader, error)

	switch blob.Data.(type) {
	case *pb.Blob_Raw:
		raw := blob.GetRaw()
		if blob.RawSize != nil && int(blob.GetRawSize()) != len(raw) {
			return nil, fmt.Errorf("%w: raw blob data size %d but declared %d",
				ErrSizeMismatch, len(raw), blob.GetRawSize())
		}

		return raw, nil
	case *pb.Blob_ZlibData:
		factory = func(b *pb.Blob) (io.Reader, error) {
			return zlib.NewReader(bytes.NewReader(b.GetZlibData()))
		}
	case *pb.Blob_LzmaData:
		factory = func(b *pb.Blob) (io.Reader, error) {
			return lzma.NewReader(bytes.NewReader(b.GetLzmaData()))
		}
	case *pb.Blob_Lz4Data:
		factory = func(b *pb.Blob) (io.Reader, error) {
			return lz4.NewReader(bytes.NewReader(b.GetLz4Data())), nil
		}
	case *pb.Blob_ZstdData:
		factory = func(b *pb.Blob) (io.Reader, error) {
			return zstd.NewReader(bytes.NewReader(b.GetZstdData()))
		}
	case *pb.Blob_Bzip2Data:
		return nil, fmt.Errorf("%w: bzip2", ErrUnsupportedCompression)
	default:
		return nil, ErrUnknownCompressionType
	}

	// raw_size is required for compressed payloads and bounds the output.
	if blob.RawSize == nil {
		return nil, fmt.Errorf("%w: compressed blob missing raw_size", ErrSizeMismatch)
	}

	rawSize := int(blob.GetRawSize())
	if rawSize <= 0 || rawSize > maxSize {
		return nil, fmt.Errorf("%w: declared raw_size %d", ErrSizeMismatch, rawSize)
	}

	rawBufferSize := rawSize + bytes.MinRead
	if rawBufferSize > buf.Cap() {
		buf.Grow(rawBufferSize)
	}

	rdr, err := factory(blob)
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w", err)
	}

	// Read one byte past the declared size so payloads that decompress long
	// are caught, not silently clipped.
	if n, err := buf.ReadFrom(io.LimitReader(rdr, int64(rawSize)+1)); err != nil {
		return nil, fmt.Errorf("unpacker read error: %w", err)
	} else if n != int64(rawSize) {
		return nil, fmt.Errorf("%w: raw blob data size %d but expected %d",
			ErrSizeMismatch, n, rawSize)
	}

	return buf.Bytes(), nil
}
