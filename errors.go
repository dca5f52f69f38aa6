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

	"m4o.io/osmpbf/internal/decoder"
)

// Resource caps of the PBF container format.  Exceeding either is a decode
// error, not a recoverable condition.
const (
	// MaxBlobHeaderSize is the maximum length of a blob descriptor message.
	MaxBlobHeaderSize = 64 * 1024

	// MaxBlobSize is the maximum length of a blob payload, compressed or
	// uncompressed.
	MaxBlobSize = 32 * 1024 * 1024
)

var (
	// ErrBlobHeaderSize reports a descriptor length prefix outside (0, 64 KiB].
	ErrBlobHeaderSize = errors.New("osmpbf: blob header size out of range")

	// ErrBlobDataSize reports a payload size outside (0, 32 MiB].
	ErrBlobDataSize = errors.New("osmpbf: blob data size out of range")

	// ErrTruncated reports EOF in the middle of a frame.  A clean EOF
	// between frames is io.EOF, never ErrTruncated.
	ErrTruncated = errors.New("osmpbf: truncated stream")

	// ErrNotSeekable reports positioned access over a source that cannot
	// seek.
	ErrNotSeekable = errors.New("osmpbf: underlying reader is not seekable")

	// ErrMissingHeader reports a stream whose first blob is not an
	// OSMHeader.
	ErrMissingHeader = errors.New("osmpbf: stream does not start with an OSMHeader blob")

	// ErrUnsupportedFeature reports a header that requires a feature this
	// reader does not implement.
	ErrUnsupportedFeature = errors.New("osmpbf: unsupported required feature")

	// ErrMalformedBlock reports an invariant violation inside a primitive
	// block: a string-table index out of range, mismatched parallel arrays,
	// a keys_vals cursor overrun or underrun, or an unknown member type.
	ErrMalformedBlock = errors.New("osmpbf: malformed primitive block")

	// ErrUnknownCompressionType reports a blob with no recognized data
	// field.
	ErrUnknownCompressionType = decoder.ErrUnknownCompressionType

	// ErrUnsupportedCompression reports a compression algorithm that is
	// valid in the format but not compiled into this reader (bzip2).
	ErrUnsupportedCompression = decoder.ErrUnsupportedCompression

	// ErrSizeMismatch reports a payload that decompressed to a length other
	// than the declared raw_size.
	ErrSizeMismatch = decoder.ErrSizeMismatch
)
