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
	"m4o.io/osmpbf/internal/core"
	"m4o.io/osmpbf/internal/decoder"
	"m4o.io/osmpbf/internal/pb"
)

// BlobType is the descriptor's content type tag.
type BlobType string

const (
	// BlobTypeOSMHeader tags a blob carrying a HeaderBlock.
	BlobTypeOSMHeader BlobType = "OSMHeader"

	// BlobTypeOSMData tags a blob carrying a PrimitiveBlock.
	BlobTypeOSMData BlobType = "OSMData"
)

// Blob is one framed unit of the file: the descriptor plus the still
// compressed payload.  Decoding is deferred until one of the To* methods is
// called.
type Blob struct {
	header *pb.BlobHeader
	data   *pb.Blob
	offset int64
	size   int64
}

// Type returns the descriptor's type tag.  Readers skip types they do not
// recognize.
func (b *Blob) Type() BlobType {
	return BlobType(b.header.GetType())
}

// Offset is the file offset the frame started at; it is valid input to
// BlobReader.SeekTo.
func (b *Blob) Offset() int64 {
	return b.offset
}

// Size is the total frame length in bytes, length prefix included.
func (b *Blob) Size() int64 {
	return b.size
}

// Block is a decoded blob payload: *Header, *PrimitiveBlock, or
// *UnknownBlock.
type Block interface {
	isBlock()
}

// UnknownBlock stands in for a blob type this reader does not recognize.
// Element iteration skips these.
type UnknownBlock struct {
	TypeName string
}

func (*UnknownBlock) isBlock() {}

// Decode decompresses the payload and parses it according to the blob type.
func (b *Blob) Decode() (Block, error) {
	switch b.Type() {
	case BlobTypeOSMHeader:
		return b.ToHeaderBlock()
	case BlobTypeOSMData:
		return b.ToPrimitiveBlock()
	default:
		return &UnknownBlock{TypeName: string(b.Type())}, nil
	}
}

// ToHeaderBlock decompresses and parses the payload as a HeaderBlock.
func (b *Blob) ToHeaderBlock() (*Header, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	unpacked, err := decoder.Unpack(buf, b.data, MaxBlobSize)
	if err != nil {
		return nil, err
	}

	return parseOSMHeader(unpacked)
}

// ToPrimitiveBlock decompresses and parses the payload as a PrimitiveBlock.
func (b *Blob) ToPrimitiveBlock() (*PrimitiveBlock, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	unpacked, err := decoder.Unpack(buf, b.data, MaxBlobSize)
	if err != nil {
		return nil, err
	}

	return parsePrimitiveBlock(unpacked)
}
