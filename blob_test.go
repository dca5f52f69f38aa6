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
	"compress/zlib"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/protobuf/proto"

	"m4o.io/osmpbf/internal/encoder"
	"m4o.io/osmpbf/internal/pb"
	"m4o.io/osmpbf/model"
)

// decodeAll materializes every element of a serialized fixture.
func decodeAll(t *testing.T, data []byte) []model.Entity {
	t.Helper()

	r, err := NewElementReader(bytes.NewReader(data))
	require.NoError(t, err)

	var entities []model.Entity

	require.NoError(t, r.ForEach(func(e Element) error {
		entities = append(entities, Copy(e))

		return nil
	}))

	return entities
}

// Identical content must decode identically no matter which compression the
// writer picked.
func TestCompressionDispatch(t *testing.T) {
	want := decodeAll(t, writeFixture(t, encoder.RAW))
	require.Len(t, want, 6)

	compressions := map[string]encoder.BlobCompression{
		"zlib": encoder.ZLIB,
		"lzma": encoder.LZMA,
		"lz4":  encoder.LZ4,
		"zstd": encoder.ZSTD,
	}

	for name, c := range compressions {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, decodeAll(t, writeFixture(t, c)))
		})
	}
}

func frameEnvelope(t *testing.T, blob *pb.Blob) *Blob {
	t.Helper()

	var buf bytes.Buffer

	require.NoError(t, encoder.WriteFrame(&buf, "OSMData", blob.Marshal()))

	framed, err := NewBlobReader(bytes.NewReader(buf.Bytes())).Next()
	require.NoError(t, err)

	return framed
}

func TestBzip2Unsupported(t *testing.T) {
	blob := frameEnvelope(t, &pb.Blob{
		RawSize: proto.Int32(8),
		Data:    &pb.Blob_Bzip2Data{Bzip2Data: []byte("BZh91AY=")},
	})

	_, err := blob.ToPrimitiveBlock()
	assert.ErrorIs(t, err, ErrUnsupportedCompression)
}

func TestUnknownCompression(t *testing.T) {
	blob := frameEnvelope(t, &pb.Blob{RawSize: proto.Int32(8)})

	_, err := blob.ToPrimitiveBlock()
	assert.ErrorIs(t, err, ErrUnknownCompressionType)
}

func TestDecompressedSizeMismatch(t *testing.T) {
	block, err := encoder.EncodeBatch(fixtureBatches()[1])
	require.NoError(t, err)

	payload := block.Marshal()

	var compressed bytes.Buffer

	zw := zlib.NewWriter(&compressed)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	for name, declared := range map[string]int32{
		"short": int32(len(payload)) + 1,
		"long":  int32(len(payload)) - 1,
	} {
		t.Run(name, func(t *testing.T) {
			blob := frameEnvelope(t, &pb.Blob{
				RawSize: proto.Int32(declared),
				Data:    &pb.Blob_ZlibData{ZlibData: compressed.Bytes()},
			})

			_, err := blob.ToPrimitiveBlock()
			assert.ErrorIs(t, err, ErrSizeMismatch)
		})
	}
}

func TestMissingRawSize(t *testing.T) {
	blob := frameEnvelope(t, &pb.Blob{
		Data: &pb.Blob_ZlibData{ZlibData: []byte{0x78, 0x9c}},
	})

	_, err := blob.ToPrimitiveBlock()
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestRawSizeMismatchOnRaw(t *testing.T) {
	block, err := encoder.EncodeBatch(fixtureBatches()[0])
	require.NoError(t, err)

	payload := block.Marshal()

	blob := frameEnvelope(t, &pb.Blob{
		RawSize: proto.Int32(int32(len(payload)) + 3),
		Data:    &pb.Blob_Raw{Raw: payload},
	})

	_, err = blob.ToPrimitiveBlock()
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

// Unrecognized blob types are surfaced at the blob level but skipped by
// element iteration.
func TestUnknownBlobTypeSkipped(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, encoder.SaveHeader(&buf, fixtureHeader(), encoder.RAW))
	require.NoError(t, encoder.WriteFrame(&buf, "FancyIndex", (&pb.Blob{
		Data: &pb.Blob_Raw{Raw: []byte("opaque")},
	}).Marshal()))

	block, err := encoder.EncodeBatch(fixtureBatches()[1])
	require.NoError(t, err)
	require.NoError(t, encoder.WriteBlob(&buf, "OSMData", block, encoder.RAW))

	r, err := NewElementReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, []int64{201, 202}, elementIDs(t, r))

	// blob level still sees it
	br := NewBlobReader(bytes.NewReader(buf.Bytes()))

	_, err = br.Next() // header
	require.NoError(t, err)

	blob, err := br.Next()
	require.NoError(t, err)

	decoded, err := blob.Decode()
	require.NoError(t, err)

	unknown, ok := decoded.(*UnknownBlock)
	require.True(t, ok)
	assert.Equal(t, "FancyIndex", unknown.TypeName)
}
