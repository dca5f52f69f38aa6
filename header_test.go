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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmpbf/internal/encoder"
	"m4o.io/osmpbf/model"
)

func TestHeaderMetadata(t *testing.T) {
	want := fixtureHeader()

	r, err := NewElementReader(bytes.NewReader(writeFixture(t, encoder.ZLIB)))
	require.NoError(t, err)

	got := r.Header()

	require.NotNil(t, got.BoundingBox)
	assert.True(t, got.BoundingBox.EqualWithin(want.BoundingBox, model.E7))
	assert.Equal(t, want.RequiredFeatures, got.RequiredFeatures)
	assert.Equal(t, want.OptionalFeatures, got.OptionalFeatures)
	assert.Equal(t, want.WritingProgram, got.WritingProgram)
	assert.Equal(t, want.Source, got.Source)
	assert.Equal(t, want.OsmosisReplicationTimestamp.Unix(), got.OsmosisReplicationTimestamp.Unix())
	assert.Equal(t, want.OsmosisReplicationSequenceNumber, got.OsmosisReplicationSequenceNumber)
	assert.Equal(t, want.OsmosisReplicationBaseURL, got.OsmosisReplicationBaseURL)
}

// A header that requires a feature this reader does not implement is
// rejected before any element is produced.
func TestRequiredFeatureRejection(t *testing.T) {
	hdr := fixtureHeader()
	hdr.RequiredFeatures = append(hdr.RequiredFeatures, "Mercator")

	var buf bytes.Buffer

	require.NoError(t, encoder.Write(&buf, hdr, fixtureBatches(), encoder.ZLIB))

	_, err := NewElementReader(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrUnsupportedFeature)
	assert.ErrorContains(t, err, "Mercator")

	_, err = NewDecoder(context.Background(), bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrUnsupportedFeature)
}

func TestRecognizedRequiredFeatures(t *testing.T) {
	hdr := fixtureHeader()
	hdr.RequiredFeatures = []string{"OsmSchema-V0.6", "DenseNodes", "Sort.Type_then_ID"}

	var buf bytes.Buffer

	require.NoError(t, encoder.Write(&buf, hdr, fixtureBatches(), encoder.RAW))

	_, err := NewElementReader(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
}

func TestMissingHeader(t *testing.T) {
	block, err := encoder.EncodeBatch(fixtureBatches()[0])
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, encoder.WriteBlob(&buf, "OSMData", block, encoder.RAW))

	_, err = NewElementReader(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrMissingHeader)

	_, err = NewElementReader(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrMissingHeader)
}
