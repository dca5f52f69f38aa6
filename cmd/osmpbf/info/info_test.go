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

package info

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmpbf/internal/encoder"
	"m4o.io/osmpbf/model"
)

func fixture(t *testing.T) ([]byte, model.Header) {
	t.Helper()

	ts, _ := time.Parse(time.RFC3339, "2014-03-24T21:55:02Z")

	hdr := model.Header{
		BoundingBox: &model.BoundingBox{
			Top:    51.69344,
			Left:   -0.511482,
			Bottom: 51.28554,
			Right:  0.335437,
		},
		RequiredFeatures:            []string{"OsmSchema-V0.6", "DenseNodes"},
		WritingProgram:              "osmpbf-fixture",
		OsmosisReplicationTimestamp: ts,
	}

	info := &model.Info{Version: 1, User: "alice", Visible: true, Timestamp: ts}

	batches := [][]model.Entity{
		{
			&model.Node{ID: 1, Lat: 51.5, Lon: -0.1, Tags: map[string]string{}, Info: info},
			&model.Node{ID: 2, Lat: 51.6, Lon: -0.2, Tags: map[string]string{}, Info: info},
		},
		{
			&model.Way{ID: 3, NodeIDs: []model.ID{1, 2}, Tags: map[string]string{}, Info: info},
		},
	}

	var buf bytes.Buffer

	require.NoError(t, encoder.Write(&buf, hdr, batches, encoder.ZLIB))

	return buf.Bytes(), hdr
}

func TestRunInfo(t *testing.T) {
	data, hdr := fixture(t)

	info := runInfo(bytes.NewReader(data), 2, false)

	require.NotNil(t, info.BoundingBox)
	assert.True(t, info.BoundingBox.EqualWithin(hdr.BoundingBox, model.E6))
	assert.Equal(t, hdr.RequiredFeatures, info.RequiredFeatures)
	assert.Equal(t, hdr.WritingProgram, info.WritingProgram)
	assert.Equal(t, int64(0), info.NodeCount)
	assert.Equal(t, int64(0), info.WayCount)
}

func TestRunInfoExtended(t *testing.T) {
	data, _ := fixture(t)

	info := runInfo(bytes.NewReader(data), 2, true)

	assert.Equal(t, int64(2), info.NodeCount)
	assert.Equal(t, int64(1), info.WayCount)
	assert.Equal(t, int64(0), info.RelationCount)
}

func TestRenderJSON(t *testing.T) {
	data, hdr := fixture(t)

	eh := runInfo(bytes.NewReader(data), 2, true)

	buf := &bytes.Buffer{}

	saved := out

	defer func() { out = saved }()

	out = buf

	renderJSON(eh, true)

	info := &extendedHeader{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), info))

	assert.True(t, info.BoundingBox.EqualWithin(hdr.BoundingBox, model.E6))
	assert.Equal(t, int64(2), info.NodeCount)
	assert.Equal(t, int64(1), info.WayCount)
}

func TestRenderText(t *testing.T) {
	ts, _ := time.Parse(time.RFC3339, "2014-03-24T21:55:02Z")
	eh := &extendedHeader{
		Header: model.Header{
			RequiredFeatures:            []string{"OsmSchema-V0.6", "DenseNodes"},
			OptionalFeatures:            []string{"Sort.Type_then_ID"},
			WritingProgram:              "osmpbf-fixture",
			Source:                      "synthetic",
			OsmosisReplicationTimestamp: ts,
			OsmosisReplicationBaseURL:   "https://planet.openstreetmap.org/replication/minute",
		},
		NodeCount:     2729006,
		WayCount:      459055,
		RelationCount: 12833,
	}

	buf := &bytes.Buffer{}

	saved := out

	defer func() { out = saved }()

	out = buf

	renderTxt(eh, true)

	assert.Equal(t, `RequiredFeatures: OsmSchema-V0.6, DenseNodes
OptionalFeatures: Sort.Type_then_ID
WritingProgram: osmpbf-fixture
Source: synthetic
OsmosisReplicationTimestamp: 2014-03-24T21:55:02Z
OsmosisReplicationSequenceNumber: 0
OsmosisReplicationBaseURL: https://planet.openstreetmap.org/replication/minute
NodeCount: 2,729,006
WayCount: 459,055
RelationCount: 12,833
`, buf.String())
}
