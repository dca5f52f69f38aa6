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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmpbf/internal/encoder"
	"m4o.io/osmpbf/internal/pb"
	"m4o.io/osmpbf/model"
)

// wideFixture produces a file with many blobs so the parallel path actually
// fans out: 8 dense node blobs of 50 nodes, 4 way blobs, 2 relation blobs.
func wideFixture(tb testing.TB) []byte {
	tb.Helper()

	info := fixtureInfo()

	var batches [][]model.Entity

	var nodeID model.ID

	for b := 0; b < 8; b++ {
		batch := make([]model.Entity, 0, 50)

		for i := 0; i < 50; i++ {
			nodeID++
			batch = append(batch, &model.Node{
				ID:   nodeID,
				Lat:  model.Degrees(float64(nodeID) * 0.0001),
				Lon:  model.Degrees(float64(nodeID) * -0.0001),
				Tags: map[string]string{"ref": fmt.Sprint(nodeID)},
				Info: info,
			})
		}

		batches = append(batches, batch)
	}

	wayID := model.ID(10_000)

	for b := 0; b < 4; b++ {
		batch := make([]model.Entity, 0, 10)

		for i := 0; i < 10; i++ {
			wayID++
			batch = append(batch, &model.Way{
				ID:      wayID,
				NodeIDs: []model.ID{1, 2, 3},
				Tags:    map[string]string{},
				Info:    info,
			})
		}

		batches = append(batches, batch)
	}

	relID := model.ID(20_000)

	for b := 0; b < 2; b++ {
		relID++
		batches = append(batches, []model.Entity{&model.Relation{
			ID:      relID,
			Members: []model.Member{{ID: 1, Type: model.NODE, Role: "stop"}},
			Tags:    map[string]string{},
			Info:    info,
		}})
	}

	var buf bytes.Buffer

	require.NoError(tb, encoder.Write(&buf, fixtureHeader(), batches, encoder.ZLIB))

	return buf.Bytes()
}

type kindCounts struct {
	nodes     int64
	ways      int64
	relations int64
	idSum     int64
}

func countKinds(e Element) kindCounts {
	c := kindCounts{idSum: e.ID()}

	switch e.(type) {
	case *Node, *DenseNode:
		c.nodes = 1
	case *Way:
		c.ways = 1
	case *Relation:
		c.relations = 1
	}

	return c
}

func addKinds(a, b kindCounts) kindCounts {
	return kindCounts{
		nodes:     a.nodes + b.nodes,
		ways:      a.ways + b.ways,
		relations: a.relations + b.relations,
		idSum:     a.idSum + b.idSum,
	}
}

// The parallel reduction must equal the sequential left fold for an
// associative combine with identity zero.
func TestParMapReduceEqualsSequential(t *testing.T) {
	data := wideFixture(t)

	seq, err := NewElementReader(bytes.NewReader(data))
	require.NoError(t, err)

	var want kindCounts

	require.NoError(t, seq.ForEach(func(e Element) error {
		want = addKinds(want, countKinds(e))

		return nil
	}))

	require.Equal(t, int64(400), want.nodes)
	require.Equal(t, int64(40), want.ways)
	require.Equal(t, int64(2), want.relations)

	for _, ncpu := range []uint16{1, 2, 4, 8} {
		t.Run(fmt.Sprintf("ncpu=%d", ncpu), func(t *testing.T) {
			par, err := NewElementReader(bytes.NewReader(data))
			require.NoError(t, err)

			got, err := ParMapReduce(context.Background(), par, countKinds,
				kindCounts{}, addKinds, WithNCpus(ncpu))
			require.NoError(t, err)

			assert.Equal(t, want, got)
		})
	}
}

// The first error in blob file order wins, even when later blobs decode
// fine.
func TestParMapReduceFirstError(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, encoder.SaveHeader(&buf, fixtureHeader(), encoder.ZLIB))

	block, err := encoder.EncodeBatch(fixtureBatches()[0])
	require.NoError(t, err)
	require.NoError(t, encoder.WriteBlob(&buf, "OSMData", block, encoder.ZLIB))

	// corrupt blob in the middle
	junk := &pb.Blob{
		RawSize: proto32(64),
		Data:    &pb.Blob_ZlibData{ZlibData: []byte("garbage")},
	}
	require.NoError(t, encoder.WriteFrame(&buf, "OSMData", junk.Marshal()))

	block, err = encoder.EncodeBatch(fixtureBatches()[1])
	require.NoError(t, err)
	require.NoError(t, encoder.WriteBlob(&buf, "OSMData", block, encoder.ZLIB))

	r, err := NewElementReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	_, err = ParMapReduce(context.Background(), r, countWays, 0,
		func(a, b int) int { return a + b }, WithNCpus(4))
	assert.Error(t, err)
}

func proto32(v int32) *int32 { return &v }

func TestParMapReduceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := NewElementReader(bytes.NewReader(wideFixture(t)))
	require.NoError(t, err)

	_, err = ParMapReduce(ctx, r, countWays, 0, func(a, b int) int { return a + b })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParMapReduceQueueDepth(t *testing.T) {
	r, err := NewElementReader(bytes.NewReader(wideFixture(t)))
	require.NoError(t, err)

	got, err := ParMapReduce(context.Background(), r, countKinds, kindCounts{},
		addKinds, WithNCpus(2), WithQueueDepth(1))
	require.NoError(t, err)

	assert.Equal(t, int64(400), got.nodes)
}
