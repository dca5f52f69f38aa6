// Copyright 2025 the original author or authors.
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

package encoder

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"

	"m4o.io/osmpbf/internal/pb"
	"m4o.io/osmpbf/model"
)

// SaveHeader writes hdr as the stream's OSMHeader blob.
func SaveHeader(wrtr io.Writer, hdr model.Header, compression BlobCompression) error {
	hb := &pb.HeaderBlock{
		RequiredFeatures: hdr.RequiredFeatures,
		OptionalFeatures: hdr.OptionalFeatures,
	}

	if bbox := hdr.BoundingBox; bbox != nil {
		hb.Bbox = &pb.HeaderBBox{
			Top:    proto.Int64(model.ToCoordinate(0, 1, bbox.Top)),
			Left:   proto.Int64(model.ToCoordinate(0, 1, bbox.Left)),
			Bottom: proto.Int64(model.ToCoordinate(0, 1, bbox.Bottom)),
			Right:  proto.Int64(model.ToCoordinate(0, 1, bbox.Right)),
		}
	}

	if hdr.WritingProgram != "" {
		hb.Writingprogram = proto.String(hdr.WritingProgram)
	}

	if hdr.Source != "" {
		hb.Source = proto.String(hdr.Source)
	}

	if !hdr.OsmosisReplicationTimestamp.IsZero() {
		hb.OsmosisReplicationTimestamp = proto.Int64(hdr.OsmosisReplicationTimestamp.Unix())
	}

	if hdr.OsmosisReplicationSequenceNumber != 0 {
		hb.OsmosisReplicationSequenceNumber = proto.Int64(hdr.OsmosisReplicationSequenceNumber)
	}

	if hdr.OsmosisReplicationBaseURL != "" {
		hb.OsmosisReplicationBaseUrl = proto.String(hdr.OsmosisReplicationBaseURL)
	}

	if err := WriteBlob(wrtr, "OSMHeader", hb, compression); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}

	return nil
}

// Write produces a complete PBF stream: the header blob followed by one
// OSMData blob per batch.  Each batch must hold entities of a single kind.
func Write(wrtr io.Writer, hdr model.Header, batches [][]model.Entity, compression BlobCompression) error {
	if err := SaveHeader(wrtr, hdr, compression); err != nil {
		return err
	}

	for _, batch := range batches {
		block, err := EncodeBatch(batch)
		if err != nil {
			return err
		}

		if err := WriteBlob(wrtr, "OSMData", block, compression); err != nil {
			return fmt.Errorf("could not write block: %w", err)
		}
	}

	return nil
}
