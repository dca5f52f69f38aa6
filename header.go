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
	"fmt"
	"time"

	"m4o.io/osmpbf/internal/pb"
	"m4o.io/osmpbf/model"
)

// SupportedFeatures is the set of required features this reader implements.
// A header whose required_features strays outside this set is rejected
// before any element is produced.
var SupportedFeatures = map[string]struct{}{
	"OsmSchema-V0.6":        {},
	"DenseNodes":            {},
	"Sort.Type_then_ID":     {},
	"HistoricalInformation": {},
}

// Header is the decoded contents of an OSMHeader blob.
type Header struct {
	model.Header
}

func (*Header) isBlock() {}

// CheckRequiredFeatures fails with ErrUnsupportedFeature if the header
// requires a feature outside SupportedFeatures.
func (h *Header) CheckRequiredFeatures() error {
	for _, f := range h.RequiredFeatures {
		if _, ok := SupportedFeatures[f]; !ok {
			return fmt.Errorf("%w: %q", ErrUnsupportedFeature, f)
		}
	}

	return nil
}

// parseOSMHeader unmarshals the OSM header from an array of protobuf encoded
// bytes.
func parseOSMHeader(buffer []byte) (*Header, error) {
	hb := &pb.HeaderBlock{}
	if err := hb.Unmarshal(buffer); err != nil {
		return nil, fmt.Errorf("unable to unmarshal header block: %w", err)
	}

	header := &Header{
		Header: model.Header{
			RequiredFeatures:                 hb.GetRequiredFeatures(),
			OptionalFeatures:                 hb.GetOptionalFeatures(),
			WritingProgram:                   hb.GetWritingprogram(),
			Source:                           hb.GetSource(),
			OsmosisReplicationBaseURL:        hb.GetOsmosisReplicationBaseUrl(),
			OsmosisReplicationSequenceNumber: hb.GetOsmosisReplicationSequenceNumber(),
		},
	}

	if hb.Bbox != nil {
		header.BoundingBox = &model.BoundingBox{
			Left:   model.ToDegrees(0, 1, hb.Bbox.GetLeft()),
			Right:  model.ToDegrees(0, 1, hb.Bbox.GetRight()),
			Top:    model.ToDegrees(0, 1, hb.Bbox.GetTop()),
			Bottom: model.ToDegrees(0, 1, hb.Bbox.GetBottom()),
		}
	}

	if hb.OsmosisReplicationTimestamp != nil {
		header.OsmosisReplicationTimestamp = time.Unix(*hb.OsmosisReplicationTimestamp, 0)
	}

	return header, nil
}
