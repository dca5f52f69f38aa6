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
	"sort"
	"time"

	"golang.org/x/exp/constraints"
	"google.golang.org/protobuf/proto"

	"m4o.io/osmpbf/internal/pb"
	"m4o.io/osmpbf/model"
)

const (
	DateGranularityMs = 1000
	Granularity       = 100
	LatOffset         = 0
	LonOffset         = 0

	// EntityLimit is the max number of entities per written block.  Certain
	// programs (e.g. osmosis 0.38) limit the number of entities in each
	// block to 8000 when writing PBF format.
	EntityLimit = 8000
)

// EncodeBatch packs one batch of same-kind entities into a primitive block
// with a single group.  Nodes are written in the dense representation.
func EncodeBatch(entities []model.Entity) (*pb.PrimitiveBlock, error) {
	if len(entities) == 0 {
		return nil, fmt.Errorf("empty batch")
	}

	if len(entities) > EntityLimit {
		return nil, fmt.Errorf("batch of %d exceeds the %d entity limit", len(entities), EntityLimit)
	}

	return newBlockContext(entities).extractPrimitiveBlock(), nil
}

type blockContext struct {
	table    *Table
	entities []model.Entity
}

func newBlockContext(entities []model.Entity) *blockContext {
	strings := NewStrings()

	for _, e := range entities {
		extractTagsAndInfo(strings, e)

		if r, ok := e.(*model.Relation); ok {
			extractMemberRoles(strings, r)
		}
	}

	return &blockContext{
		table:    strings.CalcTable(),
		entities: entities,
	}
}

func (bc *blockContext) extractPrimitiveBlock() *pb.PrimitiveBlock {
	pg := &pb.PrimitiveGroup{}

	switch bc.entities[0].(type) {
	case *model.Node:
		pg.Dense = bc.extractDenseNodes()
	case *model.Way:
		pg.Ways = bc.extractWays()
	case *model.Relation:
		pg.Relations = bc.extractRelations()
	default:
		panic("unknown type")
	}

	return &pb.PrimitiveBlock{
		Stringtable: &pb.StringTable{
			S: bc.table.AsArray(),
		},
		Primitivegroup:  []*pb.PrimitiveGroup{pg},
		Granularity:     proto.Int32(Granularity),
		LatOffset:       proto.Int64(LatOffset),
		LonOffset:       proto.Int64(LonOffset),
		DateGranularity: proto.Int32(DateGranularityMs),
	}
}

func (bc *blockContext) extractDenseNodes() *pb.DenseNodes {
	dn := &pb.DenseNodes{}

	ids := make([]int64, 0, len(bc.entities))
	lats := make([]int64, 0, len(bc.entities))
	lons := make([]int64, 0, len(bc.entities))

	versions := make([]int32, 0, len(bc.entities))
	uids := make([]int32, 0, len(bc.entities))
	ts := make([]int64, 0, len(bc.entities))
	cs := make([]int64, 0, len(bc.entities))
	usids := make([]int32, 0, len(bc.entities))

	keyValIDs := make([]int32, 0)

	for _, e := range bc.entities {
		n, ok := e.(*model.Node)
		if !ok {
			continue
		}

		ids = append(ids, int64(n.ID))
		lats = append(lats, model.ToCoordinate(LatOffset, Granularity, n.Lat))
		lons = append(lons, model.ToCoordinate(LonOffset, Granularity, n.Lon))

		info := entityInfo(n)
		versions = append(versions, info.Version)
		uids = append(uids, int32(info.UID))
		ts = append(ts, fromTimestamp(DateGranularityMs, info.Timestamp))
		cs = append(cs, info.Changeset)
		usids = append(usids, bc.table.IndexOf(info.User))

		kIDs, vIDs := calcTagIDs(n.Tags, bc.table)
		for i, k := range kIDs {
			keyValIDs = append(keyValIDs, int32(k), int32(vIDs[i]))
		}

		keyValIDs = append(keyValIDs, 0)
	}

	dn.Id = calcDeltas(ids)
	dn.Denseinfo = &pb.DenseInfo{
		Version:   versions, // version is stored absolutely
		Timestamp: calcDeltas(ts),
		Changeset: calcDeltas(cs),
		Uid:       calcDeltas(uids),
		UserSid:   calcDeltas(usids),
	}
	dn.Lat = calcDeltas(lats)
	dn.Lon = calcDeltas(lons)
	dn.KeysVals = keyValIDs

	return dn
}

func (bc *blockContext) extractWays() []*pb.Way {
	var ways []*pb.Way

	for _, e := range bc.entities {
		w, ok := e.(*model.Way)
		if !ok {
			continue
		}

		refs := make([]int64, len(w.NodeIDs))
		for i, r := range w.NodeIDs {
			refs[i] = int64(r)
		}

		keyIDs, valIDs := calcTagIDs(w.Tags, bc.table)

		ways = append(ways, &pb.Way{
			Id:   proto.Int64(int64(w.ID)),
			Keys: keyIDs,
			Vals: valIDs,
			Info: toInfoPb(entityInfo(w), bc.table),
			Refs: calcDeltas(refs),
		})
	}

	return ways
}

func (bc *blockContext) extractRelations() []*pb.Relation {
	var relations []*pb.Relation

	for _, e := range bc.entities {
		r, ok := e.(*model.Relation)
		if !ok {
			continue
		}

		keyIDs, valIDs := calcTagIDs(r.Tags, bc.table)
		memids := make([]int64, len(r.Members))
		roleids := make([]int32, len(r.Members))
		types := make([]pb.Relation_MemberType, len(r.Members))

		for i, m := range r.Members {
			memids[i] = int64(m.ID)
			roleids[i] = bc.table.IndexOf(m.Role)
			types[i] = pb.Relation_MemberType(m.Type)
		}

		relations = append(relations, &pb.Relation{
			Id:       proto.Int64(int64(r.ID)),
			Keys:     keyIDs,
			Vals:     valIDs,
			Info:     toInfoPb(entityInfo(r), bc.table),
			RolesSid: roleids,
			Memids:   calcDeltas(memids),
			Types:    types,
		})
	}

	return relations
}

func extractMemberRoles(strings *Strings, r *model.Relation) {
	for _, m := range r.Members {
		strings.Add(m.Role)
	}
}

func extractTagsAndInfo(strings *Strings, e model.Entity) {
	for k, v := range e.GetTags() {
		strings.Add(k)
		strings.Add(v)
	}

	strings.Add(entityInfo(e).User)
}

// entityInfo returns the entity's info record, substituting defaults when
// the fixture carries none.
func entityInfo(e model.Entity) *model.Info {
	if info := e.GetInfo(); info != nil {
		return info
	}

	return &model.Info{Visible: true}
}

// calcDeltas calculates the delta-encoding of the values.
func calcDeltas[T interface {
	constraints.Integer | constraints.Float
}](values []T) []T {
	prev := T(0)
	deltas := make([]T, len(values))

	for i, id := range values {
		deltas[i] = id - prev
		prev = id
	}

	return deltas
}

func calcTagIDs(tags map[string]string, table *Table) (keyIDs []uint32, valIDs []uint32) {
	keys := make([]string, 0, len(tags))

	for k := range tags {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		keyIDs = append(keyIDs, uint32(table.IndexOf(k)))
		valIDs = append(valIDs, uint32(table.IndexOf(tags[k])))
	}

	return keyIDs, valIDs
}

func toInfoPb(info *model.Info, table *Table) *pb.Info {
	return &pb.Info{
		Version:   proto.Int32(info.Version),
		Timestamp: proto.Int64(fromTimestamp(DateGranularityMs, info.Timestamp)),
		Changeset: proto.Int64(info.Changeset),
		Uid:       proto.Int32(int32(info.UID)),
		UserSid:   proto.Uint32(uint32(table.IndexOf(info.User))),
		Visible:   proto.Bool(info.Visible),
	}
}

// fromTimestamp converts a timestamp into raw units of granularity
// milliseconds.
func fromTimestamp(granularity int32, timestamp time.Time) int64 {
	return timestamp.UnixMilli() / int64(granularity)
}
