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
	"iter"

	"m4o.io/osmpbf/internal/pb"
	"m4o.io/osmpbf/model"
)

// PrimitiveBlock is the decoded payload of an OSMData blob.  It snapshots
// the block-scoped string table and coordinate parameters; everything in it
// is immutable once built, so a block may be shared across goroutines.
// Element decoding stays lazy: building the block parses the protobuf
// columns but touches no element.
type PrimitiveBlock struct {
	strings         []string
	granularity     int32
	latOffset       int64
	lonOffset       int64
	dateGranularity int32
	groups          []*pb.PrimitiveGroup
}

func (*PrimitiveBlock) isBlock() {}

// parsePrimitiveBlock unmarshals a primitive block and snapshots its
// context.
func parsePrimitiveBlock(buf []byte) (*PrimitiveBlock, error) {
	blk := &pb.PrimitiveBlock{}
	if err := blk.Unmarshal(buf); err != nil {
		return nil, fmt.Errorf("unable to unmarshal primitive block: %w", err)
	}

	return &PrimitiveBlock{
		strings:         blk.GetStringtable().GetS(),
		granularity:     blk.GetGranularity(),
		latOffset:       blk.GetLatOffset(),
		lonOffset:       blk.GetLonOffset(),
		dateGranularity: blk.GetDateGranularity(),
		groups:          blk.GetPrimitivegroup(),
	}, nil
}

// Granularity is the block's nanodegrees-per-unit coordinate resolution.
func (b *PrimitiveBlock) Granularity() int32 { return b.granularity }

// LatOffset is the block's latitude offset in nanodegrees.
func (b *PrimitiveBlock) LatOffset() int64 { return b.latOffset }

// LonOffset is the block's longitude offset in nanodegrees.
func (b *PrimitiveBlock) LonOffset() int64 { return b.lonOffset }

// DateGranularity is the block's milliseconds-per-unit timestamp resolution.
func (b *PrimitiveBlock) DateGranularity() int32 { return b.dateGranularity }

// StringCount is the number of entries in the block's string table.
func (b *PrimitiveBlock) StringCount() int { return len(b.strings) }

// String resolves a string-table index, bounds-checked.
func (b *PrimitiveBlock) String(i int) (string, error) {
	if i < 0 || i >= len(b.strings) {
		return "", fmt.Errorf("%w: string index %d out of range [0, %d)",
			ErrMalformedBlock, i, len(b.strings))
	}

	return b.strings[i], nil
}

// Lat converts a raw latitude into degrees using the block context.
func (b *PrimitiveBlock) Lat(raw int64) model.Degrees {
	return model.ToDegrees(b.latOffset, b.granularity, raw)
}

// Lon converts a raw longitude into degrees using the block context.
func (b *PrimitiveBlock) Lon(raw int64) model.Degrees {
	return model.ToDegrees(b.lonOffset, b.granularity, raw)
}

// NanoLat converts a raw latitude into nanodegrees.
func (b *PrimitiveBlock) NanoLat(raw int64) int64 {
	return b.latOffset + int64(b.granularity)*raw
}

// NanoLon converts a raw longitude into nanodegrees.
func (b *PrimitiveBlock) NanoLon(raw int64) int64 {
	return b.lonOffset + int64(b.granularity)*raw
}

// millis converts a raw timestamp into epoch milliseconds.
func (b *PrimitiveBlock) millis(raw int64) int64 {
	return int64(b.dateGranularity) * raw
}

// Groups returns the block's primitive groups in file order.
func (b *PrimitiveBlock) Groups() iter.Seq[Group] {
	return func(yield func(Group) bool) {
		for _, pg := range b.groups {
			if !yield(Group{block: b, pg: pg}) {
				return
			}
		}
	}
}

// Elements flattens the block's groups into one element sequence; within a
// group the order is nodes, dense nodes, ways, relations.
func (b *PrimitiveBlock) Elements() iter.Seq2[Element, error] {
	return func(yield func(Element, error) bool) {
		for group := range b.Groups() {
			if !yieldGroup(group, yield) {
				return
			}
		}
	}
}

func yieldGroup(g Group, yield func(Element, error) bool) bool {
	for n, err := range g.Nodes() {
		if !yield(n, err) || err != nil {
			return false
		}
	}

	for n, err := range g.DenseNodes() {
		if !yield(n, err) || err != nil {
			return false
		}
	}

	for w, err := range g.Ways() {
		if !yield(w, err) || err != nil {
			return false
		}
	}

	for r, err := range g.Relations() {
		if !yield(r, err) || err != nil {
			return false
		}
	}

	return true
}

// Group is one homogeneous primitive group bound to its parent block.
type Group struct {
	block *PrimitiveBlock
	pg    *pb.PrimitiveGroup
}

// checkTags validates the parallel tag index arrays against the string
// table.
func (b *PrimitiveBlock) checkTags(keys, vals []uint32) error {
	if len(keys) != len(vals) {
		return fmt.Errorf("%w: %d keys but %d vals", ErrMalformedBlock, len(keys), len(vals))
	}

	for i := range keys {
		if int(keys[i]) >= len(b.strings) || int(vals[i]) >= len(b.strings) {
			return fmt.Errorf("%w: tag string index out of range", ErrMalformedBlock)
		}
	}

	return nil
}

// checkInfo validates the user string index of a non-dense info record.
func (b *PrimitiveBlock) checkInfo(info *pb.Info) error {
	if info != nil && info.UserSid != nil && int(info.GetUserSid()) >= len(b.strings) {
		return fmt.Errorf("%w: user string index out of range", ErrMalformedBlock)
	}

	return nil
}

// Nodes iterates the group's plain nodes.
func (g Group) Nodes() iter.Seq2[*Node, error] {
	return func(yield func(*Node, error) bool) {
		for _, n := range g.pg.GetNodes() {
			if err := g.block.checkTags(n.GetKeys(), n.GetVals()); err != nil {
				yield(nil, err)

				return
			}

			if err := g.block.checkInfo(n.GetInfo()); err != nil {
				yield(nil, err)

				return
			}

			if !yield(&Node{block: g.block, n: n}, nil) {
				return
			}
		}
	}
}

// DenseNodes iterates the group's dense nodes, maintaining the running
// id/lat/lon totals and the shared keys_vals cursor.  Advancing the iterator
// does exactly the work of the next node; callers that stop early pay only
// for what they consumed.
func (g Group) DenseNodes() iter.Seq2[*DenseNode, error] {
	return func(yield func(*DenseNode, error) bool) {
		dn := g.pg.GetDense()
		if dn == nil {
			return
		}

		ids := dn.GetId()
		lats := dn.GetLat()
		lons := dn.GetLon()

		if len(lats) != len(ids) || len(lons) != len(ids) {
			yield(nil, fmt.Errorf("%w: dense nodes have %d ids, %d lats, %d lons",
				ErrMalformedBlock, len(ids), len(lats), len(lons)))

			return
		}

		dic, err := g.block.newDenseInfoContext(dn.GetDenseinfo(), len(ids))
		if err != nil {
			yield(nil, err)

			return
		}

		kv := dn.GetKeysVals()

		var id, lat, lon int64

		var kvPos int

		for i := range ids {
			id += ids[i]
			lat += lats[i]
			lon += lons[i]

			var pairs []int32

			if len(kv) > 0 {
				start := kvPos

				for {
					if kvPos >= len(kv) {
						yield(nil, fmt.Errorf("%w: keys_vals not terminated for node %d",
							ErrMalformedBlock, id))

						return
					}

					if kv[kvPos] == 0 {
						break
					}

					if kvPos+1 >= len(kv) {
						yield(nil, fmt.Errorf("%w: dangling key in keys_vals for node %d",
							ErrMalformedBlock, id))

						return
					}

					if int(kv[kvPos]) >= len(g.block.strings) || int(kv[kvPos+1]) >= len(g.block.strings) ||
						kv[kvPos] < 0 || kv[kvPos+1] < 0 {
						yield(nil, fmt.Errorf("%w: tag string index out of range", ErrMalformedBlock))

						return
					}

					kvPos += 2
				}

				pairs = kv[start:kvPos]
				kvPos++ // consume the 0 sentinel
			}

			node := &DenseNode{
				block:  g.block,
				id:     id,
				rawLat: lat,
				rawLon: lon,
				kv:     pairs,
			}

			if dic != nil {
				info, err := dic.next(i)
				if err != nil {
					yield(nil, err)

					return
				}

				node.info = info
				node.hasInfo = true
			}

			if !yield(node, nil) {
				return
			}
		}

		if len(kv) > 0 && kvPos != len(kv) {
			yield(nil, fmt.Errorf("%w: %d trailing keys_vals entries after last dense node",
				ErrMalformedBlock, len(kv)-kvPos))
		}
	}
}

// Ways iterates the group's ways.
func (g Group) Ways() iter.Seq2[*Way, error] {
	return func(yield func(*Way, error) bool) {
		for _, w := range g.pg.GetWays() {
			if err := g.block.checkTags(w.GetKeys(), w.GetVals()); err != nil {
				yield(nil, err)

				return
			}

			if err := g.block.checkInfo(w.GetInfo()); err != nil {
				yield(nil, err)

				return
			}

			// Optional way-node location columns must pair up with refs.
			if n := len(w.GetLat()); n != 0 && n != len(w.GetRefs()) {
				yield(nil, fmt.Errorf("%w: way %d has %d refs but %d lats",
					ErrMalformedBlock, w.GetId(), len(w.GetRefs()), n))

				return
			}

			if n := len(w.GetLon()); n != len(w.GetLat()) {
				yield(nil, fmt.Errorf("%w: way %d has %d lats but %d lons",
					ErrMalformedBlock, w.GetId(), len(w.GetLat()), n))

				return
			}

			if !yield(&Way{block: g.block, w: w}, nil) {
				return
			}
		}
	}
}

// Relations iterates the group's relations.
func (g Group) Relations() iter.Seq2[*Relation, error] {
	return func(yield func(*Relation, error) bool) {
		for _, r := range g.pg.GetRelations() {
			if err := g.block.checkTags(r.GetKeys(), r.GetVals()); err != nil {
				yield(nil, err)

				return
			}

			if err := g.block.checkInfo(r.GetInfo()); err != nil {
				yield(nil, err)

				return
			}

			roles := r.GetRolesSid()
			memids := r.GetMemids()
			types := r.GetTypes()

			if len(roles) != len(memids) || len(types) != len(memids) {
				yield(nil, fmt.Errorf("%w: relation %d has %d roles, %d memids, %d types",
					ErrMalformedBlock, r.GetId(), len(roles), len(memids), len(types)))

				return
			}

			for i := range roles {
				if int(roles[i]) >= len(g.block.strings) || roles[i] < 0 {
					yield(nil, fmt.Errorf("%w: role string index out of range", ErrMalformedBlock))

					return
				}

				if types[i] < pb.Relation_NODE || types[i] > pb.Relation_RELATION {
					yield(nil, fmt.Errorf("%w: unknown member type %d", ErrMalformedBlock, types[i]))

					return
				}
			}

			if !yield(&Relation{block: g.block, r: r}, nil) {
				return
			}
		}
	}
}

// denseInfoContext tracks the running totals of the delta-encoded dense info
// columns.  Version and visible are stored absolutely on the wire; the rest
// are deltas.
type denseInfoContext struct {
	block *PrimitiveBlock

	timestamp int64
	changeset int64
	uid       int32
	userSid   int32

	versions     []int32
	timestamps   []int64
	changesets   []int64
	uids         []int32
	userSids     []int32
	visibilities []bool
}

// newDenseInfoContext validates the dense info columns against the node
// count.  A nil context means the group carries no per-node info.
func (b *PrimitiveBlock) newDenseInfoContext(di *pb.DenseInfo, n int) (*denseInfoContext, error) {
	if di == nil {
		return nil, nil
	}

	dic := &denseInfoContext{
		block:        b,
		versions:     di.GetVersion(),
		timestamps:   di.GetTimestamp(),
		changesets:   di.GetChangeset(),
		uids:         di.GetUid(),
		userSids:     di.GetUserSid(),
		visibilities: di.GetVisible(),
	}

	for _, l := range []int{
		len(dic.versions), len(dic.timestamps), len(dic.changesets),
		len(dic.uids), len(dic.userSids), len(dic.visibilities),
	} {
		if l != 0 && l != n {
			return nil, fmt.Errorf("%w: dense info column has %d entries for %d nodes",
				ErrMalformedBlock, l, n)
		}
	}

	return dic, nil
}

func (dic *denseInfoContext) next(i int) (Info, error) {
	var info Info

	if len(dic.versions) > 0 {
		info.version = dic.versions[i]
		info.has |= hasVersion
	}

	if len(dic.timestamps) > 0 {
		dic.timestamp += dic.timestamps[i]
		info.millis = dic.block.millis(dic.timestamp)
		info.has |= hasTimestamp
	}

	if len(dic.changesets) > 0 {
		dic.changeset += dic.changesets[i]
		info.changeset = dic.changeset
		info.has |= hasChangeset
	}

	if len(dic.uids) > 0 {
		dic.uid += dic.uids[i]
		info.uid = dic.uid
		info.has |= hasUID
	}

	if len(dic.userSids) > 0 {
		dic.userSid += dic.userSids[i]

		user, err := dic.block.String(int(dic.userSid))
		if err != nil {
			return Info{}, err
		}

		info.user = user
		info.has |= hasUser
	}

	info.visible = true
	if len(dic.visibilities) > 0 {
		info.visible = dic.visibilities[i]
	}

	return info, nil
}
