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
	"iter"
	"time"

	"m4o.io/osmpbf/internal/pb"
	"m4o.io/osmpbf/model"
)

// Element is one decoded OSM element: *Node, *DenseNode, *Way or *Relation.
// Elements are views borrowing their parent PrimitiveBlock; call the view's
// Copy method to retain one beyond the block's lifetime.
type Element interface {
	isElement()

	// ID is the element's signed 64-bit identity.
	ID() int64
}

// Tag is one key/value pair resolved through the block's string table.
type Tag struct {
	Key   string
	Value string
}

type infoFlags uint8

const (
	hasVersion infoFlags = 1 << iota
	hasTimestamp
	hasChangeset
	hasUID
	hasUser
)

// Info is the optional metadata of an element.  Every field is
// independently optional; visibility defaults to true.
type Info struct {
	version   int32
	millis    int64
	changeset int64
	uid       int32
	user      string
	visible   bool
	has       infoFlags
}

// Version reports the element version, if present.
func (i Info) Version() (int32, bool) {
	return i.version, i.has&hasVersion != 0
}

// MilliTimestamp reports the element timestamp in epoch milliseconds, if
// present.
func (i Info) MilliTimestamp() (int64, bool) {
	return i.millis, i.has&hasTimestamp != 0
}

// Timestamp reports the element timestamp, if present.
func (i Info) Timestamp() (time.Time, bool) {
	return time.UnixMilli(i.millis).UTC(), i.has&hasTimestamp != 0
}

// Changeset reports the changeset id, if present.
func (i Info) Changeset() (int64, bool) {
	return i.changeset, i.has&hasChangeset != 0
}

// UID reports the modifying user's id, if present.
func (i Info) UID() (int32, bool) {
	return i.uid, i.has&hasUID != 0
}

// User reports the modifying user's name, if present.
func (i Info) User() (string, bool) {
	return i.user, i.has&hasUser != 0
}

// Visible reports whether the element is visible; absent means true and only
// history files carry false.
func (i Info) Visible() bool {
	return i.visible
}

// Copy converts the view into an owned model.Info.
func (i Info) Copy() *model.Info {
	info := &model.Info{Visible: i.visible}

	if v, ok := i.Version(); ok {
		info.Version = v
	}

	if ts, ok := i.Timestamp(); ok {
		info.Timestamp = ts
	}

	if cs, ok := i.Changeset(); ok {
		info.Changeset = cs
	}

	if uid, ok := i.UID(); ok {
		info.UID = model.UID(uid)
	}

	if u, ok := i.User(); ok {
		info.User = u
	}

	return info
}

// newInfo builds an Info view from a non-dense info record.  Indices were
// validated when the element was yielded.
func newInfo(b *PrimitiveBlock, pi *pb.Info) (Info, bool) {
	if pi == nil {
		return Info{visible: true}, false
	}

	info := Info{visible: pi.GetVisible()}

	if pi.Version != nil {
		info.version = *pi.Version
		info.has |= hasVersion
	}

	if pi.Timestamp != nil {
		info.millis = b.millis(*pi.Timestamp)
		info.has |= hasTimestamp
	}

	if pi.Changeset != nil {
		info.changeset = *pi.Changeset
		info.has |= hasChangeset
	}

	if pi.Uid != nil {
		info.uid = *pi.Uid
		info.has |= hasUID
	}

	if pi.UserSid != nil {
		info.user = b.strings[*pi.UserSid]
		info.has |= hasUser
	}

	return info, true
}

// tagSeq iterates validated parallel key/value index arrays.
func tagSeq(b *PrimitiveBlock, keys, vals []uint32) iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		for i := range keys {
			if !yield(Tag{Key: b.strings[keys[i]], Value: b.strings[vals[i]]}) {
				return
			}
		}
	}
}

// tagMap materializes validated parallel key/value index arrays.
func tagMap(b *PrimitiveBlock, keys, vals []uint32) map[string]string {
	tags := make(map[string]string, len(keys))

	for i := range keys {
		tags[b.strings[keys[i]]] = b.strings[vals[i]]
	}

	return tags
}

// Node is a plain (non-dense) node view.
type Node struct {
	block *PrimitiveBlock
	n     *pb.Node
}

func (*Node) isElement() {}

// ID returns the node id.
func (n *Node) ID() int64 { return n.n.GetId() }

// Lat returns the node latitude in degrees.
func (n *Node) Lat() model.Degrees { return n.block.Lat(n.n.GetLat()) }

// Lon returns the node longitude in degrees.
func (n *Node) Lon() model.Degrees { return n.block.Lon(n.n.GetLon()) }

// NanoLat returns the node latitude in nanodegrees.
func (n *Node) NanoLat() int64 { return n.block.NanoLat(n.n.GetLat()) }

// NanoLon returns the node longitude in nanodegrees.
func (n *Node) NanoLon() int64 { return n.block.NanoLon(n.n.GetLon()) }

// RawLat returns the undecoded latitude unit count.
func (n *Node) RawLat() int64 { return n.n.GetLat() }

// RawLon returns the undecoded longitude unit count.
func (n *Node) RawLon() int64 { return n.n.GetLon() }

// Tags iterates the node's tags.
func (n *Node) Tags() iter.Seq[Tag] {
	return tagSeq(n.block, n.n.GetKeys(), n.n.GetVals())
}

// Info returns the node's metadata, if present.
func (n *Node) Info() (Info, bool) {
	return newInfo(n.block, n.n.GetInfo())
}

// Copy converts the view into an owned model.Node.
func (n *Node) Copy() model.Node {
	info, _ := n.Info()

	return model.Node{
		ID:   model.ID(n.ID()),
		Tags: tagMap(n.block, n.n.GetKeys(), n.n.GetVals()),
		Info: info.Copy(),
		Lat:  n.Lat(),
		Lon:  n.Lon(),
	}
}

// DenseNode is a node decoded off the columnar dense representation.  The
// running delta totals were resolved when the iterator advanced, so its
// accessors are plain reads.
type DenseNode struct {
	block   *PrimitiveBlock
	id      int64
	rawLat  int64
	rawLon  int64
	kv      []int32
	info    Info
	hasInfo bool
}

func (*DenseNode) isElement() {}

// ID returns the node id.
func (n *DenseNode) ID() int64 { return n.id }

// Lat returns the node latitude in degrees.
func (n *DenseNode) Lat() model.Degrees { return n.block.Lat(n.rawLat) }

// Lon returns the node longitude in degrees.
func (n *DenseNode) Lon() model.Degrees { return n.block.Lon(n.rawLon) }

// NanoLat returns the node latitude in nanodegrees.
func (n *DenseNode) NanoLat() int64 { return n.block.NanoLat(n.rawLat) }

// NanoLon returns the node longitude in nanodegrees.
func (n *DenseNode) NanoLon() int64 { return n.block.NanoLon(n.rawLon) }

// RawLat returns the undecoded latitude unit count.
func (n *DenseNode) RawLat() int64 { return n.rawLat }

// RawLon returns the undecoded longitude unit count.
func (n *DenseNode) RawLon() int64 { return n.rawLon }

// Tags iterates the node's slice of the group's keys_vals stream.
func (n *DenseNode) Tags() iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		for i := 0; i+1 < len(n.kv); i += 2 {
			if !yield(Tag{Key: n.block.strings[n.kv[i]], Value: n.block.strings[n.kv[i+1]]}) {
				return
			}
		}
	}
}

// Info returns the node's metadata, if present.
func (n *DenseNode) Info() (Info, bool) {
	if !n.hasInfo {
		return Info{visible: true}, false
	}

	return n.info, true
}

// Copy converts the view into an owned model.Node.
func (n *DenseNode) Copy() model.Node {
	info, _ := n.Info()

	tags := make(map[string]string, len(n.kv)/2)
	for tag := range n.Tags() {
		tags[tag.Key] = tag.Value
	}

	return model.Node{
		ID:   model.ID(n.id),
		Tags: tags,
		Info: info.Copy(),
		Lat:  n.Lat(),
		Lon:  n.Lon(),
	}
}

// Way is a way view.  Node refs stay delta-encoded until iterated.
type Way struct {
	block *PrimitiveBlock
	w     *pb.Way
}

func (*Way) isElement() {}

// ID returns the way id.
func (w *Way) ID() int64 { return w.w.GetId() }

// Tags iterates the way's tags.
func (w *Way) Tags() iter.Seq[Tag] {
	return tagSeq(w.block, w.w.GetKeys(), w.w.GetVals())
}

// Info returns the way's metadata, if present.
func (w *Way) Info() (Info, bool) {
	return newInfo(w.block, w.w.GetInfo())
}

// RefCount is the number of node refs.
func (w *Way) RefCount() int { return len(w.w.GetRefs()) }

// Refs iterates the way's node ids, resolving the delta encoding with a
// running total that starts at zero.
func (w *Way) Refs() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		var ref int64

		for _, delta := range w.w.GetRefs() {
			ref += delta

			if !yield(ref) {
				return
			}
		}
	}
}

// RawRefs returns the wire-form delta-encoded refs.
func (w *Way) RawRefs() []int64 { return w.w.GetRefs() }

// HasNodeLocations reports whether the writer stored the optional way-node
// location columns.
func (w *Way) HasNodeLocations() bool { return len(w.w.GetLat()) > 0 }

// NodeLocations iterates the optional per-ref locations, delta-decoded the
// same way as refs.  The sequence is empty when the extension is absent.
func (w *Way) NodeLocations() iter.Seq2[model.Degrees, model.Degrees] {
	return func(yield func(model.Degrees, model.Degrees) bool) {
		lats := w.w.GetLat()
		lons := w.w.GetLon()

		var lat, lon int64

		for i := range lats {
			lat += lats[i]
			lon += lons[i]

			if !yield(w.block.Lat(lat), w.block.Lon(lon)) {
				return
			}
		}
	}
}

// Copy converts the view into an owned model.Way.
func (w *Way) Copy() model.Way {
	info, _ := w.Info()

	nodeIDs := make([]model.ID, 0, w.RefCount())
	for ref := range w.Refs() {
		nodeIDs = append(nodeIDs, model.ID(ref))
	}

	return model.Way{
		ID:      model.ID(w.ID()),
		Tags:    tagMap(w.block, w.w.GetKeys(), w.w.GetVals()),
		Info:    info.Copy(),
		NodeIDs: nodeIDs,
	}
}

// Member is one relation member with its role resolved through the string
// table.
type Member struct {
	ID   int64
	Type model.EntityType
	Role string
}

// Relation is a relation view.  Member ids stay delta-encoded until
// iterated.
type Relation struct {
	block *PrimitiveBlock
	r     *pb.Relation
}

func (*Relation) isElement() {}

// ID returns the relation id.
func (r *Relation) ID() int64 { return r.r.GetId() }

// Tags iterates the relation's tags.
func (r *Relation) Tags() iter.Seq[Tag] {
	return tagSeq(r.block, r.r.GetKeys(), r.r.GetVals())
}

// Info returns the relation's metadata, if present.
func (r *Relation) Info() (Info, bool) {
	return newInfo(r.block, r.r.GetInfo())
}

// MemberCount is the number of members.
func (r *Relation) MemberCount() int { return len(r.r.GetMemids()) }

// Members iterates the relation's members, resolving the per-relation delta
// encoding of member ids.
func (r *Relation) Members() iter.Seq[Member] {
	return func(yield func(Member) bool) {
		memids := r.r.GetMemids()
		roles := r.r.GetRolesSid()
		types := r.r.GetTypes()

		var memid int64

		for i := range memids {
			memid += memids[i]

			if !yield(Member{
				ID:   memid,
				Type: decodeMemberType(types[i]),
				Role: r.block.strings[roles[i]],
			}) {
				return
			}
		}
	}
}

// Copy converts the view into an owned model.Relation.
func (r *Relation) Copy() model.Relation {
	info, _ := r.Info()

	members := make([]model.Member, 0, r.MemberCount())
	for m := range r.Members() {
		members = append(members, model.Member{
			ID:   model.ID(m.ID),
			Type: m.Type,
			Role: m.Role,
		})
	}

	return model.Relation{
		ID:      model.ID(r.ID()),
		Tags:    tagMap(r.block, r.r.GetKeys(), r.r.GetVals()),
		Info:    info.Copy(),
		Members: members,
	}
}

// decodeMemberType converts the wire member type to a model.EntityType.  The
// code was validated when the relation was yielded.
func decodeMemberType(mt pb.Relation_MemberType) model.EntityType {
	switch mt {
	case pb.Relation_NODE:
		return model.NODE
	case pb.Relation_WAY:
		return model.WAY
	default:
		return model.RELATION
	}
}

// Copy converts any element view into its owned model.Entity.
func Copy(e Element) model.Entity {
	switch v := e.(type) {
	case *Node:
		return v.Copy()
	case *DenseNode:
		return v.Copy()
	case *Way:
		return v.Copy()
	default:
		return e.(*Relation).Copy()
	}
}
