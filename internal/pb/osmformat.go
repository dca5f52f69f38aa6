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

package pb

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// HeaderBBox is the bounding box of a HeaderBlock, in nanodegrees.
type HeaderBBox struct {
	Left   *int64 // 1, sint64
	Right  *int64 // 2, sint64
	Top    *int64 // 3, sint64
	Bottom *int64 // 4, sint64
}

func (m *HeaderBBox) GetLeft() int64 {
	if m != nil && m.Left != nil {
		return *m.Left
	}

	return 0
}

func (m *HeaderBBox) GetRight() int64 {
	if m != nil && m.Right != nil {
		return *m.Right
	}

	return 0
}

func (m *HeaderBBox) GetTop() int64 {
	if m != nil && m.Top != nil {
		return *m.Top
	}

	return 0
}

func (m *HeaderBBox) GetBottom() int64 {
	if m != nil && m.Bottom != nil {
		return *m.Bottom
	}

	return 0
}

func (m *HeaderBBox) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}

		data = data[n:]

		var (
			err error
			v   uint64
		)

		if typ == protowire.VarintType && num >= 1 && num <= 4 {
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			c := decZigZag64(v)

			switch num {
			case 1:
				m.Left = &c
			case 2:
				m.Right = &c
			case 3:
				m.Top = &c
			case 4:
				m.Bottom = &c
			}
		} else if n, err = skipField(num, typ, data); err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

func (m *HeaderBBox) Marshal() []byte {
	var b []byte

	if m.Left != nil {
		b = appendVarintField(b, 1, encZigZag64(*m.Left))
	}

	if m.Right != nil {
		b = appendVarintField(b, 2, encZigZag64(*m.Right))
	}

	if m.Top != nil {
		b = appendVarintField(b, 3, encZigZag64(*m.Top))
	}

	if m.Bottom != nil {
		b = appendVarintField(b, 4, encZigZag64(*m.Bottom))
	}

	return b
}

// HeaderBlock is the payload of an "OSMHeader" blob.
type HeaderBlock struct {
	Bbox                             *HeaderBBox // 1
	RequiredFeatures                 []string    // 4
	OptionalFeatures                 []string    // 5
	Writingprogram                   *string     // 16
	Source                           *string     // 17
	OsmosisReplicationTimestamp      *int64      // 32
	OsmosisReplicationSequenceNumber *int64      // 33
	OsmosisReplicationBaseUrl        *string     // 34
}

func (m *HeaderBlock) GetBbox() *HeaderBBox {
	if m != nil {
		return m.Bbox
	}

	return nil
}

func (m *HeaderBlock) GetRequiredFeatures() []string {
	if m != nil {
		return m.RequiredFeatures
	}

	return nil
}

func (m *HeaderBlock) GetOptionalFeatures() []string {
	if m != nil {
		return m.OptionalFeatures
	}

	return nil
}

func (m *HeaderBlock) GetWritingprogram() string {
	if m != nil && m.Writingprogram != nil {
		return *m.Writingprogram
	}

	return ""
}

func (m *HeaderBlock) GetSource() string {
	if m != nil && m.Source != nil {
		return *m.Source
	}

	return ""
}

func (m *HeaderBlock) GetOsmosisReplicationTimestamp() int64 {
	if m != nil && m.OsmosisReplicationTimestamp != nil {
		return *m.OsmosisReplicationTimestamp
	}

	return 0
}

func (m *HeaderBlock) GetOsmosisReplicationSequenceNumber() int64 {
	if m != nil && m.OsmosisReplicationSequenceNumber != nil {
		return *m.OsmosisReplicationSequenceNumber
	}

	return 0
}

func (m *HeaderBlock) GetOsmosisReplicationBaseUrl() string {
	if m != nil && m.OsmosisReplicationBaseUrl != nil {
		return *m.OsmosisReplicationBaseUrl
	}

	return ""
}

func (m *HeaderBlock) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}

		data = data[n:]

		var err error

		switch {
		case num == 1 && typ == protowire.BytesType:
			var v []byte

			v, n = protowire.ConsumeBytes(data)
			if n < 0 {
				return parseError(n)
			}

			m.Bbox = &HeaderBBox{}
			if err = m.Bbox.Unmarshal(v); err != nil {
				return err
			}
		case num == 4 && typ == protowire.BytesType:
			var v string
			if v, n, err = consumeString(data); err != nil {
				return err
			}

			m.RequiredFeatures = append(m.RequiredFeatures, v)
		case num == 5 && typ == protowire.BytesType:
			var v string
			if v, n, err = consumeString(data); err != nil {
				return err
			}

			m.OptionalFeatures = append(m.OptionalFeatures, v)
		case num == 16 && typ == protowire.BytesType:
			var v string
			if v, n, err = consumeString(data); err != nil {
				return err
			}

			m.Writingprogram = &v
		case num == 17 && typ == protowire.BytesType:
			var v string
			if v, n, err = consumeString(data); err != nil {
				return err
			}

			m.Source = &v
		case num == 32 && typ == protowire.VarintType:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			ts := int64(v)
			m.OsmosisReplicationTimestamp = &ts
		case num == 33 && typ == protowire.VarintType:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			sn := int64(v)
			m.OsmosisReplicationSequenceNumber = &sn
		case num == 34 && typ == protowire.BytesType:
			var v string
			if v, n, err = consumeString(data); err != nil {
				return err
			}

			m.OsmosisReplicationBaseUrl = &v
		default:
			if n, err = skipField(num, typ, data); err != nil {
				return err
			}
		}

		data = data[n:]
	}

	return nil
}

func (m *HeaderBlock) Marshal() []byte {
	var b []byte

	if m.Bbox != nil {
		b = appendBytesField(b, 1, m.Bbox.Marshal())
	}

	for _, f := range m.RequiredFeatures {
		b = appendStringField(b, 4, f)
	}

	for _, f := range m.OptionalFeatures {
		b = appendStringField(b, 5, f)
	}

	if m.Writingprogram != nil {
		b = appendStringField(b, 16, *m.Writingprogram)
	}

	if m.Source != nil {
		b = appendStringField(b, 17, *m.Source)
	}

	if m.OsmosisReplicationTimestamp != nil {
		b = appendVarintField(b, 32, uint64(*m.OsmosisReplicationTimestamp))
	}

	if m.OsmosisReplicationSequenceNumber != nil {
		b = appendVarintField(b, 33, uint64(*m.OsmosisReplicationSequenceNumber))
	}

	if m.OsmosisReplicationBaseUrl != nil {
		b = appendStringField(b, 34, *m.OsmosisReplicationBaseUrl)
	}

	return b
}

// StringTable is the block-scoped table all tag keys, tag values, user names
// and relation roles are indexed into.  Index 0 is a sentinel empty string.
type StringTable struct {
	S []string // 1, repeated bytes
}

func (m *StringTable) GetS() []string {
	if m != nil {
		return m.S
	}

	return nil
}

func (m *StringTable) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}

		data = data[n:]

		var err error

		if num == 1 && typ == protowire.BytesType {
			var v string
			if v, n, err = consumeString(data); err != nil {
				return err
			}

			m.S = append(m.S, v)
		} else if n, err = skipField(num, typ, data); err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

func (m *StringTable) Marshal() []byte {
	var b []byte

	for _, s := range m.S {
		b = appendStringField(b, 1, s)
	}

	return b
}

// Info holds the optional metadata of a non-dense element.
type Info struct {
	Version   *int32  // 1, default -1
	Timestamp *int64  // 2
	Changeset *int64  // 3
	Uid       *int32  // 4
	UserSid   *uint32 // 5
	Visible   *bool   // 6
}

func (m *Info) GetVersion() int32 {
	if m != nil && m.Version != nil {
		return *m.Version
	}

	return -1
}

func (m *Info) GetTimestamp() int64 {
	if m != nil && m.Timestamp != nil {
		return *m.Timestamp
	}

	return 0
}

func (m *Info) GetChangeset() int64 {
	if m != nil && m.Changeset != nil {
		return *m.Changeset
	}

	return 0
}

func (m *Info) GetUid() int32 {
	if m != nil && m.Uid != nil {
		return *m.Uid
	}

	return 0
}

func (m *Info) GetUserSid() uint32 {
	if m != nil && m.UserSid != nil {
		return *m.UserSid
	}

	return 0
}

func (m *Info) GetVisible() bool {
	if m != nil && m.Visible != nil {
		return *m.Visible
	}

	return true
}

func (m *Info) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}

		data = data[n:]

		var (
			err error
			v   uint64
		)

		if typ == protowire.VarintType && num >= 1 && num <= 6 {
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			switch num {
			case 1:
				i := int32(v)
				m.Version = &i
			case 2:
				i := int64(v)
				m.Timestamp = &i
			case 3:
				i := int64(v)
				m.Changeset = &i
			case 4:
				i := int32(v)
				m.Uid = &i
			case 5:
				i := uint32(v)
				m.UserSid = &i
			case 6:
				b := v != 0
				m.Visible = &b
			}
		} else if n, err = skipField(num, typ, data); err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

func (m *Info) Marshal() []byte {
	var b []byte

	if m.Version != nil {
		b = appendVarintField(b, 1, uint64(uint32(*m.Version)))
	}

	if m.Timestamp != nil {
		b = appendVarintField(b, 2, uint64(*m.Timestamp))
	}

	if m.Changeset != nil {
		b = appendVarintField(b, 3, uint64(*m.Changeset))
	}

	if m.Uid != nil {
		b = appendVarintField(b, 4, uint64(uint32(*m.Uid)))
	}

	if m.UserSid != nil {
		b = appendVarintField(b, 5, uint64(*m.UserSid))
	}

	if m.Visible != nil {
		b = appendVarintField(b, 6, encBool(*m.Visible))
	}

	return b
}

// Node is the plain (non-dense) node representation.
type Node struct {
	Id   *int64   // 1, sint64
	Keys []uint32 // 2, packed
	Vals []uint32 // 3, packed
	Info *Info    // 4
	Lat  *int64   // 8, sint64
	Lon  *int64   // 9, sint64
}

func (m *Node) GetId() int64 {
	if m != nil && m.Id != nil {
		return *m.Id
	}

	return 0
}

func (m *Node) GetKeys() []uint32 {
	if m != nil {
		return m.Keys
	}

	return nil
}

func (m *Node) GetVals() []uint32 {
	if m != nil {
		return m.Vals
	}

	return nil
}

func (m *Node) GetInfo() *Info {
	if m != nil {
		return m.Info
	}

	return nil
}

func (m *Node) GetLat() int64 {
	if m != nil && m.Lat != nil {
		return *m.Lat
	}

	return 0
}

func (m *Node) GetLon() int64 {
	if m != nil && m.Lon != nil {
		return *m.Lon
	}

	return 0
}

func (m *Node) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			id := decZigZag64(v)
			m.Id = &id
		case 2:
			if m.Keys, n, err = consumeRepeated(data, typ, decUint32, m.Keys); err != nil {
				return err
			}
		case 3:
			if m.Vals, n, err = consumeRepeated(data, typ, decUint32, m.Vals); err != nil {
				return err
			}
		case 4:
			var v []byte

			v, n = protowire.ConsumeBytes(data)
			if n < 0 {
				return parseError(n)
			}

			m.Info = &Info{}
			if err = m.Info.Unmarshal(v); err != nil {
				return err
			}
		case 8:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			lat := decZigZag64(v)
			m.Lat = &lat
		case 9:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			lon := decZigZag64(v)
			m.Lon = &lon
		default:
			if n, err = skipField(num, typ, data); err != nil {
				return err
			}
		}

		data = data[n:]
	}

	if m.Id == nil {
		return missingField("Node", "id")
	}

	return nil
}

func (m *Node) Marshal() []byte {
	var b []byte

	if m.Id != nil {
		b = appendVarintField(b, 1, encZigZag64(*m.Id))
	}

	b = appendPacked(b, 2, m.Keys, encUint32)
	b = appendPacked(b, 3, m.Vals, encUint32)

	if m.Info != nil {
		b = appendBytesField(b, 4, m.Info.Marshal())
	}

	if m.Lat != nil {
		b = appendVarintField(b, 8, encZigZag64(*m.Lat))
	}

	if m.Lon != nil {
		b = appendVarintField(b, 9, encZigZag64(*m.Lon))
	}

	return b
}

// DenseInfo holds the columnar metadata of a DenseNodes group.  All columns
// except version and visible are delta-encoded.
type DenseInfo struct {
	Version   []int32 // 1, packed int32
	Timestamp []int64 // 2, packed sint64, delta
	Changeset []int64 // 3, packed sint64, delta
	Uid       []int32 // 4, packed sint32, delta
	UserSid   []int32 // 5, packed sint32, delta
	Visible   []bool  // 6, packed
}

func (m *DenseInfo) GetVersion() []int32 {
	if m != nil {
		return m.Version
	}

	return nil
}

func (m *DenseInfo) GetTimestamp() []int64 {
	if m != nil {
		return m.Timestamp
	}

	return nil
}

func (m *DenseInfo) GetChangeset() []int64 {
	if m != nil {
		return m.Changeset
	}

	return nil
}

func (m *DenseInfo) GetUid() []int32 {
	if m != nil {
		return m.Uid
	}

	return nil
}

func (m *DenseInfo) GetUserSid() []int32 {
	if m != nil {
		return m.UserSid
	}

	return nil
}

func (m *DenseInfo) GetVisible() []bool {
	if m != nil {
		return m.Visible
	}

	return nil
}

func (m *DenseInfo) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			m.Version, n, err = consumeRepeated(data, typ, decInt32, m.Version)
		case 2:
			m.Timestamp, n, err = consumeRepeated(data, typ, decZigZag64, m.Timestamp)
		case 3:
			m.Changeset, n, err = consumeRepeated(data, typ, decZigZag64, m.Changeset)
		case 4:
			m.Uid, n, err = consumeRepeated(data, typ, decZigZag32, m.Uid)
		case 5:
			m.UserSid, n, err = consumeRepeated(data, typ, decZigZag32, m.UserSid)
		case 6:
			m.Visible, n, err = consumeRepeated(data, typ, decBool, m.Visible)
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

func (m *DenseInfo) Marshal() []byte {
	var b []byte

	b = appendPacked(b, 1, m.Version, encInt32)
	b = appendPacked(b, 2, m.Timestamp, encZigZag64)
	b = appendPacked(b, 3, m.Changeset, encZigZag64)
	b = appendPacked(b, 4, m.Uid, encZigZag32)
	b = appendPacked(b, 5, m.UserSid, encZigZag32)
	b = appendPacked(b, 6, m.Visible, encBool)

	return b
}

// DenseNodes is the columnar node representation: parallel delta-encoded id,
// lat and lon columns plus one flat keys_vals stream with 0 sentinels.
type DenseNodes struct {
	Id        []int64    // 1, packed sint64, delta
	Denseinfo *DenseInfo // 5
	Lat       []int64    // 8, packed sint64, delta
	Lon       []int64    // 9, packed sint64, delta
	KeysVals  []int32    // 10, packed int32
}

func (m *DenseNodes) GetId() []int64 {
	if m != nil {
		return m.Id
	}

	return nil
}

func (m *DenseNodes) GetDenseinfo() *DenseInfo {
	if m != nil {
		return m.Denseinfo
	}

	return nil
}

func (m *DenseNodes) GetLat() []int64 {
	if m != nil {
		return m.Lat
	}

	return nil
}

func (m *DenseNodes) GetLon() []int64 {
	if m != nil {
		return m.Lon
	}

	return nil
}

func (m *DenseNodes) GetKeysVals() []int32 {
	if m != nil {
		return m.KeysVals
	}

	return nil
}

func (m *DenseNodes) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			m.Id, n, err = consumeRepeated(data, typ, decZigZag64, m.Id)
		case 5:
			var v []byte

			v, n = protowire.ConsumeBytes(data)
			if n < 0 {
				return parseError(n)
			}

			m.Denseinfo = &DenseInfo{}
			err = m.Denseinfo.Unmarshal(v)
		case 8:
			m.Lat, n, err = consumeRepeated(data, typ, decZigZag64, m.Lat)
		case 9:
			m.Lon, n, err = consumeRepeated(data, typ, decZigZag64, m.Lon)
		case 10:
			m.KeysVals, n, err = consumeRepeated(data, typ, decInt32, m.KeysVals)
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

func (m *DenseNodes) Marshal() []byte {
	var b []byte

	b = appendPacked(b, 1, m.Id, encZigZag64)

	if m.Denseinfo != nil {
		b = appendBytesField(b, 5, m.Denseinfo.Marshal())
	}

	b = appendPacked(b, 8, m.Lat, encZigZag64)
	b = appendPacked(b, 9, m.Lon, encZigZag64)
	b = appendPacked(b, 10, m.KeysVals, encInt32)

	return b
}

// Way is an ordered node-ref list plus tags.  The optional lat/lon columns
// are the LocationsOnWays extension.
type Way struct {
	Id   *int64   // 1, int64
	Keys []uint32 // 2, packed
	Vals []uint32 // 3, packed
	Info *Info    // 4
	Refs []int64  // 8, packed sint64, delta
	Lat  []int64  // 9, packed sint64, delta
	Lon  []int64  // 10, packed sint64, delta
}

func (m *Way) GetId() int64 {
	if m != nil && m.Id != nil {
		return *m.Id
	}

	return 0
}

func (m *Way) GetKeys() []uint32 {
	if m != nil {
		return m.Keys
	}

	return nil
}

func (m *Way) GetVals() []uint32 {
	if m != nil {
		return m.Vals
	}

	return nil
}

func (m *Way) GetInfo() *Info {
	if m != nil {
		return m.Info
	}

	return nil
}

func (m *Way) GetRefs() []int64 {
	if m != nil {
		return m.Refs
	}

	return nil
}

func (m *Way) GetLat() []int64 {
	if m != nil {
		return m.Lat
	}

	return nil
}

func (m *Way) GetLon() []int64 {
	if m != nil {
		return m.Lon
	}

	return nil
}

func (m *Way) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			id := int64(v)
			m.Id = &id
		case 2:
			m.Keys, n, err = consumeRepeated(data, typ, decUint32, m.Keys)
		case 3:
			m.Vals, n, err = consumeRepeated(data, typ, decUint32, m.Vals)
		case 4:
			var v []byte

			v, n = protowire.ConsumeBytes(data)
			if n < 0 {
				return parseError(n)
			}

			m.Info = &Info{}
			err = m.Info.Unmarshal(v)
		case 8:
			m.Refs, n, err = consumeRepeated(data, typ, decZigZag64, m.Refs)
		case 9:
			m.Lat, n, err = consumeRepeated(data, typ, decZigZag64, m.Lat)
		case 10:
			m.Lon, n, err = consumeRepeated(data, typ, decZigZag64, m.Lon)
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	if m.Id == nil {
		return missingField("Way", "id")
	}

	return nil
}

func (m *Way) Marshal() []byte {
	var b []byte

	if m.Id != nil {
		b = appendVarintField(b, 1, uint64(*m.Id))
	}

	b = appendPacked(b, 2, m.Keys, encUint32)
	b = appendPacked(b, 3, m.Vals, encUint32)

	if m.Info != nil {
		b = appendBytesField(b, 4, m.Info.Marshal())
	}

	b = appendPacked(b, 8, m.Refs, encZigZag64)
	b = appendPacked(b, 9, m.Lat, encZigZag64)
	b = appendPacked(b, 10, m.Lon, encZigZag64)

	return b
}

// Relation_MemberType discriminates relation members.
type Relation_MemberType int32

const (
	Relation_NODE     Relation_MemberType = 0
	Relation_WAY      Relation_MemberType = 1
	Relation_RELATION Relation_MemberType = 2
)

// Relation relates members by parallel roles_sid, memids and types columns.
type Relation struct {
	Id       *int64                // 1, int64
	Keys     []uint32              // 2, packed
	Vals     []uint32              // 3, packed
	Info     *Info                 // 4
	RolesSid []int32               // 8, packed int32
	Memids   []int64               // 9, packed sint64, delta
	Types    []Relation_MemberType // 10, packed enum
}

func (m *Relation) GetId() int64 {
	if m != nil && m.Id != nil {
		return *m.Id
	}

	return 0
}

func (m *Relation) GetKeys() []uint32 {
	if m != nil {
		return m.Keys
	}

	return nil
}

func (m *Relation) GetVals() []uint32 {
	if m != nil {
		return m.Vals
	}

	return nil
}

func (m *Relation) GetInfo() *Info {
	if m != nil {
		return m.Info
	}

	return nil
}

func (m *Relation) GetRolesSid() []int32 {
	if m != nil {
		return m.RolesSid
	}

	return nil
}

func (m *Relation) GetMemids() []int64 {
	if m != nil {
		return m.Memids
	}

	return nil
}

func (m *Relation) GetTypes() []Relation_MemberType {
	if m != nil {
		return m.Types
	}

	return nil
}

func (m *Relation) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			id := int64(v)
			m.Id = &id
		case 2:
			m.Keys, n, err = consumeRepeated(data, typ, decUint32, m.Keys)
		case 3:
			m.Vals, n, err = consumeRepeated(data, typ, decUint32, m.Vals)
		case 4:
			var v []byte

			v, n = protowire.ConsumeBytes(data)
			if n < 0 {
				return parseError(n)
			}

			m.Info = &Info{}
			err = m.Info.Unmarshal(v)
		case 8:
			m.RolesSid, n, err = consumeRepeated(data, typ, decInt32, m.RolesSid)
		case 9:
			m.Memids, n, err = consumeRepeated(data, typ, decZigZag64, m.Memids)
		case 10:
			m.Types, n, err = consumeRepeated(data, typ, func(v uint64) Relation_MemberType {
				return Relation_MemberType(v)
			}, m.Types)
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	if m.Id == nil {
		return missingField("Relation", "id")
	}

	return nil
}

func (m *Relation) Marshal() []byte {
	var b []byte

	if m.Id != nil {
		b = appendVarintField(b, 1, uint64(*m.Id))
	}

	b = appendPacked(b, 2, m.Keys, encUint32)
	b = appendPacked(b, 3, m.Vals, encUint32)

	if m.Info != nil {
		b = appendBytesField(b, 4, m.Info.Marshal())
	}

	b = appendPacked(b, 8, m.RolesSid, encInt32)
	b = appendPacked(b, 9, m.Memids, encZigZag64)
	b = appendPacked(b, 10, m.Types, func(v Relation_MemberType) uint64 { return uint64(v) })

	return b
}

// PrimitiveGroup holds exactly one kind of element.
type PrimitiveGroup struct {
	Nodes     []*Node     // 1
	Dense     *DenseNodes // 2
	Ways      []*Way      // 3
	Relations []*Relation // 4
}

func (m *PrimitiveGroup) GetNodes() []*Node {
	if m != nil {
		return m.Nodes
	}

	return nil
}

func (m *PrimitiveGroup) GetDense() *DenseNodes {
	if m != nil {
		return m.Dense
	}

	return nil
}

func (m *PrimitiveGroup) GetWays() []*Way {
	if m != nil {
		return m.Ways
	}

	return nil
}

func (m *PrimitiveGroup) GetRelations() []*Relation {
	if m != nil {
		return m.Relations
	}

	return nil
}

func (m *PrimitiveGroup) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}

		data = data[n:]

		var err error

		if typ == protowire.BytesType && num >= 1 && num <= 4 {
			var v []byte

			v, n = protowire.ConsumeBytes(data)
			if n < 0 {
				return parseError(n)
			}

			switch num {
			case 1:
				node := &Node{}
				if err = node.Unmarshal(v); err != nil {
					return err
				}

				m.Nodes = append(m.Nodes, node)
			case 2:
				m.Dense = &DenseNodes{}
				if err = m.Dense.Unmarshal(v); err != nil {
					return err
				}
			case 3:
				way := &Way{}
				if err = way.Unmarshal(v); err != nil {
					return err
				}

				m.Ways = append(m.Ways, way)
			case 4:
				rel := &Relation{}
				if err = rel.Unmarshal(v); err != nil {
					return err
				}

				m.Relations = append(m.Relations, rel)
			}
		} else if n, err = skipField(num, typ, data); err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

func (m *PrimitiveGroup) Marshal() []byte {
	var b []byte

	for _, n := range m.Nodes {
		b = appendBytesField(b, 1, n.Marshal())
	}

	if m.Dense != nil {
		b = appendBytesField(b, 2, m.Dense.Marshal())
	}

	for _, w := range m.Ways {
		b = appendBytesField(b, 3, w.Marshal())
	}

	for _, r := range m.Relations {
		b = appendBytesField(b, 4, r.Marshal())
	}

	return b
}

// PrimitiveBlock is the payload of an "OSMData" blob.
type PrimitiveBlock struct {
	Stringtable     *StringTable      // 1, required
	Primitivegroup  []*PrimitiveGroup // 2
	Granularity     *int32            // 17, default 100
	DateGranularity *int32            // 18, default 1000
	LatOffset       *int64            // 19
	LonOffset       *int64            // 20
}

func (m *PrimitiveBlock) GetStringtable() *StringTable {
	if m != nil {
		return m.Stringtable
	}

	return nil
}

func (m *PrimitiveBlock) GetPrimitivegroup() []*PrimitiveGroup {
	if m != nil {
		return m.Primitivegroup
	}

	return nil
}

func (m *PrimitiveBlock) GetGranularity() int32 {
	if m != nil && m.Granularity != nil {
		return *m.Granularity
	}

	return 100
}

func (m *PrimitiveBlock) GetDateGranularity() int32 {
	if m != nil && m.DateGranularity != nil {
		return *m.DateGranularity
	}

	return 1000
}

func (m *PrimitiveBlock) GetLatOffset() int64 {
	if m != nil && m.LatOffset != nil {
		return *m.LatOffset
	}

	return 0
}

func (m *PrimitiveBlock) GetLonOffset() int64 {
	if m != nil && m.LonOffset != nil {
		return *m.LonOffset
	}

	return 0
}

func (m *PrimitiveBlock) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}

		data = data[n:]

		var err error

		switch {
		case num == 1 && typ == protowire.BytesType:
			var v []byte

			v, n = protowire.ConsumeBytes(data)
			if n < 0 {
				return parseError(n)
			}

			m.Stringtable = &StringTable{}
			if err = m.Stringtable.Unmarshal(v); err != nil {
				return err
			}
		case num == 2 && typ == protowire.BytesType:
			var v []byte

			v, n = protowire.ConsumeBytes(data)
			if n < 0 {
				return parseError(n)
			}

			pg := &PrimitiveGroup{}
			if err = pg.Unmarshal(v); err != nil {
				return err
			}

			m.Primitivegroup = append(m.Primitivegroup, pg)
		case num == 17 && typ == protowire.VarintType:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			g := int32(v)
			m.Granularity = &g
		case num == 18 && typ == protowire.VarintType:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			g := int32(v)
			m.DateGranularity = &g
		case num == 19 && typ == protowire.VarintType:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			o := int64(v)
			m.LatOffset = &o
		case num == 20 && typ == protowire.VarintType:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			o := int64(v)
			m.LonOffset = &o
		default:
			if n, err = skipField(num, typ, data); err != nil {
				return err
			}
		}

		data = data[n:]
	}

	if m.Stringtable == nil {
		return missingField("PrimitiveBlock", "stringtable")
	}

	return nil
}

func (m *PrimitiveBlock) Marshal() []byte {
	var b []byte

	if m.Stringtable != nil {
		b = appendBytesField(b, 1, m.Stringtable.Marshal())
	}

	for _, pg := range m.Primitivegroup {
		b = appendBytesField(b, 2, pg.Marshal())
	}

	if m.Granularity != nil {
		b = appendVarintField(b, 17, uint64(uint32(*m.Granularity)))
	}

	if m.DateGranularity != nil {
		b = appendVarintField(b, 18, uint64(uint32(*m.DateGranularity)))
	}

	if m.LatOffset != nil {
		b = appendVarintField(b, 19, uint64(*m.LatOffset))
	}

	if m.LonOffset != nil {
		b = appendVarintField(b, 20, uint64(*m.LonOffset))
	}

	return b
}
