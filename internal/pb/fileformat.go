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

// BlobHeader is the length-prefixed descriptor preceding every blob.
type BlobHeader struct {
	Type      *string // 1, required
	Indexdata []byte  // 2
	Datasize  *int32  // 3, required
}

func (m *BlobHeader) GetType() string {
	if m != nil && m.Type != nil {
		return *m.Type
	}

	return ""
}

func (m *BlobHeader) GetIndexdata() []byte {
	if m != nil {
		return m.Indexdata
	}

	return nil
}

func (m *BlobHeader) GetDatasize() int32 {
	if m != nil && m.Datasize != nil {
		return *m.Datasize
	}

	return 0
}

func (m *BlobHeader) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}

		data = data[n:]

		var err error

		switch {
		case num == 1 && typ == protowire.BytesType:
			var v string
			if v, n, err = consumeString(data); err != nil {
				return err
			}

			m.Type = &v
		case num == 2 && typ == protowire.BytesType:
			if m.Indexdata, n, err = consumeBytes(data); err != nil {
				return err
			}
		case num == 3 && typ == protowire.VarintType:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			ds := int32(v)
			m.Datasize = &ds
		default:
			if n, err = skipField(num, typ, data); err != nil {
				return err
			}
		}

		data = data[n:]
	}

	if m.Type == nil {
		return missingField("BlobHeader", "type")
	}

	if m.Datasize == nil {
		return missingField("BlobHeader", "datasize")
	}

	return nil
}

func (m *BlobHeader) Marshal() []byte {
	var b []byte

	if m.Type != nil {
		b = appendStringField(b, 1, *m.Type)
	}

	if len(m.Indexdata) > 0 {
		b = appendBytesField(b, 2, m.Indexdata)
	}

	if m.Datasize != nil {
		b = appendVarintField(b, 3, uint64(uint32(*m.Datasize)))
	}

	return b
}

// Blob carries a block payload in one of several compression encodings.
// Exactly one data field is set.
type Blob struct {
	RawSize *int32 // 2, required when the payload is compressed
	Data    isBlob_Data
}

type isBlob_Data interface {
	isBlob_Data()
}

type Blob_Raw struct {
	Raw []byte // 1
}

type Blob_ZlibData struct {
	ZlibData []byte // 3
}

type Blob_LzmaData struct {
	LzmaData []byte // 4
}

// Blob_Bzip2Data is the deprecated OBSOLETE_bzip2_data field; it is decoded
// so that readers can report it as unsupported rather than unknown.
type Blob_Bzip2Data struct {
	Bzip2Data []byte // 5
}

type Blob_Lz4Data struct {
	Lz4Data []byte // 6
}

type Blob_ZstdData struct {
	ZstdData []byte // 7
}

func (*Blob_Raw) isBlob_Data()       {}
func (*Blob_ZlibData) isBlob_Data()  {}
func (*Blob_LzmaData) isBlob_Data()  {}
func (*Blob_Bzip2Data) isBlob_Data() {}
func (*Blob_Lz4Data) isBlob_Data()   {}
func (*Blob_ZstdData) isBlob_Data()  {}

func (m *Blob) GetRawSize() int32 {
	if m != nil && m.RawSize != nil {
		return *m.RawSize
	}

	return 0
}

func (m *Blob) GetData() isBlob_Data {
	if m != nil {
		return m.Data
	}

	return nil
}

func (m *Blob) GetRaw() []byte {
	if d, ok := m.GetData().(*Blob_Raw); ok {
		return d.Raw
	}

	return nil
}

func (m *Blob) GetZlibData() []byte {
	if d, ok := m.GetData().(*Blob_ZlibData); ok {
		return d.ZlibData
	}

	return nil
}

func (m *Blob) GetLzmaData() []byte {
	if d, ok := m.GetData().(*Blob_LzmaData); ok {
		return d.LzmaData
	}

	return nil
}

func (m *Blob) GetBzip2Data() []byte {
	if d, ok := m.GetData().(*Blob_Bzip2Data); ok {
		return d.Bzip2Data
	}

	return nil
}

func (m *Blob) GetLz4Data() []byte {
	if d, ok := m.GetData().(*Blob_Lz4Data); ok {
		return d.Lz4Data
	}

	return nil
}

func (m *Blob) GetZstdData() []byte {
	if d, ok := m.GetData().(*Blob_ZstdData); ok {
		return d.ZstdData
	}

	return nil
}

func (m *Blob) Unmarshal(data []byte) error {
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
			if v, n, err = consumeBytes(data); err != nil {
				return err
			}

			m.Data = &Blob_Raw{Raw: v}
		case num == 2 && typ == protowire.VarintType:
			var v uint64
			if v, n, err = consumeVarint(data); err != nil {
				return err
			}

			rs := int32(v)
			m.RawSize = &rs
		case num == 3 && typ == protowire.BytesType:
			var v []byte
			if v, n, err = consumeBytes(data); err != nil {
				return err
			}

			m.Data = &Blob_ZlibData{ZlibData: v}
		case num == 4 && typ == protowire.BytesType:
			var v []byte
			if v, n, err = consumeBytes(data); err != nil {
				return err
			}

			m.Data = &Blob_LzmaData{LzmaData: v}
		case num == 5 && typ == protowire.BytesType:
			var v []byte
			if v, n, err = consumeBytes(data); err != nil {
				return err
			}

			m.Data = &Blob_Bzip2Data{Bzip2Data: v}
		case num == 6 && typ == protowire.BytesType:
			var v []byte
			if v, n, err = consumeBytes(data); err != nil {
				return err
			}

			m.Data = &Blob_Lz4Data{Lz4Data: v}
		case num == 7 && typ == protowire.BytesType:
			var v []byte
			if v, n, err = consumeBytes(data); err != nil {
				return err
			}

			m.Data = &Blob_ZstdData{ZstdData: v}
		default:
			if n, err = skipField(num, typ, data); err != nil {
				return err
			}
		}

		data = data[n:]
	}

	return nil
}

func (m *Blob) Marshal() []byte {
	var b []byte

	if d, ok := m.Data.(*Blob_Raw); ok {
		b = appendBytesField(b, 1, d.Raw)
	}

	if m.RawSize != nil {
		b = appendVarintField(b, 2, uint64(uint32(*m.RawSize)))
	}

	switch d := m.Data.(type) {
	case *Blob_ZlibData:
		b = appendBytesField(b, 3, d.ZlibData)
	case *Blob_LzmaData:
		b = appendBytesField(b, 4, d.LzmaData)
	case *Blob_Bzip2Data:
		b = appendBytesField(b, 5, d.Bzip2Data)
	case *Blob_Lz4Data:
		b = appendBytesField(b, 6, d.Lz4Data)
	case *Blob_ZstdData:
		b = appendBytesField(b, 7, d.ZstdData)
	}

	return b
}
