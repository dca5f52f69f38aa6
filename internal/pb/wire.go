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

// Package pb is the wire model for the OSM PBF envelope messages
// (BlobHeader, Blob) and block payloads (HeaderBlock, PrimitiveBlock).
//
// The message structs mirror the shapes a protobuf compiler would emit for
// the published OSMPBF schema; the codec itself is maintained by hand on top
// of protowire so that repeated scalar fields are accepted in both packed
// and unpacked encodings.
package pb

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

var errTruncatedField = errors.New("pb: truncated field")

// parseError converts a negative protowire length into an error.
func parseError(n int) error {
	if err := protowire.ParseError(n); err != nil {
		return fmt.Errorf("pb: %w", err)
	}

	return errTruncatedField
}

func missingField(msg, field string) error {
	return fmt.Errorf("pb: %s missing required field %s", msg, field)
}

// consumeVarint reads a single varint value off data.
func consumeVarint(data []byte) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, 0, parseError(n)
	}

	return v, n, nil
}

// consumeString reads a length-delimited field as a string, copying out of
// the caller's buffer.
func consumeString(data []byte) (string, int, error) {
	v, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return "", 0, parseError(n)
	}

	return string(v), n, nil
}

// consumeBytes reads a length-delimited field, copying out of the caller's
// buffer.  Callers hand pb pooled buffers that are recycled between frames,
// so retained bytes must never alias the input.
func consumeBytes(data []byte) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return nil, 0, parseError(n)
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, n, nil
}

// consumeRepeated appends one field occurrence worth of varint-backed values
// to out.  A BytesType occurrence is a packed run; a VarintType occurrence is
// a single element.
func consumeRepeated[T any](data []byte, typ protowire.Type, dec func(uint64) T, out []T) ([]T, int, error) {
	switch typ {
	case protowire.BytesType:
		run, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return out, 0, parseError(n)
		}

		for len(run) > 0 {
			v, m := protowire.ConsumeVarint(run)
			if m < 0 {
				return out, 0, parseError(m)
			}

			out = append(out, dec(v))
			run = run[m:]
		}

		return out, n, nil

	case protowire.VarintType:
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return out, 0, parseError(n)
		}

		return append(out, dec(v)), n, nil

	default:
		n := protowire.ConsumeFieldValue(0, typ, data)
		if n < 0 {
			return out, 0, parseError(n)
		}

		return out, n, nil
	}
}

// skipField discards an unknown field.
func skipField(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, data)
	if n < 0 {
		return 0, parseError(n)
	}

	return n, nil
}

// value decoders

func decZigZag64(v uint64) int64 { return protowire.DecodeZigZag(v) }

func decZigZag32(v uint64) int32 { return int32(protowire.DecodeZigZag(v)) }

func decInt32(v uint64) int32 { return int32(v) }

func decUint32(v uint64) uint32 { return uint32(v) }

func decBool(v uint64) bool { return v != 0 }

// appendPacked marshals vals as a single packed run for field num.  Empty
// slices emit nothing.
func appendPacked[T any](b []byte, num protowire.Number, vals []T, enc func(T) uint64) []byte {
	if len(vals) == 0 {
		return b
	}

	run := make([]byte, 0, len(vals))
	for _, v := range vals {
		run = protowire.AppendVarint(run, enc(v))
	}

	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, run)
}

// value encoders

func encZigZag64(v int64) uint64 { return protowire.EncodeZigZag(v) }

func encZigZag32(v int32) uint64 { return protowire.EncodeZigZag(int64(v)) }

func encInt32(v int32) uint64 { return uint64(uint32(v)) }

func encUint32(v uint32) uint64 { return uint64(v) }

func encBool(v bool) uint64 {
	if v {
		return 1
	}

	return 0
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)

	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, v)
}

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendString(b, v)
}
