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
	"encoding/binary"
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"

	"m4o.io/osmpbf/internal/pb"
)

// WriteBlob marshals msg into a PBF blob of the named type and writes the
// framed descriptor and payload to wrtr.
func WriteBlob(wrtr io.Writer, typ string, msg message, c BlobCompression) error {
	bb, err := Pack(msg, c)
	if err != nil {
		return fmt.Errorf("could not marshal blob data: %w", err)
	}

	return WriteFrame(wrtr, typ, bb)
}

// WriteFrame writes one frame: the big-endian descriptor length, the
// descriptor, and the already packed blob envelope bytes.  Tests use it
// directly to frame hand-built envelopes.
func WriteFrame(wrtr io.Writer, typ string, blobBytes []byte) error {
	hdr := &pb.BlobHeader{
		Type:     proto.String(typ),
		Datasize: proto.Int32(int32(len(blobBytes))),
	}

	hb := hdr.Marshal()

	if err := binary.Write(wrtr, binary.BigEndian, uint32(len(hb))); err != nil {
		return fmt.Errorf("could not write header size: %w", err)
	}

	if _, err := wrtr.Write(hb); err != nil {
		return fmt.Errorf("could not write blob header: %w", err)
	}

	if _, err := wrtr.Write(blobBytes); err != nil {
		return fmt.Errorf("could not write blob data: %w", err)
	}

	return nil
}
