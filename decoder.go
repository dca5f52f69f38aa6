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
	"context"
	"io"
	"sync"

	"github.com/destel/rill"

	"m4o.io/osmpbf/model"
)

// Decoder reads and decodes OpenStreetMap PBF data from an input stream,
// yielding owned entities in file order.  Blobs are decoded concurrently in
// the background; Decode pulls the next decoded batch.
type Decoder struct {
	// Header is the stream's decoded and feature-checked header.
	Header model.Header

	cancel  context.CancelFunc
	batches <-chan rill.Try[[]model.Entity]
	stop    sync.Once
}

// NewDecoder returns a new decoder that reads from r.  The header blob is
// decoded eagerly; decoding of the remaining blobs starts in the background
// immediately.
func NewDecoder(ctx context.Context, r io.Reader, opts ...DecoderOption) (*Decoder, error) {
	er, err := NewElementReader(r)
	if err != nil {
		return nil, err
	}

	cfg := newDecoderOptions(opts)

	ctx, cancel := context.WithCancel(ctx)

	blobs := generateBlobs(ctx, er.br, cfg.queueDepth)

	batches := rill.OrderedMap(blobs, int(cfg.nCPU), func(blob *Blob) ([]model.Entity, error) {
		if blob.Type() != BlobTypeOSMData {
			return nil, nil
		}

		block, err := blob.ToPrimitiveBlock()
		if err != nil {
			return nil, err
		}

		var entities []model.Entity

		for e, err := range block.Elements() {
			if err != nil {
				return nil, err
			}

			entities = append(entities, Copy(e))
		}

		return entities, nil
	})

	return &Decoder{
		Header:  er.Header(),
		cancel:  cancel,
		batches: batches,
	}, nil
}

// Decode returns the entities of the next data blob in file order.  The end
// of the input stream is reported by an io.EOF error.
func (d *Decoder) Decode() ([]model.Entity, error) {
	for {
		batch, more := <-d.batches
		if !more {
			return nil, io.EOF
		}

		if batch.Error != nil {
			d.Close()

			return nil, batch.Error
		}

		if len(batch.Value) == 0 {
			continue
		}

		return batch.Value, nil
	}
}

// Close cancels the background decoding pipeline.  It is safe to call more
// than once, and Decode keeps draining until it reports io.EOF.
func (d *Decoder) Close() {
	d.stop.Do(func() {
		d.cancel()
		rill.DrainNB(d.batches)
	})
}
