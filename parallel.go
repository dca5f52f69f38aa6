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
	"errors"
	"io"
	"log/slog"

	"github.com/destel/rill"
)

// generateBlobs reads raw blobs off the reader as fast as framing allows and
// feeds them to the decode workers through a channel buffered to the queue
// depth, so at most that many read blobs wait in it for a worker.
func generateBlobs(ctx context.Context, br *BlobReader, depth int) <-chan rill.Try[*Blob] {
	out := make(chan rill.Try[*Blob], depth)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			blob, err := br.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					slog.Error("unable to read blob", "error", err)

					select {
					case <-ctx.Done():
					case out <- rill.Try[*Blob]{Error: err}:
					}
				}

				return
			}

			select {
			case <-ctx.Done():
				return
			case out <- rill.Try[*Blob]{Value: blob}:
			}
		}
	}()

	return out
}

// ParMapReduce folds mapFn over every element of the reader's remaining
// blobs, decoding blobs concurrently.  Within a blob, elements are mapped
// and folded in file order; across blobs, the per-blob partials are combined
// by a left fold in blob file order, so for an associative combine with
// identity zero the result equals the sequential fold.  The first error, in
// blob file order, cancels the pipeline and is returned.
func ParMapReduce[T any](
	ctx context.Context,
	r *ElementReader,
	mapFn func(Element) T,
	zero T,
	combine func(a, b T) T,
	opts ...DecoderOption,
) (T, error) {
	cfg := newDecoderOptions(opts)

	parent := ctx

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	blobs := generateBlobs(ctx, r.br, cfg.queueDepth)

	partials := rill.OrderedMap(blobs, int(cfg.nCPU), func(blob *Blob) (T, error) {
		acc := zero

		if blob.Type() != BlobTypeOSMData {
			return acc, nil
		}

		block, err := blob.ToPrimitiveBlock()
		if err != nil {
			return acc, err
		}

		for e, err := range block.Elements() {
			if err != nil {
				return acc, err
			}

			acc = combine(acc, mapFn(e))
		}

		return acc, nil
	})

	result := zero

	for partial := range partials {
		if partial.Error != nil {
			cancel()
			rill.DrainNB(partials)

			return zero, partial.Error
		}

		result = combine(result, partial.Value)
	}

	if err := parent.Err(); err != nil {
		return zero, err
	}

	return result, nil
}
