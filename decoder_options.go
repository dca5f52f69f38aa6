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
	"runtime"
)

// DefaultNCpu provides the default number of CPUs for background decoding.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// decoderOptions provides optional configuration parameters for the parallel
// decode paths.
type decoderOptions struct {
	nCPU       uint16 // the number of CPUs to use for background processing
	queueDepth int    // outstanding undecoded blobs; 0 means 2 x nCPU
}

// DecoderOption configures how we set up the decoder.
type DecoderOption func(*decoderOptions)

// WithNCpus lets you set the number of CPUs to use for background
// processing.
func WithNCpus(n uint16) DecoderOption {
	return func(o *decoderOptions) {
		o.nCPU = max(n, 1)
	}
}

// WithQueueDepth lets you bound the number of raw blobs buffered between the
// producer and the decode workers.  Peak memory is proportional to this
// bound, not to file size.
func WithQueueDepth(n int) DecoderOption {
	return func(o *decoderOptions) {
		o.queueDepth = n
	}
}

func newDecoderOptions(opts []DecoderOption) decoderOptions {
	cfg := decoderOptions{nCPU: DefaultNCpu()}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.queueDepth <= 0 {
		cfg.queueDepth = 2 * int(cfg.nCPU)
	}

	return cfg
}
