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

// Package osmpbf reads OpenStreetMap data in the PBF container format.
//
// The file is addressable at three levels.  BlobReader iterates raw framed
// blobs without decompressing them; Blob.Decode turns one blob into a
// Header or a PrimitiveBlock; a PrimitiveBlock's groups lazily decode nodes,
// dense nodes, ways and relations.  ElementReader flattens all of it into a
// single element stream, either sequentially with ForEach or concurrently
// with ParMapReduce, which decodes blobs on a worker pool and combines
// per-blob partial results in deterministic file order.
//
// Elements yielded by iteration are views borrowing their primitive block;
// use an element's Copy method to obtain an owned model value that survives
// the block.
package osmpbf
