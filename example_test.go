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

package osmpbf_test

import (
	"context"
	"fmt"
	"log"

	"m4o.io/osmpbf"
)

func ExampleElementReader_ForEach() {
	r, err := osmpbf.Open("testdata/sample.osm.pbf")
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	var nc, wc, rc uint64

	err = r.ForEach(func(e osmpbf.Element) error {
		switch e.(type) {
		case *osmpbf.Node, *osmpbf.DenseNode:
			nc++
		case *osmpbf.Way:
			wc++
		case *osmpbf.Relation:
			rc++
		}

		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Nodes: %d, Ways: %d, Relations: %d\n", nc, wc, rc)
	// Output:
	// Nodes: 3, Ways: 2, Relations: 1
}

func ExampleParMapReduce() {
	r, err := osmpbf.Open("testdata/sample.osm.pbf")
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	ways, err := osmpbf.ParMapReduce(context.Background(), r,
		func(e osmpbf.Element) uint64 {
			if _, ok := e.(*osmpbf.Way); ok {
				return 1
			}

			return 0
		},
		0,
		func(a, b uint64) uint64 { return a + b },
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Ways: %d\n", ways)
	// Output:
	// Ways: 2
}
