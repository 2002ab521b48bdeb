// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package collage

import (
	"math/rand"
	"time"
)

// TileSelector selects the tile for a cell of the mosaic.
// Select is called with the number of tiles n > 0 and must return an index
// in [0, n).
type TileSelector interface {
	Select(n int) int
}

// RandomTileSelector implements TileSelector by drawing a tile uniformly at
// random (with replacement).
//
// Note that instances of this selector are not safe for concurrent use.
type RandomTileSelector struct {
	randGen *rand.Rand
}

// NewRandomTileSelector returns a new random selector.
// The provided random generator is used to generate random numbers. You can
// use nil and a random generator seeded with the current time will be created.
//
// Note that rand.Rand instances are not safe for concurrent use.
// Thus using the same generator on two instances that run concurrently is
// not allowed.
func NewRandomTileSelector(randGen *rand.Rand) *RandomTileSelector {
	if randGen == nil {
		seed := time.Now().UnixNano()
		randGen = rand.New(rand.NewSource(seed))
	}
	return &RandomTileSelector{randGen}
}

// SeededTileSelector returns a RandomTileSelector with a generator seeded
// with seed, the mosaic is reproducible this way.
func SeededTileSelector(seed int64) *RandomTileSelector {
	return NewRandomTileSelector(rand.New(rand.NewSource(seed)))
}

// Select implements TileSelector.
func (sel *RandomTileSelector) Select(n int) int {
	return sel.randGen.Intn(n)
}
