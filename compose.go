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
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	// ImageCacheSize is the default size of image caches. Resizing the same
	// tile again and again for each cell is expensive, so the compositor caches
	// resized tiles. This variable controls the size of such caches,
	// it must be a number ≥ 1.
	ImageCacheSize = 15

	// ErrNoImages is returned if there are no usable tile images.
	ErrNoImages = errors.New("no usable images found")
)

// ImageCache is used to cache resized versions of tiles during mosaic
// generation. The same tile with the same size appears often in a mosaic.
// This and the fact that resizing an image is not very fast makes it useful
// to cache the images.
//
// When the cache is full the oldest entry is removed.
// Caches are safe for concurrent use.
type ImageCache struct {
	m           *sync.Mutex
	size        int
	content     map[string]image.Image
	insertOrder []string
}

// NewImageCache returns an empty image cache. size is the number of images that
// will be cached. size must be ≥ 1.
func NewImageCache(size int) *ImageCache {
	if size <= 0 {
		size = 1
	}
	var m sync.Mutex
	return &ImageCache{
		m:           &m,
		size:        size,
		content:     make(map[string]image.Image, size),
		insertOrder: make([]string, 0, size),
	}
}

func (cache *ImageCache) keyFormat(tile, width, height int) string {
	return fmt.Sprintf("%d-%d-%d", tile, width, height)
}

func (cache *ImageCache) lookup(key string) image.Image {
	if img, has := cache.content[key]; has {
		return img
	}
	return nil
}

// Put adds an image to the cache. Usually Put is called after Get: If the
// image was not found in the cache it is scaled and then added to the cache via
// Put.
func (cache *ImageCache) Put(tile, width, height int, img image.Image) {
	cache.m.Lock()
	defer cache.m.Unlock()
	keyFmt := cache.keyFormat(tile, width, height)
	// first check if image already in cache, if yes do nothing
	if lookup := cache.lookup(keyFmt); lookup != nil {
		return
	}
	// check if cache is full
	if len(cache.insertOrder) < cache.size {
		cache.insertOrder = append(cache.insertOrder, keyFmt)
		cache.content[keyFmt] = img
	} else {
		// cache full, remove first element form cache
		// since size must be >= 1 this should be fine
		fst := cache.insertOrder[0]
		cache.insertOrder = append(cache.insertOrder[1:], keyFmt)
		delete(cache.content, fst)
		cache.content[keyFmt] = img
	}
}

// Get returns the image from the cache. If the return value is nil the image
// was not found in the cache and should be added to the cache by Put.
func (cache *ImageCache) Get(tile, width, height int) image.Image {
	cache.m.Lock()
	defer cache.m.Unlock()
	return cache.lookup(cache.keyFormat(tile, width, height))
}

// Len returns the number of cached images.
func (cache *ImageCache) Len() int {
	cache.m.Lock()
	defer cache.m.Unlock()
	return len(cache.insertOrder)
}

// Compositor pastes tiles on the cells of a mosaic.
type Compositor struct {
	// Resizer scales the tiles to the cell size.
	Resizer ImageResizer
	// Strategy is the way tiles are fit into a cell, defaults to ForceResize.
	Strategy ResizeStrategy
	// Selector selects the tile for each cell.
	Selector TileSelector
	// NumRoutines is the number of cells composed concurrently.
	NumRoutines int
	// CacheSize is the number of resized tiles kept in memory.
	CacheSize int
	// Progress creates the progress function for the cells that get a tile,
	// may be nil. Cells outside the mask are not counted.
	Progress ProgressFactory
}

// NewCompositor returns a compositor using the given resizer and selector.
// If selector is nil a time seeded RandomTileSelector is used.
func NewCompositor(resizer ImageResizer, selector TileSelector, numRoutines int) *Compositor {
	if resizer == nil {
		resizer = DefaultResizer
	}
	if selector == nil {
		selector = NewRandomTileSelector(nil)
	}
	if numRoutines <= 0 {
		numRoutines = 1
	}
	return &Compositor{
		Resizer:     resizer,
		Strategy:    ForceResize,
		Selector:    selector,
		NumRoutines: numRoutines,
		CacheSize:   ImageCacheSize,
	}
}

// cellJob is a cell that gets a tile.
type cellJob struct {
	area      image.Rectangle
	tile      int
	maskValue uint8
}

// SamplePoint returns the point of a cell that is compared with the mask: the
// top left corner plus half the cell size (rounded down).
func SamplePoint(cell image.Rectangle) image.Point {
	return image.Pt(cell.Min.X+cell.Dx()/2, cell.Min.Y+cell.Dy()/2)
}

// plan selects the tiles for all cells whose sample point is inside the mask.
// Cells are visited row by row, so the selection only depends on the selector.
func (c *Compositor) plan(numTiles int, division TileDivision, mask *TextMask) []cellJob {
	jobs := make([]cellJob, 0, division.Size())
	for _, row := range division {
		for _, cell := range row {
			value, inside := mask.Sample(SamplePoint(cell))
			if !inside {
				continue
			}
			jobs = append(jobs, cellJob{
				area:      cell,
				tile:      c.Selector.Select(numTiles),
				maskValue: value,
			})
		}
	}
	return jobs
}

func (c *Compositor) insertTile(into draw.Image, job cellJob, tiles *TilePool, cache *ImageCache) {
	tileWidth, tileHeight := job.area.Dx(), job.area.Dy()
	img := cache.Get(job.tile, tileWidth, tileHeight)
	if img == nil {
		strategy := c.Strategy
		if strategy == nil {
			strategy = ForceResize
		}
		img = strategy(c.Resizer, uint(tileWidth), uint(tileHeight), tiles.Get(job.tile))
		cache.Put(job.tile, tileWidth, tileHeight, img)
	}
	img = PrepareCellTile(img, job.maskValue)
	draw.Draw(into, job.area, img, img.Bounds().Min, draw.Over)
}

// Paste draws a tile on each cell of the division. For each cell the mask is
// sampled at SamplePoint, cells with a sample point outside the mask remain
// untouched. All other cells get a random tile from tiles, resized to the
// cell and dimmed if the mask value is ≤ MaskThreshold (see PrepareCellTile).
//
// The tiles are selected one after another (row by row), the resizing and
// drawing happens with NumRoutines go routines. Cells must not overlap.
func (c *Compositor) Paste(tiles *TilePool, division TileDivision, mask *TextMask, canvas draw.Image) error {
	if tiles.Len() == 0 {
		return ErrNoImages
	}
	jobs := c.plan(tiles.Len(), division, mask)
	log.WithFields(log.Fields{
		"cells":   division.Size(),
		"painted": len(jobs),
	}).Debug("Composing mosaic")

	numRoutines := c.NumRoutines
	if numRoutines <= 0 {
		numRoutines = 1
	}
	cache := NewImageCache(c.CacheSize)
	jobChan := make(chan cellJob, BufferSize)
	done := make(chan bool, BufferSize)

	for w := 0; w < numRoutines; w++ {
		go func() {
			for next := range jobChan {
				c.insertTile(canvas, next, tiles, cache)
				done <- true
			}
		}()
	}

	go func() {
		for _, job := range jobs {
			jobChan <- job
		}
		close(jobChan)
	}()

	var progress ProgressFunc
	if c.Progress != nil {
		progress = c.Progress(len(jobs))
	}
	for numDone := 1; numDone <= len(jobs); numDone++ {
		<-done
		if progress != nil {
			progress(numDone)
		}
	}
	return nil
}
