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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
)

// DecodeErrorKind classifies why a tile could not be loaded.
type DecodeErrorKind int

const (
	// DecodeRead means the file could not be opened or read.
	DecodeRead DecodeErrorKind = iota
	// DecodeUnsupported means no registered decoder recognized the data.
	DecodeUnsupported
	// DecodeCorrupt means the format was recognized but the data is broken
	// or the image is empty.
	DecodeCorrupt
)

func (kind DecodeErrorKind) String() string {
	switch kind {
	case DecodeRead:
		return "read error"
	case DecodeUnsupported:
		return "unsupported format"
	case DecodeCorrupt:
		return "corrupt data"
	default:
		return fmt.Sprintf("DecodeErrorKind(%d)", kind)
	}
}

// DecodeError is the error for a single tile file that could not be decoded
// or prepared. The tile pool skips such files.
type DecodeError struct {
	Path string
	Kind DecodeErrorKind
	Err  error
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("can't load tile %s (%s): %v", err.Path, err.Kind, err.Err)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

func newDecodeError(path string, err error) *DecodeError {
	var pathErr *fs.PathError
	kind := DecodeCorrupt
	switch {
	case errors.As(err, &pathErr):
		kind = DecodeRead
	case errors.Is(err, image.ErrFormat):
		kind = DecodeUnsupported
	}
	return &DecodeError{Path: path, Kind: kind, Err: err}
}

var errEmptyImage = errors.New("image is empty")

// TilePool is the in-memory collection of prepared tiles. All tiles have the
// same size (the sampling size the pool was loaded with) and are never
// modified after loading.
type TilePool struct {
	// Tiles are the prepared images.
	Tiles []image.Image
	// Names contains the file name of Tiles[i] at position i.
	Names []string
	// Skipped contains an entry for each file that matched the filter but
	// could not be loaded.
	Skipped []*DecodeError
}

// NewTilePool returns a pool containing the given (already prepared) tiles.
func NewTilePool(tiles ...image.Image) *TilePool {
	names := make([]string, len(tiles))
	for i := range tiles {
		names[i] = fmt.Sprintf("tile-%d", i)
	}
	return &TilePool{Tiles: tiles, Names: names}
}

// Len returns the number of tiles in the pool.
func (pool *TilePool) Len() int {
	if pool == nil {
		return 0
	}
	return len(pool.Tiles)
}

// Get returns the tile with the given index.
func (pool *TilePool) Get(i int) image.Image {
	return pool.Tiles[i]
}

// PrepareTile opens the image file and prepares it with CropResize to be
// exactly size.X x size.Y pixels. Errors are always of type *DecodeError.
func PrepareTile(path string, size image.Point, resizer ImageResizer) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, newDecodeError(path, err)
	}
	if img.Bounds().Empty() {
		return nil, &DecodeError{Path: path, Kind: DecodeCorrupt, Err: errEmptyImage}
	}
	return CropResize(resizer, uint(size.X), uint(size.Y), img), nil
}

// LoadTilePool reads all supported images from dir (not recursive) and
// prepares them, see PrepareTile. The tiles are in the order of the directory
// listing. If filter is nil JPGAndPNG is used, if resizer is nil
// DefaultResizer.
//
// Files that can't be loaded are logged and skipped, the returned error is
// only non-nil if the directory itself can't be read. The returned pool might
// be empty.
func LoadTilePool(dir string, size image.Point, filter SupportedImageFunc, resizer ImageResizer) (*TilePool, error) {
	if filter == nil {
		filter = JPGAndPNG
	}
	if resizer == nil {
		resizer = DefaultResizer
	}
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	pool := &TilePool{}
	for _, file := range files {
		if file.IsDir() || !filter(filepath.Ext(file.Name())) {
			continue
		}
		path := filepath.Join(dir, file.Name())
		tile, tileErr := PrepareTile(path, size, resizer)
		if tileErr != nil {
			decodeErr := tileErr.(*DecodeError)
			log.WithFields(log.Fields{
				log.ErrorKey: decodeErr.Err,
				"file":       file.Name(),
				"kind":       decodeErr.Kind.String(),
			}).Warn("Can't load image, skipping it")
			pool.Skipped = append(pool.Skipped, decodeErr)
			continue
		}
		pool.Tiles = append(pool.Tiles, tile)
		pool.Names = append(pool.Names, file.Name())
	}
	log.WithFields(log.Fields{
		"dir":     dir,
		"tiles":   len(pool.Tiles),
		"skipped": len(pool.Skipped),
	}).Debug("Loaded tile pool")
	return pool, nil
}
