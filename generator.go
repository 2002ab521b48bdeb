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
	"fmt"
	"image"
	"image/draw"
	"math/rand"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Generator creates text mosaics. It combines the tile pool, the font loader,
// the mask renderer and the compositor.
//
// The workflow is: LoadTiles reads the tile images, Generate creates the
// mosaic image from them and Run does both and saves the result.
type Generator struct {
	Config Config
	// Fonts loads the font for the mask.
	Fonts FontLoader
	// Resizer is used to prepare tiles and to fit them into the cells.
	Resizer ImageResizer
	// Selector selects the tiles, it is created from Config.Seed.
	Selector TileSelector
	// Progress creates the progress function for the composition, may be nil.
	Progress ProgressFactory
}

// NewGenerator returns a generator for the given config. The config should be
// valid, see Config.Validate.
func NewGenerator(cfg Config) *Generator {
	interP, err := InterPFromString(cfg.Interp)
	if err != nil {
		log.WithError(err).Warn("Invalid interpolation function, using lanczos3")
	}
	var randGen *rand.Rand
	if cfg.Seed != nil {
		randGen = rand.New(rand.NewSource(*cfg.Seed))
	}
	fonts := NewFontLoader()
	fonts.Fallbacks = cfg.FontFallbacks
	return &Generator{
		Config:   cfg,
		Fonts:    fonts,
		Resizer:  NewNfntResizer(interP),
		Selector: NewRandomTileSelector(randGen),
	}
}

// Result describes a finished run.
type Result struct {
	// ID identifies the run in the log.
	ID string
	// Path is the file the mosaic was written to.
	Path string
	// Bounds are the bounds of the mosaic.
	Bounds image.Rectangle
	// Tiles is the number of tile images used.
	Tiles int
	// Skipped is the number of images that could not be loaded.
	Skipped int
	// Font is the source of the font used for the text.
	Font string
	// Duration is the time the whole run took.
	Duration time.Duration
}

// LoadTiles loads the tile pool from Config.ImagesDir. It returns ErrNoImages
// if the directory contains no usable image.
func (g *Generator) LoadTiles() (*TilePool, error) {
	pool, err := LoadTilePool(g.Config.ImagesDir, g.Config.SampleSize.Point(), JPGAndPNG, g.Resizer)
	if err != nil {
		return nil, fmt.Errorf("can't read images directory: %w", err)
	}
	if pool.Len() == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, g.Config.ImagesDir)
	}
	return pool, nil
}

// NewCanvas returns the canvas for the mosaic: an opaque black image that is
// covered completely by the cells of division.
func NewCanvas(division TileDivision) *image.RGBA {
	canvas := image.NewRGBA(division.Bounds())
	draw.Draw(canvas, canvas.Rect, image.Black, image.Point{}, draw.Src)
	return canvas
}

// Generate creates the mosaic from the given tiles.
func (g *Generator) Generate(pool *TilePool) (*image.RGBA, string, error) {
	if pool.Len() == 0 {
		return nil, "", ErrNoImages
	}
	cfg := g.Config
	f := g.Fonts.Load(cfg.FontPath, cfg.FontSize)
	defer f.Face.Close()
	mask := RenderTextMask(cfg.TargetText, cfg.OutputSize.Width, cfg.OutputSize.Height, f.Face)

	divider := NewFixedSizeDivider(cfg.TileSize.Width, cfg.TileSize.Height, cfg.DivideMode)
	division := divider.Divide(image.Rect(0, 0, cfg.OutputSize.Width, cfg.OutputSize.Height))
	cols, rows := division.GridSize()
	log.WithFields(log.Fields{
		"cols": cols,
		"rows": rows,
		"mode": cfg.DivideMode,
	}).Debug("Divided canvas")
	canvas := NewCanvas(division)

	compositor := NewCompositor(g.Resizer, g.Selector, cfg.NumRoutines)
	compositor.CacheSize = cfg.CacheSize
	compositor.Progress = g.Progress
	if err := compositor.Paste(pool, division, mask, canvas); err != nil {
		return nil, "", err
	}
	return canvas, f.Source, nil
}

// Run loads the tiles, creates the mosaic and writes it to Config.OutputPath.
func (g *Generator) Run() (*Result, error) {
	start := time.Now()
	res := &Result{ID: uuid.New().String(), Path: g.Config.OutputPath}
	logger := log.WithField("run", res.ID)

	logger.WithField("dir", g.Config.ImagesDir).Info("Loading images")
	pool, err := g.LoadTiles()
	if err != nil {
		return nil, err
	}
	res.Tiles, res.Skipped = pool.Len(), len(pool.Skipped)
	logger.WithFields(log.Fields{
		"tiles":   res.Tiles,
		"skipped": res.Skipped,
	}).Info("Images loaded")

	mosaic, fontSource, err := g.Generate(pool)
	if err != nil {
		return nil, err
	}
	res.Bounds, res.Font = mosaic.Rect, fontSource
	logger.WithFields(log.Fields{
		"size": fmt.Sprintf("%dx%d", mosaic.Rect.Dx(), mosaic.Rect.Dy()),
		"font": fontSource,
	}).Info("Mosaic composed")

	if err := SaveImage(g.Config.OutputPath, mosaic, g.Config.JPGQuality); err != nil {
		return nil, fmt.Errorf("can't save mosaic: %w", err)
	}
	res.Duration = time.Since(start)
	logger.WithFields(log.Fields{
		"path":     res.Path,
		"duration": res.Duration,
	}).Info("Mosaic saved")
	return res, nil
}
