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
	"runtime"

	"github.com/BurntSushi/toml"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
)

// Config contains all options of a mosaic run. Use DefaultConfig to get a
// config with the documented defaults and change what you need.
//
// The toml tags are the keys used in config files, see LoadConfigFile.
type Config struct {
	// TargetText is the text that appears in the mosaic. Default "WIN".
	TargetText string `toml:"target_text"`

	// ImagesDir is the directory containing the tile images (not scanned
	// recursively). Default "images".
	ImagesDir string `toml:"small_images_dir"`

	// OutputPath is the file the mosaic is written to, the format is chosen
	// by the extension. Default "youbang_poster.jpg".
	OutputPath string `toml:"output_path"`

	// OutputSize is the requested size of the mosaic. The actual mosaic might
	// be larger by less than one tile in each direction because the last
	// row / column is not cut. Default 7680x4320.
	OutputSize Dimensions `toml:"output_size"`

	// TileSize is the size of each cell in the mosaic. Default 60x60.
	TileSize Dimensions `toml:"small_img_size"`

	// SampleSize is the size tiles are prepared with when loaded (cropped
	// to this aspect ratio and scaled). Default 100x100.
	SampleSize Dimensions `toml:"sample_size"`

	// FontPath is the font file for the text, may be empty.
	FontPath string `toml:"font_path"`

	// FontFallbacks are tried if FontPath can't be loaded.
	// Default DefaultFontFallbacks.
	FontFallbacks []string `toml:"font_fallbacks"`

	// FontSize is the size of the text in points (= pixels). Default 1800.
	FontSize float64 `toml:"font_size"`

	// Seed makes the tile selection reproducible. If nil the selection is
	// seeded with the current time.
	Seed *int64 `toml:"seed"`

	// JPGQuality is the quality between 1 and 100 used when storing jpg
	// images. Default 100.
	JPGQuality int `toml:"jpeg_quality"`

	// Interp is the name of the interpolation function used for resizing,
	// see InterPFromString. Default "lanczos3".
	Interp string `toml:"interp"`

	// NumRoutines is the number of cells composed concurrently.
	// Default is the number of CPUs.
	NumRoutines int `toml:"routines"`

	// DivideMode decides what happens with the last row / column if the
	// output size is not a multiple of the tile size, see DivideMode.
	// Default DividePad.
	DivideMode DivideMode `toml:"divide_mode"`

	// CacheSize is the number of resized tiles cached during composition.
	// Default ImageCacheSize.
	CacheSize int `toml:"cache"`
}

// DefaultConfig returns a config with all default values.
func DefaultConfig() Config {
	numRoutines := runtime.NumCPU()
	if numRoutines <= 0 {
		numRoutines = 4
	}
	fallbacks := make([]string, len(DefaultFontFallbacks))
	copy(fallbacks, DefaultFontFallbacks)
	return Config{
		TargetText:    "WIN",
		ImagesDir:     "images",
		OutputPath:    "youbang_poster.jpg",
		OutputSize:    Dim(7680, 4320),
		TileSize:      Dim(60, 60),
		SampleSize:    Dim(100, 100),
		FontPath:      "",
		FontFallbacks: fallbacks,
		FontSize:      1800,
		Seed:          nil,
		JPGQuality:    100,
		Interp:        "lanczos3",
		NumRoutines:   numRoutines,
		DivideMode:    DividePad,
		CacheSize:     ImageCacheSize,
	}
}

// LoadConfigFile reads a toml file and overwrites the values in cfg that are
// set in the file. Unknown keys are an error.
//
// Example file:
//
//	target_text = "WIN"
//	small_images_dir = "~/Pictures/tiles"
//	output_size = "1920x1080"
//	small_img_size = "40x40"
//	font_size = 600
//	seed = 42
func LoadConfigFile(path string, cfg *Config) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("can't read config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys in config file %s: %v", path, undecoded)
	}
	log.WithField("file", path).Debug("Loaded config file")
	return nil
}

// ExpandPaths replaces a leading ~ in all paths of the config by the home
// directory of the user.
func (cfg *Config) ExpandPaths() error {
	for _, p := range []*string{&cfg.ImagesDir, &cfg.OutputPath, &cfg.FontPath} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// Validate checks all values of the config.
func (cfg *Config) Validate() error {
	switch {
	case cfg.ImagesDir == "":
		return errors.New("images directory must not be empty")
	case cfg.OutputPath == "":
		return errors.New("output path must not be empty")
	case cfg.OutputSize.Empty():
		return fmt.Errorf("output size must be positive, got %s", cfg.OutputSize)
	case cfg.TileSize.Empty():
		return fmt.Errorf("tile size must be positive, got %s", cfg.TileSize)
	case cfg.SampleSize.Empty():
		return fmt.Errorf("sample size must be positive, got %s", cfg.SampleSize)
	case cfg.FontSize <= 0:
		return fmt.Errorf("font size must be positive, got %.1f", cfg.FontSize)
	case cfg.JPGQuality < 1 || cfg.JPGQuality > 100:
		return fmt.Errorf("jpeg quality must be between 1 and 100, got %d", cfg.JPGQuality)
	case cfg.NumRoutines <= 0:
		return fmt.Errorf("routines must be positive, got %d", cfg.NumRoutines)
	case cfg.DivideMode < DivideCrop || cfg.DivideMode > DividePad:
		return fmt.Errorf("invalid divide mode %s", cfg.DivideMode)
	}
	if _, err := InterPFromString(cfg.Interp); err != nil {
		return err
	}
	return ValidateOutputPath(cfg.OutputPath)
}
