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
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/nfnt/resize"
)

// nearestResizer keeps colors of solid images exact.
var nearestResizer = NewNfntResizer(resize.NearestNeighbor)

func solidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// gradientImage returns an opaque image where the red component of each
// pixel is its x coordinate (mod 256) and green is y.
func gradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

// countingSelector always selects tile 0 and counts the calls.
type countingSelector struct {
	calls int
}

func (s *countingSelector) Select(n int) int {
	s.calls++
	return 0
}

// countingResizer counts the calls of the wrapped resizer.
type countingResizer struct {
	ImageResizer
	calls int
}

func (r *countingResizer) Resize(width, height uint, img image.Image) image.Image {
	r.calls++
	return r.ImageResizer.Resize(width, height, img)
}

// noFonts is a font loader that never finds a font file.
func noFonts() FontLoader {
	return FontLoader{
		DPI:  72,
		Find: func(name string) (string, error) { return "", os.ErrNotExist },
	}
}
