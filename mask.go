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

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// TextMask is a single channel image of the size of the (requested) mosaic.
// Pixels covered by the rendered text have high values (up to 255), the
// background is 0. Anti-aliased edges have values in between.
type TextMask struct {
	Gray *image.Gray
}

// NewTextMask returns an empty (all 0) mask of the given size.
func NewTextMask(width, height int) *TextMask {
	return &TextMask{Gray: image.NewGray(image.Rect(0, 0, width, height))}
}

// Bounds returns the bounds of the mask.
func (mask *TextMask) Bounds() image.Rectangle {
	return mask.Gray.Rect
}

// Sample returns the mask value at p. The second return value is false if p
// is not inside the mask.
func (mask *TextMask) Sample(p image.Point) (uint8, bool) {
	if !p.In(mask.Gray.Rect) {
		return 0, false
	}
	return mask.Gray.GrayAt(p.X, p.Y).Y, true
}

// TextBounds returns the tight bounding box of the ink of text drawn with
// face with the dot at the origin. The rectangle is rounded outwards to whole
// pixels.
func TextBounds(face font.Face, text string) image.Rectangle {
	bounds, _ := font.BoundString(face, text)
	return image.Rect(bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil())
}

// TextOrigin returns the dot (pen position on the baseline) used to draw
// text centered on a width x height mask.
//
// The offset ((width - textWidth) / 2, (height - textHeight) / 2), rounded
// down, is computed from the size of the ink box. The text is anchored at
// that offset with the left edge of its advance and the ascender line of
// face, so the ink itself sits lower by the gap between ascender and the top
// of the glyphs and to the right by the left side bearing.
func TextOrigin(face font.Face, text string, width, height int) image.Point {
	textBounds := TextBounds(face, text)
	x := floorDiv(width-textBounds.Dx(), 2)
	y := floorDiv(height-textBounds.Dy(), 2)
	return image.Pt(x, y+face.Metrics().Ascent.Ceil())
}

// RenderTextMask renders text with face centered on a new mask of size
// width x height, see TextOrigin for the placement. Text that is larger
// than the mask is simply clipped.
func RenderTextMask(text string, width, height int, face font.Face) *TextMask {
	mask := NewTextMask(width, height)
	if text == "" {
		return mask
	}
	origin := TextOrigin(face, text, width, height)
	drawer := &font.Drawer{
		Dst:  mask.Gray,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(origin.X, origin.Y),
	}
	drawer.DrawString(text)
	return mask
}
