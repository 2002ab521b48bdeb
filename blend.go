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
	"math"

	"github.com/disintegration/imaging"
)

const (
	// MaskThreshold is the mask value up to which (inclusive) a cell is
	// considered background and its tile gets dimmed.
	MaskThreshold uint8 = 128

	// DimFactor is multiplied with the alpha channel of dimmed tiles.
	DimFactor = 0.6
)

// DimAlpha returns the alpha value a scaled by DimFactor, rounded to the
// nearest integer.
func DimAlpha(a uint8) uint8 {
	return uint8(math.Round(float64(a) * DimFactor))
}

// DimImage returns a copy of img where the alpha of each pixel is multiplied
// by DimFactor. Images without an alpha channel are considered opaque.
func DimImage(img image.Image) *image.NRGBA {
	res := imaging.Clone(img)
	bounds := res.Rect
	for y := 0; y < bounds.Dy(); y++ {
		row := res.Pix[y*res.Stride : y*res.Stride+4*bounds.Dx()]
		for i := 3; i < len(row); i += 4 {
			row[i] = DimAlpha(row[i])
		}
	}
	return res
}

// PrepareCellTile decides how a (already resized) tile is drawn for a cell
// whose mask sample is maskValue.
// Cells on the background (maskValue ≤ MaskThreshold) get a dimmed copy of
// tile, all other cells use tile as it is. tile itself is never modified.
func PrepareCellTile(tile image.Image, maskValue uint8) image.Image {
	if maskValue <= MaskThreshold {
		return DimImage(tile)
	}
	return tile
}
