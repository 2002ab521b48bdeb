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

	"github.com/disintegration/imaging"
)

// ResizeStrategy is a function that scales an image (img) to an image of
// exactly the size defined by tileWidth and tileHeight.
//
// The difference between ResizeStrategy and ImageResizer is that we think of
// an ImageResizer as an "engine", for example a library, that performs the
// scaling of an image exactly to a specific width and height.
// A ResizeStrategy decides how to nicely scale an image s.t. it fits, for
// example by cropping it first.
type ResizeStrategy func(resizer ImageResizer, tileWidth, tileHeight uint, img image.Image) image.Image

// ForceResize is a resize strategy that resizes to the given width and height,
// ignoring the ratio of the original image.
func ForceResize(resizer ImageResizer, tileWidth, tileHeight uint, img image.Image) image.Image {
	return resizer.Resize(tileWidth, tileHeight, img)
}

// CropRect returns the centered area of bounds that has the aspect ratio
// width / height. Only one axis is cropped: if bounds are relatively wider
// than the target the full height is kept, otherwise the full width.
// The offset on the cropped axis is (dimension - newDimension) / 2, so an odd
// remainder leaves the extra pixel on the right / bottom.
//
// width and height must be > 0.
func CropRect(bounds image.Rectangle, width, height int) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return bounds
	}
	aspect := float64(width) / float64(height)
	if float64(w)/float64(h) > aspect {
		newWidth := int(float64(h) * aspect)
		if newWidth < 1 {
			newWidth = 1
		}
		left := (w - newWidth) / 2
		return image.Rect(bounds.Min.X+left, bounds.Min.Y,
			bounds.Min.X+left+newWidth, bounds.Max.Y)
	}
	newHeight := int(float64(w) / aspect)
	if newHeight < 1 {
		newHeight = 1
	}
	top := (h - newHeight) / 2
	return image.Rect(bounds.Min.X, bounds.Min.Y+top,
		bounds.Max.X, bounds.Min.Y+top+newHeight)
}

// CropResize is a resize strategy that never distorts the image: it first
// crops the centered area with the target aspect ratio (see CropRect) and
// then scales that area to exactly tileWidth x tileHeight.
//
// The returned image never shares pixels with img.
func CropResize(resizer ImageResizer, tileWidth, tileHeight uint, img image.Image) image.Image {
	area := CropRect(img.Bounds(), int(tileWidth), int(tileHeight))
	cropped := imaging.Crop(img, area)
	if cropped.Rect.Dx() == int(tileWidth) && cropped.Rect.Dy() == int(tileHeight) {
		return cropped
	}
	return resizer.Resize(tileWidth, tileHeight, cropped)
}
