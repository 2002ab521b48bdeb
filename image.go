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
	"strings"

	"github.com/nfnt/resize"
)

// SupportedImageFunc is a function that takes a file extension and decides if
// this file extension is supported. Tiles are usually read from jpg and png
// files.
//
// The extension passed to this function could be for example ".txt" or ".jpg".
// JPGAndPNG is an implementation accepting jpg and png files.
type SupportedImageFunc func(ext string) bool

// JPGAndPNG is an implementation of SupportedImageFunc accepting jpg and png
// file extensions (case-insensitive).
func JPGAndPNG(ext string) bool {
	ext = strings.ToLower(ext)
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

// ImageResizer resizes an image to the given width and height.
type ImageResizer interface {
	Resize(width, height uint, img image.Image) image.Image
}

// NfntResizer uses the nfnt/resize package to resize an image.
type NfntResizer struct {
	// InterP is the interpolation function to use.
	InterP resize.InterpolationFunction
}

// NewNfntResizer returns a new resizer given the interpolation function.
func NewNfntResizer(interP resize.InterpolationFunction) NfntResizer {
	return NfntResizer{interP}
}

// GetInterP returns an interpolation function given a desired quality.
// The higher the quality the better the interpolation should be, but execution
// time is higher. Currently supported are values between 0 and 5, each
// selecting a different interpolation function. Values greater than 5 are
// treated as 5.
func GetInterP(quality uint) resize.InterpolationFunction {
	switch quality {
	case 0:
		return resize.NearestNeighbor
	case 1:
		return resize.Bilinear
	case 2:
		return resize.Bicubic
	case 3:
		return resize.MitchellNetravali
	case 4:
		return resize.Lanczos2
	default:
		return resize.Lanczos3
	}
}

var interPNames = []string{
	"nearest",
	"bilinear",
	"bicubic",
	"mitchell",
	"lanczos2",
	"lanczos3",
}

// InterPString returns a human readable name of the interpolation function.
// The names are the ones accepted by InterPFromString.
func InterPString(interP resize.InterpolationFunction) string {
	if int(interP) >= 0 && int(interP) < len(interPNames) {
		return interPNames[interP]
	}
	return fmt.Sprintf("InterpolationFunction(%d)", interP)
}

// InterPFromString parses the name of an interpolation function, see
// InterPString. Names are case-insensitive.
func InterPFromString(s string) (resize.InterpolationFunction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range interPNames {
		if s == name {
			return GetInterP(uint(i)), nil
		}
	}
	return resize.Lanczos3, fmt.Errorf("unknown interpolation function %q, expected one of %s",
		s, strings.Join(interPNames, ", "))
}

var (
	// DefaultResizer is the resizer that is used by default, if you're
	// looking for a resizer default argument this seems useful.
	DefaultResizer = NewNfntResizer(resize.Lanczos3)
)

// Resize calls nfnt/resize methods.
func (resizer NfntResizer) Resize(width, height uint, img image.Image) image.Image {
	return resize.Resize(width, height, img, resizer.InterP)
}
