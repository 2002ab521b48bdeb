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

	log "github.com/sirupsen/logrus"
)

// DivideMode is used to describe in which way to handle remaining pixels
// in the division of the canvas.
// As an example consider a canvas with 99 pixels width that we want to divide
// into cells with 10 pixels. This leads to 9 cells with 10 pixels, but 9
// pixels are left. DivideMode now describes what to do with the remaining 9
// pixels:
// Crop would mean to discard the remaining pixels.
// Adjust would mean to adjust the last cell to have a width of 9 and pad
// would mean to add an additional cell with width 10 (and thus describing a
// cell that does not intersect with the canvas everywhere).
//
// Mosaics are created with DividePad by default, the resulting canvas grows to
// the padded size. With DivideAdjust the canvas has exactly the requested
// size and with DivideCrop it shrinks to whole cells.
//
// In config files and on the command line the modes are written as "crop",
// "adjust" and "pad".
type DivideMode int

const (
	// DivideCrop is the mode in which remaining pixels are discarded.
	DivideCrop DivideMode = iota
	// DivideAdjust is the mode in which a cell is adjusted to the remaining
	// pixels.
	DivideAdjust
	// DividePad is the mode in which a cell of a certain size is created even
	// if not enough pixels are remaining.
	DividePad
)

var divideModeNames = []string{"crop", "adjust", "pad"}

func (mode DivideMode) String() string {
	if mode >= 0 && int(mode) < len(divideModeNames) {
		return divideModeNames[mode]
	}
	return fmt.Sprintf("DivideMode(%d)", mode)
}

// ParseDivideMode parses the name of a divide mode, see DivideMode.
func ParseDivideMode(s string) (DivideMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range divideModeNames {
		if s == name {
			return DivideMode(i), nil
		}
	}
	return DividePad, fmt.Errorf("unknown divide mode %q, expected one of %s",
		s, strings.Join(divideModeNames, ", "))
}

// Set implements the flag value interface.
func (mode *DivideMode) Set(s string) error {
	parsed, err := ParseDivideMode(s)
	if err != nil {
		return err
	}
	*mode = parsed
	return nil
}

// Type implements the flag value interface.
func (mode *DivideMode) Type() string {
	return "mode"
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (mode *DivideMode) UnmarshalText(text []byte) error {
	return mode.Set(string(text))
}

// MarshalText implements encoding.TextMarshaler.
func (mode DivideMode) MarshalText() ([]byte, error) {
	return []byte(mode.String()), nil
}

// TileDivision represents the division of a canvas into cells.
//
// Cells are not stored in the fashion (x, y) but (y, x). That means each entry
// in the division describes one row of the canvas.
// The get method does this correctly.
type TileDivision [][]image.Rectangle

// Get returns the rectangle at position div[y][x], that is the rectangle
// in row y and column x.
func (div TileDivision) Get(x, y int) image.Rectangle {
	return div[y][x]
}

// Size returns the number of cells in the division.
func (div TileDivision) Size() int {
	res := 0
	for _, row := range div {
		res += len(row)
	}
	return res
}

// Bounds returns the smallest rectangle containing all cells. For a division
// created by FixedSizeDivider this is the canvas of the mosaic.
func (div TileDivision) Bounds() image.Rectangle {
	var res image.Rectangle
	for _, row := range div {
		for _, r := range row {
			res = res.Union(r)
		}
	}
	return res
}

// FixedSizeDivider divides a canvas into cells where each cell has the
// given width and height.
// The DivideMode describes how to deal with "remaining" pixels.
type FixedSizeDivider struct {
	Width, Height int
	Mode          DivideMode
}

// NewFixedSizeDivider returns a new FixedSizeDivider.
func NewFixedSizeDivider(width, height int, mode DivideMode) FixedSizeDivider {
	return FixedSizeDivider{Width: width, Height: height, Mode: mode}
}

func (divider FixedSizeDivider) getSize(originalDimension, tileDimension int) int {
	switch {
	case tileDimension > originalDimension, tileDimension == 0:
		return 1
	case originalDimension%tileDimension == 0:
		return originalDimension / tileDimension
	default:
		switch divider.Mode {
		case DivideCrop:
			return originalDimension / tileDimension
		default:
			return (originalDimension / tileDimension) + 1
		}
	}
}

func (divider FixedSizeDivider) outerBound(imgBoundPosition, position int) int {
	switch {
	case position <= imgBoundPosition:
		return position
	case divider.Mode == DivideAdjust:
		return imgBoundPosition
	default:
		// now mode must be DividePad, for crop we should never end up here
		if Debug {
			if divider.Mode != DividePad {
				log.Warn("Got divide mode ", divider.Mode, " expected ", DividePad)
			}
		}
		return position
	}
}

// Divide divides bounds into cells. The result is empty if bounds are empty.
// Rows and columns are counted with ceiling division in DividePad mode, so
// every cell has exactly the size of the divider.
func (divider FixedSizeDivider) Divide(bounds image.Rectangle) TileDivision {
	// no division possible if bounds are empty
	if bounds.Empty() {
		return nil
	}
	imgWidth := bounds.Dx()
	imgHeight := bounds.Dy()

	numRows := divider.getSize(imgHeight, divider.Height)
	numCols := divider.getSize(imgWidth, divider.Width)
	res := make(TileDivision, numRows)
	for i := 0; i < numRows; i++ {
		res[i] = make([]image.Rectangle, numCols)
		for j := 0; j < numCols; j++ {
			x0 := bounds.Min.X + j*divider.Width
			y0 := bounds.Min.Y + i*divider.Height
			x1 := divider.outerBound(bounds.Max.X, x0+divider.Width)
			y1 := divider.outerBound(bounds.Max.Y, y0+divider.Height)
			res[i][j] = image.Rect(x0, y0, x1, y1)
		}
	}
	return res
}

// GridSize returns the number of columns and rows of the division.
func (div TileDivision) GridSize() (cols, rows int) {
	if len(div) == 0 {
		return 0, 0
	}
	return len(div[0]), len(div)
}
