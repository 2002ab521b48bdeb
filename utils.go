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
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	// Debug is true if code should be compiled in debug mode, printing
	// more stuff and performing checks.
	Debug = false
)

var (
	// BufferSize is the (default) size of buffers. Some methods create buffered
	// channels, this parameter controls how big such buffers might be.
	// Usually such buffers store no big data (ints, bools etc.).
	BufferSize = 1000
)

// ProgressFunc is a function that is used to inform a caller about the progress
// of a called function.
// For example if we compose thousands of cells we might wish to know
// how far the call is and give feedback to the user.
// The called method calls the process function after each iteration.
type ProgressFunc func(num int)

// ProgressFactory creates the ProgressFunc for a task once the number of
// items to process (total) is known.
type ProgressFactory func(total int) ProgressFunc

// ProgressStep returns the step for progress functions that report about ten
// times for total items.
func ProgressStep(total int) int {
	step := total / 10
	if step == 0 {
		step = 1
	}
	return step
}

// LoggerProgressFunc is a parameterized ProgressFunc that logs to log.
// The output describes the progress (how many of how many objects processed).
// Log messages may have an addition prefix. max is the total number of elements
// to process and step describes how often to print to the log (for example
// step = 100 every 100 items).
func LoggerProgressFunc(prefix string, max, step int) ProgressFunc {
	return func(num int) {
		if step == 0 {
			return
		}
		if !(step < 0 || num%step == 0 || num == max) {
			return
		}
		if max == 0 {
			return
		}
		percent := (float64(num) / float64(max)) * 100.0
		if percent > 100.0 {
			percent = 100.0
		}
		if prefix == "" {
			log.Debugf("Progress: %d of %d (%.1f%%)", num, max, percent)
		} else {
			log.Debugf("%s: %d of %d (%.1f%%)", prefix, num, max, percent)
		}
	}
}

// StdProgressFunc is a parameterized ProgressFunc that logs to the
// specified writer.
// The output describes the progress (how many of how many objects processed).
// Log messages may have an addition prefix. max is the total number of elements
// to process and step describes how often to print to the log (for example
// step = 100 every 100 items).
func StdProgressFunc(w io.Writer, prefix string, max, step int) ProgressFunc {
	return func(num int) {
		if step == 0 {
			return
		}
		if !(step < 0 || num%step == 0 || num == max) {
			return
		}
		if max == 0 {
			return
		}
		percent := (float64(num) / float64(max)) * 100.0
		if percent > 100.0 {
			percent = 100.0
		}
		if prefix == "" {
			fmt.Fprintf(w, "Progress: %d of %d (%.1f%%)\n", num, max, percent)
		} else {
			fmt.Fprintf(w, "%s: %d of %d (%.1f%%)\n", prefix, num, max, percent)
		}
	}
}

// ParseDimensions parses a string of the form "AxB" where A and B are positive
// integers.
func ParseDimensions(s string) (int, int, error) {
	split := strings.Split(s, "x")
	if len(split) != 2 {
		return -1, -1, fmt.Errorf("Invalid dimension format: %s. Expect \"AxB\"", s)
	}
	first, second := strings.TrimSpace(split[0]), strings.TrimSpace(split[1])
	firstInt, firstErr := strconv.Atoi(first)
	if firstErr != nil {
		return -1, -1, firstErr
	}
	secondInt, secondErr := strconv.Atoi(second)
	if secondErr != nil {
		return -1, -1, secondErr
	}
	if firstInt < 0 || secondInt < 0 {
		return -1, -1, fmt.Errorf("Dimensions must be positive, got %d and %d",
			firstInt, secondInt)
	}
	return firstInt, secondInt, nil
}

// Dimensions is a width / height pair in pixels. In config files and on the
// command line it is written as "AxB", for example "7680x4320".
//
// *Dimensions implements the flag value interface used by cobra as well as
// encoding.TextUnmarshaler.
type Dimensions struct {
	Width, Height int
}

// Dim returns new Dimensions.
func Dim(width, height int) Dimensions {
	return Dimensions{Width: width, Height: height}
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Set parses s with ParseDimensions.
func (d *Dimensions) Set(s string) error {
	w, h, err := ParseDimensions(s)
	if err != nil {
		return err
	}
	d.Width, d.Height = w, h
	return nil
}

// Type returns the type name shown in command line usage.
func (d *Dimensions) Type() string {
	return "WxH"
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dimensions) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

// MarshalText implements encoding.TextMarshaler.
func (d Dimensions) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Point returns the dimensions as an image.Point.
func (d Dimensions) Point() image.Point {
	return image.Pt(d.Width, d.Height)
}

// Empty returns true if one of the dimensions is ≤ 0.
func (d Dimensions) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// floorDiv divides a by b (b > 0) rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
