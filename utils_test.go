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
	"bytes"
	"strings"
	"testing"
)

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		in            string
		width, height int
		wantErr       bool
	}{
		{"7680x4320", 7680, 4320, false},
		{"60x60", 60, 60, false},
		{" 10 x 20 ", 10, 20, false},
		{"0x0", 0, 0, false},
		{"10", -1, -1, true},
		{"10x20x30", -1, -1, true},
		{"axb", -1, -1, true},
		{"-1x10", -1, -1, true},
	}
	for _, tt := range tests {
		width, height, err := ParseDimensions(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDimensions(%q) error = %v, want error %v", tt.in, err, tt.wantErr)
			continue
		}
		if width != tt.width || height != tt.height {
			t.Errorf("ParseDimensions(%q) = (%d, %d), want (%d, %d)", tt.in, width, height, tt.width, tt.height)
		}
	}
}

func TestDimensionsText(t *testing.T) {
	var d Dimensions
	if err := d.UnmarshalText([]byte("1920x1080")); err != nil {
		t.Fatal(err)
	}
	if d != Dim(1920, 1080) || d.Point().X != 1920 || d.Empty() {
		t.Errorf("unexpected dimensions %v", d)
	}
	text, _ := d.MarshalText()
	if string(text) != "1920x1080" {
		t.Errorf("MarshalText = %s", text)
	}
	if err := d.Set("oops"); err == nil {
		t.Error("expected error for invalid dimensions")
	}
	if d != Dim(1920, 1080) {
		t.Errorf("invalid input changed dimensions to %v", d)
	}
	if !Dim(0, 10).Empty() {
		t.Error("0x10 is not empty")
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{10, 2, 5},
		{11, 2, 5},
		{-1, 2, -1},
		{-4, 2, -2},
		{-5, 2, -3},
		{0, 2, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStdProgressFunc(t *testing.T) {
	var buf bytes.Buffer
	progress := StdProgressFunc(&buf, "Composing", 10, 5)
	for i := 1; i <= 10; i++ {
		progress(i)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d progress lines, want 2: %q", len(lines), buf.String())
	}
	if lines[1] != "Composing: 10 of 10 (100.0%)" {
		t.Errorf("last line is %q", lines[1])
	}
}

func TestProgressStep(t *testing.T) {
	tests := []struct {
		total, want int
	}{
		{0, 1},
		{9, 1},
		{10, 1},
		{70, 7},
		{9216, 921},
	}
	for _, tt := range tests {
		if got := ProgressStep(tt.total); got != tt.want {
			t.Errorf("ProgressStep(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}
