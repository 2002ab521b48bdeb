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
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func writeFontFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	return path
}

func TestFontLoaderLoad(t *testing.T) {
	regular := writeFontFile(t, "regular.ttf", goregular.TTF)
	broken := writeFontFile(t, "broken.ttf", []byte("not a font"))

	tests := []struct {
		name        string
		path        string
		fallbacks   []string
		wantSource  string
		wantBuiltin bool
	}{
		{"file", regular, nil, regular, false},
		{"no font", "", nil, BuiltinFontName, true},
		{"missing file", filepath.Join(t.TempDir(), "missing.ttf"), nil, BuiltinFontName, true},
		{"broken file", broken, nil, BuiltinFontName, true},
		{"fallback path", broken, []string{regular}, regular, false},
		{"fallback by name", "", []string{"missing.ttc", "system.ttf"}, regular, false},
		{"missing fallbacks", "", []string{"missing.ttc"}, BuiltinFontName, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := noFonts()
			loader.Fallbacks = tt.fallbacks
			loader.Find = func(name string) (string, error) {
				if name == "system.ttf" {
					return regular, nil
				}
				return "", os.ErrNotExist
			}
			f := loader.Load(tt.path, 40)
			defer f.Face.Close()
			if f.Source != tt.wantSource || f.Builtin != tt.wantBuiltin {
				t.Errorf("Load(%q) = (%s, %v), want (%s, %v)",
					tt.path, f.Source, f.Builtin, tt.wantSource, tt.wantBuiltin)
			}
			if f.Face.Metrics().Height <= 0 {
				t.Error("face has no height")
			}
		})
	}
}

func TestFontLoaderFindOnlyBareNames(t *testing.T) {
	calls := 0
	loader := noFonts()
	loader.Find = func(name string) (string, error) {
		calls++
		return "", os.ErrNotExist
	}
	f := loader.Load(filepath.Join("fonts", "missing.ttf"), 20)
	defer f.Face.Close()
	if calls != 0 {
		t.Errorf("font directories searched %d times for a path", calls)
	}
	if !f.Builtin {
		t.Errorf("expected built-in font, got %s", f.Source)
	}
}

func TestParseFont(t *testing.T) {
	if _, err := ParseFont(goregular.TTF); err != nil {
		t.Errorf("ParseFont(goregular) returned error: %v", err)
	}
	if _, err := ParseFont([]byte("garbage")); err == nil {
		t.Error("ParseFont of garbage returned no error")
	}
}
