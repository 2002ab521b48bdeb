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
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	// DefaultFontFallbacks are the font files tried if no font is given or the
	// given font can't be loaded. They cover CJK text on most Windows systems.
	DefaultFontFallbacks = []string{"simhei.ttf", "msyh.ttc"}

	// BuiltinFontName is the Source of fonts created from the built-in faces.
	BuiltinFontName = "builtin:goregular"

	errNoFontFile = errors.New("no font file given")
)

// Font is a loaded font face together with information where it came from.
type Font struct {
	Face font.Face
	// Source is the file the face was loaded from or BuiltinFontName.
	Source string
	// Builtin is true if none of the font files could be used.
	Builtin bool
}

// FontLoader loads a font face, trying a list of fallback fonts. It never
// fails: if no font file can be used a built-in face is returned.
type FontLoader struct {
	// Fallbacks are file names or paths tried after the requested font.
	Fallbacks []string
	// DPI is the resolution for the faces, with the default of 72 a point
	// is a pixel.
	DPI float64
	// Find resolves a font file name that does not exist as a path, it
	// defaults to searching the system font directories.
	Find func(name string) (string, error)
}

// NewFontLoader returns a loader with the DefaultFontFallbacks.
func NewFontLoader() FontLoader {
	return FontLoader{
		Fallbacks: DefaultFontFallbacks,
		DPI:       72,
		Find:      findfont.Find,
	}
}

func (l FontLoader) resolve(name string) (string, error) {
	if name == "" {
		return "", errNoFontFile
	}
	path, err := homedir.Expand(name)
	if err != nil {
		return "", err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		return path, nil
	}
	find := l.Find
	if find == nil {
		find = findfont.Find
	}
	// only bare file names are looked up in the font directories
	if filepath.Base(path) != path {
		return "", os.ErrNotExist
	}
	return find(path)
}

// ParseFont parses a TrueType / OpenType font. For collections (.ttc, .otc)
// the first font is used.
func ParseFont(data []byte) (*opentype.Font, error) {
	collection, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	return collection.Font(0)
}

func (l FontLoader) newFace(f *opentype.Font, size float64) (font.Face, error) {
	dpi := l.DPI
	if dpi <= 0 {
		dpi = 72
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
}

func (l FontLoader) loadFile(name string, size float64) (*Font, error) {
	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseFont(data)
	if err != nil {
		return nil, err
	}
	face, err := l.newFace(f, size)
	if err != nil {
		return nil, err
	}
	return &Font{Face: face, Source: path}, nil
}

// Builtin returns the built-in Go Regular face at the given size. If even that
// fails the fixed size basicfont face is used.
func (l FontLoader) Builtin(size float64) *Font {
	f, err := opentype.Parse(goregular.TTF)
	if err == nil {
		var face font.Face
		face, err = l.newFace(f, size)
		if err == nil {
			return &Font{Face: face, Source: BuiltinFontName, Builtin: true}
		}
	}
	log.WithError(err).Error("Can't load built-in font, using basic 7x13 font")
	return &Font{Face: basicfont.Face7x13, Source: "builtin:basicfont", Builtin: true}
}

// Load returns a face of the given size. It tries path first, then the
// Fallbacks and if none of them can be loaded the built-in face.
// An empty path skips directly to the fallbacks.
func (l FontLoader) Load(path string, size float64) *Font {
	candidates := make([]string, 0, len(l.Fallbacks)+1)
	if strings.TrimSpace(path) != "" {
		candidates = append(candidates, path)
	}
	candidates = append(candidates, l.Fallbacks...)
	for _, name := range candidates {
		f, err := l.loadFile(name, size)
		if err != nil {
			log.WithFields(log.Fields{
				log.ErrorKey: err,
				"font":       name,
			}).Debug("Can't load font, trying next one")
			continue
		}
		log.WithField("font", f.Source).Debug("Loaded font")
		return f
	}
	log.WithField("tried", candidates).Warn("No font file found, using built-in font. " +
		"Characters not covered by it (for example CJK) won't be rendered")
	return l.Builtin(size)
}
