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
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ValidateOutputPath returns an error if the extension of path is not a
// supported image format (jpg, jpeg, png, gif, tif, tiff, bmp).
func ValidateOutputPath(path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("unsupported output file type %q: %w", filepath.Ext(path), err)
	}
	return nil
}

// SaveImage writes img to file, the format is chosen by the file extension.
// jpgQuality (1 to 100) is only used for jpg files.
func SaveImage(file string, img image.Image, jpgQuality int) error {
	if err := ValidateOutputPath(file); err != nil {
		return err
	}
	return imaging.Save(img, file, imaging.JPEGQuality(jpgQuality))
}
