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

package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func TestMissingImagesDirIsCreated(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	output := filepath.Join(dir, "poster.jpg")
	out, err := execute(t, "--images", images, "--out", output)
	if err != nil {
		t.Fatalf("collage returned error: %v", err)
	}
	if !isDir(images) {
		t.Error("images directory was not created")
	}
	if !strings.Contains(out, "Created directory") {
		t.Errorf("output does not mention the new directory: %q", out)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("output file written although there were no images")
	}
}

func TestEmptyImagesDir(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "--images", dir, "--out", filepath.Join(dir, "poster.jpg"))
	if err == nil {
		t.Fatalf("expected error for a directory without images, output %q", out)
	}
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	fromFile := filepath.Join(dir, "from-file")
	fromFlag := filepath.Join(dir, "from-flag")
	configFile := filepath.Join(dir, "collage.toml")
	content := "small_images_dir = \"" + filepath.ToSlash(fromFile) + "\"\n" +
		"output_path = \"" + filepath.ToSlash(filepath.Join(dir, "out.png")) + "\"\n"
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", configFile); err != nil {
		t.Fatalf("collage returned error: %v", err)
	}
	if !isDir(fromFile) {
		t.Error("images directory from config file was not created")
	}

	if _, err := execute(t, "--config", configFile, "--images", fromFlag); err != nil {
		t.Fatalf("collage returned error: %v", err)
	}
	if !isDir(fromFlag) {
		t.Error("images directory from flag was not created")
	}
}

func TestProgressOutput(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	if err := os.Mkdir(images, 0755); err != nil {
		t.Fatal(err)
	}
	writeTile(t, filepath.Join(images, "tile.png"))
	output := filepath.Join(dir, "poster.png")
	out, err := execute(t, "WIN", "--images", images, "--out", output,
		"--size", "125x60", "--tile", "60x60", "--font-size", "40",
		"--seed", "1", "--progress")
	if err != nil {
		t.Fatalf("collage returned error: %v", err)
	}
	// the third column is outside the requested size and not painted
	if !strings.Contains(out, "Composing: 2 of 2 (100.0%)") {
		t.Errorf("output misses the final progress line: %q", out)
	}
	if !strings.Contains(out, "Mosaic saved to "+output) {
		t.Errorf("output misses the saved path: %q", out)
	}
}

func TestDivideFlag(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	if err := os.Mkdir(images, 0755); err != nil {
		t.Fatal(err)
	}
	writeTile(t, filepath.Join(images, "tile.png"))
	output := filepath.Join(dir, "poster.png")
	if _, err := execute(t, "--images", images, "--out", output, "--size", "125x60",
		"--tile", "60x60", "--font-size", "40", "--divide", "adjust"); err != nil {
		t.Fatalf("collage returned error: %v", err)
	}
	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 125 || cfg.Height != 60 {
		t.Errorf("mosaic is %dx%d, want 125x60", cfg.Width, cfg.Height)
	}
}

func writeTile(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 30, 30))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestInvalidFlags(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"size", []string{"--size", "big"}},
		{"output type", []string{"--out", filepath.Join(dir, "poster.webp")}},
		{"interpolation", []string{"--interp", "cubic"}},
		{"divide mode", []string{"--divide", "stretch"}},
		{"too many args", []string{"a", "b"}},
		{"unknown config key", []string{"--config", writeConfig(t, dir, "target = \"x\"\n")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--images", filepath.Join(dir, "images-"+tt.name)}, tt.args...)
			if _, err := execute(t, args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "invalid.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
