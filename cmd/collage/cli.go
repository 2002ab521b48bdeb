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
	"fmt"
	"io"
	"os"

	collage "github.com/xiadongliang88/Collage-Images"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options are the command line flags. Flags that are set on the command line
// overwrite the values of the config file.
type options struct {
	configFile string
	verbose    bool
	progress   bool
	seed       int64
	cfg        collage.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: collage.DefaultConfig()}
	cmd := &cobra.Command{
		Use:   "collage [text]",
		Short: "Create a text mosaic from a directory of images",
		Long: "collage renders the text as a mask and fills a grid with random images" +
			" from the images directory. Images on the background of the text are" +
			" dimmed, so the text becomes readable.\n\n" +
			"If the images directory does not exist it is created and nothing else" +
			" happens, put your images there and run collage again.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	registerFlags(cmd.Flags(), opts)
	return cmd
}

func registerFlags(flags *pflag.FlagSet, opts *options) {
	cfg := &opts.cfg
	flags.StringVarP(&opts.configFile, "config", "c", "", "toml config file, flags overwrite its values")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&opts.progress, "progress", "p", false, "print the progress of the composition")
	flags.StringVarP(&cfg.ImagesDir, "images", "i", cfg.ImagesDir, "directory containing the tile images")
	flags.StringVarP(&cfg.OutputPath, "out", "o", cfg.OutputPath, "output file (.jpg, .png, .gif, .tif or .bmp)")
	flags.VarP(&cfg.OutputSize, "size", "s", "requested size of the mosaic")
	flags.VarP(&cfg.TileSize, "tile", "t", "size of each tile in the mosaic")
	flags.Var(&cfg.SampleSize, "sample", "size tiles are prepared with when loaded")
	flags.StringVarP(&cfg.FontPath, "font", "f", cfg.FontPath, "font file (.ttf, .otf or .ttc)")
	flags.Float64Var(&cfg.FontSize, "font-size", cfg.FontSize, "font size in pixels")
	flags.StringSliceVar(&cfg.FontFallbacks, "font-fallback", cfg.FontFallbacks, "fonts tried if --font can't be loaded")
	flags.Int64Var(&opts.seed, "seed", 0, "seed for the tile selection (random if not set)")
	flags.IntVar(&cfg.JPGQuality, "jpeg-quality", cfg.JPGQuality, "quality of jpg output (1 to 100)")
	flags.StringVar(&cfg.Interp, "interp", cfg.Interp, "interpolation: nearest, bilinear, bicubic, mitchell, lanczos2 or lanczos3")
	flags.IntVar(&cfg.NumRoutines, "routines", cfg.NumRoutines, "number of tiles composed concurrently")
	flags.IntVar(&cfg.CacheSize, "cache", cfg.CacheSize, "number of resized tiles to cache")
	flags.Var(&cfg.DivideMode, "divide", "handling of the last row and column: pad, adjust or crop")
}

// flagFields copies the value of a flag from the flag config to the config
// read from a file.
var flagFields = map[string]func(dst, src *collage.Config){
	"images":        func(dst, src *collage.Config) { dst.ImagesDir = src.ImagesDir },
	"out":           func(dst, src *collage.Config) { dst.OutputPath = src.OutputPath },
	"size":          func(dst, src *collage.Config) { dst.OutputSize = src.OutputSize },
	"tile":          func(dst, src *collage.Config) { dst.TileSize = src.TileSize },
	"sample":        func(dst, src *collage.Config) { dst.SampleSize = src.SampleSize },
	"font":          func(dst, src *collage.Config) { dst.FontPath = src.FontPath },
	"font-size":     func(dst, src *collage.Config) { dst.FontSize = src.FontSize },
	"font-fallback": func(dst, src *collage.Config) { dst.FontFallbacks = src.FontFallbacks },
	"jpeg-quality":  func(dst, src *collage.Config) { dst.JPGQuality = src.JPGQuality },
	"interp":        func(dst, src *collage.Config) { dst.Interp = src.Interp },
	"routines":      func(dst, src *collage.Config) { dst.NumRoutines = src.NumRoutines },
	"cache":         func(dst, src *collage.Config) { dst.CacheSize = src.CacheSize },
	"divide":        func(dst, src *collage.Config) { dst.DivideMode = src.DivideMode },
}

// buildConfig loads the config file (if any) and applies the flags that were
// set explicitly on top of it.
func buildConfig(flags *pflag.FlagSet, opts *options, args []string) (collage.Config, error) {
	cfg := opts.cfg
	if opts.configFile != "" {
		cfg = collage.DefaultConfig()
		if err := collage.LoadConfigFile(opts.configFile, &cfg); err != nil {
			return cfg, err
		}
		flags.Visit(func(f *pflag.Flag) {
			if apply, ok := flagFields[f.Name]; ok {
				apply(&cfg, &opts.cfg)
			}
		})
	}
	if len(args) > 0 {
		cfg.TargetText = args[0]
	}
	if flags.Changed("seed") {
		seed := opts.seed
		cfg.Seed = &seed
	}
	if err := cfg.ExpandPaths(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ensureImagesDir creates the images directory if it does not exist. It
// returns true if the directory was created.
func ensureImagesDir(out io.Writer, dir string) (bool, error) {
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, err
	}
	fmt.Fprintf(out, "Created directory %s, please put your images there and run again\n", dir)
	return true, nil
}

// progressFactory reports the progress of the composition to the log, or to
// the error output of cmd if toStd is true.
func progressFactory(cmd *cobra.Command, toStd bool) collage.ProgressFactory {
	return func(total int) collage.ProgressFunc {
		step := collage.ProgressStep(total)
		if toStd {
			return collage.StdProgressFunc(cmd.ErrOrStderr(), "Composing", total, step)
		}
		return collage.LoggerProgressFunc("Composing", total, step)
	}
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if opts.verbose || collage.Debug {
		log.SetLevel(log.DebugLevel)
	}
	cfg, err := buildConfig(cmd.Flags(), opts, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	created, err := ensureImagesDir(out, cfg.ImagesDir)
	if err != nil || created {
		return err
	}
	generator := collage.NewGenerator(cfg)
	generator.Progress = progressFactory(cmd, opts.progress)
	res, err := generator.Run()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Mosaic saved to", res.Path)
	return nil
}
