// Package collage generates text mosaics: a target text is rendered as a mask
// and small images (tiles) are pasted in a grid over the whole canvas.
// Tiles on the background of the text are dimmed, so the text becomes
// readable in the mosaic.
//
// The tiles are selected at random, there is no color matching. Use a seed
// (Config.Seed) to get reproducible results.
//
// It ships with an executable program (cmd/collage) to create mosaics from a
// directory of images.
package collage
