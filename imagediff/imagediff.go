// Package imagediff compares rendered test output against baseline images.
//
// It is the in-tree implementation of the ImageDiff helper the port points
// at: given two images of equal size, it reports how many pixels differ
// beyond a per-pixel color tolerance and the resulting failure percentage.
package imagediff

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/orisano/pixelmatch"
)

// DefaultTolerance is the per-pixel color distance below which two pixels
// are considered equal, in the range [0, 1].
const DefaultTolerance = 0.1

// Result is the outcome of comparing two images.
type Result struct {
	// DiffPixels is the number of pixels differing beyond the tolerance.
	DiffPixels int

	// TotalPixels is the number of pixels compared.
	TotalPixels int
}

// Equal reports whether the images matched.
func (r Result) Equal() bool {
	return r.DiffPixels == 0
}

// Percent is the share of differing pixels, as a percentage.
func (r Result) Percent() float64 {
	if r.TotalPixels == 0 {
		return 0
	}
	return float64(r.DiffPixels) / float64(r.TotalPixels) * 100
}

// Compare diffs two images of equal dimensions. A size mismatch is an error,
// matching the helper binary's behavior.
func Compare(actual, expected image.Image, tolerance float64) (Result, error) {
	diff, err := pixelmatch.MatchPixel(actual, expected, pixelmatch.Threshold(tolerance))
	if err != nil {
		return Result{}, fmt.Errorf("imagediff: %w", err)
	}
	size := actual.Bounds().Size()
	return Result{
		DiffPixels:  diff,
		TotalPixels: size.X * size.Y,
	}, nil
}

// CompareFiles diffs two PNG files.
func CompareFiles(actualPath, expectedPath string, tolerance float64) (Result, error) {
	actual, err := decodePNG(actualPath)
	if err != nil {
		return Result{}, err
	}
	expected, err := decodePNG(expectedPath)
	if err != nil {
		return Result{}, err
	}
	return Compare(actual, expected, tolerance)
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imagediff: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imagediff: decode %s: %w", path, err)
	}
	return img, nil
}
