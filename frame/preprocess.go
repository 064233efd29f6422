// Package frame turns raw input images into a canonical, uniformly sized
// frame sequence ready for encoding.
package frame

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/disintegration/imaging"

	"flipbook/preset"
)

// Frame is one canonical frame: decoded, letterboxed onto an opaque white
// canvas at the target size, and staged losslessly as PNG. A frame is owned
// by exactly one pipeline stage at a time.
type Frame struct {
	Index int
	Image *image.NRGBA
	PNG   []byte
}

// Preprocess converts raw image buffers into canonical frames, preserving
// input order. A single undecodable image fails the whole sequence; there is
// no partial output.
func Preprocess(images [][]byte, width, height int, p preset.Preset) ([]Frame, error) {
	frames := make([]Frame, 0, len(images))
	for i, raw := range images {
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode frame %d: %w", i, err)
		}
		canon := normalize(img, width, height, p)

		var buf bytes.Buffer
		if err := png.Encode(&buf, canon); err != nil {
			return nil, fmt.Errorf("stage frame %d: %w", i, err)
		}
		frames = append(frames, Frame{Index: i, Image: canon, PNG: buf.Bytes()})
	}
	return frames, nil
}

// normalize fits the image inside width x height without cropping, applies
// the tier's enhancement pass, and letterboxes the result on white.
func normalize(img image.Image, width, height int, p preset.Preset) *image.NRGBA {
	fitted := imaging.Fit(img, width, height, imaging.Lanczos)

	switch p.Tier {
	case "ultra":
		fitted = imaging.Sharpen(fitted, 0.6)
		fitted = imaging.AdjustSaturation(fitted, 10)
	case "high":
		fitted = autoLevel(fitted)
	}

	canvas := imaging.New(width, height, color.White)
	offset := image.Pt(
		(width-fitted.Bounds().Dx())/2,
		(height-fitted.Bounds().Dy())/2,
	)
	return imaging.Paste(canvas, fitted, offset)
}

// autoLevel stretches each color channel linearly so the observed range
// spans the full 0-255 interval.
func autoLevel(img *image.NRGBA) *image.NRGBA {
	lo := [3]uint8{255, 255, 255}
	hi := [3]uint8{0, 0, 0}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			for i, v := range [3]uint8{c.R, c.G, c.B} {
				if v < lo[i] {
					lo[i] = v
				}
				if v > hi[i] {
					hi[i] = v
				}
			}
		}
	}

	var scale [3]float64
	for i := range scale {
		if hi[i] > lo[i] {
			scale[i] = 255.0 / float64(hi[i]-lo[i])
		} else {
			scale[i] = 1
		}
	}

	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: stretch(c.R, lo[0], scale[0]),
			G: stretch(c.G, lo[1], scale[1]),
			B: stretch(c.B, lo[2], scale[2]),
			A: c.A,
		}
	})
}

func stretch(v, lo uint8, scale float64) uint8 {
	if v <= lo {
		return 0
	}
	s := float64(v-lo) * scale
	if s > 255 {
		return 255
	}
	return uint8(s + 0.5)
}
