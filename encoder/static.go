package encoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"flipbook/frame"
	"flipbook/preset"
	"flipbook/workspace"
)

// invokeStatic is the degraded-mode fallback: a single-frame GIF built
// in-process from the first canonical frame only. Callers detect the
// degradation via Frames == 1 and the Static flag.
func invokeStatic(ctx context.Context, ws *workspace.Workspace, frames []frame.Frame, p Params) (*Result, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames to encode")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := frames[0].Image
	pal, err := quantize(img, p.Preset.Colors, p.Preset.Effort)
	if err != nil {
		return nil, err
	}

	paletted := image.NewPaletted(img.Bounds(), pal)
	if p.Preset.Dither == preset.DitherErrorDiffusion {
		draw.FloydSteinberg.Draw(paletted, img.Bounds(), img, image.Point{})
	} else {
		draw.Draw(paletted, img.Bounds(), img, image.Point{}, draw.Src)
	}

	var buf bytes.Buffer
	if err := gif.Encode(&buf, paletted, nil); err != nil {
		return nil, fmt.Errorf("gif encode: %w", err)
	}
	return &Result{Data: buf.Bytes(), Frames: 1, Static: true}, nil
}

// quantize derives a k-color palette from the image with k-means clustering
// over a pixel sample in RGB space. The sample budget scales with the
// preset's effort level.
func quantize(img *image.NRGBA, k, effort int) (color.Palette, error) {
	b := img.Bounds()

	target := 2048 * effort
	if target < 2048 {
		target = 2048
	}
	stride := int(math.Sqrt(float64(b.Dx()*b.Dy()) / float64(target)))
	if stride < 1 {
		stride = 1
	}

	var obs clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			c := img.NRGBAAt(x, y)
			col, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
			obs = append(obs, clusters.Coordinates{col.R, col.G, col.B})
		}
	}
	if len(obs) == 0 {
		return nil, errors.New("empty image")
	}
	if k > len(obs) {
		k = len(obs)
	}

	km := kmeans.New()
	cl, err := km.Partition(obs, k)
	if err != nil {
		return nil, fmt.Errorf("palette clustering: %w", err)
	}

	pal := make(color.Palette, 0, len(cl))
	for _, c := range cl {
		center := c.Center
		pal = append(pal, color.NRGBA{
			R: clamp8(center[0]),
			G: clamp8(center[1]),
			B: clamp8(center[2]),
			A: 255,
		})
	}
	return pal, nil
}

func clamp8(v float64) uint8 {
	s := v*255 + 0.5
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return uint8(s)
}
