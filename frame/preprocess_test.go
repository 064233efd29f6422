package frame

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"flipbook/preset"
)

func encodePNG(t *testing.T, c color.NRGBA, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestPreprocessCountAndOrder(t *testing.T) {
	colors := []color.NRGBA{
		{R: 200, G: 10, B: 10, A: 255},
		{R: 10, G: 200, B: 10, A: 255},
		{R: 10, G: 10, B: 200, A: 255},
	}
	var images [][]byte
	for _, c := range colors {
		images = append(images, encodePNG(t, c, 100, 100))
	}

	frames, err := Preprocess(images, 64, 64, preset.Resolve("medium"))
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if len(frames) != len(images) {
		t.Fatalf("got %d frames, want %d", len(frames), len(images))
	}

	for i, f := range frames {
		if f.Index != i {
			t.Errorf("frame %d has index %d", i, f.Index)
		}
		got := f.Image.NRGBAAt(32, 32)
		want := colors[i]
		if got.R != want.R || got.G != want.G || got.B != want.B {
			t.Errorf("frame %d center = %v, want %v; order not preserved", i, got, want)
		}
	}
}

func TestPreprocessUniformSize(t *testing.T) {
	// Mixed input sizes and aspect ratios all normalize to the target.
	images := [][]byte{
		encodePNG(t, color.NRGBA{R: 50, G: 50, B: 50, A: 255}, 200, 50),
		encodePNG(t, color.NRGBA{R: 50, G: 50, B: 50, A: 255}, 30, 90),
	}
	frames, err := Preprocess(images, 120, 80, preset.Resolve("low"))
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	for i, f := range frames {
		b := f.Image.Bounds()
		if b.Dx() != 120 || b.Dy() != 80 {
			t.Errorf("frame %d is %dx%d, want 120x80", i, b.Dx(), b.Dy())
		}
		if len(f.PNG) == 0 {
			t.Errorf("frame %d has no staged PNG", i)
		}
	}
}

func TestPreprocessLetterboxIsWhite(t *testing.T) {
	// A wide image fit into a square target leaves white bars top and bottom.
	images := [][]byte{encodePNG(t, color.NRGBA{R: 0, G: 0, B: 0, A: 255}, 200, 50)}
	frames, err := Preprocess(images, 100, 100, preset.Resolve("medium"))
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	top := frames[0].Image.NRGBAAt(50, 2)
	if top.R != 255 || top.G != 255 || top.B != 255 {
		t.Errorf("letterbox fill = %v, want white", top)
	}
	center := frames[0].Image.NRGBAAt(50, 50)
	if center.R > 40 {
		t.Errorf("image content missing from center: %v", center)
	}
}

func TestPreprocessUndecodableAbortsWholeJob(t *testing.T) {
	images := [][]byte{
		encodePNG(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, 10, 10),
		[]byte("definitely not an image"),
		encodePNG(t, color.NRGBA{R: 4, G: 5, B: 6, A: 255}, 10, 10),
	}
	frames, err := Preprocess(images, 32, 32, preset.Resolve("high"))
	if err == nil {
		t.Fatal("expected error for undecodable image")
	}
	if frames != nil {
		t.Errorf("expected no partial frame set, got %d frames", len(frames))
	}
}
