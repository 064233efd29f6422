package encoder

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"flipbook/frame"
	"flipbook/preset"
	"flipbook/workspace"
)

func testFrame(w, h int) frame.Frame {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 4), B: 80, A: 255})
		}
	}
	return frame.Frame{Image: img}
}

func TestChainSkipsUnavailableBackends(t *testing.T) {
	var invoked []string
	mk := func(name string, avail bool, fail bool) Backend {
		return Backend{
			Name:      name,
			Available: func() bool { return avail },
			Invoke: func(ctx context.Context, ws *workspace.Workspace, frames []frame.Frame, p Params) (*Result, error) {
				invoked = append(invoked, name)
				if fail {
					return nil, errors.New("boom")
				}
				return &Result{Data: []byte{1}, Frames: len(frames)}, nil
			},
		}
	}

	chain := &Chain{backends: []Backend{
		mk("first", false, false),
		mk("second", true, true),
		mk("third", true, false),
	}}

	res, err := chain.Encode(context.Background(), nil, []frame.Frame{testFrame(8, 8)}, Params{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if res.Backend != "third" {
		t.Errorf("winning backend = %q, want third", res.Backend)
	}
	if len(invoked) != 2 || invoked[0] != "second" || invoked[1] != "third" {
		t.Errorf("invocation order = %v", invoked)
	}
}

func TestChainExhaustionAggregatesFailures(t *testing.T) {
	fail := func(name string) Backend {
		return Backend{
			Name:      name,
			Available: func() bool { return true },
			Invoke: func(ctx context.Context, ws *workspace.Workspace, frames []frame.Frame, p Params) (*Result, error) {
				return nil, errors.New(name + " broke")
			},
		}
	}
	chain := &Chain{backends: []Backend{fail("a"), fail("b")}}

	_, err := chain.Encode(context.Background(), nil, []frame.Frame{testFrame(4, 4)}, Params{})
	if err == nil {
		t.Fatal("expected error after exhausting the chain")
	}
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("error does not wrap ErrExhausted: %v", err)
	}
}

func TestStaticFallbackProducesSingleFrameGIF(t *testing.T) {
	// Primary and secondary forced unavailable: the in-process fallback must
	// produce a decodable static artifact from the first frame only.
	chain := NewChain(Tools{FFmpeg: false, Magick: false})

	frames := []frame.Frame{testFrame(32, 32), testFrame(32, 32), testFrame(32, 32)}
	res, err := chain.Encode(context.Background(), nil, frames, Params{
		Preset:  preset.Resolve("low"),
		DelayMS: 100,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if res.Backend != "static" {
		t.Errorf("backend = %q, want static", res.Backend)
	}
	if !res.Static {
		t.Error("result not flagged static")
	}
	if res.Frames != 1 {
		t.Errorf("frame count = %d, want 1", res.Frames)
	}

	decoded, err := gif.DecodeAll(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("output is not a valid GIF: %v", err)
	}
	if len(decoded.Image) != 1 {
		t.Errorf("GIF holds %d frames, want 1", len(decoded.Image))
	}
	if len(decoded.Image[0].Palette) > 64 {
		t.Errorf("palette has %d colors, want at most 64 for low tier", len(decoded.Image[0].Palette))
	}
}

func TestStaticHonorsDitherModes(t *testing.T) {
	for _, tier := range []string{"low", "ultra"} {
		res, err := invokeStatic(context.Background(), nil, []frame.Frame{testFrame(16, 16)}, Params{
			Preset: preset.Resolve(tier),
		})
		if err != nil {
			t.Fatalf("invokeStatic(%s) failed: %v", tier, err)
		}
		if _, err := gif.Decode(bytes.NewReader(res.Data)); err != nil {
			t.Errorf("invokeStatic(%s) produced invalid GIF: %v", tier, err)
		}
	}
}

func TestFPS(t *testing.T) {
	cases := []struct {
		delayMS int
		want    int
	}{
		{100, 10},
		{1500, 1}, // rounds to 0.67, clamped to 1
		{40, 25},
		{10, 50}, // 100 fps clamped to GIF-safe ceiling
		{0, 10},  // unset delay falls back to 10 fps
	}
	for _, c := range cases {
		if got := FPS(c.delayMS); got != c.want {
			t.Errorf("FPS(%d) = %d, want %d", c.delayMS, got, c.want)
		}
	}
}

func TestQuantizePaletteSize(t *testing.T) {
	f := testFrame(64, 64)
	pal, err := quantize(f.Image, 16, 3)
	if err != nil {
		t.Fatalf("quantize failed: %v", err)
	}
	if len(pal) == 0 || len(pal) > 16 {
		t.Errorf("palette size = %d, want 1..16", len(pal))
	}
}
