package encoder

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"flipbook/frame"
	"flipbook/preset"
	"flipbook/workspace"
)

// invokeFFmpeg encodes the frame sequence in two passes: palettegen derives
// an optimal palette constrained to the preset's color count with full-image
// statistics sampling, then paletteuse re-encodes the sequence against that
// palette. Two passes beat single-pass palette generation on color fidelity,
// which is why this backend sits first in the chain.
func invokeFFmpeg(ctx context.Context, ws *workspace.Workspace, frames []frame.Frame, p Params) (*Result, error) {
	fps := FPS(p.DelayMS)
	palettePath := filepath.Join(ws.Path(), "palette.png")
	outPath := filepath.Join(ws.Path(), "out.gif")

	gen := fmt.Sprintf("palettegen=max_colors=%d:stats_mode=full", p.Preset.Colors)
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-framerate", strconv.Itoa(fps),
		"-i", ws.FramePattern(),
		"-vf", gen,
		palettePath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("palettegen pass: %w: %s", err, tail(out))
	}

	use := fmt.Sprintf("paletteuse=dither=%s", ffmpegDither(p.Preset.Dither))
	cmd = exec.CommandContext(ctx, "ffmpeg", "-y",
		"-framerate", strconv.Itoa(fps),
		"-i", ws.FramePattern(),
		"-i", palettePath,
		"-lavfi", use,
		"-loop", strconv.Itoa(p.Loop),
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("paletteuse pass: %w: %s", err, tail(out))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	return &Result{Data: data, Frames: len(frames)}, nil
}

func ffmpegDither(d preset.Dither) string {
	if d == preset.DitherErrorDiffusion {
		return "floyd_steinberg"
	}
	return "none"
}

// FPS derives the output frame rate from the per-frame delay, clamped to
// the 1-50 range GIF players handle reliably.
func FPS(delayMS int) int {
	if delayMS <= 0 {
		return 10
	}
	fps := int(math.Round(1000.0 / float64(delayMS)))
	if fps < 1 {
		fps = 1
	}
	if fps > 50 {
		fps = 50
	}
	return fps
}

// tail keeps the last part of a tool's combined output for error messages.
func tail(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) > 400 {
		s = s[len(s)-400:]
	}
	return s
}
