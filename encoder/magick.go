package encoder

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"flipbook/frame"
	"flipbook/preset"
	"flipbook/workspace"
)

// invokeMagick encodes the frame sequence in a single ImageMagick pass.
// Delay is expressed in hundredths of a second; ultra gets maximum fidelity
// while every other tier uses a fixed high quality with frame-sequence
// optimization enabled.
func invokeMagick(ctx context.Context, ws *workspace.Workspace, frames []frame.Frame, p Params) (*Result, error) {
	outPath := filepath.Join(ws.Path(), "out.gif")

	centiSec := p.DelayMS / 10
	if centiSec < 1 {
		centiSec = 1
	}

	args := []string{
		"-delay", strconv.Itoa(centiSec),
		"-loop", strconv.Itoa(p.Loop),
	}
	for i := range frames {
		args = append(args, ws.FramePath(i))
	}
	args = append(args, "-colors", strconv.Itoa(p.Preset.Colors))
	if p.Preset.Dither == preset.DitherErrorDiffusion {
		args = append(args, "-dither", "FloydSteinberg")
	} else {
		args = append(args, "+dither")
	}
	if p.Preset.Tier == "ultra" {
		args = append(args, "-quality", "100")
	} else {
		args = append(args, "-quality", "90", "-layers", "optimize")
	}
	args = append(args, outPath)

	cmd := exec.CommandContext(ctx, "magick", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("magick encode: %w: %s", err, tail(out))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	return &Result{Data: data, Frames: len(frames)}, nil
}
