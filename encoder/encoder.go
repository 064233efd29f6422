// Package encoder turns a staged frame sequence into an animated artifact,
// trying a fixed-priority chain of backends until one succeeds.
package encoder

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"flipbook/frame"
	"flipbook/logger"
	"flipbook/preset"
	"flipbook/workspace"
)

// Tools reports which external encoder commands exist on the host. It is
// probed once at process start and injected into NewChain; backends are
// never re-checked per job.
type Tools struct {
	FFmpeg bool
	Magick bool
}

// Probe checks PATH for the external encoder commands.
func Probe() Tools {
	var t Tools
	if _, err := exec.LookPath("ffmpeg"); err == nil {
		t.FFmpeg = true
		logger.Debugf("encoder [ffmpeg] available")
	} else {
		logger.Warnf("encoder [ffmpeg] skipped: command 'ffmpeg' not found in PATH")
	}
	if _, err := exec.LookPath("magick"); err == nil {
		t.Magick = true
		logger.Debugf("encoder [magick] available")
	} else {
		logger.Warnf("encoder [magick] skipped: command 'magick' not found in PATH")
	}
	return t
}

// Params carries everything a backend needs for one invocation.
type Params struct {
	Preset  preset.Preset
	DelayMS int
	Loop    int
	Width   int
	Height  int
}

// Result is the raw outcome of a successful backend invocation.
type Result struct {
	Data    []byte
	Frames  int
	Backend string
	Static  bool
}

// InvokeFunc runs one encoding attempt over the staged frames.
type InvokeFunc func(ctx context.Context, ws *workspace.Workspace, frames []frame.Frame, p Params) (*Result, error)

// Backend is one entry in the chain: a name, an availability predicate and
// an invocation.
type Backend struct {
	Name      string
	Available func() bool
	Invoke    InvokeFunc
}

// Chain is the ordered backend list for this process.
type Chain struct {
	backends []Backend
}

// NewChain builds the fixed-priority chain: the ffmpeg two-pass palette
// encoder, the ImageMagick single-pass encoder, and the in-process static
// fallback which is always available.
func NewChain(tools Tools) *Chain {
	return &Chain{backends: []Backend{
		{Name: "ffmpeg", Available: func() bool { return tools.FFmpeg }, Invoke: invokeFFmpeg},
		{Name: "magick", Available: func() bool { return tools.Magick }, Invoke: invokeMagick},
		{Name: "static", Available: func() bool { return true }, Invoke: invokeStatic},
	}}
}

// ErrExhausted is returned once every backend in the chain has been skipped
// or has failed.
var ErrExhausted = errors.New("all encoder backends failed")

// Encode walks the chain in priority order. Unavailable backends are
// skipped, a failing backend falls through to the next, and exactly one
// backend's result is returned. Exhausting the chain returns every recorded
// failure joined under ErrExhausted.
func (c *Chain) Encode(ctx context.Context, ws *workspace.Workspace, frames []frame.Frame, p Params) (*Result, error) {
	var failures []error
	for _, b := range c.backends {
		if !b.Available() {
			logger.Debugf("encoder [%s] unavailable, skipping", b.Name)
			continue
		}
		res, err := b.Invoke(ctx, ws, frames, p)
		if err != nil {
			logger.Warnf("encoder [%s] failed, trying next: %v", b.Name, err)
			failures = append(failures, fmt.Errorf("%s: %w", b.Name, err))
			continue
		}
		res.Backend = b.Name
		logger.Infof("encoder [%s] produced %d bytes (%d frames)", b.Name, len(res.Data), res.Frames)
		return res, nil
	}
	return nil, errors.Join(append([]error{ErrExhausted}, failures...)...)
}
