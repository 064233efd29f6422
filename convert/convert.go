// Package convert drives the full conversion pipeline for a single request:
// preset resolution, frame preprocessing, and the animation and document
// pipelines.
package convert

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"flipbook/document"
	"flipbook/encoder"
	"flipbook/frame"
	"flipbook/logger"
	"flipbook/models"
	"flipbook/preset"
	"flipbook/workspace"
)

var (
	// ErrEmptyInput is returned for a request with no images. No workspace
	// is created in that case.
	ErrEmptyInput = errors.New("no input images")

	// ErrInput marks undecodable or otherwise unusable input. Fail-fast,
	// never retried, no partial output.
	ErrInput = errors.New("invalid input")

	// ErrEncodingFailed is the single aggregated failure surfaced once the
	// backend chain is exhausted.
	ErrEncodingFailed = errors.New("encoding failed")
)

// Converter runs conversion jobs against an injected encoder chain and
// workspace root. The external-tool availability baked into the chain is
// probed once at process start, not per job.
type Converter struct {
	chain   *encoder.Chain
	tmpRoot string
}

// New returns a Converter staging workspaces under tmpRoot.
func New(chain *encoder.Chain, tmpRoot string) *Converter {
	return &Converter{chain: chain, tmpRoot: tmpRoot}
}

// Result holds whichever artifacts were requested and produced.
type Result struct {
	Animation *models.EncodedArtifact
	Document  *models.EncodedArtifact
}

// Convert runs the requested pipelines over one ordered image set. When both
// kinds are wanted, the animation and document pipelines run concurrently;
// each performs its own preprocessing pass, shares no mutable state with the
// other, and cannot cancel it. Errors from both are joined.
func (c *Converter) Convert(ctx context.Context, images [][]byte, opts models.Options, kinds []models.Kind) (*Result, error) {
	if len(images) == 0 {
		return nil, ErrEmptyInput
	}

	var wantAnim, wantDoc bool
	for _, k := range kinds {
		switch k {
		case models.KindAnimation:
			wantAnim = true
		case models.KindDocument:
			wantDoc = true
		}
	}
	if !wantAnim && !wantDoc {
		return nil, fmt.Errorf("%w: no artifact kind requested", ErrInput)
	}

	opts = withDefaults(opts)
	p := preset.Resolve(opts.Tier)
	logger.Debugf("Converting %d images: tier=%s anim=%t doc=%t", len(images), p.Tier, wantAnim, wantDoc)

	res := &Result{}
	var animErr, docErr error

	var g errgroup.Group
	if wantAnim {
		g.Go(func() error {
			res.Animation, animErr = c.runAnimation(ctx, images, opts, p)
			return nil
		})
	}
	if wantDoc {
		g.Go(func() error {
			res.Document, docErr = c.runDocument(images, opts, p)
			return nil
		})
	}
	g.Wait()

	if err := errors.Join(animErr, docErr); err != nil {
		return nil, err
	}
	return res, nil
}

// runAnimation stages canonical frames into a workspace and walks the
// encoder chain. The workspace is released on every exit path, exactly once,
// after the chain resolves.
func (c *Converter) runAnimation(ctx context.Context, images [][]byte, opts models.Options, p preset.Preset) (*models.EncodedArtifact, error) {
	frames, err := frame.Preprocess(images, opts.Width, opts.Height, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}

	ws, err := workspace.Acquire(c.tmpRoot)
	if err != nil {
		return nil, fmt.Errorf("acquire workspace: %w", err)
	}
	defer ws.Release()

	for _, f := range frames {
		if err := ws.WriteFrame(f.Index, f.PNG); err != nil {
			return nil, err
		}
	}

	enc, err := c.chain.Encode(ctx, ws, frames, encoder.Params{
		Preset:  p,
		DelayMS: opts.DelayMS,
		Loop:    opts.Loop,
		Width:   opts.Width,
		Height:  opts.Height,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}

	return &models.EncodedArtifact{
		Kind:   models.KindAnimation,
		Data:   enc.Data,
		Size:   len(enc.Data),
		Frames: enc.Frames,
		Settings: models.Settings{
			Tier:    p.Tier,
			Colors:  p.Colors,
			DelayMS: opts.DelayMS,
			Loop:    opts.Loop,
			Width:   opts.Width,
			Height:  opts.Height,
			Backend: enc.Backend,
			Static:  enc.Static,
		},
	}, nil
}

// runDocument performs its own preprocessing pass so the two pipelines never
// share frames, then hands the sequence to the assembler.
func (c *Converter) runDocument(images [][]byte, opts models.Options, p preset.Preset) (*models.EncodedArtifact, error) {
	frames, err := frame.Preprocess(images, opts.Width, opts.Height, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}

	art, err := document.Assemble(frames, opts, p)
	if err != nil {
		return nil, fmt.Errorf("assemble document: %w", err)
	}
	return art, nil
}

func withDefaults(opts models.Options) models.Options {
	if opts.Width <= 0 {
		opts.Width = 512
	}
	if opts.Height <= 0 {
		opts.Height = 512
	}
	if opts.DelayMS <= 0 {
		opts.DelayMS = 100
	}
	if opts.PageFormat == "" {
		opts.PageFormat = "a4"
	}
	return opts
}
