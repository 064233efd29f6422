// Package workspace manages per-job staging directories on disk.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"flipbook/logger"
	"flipbook/utils"
)

// Workspace is an ephemeral staging directory owned by exactly one
// conversion job. Release must run on every exit path of the job.
type Workspace struct {
	dir      string
	released bool
}

// Acquire creates a uniquely named staging directory under root.
func Acquire(root string) (*Workspace, error) {
	id, err := utils.RandomID(12)
	if err != nil {
		return nil, fmt.Errorf("generate workspace id: %w", err)
	}
	dir := filepath.Join(root, "flipbook-"+id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create workspace %s: %w", dir, err)
	}
	logger.Debugf("Acquired workspace %s", dir)
	return &Workspace{dir: dir}, nil
}

// Path returns the staging directory path.
func (w *Workspace) Path() string { return w.dir }

// FramePath returns the on-disk path for the frame at index i.
func (w *Workspace) FramePath(i int) string {
	return filepath.Join(w.dir, fmt.Sprintf("frame_%04d.png", i))
}

// FramePattern returns the printf-style sequence pattern consumed by
// external frame-sequence encoders.
func (w *Workspace) FramePattern() string {
	return filepath.Join(w.dir, "frame_%04d.png")
}

// WriteFrame persists one staged frame.
func (w *Workspace) WriteFrame(i int, data []byte) error {
	if err := os.WriteFile(w.FramePath(i), data, 0644); err != nil {
		return fmt.Errorf("write frame %d: %w", i, err)
	}
	return nil
}

// Release removes the staging directory and everything in it. Removal
// failures are logged, never returned; cleanup must not mask the job's
// real outcome. Calling Release more than once is a no-op.
func (w *Workspace) Release() {
	if w.released {
		return
	}
	w.released = true
	if err := os.RemoveAll(w.dir); err != nil {
		logger.Errorf("Failed to remove workspace %s: %v", w.dir, err)
		return
	}
	logger.Debugf("Released workspace %s", w.dir)
}
