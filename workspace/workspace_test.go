package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireWriteRelease(t *testing.T) {
	root := t.TempDir()

	ws, err := Acquire(root)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if filepath.Dir(ws.Path()) != root {
		t.Errorf("workspace %s not under root %s", ws.Path(), root)
	}
	if _, err := os.Stat(ws.Path()); err != nil {
		t.Fatalf("workspace directory missing: %v", err)
	}

	if err := ws.WriteFrame(0, []byte("frame-zero")); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	data, err := os.ReadFile(ws.FramePath(0))
	if err != nil {
		t.Fatalf("staged frame missing: %v", err)
	}
	if string(data) != "frame-zero" {
		t.Errorf("staged frame content = %q", data)
	}

	ws.Release()
	if _, err := os.Stat(ws.Path()); !os.IsNotExist(err) {
		t.Errorf("workspace still exists after Release")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	ws, err := Acquire(t.TempDir())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	ws.Release()
	ws.Release() // second call must be a no-op, not a panic or error log storm
}

func TestWorkspacesAreUnique(t *testing.T) {
	root := t.TempDir()
	a, err := Acquire(root)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer a.Release()
	b, err := Acquire(root)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer b.Release()

	if a.Path() == b.Path() {
		t.Errorf("two workspaces share a directory: %s", a.Path())
	}
}

func TestFramePatternMatchesFramePath(t *testing.T) {
	ws, err := Acquire(t.TempDir())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer ws.Release()

	want := filepath.Join(ws.Path(), "frame_0007.png")
	if got := ws.FramePath(7); got != want {
		t.Errorf("FramePath(7) = %s, want %s", got, want)
	}
}
