package fonts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	data, err := Load(Default)
	if err != nil {
		t.Fatalf("Load(%s): %v", Default, err)
	}
	if len(data) == 0 {
		t.Fatalf("builtin font is empty")
	}
}

func TestLoadUnknownBuiltin(t *testing.T) {
	if _, err := Load("embed:Nope"); err == nil {
		t.Fatalf("expected error for unknown builtin font")
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, []byte("ttf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := Load(path)
	if err != nil {
		t.Fatalf("Load(path): %v", err)
	}
	if string(data) != "ttf" {
		t.Fatalf("unexpected data %q", data)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
