package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWithoutArgsPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	for _, name := range []string{"icon", "icons", "version"} {
		if !strings.Contains(stderr.String(), "  "+name+" ") {
			t.Fatalf("usage missing %s:\n%s", name, stderr.String())
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"deploy"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRunDispatchesVersion(t *testing.T) {
	for _, key := range []string{"NRD_PORTAL_ROOT", "NRD_ICON_ENGINE", "NRD_MANIFEST", "NO_COLOR"} {
		t.Setenv(key, "")
	}
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte(`<link href="styles.css">`), 0o644); err != nil {
		t.Fatalf("write html: %v", err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"version", "-root", root, "-no-color"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout.String())
	}
	data, _ := os.ReadFile(filepath.Join(root, "index.html"))
	if !strings.Contains(string(data), "styles.css?v=") {
		t.Fatalf("index.html not stamped: %s", data)
	}
}
