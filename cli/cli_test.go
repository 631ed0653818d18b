package cli

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yosbany/nrd-portal/layout"
	"github.com/yosbany/nrd-portal/renderer"
)

type stubRasterizer struct {
	engine string
	labels []string
}

func (s *stubRasterizer) Rasterize(doc renderer.Document, width, height int) ([]byte, error) {
	s.labels = append(s.labels, doc.Layout.Label)
	return []byte(s.engine), nil
}

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NRD_PORTAL_ROOT", "NRD_ICON_ENGINE", "NRD_MANIFEST", "NO_COLOR"} {
		t.Setenv(key, "")
	}
}

func useStubRasterizer(t *testing.T) *stubRasterizer {
	t.Helper()
	stub := &stubRasterizer{}
	prev := newRasterizer
	newRasterizer = func(engine, fontSrc string) (renderer.Rasterizer, layout.Measurer, error) {
		if _, _, err := defaultRasterizer(engine, fontSrc); err != nil {
			return nil, nil, err
		}
		stub.engine = engine
		return stub, nil, nil
	}
	t.Cleanup(func() { newRasterizer = prev })
	return stub
}

func TestGenerateIconRequiresText(t *testing.T) {
	isolateEnv(t)
	var stdout, stderr bytes.Buffer

	code := RunGenerateIcon([]string{"-root", t.TempDir(), "-no-color"}, &stdout, &stderr)

	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout.String(), "✗ 错误: 必须提供图标文本") {
		t.Fatalf("missing usage error:\n%s", stdout.String())
	}
}

func TestGenerateIconWritesBothSizes(t *testing.T) {
	isolateEnv(t)
	useStubRasterizer(t)
	root := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := RunGenerateIcon([]string{"-root", root, "-no-color", "NRD PORTAL"}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s%s", code, stdout.String(), stderr.String())
	}
	for _, name := range []string{"icon-192.png", "icon-512.png"} {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if string(data) != "canvas" {
			t.Fatalf("%s rendered by %q, want canvas", name, data)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "icon-192.svg")); !os.IsNotExist(err) {
		t.Fatalf("svg should not be kept without -keep-svg")
	}
}

func TestGenerateIconKeepsLabelAsGiven(t *testing.T) {
	isolateEnv(t)
	stub := useStubRasterizer(t)
	var stdout, stderr bytes.Buffer

	code := RunGenerateIcon([]string{"-root", t.TempDir(), "-no-color", "  PORTAL  "}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout.String())
	}
	if len(stub.labels) != 2 {
		t.Fatalf("expected 2 rasterized sizes, got %d", len(stub.labels))
	}
	for _, label := range stub.labels {
		if label != "  PORTAL  " {
			t.Fatalf("label should reach layout unchanged, got %q", label)
		}
	}
}

func TestGenerateIconRejectsBlankText(t *testing.T) {
	isolateEnv(t)
	useStubRasterizer(t)
	var stdout, stderr bytes.Buffer

	code := RunGenerateIcon([]string{"-root", t.TempDir(), "-no-color", "   "}, &stdout, &stderr)

	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout.String(), "必须提供图标文本") {
		t.Fatalf("missing usage error:\n%s", stdout.String())
	}
}

func TestGenerateIconRejectsUnknownEngine(t *testing.T) {
	isolateEnv(t)
	useStubRasterizer(t)
	var stdout, stderr bytes.Buffer

	code := RunGenerateIcon([]string{"-root", t.TempDir(), "-engine", "cairo", "-no-color", "NRD"}, &stdout, &stderr)

	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout.String(), "不支持的引擎") {
		t.Fatalf("missing engine error:\n%s", stdout.String())
	}
}

func TestGenerateIconOksvgWarnsAboutText(t *testing.T) {
	isolateEnv(t)
	useStubRasterizer(t)
	var stdout, stderr bytes.Buffer

	code := RunGenerateIcon([]string{"-root", t.TempDir(), "-engine", "oksvg", "-no-color", "NRD"}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "⚠ oksvg 引擎不渲染文字") {
		t.Fatalf("missing warning:\n%s", stdout.String())
	}
}

func TestHelpExitsZero(t *testing.T) {
	isolateEnv(t)
	var stdout, stderr bytes.Buffer
	if code := RunGenerateIcon([]string{"-h"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0 for -h, got %d", code)
	}
	if !strings.Contains(stderr.String(), "用法: generate-icon") {
		t.Fatalf("missing usage text:\n%s", stderr.String())
	}
}

func TestGenerateIconsMissingInput(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := RunGenerateIcons([]string{"-root", root, "-no-color"}, &stdout, &stderr)

	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	out := stdout.String()
	if !strings.Contains(out, "✗ 错误: 找不到 icon-192.svg") || !strings.Contains(out, "找不到 icon-512.svg") {
		t.Fatalf("missing input errors:\n%s", out)
	}
}

func TestGenerateIconsConvertsAndSkips(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 10 10"><rect width="10" height="10" fill="#dc2626"/></svg>`
	for _, size := range []int{192, 512} {
		name := filepath.Join(root, fmt.Sprintf("icon-%d.svg", size))
		if err := os.WriteFile(name, []byte(fmt.Sprintf(svg, size, size)), 0o644); err != nil {
			t.Fatalf("write svg: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "icon-512.png"), []byte("old"), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
	var stdout, stderr bytes.Buffer

	code := RunGenerateIcons([]string{"-root", root, "-no-color"}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout.String())
	}
	f, err := os.Open(filepath.Join(root, "icon-192.png"))
	if err != nil {
		t.Fatalf("icon-192.png missing: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 192 || cfg.Height != 192 {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
	old, _ := os.ReadFile(filepath.Join(root, "icon-512.png"))
	if string(old) != "old" {
		t.Fatalf("existing icon-512.png should be skipped")
	}
	if !strings.Contains(stdout.String(), "ℹ icon-512.png 已存在，跳过") {
		t.Fatalf("missing skip line:\n%s", stdout.String())
	}
}

func TestUpdateVersion(t *testing.T) {
	isolateEnv(t)
	prev := now
	now = func() time.Time { return time.UnixMilli(1700000000000) }
	t.Cleanup(func() { now = prev })

	root := t.TempDir()
	html := `<link rel="stylesheet" href="styles.css?v=1"><script src="app.js?v=2"></script>`
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte(html), 0o644); err != nil {
		t.Fatalf("write html: %v", err)
	}
	var stdout, stderr bytes.Buffer

	code := RunUpdateVersion([]string{"-root", root, "-no-color"}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout.String())
	}
	data, _ := os.ReadFile(filepath.Join(root, "index.html"))
	want := `<link rel="stylesheet" href="styles.css?v=1700000000000"><script src="app.js"></script>`
	if string(data) != want {
		t.Fatalf("unexpected html:\n%s", data)
	}
	if !strings.Contains(stdout.String(), "✓ 版本已更新为: 1700000000000") {
		t.Fatalf("missing success line:\n%s", stdout.String())
	}
}

func TestUpdateVersionCustomManifest(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()
	manifestPath := filepath.Join(root, "site.manifest")
	if err := os.WriteFile(manifestPath, []byte(`project site { stamp "admin.html" { asset "admin.js" } }`), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "admin.html"), []byte(`<script src="admin.js"></script>`), 0o644); err != nil {
		t.Fatalf("write html: %v", err)
	}
	var stdout, stderr bytes.Buffer

	code := RunUpdateVersion([]string{"-root", root, "-manifest", manifestPath, "-no-color"}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout.String())
	}
	data, _ := os.ReadFile(filepath.Join(root, "admin.html"))
	if !strings.Contains(string(data), `src="admin.js?v=`) {
		t.Fatalf("admin.js not stamped: %s", data)
	}
}

func TestUpdateVersionMissingHTML(t *testing.T) {
	isolateEnv(t)
	var stdout, stderr bytes.Buffer

	code := RunUpdateVersion([]string{"-root", t.TempDir(), "-no-color"}, &stdout, &stderr)

	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout.String(), "✗ 错误: 找不到") {
		t.Fatalf("missing error line:\n%s", stdout.String())
	}
}

func TestDefaultRasterizer(t *testing.T) {
	r, m, err := defaultRasterizer("canvas", "")
	if err != nil || r == nil || m == nil {
		t.Fatalf("canvas engine should provide rasterizer and measurer: %v", err)
	}
	r, m, err = defaultRasterizer("oksvg", "")
	if err != nil || r == nil || m != nil {
		t.Fatalf("oksvg engine should provide only a rasterizer: %v", err)
	}
	if _, _, err := defaultRasterizer("cairo", ""); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
}

