package icon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yosbany/nrd-portal/fsutil"
	"github.com/yosbany/nrd-portal/layout"
	"github.com/yosbany/nrd-portal/renderer"
	svgrenderer "github.com/yosbany/nrd-portal/renderer/svg"
	"github.com/yosbany/nrd-portal/report"
)

// FileName 返回尺寸对应的输出文件名，例如 icon-192.png。
func FileName(size int, ext string) string {
	return fmt.Sprintf("icon-%d%s", size, ext)
}

// Compose 计算布局并生成 SVG 文档。相同的 (label, size) 总是得到相同的文档。
func Compose(label string, size int, opts layout.BuildOptions) (renderer.Document, error) {
	res, err := layout.Build(label, size, opts)
	if err != nil {
		return renderer.Document{}, fmt.Errorf("布局计算失败: %w", err)
	}
	markup, err := svgrenderer.Encode(res)
	if err != nil {
		return renderer.Document{}, fmt.Errorf("生成 SVG 失败: %w", err)
	}
	return renderer.Document{Layout: res, SVG: markup}, nil
}

// Generator 为一个标签生成全部尺寸的 PNG 图标。
type Generator struct {
	OutDir     string
	Rasterizer renderer.Rasterizer
	Sizes      []int // 为空时使用 layout.Sizes()
	KeepSVG    bool  // 同时把 SVG 写到 OutDir
	DebugPath  string
	Measurer   layout.Measurer
	TempDir    string // 临时目录的父目录，为空时使用系统默认
	Report     *report.Printer
}

// Generate 依次生成各尺寸的图标，遇到第一个错误即停止。
// 中间 SVG 写在一次性的临时目录中，无论成功与否都会被删除。
func (g *Generator) Generate(label string) ([]string, error) {
	if g.Rasterizer == nil {
		return nil, fmt.Errorf("未配置栅格化后端: %w", renderer.ErrUnavailable)
	}
	sizes := g.Sizes
	if len(sizes) == 0 {
		sizes = layout.Sizes()
	}

	tmp, err := os.MkdirTemp(g.TempDir, "nrd-icon-*")
	if err != nil {
		return nil, fmt.Errorf("创建临时目录失败: %w", err)
	}
	defer os.RemoveAll(tmp)

	opts := layout.BuildOptions{
		Measurer: g.Measurer,
		Debug:    layout.DebugOptions{Measure: g.DebugPath != "" && g.Measurer != nil},
	}

	var (
		written []string
		results []*layout.Result
	)
	for _, size := range sizes {
		paths, res, err := g.generateOne(label, size, tmp, opts)
		written = append(written, paths...)
		if err != nil {
			return written, err
		}
		results = append(results, res)
	}

	if g.DebugPath != "" {
		if err := layout.WriteDebugJSON(results, g.DebugPath); err != nil {
			return written, fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	return written, nil
}

func (g *Generator) generateOne(label string, size int, tmp string, opts layout.BuildOptions) ([]string, *layout.Result, error) {
	doc, err := Compose(label, size, opts)
	if err != nil {
		return nil, nil, err
	}

	svgName := FileName(size, ".svg")
	svgPath := filepath.Join(tmp, svgName)
	if err := os.WriteFile(svgPath, doc.SVG, 0o644); err != nil {
		return nil, nil, fmt.Errorf("写入临时 SVG 失败: %w", err)
	}
	loaded, err := renderer.LoadSVG(svgPath)
	if err != nil {
		return nil, nil, err
	}
	doc.SVG = loaded.SVG

	pngName := FileName(size, ".png")
	data, err := g.Rasterizer.Rasterize(doc, size, size)
	if err != nil {
		return nil, nil, fmt.Errorf("生成 %s 失败: %w", pngName, err)
	}

	pngPath := filepath.Join(g.OutDir, pngName)
	if err := fsutil.WriteFile(pngPath, data, 0o644); err != nil {
		return nil, nil, err
	}
	written := []string{pngPath}
	g.success("已生成 %s (%dx%d)", pngName, size, size)

	if g.KeepSVG {
		out := filepath.Join(g.OutDir, svgName)
		if err := fsutil.WriteFile(out, doc.SVG, 0o644); err != nil {
			return written, nil, err
		}
		written = append(written, out)
	}
	return written, doc.Layout, nil
}

func (g *Generator) success(format string, args ...any) {
	if g.Report != nil {
		g.Report.Success(format, args...)
	}
}
