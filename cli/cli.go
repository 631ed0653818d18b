package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/yosbany/nrd-portal/batch"
	"github.com/yosbany/nrd-portal/config"
	"github.com/yosbany/nrd-portal/fonts"
	"github.com/yosbany/nrd-portal/icon"
	"github.com/yosbany/nrd-portal/layout"
	"github.com/yosbany/nrd-portal/manifest"
	"github.com/yosbany/nrd-portal/renderer"
	canvasrenderer "github.com/yosbany/nrd-portal/renderer/canvas"
	oksvgrenderer "github.com/yosbany/nrd-portal/renderer/oksvg"
	"github.com/yosbany/nrd-portal/report"
	"github.com/yosbany/nrd-portal/stamp"
)

// 测试中可替换。
var (
	now           = time.Now
	newRasterizer = defaultRasterizer
)

// defaultRasterizer 按引擎名创建栅格化后端；canvas 后端同时作为文字测量器返回。
func defaultRasterizer(engine, fontSrc string) (renderer.Rasterizer, layout.Measurer, error) {
	switch engine {
	case canvasrenderer.Engine:
		r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{FontSrc: fontSrc})
		return r, r, nil
	case oksvgrenderer.Engine:
		return oksvgrenderer.NewRenderer(), nil, nil
	default:
		return nil, nil, fmt.Errorf("不支持的引擎 %q（可选: %s）", engine, strings.Join(config.Engines, ", "))
	}
}

func loadConfig(stderr io.Writer) (*config.Config, bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "加载配置失败: %v\n", err)
		return nil, false
	}
	return cfg, true
}

// parseFlags 解析参数；返回的 code 在 ok 为 false 时即为退出码。
func parseFlags(fset *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, false
		}
		return 1, false
	}
	return 0, true
}

// RunGenerateIcon 为给定文本生成 icon-192.png 与 icon-512.png，返回进程退出码。
func RunGenerateIcon(args []string, stdout, stderr io.Writer) int {
	cfg, ok := loadConfig(stderr)
	if !ok {
		return 1
	}
	fset := flag.NewFlagSet("generate-icon", flag.ContinueOnError)
	fset.SetOutput(stderr)
	root := fset.String("root", cfg.Root, "项目根目录（输出 PNG 的位置）")
	engine := fset.String("engine", cfg.Engine, "栅格化引擎: canvas 或 oksvg")
	fontSrc := fset.String("font", fonts.Default, "字体：embed:Go-Bold 或 TTF/OTF 文件路径")
	keepSVG := fset.Bool("keep-svg", false, "同时在根目录保留 SVG")
	debug := fset.String("debug", "", "布局调试 JSON 输出路径")
	noColor := fset.Bool("no-color", cfg.NoColor, "关闭彩色输出")
	fset.Usage = func() {
		fmt.Fprintln(stderr, `用法: generate-icon [选项] "图标文本"`)
		fset.PrintDefaults()
	}
	if code, ok := parseFlags(fset, args); !ok {
		return code
	}

	p := report.New(stdout, *noColor)
	label := strings.Join(fset.Args(), " ")
	if strings.TrimSpace(label) == "" {
		p.Error("错误: 必须提供图标文本")
		p.Plain(`   用法: generate-icon "图标文本"`)
		return 1
	}

	rast, measurer, err := newRasterizer(*engine, *fontSrc)
	if err != nil {
		p.Error("%v", err)
		return 1
	}
	if *engine == oksvgrenderer.Engine {
		p.Warn("oksvg 引擎不渲染文字，生成的图标只包含背景与装饰")
	}

	p.Plain("正在生成图标，文本: %q", label)
	p.Plain("目录: %s", *root)
	p.Plain("")

	gen := &icon.Generator{
		OutDir:     *root,
		Rasterizer: rast,
		KeepSVG:    *keepSVG,
		DebugPath:  *debug,
		Measurer:   measurer,
		Report:     p,
	}
	if _, err := gen.Generate(label); err != nil {
		p.Error("生成图标失败: %v", err)
		return 1
	}
	if *debug != "" {
		p.Info("布局调试信息已写入 %s", *debug)
	}
	return 0
}

// RunGenerateIcons 把清单中的 SVG 批量转换为 PNG，返回进程退出码。
func RunGenerateIcons(args []string, stdout, stderr io.Writer) int {
	cfg, ok := loadConfig(stderr)
	if !ok {
		return 1
	}
	fset := flag.NewFlagSet("generate-icons", flag.ContinueOnError)
	fset.SetOutput(stderr)
	root := fset.String("root", cfg.Root, "项目根目录")
	manifestPath := fset.String("manifest", cfg.Manifest, "构建清单路径，留空使用内置清单")
	noColor := fset.Bool("no-color", cfg.NoColor, "关闭彩色输出")
	if code, ok := parseFlags(fset, args); !ok {
		return code
	}

	p := report.New(stdout, *noColor)
	m, err := manifest.LoadOrDefault(*manifestPath)
	if err != nil {
		p.Error("%v", err)
		return 1
	}
	rast, _, err := newRasterizer(oksvgrenderer.Engine, "")
	if err != nil {
		p.Error("%v", err)
		return 1
	}

	conv := &batch.Converter{Root: *root, Rasterizer: rast, Report: p}
	jobs := batch.JobsFrom(m)

	p.Plain("正在从 SVG 生成 PNG 图标...")
	p.Plain("目录: %s", *root)
	p.Plain("")

	rep, err := conv.Convert(jobs)
	if err != nil {
		var missing *batch.MissingInputError
		if errors.As(err, &missing) {
			for _, path := range missing.Paths {
				p.Error("错误: 找不到 %s", path)
			}
			return 1
		}
		p.Error("%v", err)
		return 1
	}

	p.Plain("")
	if !rep.OK() {
		p.Warn("部分图标未能生成，详见上方信息")
		return 1
	}
	p.Success("图标生成完成")
	for _, job := range jobs {
		p.Plain("  - %s", job.Target)
	}
	return 0
}

// RunUpdateVersion 为清单中的 HTML 文件写入缓存版本参数，返回进程退出码。
func RunUpdateVersion(args []string, stdout, stderr io.Writer) int {
	cfg, ok := loadConfig(stderr)
	if !ok {
		return 1
	}
	fset := flag.NewFlagSet("update-version", flag.ContinueOnError)
	fset.SetOutput(stderr)
	root := fset.String("root", cfg.Root, "项目根目录")
	manifestPath := fset.String("manifest", cfg.Manifest, "构建清单路径，留空使用内置清单")
	noColor := fset.Bool("no-color", cfg.NoColor, "关闭彩色输出")
	if code, ok := parseFlags(fset, args); !ok {
		return code
	}

	p := report.New(stdout, *noColor)
	m, err := manifest.LoadOrDefault(*manifestPath)
	if err != nil {
		p.Error("%v", err)
		return 1
	}

	version := stamp.Version(now)
	for _, s := range m.Stamps() {
		path := string(s.File)
		if !filepath.IsAbs(path) {
			path = filepath.Join(*root, path)
		}
		if err := stamp.File(path, version, s.AssetPaths()); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				p.Error("错误: 找不到 %s", path)
			} else {
				p.Error("更新 %s 失败: %v", path, err)
			}
			return 1
		}
		p.Info("已更新 %s 的缓存参数", s.File)
	}
	p.Success("版本已更新为: %s", version)
	return 0
}
