package canvasrenderer

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/yosbany/nrd-portal/fonts"
	"github.com/yosbany/nrd-portal/layout"
	"github.com/yosbany/nrd-portal/renderer"
)

// Engine 是该后端在错误信息与命令行参数中的名称。
const Engine = "canvas"

var shadowColor = color.NRGBA{A: 255}

// Renderer draws layout results via github.com/tdewolff/canvas.
// 画布单位为 mm，布局中的 1 px 对应画布上的 1 mm。
type Renderer struct {
	fontSrc     string
	supersample int

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var (
	_ renderer.Rasterizer = (*Renderer)(nil)
	_ layout.Measurer     = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	FontSrc     string // 为空时使用 fonts.Default
	Supersample int    // <=0 时使用 renderer.DefaultSupersample
}

// NewRenderer creates a canvas renderer with the built-in font.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with an explicit font source and supersampling.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		fontSrc:     opts.FontSrc,
		supersample: opts.Supersample,
	}
	if r.fontSrc == "" {
		r.fontSrc = fonts.Default
	}
	if r.supersample <= 0 {
		r.supersample = renderer.DefaultSupersample
	}
	return r
}

// Rasterize 绘制 doc.Layout 并输出 width×height 的 PNG。
// 只有 SVG 标记的文档（例如磁盘上的文件）无法处理，返回 renderer.ErrUnavailable。
func (r *Renderer) Rasterize(doc renderer.Document, width, height int) ([]byte, error) {
	if err := renderer.CheckSize(width, height); err != nil {
		return nil, err
	}
	res := doc.Layout
	if res == nil {
		return nil, fmt.Errorf("%s: 文档缺少布局结果: %w", Engine, renderer.ErrUnavailable)
	}
	if res.Size <= 0 {
		return nil, &renderer.ConversionError{Engine: Engine, Err: fmt.Errorf("无效的图标尺寸 %d", res.Size)}
	}

	c, err := r.draw(res)
	if err != nil {
		return nil, &renderer.ConversionError{Engine: Engine, Err: err}
	}

	dpmm := float64(max(width, height)*r.supersample) / float64(res.Size)
	img := rasterizer.Draw(c, canvas.DPMM(dpmm), canvas.DefaultColorSpace)

	data, err := renderer.EncodePNG(img, width, height)
	if err != nil {
		return nil, &renderer.ConversionError{Engine: Engine, Err: err}
	}
	return data, nil
}

// MeasureText 实现 layout.Measurer：按实际字体度量返回文本宽度（px）。
func (r *Renderer) MeasureText(content string, fontSize float64) (float64, error) {
	face, err := r.fontFace(fontSize, canvas.Black)
	if err != nil {
		return 0, err
	}
	return face.TextWidth(content), nil
}

// draw 依次绘制圆角渐变背景、装饰图案与文字。
func (r *Renderer) draw(res *layout.Result) (*canvas.Canvas, error) {
	size := float64(res.Size)
	c := canvas.New(size, size)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	drawBackground(ctx, res.Background, size)
	r.drawMotif(ctx, res.Motif)
	for _, tl := range res.Texts {
		if err := r.drawText(ctx, tl); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// drawBackground 以左上到右下的线性渐变填充圆角矩形。
// 渐变在路径的局部坐标中求值，(0,0) 即图标左上角。
func drawBackground(ctx *canvas.Context, bg layout.Background, size float64) {
	grad := canvas.NewLinearGradient(canvas.Point{X: 0, Y: 0}, canvas.Point{X: size, Y: size})
	for _, st := range bg.Stops {
		grad.Add(float64(st.Offset)/100, color.RGBA{R: uint8(st.Color.R), G: uint8(st.Color.G), B: uint8(st.Color.B), A: 255})
	}
	ctx.SetFillGradient(grad)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.RoundedRectangle(size, size, float64(bg.Radius)))
}

// drawMotif 逐元素套用整体透明度，近似 SVG 中 <g opacity> 的效果。
func (r *Renderer) drawMotif(ctx *canvas.Context, m layout.Motif) {
	for _, rc := range m.Rects {
		ctx.SetFillColor(fade(rc.Fill, m.Opacity))
		ctx.SetStrokeColor(fade(rc.Fill, m.Opacity*rc.StrokeOpacity))
		ctx.SetStrokeWidth(float64(rc.StrokeWidth))
		ctx.DrawPath(float64(rc.X), float64(rc.Y), canvas.RoundedRectangle(float64(rc.Width), float64(rc.Height), float64(rc.Radius)))
	}

	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeCapper(canvas.RoundCap)
	for _, ln := range m.Lines {
		ctx.SetStrokeColor(fade(ln.Color, m.Opacity))
		ctx.SetStrokeWidth(float64(ln.Width))
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(float64(ln.X2-ln.X1), float64(ln.Y2-ln.Y1))
		ctx.DrawPath(float64(ln.X1), float64(ln.Y1), p)
	}
}

func (r *Renderer) drawText(ctx *canvas.Context, tl layout.TextLine) error {
	face, err := r.fontFace(float64(tl.FontSize), colorFromLayout(tl.Color))
	if err != nil {
		return err
	}

	// Y 是文字的垂直中线（dominant-baseline: middle），换算为基线。
	metrics := face.Metrics()
	baseline := float64(tl.Y) + (metrics.Ascent-metrics.Descent)/2
	x := float64(tl.X)

	if tl.Shadow.Opacity > 0 {
		shadow := shadowColor
		shadow.A = uint8(math.Round(tl.Shadow.Opacity * 255))
		shadowFace, err := r.fontFace(float64(tl.FontSize), shadow)
		if err != nil {
			return err
		}
		ctx.DrawText(x, baseline+float64(tl.Shadow.DY), canvas.NewTextLine(shadowFace, tl.Content, canvas.Center))
	}
	ctx.DrawText(x, baseline, canvas.NewTextLine(face, tl.Content, canvas.Center))
	return nil
}

// fontFace 以像素字号创建字体面；字体系统使用 pt，这里做一次 px→pt。
func (r *Renderer) fontFace(sizePx float64, col color.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily()
	if err != nil {
		return nil, err
	}
	return family.Face(layout.PxToPt(sizePx), col, canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if r.family != nil {
		return r.family, nil
	}
	data, err := fonts.Load(r.fontSrc)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("nrd-icon")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", r.fontSrc, err)
	}
	r.family = family
	return family, nil
}

func colorFromLayout(c layout.Color) color.Color {
	return color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

func fade(c layout.Color, opacity float64) color.Color {
	col := color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B)}
	col.A = uint8(math.Round(math.Max(0, math.Min(1, opacity)) * 255))
	return col
}
