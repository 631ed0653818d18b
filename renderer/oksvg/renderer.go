package oksvgrenderer

import (
	"bytes"
	"fmt"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/yosbany/nrd-portal/renderer"
)

// Engine 是该后端在错误信息与命令行参数中的名称。
const Engine = "oksvg"

// Renderer 使用 oksvg 解析 SVG、rasterx 栅格化。
// oksvg 不支持 <text> 与滤镜，文字与投影会被忽略。
type Renderer struct {
	Supersample int
}

var _ renderer.Rasterizer = (*Renderer)(nil)

// NewRenderer 返回使用默认超采样倍数的后端。
func NewRenderer() *Renderer { return &Renderer{Supersample: renderer.DefaultSupersample} }

// Rasterize 将 doc.SVG 绘制到 width×height 的 PNG。
func (r *Renderer) Rasterize(doc renderer.Document, width, height int) ([]byte, error) {
	if err := renderer.CheckSize(width, height); err != nil {
		return nil, err
	}
	if len(doc.SVG) == 0 {
		return nil, fmt.Errorf("%s: 文档缺少 SVG 标记: %w", Engine, renderer.ErrUnavailable)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(doc.SVG), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, &renderer.ConversionError{Engine: Engine, Err: err}
	}

	scale := r.Supersample
	if scale < 1 {
		scale = 1
	}
	w, h := width*scale, height*scale
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	data, err := renderer.EncodePNG(img, width, height)
	if err != nil {
		return nil, &renderer.ConversionError{Engine: Engine, Err: err}
	}
	return data, nil
}
