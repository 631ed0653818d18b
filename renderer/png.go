package renderer

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultSupersample 是栅格化时的默认超采样倍数。
const DefaultSupersample = 2

// EncodePNG 把栅格图缩放到 width×height（Lanczos）后编码为 PNG。
// 后端以超采样分辨率绘制，这里统一缩回目标尺寸。
func EncodePNG(img image.Image, width, height int) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("栅格图为空")
	}
	var out image.Image = img
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		out = imaging.Resize(img, width, height, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}
