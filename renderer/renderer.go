package renderer

import (
	"errors"
	"fmt"
	"os"

	"github.com/yosbany/nrd-portal/layout"
)

// ErrUnavailable 表示当前栅格化后端无法处理给定文档（缺少所需能力或输入）。
var ErrUnavailable = errors.New("栅格化能力不可用")

// Document 是待栅格化的图标文档。
// Layout 为空表示文档来自磁盘上的 SVG 文件，只有 SVG 标记可用。
type Document struct {
	Layout *layout.Result
	SVG    []byte
}

// Rasterizer 将文档转换为指定像素尺寸的 PNG 字节。
type Rasterizer interface {
	Rasterize(doc Document, width, height int) ([]byte, error)
}

// ConversionError 包装栅格化过程中发生的错误。
type ConversionError struct {
	Engine string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s 转换失败: %v", e.Engine, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// LoadSVG 从磁盘读取 SVG 文件作为文档。
func LoadSVG(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("读取 SVG %s 失败: %w", path, err)
	}
	return Document{SVG: data}, nil
}

// CheckSize 校验输出尺寸。
func CheckSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("无效的输出尺寸 %dx%d", width, height)
	}
	return nil
}
