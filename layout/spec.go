package layout

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSize 表示请求的图标尺寸没有对应的 IconSpec。
var ErrUnsupportedSize = errors.New("不支持的图标尺寸")

// textAreaRatio 是文本区域占图标宽度的比例。
const textAreaRatio = 0.90

// IconSpec 是某一图标尺寸的固定排版参数（像素）。
type IconSpec struct {
	Size          int     `json:"size"`
	BaseFontSize  int     `json:"baseFontSize"`
	SubFontSize   int     `json:"subFontSize"`
	TextAreaRatio float64 `json:"textAreaRatio"`
	SingleLineY   int     `json:"singleLineY"`
	MainLineY     int     `json:"mainLineY"`
	SubLineY      int     `json:"subLineY"`
	MotifSize     int     `json:"motifSize"`
	MotifOffset   int     `json:"motifOffset"`
	MotifSpacing  int     `json:"motifSpacing"`
}

var iconSpecs = map[int]IconSpec{
	192: {
		Size:          192,
		BaseFontSize:  50,
		SubFontSize:   38,
		TextAreaRatio: textAreaRatio,
		SingleLineY:   108,
		MainLineY:     88,
		SubLineY:      128,
		MotifSize:     28,
		MotifOffset:   20,
		MotifSpacing:  56,
	},
	512: {
		Size:          512,
		BaseFontSize:  130,
		SubFontSize:   100,
		TextAreaRatio: textAreaRatio,
		SingleLineY:   275,
		MainLineY:     225,
		SubLineY:      315,
		MotifSize:     75,
		MotifOffset:   50,
		MotifSpacing:  150,
	},
}

// Sizes 返回支持的图标尺寸（升序）。
func Sizes() []int { return []int{192, 512} }

// SpecFor 返回 size 对应的 IconSpec。
func SpecFor(size int) (IconSpec, error) {
	spec, ok := iconSpecs[size]
	if !ok {
		return IconSpec{}, fmt.Errorf("%w: %d", ErrUnsupportedSize, size)
	}
	return spec, nil
}

// TextAreaWidth 是文本行允许的最大估算宽度。
func (s IconSpec) TextAreaWidth() float64 {
	return float64(s.Size) * s.TextAreaRatio
}
