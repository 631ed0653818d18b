package layout

import "fmt"

// 该文件定义图标布局结果，供 SVG 编码、栅格化与调试 JSON 共用。
// 所有坐标与尺寸均以像素为单位，原点在左上角。

// Result 保存一次布局计算的全部输出。
type Result struct {
	Label      string     `json:"label"`
	Size       int        `json:"size"`
	Spec       IconSpec   `json:"spec"`
	Split      LineSplit  `json:"split"`
	Sizing     FontSizing `json:"sizing"`
	Background Background `json:"background"`
	Motif      Motif      `json:"motif"`
	Texts      []TextLine `json:"texts"`
}

// LineSplit 是标签拆分后的两行文本，Line2 可以为空。
type LineSplit struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// HasSecondLine 报告是否存在第二行。
func (s LineSplit) HasSecondLine() bool { return s.Line2 != "" }

// FontSizing 记录每行拟合后的字号；第二行为空时 Line2 为 0。
type FontSizing struct {
	Line1 int `json:"line1"`
	Line2 int `json:"line2"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Hex 返回 #rrggbb 形式。
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// GradientStop 是线性渐变上的一个色标，Offset 取值 0-100（百分比）。
type GradientStop struct {
	Offset int   `json:"offset"`
	Color  Color `json:"color"`
}

// Background 描述带圆角的对角线性渐变背景。
type Background struct {
	Radius int            `json:"radius"`
	Stops  []GradientStop `json:"stops"`
}

// Motif 是左上角的装饰网格图案，整体按 Opacity 半透明绘制。
type Motif struct {
	Opacity float64 `json:"opacity"`
	Rects   []Rect  `json:"rects"`
	Lines   []Line  `json:"lines"`
}

// Rect 表示一个圆角矩形。
type Rect struct {
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Radius        int     `json:"radius"`
	Fill          Color   `json:"fill"`
	StrokeWidth   int     `json:"strokeWidth"`
	StrokeOpacity float64 `json:"strokeOpacity"`
}

// Line 表示一条圆头线段。
type Line struct {
	X1    int   `json:"x1"`
	Y1    int   `json:"y1"`
	X2    int   `json:"x2"`
	Y2    int   `json:"y2"`
	Color Color `json:"color"`
	Width int   `json:"width"`
}

// TextLine 是一行已定位的文本，X/Y 为水平居中、垂直居中的锚点。
type TextLine struct {
	Content        string     `json:"content"`
	X              int        `json:"x"`
	Y              int        `json:"y"`
	FontSize       int        `json:"fontSize"`   // 实际绘制字号
	FittedSize     int        `json:"fittedSize"` // FitFontSize 的结果
	Color          Color      `json:"color"`
	LetterSpacing  int        `json:"letterSpacing"`
	Shadow         Shadow     `json:"shadow"`
	EstimatedWidth float64    `json:"estimatedWidth"`
	Debug          *LineDebug `json:"debug,omitempty"`
}

// Shadow 描述文本投影。
type Shadow struct {
	DY      int     `json:"dy"`
	Blur    int     `json:"blur"`
	Opacity float64 `json:"opacity"`
}

// LineDebug holds optional debug info displayed only when enabled by BuildOptions.
type LineDebug struct {
	MeasuredWidth float64 `json:"measuredWidth"`
	TargetWidth   float64 `json:"targetWidth"`
}
