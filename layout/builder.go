package layout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrEmptyLabel 表示标签为空或只包含空白。
var ErrEmptyLabel = errors.New("图标文本不能为空")

// 配色。
var (
	gradientStops = []GradientStop{
		{Offset: 0, Color: mustColor("#dc2626")},
		{Offset: 50, Color: mustColor("#ef4444")},
		{Offset: 100, Color: mustColor("#b91c1c")},
	}
	white     = mustColor("#ffffff")
	paleGold  = mustColor("#fef08a")
	motifFade = 0.25
)

const (
	subLineEmphasis = 1.05 // 第二行绘制字号相对拟合字号的放大
	shadowOpacity   = 0.3
	strokeOpacity   = 0.5
)

// Build 根据标签与图标尺寸计算拆行、字号与全部元素的位置。
func Build(label string, size int, opts BuildOptions) (*Result, error) {
	if strings.TrimSpace(label) == "" {
		return nil, ErrEmptyLabel
	}
	spec, err := SpecFor(size)
	if err != nil {
		return nil, err
	}

	split := Split(label)
	maxWidth := spec.TextAreaWidth()

	sizing := FontSizing{Line1: FitFontSize(split.Line1, maxWidth, spec.BaseFontSize)}
	if split.HasSecondLine() {
		sizing.Line2 = FitFontSize(split.Line2, maxWidth, spec.SubFontSize)
	}

	res := &Result{
		Label:      label,
		Size:       size,
		Spec:       spec,
		Split:      split,
		Sizing:     sizing,
		Background: Background{Radius: size / 8, Stops: append([]GradientStop(nil), gradientStops...)},
		Motif:      buildMotif(spec),
	}

	// 单行时垂直居中；两行时分别放在上下两条基线。
	if split.HasSecondLine() {
		res.Texts = []TextLine{
			composeLine(split.Line1, spec.MainLineY, sizing.Line1, sizing.Line1, spec.BaseFontSize, white, spec),
			composeLine(split.Line2, spec.SubLineY, sizing.Line2, int(math.Floor(float64(sizing.Line2)*subLineEmphasis)), spec.SubFontSize, paleGold, spec),
		}
	} else {
		res.Texts = []TextLine{
			composeLine(split.Line1, spec.SingleLineY, sizing.Line1, sizing.Line1, spec.BaseFontSize, white, spec),
		}
	}

	if opts.Debug.Measure && opts.Measurer != nil {
		if err := attachMeasurements(res, opts.Measurer); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func composeLine(content string, y, fitted, drawn, base int, col Color, spec IconSpec) TextLine {
	size := spec.Size
	return TextLine{
		Content:        content,
		X:              size / 2,
		Y:              y,
		FontSize:       drawn,
		FittedSize:     fitted,
		Color:          col,
		LetterSpacing:  size / 384,
		Shadow:         Shadow{DY: size / 64, Blur: size / 128, Opacity: shadowOpacity},
		EstimatedWidth: EstimateWidth(content, base),
	}
}

// buildMotif 生成 2x2 的方块网格以及连接线。
func buildMotif(spec IconSpec) Motif {
	size := spec.Size
	a := spec.MotifOffset
	s := spec.MotifSize
	p := spec.MotifSpacing

	m := Motif{Opacity: motifFade}
	for _, pos := range [][2]int{{a, a}, {a + p, a}, {a, a + p}, {a + p, a + p}} {
		m.Rects = append(m.Rects, Rect{
			X:             pos[0],
			Y:             pos[1],
			Width:         s,
			Height:        s,
			Radius:        size / 48,
			Fill:          white,
			StrokeWidth:   max(1, size/192),
			StrokeOpacity: strokeOpacity,
		})
	}

	width := size / 96
	for _, seg := range [][4]int{
		{a + s/2, a + s/4, a + p, a + s/4},
		{a + s/2, a + s/2, a + p, a + s/2},
		{a + s/4, a + s/2, a + s/4, a + p},
		{a + s/2, a + s/2, a + s/2, a + p},
		{a + p, a + s/2, a + p, a + p},
		{a + p + s/4, a + s/2, a + p + s/4, a + p},
	} {
		m.Lines = append(m.Lines, Line{X1: seg[0], Y1: seg[1], X2: seg[2], Y2: seg[3], Color: white, Width: width})
	}
	return m
}

func attachMeasurements(res *Result, m Measurer) error {
	target := res.Spec.TextAreaWidth()
	for i := range res.Texts {
		tl := &res.Texts[i]
		w, err := m.MeasureText(tl.Content, float64(tl.FontSize))
		if err != nil {
			return fmt.Errorf("测量文本 %q 失败: %w", tl.Content, err)
		}
		tl.Debug = &LineDebug{MeasuredWidth: w, TargetWidth: target}
	}
	return nil
}

func mustColor(hex string) Color {
	c, err := parseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func parseColor(value string) (Color, error) {
	value = strings.TrimPrefix(value, "#")
	switch len(value) {
	case 3:
		r := strings.Repeat(string(value[0]), 2)
		g := strings.Repeat(string(value[1]), 2)
		b := strings.Repeat(string(value[2]), 2)
		return Color{
			R: mustHex(r),
			G: mustHex(g),
			B: mustHex(b),
		}, nil
	case 6, 8:
		return Color{
			R: mustHex(value[0:2]),
			G: mustHex(value[2:4]),
			B: mustHex(value[4:6]),
		}, nil
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
}

func mustHex(s string) int {
	v, _ := strconv.ParseInt(s, 16, 32)
	return int(v)
}
