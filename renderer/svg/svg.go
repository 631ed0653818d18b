package svgrenderer

import (
	"bytes"
	"fmt"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/yosbany/nrd-portal/layout"
)

const (
	gradientID = "bgGradient"
	shadowID   = "shadow"
	fontFamily = "Arial, sans-serif"
)

// Encode 将布局结果编码为 SVG 文档。相同的输入总是得到逐字节相同的输出。
func Encode(res *layout.Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("布局结果为空")
	}
	if len(res.Texts) == 0 {
		return nil, fmt.Errorf("布局结果缺少文本行")
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	size := res.Size

	canvas.Start(size, size)

	canvas.Def()
	canvas.LinearGradient(gradientID, 0, 0, 100, 100, offcolors(res.Background.Stops))
	shadow := res.Texts[0].Shadow
	canvas.Filter(shadowID)
	// svgo 没有 feDropShadow 原语，直接写入。
	fmt.Fprintf(canvas.Writer, `<feDropShadow dx="0" dy="%d" stdDeviation="%d" flood-opacity="%s"/>`+"\n",
		shadow.DY, shadow.Blur, ftoa(shadow.Opacity))
	canvas.Fend()
	canvas.DefEnd()

	r := res.Background.Radius
	canvas.Roundrect(0, 0, size, size, r, r, fmt.Sprintf(`fill="url(#%s)"`, gradientID))

	encodeMotif(canvas, res.Motif)

	for _, tl := range res.Texts {
		canvas.Text(tl.X, tl.Y, tl.Content, textAttrs(tl))
	}
	canvas.End()
	return buf.Bytes(), nil
}

func encodeMotif(canvas *svg.SVG, m layout.Motif) {
	canvas.Group(fmt.Sprintf(`opacity="%s"`, ftoa(m.Opacity)))
	for _, rc := range m.Rects {
		canvas.Roundrect(rc.X, rc.Y, rc.Width, rc.Height, rc.Radius, rc.Radius,
			fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%d" stroke-opacity="%s"`,
				rc.Fill.Hex(), rc.Fill.Hex(), rc.StrokeWidth, ftoa(rc.StrokeOpacity)))
	}
	for _, ln := range m.Lines {
		canvas.Line(ln.X1, ln.Y1, ln.X2, ln.Y2,
			fmt.Sprintf(`stroke="%s" stroke-width="%d" stroke-linecap="round"`, ln.Color.Hex(), ln.Width))
	}
	canvas.Gend()
}

func textAttrs(tl layout.TextLine) string {
	return fmt.Sprintf(`font-family="%s" font-size="%d" font-weight="bold" fill="%s" text-anchor="middle" dominant-baseline="middle" filter="url(#%s)" letter-spacing="%d"`,
		fontFamily, tl.FontSize, tl.Color.Hex(), shadowID, tl.LetterSpacing)
}

func offcolors(stops []layout.GradientStop) []svg.Offcolor {
	out := make([]svg.Offcolor, 0, len(stops))
	for _, st := range stops {
		out = append(out, svg.Offcolor{Offset: uint8(st.Offset), Color: st.Color.Hex(), Opacity: 1})
	}
	return out
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
