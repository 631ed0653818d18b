package layout

import (
	"math"
	"unicode"
	"unicode/utf8"
)

// 字宽估算系数：含大写字母的行按较宽字形估算。
const (
	wideCharFactor   = 0.65
	narrowCharFactor = 0.55
)

const (
	shrinkMargin = 0.95 // 缩小时额外留出的余量
	roomyRatio   = 0.7  // 估算宽度低于该比例时视为空间充裕
	growFactor   = 1.1  // 空间充裕时放大
)

// EstimateWidth 按字符数与字号粗略估算一行文本的渲染宽度。
func EstimateWidth(line string, baseSize int) float64 {
	factor := narrowCharFactor
	if hasUpper(line) {
		factor = wideCharFactor
	}
	return float64(utf8.RuneCountInString(line)) * float64(baseSize) * factor
}

// FitFontSize 计算让 line 在 maxWidth 内放得下的字号。
// 结果不小于 baseSize/2，不大于 baseSize*1.1。line 不应为空。
func FitFontSize(line string, maxWidth float64, baseSize int) int {
	estimated := EstimateWidth(line, baseSize)
	base := float64(baseSize)
	switch {
	case estimated > maxWidth:
		fitted := int(math.Floor(base * (maxWidth / estimated) * shrinkMargin))
		return max(fitted, baseSize/2)
	case estimated < maxWidth*roomyRatio:
		return int(math.Floor(base * growFactor))
	default:
		return baseSize
	}
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
