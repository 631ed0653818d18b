package layout

import (
	"math"
	"testing"
)

func TestFitFontSizeShrinksWideUppercaseLine(t *testing.T) {
	// 5×50×0.65 = 162.5 > 100 → floor(50×100/162.5×0.95) = 29
	if got := FitFontSize("HELLO", 100, 50); got != 29 {
		t.Fatalf("FitFontSize(HELLO) = %d, want 29", got)
	}
}

func TestFitFontSizeGrowsShortLine(t *testing.T) {
	// 2×50×0.55 = 55 < 70 → floor(50×1.1) = 55
	if got := FitFontSize("hi", 100, 50); got != 55 {
		t.Fatalf("FitFontSize(hi) = %d, want 55", got)
	}
}

func TestFitFontSizeKeepsBaseInComfortBand(t *testing.T) {
	// 10×50×0.55 = 275，在 [210, 300] 区间内
	if got := FitFontSize("abcdefghij", 300, 50); got != 50 {
		t.Fatalf("FitFontSize = %d, want base 50", got)
	}
	// 恰好等于 maxWidth 时不缩小
	if got := FitFontSize("abcdefghij", 275, 50); got != 50 {
		t.Fatalf("FitFontSize at exact width = %d, want 50", got)
	}
}

func TestFitFontSizeFloorsAtHalfBase(t *testing.T) {
	if got := FitFontSize("WWWWWWWWWWWWWWWWWWWW", 100, 50); got != 25 {
		t.Fatalf("FitFontSize = %d, want floor 25", got)
	}
	if got := FitFontSize("WWWWWWWWWWWWWWWWWWWW", 100, 51); got != 25 {
		t.Fatalf("FitFontSize with odd base = %d, want 25", got)
	}
}

// TestFitFontSizeBounds 断言：结果始终位于 [floor(base/2), floor(base×1.1)]。
func TestFitFontSizeBounds(t *testing.T) {
	lines := []string{"a", "Ab", "portal", "PORTAL", "NRD", "Pedidos Online", "ÁÉÍÓÚ", "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"}
	widths := []float64{10, 50, 172.8, 460.8, 1000}
	bases := []int{38, 50, 100, 130}
	for _, line := range lines {
		for _, w := range widths {
			for _, base := range bases {
				got := FitFontSize(line, w, base)
				lo := base / 2
				hi := int(math.Floor(float64(base) * 1.1))
				if got < lo || got > hi {
					t.Fatalf("FitFontSize(%q, %g, %d) = %d, outside [%d, %d]", line, w, base, got, lo, hi)
				}
			}
		}
	}
}

func TestEstimateWidthUsesUppercaseFactor(t *testing.T) {
	if got := EstimateWidth("HELLO", 50); math.Abs(got-162.5) > 1e-9 {
		t.Fatalf("EstimateWidth(HELLO) = %g, want 162.5", got)
	}
	if got := EstimateWidth("hello", 50); math.Abs(got-137.5) > 1e-9 {
		t.Fatalf("EstimateWidth(hello) = %g, want 137.5", got)
	}
	// 只要有一个大写字母就按宽字形估算
	if got := EstimateWidth("hellO", 50); math.Abs(got-162.5) > 1e-9 {
		t.Fatalf("EstimateWidth(hellO) = %g, want 162.5", got)
	}
	// 按 rune 计数
	if got := EstimateWidth("ñññ", 10); math.Abs(got-16.5) > 1e-9 {
		t.Fatalf("EstimateWidth(ñññ) = %g, want 16.5", got)
	}
}
