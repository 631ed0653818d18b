package layout

// 布局以像素为单位。渲染器把 1 px 映射为画布上的 1 mm，并以 1 dot/mm 栅格化，
// 因此像素值可以直接作为毫米使用；字体系统使用 pt，需要在边界做换算。

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt 将像素字号换算为 pt。
func PxToPt(px float64) float64 { return px * MmToPt }
