package layout

// BuildOptions 配置布局阶段的可选依赖，例如文本测量后端。
type BuildOptions struct {
	Measurer Measurer
	Debug    DebugOptions
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	Measure bool // 在调试 JSON 中输出 debug.measuredWidth（需要 Measurer）
}

// Measurer 使用真实字体度量测量一行文本的宽度（像素）。
// 测量结果只用于调试输出，不参与字号拟合。
type Measurer interface {
	MeasureText(content string, fontSize float64) (float64, error)
}
