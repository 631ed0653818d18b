package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 是图标文字使用的内置字体。
const Default = "embed:Go-Bold"

var builtin = map[string][]byte{
	"Go-Bold":    gobold.TTF,
	"Go-Regular": goregular.TTF,
}

// Load 返回字体的字节数据。src 可写为 "embed:Go-Bold"（内置 Go 字体）或 TTF/OTF 文件路径。
func Load(src string) ([]byte, error) {
	if name, ok := strings.CutPrefix(src, "embed:"); ok {
		data, ok := builtin[name]
		if !ok {
			return nil, fmt.Errorf("找不到内置字体 %s", name)
		}
		return data, nil
	}
	if src == "" {
		return nil, fmt.Errorf("字体路径为空")
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}
