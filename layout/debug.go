package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将一组布局结果输出为 JSON 数组，便于调试拆行与字号。
// nil 结果会被跳过；没有可输出的结果时不创建文件。
func WriteDebugJSON(results []*Result, path string) error {
	out := make([]*Result, 0, len(results))
	for _, res := range results {
		if res != nil {
			out = append(out, res)
		}
	}
	if len(out) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
