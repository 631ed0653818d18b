package stamp

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yosbany/nrd-portal/fsutil"
)

var (
	versionPattern = regexp.MustCompile(`\?v=\d+`)
	tagPattern     = regexp.MustCompile(`(?i)<(link|script)\b[^>]*>`)
	attrPattern    = regexp.MustCompile(`(?i)(\s)(href|src)(\s*=\s*)(["'])([^"']*)(["'])`)
)

// Clock 返回当前时间，测试中可替换。
type Clock func() time.Time

// Version 返回以毫秒 Unix 时间表示的版本号。
func Version(clock Clock) string {
	if clock == nil {
		clock = time.Now
	}
	return strconv.FormatInt(clock().UnixMilli(), 10)
}

// Apply 先移除 html 中所有 ?v=<数字> 参数，再为引用 assets 的
// <link href> 与 <script src> 追加 ?v=version。
func Apply(html, version string, assets []string) string {
	html = versionPattern.ReplaceAllString(html, "")
	if len(assets) == 0 {
		return html
	}
	wanted := make(map[string]struct{}, len(assets))
	for _, a := range assets {
		wanted[a] = struct{}{}
	}

	return tagPattern.ReplaceAllStringFunc(html, func(tag string) string {
		groups := tagPattern.FindStringSubmatch(tag)
		if len(groups) < 2 {
			return tag
		}
		attr := "src"
		if strings.EqualFold(groups[1], "link") {
			attr = "href"
		}
		return attrPattern.ReplaceAllStringFunc(tag, func(match string) string {
			parts := attrPattern.FindStringSubmatch(match)
			if len(parts) < 7 || !strings.EqualFold(parts[2], attr) || parts[4] != parts[6] {
				return match
			}
			if _, ok := wanted[parts[5]]; !ok {
				return match
			}
			return parts[1] + parts[2] + parts[3] + parts[4] + parts[5] + "?v=" + version + parts[6]
		})
	})
}

// File 读取 path，写入版本戳后原子地写回。文件不存在时返回的错误包装 fs.ErrNotExist。
func File(path, version string, assets []string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("找不到 %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	out := Apply(string(data), version, assets)
	return fsutil.WriteFile(path, []byte(out), info.Mode().Perm())
}
