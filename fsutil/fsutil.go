package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile 原子地写入文件：先写同目录下的临时文件，再重命名覆盖目标。
// 失败时目标文件保持原样。
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("设置 %s 权限失败: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("替换 %s 失败: %w", path, err)
	}
	return nil
}

// Exists 报告 path 是否存在。
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
