package favicon

import (
	"fmt"
	"os"
	"path/filepath"
)

// ensureDir 返回 dir 的绝对路径，不存在时连同父目录一起创建
func ensureDir(dir string) (string, error) {
	fp, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(fp)
	if err == nil {
		if !info.IsDir() {
			return "", fmt.Errorf("%s 不是目录", fp)
		}
		return fp, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}
	if err = os.MkdirAll(fp, 0755); err != nil {
		return "", err
	}
	return fp, nil
}
