package util

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// EnsureDir 创建目录
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FileExists 文件是否存在
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// tempPath 同目录下的临时文件，保留扩展名
func tempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+uuid.New().String()[:8]+"."+base)
}

// WriteFileAtomic 先写临时文件再改名
func WriteFileAtomic(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	tmp := tempPath(path)
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// WriteJSONAtomic 以缩进 JSON 写入
func WriteJSONAtomic(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, append(data, '\n'))
}

// ReadJSON 读取 JSON 文件
func ReadJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// SaveWorkbookAtomic 工作簿写入临时文件后改名，目标文件要么是旧内容要么是完整的新内容
func SaveWorkbookAtomic(wb *excelize.File, path string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "create dir for %s", path)
	}
	tmp := tempPath(path)
	if err := wb.SaveAs(tmp); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}

// CopyFile 复制文件
func CopyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return WriteFileAtomic(dst, data)
}
