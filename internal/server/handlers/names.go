package handlers

import (
	"path/filepath"
	"strings"

	"github.com/dogudogru/survey-report-app-v2/internal/service/history"
)

// DownloadName 下载文件名：去掉 temp_ 前缀；名称中没有月份时追加 _{Mon.YY}
func DownloadName(path, period string) string {
	name := strings.TrimPrefix(filepath.Base(path), "temp_")
	for _, m := range history.TurkishMonths {
		if strings.Contains(name, m) {
			return name
		}
	}
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + period + ext
}
