package survey

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeColumnName 标准化列名：NFC 组合、去首尾空白、合并连续空白
// 分解形式与组合形式的土耳其字母视为相同
func NormalizeColumnName(name string) string {
	name = norm.NFC.String(name)
	return strings.Join(strings.Fields(name), " ")
}

// findContainsCol 返回第一个同时包含全部 phrases 的列下标，未找到返回 -1
func findContainsCol(headers []string, phrases ...string) int {
	if len(phrases) == 0 {
		return -1
	}
	for i, h := range headers {
		h = NormalizeColumnName(h)
		matched := true
		for _, p := range phrases {
			if !strings.Contains(h, NormalizeColumnName(p)) {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}

// findExactCol 返回与 name 完全相同的列下标，未找到返回 -1
func findExactCol(headers []string, name string) int {
	name = NormalizeColumnName(name)
	for i, h := range headers {
		if NormalizeColumnName(h) == name {
			return i
		}
	}
	return -1
}
