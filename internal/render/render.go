// Package render 把计算结果转换为演示文稿图表与表格工作簿的更新操作
package render

import (
	"fmt"
	"strings"

	"github.com/dogudogru/survey-report-app-v2/internal/model"
)

// ChartKind 图表类型
type ChartKind int

const (
	// LineChart 按月的趋势图
	LineChart ChartKind = iota
	// BarChart 当期快照
	BarChart
)

// Slot 图表槽位：按形状名定位；Slide > 0 时限定在该页，Name 为空时按页内序号定位
type Slot struct {
	Name  string
	Slide int
	Index int
}

// ID 槽位标识
func (s Slot) ID() string {
	switch {
	case s.Slide == 0:
		return s.Name
	case s.Name != "":
		return fmt.Sprintf("s%d_%s", s.Slide, s.Name)
	default:
		return fmt.Sprintf("s%d_%d", s.Slide, s.Index+1)
	}
}

// Series 一条图表序列
type Series struct {
	Name   string
	Values []model.Number
}

// ChartData 替换一个图表的全部数据，分类与序列都已翻译并排好序
type ChartData struct {
	Kind         ChartKind
	Categories   []string
	Series       []Series
	NumberFormat string
}

// ChartUpdate 一个槽位的更新
type ChartUpdate struct {
	Slot Slot
	Data ChartData
}

// ChartTarget 演示文稿一侧提供的更新原语
type ChartTarget interface {
	ReplaceChartSeries(slot Slot, data ChartData) error
}

// CellTarget 表格工作簿一侧提供的更新原语
type CellTarget interface {
	HasSheet(sheet string) bool
	Sheets() []string
	GetCell(sheet, cell string) (string, error)
	SetCell(sheet, cell string, value interface{}) error
	Rows(sheet string) ([][]string, error)
}

// MissingSheetError 模板中缺少表
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("sheet %q not found in table workbook", e.Sheet)
}

// sheetName excel 表名不超过 31 个字符且不能含特殊字符
func sheetName(id string) string {
	r := strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")
	id = r.Replace(id)
	if runes := []rune(id); len(runes) > 31 {
		id = string(runes[:31])
	}
	return id
}
