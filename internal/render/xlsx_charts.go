package render

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/dogudogru/survey-report-app-v2/internal/util"
)

const chartIndexSheet = "slots"

// ChartWorkbook 图表数据工作簿：每个槽位一张表，含数据区与原生 excel 图表
type ChartWorkbook struct {
	wb      *excelize.File
	entries []chartEntry
}

type chartEntry struct {
	slot       Slot
	categories int
	series     int
}

// NewChartWorkbook 创建图表数据工作簿
func NewChartWorkbook() (*ChartWorkbook, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName(wb.GetSheetName(0), chartIndexSheet); err != nil {
		return nil, err
	}
	header := []interface{}{"slot", "slide", "shape", "index", "categories", "series"}
	if err := wb.SetSheetRow(chartIndexSheet, "A1", &header); err != nil {
		return nil, err
	}
	return &ChartWorkbook{wb: wb}, nil
}

// File 底层工作簿
func (c *ChartWorkbook) File() *excelize.File { return c.wb }

// Slots 已写入的槽位，按写入顺序
func (c *ChartWorkbook) Slots() []Slot {
	out := make([]Slot, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.slot)
	}
	return out
}

// ReplaceChartSeries 重建槽位表：A 列为分类，每条序列一列，缺失值留空
func (c *ChartWorkbook) ReplaceChartSeries(slot Slot, data ChartData) error {
	name := sheetName(slot.ID())
	entry := chartEntry{slot: slot, categories: len(data.Categories), series: len(data.Series)}
	if idx, err := c.wb.GetSheetIndex(name); err == nil && idx >= 0 {
		if err := c.wb.DeleteSheet(name); err != nil {
			return errors.Wrapf(err, "drop chart sheet %s", name)
		}
		for i := range c.entries {
			if c.entries[i].slot == slot {
				c.entries[i] = entry
			}
		}
	} else {
		c.entries = append(c.entries, entry)
	}
	if _, err := c.wb.NewSheet(name); err != nil {
		return errors.Wrapf(err, "create chart sheet %s", name)
	}

	var style int
	if data.NumberFormat != "" {
		f := data.NumberFormat
		s, err := c.wb.NewStyle(&excelize.Style{CustomNumFmt: &f})
		if err != nil {
			return err
		}
		style = s
	}

	for j, s := range data.Series {
		if err := c.wb.SetCellValue(name, cellName(j+2, 1), s.Name); err != nil {
			return err
		}
	}
	for i, cat := range data.Categories {
		row := i + 2
		if err := c.wb.SetCellValue(name, cellName(1, row), cat); err != nil {
			return err
		}
		for j, s := range data.Series {
			if i >= len(s.Values) || !s.Values[i].Valid {
				continue
			}
			cell := cellName(j+2, row)
			if err := c.wb.SetCellValue(name, cell, s.Values[i].Value); err != nil {
				return err
			}
			if style != 0 {
				if err := c.wb.SetCellStyle(name, cell, cell, style); err != nil {
					return err
				}
			}
		}
	}

	if err := c.addChart(name, slot, data); err != nil {
		return err
	}
	return c.writeIndex()
}

func (c *ChartWorkbook) addChart(sheet string, slot Slot, data ChartData) error {
	if len(data.Categories) == 0 || len(data.Series) == 0 {
		log.Debug().Str("slot", slot.ID()).Msg("empty chart data, no chart drawn")
		return nil
	}
	last := len(data.Categories) + 1
	ref := func(col, from, to int) string {
		return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, colName(col), from, colName(col), to)
	}

	chartType := excelize.Line
	if data.Kind == BarChart {
		chartType = excelize.Col
	}
	series := make([]excelize.ChartSeries, 0, len(data.Series))
	for j := range data.Series {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", sheet, colName(j+2)),
			Categories: ref(1, 2, last),
			Values:     ref(j+2, 2, last),
		})
	}
	title := slot.Name
	if title == "" {
		title = slot.ID()
	}
	anchor := cellName(len(data.Series)+3, 2)
	if err := c.wb.AddChart(sheet, anchor, &excelize.Chart{
		Type:   chartType,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}); err != nil {
		return errors.Wrapf(err, "draw chart %s", slot.ID())
	}
	return nil
}

func (c *ChartWorkbook) writeIndex() error {
	for i, e := range c.entries {
		row := []interface{}{sheetName(e.slot.ID()), e.slot.Slide, e.slot.Name, e.slot.Index, e.categories, e.series}
		cell := cellName(1, i+2)
		if err := c.wb.SetSheetRow(chartIndexSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// SaveAs 写到输出路径
func (c *ChartWorkbook) SaveAs(path string) error {
	c.wb.SetActiveSheet(0)
	return util.SaveWorkbookAtomic(c.wb, path)
}

// Close 释放工作簿
func (c *ChartWorkbook) Close() error {
	return c.wb.Close()
}

func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
