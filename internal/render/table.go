package render

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/dogudogru/survey-report-app-v2/internal/i18n"
	"github.com/dogudogru/survey-report-app-v2/internal/service/breakdown"
	"github.com/dogudogru/survey-report-app-v2/internal/service/crosstab"
)

// 趋势列区间
const (
	trendFirstCol = 7  // G
	trendLastCol  = 12 // L
)

// TableOptions 表格渲染参数
type TableOptions struct {
	Lang i18n.Lang
	Dict *i18n.Dictionary
	// Period 当期标签（土耳其语形式，英文表按词典翻译）
	Period string
}

// RenderTables 把全部表写入工作簿；英文工作簿最后统一翻译文字单元格
func RenderTables(target CellTarget, agg *breakdown.Aggregates, opts TableOptions) error {
	if opts.Dict == nil {
		opts.Dict = i18n.Default()
	}
	w := tableWriter{target: target, opts: opts}
	for _, s := range agg.Sheets {
		if !target.HasSheet(s.Name) {
			return &MissingSheetError{Sheet: s.Name}
		}
		if err := w.write(s); err != nil {
			return errors.Wrapf(err, "sheet %s", s.Name)
		}
	}
	if opts.Lang == i18n.EN {
		return w.translate()
	}
	return nil
}

type tableWriter struct {
	target CellTarget
	opts   TableOptions
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func (w tableWriter) set(sheet string, col, row int, v interface{}) error {
	return w.target.SetCell(sheet, cellName(col, row), v)
}

func (w tableWriter) write(s breakdown.Sheet) error {
	for i, g := range s.Rows {
		row := s.FirstRow + i
		for _, b := range s.Blocks {
			for j, o := range b.Table.Outcomes {
				if err := w.set(s.Name, b.Col+j, row, crosstab.RoundCell(float64(b.Table.Percent(g, o)))); err != nil {
					return err
				}
			}
		}
	}
	if s.TotalRow {
		for _, b := range s.Blocks {
			for j := range b.Table.Outcomes {
				if err := w.set(s.Name, b.Col+j, s.LastRow()+1, 100); err != nil {
					return err
				}
			}
		}
	}

	switch s.Trend {
	case breakdown.ShiftTrend:
		if err := w.shift(s); err != nil {
			return err
		}
		return w.writeTrend(s, trendLastCol)
	case breakdown.SingleTrend:
		// 先照常左移，再用当期覆盖 G
		if err := w.shift(s); err != nil {
			return err
		}
		return w.writeTrend(s, trendFirstCol)
	}
	return nil
}

// shift 趋势列 G..K 取 H..L 的内容，表头同时翻译月份
func (w tableWriter) shift(s breakdown.Sheet) error {
	for col := trendFirstCol; col < trendLastCol; col++ {
		header, err := w.target.GetCell(s.Name, cellName(col+1, 1))
		if err != nil {
			return err
		}
		if err := w.set(s.Name, col, 1, w.opts.Dict.Period(w.opts.Lang, header)); err != nil {
			return err
		}
		for row := s.FirstRow; row <= s.LastRow(); row++ {
			raw, err := w.target.GetCell(s.Name, cellName(col+1, row))
			if err != nil {
				return err
			}
			if err := w.set(s.Name, col, row, cellValue(raw)); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeTrend 在指定列写当期标签与每行的负面合计
func (w tableWriter) writeTrend(s breakdown.Sheet, col int) error {
	if err := w.set(s.Name, col, 1, w.opts.Dict.Period(w.opts.Lang, w.opts.Period)); err != nil {
		return err
	}
	t := s.Blocks[0].Table
	for i, g := range s.Rows {
		v := crosstab.RoundCell(float64(t.Rollup(g, s.Negative)))
		if err := w.set(s.Name, col, s.FirstRow+i, v); err != nil {
			return err
		}
	}
	return nil
}

// translate 英文工作簿：所有文字单元格按表格词典翻译，数字不动
func (w tableWriter) translate() error {
	translated := 0
	for _, sheet := range w.target.Sheets() {
		rows, err := w.target.Rows(sheet)
		if err != nil {
			return errors.Wrapf(err, "read sheet %s", sheet)
		}
		for r, cells := range rows {
			for c, text := range cells {
				if text == "" || isNumber(text) {
					continue
				}
				en, ok := w.opts.Dict.Cell(w.opts.Lang, text)
				if !ok {
					continue
				}
				if err := w.set(sheet, c+1, r+1, en); err != nil {
					return err
				}
				translated++
			}
		}
	}
	log.Debug().Int("cells", translated).Msg("table workbook translated")
	return nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// cellValue 移动单元格时保持数字类型
func cellValue(raw string) interface{} {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
