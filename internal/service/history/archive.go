package history

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/dogudogru/survey-report-app-v2/internal/model"
	"github.com/dogudogru/survey-report-app-v2/internal/util"
)

// Archive 历史归档工作簿，每个序列一张表
// 所有修改只发生在内存中，Save 时一次性落盘
type Archive struct {
	path  string
	wb    *excelize.File
	fresh bool
}

// OpenArchive 打开归档；文件不存在时从空工作簿开始
func OpenArchive(path string) (*Archive, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Warn().Str("path", path).Msg("archive not found, starting empty")
		return &Archive{path: path, wb: excelize.NewFile(), fresh: true}, nil
	}
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open archive %s", path)
	}
	return &Archive{path: path, wb: wb}, nil
}

// Path 归档路径
func (a *Archive) Path() string { return a.path }

// Sheets 已有的序列表
func (a *Archive) Sheets() []string {
	if a.fresh {
		return nil
	}
	return a.wb.GetSheetList()
}

// Has 序列表是否存在
func (a *Archive) Has(name string) bool {
	if a.fresh {
		return false
	}
	idx, err := a.wb.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// Load 读取序列；表不存在时返回空序列
func (a *Archive) Load(name string, kind model.SeriesKind) (*model.Series, error) {
	s := &model.Series{Name: name, Kind: kind}
	if !a.Has(name) {
		return s, nil
	}
	rows, err := a.wb.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "read archive sheet %s", name)
	}
	if len(rows) == 0 {
		return s, nil
	}

	for _, h := range rows[0] {
		s.Columns = append(s.Columns, strings.TrimSpace(h))
	}
	// 首列统一视为 Months
	if len(s.Columns) > 0 {
		s.Columns[0] = model.MonthsColumn
	}
	width := len(s.Columns) - 1

	for i, cells := range rows[1:] {
		if blankRow(cells) {
			continue
		}
		if strings.TrimSpace(cells[0]) == "" {
			return nil, &MissingPeriodError{Sheet: name, Row: i + 2}
		}
		row := model.SeriesRow{Period: strings.TrimSpace(cells[0]), Values: make([]model.Number, width)}
		for c := 0; c < width; c++ {
			v := model.Missing
			if c+1 < len(cells) {
				v, err = parseNumber(cells[c+1])
				if err != nil {
					return nil, errors.Wrapf(err, "sheet %s row %d", name, i+2)
				}
			}
			// 评分序列中的 0 是无数据
			if kind == model.KindScore {
				v = kind.Normalize(v)
			}
			row.Values[c] = v
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

// MissingPeriodError 归档行有数值但没有 Months 标签
type MissingPeriodError struct {
	Sheet string
	Row   int
}

func (e *MissingPeriodError) Error() string {
	return fmt.Sprintf("archive sheet %s row %d has values but no %s label", e.Sheet, e.Row, model.MonthsColumn)
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseNumber(raw string) (model.Number, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "nan") {
		return model.Missing, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return model.Missing, errors.Wrapf(err, "parse %q", raw)
	}
	return model.Num(f), nil
}

// Replace 用序列内容重写对应的表，其余表不动
func (a *Archive) Replace(s *model.Series) error {
	name := s.Name
	var old [][]string
	switch {
	case a.fresh:
		if err := a.wb.SetSheetName(a.wb.GetSheetName(0), name); err != nil {
			return errors.Wrapf(err, "rename sheet to %s", name)
		}
		a.fresh = false
	case a.Has(name):
		var err error
		old, err = a.wb.GetRows(name)
		if err != nil {
			return errors.Wrapf(err, "read archive sheet %s", name)
		}
	default:
		if _, err := a.wb.NewSheet(name); err != nil {
			return errors.Wrapf(err, "create sheet %s", name)
		}
	}

	wanted := len(s.Rows) + 1
	for r := len(old); r > wanted; r-- {
		if err := a.wb.RemoveRow(name, r); err != nil {
			return errors.Wrapf(err, "trim sheet %s", name)
		}
	}

	header := make([]interface{}, 0, len(s.Columns))
	for _, c := range s.Columns {
		header = append(header, c)
	}
	if err := a.setRow(name, 1, header, old); err != nil {
		return err
	}
	for i, r := range s.Rows {
		values := make([]interface{}, 0, len(r.Values)+1)
		values = append(values, r.Period)
		for _, v := range r.Values {
			if v.Valid {
				values = append(values, v.Value)
			} else {
				values = append(values, nil)
			}
		}
		if err := a.setRow(name, i+2, values, old); err != nil {
			return err
		}
	}
	return nil
}

func (a *Archive) setRow(sheet string, row int, values []interface{}, old [][]string) error {
	// 旧行更宽时清掉多余的单元格
	if row-1 < len(old) {
		for c := len(values); c < len(old[row-1]); c++ {
			values = append(values, nil)
		}
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := a.wb.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrapf(err, "write sheet %s row %d", sheet, row)
	}
	return nil
}

// Save 整个归档一次落盘，要么全部更新要么保持原样
func (a *Archive) Save() error {
	if err := util.SaveWorkbookAtomic(a.wb, a.path); err != nil {
		return errors.Wrap(err, "save archive")
	}
	log.Info().Str("path", a.path).Msg("archive saved")
	return nil
}

// Close 释放工作簿
func (a *Archive) Close() error {
	return a.wb.Close()
}
