package render

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/dogudogru/survey-report-app-v2/internal/service/breakdown"
	"github.com/dogudogru/survey-report-app-v2/internal/util"
)

// CellWorkbook 基于 excelize 的表格工作簿：在模板副本上填值，保留样式与公式
type CellWorkbook struct {
	wb *excelize.File
}

// OpenCellWorkbook 打开模板；模板文件本身不会被改写
func OpenCellWorkbook(path string) (*CellWorkbook, error) {
	if path == "" {
		return nil, errors.New("table template path is empty")
	}
	if !util.FileExists(path) {
		return nil, errors.Errorf("table template not found: %s", path)
	}
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open table template %s", path)
	}
	return &CellWorkbook{wb: wb}, nil
}

// NewCellWorkbook 包装已打开的工作簿
func NewCellWorkbook(wb *excelize.File) *CellWorkbook {
	return &CellWorkbook{wb: wb}
}

// File 底层工作簿
func (c *CellWorkbook) File() *excelize.File { return c.wb }

// HasSheet 表是否存在
func (c *CellWorkbook) HasSheet(sheet string) bool {
	idx, err := c.wb.GetSheetIndex(sheet)
	return err == nil && idx >= 0
}

// Sheets 全部表名
func (c *CellWorkbook) Sheets() []string {
	return c.wb.GetSheetList()
}

// GetCell 读取单元格原始值
func (c *CellWorkbook) GetCell(sheet, cell string) (string, error) {
	return c.wb.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
}

// SetCell 写入单元格
func (c *CellWorkbook) SetCell(sheet, cell string, value interface{}) error {
	if !c.HasSheet(sheet) {
		return &MissingSheetError{Sheet: sheet}
	}
	return c.wb.SetCellValue(sheet, cell, value)
}

// Rows 读取整张表
func (c *CellWorkbook) Rows(sheet string) ([][]string, error) {
	return c.wb.GetRows(sheet, excelize.Options{RawCellValue: true})
}

// SaveAs 写到输出路径
func (c *CellWorkbook) SaveAs(path string) error {
	return util.SaveWorkbookAtomic(c.wb, path)
}

// Close 释放工作簿
func (c *CellWorkbook) Close() error {
	return c.wb.Close()
}

// NewTableSkeleton 无模板时使用的骨架：每张表写好行标签与列标签，无样式
func NewTableSkeleton(sheets []breakdown.Sheet) (*excelize.File, error) {
	wb := excelize.NewFile()
	for i, s := range sheets {
		if i == 0 {
			if err := wb.SetSheetName(wb.GetSheetName(0), s.Name); err != nil {
				return nil, err
			}
		} else if _, err := wb.NewSheet(s.Name); err != nil {
			return nil, err
		}

		header := s.FirstRow - 1
		for _, b := range s.Blocks {
			for j, o := range b.Table.Outcomes {
				if err := wb.SetCellValue(s.Name, cellName(b.Col+j, header), o); err != nil {
					return nil, err
				}
			}
		}
		for r, label := range s.Rows {
			if err := wb.SetCellValue(s.Name, cellName(1, s.FirstRow+r), label); err != nil {
				return nil, err
			}
		}
		if s.TotalRow {
			if err := wb.SetCellValue(s.Name, cellName(1, s.LastRow()+1), "Toplam"); err != nil {
				return nil, err
			}
		}
	}
	wb.SetActiveSheet(0)
	return wb, nil
}
