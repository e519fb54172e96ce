package survey

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/dogudogru/survey-report-app-v2/internal/model"
)

// InvalidWeightError 权重不可解析或为负
type InvalidWeightError struct {
	Line  int
	Value string
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("invalid weight %q at row %d", e.Value, e.Line)
}

// Survey 已加载并完成派生列的问卷
type Survey struct {
	Table  *model.RespondentTable
	Schema *Schema
}

// Loader 问卷加载器
type Loader struct {
	specs []RoleSpec
}

// NewLoader 按权重列名创建加载器
func NewLoader(weightColumn string) *Loader {
	return &Loader{specs: DefaultRoles(weightColumn)}
}

// NewLoaderWithRoles 使用自定义角色规则
func NewLoaderWithRoles(specs []RoleSpec) *Loader {
	return &Loader{specs: specs}
}

// LoadFile 从文件加载
func (l *Loader) LoadFile(path string) (*Survey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open survey %s", path)
	}
	defer f.Close()
	return l.Load(f)
}

// Load 读取第一个工作表，首行为列名；解析角色、权重并写入派生列
func (l *Loader) Load(r io.Reader) (*Survey, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open survey excel")
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("survey workbook has no sheets")
	}
	// 读取原始值，权重不能按单元格的显示格式被舍入
	rows, err := wb.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %s", sheets[0])
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("sheet %s is empty", sheets[0])
	}

	headers := rows[0]
	schema, err := Resolve(headers, l.specs)
	if err != nil {
		return nil, err
	}
	table, err := buildTable(headers, rows[1:], schema.Column(RoleWeight))
	if err != nil {
		return nil, err
	}
	Derive(table, schema)

	log.Debug().
		Str("sheet", sheets[0]).
		Int("rows", len(table.Rows)).
		Float64("total_weight", table.TotalWeight()).
		Msg("survey loaded")
	return &Survey{Table: table, Schema: schema}, nil
}

func buildTable(headers []string, rows [][]string, weightColumn string) (*model.RespondentTable, error) {
	table := &model.RespondentTable{
		Headers: headers,
		Rows:    make([]model.RespondentRow, 0, len(rows)),
	}
	for i, cells := range rows {
		if isBlankRow(cells) {
			continue
		}
		row := model.RespondentRow{
			Line:   i + 2,
			Values: make(map[string]string, len(headers)),
		}
		for c, h := range headers {
			if c < len(cells) {
				row.Values[h] = cells[c]
			}
		}
		w, err := parseWeight(row.Values[weightColumn])
		if err != nil {
			return nil, &InvalidWeightError{Line: row.Line, Value: row.Values[weightColumn]}
		}
		row.Weight = w
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// parseWeight 空值视为 0，去掉千分位逗号
func parseWeight(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, nil
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if w < 0 {
		return 0, errors.New("negative weight")
	}
	return w, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
