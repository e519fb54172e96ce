package history

import (
	"fmt"

	"github.com/dogudogru/survey-report-app-v2/internal/model"
)

// ColumnMismatchError 快照与序列的类别集合不一致
// Absent 为 true 表示序列有该列而快照没有
type ColumnMismatchError struct {
	Series string
	Column string
	Absent bool
}

func (e *ColumnMismatchError) Error() string {
	if e.Absent {
		return fmt.Sprintf("snapshot for series %s lacks column %q", e.Series, e.Column)
	}
	return fmt.Sprintf("series %s has no column %q", e.Series, e.Column)
}

// AppendPeriod 追加一期
// 空序列按快照的类别顺序建列；已有序列的列固定不变，两边类别必须一致
// 非有限值按序列类型归一
// 返回新序列，原序列不被修改
func AppendPeriod(series *model.Series, period string, snap *model.Snapshot) (*model.Series, error) {
	out := series.Clone()
	if out.Empty() {
		out.Columns = append([]string{model.MonthsColumn}, snap.Keys...)
	}

	cats := out.Categories()
	known := make(map[string]bool, len(cats))
	for _, c := range cats {
		known[c] = true
	}
	for _, k := range snap.Keys {
		if !known[k] {
			return nil, &ColumnMismatchError{Series: series.Name, Column: k}
		}
	}

	row := model.SeriesRow{Period: period, Values: make([]model.Number, len(cats))}
	for i, c := range cats {
		v, ok := snap.Get(c)
		if !ok {
			return nil, &ColumnMismatchError{Series: series.Name, Column: c, Absent: true}
		}
		row.Values[i] = out.Kind.Normalize(v)
	}
	out.Rows = append(out.Rows, row)
	return out, nil
}
