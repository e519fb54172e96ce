package model

import "strings"

// RespondentRow 一份问卷作答：列名 -> 原始答案，以及权重
type RespondentRow struct {
	Line   int
	Weight float64
	Values map[string]string
}

// Get 读取列值，空白视为缺失
func (r RespondentRow) Get(column string) (string, bool) {
	v, ok := r.Values[column]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// SetDerived 写入派生列
func (r *RespondentRow) SetDerived(column, value string) {
	if r.Values == nil {
		r.Values = make(map[string]string)
	}
	r.Values[column] = value
}

// RespondentTable 整份问卷
type RespondentTable struct {
	Headers []string
	Rows    []RespondentRow
}

// TotalWeight 全部权重之和
func (t *RespondentTable) TotalWeight() float64 {
	var sum float64
	for _, r := range t.Rows {
		sum += r.Weight
	}
	return sum
}
