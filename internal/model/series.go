package model

// MonthsColumn 历史序列首列
const MonthsColumn = "Months"

// Snapshot 当期结果：有序类别 -> 单元格
type Snapshot struct {
	Keys   []string
	Values map[string]Number
}

// NewSnapshot 按给定类别顺序创建空快照
func NewSnapshot(keys ...string) *Snapshot {
	s := &Snapshot{Values: make(map[string]Number, len(keys))}
	for _, k := range keys {
		s.Set(k, Missing)
	}
	return s
}

// Set 写入类别值，新类别追加到末尾
func (s *Snapshot) Set(key string, v Number) {
	if _, ok := s.Values[key]; !ok {
		s.Keys = append(s.Keys, key)
	}
	s.Values[key] = v
}

// Get 读取类别值
func (s *Snapshot) Get(key string) (Number, bool) {
	v, ok := s.Values[key]
	return v, ok
}

// Series 历史序列（一张归档表）
type Series struct {
	Name    string
	Kind    SeriesKind
	Columns []string
	Rows    []SeriesRow
}

// SeriesRow 一期数据
type SeriesRow struct {
	Period string
	Values []Number
}

// Empty 尚未建立列
func (s *Series) Empty() bool { return len(s.Columns) == 0 }

// Len 行数
func (s *Series) Len() int { return len(s.Rows) }

// Categories 除 Months 之外的列
func (s *Series) Categories() []string {
	if len(s.Columns) <= 1 {
		return nil
	}
	return s.Columns[1:]
}

// Periods 所有期次标签
func (s *Series) Periods() []string {
	out := make([]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		out = append(out, r.Period)
	}
	return out
}

// Column 按类别取整列
func (s *Series) Column(name string) ([]Number, bool) {
	idx := -1
	for i, c := range s.Categories() {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]Number, 0, len(s.Rows))
	for _, r := range s.Rows {
		if idx < len(r.Values) {
			out = append(out, r.Values[idx])
		} else {
			out = append(out, Missing)
		}
	}
	return out, true
}

// Tail 最近 n 期
func (s *Series) Tail(n int) *Series {
	out := s.Clone()
	if n >= 0 && len(out.Rows) > n {
		out.Rows = out.Rows[len(out.Rows)-n:]
	}
	return out
}

// Clone 深拷贝
func (s *Series) Clone() *Series {
	out := &Series{
		Name:    s.Name,
		Kind:    s.Kind,
		Columns: append([]string(nil), s.Columns...),
		Rows:    make([]SeriesRow, len(s.Rows)),
	}
	for i, r := range s.Rows {
		out.Rows[i] = SeriesRow{Period: r.Period, Values: append([]Number(nil), r.Values...)}
	}
	return out
}
