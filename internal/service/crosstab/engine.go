package crosstab

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dogudogru/survey-report-app-v2/internal/mapping"
	"github.com/dogudogru/survey-report-app-v2/internal/model"
)

// Mode 归一化方式
type Mode int

const (
	// PercentOfRow 每个分组内各结果类别合计 100
	PercentOfRow Mode = iota
	// PercentOfColumn 每个结果类别在各分组间合计 100
	PercentOfColumn
)

func (m Mode) String() string {
	if m == PercentOfColumn {
		return "percent_of_column"
	}
	return "percent_of_row"
}

// AllGroup 无分组维度时的隐含分组
const AllGroup = ""

// Dimension 维度：从哪一列读取、按哪个词表映射
type Dimension struct {
	Column string
	Vocab  *model.Vocabulary
}

// Dim 构造维度
func Dim(column string, v *model.Vocabulary) *Dimension {
	return &Dimension{Column: column, Vocab: v}
}

// Classify 映射一行，false 表示该行在此维度上被排除
func (d *Dimension) Classify(row model.RespondentRow) (string, bool) {
	raw, ok := row.Get(d.Column)
	return mapping.MapCategory(raw, ok, d.Vocab)
}

// Table 加权交叉表
type Table struct {
	Name     string
	Mode     Mode
	Groups   []string
	Outcomes []string

	weights   map[string]map[string]float64
	rowTotals map[string]float64
	colTotals map[string]float64
	total     float64
}

// Aggregate 计算加权交叉表
// 任一维度无法映射的行既不进分子也不进分母；类别顺序始终取词表顺序
func Aggregate(name string, rows []model.RespondentRow, outcome, group *Dimension, mode Mode) *Table {
	t := &Table{
		Name:      name,
		Mode:      mode,
		Outcomes:  outcome.Vocab.Categories,
		Groups:    []string{AllGroup},
		weights:   make(map[string]map[string]float64),
		rowTotals: make(map[string]float64),
		colTotals: make(map[string]float64),
	}
	if group != nil {
		t.Groups = group.Vocab.Categories
	}

	kept := lo.Filter(rows, func(r model.RespondentRow, _ int) bool {
		if _, ok := outcome.Classify(r); !ok {
			return false
		}
		if group != nil {
			if _, ok := group.Classify(r); !ok {
				return false
			}
		}
		return true
	})

	for _, r := range kept {
		o, _ := outcome.Classify(r)
		g := AllGroup
		if group != nil {
			g, _ = group.Classify(r)
		}
		if t.weights[g] == nil {
			t.weights[g] = make(map[string]float64)
		}
		t.weights[g][o] += r.Weight
		t.rowTotals[g] += r.Weight
		t.colTotals[o] += r.Weight
	}
	t.total = lo.SumBy(kept, func(r model.RespondentRow) float64 { return r.Weight })

	log.Debug().
		Str("table", name).
		Str("mode", mode.String()).
		Int("rows", len(rows)).
		Int("kept", len(kept)).
		Float64("weight", t.total).
		Msg("crosstab aggregated")
	return t
}

// Total 参与计算的总权重
func (t *Table) Total() float64 { return t.total }

// Weight 单元格权重
func (t *Table) Weight(group, outcome string) float64 {
	return t.weights[group][outcome]
}

// Denominator 单元格的分母
func (t *Table) Denominator(group, outcome string) float64 {
	if t.Mode == PercentOfColumn {
		return t.colTotals[outcome]
	}
	return t.rowTotals[group]
}

// Percent 单元格百分比，分母为 0 时为 0
func (t *Table) Percent(group, outcome string) model.Percentage {
	denom := t.Denominator(group, outcome)
	if denom == 0 {
		log.Debug().
			Str("table", t.Name).
			Str("group", group).
			Str("outcome", outcome).
			Msg("empty denominator")
		return 0
	}
	return model.Percentage(100 * t.Weight(group, outcome) / denom)
}

// Row 一个分组下全部结果类别，按词表顺序
func (t *Table) Row(group string) *model.Snapshot {
	s := model.NewSnapshot(t.Outcomes...)
	for _, o := range t.Outcomes {
		s.Set(o, model.FromPercentage(t.Percent(group, o)))
	}
	return s
}

// Column 一个结果类别在全部分组上的取值，按词表顺序
func (t *Table) Column(outcome string) *model.Snapshot {
	s := model.NewSnapshot(t.Groups...)
	for _, g := range t.Groups {
		s.Set(g, model.FromPercentage(t.Percent(g, outcome)))
	}
	return s
}

// Share 无分组时的整体占比
func (t *Table) Share() *model.Snapshot {
	return t.Row(AllGroup)
}

// Rollup 负面子集合计：对已归一化的百分比直接求和，不回到权重重算
func (t *Table) Rollup(group string, subset []string) model.Percentage {
	var sum model.Percentage
	for _, o := range subset {
		sum += t.Percent(group, o)
	}
	return sum
}

// RollupByGroup 每个分组的负面子集合计
func (t *Table) RollupByGroup(subset []string) *model.Snapshot {
	s := model.NewSnapshot(t.Groups...)
	for _, g := range t.Groups {
		s.Set(g, model.FromPercentage(t.Rollup(g, subset)))
	}
	return s
}
