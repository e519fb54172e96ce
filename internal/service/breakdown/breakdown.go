// Package breakdown 定义每月报告用到的全部交叉表，并在一次运行中只计算一次
package breakdown

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dogudogru/survey-report-app-v2/internal/mapping"
	"github.com/dogudogru/survey-report-app-v2/internal/model"
	"github.com/dogudogru/survey-report-app-v2/internal/service/crosstab"
	"github.com/dogudogru/survey-report-app-v2/internal/service/history"
	"github.com/dogudogru/survey-report-app-v2/internal/service/scoring"
	"github.com/dogudogru/survey-report-app-v2/internal/survey"
)

// Aggregates 一次运行的全部计算结果，两种语言的渲染共用同一份
type Aggregates struct {
	Respondents int
	TotalWeight float64

	// PartyShare 当期得票率（一位小数，词表顺序）
	PartyShare *model.Snapshot
	// Series 追加到归档的当期结果（全精度）
	Series []history.Update
	// CurrentSuccess 当期全部政治人物评分，不进归档
	CurrentSuccess []scoring.Entry
	// Sheets 表格工作簿的各张表
	Sheets []Sheet
}

// Update 按名称查找归档更新
func (a *Aggregates) Update(name string) (history.Update, bool) {
	return lo.Find(a.Series, func(u history.Update) bool { return u.Name == name })
}

// Sheet 按名称查找表格
func (a *Aggregates) Sheet(name string) (Sheet, bool) {
	return lo.Find(a.Sheets, func(s Sheet) bool { return s.Name == name })
}

var requiredRoles = []survey.Role{
	survey.RoleParty,
	survey.RoleParty2023,
	survey.RoleEconCurrent,
	survey.RoleEconFuture,
	survey.RoleSubsistence,
	survey.RoleGender,
	survey.RoleJob,
}

type catalog struct {
	rows   []model.RespondentRow
	schema *survey.Schema
}

func (c *catalog) dim(role survey.Role, v *model.Vocabulary) *crosstab.Dimension {
	return crosstab.Dim(c.schema.Column(role), v)
}

func (c *catalog) aggregate(name string, outcome, group *crosstab.Dimension, mode crosstab.Mode) *crosstab.Table {
	return crosstab.Aggregate(name, c.rows, outcome, group, mode)
}

// Compute 计算全部分解
func Compute(s *survey.Survey) (*Aggregates, error) {
	for _, role := range requiredRoles {
		if !s.Schema.Has(role) {
			return nil, errors.Errorf("schema has no column for role %s", role)
		}
	}

	start := time.Now()
	c := &catalog{rows: s.Table.Rows, schema: s.Schema}
	agg := &Aggregates{
		Respondents: len(s.Table.Rows),
		TotalWeight: s.Table.TotalWeight(),
	}

	share := c.aggregate("party_share", c.dim(survey.RoleParty, mapping.PartySnapshot), nil, crosstab.PercentOfRow)
	agg.PartyShare = crosstab.RoundSnapshot(share.Share())

	agg.Series = c.archiveSeries()
	agg.CurrentSuccess = scoring.Scores(c.rows, survey.Politicians, c.politicianColumn)
	agg.Sheets = c.sheets()

	log.Info().
		Int("respondents", agg.Respondents).
		Float64("weight", agg.TotalWeight).
		Int("series", len(agg.Series)).
		Int("sheets", len(agg.Sheets)).
		Dur("elapsed", time.Since(start)).
		Msg("aggregates computed")
	return agg, nil
}

func (c *catalog) politicianColumn(name string) string {
	return c.schema.Column(survey.PoliticianRole(name))
}
