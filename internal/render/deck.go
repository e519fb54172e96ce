package render

import (
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dogudogru/survey-report-app-v2/internal/i18n"
	"github.com/dogudogru/survey-report-app-v2/internal/mapping"
	"github.com/dogudogru/survey-report-app-v2/internal/model"
	"github.com/dogudogru/survey-report-app-v2/internal/service/breakdown"
	"github.com/dogudogru/survey-report-app-v2/internal/survey"
)

// 图表固定标题
const (
	voteShareTitle   = "Oy Oranı"
	successRateTitle = "Success Rate"
)

// partySlides 按党趋势图所在页及页内顺序
var partySlides = []struct {
	Slide   int
	Parties []string
}{
	{Slide: 16, Parties: []string{mapping.AKParti, mapping.CHP}},
	{Slide: 17, Parties: []string{mapping.DEMParti, mapping.MHP}},
	{Slide: 18, Parties: []string{mapping.IYIParti, mapping.Kararsiz}},
}

// trendChart 由一张归档表生成的趋势图
type trendChart struct {
	Slot     string
	Series   string
	Columns  []string
	Category i18n.Category
}

func trendCharts() []trendChart {
	var out []trendChart
	for _, p := range mapping.SplitParties {
		suffix := mapping.PartySuffix[p]
		out = append(out,
			trendChart{Slot: "education_" + suffix, Series: breakdown.EducationSeries(p), Columns: mapping.Education.Categories, Category: i18n.ChartEducation},
			trendChart{Slot: "age_" + suffix, Series: breakdown.AgeSeries(p), Columns: mapping.AgeBands.Categories, Category: i18n.ChartAge},
		)
	}
	return append(out,
		trendChart{Slot: "2023_party", Series: breakdown.SeriesPartyVotes2023, Columns: mapping.TrackedParties, Category: i18n.ChartParties},
		trendChart{Slot: "econ_main", Series: breakdown.SeriesEconMain, Columns: mapping.EconCurrentGrouped.Categories, Category: i18n.ChartEconomy},
		trendChart{Slot: "econ_negative_party", Series: breakdown.SeriesEconNegativeParty, Columns: mapping.TrackedParties, Category: i18n.ChartParties},
		trendChart{Slot: "econ_negative_age", Series: breakdown.SeriesEconNegativeAge, Columns: mapping.AgeBands.Categories, Category: i18n.ChartAge},
		trendChart{Slot: "econ_negative_education", Series: breakdown.SeriesEconNegativeEdu, Columns: mapping.Education.Categories, Category: i18n.ChartEducation},
		trendChart{Slot: "econ_future_main", Series: breakdown.SeriesEconFutureMain, Columns: mapping.EconFutureGrouped.Categories, Category: i18n.ChartEconomy},
		trendChart{Slot: "econ_future_party", Series: breakdown.SeriesEconFutureParty, Columns: mapping.TrackedParties, Category: i18n.ChartParties},
		trendChart{Slot: "econ_future_age", Series: breakdown.SeriesEconFutureAge, Columns: mapping.AgeBands.Categories, Category: i18n.ChartAge},
		trendChart{Slot: "politician_success_main", Series: breakdown.SeriesSuccessMain, Columns: survey.MainPoliticians, Category: i18n.ChartPoliticians},
		trendChart{Slot: "politician_success_second", Series: breakdown.SeriesSuccessSecond, Columns: survey.SecondPoliticians, Category: i18n.ChartPoliticians},
		trendChart{Slot: "subsistence", Series: breakdown.SeriesSubsistence, Columns: mapping.SubsistenceArchive.Categories, Category: i18n.ChartSubsistence},
		trendChart{Slot: "subsistence_party", Series: breakdown.SeriesSubsistenceParty, Columns: mapping.TrackedParties, Category: i18n.ChartParties},
	)
}

// DeckOptions 图表渲染参数
type DeckOptions struct {
	Lang   i18n.Lang
	Dict   *i18n.Dictionary
	Window int
}

// BuildDeck 生成全部图表更新
// history 为追加后的归档序列；缺少的归档表对应的趋势图被跳过
func BuildDeck(agg *breakdown.Aggregates, history map[string]*model.Series, opts DeckOptions) []ChartUpdate {
	if opts.Dict == nil {
		opts.Dict = i18n.Default()
	}
	d := deck{opts: opts, history: history}

	var out []ChartUpdate
	out = append(out, d.partyShare(agg.PartyShare))
	out = append(out, d.partyTrends()...)
	for _, tc := range trendCharts() {
		if u, ok := d.trend(tc); ok {
			out = append(out, u)
		}
	}
	out = append(out, d.currentSuccess(agg))
	return out
}

// ApplyDeck 依次写入全部更新
func ApplyDeck(target ChartTarget, updates []ChartUpdate) error {
	for _, u := range updates {
		if err := target.ReplaceChartSeries(u.Slot, u.Data); err != nil {
			return err
		}
	}
	return nil
}

type deck struct {
	opts    DeckOptions
	history map[string]*model.Series
}

func (d deck) tr(cat i18n.Category, label string) string {
	return d.opts.Dict.Translate(d.opts.Lang, cat, label)
}

func (d deck) window(name string) (*model.Series, bool) {
	s, ok := d.history[name]
	if !ok || s == nil {
		log.Warn().Str("series", name).Msg("series unavailable, chart skipped")
		return nil, false
	}
	return s.Tail(d.opts.Window), true
}

// partyShare 降序排列，Diğer 固定在最后；数值按百分数格式写入
func (d deck) partyShare(share *model.Snapshot) ChartUpdate {
	keys := lo.Filter(share.Keys, func(k string, _ int) bool { return k != mapping.Diger })
	sort.SliceStable(keys, func(i, j int) bool {
		return share.Values[keys[i]].Value > share.Values[keys[j]].Value
	})
	if _, ok := share.Get(mapping.Diger); ok {
		keys = append(keys, mapping.Diger)
	}

	values := lo.Map(keys, func(k string, _ int) model.Number {
		v := share.Values[k]
		if !v.Valid {
			return model.Num(0)
		}
		return model.Num(v.Value / 100)
	})
	return ChartUpdate{
		Slot: Slot{Name: "Chart 1", Slide: 15},
		Data: ChartData{
			Kind:         BarChart,
			Categories:   d.opts.Dict.TranslateAll(d.opts.Lang, i18n.ChartParties, keys),
			Series:       []Series{{Name: d.tr(i18n.ChartTitles, voteShareTitle), Values: values}},
			NumberFormat: "0.0%",
		},
	}
}

func (d deck) partyTrends() []ChartUpdate {
	s, ok := d.window(breakdown.SeriesPartyVotes)
	if !ok {
		return nil
	}
	var out []ChartUpdate
	for _, page := range partySlides {
		for i, p := range page.Parties {
			out = append(out, ChartUpdate{
				Slot: Slot{Slide: page.Slide, Index: i},
				Data: ChartData{
					Kind:       LineChart,
					Categories: d.opts.Dict.Periods(d.opts.Lang, s.Periods()),
					Series:     []Series{{Name: d.tr(i18n.ChartParties, p), Values: columnValues(s, p)}},
				},
			})
		}
	}
	return out
}

func (d deck) trend(tc trendChart) (ChartUpdate, bool) {
	s, ok := d.window(tc.Series)
	if !ok {
		return ChartUpdate{}, false
	}
	series := make([]Series, 0, len(tc.Columns))
	for _, c := range tc.Columns {
		series = append(series, Series{Name: d.tr(tc.Category, c), Values: columnValues(s, c)})
	}
	return ChartUpdate{
		Slot: Slot{Name: tc.Slot},
		Data: ChartData{
			Kind:       LineChart,
			Categories: d.opts.Dict.Periods(d.opts.Lang, s.Periods()),
			Series:     series,
		},
	}, true
}

// currentSuccess 当期评分降序，无数据排在最后
func (d deck) currentSuccess(agg *breakdown.Aggregates) ChartUpdate {
	entries := append(agg.CurrentSuccess[:0:0], agg.CurrentSuccess...)
	sort.SliceStable(entries, func(i, j int) bool {
		a, aok := entries[i].Score.Value()
		b, bok := entries[j].Score.Value()
		if aok != bok {
			return aok
		}
		return a > b
	})
	names := make([]string, 0, len(entries))
	values := make([]model.Number, 0, len(entries))
	for _, e := range entries {
		names = append(names, d.tr(i18n.ChartPoliticians, e.Name))
		values = append(values, model.FromScore(e.Score))
	}
	return ChartUpdate{
		Slot: Slot{Name: "politician_success"},
		Data: ChartData{
			Kind:       BarChart,
			Categories: names,
			Series:     []Series{{Name: d.tr(i18n.ChartTitles, successRateTitle), Values: values}},
		},
	}
}

// columnValues 百分比序列缺失写 0，评分序列保留无数据
func columnValues(s *model.Series, column string) []model.Number {
	values, ok := s.Column(column)
	if !ok {
		values = make([]model.Number, s.Len())
	}
	out := make([]model.Number, len(values))
	for i, v := range values {
		out[i] = s.Kind.Normalize(v)
	}
	return out
}
