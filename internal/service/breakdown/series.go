package breakdown

import (
	"github.com/dogudogru/survey-report-app-v2/internal/mapping"
	"github.com/dogudogru/survey-report-app-v2/internal/model"
	"github.com/dogudogru/survey-report-app-v2/internal/service/crosstab"
	"github.com/dogudogru/survey-report-app-v2/internal/service/history"
	"github.com/dogudogru/survey-report-app-v2/internal/service/scoring"
	"github.com/dogudogru/survey-report-app-v2/internal/survey"
)

// 归档表名
const (
	SeriesPartyVotes        = "party_votes"
	SeriesPartyVotes2023    = "party_votes_2023"
	SeriesEconMain          = "econ_main"
	SeriesEconNegativeParty = "econ_negative_party"
	SeriesEconNegativeAge   = "econ_negative_age"
	SeriesEconNegativeEdu   = "econ_negative_education"
	SeriesEconFutureMain    = "econ_future_main"
	SeriesEconFutureParty   = "econ_future_party"
	SeriesEconFutureAge     = "econ_future_age"
	SeriesSuccessMain       = "politician_success_main"
	SeriesSuccessSecond     = "politician_success_second"
	SeriesSubsistence       = "subsistence"
	SeriesSubsistenceParty  = "subsistence_party"
)

// EducationSeries 按党拆分的学历归档表名
func EducationSeries(party string) string {
	return "party_votes_education_" + mapping.PartySuffix[party]
}

// AgeSeries 按党拆分的年龄归档表名
func AgeSeries(party string) string {
	return "party_votes_age_" + mapping.PartySuffix[party]
}

func pct(name string, s *model.Snapshot) history.Update {
	return history.Update{Name: name, Kind: model.KindPercentage, Snapshot: s}
}

func (c *catalog) archiveSeries() []history.Update {
	party := c.dim(survey.RoleParty, mapping.PartyArchive)
	party2023 := c.dim(survey.RoleParty2023, mapping.Party2023Archive)
	education := crosstab.Dim(survey.DerivedEducation, mapping.Education)
	ageBand := crosstab.Dim(survey.DerivedAgeBand, mapping.AgeBands)
	econ := c.dim(survey.RoleEconCurrent, mapping.EconCurrentGrouped)
	future := c.dim(survey.RoleEconFuture, mapping.EconFutureGrouped)
	subs := c.dim(survey.RoleSubsistence, mapping.SubsistenceArchive)

	var out []history.Update

	votes := c.aggregate(SeriesPartyVotes, party, nil, crosstab.PercentOfRow)
	out = append(out, pct(SeriesPartyVotes, votes.Share()))

	// 每个学历/年龄段内各党的得票率，按党拆表
	byEdu := c.aggregate("party_votes_education", party, education, crosstab.PercentOfRow)
	for _, p := range mapping.SplitParties {
		out = append(out, pct(EducationSeries(p), byEdu.Column(p)))
	}
	byAge := c.aggregate("party_votes_age", party, ageBand, crosstab.PercentOfRow)
	for _, p := range mapping.SplitParties {
		out = append(out, pct(AgeSeries(p), byAge.Column(p)))
	}

	// 留存率：2023 年投给 X 的人中当前仍投 X 的比例
	retention := c.aggregate(SeriesPartyVotes2023, party, party2023, crosstab.PercentOfRow)
	kept := model.NewSnapshot(mapping.TrackedParties...)
	for _, p := range mapping.TrackedParties {
		kept.Set(p, model.FromPercentage(retention.Percent(p, p)))
	}
	out = append(out, pct(SeriesPartyVotes2023, kept))

	out = append(out,
		pct(SeriesEconMain, c.aggregate(SeriesEconMain, econ, nil, crosstab.PercentOfRow).Share()),
		pct(SeriesEconNegativeParty, c.aggregate(SeriesEconNegativeParty, econ, party2023, crosstab.PercentOfRow).Column(mapping.EconBad)),
		pct(SeriesEconNegativeAge, c.aggregate(SeriesEconNegativeAge, econ, ageBand, crosstab.PercentOfRow).Column(mapping.EconBad)),
		pct(SeriesEconNegativeEdu, c.aggregate(SeriesEconNegativeEdu, econ, education, crosstab.PercentOfRow).Column(mapping.EconBad)),
		pct(SeriesEconFutureMain, c.aggregate(SeriesEconFutureMain, future, nil, crosstab.PercentOfRow).Share()),
		pct(SeriesEconFutureParty, c.aggregate(SeriesEconFutureParty, future, party2023, crosstab.PercentOfRow).Column(mapping.FutureWorse)),
		pct(SeriesEconFutureAge, c.aggregate(SeriesEconFutureAge, future, ageBand, crosstab.PercentOfRow).Column(mapping.FutureWorse)),
	)

	out = append(out,
		history.Update{Name: SeriesSuccessMain, Kind: model.KindScore,
			Snapshot: scoring.Snapshot(scoring.Scores(c.rows, survey.MainPoliticians, c.politicianColumn))},
		history.Update{Name: SeriesSuccessSecond, Kind: model.KindScore,
			Snapshot: scoring.Snapshot(scoring.Scores(c.rows, survey.SecondPoliticians, c.politicianColumn))},
	)

	out = append(out,
		pct(SeriesSubsistence, c.aggregate(SeriesSubsistence, subs, nil, crosstab.PercentOfRow).Share()),
		pct(SeriesSubsistenceParty, c.aggregate(SeriesSubsistenceParty, subs, party2023, crosstab.PercentOfRow).RollupByGroup(mapping.SubsistenceStrained)),
	)
	return out
}
