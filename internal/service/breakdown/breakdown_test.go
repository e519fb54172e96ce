package breakdown

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dogudogru/survey-report-app-v2/internal/mapping"
	"github.com/dogudogru/survey-report-app-v2/internal/model"
	"github.com/dogudogru/survey-report-app-v2/internal/survey/surveytest"
)

func compute(t *testing.T) *Aggregates {
	t.Helper()
	s, err := surveytest.Survey(surveytest.Sample())
	require.NoError(t, err)
	agg, err := Compute(s)
	require.NoError(t, err)
	return agg
}

func value(t *testing.T, s *model.Snapshot, key string) model.Number {
	t.Helper()
	v, ok := s.Get(key)
	require.Truef(t, ok, "missing key %q in %v", key, s.Keys)
	return v
}

func TestPartyShareUsesSnapshotVocabulary(t *testing.T) {
	agg := compute(t)
	require.Equal(t, mapping.PartySnapshot.Categories, agg.PartyShare.Keys)
	require.Equal(t, 50.0, value(t, agg.PartyShare, mapping.CHP).Value)
	require.Equal(t, 50.0, value(t, agg.PartyShare, mapping.AKParti).Value)
	require.Equal(t, 0.0, value(t, agg.PartyShare, mapping.Diger).Value)
	require.Equal(t, 4.0, agg.TotalWeight)
}

func TestArchiveSeriesCatalog(t *testing.T) {
	agg := compute(t)
	require.Len(t, agg.Series, 27)

	for _, p := range mapping.SplitParties {
		_, ok := agg.Update(EducationSeries(p))
		require.Truef(t, ok, "missing education series for %s", p)
		_, ok = agg.Update(AgeSeries(p))
		require.Truef(t, ok, "missing age series for %s", p)
	}

	votes, ok := agg.Update(SeriesPartyVotes)
	require.True(t, ok)
	require.Equal(t, mapping.PartyArchive.Categories, votes.Snapshot.Keys)
}

func TestRetentionAndNegativeSeries(t *testing.T) {
	agg := compute(t)

	retention, _ := agg.Update(SeriesPartyVotes2023)
	require.InDelta(t, 200.0/3, value(t, retention.Snapshot, mapping.AKParti).Value, 1e-9)
	require.Equal(t, 100.0, value(t, retention.Snapshot, mapping.CHP).Value)
	require.Equal(t, 0.0, value(t, retention.Snapshot, mapping.MHP).Value)

	negative, _ := agg.Update(SeriesEconNegativeParty)
	require.InDelta(t, 100.0/3, value(t, negative.Snapshot, mapping.AKParti).Value, 1e-9)
	require.Equal(t, 100.0, value(t, negative.Snapshot, mapping.CHP).Value)

	strained, _ := agg.Update(SeriesSubsistenceParty)
	require.Equal(t, 100.0, value(t, strained.Snapshot, mapping.CHP).Value)
	require.InDelta(t, 100.0/3, value(t, strained.Snapshot, mapping.AKParti).Value, 1e-9)

	edu, _ := agg.Update(EducationSeries(mapping.CHP))
	require.Equal(t, mapping.Education.Categories, edu.Snapshot.Keys)
	require.Equal(t, 100.0, value(t, edu.Snapshot, mapping.EduUniversity).Value)
	require.Equal(t, 0.0, value(t, edu.Snapshot, mapping.EduPrimary).Value)
}

func TestPoliticianSeriesAreScores(t *testing.T) {
	agg := compute(t)

	main, _ := agg.Update(SeriesSuccessMain)
	require.Equal(t, model.KindScore, main.Kind)
	require.Equal(t, 6.0, value(t, main.Snapshot, "Recep Tayyip Erdoğan").Value)
	require.Equal(t, 4.8, value(t, main.Snapshot, "Özgür Özel").Value)
	require.False(t, value(t, main.Snapshot, "Devlet Bahçeli").Valid)

	require.Len(t, agg.CurrentSuccess, 13)
}

func TestSheetLayouts(t *testing.T) {
	agg := compute(t)
	require.Len(t, agg.Sheets, 12)

	transition, ok := agg.Sheet(SheetParty2023)
	require.True(t, ok)
	require.Equal(t, 3, transition.FirstRow)
	require.Equal(t, 13, transition.LastRow())
	require.True(t, transition.TotalRow)
	tbl := transition.Blocks[0].Table
	require.Equal(t, []string{mapping.AKParti, mapping.CHP, mapping.MHP, mapping.IYIParti, mapping.YesilSolParti}, tbl.Outcomes)
	var sum float64
	for _, g := range tbl.Groups {
		sum += float64(tbl.Percent(g, mapping.AKParti))
	}
	require.InDelta(t, 100, sum, 1e-9)

	party, _ := agg.Sheet(SheetEconCurrentParty)
	require.Equal(t, ShiftTrend, party.Trend)
	require.Equal(t, 6, party.LastRow())

	jobs, _ := agg.Sheet(SheetEconCurrentJobs)
	require.Equal(t, SingleTrend, jobs.Trend)
	require.Equal(t, 9, jobs.LastRow())

	demo, _ := agg.Sheet(SheetSubsistenceDemo)
	require.Len(t, demo.Blocks, 2)
	require.Equal(t, 4, demo.Blocks[1].Col)
	men := demo.Blocks[0].Table.Percent("Ucu ucuna karşıladı", "Erkek")
	require.False(t, math.IsNaN(float64(men)))
	require.InDelta(t, 100.0/3, float64(men), 1e-9)
}
