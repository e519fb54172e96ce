package crosstab

import (
	"math"
	"testing"

	"github.com/dogudogru/survey-report-app-v2/internal/mapping"
	"github.com/dogudogru/survey-report-app-v2/internal/model"
	"github.com/dogudogru/survey-report-app-v2/internal/survey"
	"github.com/dogudogru/survey-report-app-v2/internal/survey/surveytest"
)

func loadSample(t *testing.T, answers []surveytest.Answer) *survey.Survey {
	t.Helper()
	s, err := surveytest.Survey(answers)
	if err != nil {
		t.Fatalf("build survey: %v", err)
	}
	return s
}

func pct(t *testing.T, s *model.Snapshot, key string) float64 {
	t.Helper()
	v, ok := s.Get(key)
	if !ok || !v.Valid {
		t.Fatalf("missing %q in snapshot", key)
	}
	return v.Value
}

func TestShareWithCatchAll(t *testing.T) {
	s := loadSample(t, surveytest.Sample())
	table := Aggregate("party_votes", s.Table.Rows,
		Dim(s.Schema.Column(survey.RoleParty), mapping.PartyArchive), nil, PercentOfRow)

	share := table.Share()
	if got := pct(t, share, mapping.AKParti); got != 50 {
		t.Fatalf("AK Parti=%v, want 50", got)
	}
	if got := pct(t, share, mapping.CHP); got != 50 {
		t.Fatalf("CHP=%v, want 50", got)
	}
	if got := pct(t, share, mapping.Diger); got != 0 {
		t.Fatalf("Diğer=%v, want 0", got)
	}
	if len(share.Keys) != len(mapping.PartyArchive.Categories) {
		t.Fatalf("keys=%v, want full vocabulary", share.Keys)
	}
}

func TestRowModeSumsToHundred(t *testing.T) {
	s := loadSample(t, surveytest.Sample())
	table := Aggregate("econ_current_age", s.Table.Rows,
		Dim(s.Schema.Column(survey.RoleEconCurrent), mapping.EconCurrentDetailed),
		Dim(survey.DerivedAgeBand, mapping.AgeBands),
		PercentOfRow)

	for _, g := range table.Groups {
		var sum float64
		for _, o := range table.Outcomes {
			sum += float64(table.Percent(g, o))
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Fatalf("group %s sums to %v, want 100", g, sum)
		}
	}
}

func TestColumnModeSumsToHundred(t *testing.T) {
	s := loadSample(t, surveytest.Sample())
	table := Aggregate("party_2023", s.Table.Rows,
		Dim(s.Schema.Column(survey.RoleParty), mapping.PartyTransition),
		Dim(s.Schema.Column(survey.RoleParty2023), mapping.Party2023Table),
		PercentOfColumn)

	// 行是 2023 政党，列是当前意向；每个当前意向在各行上合计 100
	for _, o := range table.Outcomes {
		if table.Denominator(mapping.AKParti, o) == 0 {
			continue
		}
		col := table.Column(o)
		var sum float64
		for _, g := range col.Keys {
			sum += col.Values[g].Value
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Fatalf("outcome %s sums to %v, want 100", o, sum)
		}
	}
}

func TestRetentionFromRowMode(t *testing.T) {
	s := loadSample(t, surveytest.Sample())
	table := Aggregate("party_votes_2023", s.Table.Rows,
		Dim(s.Schema.Column(survey.RoleParty), mapping.PartyArchive),
		Dim(s.Schema.Column(survey.RoleParty2023), mapping.Party2023Archive),
		PercentOfRow)

	// 2023 年 AKP 选民权重 3，其中当前投 AKP 的权重 2
	got := float64(table.Percent(mapping.AKParti, mapping.AKParti))
	if math.Abs(got-200.0/3) > 1e-9 {
		t.Fatalf("retention=%v, want 66.67", got)
	}
	if got := table.Percent(mapping.CHP, mapping.CHP); got != 100 {
		t.Fatalf("CHP retention=%v, want 100", got)
	}
}

func TestUnmappedRowsAreDropped(t *testing.T) {
	answers := surveytest.Sample()
	answers[0].Party2023 = "Zafer Partisi"
	s := loadSample(t, answers)

	table := Aggregate("subsistence_party", s.Table.Rows,
		Dim(s.Schema.Column(survey.RoleSubsistence), mapping.SubsistenceArchive),
		Dim(s.Schema.Column(survey.RoleParty2023), mapping.Party2023Archive),
		PercentOfRow)
	if got := table.Total(); got != 3 {
		t.Fatalf("total=%v, want 3", got)
	}
	if got := table.Percent(mapping.CHP, mapping.SubsNotMet); got != 0 {
		t.Fatalf("empty group=%v, want 0", got)
	}
}

func TestEmptyDenominatorIsZero(t *testing.T) {
	table := Aggregate("empty", nil,
		Dim("party", mapping.PartyArchive), Dim("edu", mapping.Education), PercentOfColumn)
	for _, g := range table.Groups {
		for _, o := range table.Outcomes {
			if got := table.Percent(g, o); got != 0 {
				t.Fatalf("Percent(%s,%s)=%v, want 0", g, o, got)
			}
		}
	}
}

func TestRollupMatchesGroupedCategory(t *testing.T) {
	answers := surveytest.Sample()
	answers = append(answers,
		surveytest.Answer{Weight: 0.7, Party: "CHP", Party2023: "Cumhuriyet Halk Partisi (CHP)",
			Education: "Lise ve dengi meslek okulu mezunu", Age: "30", AgeGroup: "25-34", Gender: "Kadın",
			EconCurrent: "Ne iyi ne kötü", EconFuture: "Değişmez"},
		surveytest.Answer{Weight: 1.3, Party: "MHP", Party2023: "Milliyetçi Hareket Partisi (MHP)",
			Education: "İlkokul mezunu", Age: "50", AgeGroup: "45-54", Gender: "Erkek",
			EconCurrent: "Çok kötü", EconFuture: "Çok daha kötü"},
	)
	s := loadSample(t, answers)
	econ := s.Schema.Column(survey.RoleEconCurrent)
	edu := Dim(survey.DerivedEducation, mapping.Education)

	grouped := Aggregate("econ_grouped", s.Table.Rows, Dim(econ, mapping.EconCurrentGrouped), edu, PercentOfRow)
	detailed := Aggregate("econ_detailed", s.Table.Rows, Dim(econ, mapping.EconCurrentDetailed), edu, PercentOfRow)

	for _, g := range grouped.Groups {
		combined := RoundChart(grouped.Percent(g, mapping.EconBad))
		var summed model.Percentage
		for _, o := range mapping.EconCurrentNegative {
			summed += RoundChart(detailed.Percent(g, o))
		}
		if math.Abs(float64(combined-summed)) > 0.2 {
			t.Fatalf("group %s combined=%v summed=%v", g, combined, summed)
		}
		if math.Abs(float64(grouped.Percent(g, mapping.EconBad)-detailed.Rollup(g, mapping.EconCurrentNegative))) > 1e-9 {
			t.Fatalf("group %s rollup differs from grouped category", g)
		}
	}
}

func TestRoundCell(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{in: 42.4, want: 42},
		{in: 42.6, want: 43},
		{in: 100.4, want: 100},
		{in: 120, want: 100},
		{in: -3, want: 0},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: 0},
	}
	for _, tt := range tests {
		if got := RoundCell(tt.in); got != tt.want {
			t.Fatalf("RoundCell(%v)=%d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRoundChart(t *testing.T) {
	if got := RoundChart(33.333); got != 33.3 {
		t.Fatalf("RoundChart=%v, want 33.3", got)
	}
	if got := RoundChart(model.Percentage(math.NaN())); got != 0 {
		t.Fatalf("RoundChart(NaN)=%v, want 0", got)
	}
}
