package scoring

import (
	"testing"

	"github.com/dogudogru/survey-report-app-v2/internal/model"
)

func rows(answers map[string]float64) []model.RespondentRow {
	out := make([]model.RespondentRow, 0, len(answers))
	line := 2
	for raw, w := range answers {
		out = append(out, model.RespondentRow{Line: line, Weight: w, Values: map[string]string{"q": raw}})
		line++
	}
	return out
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{LowLabel, 1, true},
		{HighLabel, 10, true},
		{"7", 7, true},
		{" 4 ", 4, true},
		{"5.0", 5, true},
		{"11", 0, false},
		{"0", 0, false},
		{"Fikrim yok", 0, false},
		{DontKnow, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseScore(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("ParseScore(%q)=(%d,%v), want (%d,%v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPoliticianScoreWeightedMean(t *testing.T) {
	rs := []model.RespondentRow{
		{Weight: 1, Values: map[string]string{"q": LowLabel}},
		{Weight: 1, Values: map[string]string{"q": "3"}},
		{Weight: 2, Values: map[string]string{"q": HighLabel}},
	}
	got, ok := PoliticianScore(rs, "q").Value()
	// (1*1 + 3*1 + 10*2) / 4 = 6
	if !ok || got != 6 {
		t.Fatalf("score=(%v,%v), want 6", got, ok)
	}
}

func TestPoliticianScoreRoundsToOneDecimal(t *testing.T) {
	rs := []model.RespondentRow{
		{Weight: 1, Values: map[string]string{"q": "2"}},
		{Weight: 1, Values: map[string]string{"q": "3"}},
		{Weight: 1, Values: map[string]string{"q": "3"}},
	}
	got, _ := PoliticianScore(rs, "q").Value()
	if got != 2.7 {
		t.Fatalf("score=%v, want 2.7", got)
	}
}

func TestPoliticianScoreHalfRoundsToEven(t *testing.T) {
	rs := []model.RespondentRow{
		{Weight: 3, Values: map[string]string{"q": "6"}},
		{Weight: 1, Values: map[string]string{"q": "7"}},
	}
	// 6.25 取偶为 6.2
	got, _ := PoliticianScore(rs, "q").Value()
	if got != 6.2 {
		t.Fatalf("score=%v, want 6.2", got)
	}
}

func TestDontKnowDoesNotChangeScore(t *testing.T) {
	base := rows(map[string]float64{"4": 1.5, "8": 0.5, HighLabel: 1})
	want := PoliticianScore(base, "q")

	withUnknown := append([]model.RespondentRow(nil), base...)
	withUnknown = append(withUnknown,
		model.RespondentRow{Weight: 5, Values: map[string]string{"q": DontKnow}},
		model.RespondentRow{Weight: 3, Values: map[string]string{"q": ""}},
	)
	if got := PoliticianScore(withUnknown, "q"); got != want {
		t.Fatalf("score with don't-know=%v, want %v", got, want)
	}
}

func TestNoDeclaredScoresIsNoData(t *testing.T) {
	rs := []model.RespondentRow{
		{Weight: 1, Values: map[string]string{"q": DontKnow}},
	}
	if got := PoliticianScore(rs, "q"); got.Valid() {
		t.Fatalf("score=%v, want no data", got)
	}
	if got := PoliticianScore(nil, "q"); got.Valid() {
		t.Fatalf("empty score=%v, want no data", got)
	}
}

func TestSnapshotKeepsOrderAndMissing(t *testing.T) {
	s := Snapshot([]Entry{
		{Name: "B", Score: model.NewScore(5.5)},
		{Name: "A", Score: model.NoScore},
	})
	if s.Keys[0] != "B" || s.Keys[1] != "A" {
		t.Fatalf("keys=%v, want [B A]", s.Keys)
	}
	if v, _ := s.Get("A"); v.Valid {
		t.Fatalf("A=%v, want missing", v)
	}
}
