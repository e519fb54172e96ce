package render

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dogudogru/survey-report-app-v2/internal/i18n"
	"github.com/dogudogru/survey-report-app-v2/internal/mapping"
	"github.com/dogudogru/survey-report-app-v2/internal/model"
	"github.com/dogudogru/survey-report-app-v2/internal/service/breakdown"
	"github.com/dogudogru/survey-report-app-v2/internal/service/history"
	"github.com/dogudogru/survey-report-app-v2/internal/survey/surveytest"
)

func aggregates(t *testing.T) *breakdown.Aggregates {
	t.Helper()
	s, err := surveytest.Survey(surveytest.Sample())
	require.NoError(t, err)
	agg, err := breakdown.Compute(s)
	require.NoError(t, err)
	return agg
}

func appended(t *testing.T, agg *breakdown.Aggregates, periods ...string) map[string]*model.Series {
	t.Helper()
	out := make(map[string]*model.Series, len(agg.Series))
	for _, u := range agg.Series {
		s := &model.Series{Name: u.Name, Kind: u.Kind}
		for _, p := range periods {
			next, err := history.AppendPeriod(s, p, u.Snapshot)
			require.NoError(t, err)
			s = next
		}
		out[u.Name] = s
	}
	return out
}

func find(t *testing.T, updates []ChartUpdate, id string) ChartData {
	t.Helper()
	for _, u := range updates {
		if u.Slot.ID() == id {
			return u.Data
		}
	}
	t.Fatalf("slot %s not rendered", id)
	return ChartData{}
}

func TestPartyShareSortedWithOtherLast(t *testing.T) {
	agg := aggregates(t)
	updates := BuildDeck(agg, appended(t, agg, "Oca.24"), DeckOptions{Lang: i18n.TR, Window: 24})

	data := find(t, updates, "s15_Chart 1")
	require.Equal(t, "0.0%", data.NumberFormat)
	require.Equal(t, mapping.Diger, data.Categories[len(data.Categories)-1])
	require.ElementsMatch(t, []string{mapping.CHP, mapping.AKParti}, data.Categories[:2])
	require.Equal(t, "Oy Oranı", data.Series[0].Name)
	require.Equal(t, 0.5, data.Series[0].Values[0].Value)
}

func TestDeckLanguagesShareNumbers(t *testing.T) {
	agg := aggregates(t)
	hist := appended(t, agg, "Ara.23", "Oca.24")
	tr := BuildDeck(agg, hist, DeckOptions{Lang: i18n.TR, Window: 24})
	en := BuildDeck(agg, hist, DeckOptions{Lang: i18n.EN, Window: 24})

	require.Equal(t, len(tr), len(en))
	for i := range tr {
		require.Equal(t, tr[i].Slot, en[i].Slot)
		require.Len(t, en[i].Data.Series, len(tr[i].Data.Series))
		for j := range tr[i].Data.Series {
			if diff := cmp.Diff(tr[i].Data.Series[j].Values, en[i].Data.Series[j].Values); diff != "" {
				t.Fatalf("slot %s series %d differs (-tr +en):\n%s", tr[i].Slot.ID(), j, diff)
			}
		}
	}

	share := find(t, en, "s15_Chart 1")
	require.Equal(t, "Vote Share", share.Series[0].Name)
	require.Equal(t, "Other", share.Categories[len(share.Categories)-1])

	econ := find(t, en, "econ_main")
	require.Equal(t, []string{"Dec.23", "Jan.24"}, econ.Categories)
	require.Equal(t, "Very bad / Bad", econ.Series[0].Name)
}

func TestPartyTrendSlots(t *testing.T) {
	agg := aggregates(t)
	updates := BuildDeck(agg, appended(t, agg, "Oca.24"), DeckOptions{Lang: i18n.TR, Window: 24})

	first := find(t, updates, "s16_1")
	require.Equal(t, mapping.AKParti, first.Series[0].Name)
	second := find(t, updates, "s16_2")
	require.Equal(t, mapping.CHP, second.Series[0].Name)
	undecided := find(t, updates, "s18_2")
	require.Equal(t, mapping.Kararsiz, undecided.Series[0].Name)
	require.Equal(t, model.Num(0), undecided.Series[0].Values[0])
}

func TestScoreChartsKeepNoData(t *testing.T) {
	agg := aggregates(t)
	updates := BuildDeck(agg, appended(t, agg, "Oca.24"), DeckOptions{Lang: i18n.EN, Window: 24})

	main := find(t, updates, "politician_success_main")
	var bahceli Series
	for _, s := range main.Series {
		if s.Name == "Devlet Bahçeli" {
			bahceli = s
		}
	}
	require.Len(t, bahceli.Values, 1)
	require.False(t, bahceli.Values[0].Valid)

	current := find(t, updates, "politician_success")
	require.Equal(t, "Success Rate", current.Series[0].Name)
	require.Equal(t, "Recep Tayyip Erdoğan", current.Categories[0])
	require.False(t, current.Series[0].Values[len(current.Categories)-1].Valid)
}

func TestWindowAndMissingSeries(t *testing.T) {
	agg := aggregates(t)
	periods := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		periods = append(periods, "Oca.24")
	}
	hist := appended(t, agg, periods...)
	delete(hist, breakdown.SeriesEconMain)

	updates := BuildDeck(agg, hist, DeckOptions{Lang: i18n.TR, Window: 24})
	for _, u := range updates {
		require.NotEqual(t, "econ_main", u.Slot.ID())
	}
	sub := find(t, updates, "subsistence")
	require.Len(t, sub.Categories, 24)
}

func tableWorkbook(t *testing.T, agg *breakdown.Aggregates) *CellWorkbook {
	t.Helper()
	wb, err := NewTableSkeleton(agg.Sheets)
	require.NoError(t, err)
	return NewCellWorkbook(wb)
}

func cell(t *testing.T, c *CellWorkbook, sheet, ref string) string {
	t.Helper()
	v, err := c.GetCell(sheet, ref)
	require.NoError(t, err)
	return v
}

func TestRenderTablesTurkish(t *testing.T) {
	agg := aggregates(t)
	c := tableWorkbook(t, agg)
	sheet := breakdown.SheetEconCurrentParty
	require.NoError(t, c.SetCell(sheet, "H1", "Nis.23"))
	require.NoError(t, c.SetCell(sheet, "H2", 40))
	jobs := breakdown.SheetEconCurrentJobs
	require.NoError(t, c.SetCell(jobs, "I1", "Şub.23"))
	require.NoError(t, c.SetCell(jobs, "I2", 12))

	require.NoError(t, RenderTables(c, agg, TableOptions{Lang: i18n.TR, Period: "Oca.24"}))

	require.Equal(t, "67", cell(t, c, breakdown.SheetParty2023, "B3"))
	require.Equal(t, "33", cell(t, c, breakdown.SheetParty2023, "B4"))
	require.Equal(t, "100", cell(t, c, breakdown.SheetParty2023, "C4"))
	require.Equal(t, "100", cell(t, c, breakdown.SheetParty2023, "F14"))

	require.Equal(t, "Nis.23", cell(t, c, sheet, "G1"))
	require.Equal(t, "40", cell(t, c, sheet, "G2"))
	require.Equal(t, "Oca.24", cell(t, c, sheet, "L1"))
	require.Equal(t, "33", cell(t, c, sheet, "L2"))
	require.Equal(t, "100", cell(t, c, sheet, "L3"))

	require.Equal(t, "Oca.24", cell(t, c, jobs, "G1"))
	require.Equal(t, "0", cell(t, c, jobs, "G2"))
	require.Equal(t, "Şub.23", cell(t, c, jobs, "H1"))
	require.Equal(t, "12", cell(t, c, jobs, "H2"))
	require.Equal(t, "", cell(t, c, jobs, "L1"))
}

func TestPartyTransitionColumnsFollowTemplate(t *testing.T) {
	answers := append(surveytest.Sample(), surveytest.Answer{
		Weight:    1,
		Party:     "Milliyetçi Hareket Partisi (MHP)",
		Party2023: "Milliyetçi Hareket Partisi (MHP)",
	})
	s, err := surveytest.Survey(answers)
	require.NoError(t, err)
	agg, err := breakdown.Compute(s)
	require.NoError(t, err)

	c := tableWorkbook(t, agg)
	require.NoError(t, RenderTables(c, agg, TableOptions{Lang: i18n.TR, Period: "Oca.24"}))

	// B..F = AK Parti, CHP, MHP, İYİ Parti, Yeşil Sol Parti
	require.Equal(t, mapping.MHP, cell(t, c, breakdown.SheetParty2023, "D2"))
	require.Equal(t, mapping.YesilSolParti, cell(t, c, breakdown.SheetParty2023, "F2"))
	require.Equal(t, mapping.MHP, cell(t, c, breakdown.SheetParty2023, "A5"))
	require.Equal(t, "100", cell(t, c, breakdown.SheetParty2023, "D5"))
	require.Equal(t, "0", cell(t, c, breakdown.SheetParty2023, "E5"))
	require.Equal(t, "0", cell(t, c, breakdown.SheetParty2023, "F5"))
}

func TestRenderTablesEnglishTranslatesTextOnly(t *testing.T) {
	agg := aggregates(t)
	trBook := tableWorkbook(t, agg)
	enBook := tableWorkbook(t, agg)
	for _, c := range []*CellWorkbook{trBook, enBook} {
		require.NoError(t, c.SetCell(breakdown.SheetEconCurrentAge, "H1", "Nis.23"))
	}

	require.NoError(t, RenderTables(trBook, agg, TableOptions{Lang: i18n.TR, Period: "Oca.24"}))
	require.NoError(t, RenderTables(enBook, agg, TableOptions{Lang: i18n.EN, Period: "Oca.24"}))

	require.Equal(t, "AK Party", cell(t, enBook, breakdown.SheetParty2023, "A3"))
	require.Equal(t, "Total", cell(t, enBook, breakdown.SheetParty2023, "A14"))
	require.Equal(t, "Very Bad", cell(t, enBook, breakdown.SheetEconCurrentParty, "B1"))
	require.Equal(t, "Jan.24", cell(t, enBook, breakdown.SheetEconCurrentParty, "L1"))
	require.Equal(t, "Apr.23", cell(t, enBook, breakdown.SheetEconCurrentAge, "G1"))

	for _, sheet := range trBook.Sheets() {
		trRows, err := trBook.Rows(sheet)
		require.NoError(t, err)
		enRows, err := enBook.Rows(sheet)
		require.NoError(t, err)
		for r := range trRows {
			for col, v := range trRows[r] {
				if isNumber(v) {
					require.Equalf(t, v, enRows[r][col], "%s r%d c%d", sheet, r+1, col+1)
				}
			}
		}
	}
}

func TestRenderTablesMissingSheet(t *testing.T) {
	agg := aggregates(t)
	c := NewCellWorkbook(excelize.NewFile())
	err := RenderTables(c, agg, TableOptions{Lang: i18n.TR, Period: "Oca.24"})
	var missing *MissingSheetError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, breakdown.SheetParty2023, missing.Sheet)
}

func TestChartWorkbookReplacesSlot(t *testing.T) {
	c, err := NewChartWorkbook()
	require.NoError(t, err)
	slot := Slot{Name: "econ_main"}
	data := ChartData{
		Kind:       LineChart,
		Categories: []string{"Ara.23", "Oca.24"},
		Series:     []Series{{Name: "A", Values: []model.Number{model.Num(10), model.Missing}}},
	}
	require.NoError(t, c.ReplaceChartSeries(slot, data))

	data.Series[0].Values = []model.Number{model.Num(11), model.Num(12)}
	require.NoError(t, c.ReplaceChartSeries(slot, data))
	require.Len(t, c.Slots(), 1)

	wb := c.File()
	v, err := wb.GetCellValue("econ_main", "B3")
	require.NoError(t, err)
	require.Equal(t, "12", v)
	v, err = wb.GetCellValue("econ_main", "A2")
	require.NoError(t, err)
	require.Equal(t, "Ara.23", v)
	v, err = wb.GetCellValue(chartIndexSheet, "A2")
	require.NoError(t, err)
	require.Equal(t, "econ_main", v)
}

func TestChartWorkbookLeavesMissingEmpty(t *testing.T) {
	c, err := NewChartWorkbook()
	require.NoError(t, err)
	require.NoError(t, c.ReplaceChartSeries(Slot{Name: "politician_success_main"}, ChartData{
		Categories: []string{"Oca.24"},
		Series:     []Series{{Name: "X", Values: []model.Number{model.Missing}}},
	}))
	v, err := c.File().GetCellValue("politician_success_main", "B2")
	require.NoError(t, err)
	require.Equal(t, "", v)
}

func TestSlotID(t *testing.T) {
	require.Equal(t, "econ_main", Slot{Name: "econ_main"}.ID())
	require.Equal(t, "s15_Chart 1", Slot{Name: "Chart 1", Slide: 15}.ID())
	require.Equal(t, "s17_2", Slot{Slide: 17, Index: 1}.ID())
	require.Len(t, []rune(sheetName("politician_success_second_extra_long")), 31)
}
