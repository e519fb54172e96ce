package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dogudogru/survey-report-app-v2/internal/config"
	"github.com/dogudogru/survey-report-app-v2/internal/i18n"
	"github.com/dogudogru/survey-report-app-v2/internal/model"
	"github.com/dogudogru/survey-report-app-v2/internal/render"
	"github.com/dogudogru/survey-report-app-v2/internal/service/breakdown"
	"github.com/dogudogru/survey-report-app-v2/internal/service/history"
	"github.com/dogudogru/survey-report-app-v2/internal/survey"
	"github.com/dogudogru/survey-report-app-v2/internal/survey/surveytest"
)

func writeSurvey(t *testing.T, dir string) string {
	t.Helper()
	wb, err := surveytest.Workbook(surveytest.Sample())
	require.NoError(t, err)
	path := filepath.Join(dir, "survey.xlsx")
	require.NoError(t, wb.SaveAs(path))
	return path
}

func inputs(t *testing.T) Inputs {
	t.Helper()
	dir := t.TempDir()
	return Inputs{
		SurveyPath:   writeSurvey(t, dir),
		ArchivePath:  filepath.Join(dir, "historical.xlsx"),
		OutputDir:    filepath.Join(dir, "out"),
		Now:          time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		WeightColumn: surveytest.WeightHeader,
	}
}

func outputPaths(res *Result, kind OutputKind) []string {
	var out []string
	for _, o := range res.Outputs {
		if o.Kind == kind {
			out = append(out, filepath.Base(o.Path))
		}
	}
	return out
}

func TestRunWritesAllOutputs(t *testing.T) {
	in := inputs(t)
	var events []ProgressEvent
	in.Progress = func(e ProgressEvent) { events = append(events, e) }

	res, err := Run(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "Oca.24", res.Period)
	require.Equal(t, 3, res.Respondents)
	require.Equal(t, 4.0, res.TotalWeight)

	require.Equal(t, []string{"Tables_Oca24.xlsx", "Tables_Oca24_en.xlsx"}, outputPaths(res, OutputTables))
	require.Equal(t, []string{"Charts_Oca24.xlsx", "Charts_Oca24_en.xlsx"}, outputPaths(res, OutputCharts))
	require.Equal(t, []string{"historical.xlsx"}, outputPaths(res, OutputArchive))
	for _, o := range res.Outputs {
		_, err := os.Stat(o.Path)
		require.NoErrorf(t, err, "output %s", o.Path)
	}

	require.NotEmpty(t, events)
	require.Equal(t, 100, events[len(events)-1].Percent)
	for i := 1; i < len(events); i++ {
		require.GreaterOrEqual(t, events[i].Percent, events[i-1].Percent)
	}
}

func TestRunTwiceAppendsTwoRows(t *testing.T) {
	in := inputs(t)
	_, err := Run(context.Background(), in)
	require.NoError(t, err)
	in.Now = in.Now.AddDate(0, 1, 0)
	_, err = Run(context.Background(), in)
	require.NoError(t, err)

	a, err := history.OpenArchive(in.ArchivePath)
	require.NoError(t, err)
	defer a.Close()
	s, err := a.Load(breakdown.SeriesPartyVotes, model.KindPercentage)
	require.NoError(t, err)
	require.Equal(t, []string{"Oca.24", "Şub.24"}, s.Periods())
	require.Equal(t, s.Rows[0].Values, s.Rows[1].Values)
}

func TestRunMissingColumnFailsMapping(t *testing.T) {
	in := inputs(t)
	in.WeightColumn = "agirlik_yok"

	_, err := Run(context.Background(), in)
	var stage *StageError
	require.True(t, errors.As(err, &stage))
	require.Equal(t, StageMapping, stage.Stage)
	var missing *survey.MissingColumnError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, survey.RoleWeight, missing.Role)

	_, statErr := os.Stat(in.ArchivePath)
	require.True(t, os.IsNotExist(statErr))
}

func TestArchiveFailureStillRenders(t *testing.T) {
	in := inputs(t)
	// 目录无法作为工作簿打开
	in.ArchivePath = t.TempDir()

	res, err := Run(context.Background(), in)
	var stage *StageError
	require.True(t, errors.As(err, &stage))
	require.Equal(t, StageAppend, stage.Stage)
	require.Len(t, outputPaths(res, OutputTables), 2)
	require.Len(t, outputPaths(res, OutputCharts), 2)
	require.Empty(t, outputPaths(res, OutputArchive))

	charts, err := excelize.OpenFile(filepath.Join(in.OutputDir, "Charts_Oca24.xlsx"))
	require.NoError(t, err)
	defer charts.Close()
	idx, err := charts.GetSheetIndex("s15_Chart 1")
	require.NoError(t, err)
	require.GreaterOrEqual(t, idx, 0)
	idx, err = charts.GetSheetIndex("econ_main")
	require.NoError(t, err)
	require.Equal(t, -1, idx)
}

func TestRenderFailureKeepsArchive(t *testing.T) {
	in := inputs(t)
	template := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, excelize.NewFile().SaveAs(template))
	in.TableTemplate = template

	res, err := Run(context.Background(), in)
	var stage *StageError
	require.True(t, errors.As(err, &stage))
	require.Equal(t, StageRender, stage.Stage)
	var missing *render.MissingSheetError
	require.True(t, errors.As(err, &missing))

	require.Equal(t, []string{"historical.xlsx"}, outputPaths(res, OutputArchive))
	_, statErr := os.Stat(in.ArchivePath)
	require.NoError(t, statErr)
}

func TestMissingTemplateFallsBackToSkeleton(t *testing.T) {
	in := inputs(t)
	in.TableTemplate = filepath.Join(t.TempDir(), "absent.xlsx")

	res, err := Run(context.Background(), in)
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)

	tables, err := excelize.OpenFile(filepath.Join(in.OutputDir, "Tables_Oca24_en.xlsx"))
	require.NoError(t, err)
	defer tables.Close()
	v, err := tables.GetCellValue(breakdown.SheetEconCurrentParty, "L1")
	require.NoError(t, err)
	require.Equal(t, "Jan.24", v)
}

func TestStageErrorMessageNamesStage(t *testing.T) {
	err := stageErr(StageAppend, errors.New("locked"))
	require.Equal(t, "historical append failed: locked", err.Error())
	require.Nil(t, stageErr(StageRender, nil))
}

func TestOutputName(t *testing.T) {
	require.Equal(t, "Tables_Oca24.xlsx", OutputName("Tables", "Oca24", "tr"))
	require.Equal(t, "Charts_Oca24_en.xlsx", OutputName("Charts", "Oca24", "en"))
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	in, err := FromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, []i18n.Lang{i18n.TR, i18n.EN}, in.Languages)
	require.Equal(t, "duzeltilmis_agirlik", in.WeightColumn)
	require.Equal(t, 24, in.Window)

	cfg.Report.Languages = []string{"de"}
	_, err = FromConfig(cfg)
	require.Error(t, err)
}
