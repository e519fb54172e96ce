// Package pipeline 一次完整的月度运行：读问卷、聚合、追加归档、双语渲染
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dogudogru/survey-report-app-v2/internal/i18n"
	"github.com/dogudogru/survey-report-app-v2/internal/model"
	"github.com/dogudogru/survey-report-app-v2/internal/render"
	"github.com/dogudogru/survey-report-app-v2/internal/service/breakdown"
	"github.com/dogudogru/survey-report-app-v2/internal/service/history"
	"github.com/dogudogru/survey-report-app-v2/internal/survey"
	"github.com/dogudogru/survey-report-app-v2/internal/util"
)

// 默认值
const (
	DefaultWindow      = 24
	DefaultTablePrefix = "Tables"
	DefaultChartPrefix = "Charts"
)

// Inputs 一次运行的输入
type Inputs struct {
	SurveyPath  string
	ArchivePath string
	// TableTemplate 为空或不存在时使用无样式骨架
	TableTemplate string
	OutputDir     string
	Now           time.Time

	WeightColumn string
	Languages    []i18n.Lang
	Window       int
	TablePrefix  string
	ChartPrefix  string

	Progress func(ProgressEvent)
}

// OutputKind 输出文件类别
type OutputKind string

const (
	OutputTables  OutputKind = "tables"
	OutputCharts  OutputKind = "charts"
	OutputArchive OutputKind = "archive"
)

// Output 一个输出文件
type Output struct {
	Kind OutputKind `json:"kind"`
	Lang i18n.Lang  `json:"lang,omitempty"`
	Path string     `json:"path"`
}

// Result 运行结果；失败时已写出的文件仍会列出
type Result struct {
	RunID       string    `json:"runId"`
	Period      string    `json:"period"`
	Stamp       string    `json:"stamp"`
	Respondents int       `json:"respondents"`
	TotalWeight float64   `json:"totalWeight"`
	Outputs     []Output  `json:"outputs"`
	Warnings    []string  `json:"warnings,omitempty"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}

func (in *Inputs) defaults() {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	if len(in.Languages) == 0 {
		in.Languages = []i18n.Lang{i18n.TR, i18n.EN}
	}
	if in.Window <= 0 {
		in.Window = DefaultWindow
	}
	if in.TablePrefix == "" {
		in.TablePrefix = DefaultTablePrefix
	}
	if in.ChartPrefix == "" {
		in.ChartPrefix = DefaultChartPrefix
	}
}

// OutputName 输出文件名：Tables_Oca24.xlsx / Tables_Oca24_en.xlsx
func OutputName(prefix, stamp string, lang i18n.Lang) string {
	if lang == i18n.TR || lang == "" {
		return fmt.Sprintf("%s_%s.xlsx", prefix, stamp)
	}
	return fmt.Sprintf("%s_%s_%s.xlsx", prefix, stamp, lang)
}

type run struct {
	in     Inputs
	res    *Result
	logger zerolog.Logger
	dict   *i18n.Dictionary
}

// Run 执行一次运行
// 聚合只计算一次，两种语言共用同一份结果；归档与渲染互为独立的失败域：
// 归档失败时表格与当期图表照常输出，但运行整体仍返回 historical append 错误
func Run(ctx context.Context, in Inputs) (*Result, error) {
	in.defaults()
	r := &run{
		in: in,
		res: &Result{
			RunID:     uuid.New().String(),
			Period:    history.PeriodLabel(in.Now),
			Stamp:     history.FileStamp(in.Now),
			StartedAt: time.Now(),
		},
		dict: i18n.Default(),
	}
	r.logger = log.With().Str("run", r.res.RunID).Str("period", r.res.Period).Logger()
	defer func() { r.res.FinishedAt = time.Now() }()

	if err := ctx.Err(); err != nil {
		return r.res, err
	}
	if err := util.EnsureDir(in.OutputDir); err != nil {
		return r.res, stageErr(StageRender, errors.Wrapf(err, "create output dir %s", in.OutputDir))
	}

	reportProgress(in.Progress, 5, "读取问卷")
	s, err := r.load()
	if err != nil {
		return r.res, stageErr(StageMapping, err)
	}
	r.res.Respondents = len(s.Table.Rows)
	r.res.TotalWeight = s.Table.TotalWeight()

	reportProgress(in.Progress, 25, "计算交叉表")
	agg, err := r.aggregate(s)
	if err != nil {
		return r.res, stageErr(StageAggregation, err)
	}

	if err := ctx.Err(); err != nil {
		return r.res, err
	}
	reportProgress(in.Progress, 45, "追加归档")
	series, appendErr := r.appendArchive(agg)
	if appendErr != nil {
		r.warn("historical append failed, trend charts skipped: %v", appendErr)
	}

	renderErr := r.renderAll(agg, series)
	if renderErr != nil {
		return r.res, stageErr(StageRender, renderErr)
	}
	if appendErr != nil {
		return r.res, stageErr(StageAppend, appendErr)
	}

	reportProgress(in.Progress, 100, "完成")
	r.logger.Info().
		Int("outputs", len(r.res.Outputs)).
		Dur("took", time.Since(r.res.StartedAt)).
		Msg("run finished")
	return r.res, nil
}

func (r *run) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.res.Warnings = append(r.res.Warnings, msg)
	r.logger.Warn().Msg(msg)
}

func (r *run) stage(stage Stage, start time.Time) {
	r.logger.Info().Str("stage", string(stage)).Dur("took", time.Since(start)).Msg("stage done")
}

func (r *run) load() (*survey.Survey, error) {
	start := time.Now()
	defer r.stage(StageMapping, start)
	if r.in.SurveyPath == "" {
		return nil, errors.New("survey path is empty")
	}
	return survey.NewLoader(r.in.WeightColumn).LoadFile(r.in.SurveyPath)
}

func (r *run) aggregate(s *survey.Survey) (*breakdown.Aggregates, error) {
	start := time.Now()
	defer r.stage(StageAggregation, start)
	return breakdown.Compute(s)
}

// appendArchive 全部序列追加成功后才落盘
func (r *run) appendArchive(agg *breakdown.Aggregates) (map[string]*model.Series, error) {
	start := time.Now()
	defer r.stage(StageAppend, start)
	if r.in.ArchivePath == "" {
		return nil, errors.New("archive path is empty")
	}
	archive, err := history.OpenArchive(r.in.ArchivePath)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	series, err := history.AppendAll(archive, r.res.Period, agg.Series)
	if err != nil {
		return nil, err
	}
	if err := archive.Save(); err != nil {
		return nil, err
	}
	r.res.Outputs = append(r.res.Outputs, Output{Kind: OutputArchive, Path: archive.Path()})
	return series, nil
}

func (r *run) renderAll(agg *breakdown.Aggregates, series map[string]*model.Series) error {
	start := time.Now()
	defer r.stage(StageRender, start)

	step := 55 / (2 * len(r.in.Languages))
	percent := 45
	for _, lang := range r.in.Languages {
		percent += step
		reportProgress(r.in.Progress, percent, fmt.Sprintf("渲染表格 (%s)", lang))
		if err := r.renderTables(agg, lang); err != nil {
			return errors.Wrapf(err, "tables (%s)", lang)
		}
		percent += step
		reportProgress(r.in.Progress, percent, fmt.Sprintf("渲染图表 (%s)", lang))
		if err := r.renderCharts(agg, series, lang); err != nil {
			return errors.Wrapf(err, "charts (%s)", lang)
		}
	}
	return nil
}

// tableTarget 每种语言打开一份新的模板副本
func (r *run) tableTarget(agg *breakdown.Aggregates) (*render.CellWorkbook, error) {
	if r.in.TableTemplate != "" && util.FileExists(r.in.TableTemplate) {
		return render.OpenCellWorkbook(r.in.TableTemplate)
	}
	if r.in.TableTemplate != "" {
		r.warn("table template %s not found, writing unstyled skeleton", r.in.TableTemplate)
	}
	wb, err := render.NewTableSkeleton(agg.Sheets)
	if err != nil {
		return nil, err
	}
	return render.NewCellWorkbook(wb), nil
}

func (r *run) renderTables(agg *breakdown.Aggregates, lang i18n.Lang) error {
	target, err := r.tableTarget(agg)
	if err != nil {
		return err
	}
	defer target.Close()

	if err := render.RenderTables(target, agg, render.TableOptions{Lang: lang, Dict: r.dict, Period: r.res.Period}); err != nil {
		return err
	}
	path := filepath.Join(r.in.OutputDir, OutputName(r.in.TablePrefix, r.res.Stamp, lang))
	if err := target.SaveAs(path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	r.res.Outputs = append(r.res.Outputs, Output{Kind: OutputTables, Lang: lang, Path: path})
	return nil
}

func (r *run) renderCharts(agg *breakdown.Aggregates, series map[string]*model.Series, lang i18n.Lang) error {
	target, err := render.NewChartWorkbook()
	if err != nil {
		return err
	}
	defer target.Close()

	updates := render.BuildDeck(agg, series, render.DeckOptions{Lang: lang, Dict: r.dict, Window: r.in.Window})
	if err := render.ApplyDeck(target, updates); err != nil {
		return err
	}
	path := filepath.Join(r.in.OutputDir, OutputName(r.in.ChartPrefix, r.res.Stamp, lang))
	if err := target.SaveAs(path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	r.res.Outputs = append(r.res.Outputs, Output{Kind: OutputCharts, Lang: lang, Path: path})
	return nil
}
