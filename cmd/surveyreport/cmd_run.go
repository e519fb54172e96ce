package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dogudogru/survey-report-app-v2/internal/config"
	"github.com/dogudogru/survey-report-app-v2/internal/pipeline"
)

var (
	runSurvey   string
	runArchive  string
	runTemplate string
	runOutput   string
	runMonth    string
)

// runCmd 处理一份问卷
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process one survey workbook",
	Long: `Load the survey, compute every breakdown once, append one period row to
each historical series and render TR and EN outputs.

The archive file is updated in place; the table template is never modified.`,
	RunE: runSurveyCmd,
}

func init() {
	runCmd.Flags().StringVar(&runSurvey, "survey", "", "问卷文件 (xlsx)")
	runCmd.Flags().StringVar(&runArchive, "archive", "", "历史归档文件 (xlsx)，不存在时新建")
	runCmd.Flags().StringVar(&runTemplate, "template", "", "表格模板 (覆盖配置文件)")
	runCmd.Flags().StringVar(&runOutput, "out", "", "输出目录 (默认为数据目录下的 outputs)")
	runCmd.Flags().StringVar(&runMonth, "month", "", "期次 YYYY-MM (默认为当前月份)")
	_ = runCmd.MarkFlagRequired("survey")
	_ = runCmd.MarkFlagRequired("archive")
}

func runSurveyCmd(cmd *cobra.Command, args []string) error {
	in, err := pipeline.FromConfig(cfg)
	if err != nil {
		return err
	}
	in.SurveyPath = runSurvey
	in.ArchivePath = runArchive
	if runTemplate != "" {
		in.TableTemplate = runTemplate
	}

	in.OutputDir = runOutput
	if in.OutputDir == "" {
		dir, err := config.EnsureDataDir(cfg)
		if err != nil {
			return err
		}
		in.OutputDir = filepath.Join(dir, "outputs")
	}

	in.Now = time.Now()
	if runMonth != "" {
		t, err := time.Parse("2006-01", runMonth)
		if err != nil {
			return fmt.Errorf("invalid --month %q, want YYYY-MM", runMonth)
		}
		in.Now = t
	}

	lastPercent := -1
	in.Progress = func(p pipeline.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		fmt.Fprintf(cmd.OutOrStdout(), "[%3d%%] %s\n", p.Percent, p.Stage)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := pipeline.Run(ctx, in)
	if res != nil {
		for _, o := range res.Outputs {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %-3s %s\n", o.Kind, o.Lang, o.Path)
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "警告: %s\n", w)
		}
	}
	return err
}
