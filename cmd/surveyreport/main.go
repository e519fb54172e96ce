package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dogudogru/survey-report-app-v2/internal/config"
	"github.com/dogudogru/survey-report-app-v2/internal/logger"
)

var (
	configPath string
	dataDir    string
	logLevel   string

	cfg     *config.AppConfig
	cfgInfo config.LoadConfigInfo
)

var rootCmd = &cobra.Command{
	Use:   "surveyreport",
	Short: "Monthly Türkiye survey report processor",
	Long: `Process a monthly survey workbook into the historical archive,
the chart data workbooks and the cell-grid table workbooks (TR and EN).

Available subcommands:
  run         - process one survey file
  serve       - start the upload/download HTTP service
  init-config - write a default config.toml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == initConfigCmd.Name() {
			return nil
		}
		loaded, info, err := config.LoadConfigWithInfo(configPath)
		if err != nil {
			return err
		}
		if dataDir != "" {
			loaded.Data.DataDir = dataDir
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		logger.Configure(loaded.Log)
		if !info.Exists {
			fmt.Fprintf(os.Stderr, "配置文件不存在，使用默认配置: %s\n", info.Path)
		}
		cfg = loaded
		cfgInfo = info
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径 (默认为可执行文件同目录下的 config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "数据目录 (覆盖配置文件)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (覆盖配置文件)")

	rootCmd.AddCommand(runCmd, serveCmd, initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
