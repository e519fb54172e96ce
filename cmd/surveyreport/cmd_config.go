package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dogudogru/survey-report-app-v2/internal/config"
)

var initForce bool

// initConfigCmd 写出默认配置
var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a default config.toml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if _, info, err := config.LoadConfigWithInfo(path); err == nil && info.Exists && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已写入默认配置: %s\n", path)
		return nil
	},
}

func init() {
	initConfigCmd.Flags().BoolVar(&initForce, "force", false, "覆盖已有配置文件")
}
