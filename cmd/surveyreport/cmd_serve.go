package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dogudogru/survey-report-app-v2/internal/server"
	"github.com/dogudogru/survey-report-app-v2/internal/util"
)

var servePort int

// serveCmd 启动上传/下载服务
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload/download HTTP service",
	RunE:  serve,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
}

func serve(cmd *cobra.Command, args []string) error {
	fmt.Println("==========================================")
	fmt.Println("  Survey Report - 月度问卷报告处理")
	fmt.Println("==========================================")

	if servePort > 0 && !cfgInfo.PortSpecified {
		cfg.Server.Port = servePort
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	url := fmt.Sprintf("http://%s/api/runs", addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("服务启动中，监听 %s ...\n", addr)
	if cfg.Server.OpenBrowser {
		if err := util.OpenURL(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	}
	fmt.Println("\n按 Ctrl+C 停止服务...")

	if err := srv.Serve(ctx, addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return err
	}
	fmt.Println("\n服务已关闭")
	return nil
}
