package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yuqie6/lifequest/internal/bootstrap"
	"github.com/yuqie6/lifequest/internal/httpapi"
	"github.com/yuqie6/lifequest/internal/pkg/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath, cfgErr := config.DefaultConfigPath()
	if cfgErr == nil {
		if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
			cfg := config.Default()
			cfg.Auth.TokenSecret = newTokenSecret()
			_ = config.WriteFile(cfgPath, cfg)
		}
	}

	core, err := bootstrap.NewCore(cfgPath)
	if err != nil {
		slog.Error("启动失败", "error", err)
		os.Exit(1)
	}
	defer core.Close()

	slog.Info("LifeQuest 启动中...", "name", core.Cfg.App.Name, "version", core.Cfg.App.Version)

	core.StartStores(ctx)

	// 配置热更新：目前只响应日志级别
	if cfgErr == nil {
		if err := config.Watch(ctx, cfgPath, func(cfg *config.Config) {
			config.SetupLogger(cfg.App.LogLevel)
		}); err != nil {
			slog.Warn("配置监听未启用", "error", err)
		}
	}

	srv, err := httpapi.Start(ctx, core, httpapi.Options{ListenAddr: core.Cfg.Server.ListenAddr})
	if err != nil {
		slog.Error("启动 HTTP 服务失败", "error", err)
		os.Exit(1)
	}

	slog.Info("LifeQuest 已启动", "base_url", srv.BaseURL())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("收到系统退出信号，正在关闭...")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = srv.Shutdown(shutdownCtx)
	shutdownCancel()

	slog.Info("LifeQuest 已退出")
}

// newTokenSecret 首次写配置时生成会话签名密钥
func newTokenSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
