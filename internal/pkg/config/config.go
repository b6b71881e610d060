package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Auth    AuthConfig    `mapstructure:"auth"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Version  string `mapstructure:"version"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	ListenAddr        string `mapstructure:"listen_addr"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// AuthConfig 会话配置
type AuthConfig struct {
	TokenSecret   string `mapstructure:"token_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// 支持环境变量
	v.SetEnvPrefix("LIFEQUEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Warn("配置文件未找到，使用默认配置")
		} else {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	} else {
		slog.Info("加载配置文件", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	cfg.Storage.DBPath = resolvePath(cfg.Storage.DBPath)

	return &cfg, nil
}

// Default 默认配置
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:     "lifequest",
			Version:  "0.1.0",
			LogLevel: "info",
		},
		Server: ServerConfig{
			ListenAddr:        "127.0.0.1:8640",
			RequestTimeoutSec: 30,
		},
		Storage: StorageConfig{
			DBPath: "./data/lifequest.db",
		},
		Auth: AuthConfig{
			TokenSecret:   "",
			TokenTTLHours: 24,
		},
	}
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("app.name", d.App.Name)
	v.SetDefault("app.version", d.App.Version)
	v.SetDefault("app.log_level", d.App.LogLevel)

	v.SetDefault("server.listen_addr", d.Server.ListenAddr)
	v.SetDefault("server.request_timeout_sec", d.Server.RequestTimeoutSec)

	v.SetDefault("storage.db_path", d.Storage.DBPath)

	v.SetDefault("auth.token_secret", d.Auth.TokenSecret)
	v.SetDefault("auth.token_ttl_hours", d.Auth.TokenTTLHours)
}

// resolvePath 相对路径转为绝对路径
func resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// SetupLogger 根据配置设置日志级别
func SetupLogger(level string) {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	slog.SetDefault(slog.New(handler))
}

// ParseLevel 解析日志级别，未知值按 info 处理
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
