package config

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "SURVEYREPORT"

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Survey SurveyConfig `toml:"survey"`
	Report ReportConfig `toml:"report"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig 上传服务配置
type ServerConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	OpenBrowser bool   `toml:"open_browser"`
	// DownloadTTLMinutes 下载链接有效期
	DownloadTTLMinutes int `toml:"download_ttl_minutes"`
}

// DataConfig 数据目录配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// SurveyConfig 问卷文件配置
type SurveyConfig struct {
	WeightColumn string `toml:"weight_column"`
}

// ReportConfig 报告输出配置
type ReportConfig struct {
	ChartWindow   int      `toml:"chart_window"`
	Languages     []string `toml:"languages"`
	TableTemplate string   `toml:"table_template"`
	TablePrefix   string   `toml:"table_prefix"`
	ChartPrefix   string   `toml:"chart_prefix"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
	Dev   bool   `toml:"dev"`
}

// envOverrides 可由环境变量覆盖的字段
type envOverrides struct {
	WeightColumn  string `envconfig:"WEIGHT_COLUMN"`
	DataDir       string `envconfig:"DATA_DIR"`
	TableTemplate string `envconfig:"TABLE_TEMPLATE"`
	Port          int    `envconfig:"PORT"`
	LogLevel      string `envconfig:"LOG_LEVEL"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	Exists        bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Host:               "127.0.0.1",
			Port:               20262,
			OpenBrowser:        false,
			DownloadTTLMinutes: 30,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Survey: SurveyConfig{
			WeightColumn: "duzeltilmis_agirlik",
		},
		Report: ReportConfig{
			ChartWindow:   24,
			Languages:     []string{"tr", "en"},
			TableTemplate: "table_data/table_templates_main.xlsx",
			TablePrefix:   "Tables",
			ChartPrefix:   "Charts",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	serverMap, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath 可执行文件同目录下的 config.toml
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 从 path 加载配置（为空时使用 DefaultPath），再应用环境变量覆盖
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultPath()
	}
	info := LoadConfigInfo{Path: path}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.Exists = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, errors.Wrapf(err, "parse %s", path)
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, errors.Wrapf(err, "read %s", path)
	}

	if err := applyEnv(cfg, &info); err != nil {
		return nil, info, err
	}
	return cfg, info, nil
}

func applyEnv(cfg *AppConfig, info *LoadConfigInfo) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return errors.Wrap(err, "environment overrides")
	}
	if env.WeightColumn != "" {
		cfg.Survey.WeightColumn = env.WeightColumn
	}
	if env.DataDir != "" {
		cfg.Data.DataDir = env.DataDir
	}
	if env.TableTemplate != "" {
		cfg.Report.TableTemplate = env.TableTemplate
	}
	if env.Port > 0 {
		cfg.Server.Port = env.Port
		info.PortSpecified = true
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	return nil
}

// SaveConfig 保存配置到 path
func SaveConfig(cfg *AppConfig, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir 确保数据目录及 uploads/outputs 子目录存在
// 相对路径以可执行文件所在目录为基准
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dataDir := cfg.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	for _, subdir := range []string{"", "uploads", "outputs"} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}
	return dataDir, nil
}
