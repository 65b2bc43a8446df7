package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultConfigYAML 内置默认配置
//
//go:embed config.yaml
var DefaultConfigYAML []byte

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Stock    StockConfig    `mapstructure:"stock"`
	News     NewsConfig     `mapstructure:"news"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 数据库配置
// Driver 为 mysql 时使用 Host/Port 等字段拼接 DSN；为 sqlite 时使用 Path
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
	Path     string `mapstructure:"path"`
	LogLevel string `mapstructure:"log_level"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// AuthConfig 接口鉴权配置
type AuthConfig struct {
	Required bool `mapstructure:"required"`
}

// StockConfig stock.* 配置
type StockConfig struct {
	Analysis StockAnalysisConfig `mapstructure:"analysis"`
}

// StockAnalysisConfig 股票分析上游 webhook 及行情接口配置
type StockAnalysisConfig struct {
	ComprehensiveURL         string        `mapstructure:"comprehensive-url"`
	StructuredURL            string        `mapstructure:"structured-url"`
	ComprehensiveReadTimeout time.Duration `mapstructure:"comprehensive-read-timeout"`
	StructuredReadTimeout    time.Duration `mapstructure:"structured-read-timeout"`
	ConnectTimeout           time.Duration `mapstructure:"connect-timeout"`

	AlphaVantageURL    string        `mapstructure:"alpha-vantage-url"`
	AlphaVantageAPIKey string        `mapstructure:"alpha-vantage-api-key"`
	IntradayOutputSize string        `mapstructure:"intraday-output-size"`
	IntradayTimeout    time.Duration `mapstructure:"intraday-read-timeout"`
}

// NewsConfig news.* 配置
type NewsConfig struct {
	Analysis NewsAnalysisConfig `mapstructure:"analysis"`
}

// NewsAnalysisConfig 新闻分析上游 webhook 配置
type NewsAnalysisConfig struct {
	URL            string        `mapstructure:"url"`
	ReadTimeout    time.Duration `mapstructure:"read-timeout"`
	ConnectTimeout time.Duration `mapstructure:"connect-timeout"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}
	log.Println("已加载内置默认配置")

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("警告: 无法读取指定配置文件 %s: %v", configPath, err)
		} else {
			log.Printf("已合并外部配置文件: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/finance-analysis")
		externalViper.AddConfigPath("$HOME/.finance-analysis")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 环境变量覆盖，例如 ANALYSIS_STOCK_ANALYSIS_COMPREHENSIVE_URL
	v.SetEnvPrefix("ANALYSIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	applyDefaults(&cfg)

	GlobalConfig = &cfg

	return &cfg, nil
}

// applyDefaults 补全未配置或配置非法的超时等字段
func applyDefaults(cfg *Config) {
	if cfg.JWT.ExpireHours <= 0 {
		cfg.JWT.ExpireHours = 24
	}
	cfg.JWT.ExpireTime = time.Duration(cfg.JWT.ExpireHours) * time.Hour

	sa := &cfg.Stock.Analysis
	sa.ComprehensiveURL = strings.TrimSpace(sa.ComprehensiveURL)
	sa.StructuredURL = strings.TrimSpace(sa.StructuredURL)
	sa.ComprehensiveReadTimeout = orDefault(sa.ComprehensiveReadTimeout, 60*time.Second)
	sa.StructuredReadTimeout = orDefault(sa.StructuredReadTimeout, 1800*time.Second)
	sa.ConnectTimeout = orDefault(sa.ConnectTimeout, 5*time.Second)
	sa.IntradayTimeout = orDefault(sa.IntradayTimeout, 15*time.Second)

	na := &cfg.News.Analysis
	na.URL = strings.TrimSpace(na.URL)
	na.ReadTimeout = orDefault(na.ReadTimeout, 180*time.Second)
	na.ConnectTimeout = orDefault(na.ConnectTimeout, 5*time.Second)

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	if GlobalConfig.Database.Driver == "mysql" {
		log.Printf("  数据库: mysql %s@%s:%s/%s",
			GlobalConfig.Database.Username,
			GlobalConfig.Database.Host,
			GlobalConfig.Database.Port,
			GlobalConfig.Database.DBName)
	} else {
		log.Printf("  数据库: %s %s", GlobalConfig.Database.Driver, GlobalConfig.Database.Path)
	}
	log.Printf("  综合分析 webhook: %s (读超时 %s)", displayURL(GlobalConfig.Stock.Analysis.ComprehensiveURL), GlobalConfig.Stock.Analysis.ComprehensiveReadTimeout)
	log.Printf("  结构化分析 webhook: %s (读超时 %s)", displayURL(GlobalConfig.Stock.Analysis.StructuredURL), GlobalConfig.Stock.Analysis.StructuredReadTimeout)
	log.Printf("  新闻分析 webhook: %s (读超时 %s)", displayURL(GlobalConfig.News.Analysis.URL), GlobalConfig.News.Analysis.ReadTimeout)
	log.Printf("  接口鉴权: %v", GlobalConfig.Auth.Required)
}

func displayURL(u string) string {
	if u == "" {
		return "(未配置)"
	}
	return u
}
