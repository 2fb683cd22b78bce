package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm/logger"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Database DatabaseConfig `mapstructure:"database"` // 数据库配置
	Import   ImportConfig   `mapstructure:"import"`   // 导入管道配置
	Log      LogConfig      `mapstructure:"log"`      // 日志配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`            // postgres / sqlite
	DSN             string        `mapstructure:"dsn"`               // 连接DSN（postgres 须为 URL 形式）
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	LogLevel        string        `mapstructure:"log_level"`         // SQL日志：silent/error/warn/info
}

// ImportConfig 导入与列表相关限制
type ImportConfig struct {
	MaxReportedErrors int   `mapstructure:"max_reported_errors"` // 响应中最多返回的错误条数
	DefaultListLimit  int   `mapstructure:"default_list_limit"`  // 列表默认条数
	PairBoxRows       bool  `mapstructure:"pair_box_rows"`       // 技术统计是否强制 H/A 成对
	MaxUploadBytes    int64 `mapstructure:"max_upload_bytes"`    // xlsx 上传大小上限
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug/info/warn/error
	Format string `mapstructure:"format"` // text/json
}

// Driver 可选值
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "file:scoreingest.db?_foreign_keys=on")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("import.max_reported_errors", 200)
	v.SetDefault("import.default_list_limit", 10000)
	v.SetDefault("import.pair_box_rows", true)
	v.SetDefault("import.max_upload_bytes", 10<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig 加载配置文件（dir/config.yaml，dir 为空时为 ./config），env 覆盖同名字段。
// 配置文件不存在时使用默认值
func LoadConfig(dir string) (*Config, error) {
	// 1. 加载 .env（若存在）
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	if dir == "" {
		dir = "./config"
	}
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SERVER_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate 检查必填项与取值范围
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn 不能为空")
	}
	if c.Import.MaxReportedErrors <= 0 {
		return fmt.Errorf("import.max_reported_errors 必须大于 0")
	}
	return nil
}

// GormLogLevel SQL日志级别
func (d *DatabaseConfig) GormLogLevel() logger.LogLevel {
	switch d.LogLevel {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

// NewLogger 按配置创建 logrus 实例
func (l LogConfig) NewLogger() *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if l.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}
