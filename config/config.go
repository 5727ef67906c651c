package config

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	UploadDir string `yaml:"upload_dir"`
}

type DatabaseConfig struct {
	// DSN 支持两种方言：mysql（user:pass@tcp(...)/db）或 sqlite 文件路径
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TTL       time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // 为空则输出到 stdout
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
}

// Default 返回与原始部署一致的默认配置：本地 sqlite 文件 + 3000 端口
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":3000", UploadDir: "./uploads"},
		Database: DatabaseConfig{DSN: "ctf.db"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		Session:  SessionConfig{JWTSecret: "vhp_ctf_secret", TTL: 7 * 24 * time.Hour},
		Log:      LogConfig{Level: "info"},
	}
}

// Load 读取 yaml 配置，文件不存在时直接使用默认值
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = 7 * 24 * time.Hour
	}
	return cfg, nil
}

// SetupLogger 按配置初始化 logrus，配置了日志文件时走 lumberjack 轮转
func SetupLogger(cfg LogConfig) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if cfg.File != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}
}
