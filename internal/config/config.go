package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGRPCAddr        = ":50051"
	DefaultHTTPAddr        = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultRedisStream     = "transaction.events"
)

// Config 服務設定
type Config struct {
	Server Server `yaml:"server"`
	Redis  Redis  `yaml:"redis"`
	Seed   []Seed `yaml:"seed"`
}

// Server 監聽地址
type Server struct {
	GRPCAddr        string        `yaml:"grpc_addr"`
	HTTPAddr        string        `yaml:"http_addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Redis 交易事件發佈設定，Addr 為空時不發佈
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Stream   string `yaml:"stream"`
}

// Enabled 是否啟用 Redis
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// Seed 啟動時註冊的帳戶
type Seed struct {
	ID      string `yaml:"id"`
	Balance int64  `yaml:"balance"`
}

// Load 讀取 YAML 設定檔，補上預設值後套用環境變數
//
// 參數:
//
//	path: 設定檔路徑，檔案不存在時只使用預設值與環境變數
//
// 回傳:
//
//	Config: 設定
//	error: 讀取或解析失敗
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyDefaults 補全 yaml 沒寫的欄位
func (c *Config) applyDefaults() {
	if c.Server.GRPCAddr == "" {
		c.Server.GRPCAddr = DefaultGRPCAddr
	}
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = DefaultHTTPAddr
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Redis.Stream == "" {
		c.Redis.Stream = DefaultRedisStream
	}
}

func (c *Config) applyEnv() error {
	c.Server.GRPCAddr = getEnv("LEDGER_GRPC_ADDR", c.Server.GRPCAddr)
	c.Server.HTTPAddr = getEnv("LEDGER_HTTP_ADDR", c.Server.HTTPAddr)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		c.Redis.DB = db
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
