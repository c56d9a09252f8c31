package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 应用程序配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MongoDB   MongoDBConfig   `mapstructure:"mongodb"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Taobao    TaobaoConfig    `mapstructure:"taobao"`
	Alibaba   AlibabaConfig   `mapstructure:"alibaba"`
	Weidian   WeidianConfig   `mapstructure:"weidian"`
	OneBound  OneBoundConfig  `mapstructure:"onebound"`
	Translate TranslateConfig `mapstructure:"translate"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	Geo       GeoConfig       `mapstructure:"geo"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
	Frontend  FrontendConfig  `mapstructure:"frontend"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"` // development, production
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"` // gin 模式: debug, release, test
}

// SchedulerConfig 调度器配置
type SchedulerConfig struct {
	DefaultTimeout string `mapstructure:"default_timeout"` // 例如: "30m"
	Location       string `mapstructure:"location"`        // 例如: "Asia/Shanghai"
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // json, console
	OutputPath string `mapstructure:"output_path"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // 天
	Compress   bool   `mapstructure:"compress"`
}

// RedisConfig 持久缓存层（Redis）配置
// 未启用时缓存退化为仅进程内层
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"` // redis:// 形式，优先于 addr
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoDBConfig 原始响应归档库配置
type MongoDBConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	AuthSource  string `mapstructure:"auth_source"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
}

// CacheConfig 缓存行为配置
type CacheConfig struct {
	MaxEntries int    `mapstructure:"max_entries"`
	ProductTTL string `mapstructure:"product_ttl"` // 例如: "12h"

	// 解析后的时长，由 Load 填充
	ProductTTLDuration time.Duration
}

// TaobaoConfig 淘宝开放平台配置
type TaobaoConfig struct {
	AppKey      string `mapstructure:"app_key"`
	AppSecret   string `mapstructure:"app_secret"`
	AccessToken string `mapstructure:"access_token"`
	BaseURL     string `mapstructure:"base_url"`
	Timeout     string `mapstructure:"timeout"`

	TimeoutDuration time.Duration
}

// AlibabaConfig 1688 跨境分销接口配置
type AlibabaConfig struct {
	AppKey      string `mapstructure:"app_key"`
	SecretKey   string `mapstructure:"secret_key"`
	AccessToken string `mapstructure:"access_token"`
	BaseURL     string `mapstructure:"base_url"`
	Timeout     string `mapstructure:"timeout"`

	TimeoutDuration time.Duration
}

// WeidianConfig 微店接口配置
type WeidianConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`

	TimeoutDuration time.Duration
}

// OneBoundConfig 万邦聚合接口配置
type OneBoundConfig struct {
	Key     string `mapstructure:"key"`
	Secret  string `mapstructure:"secret"`
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`

	TimeoutDuration time.Duration
}

// TranslateConfig 翻译后端配置
type TranslateConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region"`
	SourceLang string `mapstructure:"source_lang"` // 默认 auto
}

// DiscordConfig 请求日志 webhook 配置
type DiscordConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	WebhookURL string `mapstructure:"webhook_url"`
	Timeout    string `mapstructure:"timeout"`

	TimeoutDuration time.Duration
}

// GeoConfig IP 归属地查询配置
type GeoConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`

	TimeoutDuration time.Duration
}

// ArchiveConfig 原始响应归档配置
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Retention string `mapstructure:"retention"` // 例如: "168h"

	RetentionDuration time.Duration
}

// FrontendConfig 前端域名，用于拼接商品详情深链
type FrontendConfig struct {
	URL string `mapstructure:"url"`
}

// Load 加载配置
func Load(configPath string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	if configPath != "" {
		viper.AddConfigPath(configPath)
	}

	// 环境变量覆盖，例如 SEARCHAPI_TAOBAO_APP_KEY
	viper.SetEnvPrefix("SEARCHAPI")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.parseDurations(); err != nil {
		return nil, fmt.Errorf("failed to parse durations: %w", err)
	}

	return &config, nil
}

// GetLocation 解析调度器时区
func (c *Config) GetLocation() (*time.Location, error) {
	if c.Scheduler.Location == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Scheduler.Location)
}

// GetDefaultTimeout 解析任务默认超时
func (c *Config) GetDefaultTimeout() (time.Duration, error) {
	if c.Scheduler.DefaultTimeout == "" {
		return 30 * time.Minute, nil
	}
	return time.ParseDuration(c.Scheduler.DefaultTimeout)
}

// parseDurations 把字符串时长解析为 time.Duration
func (c *Config) parseDurations() error {
	durations := []struct {
		raw  string
		dst  *time.Duration
		name string
	}{
		{c.Cache.ProductTTL, &c.Cache.ProductTTLDuration, "cache.product_ttl"},
		{c.Taobao.Timeout, &c.Taobao.TimeoutDuration, "taobao.timeout"},
		{c.Alibaba.Timeout, &c.Alibaba.TimeoutDuration, "alibaba.timeout"},
		{c.Weidian.Timeout, &c.Weidian.TimeoutDuration, "weidian.timeout"},
		{c.OneBound.Timeout, &c.OneBound.TimeoutDuration, "onebound.timeout"},
		{c.Discord.Timeout, &c.Discord.TimeoutDuration, "discord.timeout"},
		{c.Geo.Timeout, &c.Geo.TimeoutDuration, "geo.timeout"},
		{c.Archive.Retention, &c.Archive.RetentionDuration, "archive.retention"},
	}

	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*d.dst = parsed
	}
	return nil
}

// setDefaults 设置默认配置值
func setDefaults() {
	viper.SetDefault("app.name", "search-api")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.env", "development")

	viper.SetDefault("server.enabled", true)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.mode", "release")

	viper.SetDefault("scheduler.default_timeout", "30m")
	viper.SetDefault("scheduler.location", "Asia/Shanghai")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "logs/app.log")
	viper.SetDefault("logger.max_size", 100)
	viper.SetDefault("logger.max_backups", 3)
	viper.SetDefault("logger.max_age", 7)
	viper.SetDefault("logger.compress", true)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)

	viper.SetDefault("mongodb.enabled", false)
	viper.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongodb.database", "search_api")
	viper.SetDefault("mongodb.auth_source", "admin")
	viper.SetDefault("mongodb.max_pool_size", 100)

	viper.SetDefault("cache.max_entries", 1000)
	viper.SetDefault("cache.product_ttl", "12h")

	viper.SetDefault("taobao.base_url", "https://api.taobao.global/rest")
	viper.SetDefault("taobao.timeout", "30s")

	viper.SetDefault("alibaba.base_url", "https://gw.open.1688.com/openapi/")
	viper.SetDefault("alibaba.timeout", "30s")

	viper.SetDefault("weidian.base_url", "https://thor.weidian.com")
	viper.SetDefault("weidian.timeout", "20s")

	viper.SetDefault("onebound.base_url", "https://api-gw.onebound.cn")
	viper.SetDefault("onebound.timeout", "30s")

	viper.SetDefault("translate.enabled", false)
	viper.SetDefault("translate.region", "us-east-1")
	viper.SetDefault("translate.source_lang", "auto")

	viper.SetDefault("discord.enabled", false)
	viper.SetDefault("discord.timeout", "10s")

	viper.SetDefault("geo.enabled", false)
	viper.SetDefault("geo.base_url", "http://ip-api.com")
	viper.SetDefault("geo.timeout", "5s")

	viper.SetDefault("archive.enabled", false)
	viper.SetDefault("archive.retention", "168h")

	viper.SetDefault("frontend.url", "https://shariyy.com")
}
