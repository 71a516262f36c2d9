// Package config 提供配置加载和管理功能
package config

import (
	"strings"
	"time"
)

// Config 应用配置根结构
type Config struct {
	App           AppConfig           `yaml:"app" mapstructure:"app"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	LLM           LLMConfig           `yaml:"llm" mapstructure:"llm"`
	Pipeline      PipelineConfig      `yaml:"pipeline" mapstructure:"pipeline"`
	Session       SessionConfig       `yaml:"session" mapstructure:"session"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Security      SecurityConfig      `yaml:"security" mapstructure:"security"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
	Env     string `yaml:"env" mapstructure:"env"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPServerConfig `yaml:"http" mapstructure:"http"`
}

// HTTPServerConfig HTTP 服务器配置
type HTTPServerConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// LLMConfig LLM 配置
type LLMConfig struct {
	// DemoMode 强制走确定性合成内容，不访问任何上游服务。
	// 即使为 false，所选 provider 缺少 api_key 时也会按 demo 模式处理。
	DemoMode        bool                      `yaml:"demo_mode" mapstructure:"demo_mode"`
	DefaultProvider string                    `yaml:"default_provider" mapstructure:"default_provider"`
	Providers       map[string]ProviderConfig `yaml:"providers" mapstructure:"providers"`
}

// ProviderConfig LLM 提供商配置
type ProviderConfig struct {
	APIKey      string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	Model       string        `yaml:"model" mapstructure:"model"`
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64       `yaml:"temperature" mapstructure:"temperature"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// EffectiveDemoMode 判断当前配置是否应按 demo 模式运行
func (c *LLMConfig) EffectiveDemoMode() bool {
	if c == nil || c.DemoMode {
		return true
	}
	p, ok := c.Providers[c.DefaultProvider]
	if !ok {
		return true
	}
	return strings.TrimSpace(p.APIKey) == ""
}

// PipelineConfig 生成流水线配置
type PipelineConfig struct {
	// SlidePacing 逐页生成之间的固定间隔，用于尊重上游限速
	SlidePacing time.Duration `yaml:"slide_pacing" mapstructure:"slide_pacing"`
	// MaxSlides 单次生成允许的最大页数（请求值超出时截断）
	MaxSlides int `yaml:"max_slides" mapstructure:"max_slides"`
	// OutlineMaxTokens / SlideMaxTokens / RevisionMaxTokens 各阶段输出上限
	OutlineMaxTokens  int `yaml:"outline_max_tokens" mapstructure:"outline_max_tokens"`
	SlideMaxTokens    int `yaml:"slide_max_tokens" mapstructure:"slide_max_tokens"`
	RevisionMaxTokens int `yaml:"revision_max_tokens" mapstructure:"revision_max_tokens"`
}

// SessionConfig 会话生命周期配置
type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl" mapstructure:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval" mapstructure:"sweep_interval"`
}

// ObservabilityConfig 可观测性配置
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
}

// TracingConfig 追踪配置
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Exporter   string  `yaml:"exporter" mapstructure:"exporter"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond int  `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int  `yaml:"burst" mapstructure:"burst"`
}

// CORSConfig CORS 配置
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
}
