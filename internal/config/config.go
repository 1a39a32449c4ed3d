package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the podlab service
type Config struct {
	// Server configuration
	HTTPPort int    `env:"HTTP_PORT" envDefault:"8080"`
	AppName  string `env:"APP_NAME" envDefault:"podlab"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Stress endpoint limits
	MaxStressSeconds int `env:"MAX_STRESS_SECONDS" envDefault:"30"`
	StressWorkers    int `env:"STRESS_WORKERS" envDefault:"4"`

	// Session configuration
	SessionTTLSeconds int `env:"SESSION_TTL" envDefault:"3600"`

	// Redis configuration
	Redis RedisConfig

	// Pod metadata from the downward API
	Pod PodConfig

	// Timeouts
	ShutdownTimeout time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"10s"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`

	// Short timeouts so an unreachable store surfaces as 503 instead of
	// hanging the request.
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"2s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"2s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"2s"`
}

// PodConfig holds pod metadata injected via downward API env vars
type PodConfig struct {
	Name          string `env:"POD_NAME"`
	IP            string `env:"POD_IP" envDefault:"unknown"`
	NodeName      string `env:"NODE_NAME" envDefault:"unknown"`
	Namespace     string `env:"POD_NAMESPACE" envDefault:"unknown"`
	CPURequest    string `env:"CPU_REQUEST" envDefault:"not set"`
	CPULimit      string `env:"CPU_LIMIT" envDefault:"not set"`
	MemoryRequest string `env:"MEMORY_REQUEST" envDefault:"not set"`
	MemoryLimit   string `env:"MEMORY_LIMIT" envDefault:"not set"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Pod.Name == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		cfg.Pod.Name = hostname
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("redis host is required")
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("invalid redis port: %d", c.Redis.Port)
	}

	if c.MaxStressSeconds < 0 {
		return fmt.Errorf("max stress seconds must not be negative")
	}
	if c.StressWorkers < 1 {
		return fmt.Errorf("stress worker count must be at least 1")
	}
	if c.SessionTTLSeconds < 1 {
		return fmt.Errorf("session TTL must be at least 1 second")
	}

	validLogLevels := map[string]bool{
		"debug":   true,
		"info":    true,
		"warning": true,
		"warn":    true,
		"error":   true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warning, or error)", c.LogLevel)
	}

	return nil
}

// SessionTTL returns the session expiration as a duration
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GetRedisAddr returns the Redis server address
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
