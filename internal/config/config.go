// Package config предоставялет структуры и функцию для парсинга и загрузки конфига шлюза отчётов.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Storage    `yaml:"storage"`
	Auth       `yaml:"auth"`
	CORS       `yaml:"cors"`
	RateLimit  `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeout" env-default:"20s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Storage структура для подключения к аналитическому хранилищу
type Storage struct {
	Driver       string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	DSN          string        `yaml:"dsn" env:"STORAGE_DSN" env-default:"file:reporting.db?_pragma=busy_timeout(5000)"`
	QueryTimeout time.Duration `yaml:"query_timeout" env-default:"15s"`
	SkipMigrate  bool          `yaml:"skip_migrate" env:"STORAGE_SKIP_MIGRATE"`
}

// Режимы проверки токенов.
const (
	AuthModeJWT  = "jwt"
	AuthModeNone = "none"
)

// Auth структура для проверки bearer-токенов. При Mode=none шлюз не требует токен.
type Auth struct {
	Mode         string        `yaml:"mode" env:"AUTH_MODE" env-default:"jwt"`
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// CORS структура со списком разрешённых источников. Пустой список означает "*".
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGIN" env-separator:","`
}

// RateLimit структура для ограничения частоты запросов. RPS=0 отключает лимит.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"0"`
	Burst int     `yaml:"burst" env-default:"20"`
}

// MustLoad функция для загрузки конфига из файла, указанного в CONFIG_PATH.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает и проверяет конфиг по пути path.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// AuthRequired сообщает, настроена ли проверка токенов.
func (c *Config) AuthRequired() bool { return c.Auth.Mode == AuthModeJWT }

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Driver)
	}
	switch c.Auth.Mode {
	case AuthModeJWT:
		if c.JWTSecretKey == "" {
			return fmt.Errorf("auth mode %q requires jwt_secret_key", AuthModeJWT)
		}
	case AuthModeNone:
	default:
		return fmt.Errorf("unsupported auth mode %q", c.Auth.Mode)
	}
	// ответ об ошибке запроса должен успеть уйти до WriteTimeout сервера
	if c.TimeoutHTTP > 0 && (c.QueryTimeout <= 0 || c.QueryTimeout >= c.TimeoutHTTP) {
		return fmt.Errorf("storage.query_timeout (%s) must be positive and shorter than http_server.timeout (%s)",
			c.QueryTimeout, c.TimeoutHTTP)
	}
	if c.RPS < 0 || c.Burst < 0 {
		return fmt.Errorf("rate_limit values must not be negative")
	}
	return nil
}

func (c *Config) String() string {
	secret := ""
	if c.JWTSecretKey != "" {
		secret = "***"
	}
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  QueryTimeout: %s\n"+
			"  SkipMigrate: %t\n"+
			"Auth:\n"+
			"  Mode: %s\n"+
			"  JWTSecretKey: %s\n"+
			"CORS:\n"+
			"  AllowedOrigins: %v\n"+
			"RateLimit:\n"+
			"  RPS: %g\n"+
			"  Burst: %d\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Driver,
		c.QueryTimeout,
		c.SkipMigrate,
		c.Auth.Mode,
		secret,
		c.AllowedOrigins,
		c.RPS,
		c.Burst,
	)
}
