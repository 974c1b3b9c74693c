package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port           int      `mapstructure:"port"`
	GinMode        string   `mapstructure:"gin_mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RandomSeed     int64    `mapstructure:"random_seed"`

	Debug bool `mapstructure:"debug"`
	JSON  bool `mapstructure:"json"`

	DBDSN string `mapstructure:"db_dsn"`

	RabbitMQURL   string `mapstructure:"rabbitmq_url"`
	RabbitMQQueue string `mapstructure:"rabbitmq_queue"`

	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`

	UnidocLicenseKey string `mapstructure:"unidoc_license_api_key"`
}

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:5174",
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("gin_mode", "release")
	v.SetDefault("allowed_origins", strings.Join(defaultOrigins, ","))
	v.SetDefault("random_seed", 0)
	v.SetDefault("debug", false)
	v.SetDefault("json", false)
	v.SetDefault("db_dsn", "")
	v.SetDefault("rabbitmq_url", "")
	v.SetDefault("rabbitmq_queue", "interview_events")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "")
	v.SetDefault("unidoc_license_api_key", "")

	v.AutomaticEnv()
}

// Load reads .env (if present) and the environment into a Config.
func Load(v *viper.Viper) (*Config, error) {
	_ = godotenv.Load()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AllowedOrigins = splitOrigins(v.GetString("allowed_origins"))

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port %d out of range", cfg.Port)
	}
	return &cfg, nil
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
