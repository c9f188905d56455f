package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode        string        `mapstructure:"mode"`
	ServerURL   string        `mapstructure:"server_url"`
	Room        string        `mapstructure:"room"`
	Name        string        `mapstructure:"name"`
	STUNServers []string      `mapstructure:"stun_servers"`
	PingPeriod  time.Duration `mapstructure:"ping_period"`
	WriteWait   time.Duration `mapstructure:"write_wait"`
	DebugAddr   string        `mapstructure:"debug_addr"`
	LogLevel    string        `mapstructure:"log_level"`
}

func Load() (*Config, error) {
	// A local .env may carry HUDDLE_* overrides; absence is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("huddle")
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("server_url", "ws://localhost:8080/ws")
	v.SetDefault("stun_servers", []string{"stun:stun.l.google.com:19302"})
	v.SetDefault("ping_period", "54s")
	v.SetDefault("write_wait", "10s")
	v.SetDefault("debug_addr", "")
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("config loaded")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
