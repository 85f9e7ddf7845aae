package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddress string `json:"http_address" env:"HTTP_ADDRESS" envDefault:"127.0.0.1:8080"`
	LogLevel    int    `json:"log_level" env:"LOG_LEVEL" envDefault:"0"`

	// Empty DSN keeps operations in memory.
	DatabaseDSN string `json:"-" env:"DATABASE_DSN"`

	// No brokers, no events.
	KafkaBrokers []string `json:"kafka_brokers" env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `json:"kafka_topic" env:"KAFKA_TOPIC" envDefault:"ledger.operations"`
}

// NewConfig reads the environment, after loading the given .env files if they
// exist. A file that exists but can't be parsed is an error.
func NewConfig(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s error %w", f, err)
		}
	}

	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("config: parse env error %w", err)
	}
	return c, nil
}

func MustNewConfig(envFiles ...string) *Config {
	c, err := NewConfig(envFiles...)
	if err != nil {
		panic(err)
	}
	return c
}
