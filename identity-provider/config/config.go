package config

import (
	"log"
	"sync"

	"github.com/Astemirdum/firebase-auth/pkg/circuit_breaker"
	"github.com/Astemirdum/firebase-auth/pkg/kafka"
	"github.com/Astemirdum/firebase-auth/pkg/logger"
	"github.com/Astemirdum/firebase-auth/pkg/server"
	"github.com/kelseyhightower/envconfig"
)

type Firebase struct {
	APIKey string `envconfig:"FIREBASE_API_KEY" required:"true"`
	// BaseURL overrides the Identity Toolkit host, e.g. for the auth emulator.
	BaseURL string `envconfig:"FIREBASE_BASE_URL"`
}

type Config struct {
	Server   server.Config `yaml:"server"`
	Firebase Firebase
	Breaker  circuit_breaker.Config
	Kafka    kafka.Config
	Log      logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
