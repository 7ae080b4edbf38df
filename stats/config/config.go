package config

import (
	"log"
	"sync"

	"github.com/Astemirdum/firebase-auth/pkg/kafka"
	"github.com/Astemirdum/firebase-auth/pkg/logger"
	"github.com/Astemirdum/firebase-auth/pkg/postgres"
	"github.com/Astemirdum/firebase-auth/pkg/server"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   server.Config `yaml:"server"`
	Kafka    kafka.Config  `yaml:"kafka"`
	Database postgres.DB   `yaml:"db"`
	Log      logger.Log    `yaml:"log"`
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
