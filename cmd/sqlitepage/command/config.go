package command

import (
	"io/ioutil"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config is the optional -config file a command can load.
type Config struct {
	LogLevel logrus.Level `yaml:"log_level"`
	PageSize int          `yaml:"page_size"`
}

func defaultConfig() *Config {
	return &Config{
		LogLevel: logrus.InfoLevel,
		PageSize: 4096,
	}
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(cfg.LogLevel)
	return log
}
