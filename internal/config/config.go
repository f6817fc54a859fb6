// Package config loads the regexnfa server settings.
//
// Settings come from, lowest precedence first: built-in defaults, an
// optional YAML file, an optional dotenv file and the process environment.
// Environment variables are named REGEXNFA_<KEY> with the YAML key upper-cased.
package config

import (
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const envPrefix = "REGEXNFA_"

type Config struct {
	Addr            string        `yaml:"addr"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	MaxRegexLength  int           `yaml:"max_regex_length"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func Default() Config {
	return Config{
		Addr:            ":5000",
		LogLevel:        "info",
		LogFormat:       "text",
		MaxRegexLength:  10000,
		MaxBodyBytes:    1 << 20,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load builds a Config. Either path may be empty; a missing dotenv file is
// not an error, a missing YAML file is.
func Load(path, envFile string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "reading config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "parsing config %s", path)
		}
	}

	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case !errors.Is(err, fs.ErrNotExist):
			return Config{}, errors.Wrapf(err, "reading env file %s", envFile)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			return v, true
		}
		v, ok := dotenv[envPrefix+key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("ADDR"); ok {
		c.Addr = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		c.LogFormat = v
	}
	if v, ok := lookup("MAX_REGEX_LENGTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, envPrefix+"MAX_REGEX_LENGTH")
		}
		c.MaxRegexLength = n
	}
	if v, ok := lookup("MAX_BODY_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, envPrefix+"MAX_BODY_BYTES")
		}
		c.MaxBodyBytes = n
	}
	for key, dst := range map[string]*time.Duration{
		"READ_TIMEOUT":     &c.ReadTimeout,
		"WRITE_TIMEOUT":    &c.WriteTimeout,
		"SHUTDOWN_TIMEOUT": &c.ShutdownTimeout,
	} {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, envPrefix+key)
		}
		*dst = d
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return errors.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if c.MaxRegexLength <= 0 {
		return errors.Errorf("max_regex_length must be positive, got %d", c.MaxRegexLength)
	}
	if c.MaxBodyBytes <= 0 {
		return errors.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.ShutdownTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// NewLogger returns a logger writing to out at the configured level and
// format.
func (c Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log_level")
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	if strings.EqualFold(c.LogFormat, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}
