package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fremantleline/fremantleline/pkg/fetcher"
	"github.com/fremantleline/fremantleline/pkg/transperth"
	"github.com/fremantleline/fremantleline/pkg/util"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Operator OperatorConfig `yaml:"operator"`
	HTTP     HTTPConfig     `yaml:"http"`
}

type OperatorConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type HTTPConfig struct {
	UserAgent     string        `yaml:"useragent"`
	Timeout       time.Duration `yaml:"timeout"`
	Retries       uint64        `yaml:"retries"`
	RetryInterval time.Duration `yaml:"retryinterval"`
}

func Default() *Config {
	return &Config{
		Operator: OperatorConfig{
			Name: transperth.OperatorName,
			URL:  transperth.OperatorURL,
		},
		HTTP: HTTPConfig{
			UserAgent:     fetcher.DefaultUserAgent,
			Timeout:       fetcher.DefaultTimeout,
			RetryInterval: fetcher.DefaultRetryInterval,
		},
	}
}

// Load starts from the defaults, applies the YAML file at path (if any) and
// then any FREMANTLELINE_ environment variables.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		log.Debug().Str("path", path).Msg("Loading config file")

		configYaml, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		decoder := yaml.NewDecoder(bytes.NewReader(configYaml))
		decoder.KnownFields(true)

		if err := decoder.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if err := config.applyEnvironment(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyEnvironment() error {
	c.Operator.Name = util.GetEnvironmentVariable("OPERATOR_NAME", c.Operator.Name)
	c.Operator.URL = util.GetEnvironmentVariable("OPERATOR_URL", c.Operator.URL)
	c.HTTP.UserAgent = util.GetEnvironmentVariable("USER_AGENT", c.HTTP.UserAgent)

	if value := util.GetEnvironmentVariable("HTTP_TIMEOUT", ""); value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %sHTTP_TIMEOUT: %w", util.EnvironmentPrefix, err)
		}
		c.HTTP.Timeout = timeout
	}

	if value := util.GetEnvironmentVariable("HTTP_RETRIES", ""); value != "" {
		retries, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sHTTP_RETRIES: %w", util.EnvironmentPrefix, err)
		}
		c.HTTP.Retries = retries
	}

	return nil
}

func (c *Config) FetcherOptions() fetcher.Options {
	return fetcher.Options{
		UserAgent:     c.HTTP.UserAgent,
		Timeout:       c.HTTP.Timeout,
		Retries:       c.HTTP.Retries,
		RetryInterval: c.HTTP.RetryInterval,
	}
}

// NewOperator builds the configured operator with an HTTP fetcher.
func (c *Config) NewOperator() *transperth.Operator {
	return transperth.NewOperator(c.Operator.Name, c.Operator.URL, fetcher.NewHTTPFetcher(c.FetcherOptions()))
}
