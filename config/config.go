package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/arunsworld/farefinder"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	API    APIConfig    `yaml:"api"`
	Search SearchConfig `yaml:"search"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type APIConfig struct {
	AirportsURL    string `yaml:"airports_url"`
	FaresURL       string `yaml:"fares_url"`
	UserAgent      string `yaml:"user_agent"`
	Language       string `yaml:"language"`
	Market         string `yaml:"market"`
	Currency       string `yaml:"currency"`
	CurrencySymbol string `yaml:"currency_symbol"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type SearchConfig struct {
	HorizonDays     int      `yaml:"horizon_days"`
	DefaultSpanDays int      `yaml:"default_span_days"`
	DefaultDays     []string `yaml:"default_days"`
	Timezone        string   `yaml:"timezone"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{Port: 4934},
		API: APIConfig{
			AirportsURL:    farefinder.AirportsAPI,
			FaresURL:       farefinder.FaresAPI,
			UserAgent:      farefinder.DefaultUserAgent,
			Language:       farefinder.DefaultLanguage,
			Market:         farefinder.DefaultMarket,
			Currency:       farefinder.DefaultCurrency,
			CurrencySymbol: "€",
			TimeoutSeconds: 30,
		},
		Search: SearchConfig{
			HorizonDays:     180,
			DefaultSpanDays: 30,
			DefaultDays:     []string{"Friday"},
			Timezone:        "Local",
		},
	}
}

// LoadConfig overlays the YAML file at path on the defaults. An empty path
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port %d out of range", c.HTTP.Port))
	}
	if c.API.AirportsURL == "" {
		errs = append(errs, errors.New("api.airports_url is required"))
	}
	if c.API.FaresURL == "" {
		errs = append(errs, errors.New("api.fares_url is required"))
	}
	if c.API.TimeoutSeconds < 0 {
		errs = append(errs, errors.New("api.timeout_seconds must not be negative"))
	}
	if c.Search.HorizonDays < 1 {
		errs = append(errs, errors.New("search.horizon_days must be at least 1"))
	}
	if c.Search.DefaultSpanDays < 0 {
		errs = append(errs, errors.New("search.default_span_days must not be negative"))
	}
	if _, err := farefinder.ParseWeekdays(c.Search.DefaultDays); err != nil {
		errs = append(errs, fmt.Errorf("search.default_days: %w", err))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Search.Timezone)
	if err != nil {
		return nil, fmt.Errorf("search.timezone %q: %w", c.Search.Timezone, err)
	}
	return loc, nil
}

func (c *Config) DefaultDays() []time.Weekday {
	days, err := farefinder.ParseWeekdays(c.Search.DefaultDays)
	if err != nil {
		return nil
	}
	return days
}

func (c *Config) FinderOptions() farefinder.Options {
	return farefinder.Options{
		AirportsURL: c.API.AirportsURL,
		FaresURL:    c.API.FaresURL,
		UserAgent:   c.API.UserAgent,
		Language:    c.API.Language,
		Market:      c.API.Market,
		Currency:    c.API.Currency,
		Timeout:     time.Duration(c.API.TimeoutSeconds) * time.Second,
	}
}
