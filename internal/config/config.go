package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Sheet struct {
		CSVURL  string `yaml:"csv_url"`
		CSVPath string `yaml:"csv_path"`
	} `yaml:"sheet"`
	Email struct {
		From     string `yaml:"from"`
		To       string `yaml:"to"`
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port"`
		SMTPUser string `yaml:"smtp_user"`
		SMTPPass string `yaml:"smtp_pass"`
	} `yaml:"email"`
	OpenAI struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`
	News struct {
		MarketAuxAPIKey string `yaml:"marketaux_api_key"`
		MaxPerSource    int    `yaml:"max_per_source"`
	} `yaml:"news"`
	Rebalance struct {
		Enabled         bool    `yaml:"enabled"`
		MinTradeValue   float64 `yaml:"min_trade_value"`
		MaxDeviation    float64 `yaml:"max_deviation"`
		WeightTolerance float64 `yaml:"weight_tolerance"`
	} `yaml:"rebalance"`
	Analysis struct {
		RSIPeriod        int `yaml:"rsi_period"`
		VolatilityWindow int `yaml:"volatility_window"`
		HistoryDays      int `yaml:"history_days"`
	} `yaml:"analysis"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
		SendTZ    string `yaml:"send_tz"`
		SendAfter string `yaml:"send_after"` // HH:MM, local to SendTZ
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Booleans default to true before unmarshal so an absent key keeps the default.
	cfg.Rebalance.Enabled = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SHEET_CSV_URL"); v != "" {
		cfg.Sheet.CSVURL = v
	}
	if v := os.Getenv("SHEET_CSV_PATH"); v != "" {
		cfg.Sheet.CSVPath = v
	}
	if v := os.Getenv("FROM_EMAIL"); v != "" {
		cfg.Email.From = v
	}
	if v := os.Getenv("TO_EMAIL"); v != "" {
		cfg.Email.To = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Email.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = port
		}
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.Email.SMTPUser = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		cfg.Email.SMTPPass = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("MARKETAUX_API_KEY"); v != "" {
		cfg.News.MarketAuxAPIKey = v
	}
	if v := os.Getenv("ENABLE_REBALANCING"); v != "" {
		cfg.Rebalance.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("MIN_TRADE_VALUE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Rebalance.MinTradeValue = f
		}
	}
	if v := os.Getenv("MAX_DEVIATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Rebalance.MaxDeviation = f
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SEND_LOCAL_TZ"); v != "" {
		cfg.Schedule.SendTZ = v
	}
	if v := os.Getenv("SEND_AT_HHMM"); v != "" {
		cfg.Schedule.SendAfter = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Email.SMTPHost == "" {
		cfg.Email.SMTPHost = "smtp.gmail.com"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.SMTPUser == "" {
		cfg.Email.SMTPUser = cfg.Email.From
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.News.MaxPerSource == 0 {
		cfg.News.MaxPerSource = 3
	}
	if cfg.Rebalance.MinTradeValue == 0 {
		cfg.Rebalance.MinTradeValue = 100
	}
	if cfg.Rebalance.MaxDeviation == 0 {
		cfg.Rebalance.MaxDeviation = 5
	}
	if cfg.Rebalance.WeightTolerance == 0 {
		cfg.Rebalance.WeightTolerance = 0.5
	}
	if cfg.Analysis.RSIPeriod == 0 {
		cfg.Analysis.RSIPeriod = 14
	}
	if cfg.Analysis.VolatilityWindow == 0 {
		cfg.Analysis.VolatilityWindow = 30
	}
	if cfg.Analysis.HistoryDays == 0 {
		cfg.Analysis.HistoryDays = 365
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 45 8 * * 1-5"
	}
	if cfg.Schedule.SendTZ == "" {
		cfg.Schedule.SendTZ = "America/Lima"
	}
	if cfg.Schedule.SendAfter == "" {
		cfg.Schedule.SendAfter = "08:45"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Sheet.CSVURL == "" && c.Sheet.CSVPath == "" {
		return fmt.Errorf("sheet.csv_url or sheet.csv_path is required")
	}
	if c.Email.From == "" {
		return fmt.Errorf("email.from is required")
	}
	if c.Email.To == "" {
		return fmt.Errorf("email.to is required")
	}
	if c.Email.SMTPPass == "" {
		return fmt.Errorf("email.smtp_pass is required")
	}
	return nil
}

// SheetSource returns the configured holdings source, preferring the URL.
func (c *Config) SheetSource() string {
	if c.Sheet.CSVURL != "" {
		return c.Sheet.CSVURL
	}
	return c.Sheet.CSVPath
}
