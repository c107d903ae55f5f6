package config

import (
	"github.com/spf13/viper"

	"github.com/salespress/salespress/internal/dataset"
	"github.com/salespress/salespress/internal/report"
)

// LoadGeneratorConfig loads synthetic dataset settings from Viper.
// It follows this precedence:
// 1. Viper configuration (from flags, config file, or SALESPRESS_ env vars)
// 2. Default values
func LoadGeneratorConfig() (dataset.GeneratorConfig, error) {
	cfg := dataset.DefaultGeneratorConfig()

	if v := viper.GetInt("generate.records"); v > 0 {
		cfg.Records = v
	}
	if v := viper.GetInt64("generate.seed"); v != 0 {
		cfg.Seed = v
	}
	if v := viper.GetInt("generate.year"); v > 0 {
		cfg.Year = v
	}

	if err := cfg.Validate(); err != nil {
		return dataset.GeneratorConfig{}, err
	}
	return cfg, nil
}

// LoadReportConfig loads report settings from Viper with the same
// precedence as LoadGeneratorConfig. Paths are expanded.
func LoadReportConfig() (report.Config, error) {
	cfg := report.DefaultConfig()

	if v := viper.GetString("report.output"); v != "" {
		cfg.OutputPath = ExpandPath(v)
	}
	if v := viper.GetString("report.workbook"); v != "" {
		cfg.Workbook = ExpandPath(v)
	}
	if v := viper.GetString("report.title"); v != "" {
		cfg.Title = v
	}
	if v := viper.GetString("report.author"); v != "" {
		cfg.Author = v
	}
	if v := viper.GetInt("report.top"); v > 0 {
		cfg.TopProducts = v
	}

	if err := cfg.Validate(); err != nil {
		return report.Config{}, err
	}
	return cfg, nil
}
