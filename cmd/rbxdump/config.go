package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type dumpConfig struct {
	TypeFilter     string
	ShowProperties bool
	MaxInstances   int
	LogLevel       string
}

type fileConfig struct {
	TypeFilter     string `toml:"type_filter"`
	ShowProperties bool   `toml:"show_properties"`
	MaxInstances   int    `toml:"max_instances"`
	LogLevel       string `toml:"log_level"`
}

func defaultDumpConfig() dumpConfig {
	return dumpConfig{
		LogLevel: "warn",
	}
}

func loadDumpConfig(path string) (dumpConfig, error) {
	cfg := defaultDumpConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return dumpConfig{}, fmt.Errorf("load dump config: %w", err)
	}

	if meta.IsDefined("type_filter") {
		cfg.TypeFilter = strings.TrimSpace(raw.TypeFilter)
	}
	if meta.IsDefined("show_properties") {
		cfg.ShowProperties = raw.ShowProperties
	}
	if meta.IsDefined("max_instances") {
		if raw.MaxInstances < 0 {
			return dumpConfig{}, fmt.Errorf("max_instances must be >= 0")
		}
		cfg.MaxInstances = raw.MaxInstances
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	return cfg, nil
}
