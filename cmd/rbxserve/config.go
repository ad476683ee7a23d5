package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type serveConfig struct {
	Addr        string
	File        string
	CorsOrigins []string
	LogLevel    string
}

type fileConfig struct {
	Addr        string   `toml:"addr"`
	File        string   `toml:"file"`
	CorsOrigins []string `toml:"cors_origins"`
	LogLevel    string   `toml:"log_level"`
}

func defaultServeConfig() serveConfig {
	return serveConfig{
		Addr:     ":9400",
		LogLevel: "info",
	}
}

func loadServeConfig(path string) (serveConfig, error) {
	cfg := defaultServeConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return serveConfig{}, fmt.Errorf("load serve config: %w", err)
	}

	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("file") {
		cfg.File = strings.TrimSpace(raw.File)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if cfg.Addr == "" {
		return serveConfig{}, fmt.Errorf("serve config missing addr")
	}
	return cfg, nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
