package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/opendata/monitorinfo"
)

type config struct {
	Format   string
	Variant  monitorinfo.Variant
	Language string
	LogLevel zapcore.Level
}

func defaultConfig() config {
	return config{Format: "json", Variant: monitorinfo.Current, Language: "en", LogLevel: zapcore.WarnLevel}
}

type fileConfig struct {
	Format   string `toml:"format"`
	Variant  string `toml:"variant"`
	Language string `toml:"language"`
	LogLevel string `toml:"log_level"`
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load mxdata config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("load mxdata config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("format") {
		if cfg.Format, err = parseFormat(raw.Format); err != nil {
			return config{}, err
		}
	}
	if meta.IsDefined("variant") {
		if cfg.Variant, err = parseVariant(raw.Variant); err != nil {
			return config{}, err
		}
	}
	if meta.IsDefined("language") {
		cfg.Language = strings.TrimSpace(raw.Language)
	}
	if meta.IsDefined("log_level") {
		lvl, err := zapcore.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return config{}, fmt.Errorf("parse log_level: %w", err)
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "json", "yaml", "jsonschema":
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, yaml or jsonschema)", s)
}

func parseVariant(s string) (monitorinfo.Variant, error) {
	for _, v := range monitorinfo.Variants {
		if strings.EqualFold(strings.TrimSpace(s), v.String()) {
			return v, nil
		}
	}
	return monitorinfo.Current, fmt.Errorf("unknown variant %q (want current or legacy)", s)
}
