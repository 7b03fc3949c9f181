package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type config struct {
	Input  string
	Output string
	Check  bool
}

type fileConfig struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
	Check  bool   `toml:"check"`
}

func defaultConfig() config {
	return config{Input: "-", Output: "-"}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load m3u8fmt config: %w", err)
	}

	if meta.IsDefined("input") {
		if input := strings.TrimSpace(raw.Input); input != "" {
			cfg.Input = input
		}
	}

	if meta.IsDefined("output") {
		if output := strings.TrimSpace(raw.Output); output != "" {
			cfg.Output = output
		}
	}

	if meta.IsDefined("check") {
		cfg.Check = raw.Check
	}

	return cfg, nil
}
