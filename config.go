package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config seeds the engine state and server settings. All fields are
// optional; the zero config yields a two-deck engine on the default port.
type Config struct {
	Port     int           `yaml:"port"`
	Channels int           `yaml:"channels"`
	Controls []SeedControl `yaml:"controls"`
	Tracks   []SeedTrack   `yaml:"tracks"`
}

// SeedControl declares an extra control beyond the standard deck set.
type SeedControl struct {
	Group string  `yaml:"group"`
	Item  string  `yaml:"item"`
	Value float64 `yaml:"value"`
}

// SeedTrack pre-loads a track into a player group at startup.
type SeedTrack struct {
	Group string `yaml:"group"`
	Track Track  `yaml:"track"`
}

func defaultConfig() Config {
	return Config{Port: DefaultPort, Channels: 2}
}

// loadConfig reads a YAML config file. An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		cfg.Port = DefaultPort
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 2
	}
	return cfg, nil
}

// applyEnv lets the environment override file settings. MIXXXD_PORT wins
// over the config file but loses to an explicit --port flag.
func applyEnv(cfg *Config) {
	if raw := os.Getenv("MIXXXD_PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 && port <= 65535 {
			cfg.Port = port
		}
	}
}

// buildEngine creates the engine state a config describes.
func buildEngine(cfg Config) *EngineState {
	engine := NewEngineState(cfg.Channels)
	for _, c := range cfg.Controls {
		engine.AddControl(c.Group, c.Item, c.Value)
	}
	for _, t := range cfg.Tracks {
		engine.LoadTrack(t.Group, t.Track)
	}
	return engine
}
