package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/chargewise/chargewise/connectors/tomtom"
	coremetrics "github.com/chargewise/chargewise/core/metrics"
	"github.com/chargewise/chargewise/infra/mqtt"
)

type Config struct {
	Server  ServerConfig       `json:"server"`
	Scoring ScoringConfig      `json:"scoring"`
	Metrics coremetrics.Config `json:"metrics"`
	History HistoryConfig      `json:"history"`
	MQTT    mqtt.Config        `json:"mqtt"`
	TomTom  tomtom.Config      `json:"tomtom"`
}

// Load reads the configuration file at path, applying CW_-prefixed
// environment overrides (CW_SERVER__ADDR=... maps to server.addr).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("CW_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "cw_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Scoring.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.History.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.TomTom.SetDefaults()
	if err := cfg.History.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
