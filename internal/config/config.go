// Package config loads the read-only snapshot the core treats as an
// external collaborator: bind address, MOTD, max players, the
// status-enabled flag, and the pre-rendered favicon data URL.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds the fields a Config snapshot exposes to the rest of the
// process.
type Server struct {
	IP         string `yaml:"ip"`
	Port       uint16 `yaml:"port"`
	Status     bool   `yaml:"status"`
	Icon       string `yaml:"icon"`
	MOTD       string `yaml:"motd"`
	MaxPlayers uint32 `yaml:"max_players"`
}

// Config is the top-level document read from beacon.yaml.
type Config struct {
	ServerConfig Server `yaml:"server"`

	// Favicon is the base64 PNG data URL rendered from ServerConfig.Icon,
	// populated by Load. Empty if Icon is unset; an unreadable or non-PNG
	// icon makes Load return an error instead.
	Favicon string `yaml:"-"`
}

func defaults() Config {
	return Config{
		ServerConfig: Server{
			IP:         "0.0.0.0",
			Port:       25565,
			Status:     true,
			MOTD:       "A beacon server",
			MaxPlayers: 20,
		},
	}
}

// Load reads and parses the YAML document at path, filling in defaults for
// anything left unset and rendering the favicon if Icon is set.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	cfg := defaults()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.ServerConfig.Icon != "" {
		dataURL, err := loadFavicon(cfg.ServerConfig.Icon)
		if err != nil {
			return nil, fmt.Errorf("config: load icon %s: %w", cfg.ServerConfig.Icon, err)
		}
		cfg.Favicon = dataURL
	}

	return &cfg, nil
}

// Addr is the host:port the listener binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerConfig.IP, c.ServerConfig.Port)
}
