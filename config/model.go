package config

import (
	"os"
	"path/filepath"
)

const (
	SourceRadarRelay  = "RadarRelay"
	SourceDDEX        = "DDEX"
	SourceBambooRelay = "BambooRelay"
)

const (
	defaultTokenFile = "wallet/ethereum/erc20_tokens.json"
	defaultTimeout   = 5
)

// Sources are merged in this order, earlier ones win on symbol collisions.
func defaultSources() []string {
	return []string{SourceRadarRelay, SourceDDEX, SourceBambooRelay}
}

type Config struct {
	TokenFile string   `mapstructure:"token-file"`
	Timeout   int      `mapstructure:"timeout"`
	Proxy     string   `mapstructure:"proxy"`
	Debug     bool     `mapstructure:"debug"`
	MaxPages  int      `mapstructure:"max-pages"`
	Sources   []string `mapstructure:"sources"`
	DryRun    bool     `mapstructure:"dry-run"`
	Report    bool     `mapstructure:"report"`

	ListSources bool `mapstructure:"list-sources"`
}

func Default() *Config {
	return &Config{
		TokenFile: defaultTokenFile,
		Timeout:   defaultTimeout,
		Sources:   defaultSources(),
	}
}

// TokenFilePath resolves a relative token file against the directory of
// the running executable.
func (c *Config) TokenFilePath() string {
	if filepath.IsAbs(c.TokenFile) {
		return c.TokenFile
	}
	exe, err := os.Executable()
	if err != nil {
		return c.TokenFile
	}
	return filepath.Join(filepath.Dir(exe), c.TokenFile)
}
