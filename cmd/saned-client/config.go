package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the saned-client CLI's configuration file format. The library
// in pkg/sane takes no configuration of its own (spec §6: "No
// configuration files; no environment variables are read by the core");
// this is ambient CLI-layer config only, loaded the way the teacher
// project's internal/config.go loads its own YAML file.
type Config struct {
	Daemon struct {
		Address string `yaml:"address"`
	} `yaml:"daemon"`

	Device      string        `yaml:"device"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	Fwmark      uint32        `yaml:"fwmark"` // 0 = disabled, Linux only

	Output struct {
		Path string `yaml:"path"`
	} `yaml:"output"`
}

// LoadConfig loads and defaults a Config from a YAML file at path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	if c.Daemon.Address == "" {
		c.Daemon.Address = "localhost:6566"
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 10 * time.Second
	}
	if c.Output.Path == "" {
		c.Output.Path = "scan.pnm"
	}
	return &c, nil
}
