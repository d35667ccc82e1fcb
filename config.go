package main

import (
	"fmt"
	"os"
	"path"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const defaultMount = "/tmp/magician"

type Config struct {
	Mount      string `yaml:"mount"`
	AllowOther bool   `yaml:"allowOther"`
}

// loadConfig reads magician.yaml from the usual places, later files
// overriding earlier ones. The well-known locations are all optional,
// but an explicitly given file has to exist.
func loadConfig(explicit string) (*Config, error) {
	conf := &Config{Mount: defaultMount}

	candidates := []string{"/etc/magician.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, path.Join(dir, "magician.yaml"))
	}
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, path.Join(wd, "magician.yaml"))
	}

	for _, f := range candidates {
		raw, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(raw, conf); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		log.Debugf("Loaded config from %v", f)
	}

	if explicit != "" {
		raw, err := os.ReadFile(explicit)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, conf); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", explicit, err)
		}
	}

	return conf, nil
}
