package cli

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/jleen/supriya/internal/generator"
	"github.com/jleen/supriya/internal/validator"
)

const (
	defaultConfigFile = ".stubgen.yml"
	defaultDir        = "supriya/ugens"
)

// Config holds the resolved settings shared by every command.
type Config struct {
	Dir     string   `yaml:"dir" validate:"required"`
	Exclude []string `yaml:"exclude" validate:"dive,stem"`
}

// fileConfig mirrors the .stubgen.yml layout.
type fileConfig struct {
	Stubs struct {
		Dir     string   `yaml:"dir"`
		Exclude []string `yaml:"exclude"`
	} `yaml:"stubs"`
}

// resolve layers configuration: flag values win over the config file, and
// the config file wins over built-in defaults. path names an explicit
// config file and must exist; empty means the default file, which may be
// absent.
func (c *Config) resolve(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return errors.Wrapf(err, "parsing config %s", path)
		}
		if c.Dir == "" {
			c.Dir = fc.Stubs.Dir
		}
		if c.Exclude == nil {
			c.Exclude = fc.Stubs.Exclude
		}
	case explicit || !os.IsNotExist(err):
		return errors.Wrap(err, "reading config")
	}

	if c.Dir == "" {
		c.Dir = defaultDir
	}
	if c.Exclude == nil {
		c.Exclude = generator.DefaultExcludes
	}
	return validator.Struct(*c)
}
