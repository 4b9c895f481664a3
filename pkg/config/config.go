// Package config loads the promptpack profile: the persistent defaults a
// session starts from. Layering, lowest priority first: embedded defaults,
// the user config in XDG_CONFIG_HOME, then a project-local .promptpack.toml
// (or .yaml) in the target directory.
package config

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/filter"
	"github.com/promptpack/promptpack/pkg/logging"
)

//go:embed defaults.toml
var defaultConfig []byte

// Profile is the saved configuration a session starts from. It feeds the
// initial filter configuration; explicit overrides are never persisted.
type Profile struct {
	IncludePatterns []string `koanf:"include_patterns"`
	ExcludePatterns []string `koanf:"exclude_patterns"`
	OutputFormat    string   `koanf:"output_format"`
	Template        string   `koanf:"template"`
	Encoding        string   `koanf:"encoding"`
	ShowHidden      bool     `koanf:"show_hidden"`
}

// FilterConfig builds the initial filter configuration from the profile's
// pattern lists.
func (p *Profile) FilterConfig() *filter.Config {
	cfg := filter.NewConfig()
	cfg.IncludePatterns = append(cfg.IncludePatterns, p.IncludePatterns...)
	cfg.ExcludePatterns = append(cfg.ExcludePatterns, p.ExcludePatterns...)
	return cfg
}

// Load reads the layered configuration for a target root directory.
func Load(root string) (*Profile, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	userConfig := filepath.Join(xdg.ConfigHome, "promptpack", "config.toml")
	if _, err := os.Stat(userConfig); err == nil {
		if err := k.Load(file.Provider(userConfig), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to load user config from %s", userConfig)
		}
		logger.Debug().Str("path", userConfig).Msg("loaded user config")
	}

	// 3. Project-local config, first match wins
	for _, filename := range []string{".promptpack.toml", "promptpack.toml", ".promptpack.yaml", "promptpack.yaml"} {
		path := filepath.Join(root, filename)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var parser koanf.Parser = toml.Parser()
		if filepath.Ext(filename) == ".yaml" {
			parser = yaml.Parser()
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to load project config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("loaded project config")
		break
	}

	var profile Profile
	if err := k.Unmarshal("", &profile); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal config")
	}
	return &profile, nil
}

// rawBytesProvider adapts an embedded byte slice to koanf's Provider
// interface.
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "rawBytesProvider does not support Read")
}
