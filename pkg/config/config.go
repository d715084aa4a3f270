package config

import (
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/formats"
	"github.com/arthur-debert/mkprojectdir/pkg/logging"
	"github.com/arthur-debert/mkprojectdir/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables read into the configuration
const EnvPrefix = "MKPROJECTDIR_"

// Config is the merged configuration
type Config struct {
	// TemplatesDir overrides the template store location
	TemplatesDir string `koanf:"templates_dir" toml:"templates_dir"`

	Save      Save                `koanf:"save" toml:"save"`
	Prompt    Prompt              `koanf:"prompt" toml:"prompt"`
	Formats   map[string][]string `koanf:"formats" toml:"formats"`
	Variables map[string]string   `koanf:"variables" toml:"variables"`
}

// Save configures 'mkprojectdir save'
type Save struct {
	Ignore []string `koanf:"ignore" toml:"ignore"`
}

// Prompt configures how missing values are asked for
type Prompt struct {
	Interactive bool `koanf:"interactive" toml:"interactive"`
}

// LoadOptions selects the sources to merge
type LoadOptions struct {
	// ConfigFile is the user config file. Empty means config.toml in the
	// config directory; a missing file is not an error.
	ConfigFile string
	// Overrides are applied last, keyed with "." between table and key
	Overrides map[string]interface{}
}

// Load merges defaults, the config file, environment and overrides
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	configFile := opts.ConfigFile
	if configFile == "" {
		p, err := paths.New("")
		if err != nil {
			return nil, err
		}
		configFile = p.ConfigFilePath()
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configFile).
				WithDetail(errors.DetailPath, configFile)
		}
		logger.Debug().Str("path", configFile).Msg("Loaded config file")
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config %s", configFile)
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envKey maps MKPROJECTDIR_PROMPT__INTERACTIVE to prompt.interactive.
// Variable names are case sensitive, so MKPROJECTDIR_VARIABLES__Author maps
// to variables.Author.
func envKey(s string) string {
	parts := strings.Split(strings.TrimPrefix(s, EnvPrefix), "__")
	parts[0] = strings.ToLower(parts[0])
	if parts[0] != "variables" {
		for i := range parts {
			parts[i] = strings.ToLower(parts[i])
		}
	}
	return strings.Join(parts, ".")
}

// Validate checks values koanf cannot type-check
func (c *Config) Validate() error {
	families := make([]string, 0, len(c.Formats))
	for family := range c.Formats {
		families = append(families, family)
	}
	sort.Strings(families)

	for _, family := range families {
		if _, err := formats.ParseFamily(family); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "invalid [formats] entry %q", family)
		}
	}
	for _, pattern := range c.Save.Ignore {
		if strings.TrimSpace(pattern) == "" {
			return errors.New(errors.ErrConfigParse, "empty pattern in save.ignore")
		}
	}
	return nil
}

// FormatsTable returns the default format table with the configured
// extensions applied
func (c *Config) FormatsTable() (*formats.Table, error) {
	table, err := formats.DefaultTable().With(c.Formats)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid [formats] section")
	}
	return table, nil
}

// Paths resolves locations with the configured template store
func (c *Config) Paths() (paths.Paths, error) {
	return paths.New(c.TemplatesDir)
}
