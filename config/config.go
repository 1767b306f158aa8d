package config

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

// Config is the top-level configuration for rangewriter.
type Config struct {
	Policy    string           `yaml:"policy"    toml:"policy"`
	Fixed     string           `yaml:"fixed"     toml:"fixed"`
	Overrides []OverrideConfig `yaml:"overrides" toml:"overrides"`
	Exclude   []string         `yaml:"exclude"   toml:"exclude"`
	Maven     MavenConfig      `yaml:"maven"     toml:"maven"`
	Cache     CacheConfig      `yaml:"cache"     toml:"cache"`
}

// OverrideConfig applies a different policy to dependencies whose
// coordinate matches a glob (e.g. "org.apache.*:*").
type OverrideConfig struct {
	Match  string `yaml:"match"  toml:"match"`
	Policy string `yaml:"policy" toml:"policy"`
	Fixed  string `yaml:"fixed"  toml:"fixed"`
}

// MavenConfig points the range command at a Maven repository.
type MavenConfig struct {
	BaseURL string `yaml:"base_url" toml:"base_url"`
}

// CacheConfig enables the shared metadata cache.
type CacheConfig struct {
	RedisURL string `yaml:"redis_url" toml:"redis_url"`
	TTL      string `yaml:"ttl"       toml:"ttl"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses a YAML or TOML configuration file (chosen by
// extension), expanding environment variables.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %q", configPath)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".toml":
		if _, decodeErr := toml.Decode(string(data), &cfg); decodeErr != nil {
			return nil, errors.Wrap(decodeErr, "failed to parse config file")
		}
	default:
		if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
			return nil, errors.Wrap(unmarshalErr, "failed to parse config file")
		}
	}

	cfg.Fixed = expandEnv(cfg.Fixed)
	cfg.Maven.BaseURL = expandEnv(cfg.Maven.BaseURL)
	cfg.Cache.RedisURL = expandEnv(cfg.Cache.RedisURL)
	for i := range cfg.Overrides {
		cfg.Overrides[i].Fixed = expandEnv(cfg.Overrides[i].Fixed)
	}

	if validateErr := validate(&cfg); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// Default returns the settings used when no configuration file exists.
func Default() *Config {
	return &Config{}
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".rangewriter.yaml",
		".rangewriter.yml",
		".rangewriter.toml",
		"rangewriter.yaml",
		"rangewriter.yml",
		"rangewriter.toml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// DefaultPolicy returns the configured session policy, Exact when unset.
func (c *Config) DefaultPolicy() (entities.ConstraintPolicy, error) {
	return entities.ParsePolicy(c.Policy, c.Fixed)
}

// Selector resolves the policy for each dependency: the first override
// whose glob matches the coordinate wins, otherwise fallback applies.
func (c *Config) Selector(fallback entities.ConstraintPolicy) (entities.PolicySelector, error) {
	type rule struct {
		match  string
		policy entities.ConstraintPolicy
	}

	rules := make([]rule, 0, len(c.Overrides))
	for _, override := range c.Overrides {
		policy, err := entities.ParsePolicy(override.Policy, override.Fixed)
		if err != nil {
			return nil, errors.Wrapf(err, "override %q", override.Match)
		}
		rules = append(rules, rule{match: override.Match, policy: policy})
	}

	return func(dep entities.Dependency) entities.ConstraintPolicy {
		coordinate := dep.Coordinate()
		for _, r := range rules {
			if matchGlob(r.match, coordinate) {
				return r.policy
			}
		}
		return fallback
	}, nil
}

// IsExcluded reports whether a coordinate matches any exclude glob.
func (c *Config) IsExcluded(coordinate string) bool {
	for _, pattern := range c.Exclude {
		if matchGlob(pattern, coordinate) {
			return true
		}
	}
	return false
}

// VersionsSource returns where the range command looks up versions.
func (c *Config) VersionsSource() repositories.VersionsSource {
	ttl, _ := time.ParseDuration(c.Cache.TTL)
	return repositories.VersionsSource{
		BaseURL:  c.Maven.BaseURL,
		RedisURL: c.Cache.RedisURL,
		CacheTTL: ttl,
	}
}

func matchGlob(pattern, coordinate string) bool {
	matched, err := path.Match(pattern, coordinate)
	return err == nil && matched
}

// expandEnv expands environment variable references (${VAR}).
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// validate checks policies, globs and durations.
func validate(cfg *Config) error {
	if _, err := cfg.DefaultPolicy(); err != nil {
		return errors.Wrap(err, "invalid policy")
	}

	for i, override := range cfg.Overrides {
		if override.Match == "" {
			return errors.Newf("overrides[%d].match is required", i)
		}
		if _, err := path.Match(override.Match, ""); err != nil {
			return errors.Wrapf(err, "overrides[%d].match %q", i, override.Match)
		}
		if _, err := entities.ParsePolicy(override.Policy, override.Fixed); err != nil {
			return errors.Wrapf(err, "overrides[%d].policy", i)
		}
	}

	for i, pattern := range cfg.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return errors.Wrapf(err, "exclude[%d] %q", i, pattern)
		}
	}

	if cfg.Cache.TTL != "" {
		ttl, err := time.ParseDuration(cfg.Cache.TTL)
		if err != nil {
			return errors.Wrapf(err, "cache.ttl %q", cfg.Cache.TTL)
		}
		if ttl <= 0 {
			return errors.Newf("cache.ttl must be positive, got %q", cfg.Cache.TTL)
		}
	}

	return nil
}
