package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix        = "APP_"
	defaultConfigDir = "configs"
	listSeparator    = ","
)

// listKeys are the keys whose environment values are split on commas.
var listKeys = map[string]bool{
	"cors.allowed_origins": true,
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	configDir string
}

// WithConfigDir sets the directory holding base.yaml and the profile files.
// Defaults to "configs" relative to the working directory.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) {
		o.configDir = dir
	}
}

// layer is one source in the precedence chain.
type layer struct {
	name string
	load func(k *koanf.Koanf) error
}

// Load builds the configuration for profile. Later layers win:
//
//	defaults → {configDir}/base.yaml → {configDir}/{profile}.yaml → APP_* env
//
// Env names map onto existing keys, so underscores inside a key survive:
//
//	APP_STORE_DSN                  -> store.dsn
//	APP_SERVER_REQUEST_TIMEOUT     -> server.request_timeout
//	APP_STORE_BREAKER_MAX_FAILURES -> store.breaker.max_failures
//	APP_CORS_ALLOWED_ORIGINS=a,b   -> cors.allowed_origins [a b]
//
// The result is validated before it is returned.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	o := &loadOptions{configDir: defaultConfigDir}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")
	for _, l := range layers(o.configDir, profile) {
		if err := l.load(k); err != nil {
			return nil, fmt.Errorf("loading %s: %w", l.name, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func layers(dir, profile string) []layer {
	yamlFile := func(path string) layer {
		return layer{
			name: path,
			load: func(k *koanf.Koanf) error {
				return k.Load(file.Provider(path), yaml.Parser())
			},
		}
	}

	return []layer{
		{
			// Every known key exists after this layer, which is what makes
			// it addressable from the environment.
			name: "defaults",
			load: func(k *koanf.Koanf) error {
				return k.Load(confmap.Provider(defaults(), "."), nil)
			},
		},
		yamlFile(filepath.Join(dir, "base.yaml")),
		yamlFile(filepath.Join(dir, profile+".yaml")),
		{
			name: "environment",
			load: func(k *koanf.Koanf) error {
				return k.Load(env.Provider(".", env.Opt{
					Prefix:        envPrefix,
					TransformFunc: envTransform(buildEnvLookup(k.Keys())),
				}), nil)
			},
		},
	}
}

// envTransform resolves APP_FOO_BAR_BAZ against the known keys. Unknown
// names fall back to splitting on every underscore.
func envTransform(lookup map[string]string) func(key, value string) (string, any) {
	return func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

		koanfKey, ok := lookup[key]
		if !ok {
			koanfKey = strings.ReplaceAll(key, "_", ".")
		}

		if listKeys[koanfKey] {
			return koanfKey, splitList(value)
		}
		return koanfKey, value
	}
}

func splitList(value string) []string {
	out := []string{}
	for item := range strings.SplitSeq(value, listSeparator) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// validateProfile rejects empty names and anything that could escape the
// config directory.
func validateProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`):
		return fmt.Errorf("profile must not contain path separators, got %q", profile)
	case strings.Contains(profile, ".."):
		return fmt.Errorf("profile must not contain path traversal, got %q", profile)
	}
	return nil
}

// buildEnvLookup maps the env form of every key ("store_breaker_timeout") to
// the key itself ("store.breaker.timeout").
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		lookup[strings.ReplaceAll(key, ".", "_")] = key
	}
	return lookup
}
