package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/edge-crawler/toml"
)

// EnvPrefix marks environment keys that override options
// EDGECRAWL_COLLIDE_DISTANCE sets collide_distance; EDGECRAWL_HOST_LISTEN sets [host] listen
const EnvPrefix = "EDGECRAWL_"

// LoadEnv overlays EDGECRAWL_* keys from the dotenv files, then from the process
// environment, onto o; missing files are skipped
func LoadEnv(o *Options, files ...string) error {
	vars := make(map[string]string)
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("read env file %s: %w", f, err)
		}
		maps.Copy(vars, m)
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			vars[k] = v
		}
	}
	return o.ApplyEnv(vars)
}

// ApplyEnv overlays prefixed keys from vars onto o
// Values are read as config literals; anything unparsable is taken as a plain string
func (o *Options) ApplyEnv(vars map[string]string) error {
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		name, ok := strings.CutPrefix(k, EnvPrefix)
		if !ok {
			continue
		}
		tree := envTree(strings.ToLower(name))
		raw := vars[k]

		v, err := toml.ParseValue(raw)
		if err != nil {
			v = raw
		}
		if err := toml.Decode(tree(v), o); err != nil {
			// A numeric literal may still target a string option
			if _, isString := v.(string); isString {
				return fmt.Errorf("env %s: %w", k, err)
			}
			if err := toml.Decode(tree(raw), o); err != nil {
				return fmt.Errorf("env %s: %w", k, err)
			}
		}
	}
	return nil
}

// envTree builds the nested map for a lowercased key; host_* keys land in [host]
func envTree(key string) func(v any) map[string]any {
	if sub, ok := strings.CutPrefix(key, "host_"); ok {
		return func(v any) map[string]any {
			return map[string]any{"host": map[string]any{sub: v}}
		}
	}
	return func(v any) map[string]any {
		return map[string]any{key: v}
	}
}

// Resolve loads path over the defaults and overlays the environment
// An empty path skips the file; an empty envFile reads only the process environment
func Resolve(path, envFile string) (Options, error) {
	opts, err := Load(path)
	if err != nil {
		return opts, err
	}
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	if err := LoadEnv(&opts, files...); err != nil {
		return opts, err
	}
	return opts, nil
}
