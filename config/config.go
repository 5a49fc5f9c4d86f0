// Package config resolves the build configuration of an application: the
// `config.toml` file describing the application's identity and the compiled
// icon artifact.
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// BuildConfig is the application configuration.  It is immutable once loaded.
type BuildConfig struct {
	// Name is the display name of the application.
	Name string

	// Icon is the path to the icon source image.  The compiled icon artifact
	// is produced from it by another tool.
	Icon string

	// APILevel is the loader API level the application is built against.
	APILevel uint32

	// ExternalData is the optional path to external data shipped with the
	// application.  It is empty if not specified.
	ExternalData string

	// Dir is the directory containing the config file.  Relative paths in
	// the config are relative to it.
	Dir string
}

// tomlAppFile represents the config file as it is encoded in TOML.
type tomlAppFile struct {
	Config *tomlConfig `toml:"config"`
}

// tomlConfig represents the `[config]` table.
type tomlConfig struct {
	Name         string `toml:"name"`
	Icon         string `toml:"icon"`
	APILevel     uint32 `toml:"api_level"`
	ExternalData string `toml:"external_data,omitempty"`
}

// requiredKeys are the keys that must be present in the `[config]` table.
var requiredKeys = []string{"name", "icon", "api_level"}

// Load loads the build configuration at path.
func Load(path string) (*BuildConfig, error) {
	// open file
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: ConfigMissing, Path: path, Err: err}
	}
	defer f.Close()

	// read and parse the contents
	buff, err := io.ReadAll(f)
	if err != nil {
		return nil, &Error{Kind: ConfigMissing, Path: path, Err: err}
	}

	tree, err := toml.LoadBytes(buff)
	if err != nil {
		return nil, &Error{Kind: ConfigMalformed, Path: path, Err: err}
	}

	if !tree.Has("config") {
		return nil, &Error{Kind: ConfigMalformed, Path: path, Err: errors.New("missing `[config]` table")}
	}

	for _, key := range requiredKeys {
		if !tree.Has("config." + key) {
			return nil, &Error{Kind: ConfigMalformed, Path: path, Err: errors.Errorf("missing key `config.%s`", key)}
		}
	}

	taf := &tomlAppFile{}
	if err := tree.Unmarshal(taf); err != nil {
		return nil, &Error{Kind: ConfigMalformed, Path: path, Err: err}
	}

	cfg := &BuildConfig{
		Name:         taf.Config.Name,
		Icon:         taf.Config.Icon,
		APILevel:     taf.Config.APILevel,
		ExternalData: taf.Config.ExternalData,
		Dir:          filepath.Dir(path),
	}

	log.Debug().
		Str("path", path).
		Str("name", cfg.Name).
		Uint32("api_level", cfg.APILevel).
		Msg("loaded build config")

	return cfg, nil
}

// Resolve makes a path from the config file absolute with respect to the
// directory of the config file.
func (c *BuildConfig) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(c.Dir, p)
}
