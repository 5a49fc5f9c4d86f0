package config

import (
	"os"
	"path/filepath"

	"eadkc/common"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// DefaultAPILevel is the API level written into newly created configs.
const DefaultAPILevel uint32 = 0

// DefaultIconSource is the icon source path written into newly created
// configs.
const DefaultIconSource = "icon.png"

// Init creates a new config file for an application with the given name in
// dir.  It returns the path to the created file.
func Init(dir, name string) (string, error) {
	cfgPath := filepath.Join(dir, common.ConfigFileName)

	// check to see if a config already exists
	_, err := os.Stat(cfgPath)
	if err == nil {
		return "", &Error{Kind: ConfigExists, Path: cfgPath}
	}

	if !os.IsNotExist(err) {
		return "", &Error{Kind: ConfigMissing, Path: cfgPath, Err: err}
	}

	taf := &tomlAppFile{
		Config: &tomlConfig{
			Name:     name,
			Icon:     DefaultIconSource,
			APILevel: DefaultAPILevel,
		},
	}

	// encode and save config to file
	f, err := os.Create(cfgPath)
	if err != nil {
		return "", errors.Wrap(err, "error creating config file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(taf); err != nil {
		return "", errors.Wrap(err, "error encoding TOML")
	}

	return cfgPath, nil
}
