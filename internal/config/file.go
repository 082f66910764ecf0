package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// File is the TOML config file. Every value is optional and only replaces
// the built in default, flags still win.
type File struct {
	Play PlayFile `toml:"play"`
}

type PlayFile struct {
	Rate        *float64 `toml:"rate"`
	Offset      *string  `toml:"offset"`
	Delay       *string  `toml:"delay"`
	Tolerance   *string  `toml:"tolerance"`
	WarmUp      *int     `toml:"warm-up"`
	FramePeriod *string  `toml:"frame-period"`
	Keys        *string  `toml:"keys"`
	Database    *string  `toml:"db"`
	MIDI        *string  `toml:"midi"`
	Device      *string  `toml:"device"`
	Serial      *string  `toml:"serial"`
	Baud        *int     `toml:"baud"`
	Log         *string  `toml:"log"`
}

// LoadFile reads the config file, a missing file is not an error.
func LoadFile(path string) (File, error) {
	if path == "" {
		return File{}, errors.New("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, errors.Wrap(err, "failed to stat config")
	}
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, errors.Wrap(err, "failed to decode config")
	}
	return f, nil
}
