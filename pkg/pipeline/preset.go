package pipeline

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadPreset reads pipeline options from a TOML preset file. Fields absent
// from the file keep their zero value, so callers can layer CLI flags on top
// before validating.
//
// A minimal preset:
//
//	width = 64
//	height = 64
//	nodes = 300
//	steps = 1000
//	formats = ["svg", "png"]
func LoadPreset(path string) (Options, error) {
	var opts Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read preset: %w", err)
	}
	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return opts, nil
}
