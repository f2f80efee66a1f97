// Package config loads cgraph.toml files.
//
// A file seeds a type lattice, selects a matching configuration and defines
// named graph fixtures for the command-line tool:
//
//	[log]
//	level = "debug"
//
//	[lattice]
//	universal = "Entity"
//	types = [
//	    { label = "Animal" },
//	    { label = "Cat", parents = ["Animal"] },
//	]
//
//	[match]
//	preset = "projection"
//	max_results = 10
//
//	[graphs.query]
//	concepts = [{ id = "a", type = "Animal" }]
//
// Fixtures are a convenience for exercising the matcher and are not meant as
// a general graph notation.
package config

import (
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/cgraph/pkg/errors"
)

// EnvPath names the environment variable that overrides the default path.
const EnvPath = "CGRAPH_CONFIG"

// DefaultFile is the file looked up when no path is given.
const DefaultFile = "cgraph.toml"

// File is a decoded configuration file.
type File struct {
	Log     LogSection              `toml:"log"`
	Lattice LatticeSection          `toml:"lattice"`
	Match   MatchSection            `toml:"match"`
	Graphs  map[string]GraphSection `toml:"graphs"`
}

// LogSection configures the CLI logger.
type LogSection struct {
	Level string `toml:"level"`
}

// DefaultPath returns $CGRAPH_CONFIG if set, DefaultFile otherwise.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultFile
}

// Load reads and decodes the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes a configuration document. Unknown keys are rejected so that
// typos in selector names do not go unnoticed.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

// LogLevel returns the configured log level, or fallback when unset.
func (f *File) LogLevel(fallback log.Level) (log.Level, error) {
	if f.Log.Level == "" {
		return fallback, nil
	}
	level, err := log.ParseLevel(f.Log.Level)
	if err != nil {
		return fallback, errors.Wrap(errors.ErrCodeInvalidInput, err, "log level")
	}
	return level, nil
}

// GraphNames returns the fixture names in sorted order.
func (f *File) GraphNames() []string {
	names := make([]string, 0, len(f.Graphs))
	for name := range f.Graphs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
