package policy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName is the directory name used under the XDG config home.
const AppName = "htmlwash"

// DefaultPresetFile is the preset file name searched for in the XDG config
// directory.
const DefaultPresetFile = "presets.yaml"

// File is the on-disk preset file layout:
//
//	presets:
//	  docs:
//	    class_names: [sidebar, banner]
//	    attributes: {role: navigation}
type File struct {
	Presets map[string]Policy `yaml:"presets"`
}

// DefaultPresetPath returns the preset file location under the XDG config
// home, e.g. ~/.config/htmlwash/presets.yaml on Linux.
func DefaultPresetPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, DefaultPresetFile)
}

// FindPresetFile returns explicit if it exists, otherwise the default XDG
// path if that exists, otherwise "".
func FindPresetFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	if path := DefaultPresetPath(); fileExists(path) {
		return path
	}
	return ""
}

// LoadPresetFile reads presets from a YAML file. Every preset is validated
// so that a bad selector fails at startup instead of on the first request.
func LoadPresetFile(path string) (Presets, error) {
	data, err := os.ReadFile(path) //nolint:gosec // preset path comes from the operator
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPresetFileNotFound, path)
		}
		return nil, err
	}
	return ParsePresets(data)
}

// ParsePresets decodes a preset file body.
func ParsePresets(data []byte) (Presets, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding presets: %w", err)
	}

	ps := make(Presets, len(f.Presets))
	for name, p := range f.Presets {
		if name == "" {
			return nil, ErrEmptyPresetName
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		ps[name] = p
	}
	return ps, nil
}

// LoadPresets returns the built-in presets overlaid with the preset file
// found by FindPresetFile(explicit), if any. An explicit path that does not
// exist is an error; a missing default file is not.
func LoadPresets(explicit string) (Presets, string, error) {
	path := FindPresetFile(explicit)
	if path == "" {
		if explicit != "" {
			return nil, "", fmt.Errorf("%w: %s", ErrPresetFileNotFound, explicit)
		}
		return Builtin(), "", nil
	}

	fromFile, err := LoadPresetFile(path)
	if err != nil {
		return nil, path, err
	}
	return Builtin().Merge(fromFile), path, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
