package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Dir is the directory under the user config dir holding config.yaml.
const Dir = "scribe"

// LocalFileNames are searched in the working directory, in order.
var LocalFileNames = []string{".scribe.yaml", ".scribe.yml"}

// FileError reports a configuration file that could not be parsed.
type FileError struct {
	Path    string
	Line    int
	Message string
}

func (e *FileError) Error() string {
	if e.Line > 0 {
		return e.Path + " (line " + strconv.Itoa(e.Line) + "): " + e.Message
	}
	return e.Path + ": " + e.Message
}

// Find returns the first configuration file found in the working directory,
// then in the user config dir. It returns "" when there is none.
func Find() string {
	if cwd, err := os.Getwd(); err == nil {
		for _, name := range LocalFileNames {
			path := filepath.Join(cwd, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, Dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads path over the defaults and validates the result. An empty path
// searches with Find, and loads the defaults when nothing is found.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = Find()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := Parse(data, &cfg); err != nil {
		var fe *FileError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return DefaultConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Keys missing from data keep the values
// already in cfg.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		fe := &FileError{Message: err.Error()}
		var te *yaml.TypeError
		if !errors.As(err, &te) {
			fe.Line = yamlLine(err)
		}
		return fe
	}
	return nil
}

// yamlLine extracts the line number yaml.v3 puts in syntax errors
// ("yaml: line N: ...").
func yamlLine(err error) int {
	const prefix = "yaml: line "
	msg := err.Error()
	if len(msg) <= len(prefix) || msg[:len(prefix)] != prefix {
		return 0
	}
	end := len(prefix)
	for end < len(msg) && msg[end] >= '0' && msg[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(msg[len(prefix):end])
	return n
}
