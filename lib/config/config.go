// Package config handles swig.toml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/minimact/swig-sub001/lib/manifest"
)

// FileName is the name of the configuration file.
const FileName = "swig.toml"

// Config represents a swig.toml project configuration.
type Config struct {
	Project  Project  `toml:"project"`
	Source   Source   `toml:"source"`
	Output   Output   `toml:"output"`
	Compiler Compiler `toml:"compiler"`

	// Dir is the directory containing the swig.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name      string `toml:"name"`
	Namespace string `toml:"namespace"`
}

// Source configures where component ASTs are found.
type Source struct {
	Dirs []string `toml:"dirs"`
}

// Output configures generated files.
type Output struct {
	// Dir receives generated files. Empty writes them next to the source.
	Dir            string `toml:"dir"`
	ManifestFormat string `toml:"manifest_format"`
}

// Compiler configures component compilation.
type Compiler struct {
	FrameworkModules []string `toml:"framework_modules"`
	EventParams      []string `toml:"event_params"`
	StrictHooks      bool     `toml:"strict_hooks"`
	Parallelism      int      `toml:"parallelism"`
}

// Default returns the configuration used when no swig.toml exists.
func Default(dir string) *Config {
	c := &Config{Dir: dir}
	c.applyDefaults()
	return c
}

// Load parses a swig.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	c.applyDefaults()

	if _, err := manifest.ParseFormat(c.Output.ManifestFormat); err != nil {
		return nil, fmt.Errorf("%s: output.manifest_format: %w", path, err)
	}
	if c.Compiler.Parallelism < 0 {
		return nil, fmt.Errorf("%s: compiler.parallelism must not be negative", path)
	}
	return &c, nil
}

// FindAndLoad walks up from startDir to find a swig.toml file, then loads
// and returns it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func (c *Config) applyDefaults() {
	if len(c.Source.Dirs) == 0 {
		c.Source.Dirs = []string{"."}
	}
	if c.Output.ManifestFormat == "" {
		c.Output.ManifestFormat = string(manifest.JSON)
	}
	if c.Project.Namespace == "" {
		c.Project.Namespace = "Minimact.Components"
	}
}

// Format returns the configured manifest format.
func (c *Config) Format() manifest.Format {
	f, _ := manifest.ParseFormat(c.Output.ManifestFormat)
	return f
}

// SourceDirPaths returns absolute paths for the configured source directories.
func (c *Config) SourceDirPaths() []string {
	var paths []string
	for _, d := range c.Source.Dirs {
		paths = append(paths, filepath.Join(c.Dir, d))
	}
	return paths
}

// OutputDir returns the absolute output directory, or "" to write next to
// each source file.
func (c *Config) OutputDir() string {
	if c.Output.Dir == "" {
		return ""
	}
	if filepath.IsAbs(c.Output.Dir) {
		return c.Output.Dir
	}
	return filepath.Join(c.Dir, c.Output.Dir)
}
