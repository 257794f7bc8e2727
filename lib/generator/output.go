package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	swig "github.com/minimact/swig-sub001"
	"github.com/minimact/swig-sub001/lib/manifest"
)

// ClassSuffix is appended to the component name of generated classes.
const ClassSuffix = ".g.cs"

// ManifestName returns the manifest file name for a component.
func ManifestName(component string, f manifest.Format) string {
	return component + ".templates." + f.Ext()
}

// outputDir returns the directory that receives the outputs of src.
func (g *Generator) outputDir(src string) string {
	if g.opts.OutputDir != "" {
		return g.opts.OutputDir
	}
	return filepath.Dir(src)
}

// writeComponent writes the class and manifest of one compiled component
// and returns the number of files that changed.
func (g *Generator) writeComponent(src string, r *swig.Result) (int, error) {
	dir := g.outputDir(src)
	format, _ := manifest.ParseFormat(string(g.opts.Compile.Format))

	outputs := []struct {
		path string
		data []byte
	}{
		{filepath.Join(dir, r.Name+ClassSuffix), []byte(r.Code)},
		{filepath.Join(dir, ManifestName(r.Name, format)), r.Encoded},
	}

	written := 0
	for _, out := range outputs {
		if err := g.claim(out.path, src); err != nil {
			return written, err
		}
		log.Infof("generating %s", out.path)
		if g.opts.DryRun {
			continue
		}
		changed, err := writeIfChanged(out.path, out.data)
		if err != nil {
			return written, err
		}
		if changed {
			written++
		}
	}
	return written, nil
}

// claim records that src produces path, rejecting two sources that
// generate the same file.
func (g *Generator) claim(path, src string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.written == nil {
		g.written = make(map[string]string)
	}
	if prev, ok := g.written[path]; ok && prev != src {
		return fmt.Errorf("%s is generated by both %s and %s", path, prev, src)
	}
	g.written[path] = src
	return nil
}

// writeIfChanged leaves files with identical content untouched so
// unchanged components keep their modification times.
func writeIfChanged(path string, data []byte) (bool, error) {
	if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, data) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}
	return true, os.WriteFile(path, data, 0644)
}

// isGenerated reports whether name is a file swig writes.
func isGenerated(name string) bool {
	if strings.HasSuffix(name, ClassSuffix) {
		return true
	}
	for _, f := range manifest.Formats {
		if strings.HasSuffix(name, ".templates."+f.Ext()) {
			return true
		}
	}
	return false
}

// cleanDir removes generated files from a directory.
func (g *Generator) cleanDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !isGenerated(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		log.Infof("removing %s", path)
		if !g.opts.DryRun {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}
	return nil
}
