package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/minimact/swig-sub001/lib/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[project]
name = "shop"
namespace = "Shop.Components"

[source]
dirs = ["src", "widgets"]

[output]
dir = "generated"
manifest_format = "cbor"

[compiler]
framework_modules = ["react"]
event_params = ["e"]
strict_hooks = true
parallelism = 2
`)

	c, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "shop", c.Project.Name)
	assert.Equal(t, "Shop.Components", c.Project.Namespace)
	assert.Equal(t, []string{"src", "widgets"}, c.Source.Dirs)
	assert.Equal(t, manifest.CBOR, c.Format())
	assert.Equal(t, []string{"react"}, c.Compiler.FrameworkModules)
	assert.Equal(t, []string{"e"}, c.Compiler.EventParams)
	assert.True(t, c.Compiler.StrictHooks)
	assert.Equal(t, 2, c.Compiler.Parallelism)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, c.Dir)
	assert.Equal(t, filepath.Join(abs, "generated"), c.OutputDir())
	assert.Equal(t, []string{filepath.Join(abs, "src"), filepath.Join(abs, "widgets")}, c.SourceDirPaths())
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[project]\nname = \"minimal\"\n")

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, c.Source.Dirs)
	assert.Equal(t, manifest.JSON, c.Format())
	assert.Equal(t, "Minimact.Components", c.Project.Namespace)
	assert.Empty(t, c.OutputDir())
	assert.Nil(t, c.Compiler.FrameworkModules)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[project\n"},
		{"unknown key", "[compiler]\nstrict = true\n"},
		{"format", "[output]\nmanifest_format = \"yaml\"\n"},
		{"parallelism", "[compiler]\nparallelism = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}

	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[project]\nname = \"app\"\n")
	nested := filepath.Join(root, "src", "components")
	require.NoError(t, os.MkdirAll(nested, 0755))

	c, err := FindAndLoad(nested)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "app", c.Project.Name)
}

func TestFindAndLoadMissing(t *testing.T) {
	c, err := FindAndLoad(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, c)
}
