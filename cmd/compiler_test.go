//go:build unit || !integration

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eadkc/common"
	"eadkc/emit"
	"eadkc/handler"
	"eadkc/report"

	"github.com/stretchr/testify/require"
)

const mainSource = `package main

//eadk:main
func run(data []byte) {
}
`

func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	report.InitReporter(report.LogLevelSilent)

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

func defaultFiles() map[string]string {
	return map[string]string{
		"main.go":         mainSource,
		"config.toml":     "[config]\nname = \"Hi\"\nicon = \"icon.png\"\napi_level = 1\n",
		"target/icon.nwi": "\x01\x02\x03\x04",
	}
}

func TestNewBuildProfile(t *testing.T) {
	dir := filepath.Join("projects", "hi")
	profile := NewBuildProfile(dir)

	require.Equal(t, filepath.Join(dir, "config.toml"), profile.ConfigPath)
	require.Equal(t, filepath.Join(dir, "target", "icon.nwi"), profile.IconPath)
	require.Equal(t, filepath.Join(dir, "target"), profile.OutputPath)
	require.Equal(t, handler.Debug, profile.Mode)
	require.Equal(t, emit.OutModeLLVM, profile.OutputMode)
	require.Equal(t, common.RuntimePackage, profile.RuntimePackage)
}

func TestBuild(t *testing.T) {
	dir := newProject(t, defaultFiles())

	c := NewCompiler(NewBuildProfile(dir))
	require.True(t, c.Build())
	require.False(t, report.AnyErrors())

	require.Equal(t, []string{
		filepath.Join(dir, "target", "main.go"),
		filepath.Join(dir, "target", common.GoOutputName),
		filepath.Join(dir, "target", common.IROutputName),
	}, c.Outputs())

	appSrc, err := os.ReadFile(c.Outputs()[0])
	require.NoError(t, err)
	require.Contains(t, string(appSrc), "func run() {")

	genSrc, err := os.ReadFile(c.Outputs()[1])
	require.NoError(t, err)
	require.Contains(t, string(genSrc), common.RuntimePackage)
}

func TestBuildRelease(t *testing.T) {
	dir := newProject(t, defaultFiles())

	profile := NewBuildProfile(dir)
	profile.Mode = handler.Release

	c := NewCompiler(profile)
	require.True(t, c.Build())

	genSrc, err := os.ReadFile(c.Outputs()[1])
	require.NoError(t, err)
	require.NotContains(t, string(genSrc), common.RuntimePackage)
}

func TestBuildInvalidSignatureWritesNothing(t *testing.T) {
	files := defaultFiles()
	files["main.go"] = strings.Replace(mainSource, "data []byte", "a, b []byte", 1)
	dir := newProject(t, files)

	c := NewCompiler(NewBuildProfile(dir))
	require.False(t, c.Build())
	require.True(t, report.AnyErrors())
	require.Empty(t, c.Outputs())

	_, err := os.Stat(filepath.Join(dir, "target", common.GoOutputName))
	require.True(t, os.IsNotExist(err))
}

func TestBuildMissingConfig(t *testing.T) {
	files := defaultFiles()
	delete(files, "config.toml")
	dir := newProject(t, files)

	c := NewCompiler(NewBuildProfile(dir))
	require.False(t, c.Build())
	require.True(t, report.AnyErrors())
}

func TestBuildMissingIcon(t *testing.T) {
	files := defaultFiles()
	delete(files, "target/icon.nwi")
	dir := newProject(t, files)

	c := NewCompiler(NewBuildProfile(dir))
	require.False(t, c.Build())
	require.True(t, report.AnyErrors())
}

func TestBuildExplicitPaths(t *testing.T) {
	dir := newProject(t, map[string]string{
		"app/main.go":     mainSource,
		"conf/app.toml":   "[config]\nname = \"Hi\"\nicon = \"icon.png\"\napi_level = 1\n",
		"assets/icon.nwi": "\x01\x02",
	})

	profile := NewBuildProfile(filepath.Join(dir, "app"))
	profile.ConfigPath = filepath.Join(dir, "conf", "app.toml")
	profile.IconPath = filepath.Join(dir, "assets", "icon.nwi")
	profile.OutputPath = filepath.Join(dir, "out")

	c := NewCompiler(profile)
	require.True(t, c.Build())
	require.FileExists(t, filepath.Join(dir, "out", common.IROutputName))
}
