//go:build unit || !integration

package build

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"eadkc/config"
	"eadkc/handler"
	"eadkc/report"
	"eadkc/validate"

	"github.com/stretchr/testify/require"
)

const validSource = `package main

//eadk:main
func run(data []byte) {
	println("hello")
}
`

const validConfig = `[config]
name = "Hi"
icon = "icon.png"
api_level = 1
`

// project is an application project in a temporary directory.
type project struct {
	dir string
}

func newProject(t *testing.T) *project {
	t.Helper()
	report.InitReporter(report.LogLevelSilent)
	return &project{dir: t.TempDir()}
}

func (p *project) write(t *testing.T, name string, content []byte) {
	t.Helper()

	path := filepath.Join(p.dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func (p *project) inputs(mode handler.BuildMode) *Inputs {
	return &Inputs{
		SourceDir:      filepath.Join(p.dir, "src"),
		ConfigPath:     filepath.Join(p.dir, "config.toml"),
		IconPath:       filepath.Join(p.dir, "target", "icon.nwi"),
		Mode:           mode,
		RuntimePackage: "example.com/device/eadk",
	}
}

func (p *project) complete(t *testing.T) {
	t.Helper()

	p.write(t, "src/main.go", []byte(validSource))
	p.write(t, "config.toml", []byte(validConfig))
	p.write(t, "target/icon.nwi", []byte{9, 8, 7, 6})
}

func TestTransform(t *testing.T) {
	p := newProject(t)
	p.complete(t)

	unit, err := Transform(p.inputs(handler.Debug))
	require.NoError(t, err)

	require.Equal(t, []byte{0x48, 0x69, 0x00}, unit.Layout.AppName.Bytes)
	require.Equal(t, 3, unit.Layout.AppName.Length)
	require.Equal(t, uint32(1), binary.LittleEndian.Uint32(unit.Layout.APILevel.Bytes))
	require.Equal(t, 4, unit.Layout.AppIcon.Length)
	require.Equal(t, []byte{9, 8, 7, 6}, unit.Layout.AppIcon.Bytes)

	require.Equal(t, "run", unit.Entry.Decl.Name.Name)
	require.Equal(t, 0, unit.Entry.Decl.Type.Params.NumFields())
	require.Equal(t, "main.go", unit.Entry.File.ReprPath)

	require.Equal(t, handler.VariantDiagnostic, unit.Handler.Variant)
	require.Contains(t, string(unit.Handler.Source), `eadkLocate("main.go")`)
	require.Len(t, unit.Sources, 1)
	require.Same(t, unit.Entry.File, unit.Sources[0])
}

func TestTransformRelease(t *testing.T) {
	p := newProject(t)
	p.complete(t)

	unit, err := Transform(p.inputs(handler.Release))
	require.NoError(t, err)
	require.Equal(t, handler.VariantSilent, unit.Handler.Variant)
	require.NotContains(t, unit.Handler.Imports, handler.RuntimeAlias)
}

func TestTransformSkipsTestsAndOutput(t *testing.T) {
	p := newProject(t)
	p.complete(t)
	p.write(t, "src/main_test.go", []byte("package main\n\n//eadk:main\nfunc other(data []byte) {}\n"))
	p.write(t, "src/eadk_app.go", []byte("package main\n\n//eadk:main\nfunc stale(data []byte) {}\n"))

	unit, err := Transform(p.inputs(handler.Debug))
	require.NoError(t, err)
	require.Equal(t, "run", unit.Entry.Decl.Name.Name)
}

func TestTransformValidatesFirst(t *testing.T) {
	// no config or icon: the signature error must still be the one reported
	p := newProject(t)
	p.write(t, "src/main.go", []byte("package main\n\n//eadk:main\nfunc run() {}\n"))

	_, err := Transform(p.inputs(handler.Debug))
	require.Error(t, err)

	lces, others := validate.Diagnostics(err)
	require.Empty(t, others)
	require.Len(t, lces, 1)
	require.Equal(t, "expected only 1 argument to main function, found 0", lces[0].Message)
	require.Equal(t, filepath.Join(p.dir, "src", "main.go"), lces[0].AbsPath)
}

func TestTransformSyntaxError(t *testing.T) {
	p := newProject(t)
	p.write(t, "src/main.go", []byte("package main\n\nfunc run( {\n"))

	_, err := Transform(p.inputs(handler.Debug))
	require.Error(t, err)

	lces, _ := validate.Diagnostics(err)
	require.NotEmpty(t, lces)
	require.NotNil(t, lces[0].Span)
}

func TestTransformNoSources(t *testing.T) {
	p := newProject(t)
	p.write(t, "src/README", []byte("nothing here"))

	_, err := Transform(p.inputs(handler.Debug))
	lces, _ := validate.Diagnostics(err)
	require.Len(t, lces, 1)
	require.Contains(t, lces[0].Message, "no Go source files")
}

func TestTransformReservedNames(t *testing.T) {
	p := newProject(t)
	p.complete(t)
	p.write(t, "src/util.go", []byte("package main\n\nfunc eadkPanic() {}\n\nvar eadkEntry = 1\n"))

	_, err := Transform(p.inputs(handler.Debug))
	lces, _ := validate.Diagnostics(err)
	require.Len(t, lces, 2)
	require.Contains(t, lces[0].Message, "reserved")
}

func TestTransformCollectsAllSources(t *testing.T) {
	p := newProject(t)
	p.complete(t)
	p.write(t, "src/helper.go", []byte("package main\n\nfunc helper() {}\n"))

	unit, err := Transform(p.inputs(handler.Debug))
	require.NoError(t, err)
	require.Len(t, unit.Sources, 2)
	require.Equal(t, "helper.go", unit.Sources[0].ReprPath)
	require.Equal(t, "main.go", unit.Sources[1].ReprPath)
}

func TestTransformMixedPackages(t *testing.T) {
	p := newProject(t)
	p.complete(t)
	p.write(t, "src/other.go", []byte("package other\n"))

	_, err := Transform(p.inputs(handler.Debug))
	lces, _ := validate.Diagnostics(err)
	require.Len(t, lces, 1)
	require.Equal(t, "other.go", lces[0].ReprPath)
	require.Contains(t, lces[0].Message, "belongs to package `other`")
}

func TestTransformReservedImportNames(t *testing.T) {
	p := newProject(t)
	p.complete(t)
	p.write(t, "src/util.go", []byte("package main\n\nvar eadkrt = 1\n\nfunc strings() {}\n"))

	_, err := Transform(p.inputs(handler.Debug))
	lces, _ := validate.Diagnostics(err)
	require.Len(t, lces, 2)
	require.Contains(t, lces[0].Message, "`eadkrt` is reserved")
}

func TestTransformConfigFailures(t *testing.T) {
	t.Run("missing config", func(t *testing.T) {
		p := newProject(t)
		p.write(t, "src/main.go", []byte(validSource))
		p.write(t, "target/icon.nwi", []byte{1})

		_, err := Transform(p.inputs(handler.Debug))
		var cerr *config.Error
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, config.ConfigMissing, cerr.Kind)
	})

	t.Run("malformed config", func(t *testing.T) {
		p := newProject(t)
		p.write(t, "src/main.go", []byte(validSource))
		p.write(t, "config.toml", []byte("[config]\nname = \"Hi\"\n"))
		p.write(t, "target/icon.nwi", []byte{1})

		_, err := Transform(p.inputs(handler.Debug))
		var cerr *config.Error
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, config.ConfigMalformed, cerr.Kind)
	})

	t.Run("missing icon", func(t *testing.T) {
		p := newProject(t)
		p.write(t, "src/main.go", []byte(validSource))
		p.write(t, "config.toml", []byte(validConfig))

		_, err := Transform(p.inputs(handler.Debug))
		var cerr *config.Error
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, config.IconMissing, cerr.Kind)
	})
}

func TestTransformRecursivePattern(t *testing.T) {
	p := newProject(t)
	p.complete(t)
	p.write(t, "src/sub/extra.go", []byte("package main\n\n//eadk:main\nfunc second(data []byte) {}\n"))

	// the default pattern does not descend into sub directories
	_, err := Transform(p.inputs(handler.Debug))
	require.NoError(t, err)

	in := p.inputs(handler.Debug)
	in.SourcePattern = "**/*.go"
	_, err = Transform(in)
	lces, _ := validate.Diagnostics(err)
	require.Len(t, lces, 1)
	require.Contains(t, lces[0].Message, "multiple entry functions")
	require.Equal(t, "sub/extra.go", lces[0].ReprPath)
}
