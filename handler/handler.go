// Package handler generates the fatal error handler of an application image
// and the exported entry wrapper that routes panics into it.
package handler

import (
	"bytes"
	"go/format"
	"go/parser"
	"go/token"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// BuildMode selects the handler variant.  It is decided once per build.
type BuildMode int

// Enumeration of build modes.
const (
	Debug BuildMode = iota
	Release
)

func (m BuildMode) String() string {
	if m == Release {
		return "release"
	}

	return "debug"
}

// Variant is the kind of handler generated.
type Variant int

// Enumeration of handler variants.
const (
	// VariantDiagnostic draws the failure location and message to the display
	// and then idles forever.
	VariantDiagnostic Variant = iota

	// VariantSilent idles forever without any output.
	VariantSilent
)

func (v Variant) String() string {
	if v == VariantSilent {
		return "silent"
	}

	return "diagnostic"
}

// VariantFor returns the handler variant selected by mode.
func VariantFor(mode BuildMode) Variant {
	if mode == Release {
		return VariantSilent
	}

	return VariantDiagnostic
}

// Names of the generated functions.
const (
	HandlerFunc  = "eadkPanic"
	WrapperFunc  = "eadkEntry"
	DescribeFunc = "eadkDescribe"
	LocateFunc   = "eadkLocate"
)

// RuntimeAlias is the name the runtime package is imported under by the
// generated code.
const RuntimeAlias = "eadkrt"

// stdImports are the standard library packages used by both variants.
var stdImports = []string{"runtime", "strconv", "strings"}

// ReservedNames returns the names the generated code declares or imports at
// file scope.  The package must not declare any of them.
func ReservedNames() []string {
	names := []string{HandlerFunc, WrapperFunc, DescribeFunc, LocateFunc, RuntimeAlias}
	return append(names, stdImports...)
}

// Options are the inputs of handler generation.
type Options struct {
	// RuntimePackage is the import path of the device runtime package which
	// provides the display primitives.
	RuntimePackage string

	// Symbol is the exported symbol of the entry wrapper.
	Symbol string

	// EntryFunc is the name of the user's entry function.
	EntryFunc string

	// Location is displayed by the diagnostic handler when the panic site
	// cannot be read from the call stack.
	Location string
}

// Handler is a generated fatal error handler together with the entry wrapper.
type Handler struct {
	Mode    BuildMode
	Variant Variant

	// Imports maps the package names used by Source to their import paths.
	// Only the diagnostic variant imports the runtime package.
	Imports map[string]string

	// Source is the formatted Go source of the generated declarations.  It
	// has no package clause or imports.
	Source []byte
}

// Generate generates the handler for mode.  Only the selected variant is
// generated.
func Generate(mode BuildMode, opts Options) (*Handler, error) {
	h := &Handler{
		Mode:    mode,
		Variant: VariantFor(mode),
		Imports: make(map[string]string),
	}

	data := templateData{
		Options:  opts,
		Handler:  HandlerFunc,
		Wrapper:  WrapperFunc,
		Describe: DescribeFunc,
		Locate:   LocateFunc,
		Palette:  DiagnosticPalette,
	}

	for _, pkg := range stdImports {
		h.Imports[pkg] = pkg
	}

	tmpl := silentTemplate
	if h.Variant == VariantDiagnostic {
		tmpl = diagnosticTemplate
		data.Runtime = RuntimeAlias
		h.Imports[RuntimeAlias] = opts.RuntimePackage
	}

	buff := &bytes.Buffer{}
	if err := tmpl.Execute(buff, data); err != nil {
		return nil, errors.Wrap(err, "executing handler template")
	}

	src, err := formatDecls(buff.Bytes())
	if err != nil {
		return nil, err
	}
	h.Source = src

	log.Debug().
		Str("mode", mode.String()).
		Str("variant", h.Variant.String()).
		Int("bytes", len(src)).
		Msg("generated fatal handler")

	return h, nil
}

// formatDecls checks that src is a valid list of declarations and formats it.
func formatDecls(src []byte) ([]byte, error) {
	const clause = "package p\n\n"

	file := append([]byte(clause), src...)
	if _, err := parser.ParseFile(token.NewFileSet(), "handler.go", file, parser.ParseComments); err != nil {
		return nil, errors.Wrap(err, "generated handler is not valid Go")
	}

	formatted, err := format.Source(file)
	if err != nil {
		return nil, errors.Wrap(err, "formatting generated handler")
	}

	return bytes.TrimLeft(bytes.TrimPrefix(formatted, []byte("package p")), "\n"), nil
}
