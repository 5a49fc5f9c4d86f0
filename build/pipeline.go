package build

import (
	"go/token"

	"eadkc/common"
	"eadkc/config"
	"eadkc/handler"
	"eadkc/layout"
	"eadkc/report"
	"eadkc/validate"

	"github.com/rs/zerolog/log"
)

// Inputs are the explicit inputs of a transform.  Nothing is looked up
// relative to the working directory.
type Inputs struct {
	// SourceDir is the directory containing the application sources.
	SourceDir string

	// SourcePattern selects the sources within SourceDir.  It defaults to
	// DefaultSourcePattern.
	SourcePattern string

	// ConfigPath is the path to the application config file.
	ConfigPath string

	// IconPath is the path to the compiled icon artifact.
	IconPath string

	// Mode is the build mode selecting the handler variant.
	Mode handler.BuildMode

	// RuntimePackage is the import path of the device runtime package.  It
	// defaults to common.RuntimePackage.
	RuntimePackage string
}

// Transform runs the pipeline on in and returns the assembled image.  It
// stops at the first failing stage.  Diagnosable errors in the sources are
// returned as a *multierror.Error of *report.LocalCompileError; configuration
// failures are returned as a *config.Error.
func Transform(in *Inputs) (*ImageUnit, error) {
	pattern := in.SourcePattern
	if pattern == "" {
		pattern = DefaultSourcePattern
	}

	runtimePkg := in.RuntimePackage
	if runtimePkg == "" {
		runtimePkg = common.RuntimePackage
	}

	fset := token.NewFileSet()

	// validate the entry function
	report.ReportBeginPhase("Validating")
	files, err := LoadSources(fset, in.SourceDir, pattern)
	if err != nil {
		report.ReportEndPhase(false)
		return nil, err
	}

	if err := checkPackage(fset, files); err != nil {
		report.ReportEndPhase(false)
		return nil, err
	}

	if err := checkReservedNames(fset, files); err != nil {
		report.ReportEndPhase(false)
		return nil, err
	}

	entry, err := validate.FindEntry(fset, files)
	if err != nil {
		report.ReportEndPhase(false)
		return nil, err
	}
	report.ReportEndPhase(true)

	log.Debug().
		Str("entry", entry.Decl.Name.Name).
		Str("file", entry.File.ReprPath).
		Msg("validated entry function")

	// resolve the configuration
	report.ReportBeginPhase("Resolving")
	cfg, err := config.Load(in.ConfigPath)
	if err != nil {
		report.ReportEndPhase(false)
		return nil, err
	}

	icon, err := config.ResolveIcon(in.IconPath)
	if err != nil {
		report.ReportEndPhase(false)
		return nil, err
	}
	report.ReportEndPhase(true)

	// compute the metadata layout
	report.ReportBeginPhase("Laying out")
	l := layout.Build(cfg, icon)
	report.ReportEndPhase(true)

	// generate the fatal handler
	report.ReportBeginPhase("Generating")
	h, err := handler.Generate(in.Mode, handler.Options{
		RuntimePackage: runtimePkg,
		Symbol:         common.EntrySymbol,
		EntryFunc:      entry.Decl.Name.Name,
		Location:       entry.File.ReprPath,
	})
	if err != nil {
		report.ReportEndPhase(false)
		return nil, err
	}
	report.ReportEndPhase(true)

	return &ImageUnit{
		Layout:  l,
		Handler: h,
		Entry:   entry,
		Sources: files,
		Config:  cfg,
		Icon:    icon,
		Fset:    fset,
	}, nil
}
