package cmd

import (
	"path/filepath"

	"eadkc/build"
	"eadkc/common"
	"eadkc/emit"
	"eadkc/handler"
)

// BuildProfile represents the current build profile.  Every path in it is
// explicit: defaults are filled in relative to the project directory when the
// profile is created, never relative to the working directory at build time.
type BuildProfile struct {
	// ProjectDir is the directory containing the application sources and,
	// by default, its config and compiled icon.
	ProjectDir string

	// SourcePattern selects the sources within ProjectDir.
	SourcePattern string

	// ConfigPath is the path to the config file.
	ConfigPath string

	// IconPath is the path to the compiled icon artifact.
	IconPath string

	// OutputPath is the directory output is written to.
	OutputPath string

	// Mode is the build mode: it selects the fatal handler.
	Mode handler.BuildMode

	// OutputMode is the form of the metadata output.
	OutputMode emit.OutputMode

	// LLCPath is the LLVM static compiler used in emit.OutModeObj.
	LLCPath string

	// RuntimePackage is the import path of the device runtime package.
	RuntimePackage string
}

// NewBuildProfile creates the default debug profile for the project in
// projectDir.
func NewBuildProfile(projectDir string) *BuildProfile {
	return &BuildProfile{
		ProjectDir:     projectDir,
		SourcePattern:  build.DefaultSourcePattern,
		ConfigPath:     filepath.Join(projectDir, common.ConfigFileName),
		IconPath:       filepath.Join(projectDir, filepath.FromSlash(common.IconArtifactPath)),
		OutputPath:     filepath.Join(projectDir, "target"),
		Mode:           handler.Debug,
		OutputMode:     emit.OutModeLLVM,
		LLCPath:        emit.DefaultLLC,
		RuntimePackage: common.RuntimePackage,
	}
}

// inputs returns the pipeline inputs described by the profile.
func (bp *BuildProfile) inputs() *build.Inputs {
	return &build.Inputs{
		SourceDir:      bp.ProjectDir,
		SourcePattern:  bp.SourcePattern,
		ConfigPath:     bp.ConfigPath,
		IconPath:       bp.IconPath,
		Mode:           bp.Mode,
		RuntimePackage: bp.RuntimePackage,
	}
}
