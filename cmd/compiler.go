// Package cmd is the top-level driver of eadkc: it parses the command line,
// builds the profile, runs the pipeline and writes its output.
package cmd

import (
	"os"

	"eadkc/build"
	"eadkc/common"
	"eadkc/config"
	"eadkc/emit"
	"eadkc/report"
	"eadkc/validate"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Compiler represents the overall state and configuration of a build.
type Compiler struct {
	// The build profile.
	profile *BuildProfile

	// The paths of the files written by the build.
	outputs []string
}

// NewCompiler creates a new compiler for the given profile.
func NewCompiler(profile *BuildProfile) *Compiler {
	return &Compiler{profile: profile}
}

// Build runs the pipeline and writes the image.  It returns whether the build
// succeeded.  All errors are reported: nothing is written if any occur.
func (c *Compiler) Build() bool {
	report.ReportBuildHeader(common.EadkcVersion, common.TargetTriple, c.profile.Mode.String())

	unit, err := build.Transform(c.profile.inputs())
	if err != nil {
		reportBuildError(err)
		return false
	}

	c.checkImage(unit)

	report.ReportBeginPhase("Emitting")
	outputs, err := emit.WriteImage(unit, c.profile.OutputPath, c.profile.OutputMode, c.profile.LLCPath)
	if err != nil {
		report.ReportEndPhase(false)
		report.ReportFatal("%s", err)
		return false
	}
	report.ReportEndPhase(true)

	c.outputs = outputs
	log.Debug().Strs("outputs", outputs).Msg("build finished")

	return true
}

// Outputs returns the paths of the files written by the last build.
func (c *Compiler) Outputs() []string {
	return c.outputs
}

// checkImage reports the layout of the image and warns about suspicious
// configuration that does not prevent the build.
func (c *Compiler) checkImage(unit *build.ImageUnit) {
	for _, b := range unit.Layout.Blocks() {
		report.ReportInfo("Block", "%s", b)
	}

	if config.StaleIcon(unit.Config, unit.Icon) {
		report.ReportWarning("icon source `%s` is newer than the compiled icon `%s`", unit.Config.Icon, unit.Icon.Path)
	}

	if unit.Config.ExternalData != "" {
		if _, err := os.Stat(unit.Config.Resolve(unit.Config.ExternalData)); err != nil {
			report.ReportWarning("external data `%s` does not exist", unit.Config.ExternalData)
		}
	}
}

// reportBuildError reports an error returned by the pipeline.
func reportBuildError(err error) {
	var cerr *config.Error
	if errors.As(err, &cerr) {
		report.ReportFatal("%s", cerr)
		return
	}

	lces, others := validate.Diagnostics(err)
	for _, lce := range lces {
		report.ReportLocalError(lce)
	}

	for _, oerr := range others {
		report.ReportFatal("%s", oerr)
	}
}
