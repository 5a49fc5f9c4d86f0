package cmd

import (
	"os"
	"path/filepath"

	"eadkc/common"
	"eadkc/config"
	"eadkc/emit"
	"eadkc/handler"
	"eadkc/report"

	"github.com/ComedicChimera/olive"
)

// Execute is the main entry point for the `eadkc` CLI utility.  It returns the
// exit code of the process.
func Execute() int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("eadkc", "eadkc builds EADK application images from Go sources", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "build an application image", true)
	buildCmd.AddPrimaryArg("project-dir", "the path to the application directory", true)
	buildCmd.AddStringArg("config", "c", "the path to the config file", false)
	buildCmd.AddStringArg("icon", "i", "the path to the compiled icon", false)
	buildCmd.AddStringArg("outpath", "o", "the directory to write output to", false)
	buildCmd.AddStringArg("src", "s", "the glob selecting the application sources", false)
	buildCmd.AddStringArg("llc", "llc", "the path to llc", false)
	outModeArg := buildCmd.AddSelectorArg("outmode", "m", "the metadata output mode", false, []string{"llvm", "obj"})
	outModeArg.SetDefaultValue("llvm")
	buildCmd.AddFlag("release", "r", "build with the silent fatal handler")
	buildCmd.AddFlag("trace", "t", "write trace logs to standard error")

	initCmd := cli.AddSubcommand("init", "create a config file in the working directory", true)
	initCmd.AddPrimaryArg("app-name", "the name of the application", true)

	cli.AddSubcommand("version", "print the eadkc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal("%s", err)
		return 1
	}

	report.InitReporter(report.LogLevelFromName(result.Arguments["loglevel"].(string)))

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		return execBuildCommand(subResult)
	case "init":
		return execInitCommand(subResult)
	case "version":
		report.DisplayInfoMessage("eadkc Version", common.EadkcVersion)
	}

	return 0
}

// execBuildCommand executes the build subcommand and handles all errors.
func execBuildCommand(result *olive.ArgParseResult) int {
	report.InitTrace(result.HasFlag("trace"))

	// get the primary argument: the project directory
	projectRelPath, _ := result.PrimaryArg()
	projectDir, err := filepath.Abs(projectRelPath)
	if err != nil {
		report.ReportFatal("error calculating absolute path of `%s`: %s", projectRelPath, err)
		return 1
	}

	profile := NewBuildProfile(projectDir)
	if result.HasFlag("release") {
		profile.Mode = handler.Release
	}

	for name, field := range map[string]*string{
		"config":  &profile.ConfigPath,
		"icon":    &profile.IconPath,
		"outpath": &profile.OutputPath,
		"src":     &profile.SourcePattern,
		"llc":     &profile.LLCPath,
	} {
		if value, ok := result.Arguments[name]; ok {
			*field = value.(string)
		}
	}

	if value, ok := result.Arguments["outmode"]; ok {
		mode, ok := emit.ParseOutputMode(value.(string))
		if !ok {
			report.ReportFatal("unknown output mode `%s`", value)
			return 1
		}

		profile.OutputMode = mode
	}

	c := NewCompiler(profile)
	ok := c.Build()
	report.ReportBuildFinished(profile.OutputPath)

	if !ok || report.AnyErrors() {
		return 1
	}

	return 0
}

// execInitCommand executes the init subcommand.
func execInitCommand(result *olive.ArgParseResult) int {
	appName, _ := result.PrimaryArg()

	workDir, err := os.Getwd()
	if err != nil {
		report.ReportFatal("%s", err)
		return 1
	}

	cfgPath, err := config.Init(workDir, appName)
	if err != nil {
		report.ReportFatal("%s", err)
		return 1
	}

	report.ReportInfo("Created", "%s", cfgPath)
	return 0
}
