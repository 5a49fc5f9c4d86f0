package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is to verbose.  These provide additional information about the
// build process to the user so as to make the tool more friendly.

// DisplayInfoMessage displays a tagged informational message regardless of the
// log level.
func DisplayInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// ReportInfo reports an informational message.
func ReportInfo(tag, msg string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		DisplayInfoMessage(tag, fmt.Sprintf(msg, args...))
	}
}

// ReportBuildHeader reports the pre-build header: information about the tool's
// current configuration (version, target, build mode).
func ReportBuildHeader(version, target, mode string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		fmt.Print("eadkc ")
		InfoColorFG.Print("v" + version)
		fmt.Print(" -- target: ")
		InfoColorFG.Print(target)
		fmt.Print(" -- mode: ")
		InfoColorFG.Println(mode)
	}
}

// phaseSpinner stores the current phase spinner.
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Generating")

// ReportBeginPhase displays the beginning of a build phase.  Phases are only
// animated when standard out is a terminal.
func ReportBeginPhase(phase string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel != LogLevelVerbose {
		return
	}

	currentPhase = phase
	phaseStartTime = time.Now()

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))
	spinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}
	spinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner, _ = spinner.Start(phase + "..." + phasePadding(phase))
}

// ReportEndPhase displays the end of the current build phase.
func ReportEndPhase(success bool) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel != LogLevelVerbose || currentPhase == "" {
		return
	}

	elapsed := fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds())
	if phaseSpinner != nil {
		if success {
			phaseSpinner.Success(currentPhase+phasePadding(currentPhase), elapsed)
		} else {
			phaseSpinner.Fail(currentPhase + phasePadding(currentPhase))
		}

		phaseSpinner = nil
	} else if success {
		SuccessStyleBG.Print("Done")
		fmt.Println(" "+currentPhase+phasePadding(currentPhase), elapsed)
	} else {
		ErrorStyleBG.Print("Fail")
		fmt.Println(" " + currentPhase)
	}

	currentPhase = ""
}

func phasePadding(phase string) string {
	if len(phase) >= maxPhaseLength {
		return "  "
	}

	return strings.Repeat(" ", maxPhaseLength-len(phase)+2)
}

// ReportBuildFinished reports the concluding message for the build.
func ReportBuildFinished(outputPath string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel != LogLevelVerbose {
		return
	}

	fmt.Print("\n")

	if rep.errorCount == 0 {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch rep.errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(rep.errorCount)
		fmt.Print(" errors, ")
	}

	switch rep.warnCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(rep.warnCount)
		fmt.Println(" warnings)")
	}

	if rep.errorCount == 0 && outputPath != "" {
		fmt.Print("output written to ")
		InfoColorFG.Println(outputPath)
	}
}
