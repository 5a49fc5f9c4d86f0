package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	ErrorStyleBG.Print("internal error")
	ErrorColorFG.Println(" " + message)
	fmt.Print("This error was not supposed to happen: please open an issue.\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	ErrorStyleBG.Print("fatal error")
	ErrorColorFG.Println(" " + message)
	fmt.Println()
}

// displayWarning displays a warning that has no source position.
func displayWarning(message string) {
	WarnStyleBG.Print("warning")
	WarnColorFG.Println(" " + message)
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".
func displayCompileMessage(label, absPath, reprPath string, span *TextSpan, message string) {
	labelColor := ErrorColorFG
	if label == "warning" {
		labelColor = WarnColorFG
	}

	if span == nil {
		fmt.Printf("%s: ", reprPath)
		labelColor.Print(label)
		fmt.Printf(": %s\n\n", message)
	} else {
		fmt.Printf("%s:%d:%d: ", reprPath, span.StartLine+1, span.StartCol+1)
		labelColor.Print(label)
		fmt.Printf(": %s\n\n", message)
		displaySourceText(absPath, span)
	}
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	fmt.Printf("%s: ", reprPath)
	ErrorColorFG.Print("error")
	fmt.Printf(": %s\n\n", err)
}

// -----------------------------------------------------------------------------

// tabWidth is the number of spaces a tab is expanded to when displaying source.
const tabWidth = 4

// visualColumn converts a byte column within a line into the column it is
// displayed at once tabs are expanded.
func visualColumn(line string, col int) int {
	if col > len(line) {
		col = len(line)
	}

	if col < 0 {
		col = 0
	}

	return col + (tabWidth-1)*strings.Count(line[:col], "\t")
}

// displaySourceText displays a segment of source text defined by a text span.
func displaySourceText(absPath string, span *TextSpan) {
	// Open the file so we can read the desired source text.
	file, err := os.Open(absPath)
	if err != nil {
		displayICE(fmt.Sprintf("failed to open file %s for reporting: %s", absPath, err))
		return
	}
	defer file.Close()

	// Collect all the source lines containing the given source text.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, sc.Text())
		}
	}

	if err := sc.Err(); err != nil {
		displayICE(fmt.Sprintf("failed to read file %s for reporting: %s", absPath, err))
		return
	}

	if len(lines) == 0 {
		return
	}

	// Compute the highlighted columns before expanding tabs.
	startCol := visualColumn(lines[0], span.StartCol)
	endCol := visualColumn(lines[len(lines)-1], span.EndCol)
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	// Generate the format string for line numbers.
	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		// Print the line number and the source text with the leading indent
		// trimmed off.
		InfoColorFG.Print(fmt.Sprintf(lineNumFmtStr, i+span.StartLine+1))
		fmt.Println(line[minIndent:])

		// Underlining starts at the start column on the first line and runs to
		// the end column on the last line.  Every line in between is
		// underlined completely.
		first, last := minIndent, len(line)
		if i == 0 && startCol > first {
			first = startCol
		}

		if i == len(lines)-1 && endCol < last {
			last = endCol
		}

		if last <= first {
			last = first + 1
		}

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")
		fmt.Print(strings.Repeat(" ", first-minIndent))
		ErrorColorFG.Println(strings.Repeat("^", last-first))
	}

	fmt.Println()
}
