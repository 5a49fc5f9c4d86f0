package report

import (
	"fmt"
	"go/token"
)

// TextSpan represents a range or "span" of source text. It is used to specify
// erroneous or otherwise significant source text in a user program.  Text
// spans are inclusive on the start and exclusive on the end: the ending column
// is one past the last highlighted character.  The line and column numbers are
// zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// SpanFromPositions converts a pair of Go token positions into a text span.
// Token positions are one-indexed; spans are not.
func SpanFromPositions(start, end token.Position) *TextSpan {
	return &TextSpan{
		StartLine: start.Line - 1,
		StartCol:  start.Column - 1,
		EndLine:   end.Line - 1,
		EndCol:    end.Column - 1,
	}
}

// -----------------------------------------------------------------------------

// LocalCompileError is a compilation error that occurs in a context in which
// the file is known by the error handler and thus doesn't need to be passed
// along with the error.
type LocalCompileError struct {
	// The error message.
	Message string

	// The span over which the error occurs.  This may be nil if the error
	// concerns a file as a whole.
	Span *TextSpan

	// The absolute path of the erroneous file.
	AbsPath string

	// The representative path of the erroneous file, used when displaying it.
	ReprPath string
}

func (lce *LocalCompileError) Error() string {
	if lce.Span == nil {
		return fmt.Sprintf("%s: %s", lce.ReprPath, lce.Message)
	}

	return fmt.Sprintf("%s:%d:%d: %s", lce.ReprPath, lce.Span.StartLine+1, lce.Span.StartCol+1, lce.Message)
}

// Raise creates a new local compile error.
func Raise(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// InFile returns the error with its file paths set.
func (lce *LocalCompileError) InFile(absPath, reprPath string) *LocalCompileError {
	lce.AbsPath = absPath
	lce.ReprPath = reprPath
	return lce
}

// -----------------------------------------------------------------------------

// ReportICE reports an internal compiler error.  These are errors that
// specifically result for a bug or unexpected condition occurring with the
// tool: they are not intended to ever happen.  These errors are always
// displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	displayICE(fmt.Sprintf(message, args...))
}

// ReportFatal reports a fatal error.  These are errors that should cause the
// build to stop immediately.  However, they are expected errors that generally
// result from invalid configuration of some form: missing config file, missing
// icon artifact, can't find requisite tools (eg. `llc`), etc.  The caller
// decides how to exit.
func ReportFatal(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(message, args...))
	}
}

// ReportCompileError reports a compilation error: ie. erroneous input code. The
// absPath is the absolute path to the erroneous source file. The reprPath is
// the representative path to the erroneous source file.  The span may be nil
// in which case no position information will be printed.
func ReportCompileError(absPath, reprPath string, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayCompileMessage("error", absPath, reprPath, span, fmt.Sprintf(message, args...))
	}
}

// ReportCompileWarning reports a compilation warning.  The arguments are of the
// same form as those to ReportCompileError.
func ReportCompileWarning(absPath, reprPath string, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warnCount++

	if rep.logLevel >= LogLevelWarn {
		displayCompileMessage("warning", absPath, reprPath, span, fmt.Sprintf(message, args...))
	}
}

// ReportLocalError reports a local compile error which already knows its file.
func ReportLocalError(lce *LocalCompileError) {
	ReportCompileError(lce.AbsPath, lce.ReprPath, lce.Span, "%s", lce.Message)
}

// ReportWarning reports a warning that is not attached to any source file.
func ReportWarning(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warnCount++

	if rep.logLevel >= LogLevelWarn {
		displayWarning(fmt.Sprintf(message, args...))
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(reprPath string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayStdError(reprPath, err)
	}
}

// -----------------------------------------------------------------------------

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount > 0
}
