package report

import "sync"

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during program execution.  The reporter respects the set
// log level and is synchronized: its methods can be safely called from multiple
// goroutines.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors and warnings reported so far.
	errorCount, warnCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all messages to the user (default).
)

// rep is the global reporter instance.
var rep = newReporter(LogLevelVerbose)

func newReporter(logLevel int) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
	}
}

// InitReporter initializes the global error reporter to the given log level.
// Any previously recorded errors are discarded.
func InitReporter(logLevel int) {
	rep = newReporter(logLevel)
}

// LogLevelFromName converts a log level name as given on the command line
// into an enumerated log level.  Unknown names map to verbose.
func LogLevelFromName(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn":
		return LogLevelWarn
	default:
		return LogLevelVerbose
	}
}
