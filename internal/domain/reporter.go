package domain

import "fmt"

// Reporter receives human-readable problems found while validating or resolving.
// Reporting never aborts a computation; callers decide what a message means.
type Reporter interface {
	Report(message string)
}

// ReporterFunc adapts a function to Reporter. A nil ReporterFunc discards messages.
type ReporterFunc func(message string)

// Report calls f(message)
func (f ReporterFunc) Report(message string) {
	if f != nil {
		f(message)
	}
}

// Discard is a Reporter that drops every message
var Discard Reporter = ReporterFunc(nil)

// Reportf formats and reports a message; a nil reporter is allowed
func Reportf(r Reporter, format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.Report(fmt.Sprintf(format, args...))
}

// Messages collects reported messages in order
type Messages []string

// Report appends message
func (m *Messages) Report(message string) {
	*m = append(*m, message)
}

// Last returns the most recent message, or "" when empty
func (m Messages) Last() string {
	if len(m) == 0 {
		return ""
	}
	return m[len(m)-1]
}
