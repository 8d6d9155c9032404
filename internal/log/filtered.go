package log

import (
	"fmt"
	"sync"
)

// DefaultMaxLines is the number of messages a Filtered keeps by default.
const DefaultMaxLines = 20

// Filtered collects warnings and errors reported while serving a request
// (rejected directories, malformed patterns). Only the first limit errors
// are kept; the rest are counted. Safe for concurrent use.
type Filtered struct {
	title string
	limit int

	mu      sync.Mutex
	info    []string
	errors  []string
	count   int
	skipped int
}

// NewFiltered returns a Filtered that prefixes its error summary with title.
// A limit of zero or less uses DefaultMaxLines.
func NewFiltered(title string, limit int) *Filtered {
	if limit <= 0 {
		limit = DefaultMaxLines
	}
	return &Filtered{title: title, limit: limit}
}

// Info records an informational message.
func (f *Filtered) Info(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.info = append(f.info, fmt.Sprintf(format, args...))
}

// Error records an error message, or counts it once the limit is reached.
func (f *Filtered) Error(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.count >= f.limit {
		f.skipped++
		return
	}
	if f.count == 0 && f.title != "" {
		f.errors = append(f.errors, f.title)
	}
	f.count++
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

// InfoMessages returns a copy of the informational messages.
func (f *Filtered) InfoMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.info...)
}

// ErrorMessages returns the recorded errors. When errors were dropped a
// final line states how many.
func (f *Filtered) ErrorMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.errors...)
	if f.skipped > 0 {
		out = append(out, fmt.Sprintf("  ... skipped logging of %d additional errors ...", f.skipped))
	}
	return out
}

// HasErrors reports whether any error was reported.
func (f *Filtered) HasErrors() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count > 0
}
