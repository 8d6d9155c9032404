// Package glob provides the pattern matchers used to expand requested
// source directories.
//
// A requested directory may carry a scheme prefix:
//
//	glob:**/src     doublestar glob; ** matches any number of path segments,
//	                including none, so it crosses directory boundaries
//	regex:.*/src    regular expression that must match the whole path
//
// Patterns are matched against workspace-relative, slash-separated paths
// such as "module/src/main". Regular expressions use the .NET/Java flavoured
// syntax of regexp2 so that patterns written for JVM-based CI tools keep
// working (lookarounds, possessive-free backtracking).
package glob

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dlclark/regexp2"
)

// Scheme prefixes recognised by Compile.
const (
	PrefixGlob  = "glob:"
	PrefixRegex = "regex:"
)

// matchTimeout bounds a single regular expression evaluation.
const matchTimeout = time.Second

// ErrBadPattern indicates a malformed glob or regular expression.
var ErrBadPattern = errors.New("malformed pattern")

// Matcher reports whether a slash-separated relative path matches.
type Matcher interface {
	Match(path string) bool
	String() string
}

// IsPattern reports whether spec carries a glob: or regex: prefix.
func IsPattern(spec string) bool {
	return strings.HasPrefix(spec, PrefixGlob) || strings.HasPrefix(spec, PrefixRegex)
}

// Compile parses a prefixed pattern specification.
// Returns ErrBadPattern (wrapped) for malformed patterns or a missing prefix.
func Compile(spec string) (Matcher, error) {
	switch {
	case strings.HasPrefix(spec, PrefixGlob):
		pattern := strings.ReplaceAll(strings.TrimPrefix(spec, PrefixGlob), "\\", "/")
		if pattern == "" || !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, spec)
		}
		return globMatcher{spec: spec, pattern: pattern}, nil

	case strings.HasPrefix(spec, PrefixRegex):
		expr := strings.TrimPrefix(spec, PrefixRegex)
		if expr == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, spec)
		}
		// Anchor so the expression must match the whole path
		re, err := regexp2.Compile(`\A(?:`+expr+`)\z`, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrBadPattern, spec, err)
		}
		re.MatchTimeout = matchTimeout
		return regexMatcher{spec: spec, re: re}, nil

	default:
		return nil, fmt.Errorf("%w: %q has no glob: or regex: prefix", ErrBadPattern, spec)
	}
}

type globMatcher struct {
	spec    string
	pattern string
}

func (m globMatcher) Match(p string) bool {
	// Pattern was validated in Compile, so Match cannot fail on syntax
	ok, _ := doublestar.Match(m.pattern, p)
	return ok
}

func (m globMatcher) String() string { return m.spec }

type regexMatcher struct {
	spec string
	re   *regexp2.Regexp
}

func (m regexMatcher) Match(p string) bool {
	// A timeout counts as no match
	ok, err := m.re.MatchString(p)
	return err == nil && ok
}

func (m regexMatcher) String() string { return m.spec }
