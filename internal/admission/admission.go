// Package admission decides which requested source directories may be read.
//
// A caller (a CLI invocation, an MCP request) names the directories it wants
// to search for source files. Directories inside the workspace are always
// permitted. Directories outside it must have been approved in the
// configuration beforehand, so a request cannot read arbitrary files from
// the machine. Requests may also be patterns ("glob:**/src",
// "regex:.*/main") expanded against the workspace tree.
//
// Permit never fails: malformed patterns and rejected directories are
// reported through the ErrorSink and skipped, and every other entry is
// still processed.
package admission

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/jpl-au/srcview/internal/config"
	"github.com/jpl-au/srcview/internal/glob"
	"github.com/jpl-au/srcview/internal/path"
)

// Unspecified is the sentinel entry some callers send for "no directory".
const Unspecified = "-"

// ErrorSink receives single-line, human readable warnings.
// Permit calls it from the calling goroutine and does not retain it.
type ErrorSink interface {
	Error(format string, args ...any)
}

// InfoSink is implemented by sinks that also take informational messages,
// such as how many directories a pattern matched. Permit reports them only
// when its sink implements it.
type InfoSink interface {
	Info(format string, args ...any)
}

// Discard is an ErrorSink that drops every message.
var Discard ErrorSink = discard{}

type discard struct{}

func (discard) Error(string, ...any) {}

// Filter applies Permit with a fixed set of approved directories.
// It holds no mutable state and is safe for concurrent use.
type Filter struct {
	approved []string
}

// New returns a Filter for the approved directories of a configuration
// snapshot.
func New(snap config.Snapshot) *Filter {
	return &Filter{approved: snap.Approved()}
}

// Trusted reports whether files under dir may be read without a new
// admission decision: dir is the workspace, lies inside it, or is an
// approved directory or one of its descendants.
func (f *Filter) Trusted(workspace, dir string) bool {
	workspace = path.Normalise(workspace)
	dir = path.Normalise(dir)
	if dir == workspace || path.Within(workspace, dir) {
		return true
	}
	for _, a := range f.approved {
		a = path.Normalise(a)
		if dir == a || path.Within(a, dir) {
			return true
		}
	}
	return false
}

// Permit is Permit with the filter's approved directories.
func (f *Filter) Permit(workspace string, requested []string, sink ErrorSink) []string {
	return Permit(workspace, f.approved, requested, sink)
}

// Permit returns the requested directories that may be read.
//
// Each entry is classified as follows:
//   - "" and "-" are ignored
//   - "glob:" and "regex:" patterns expand to the matching directories
//     under workspace, each then treated as an absolute entry
//   - relative paths resolve against workspace and are returned absolute,
//     without an approval check, even when they climb out ("../x")
//   - the workspace itself is dropped
//   - absolute paths inside workspace are returned workspace-relative
//   - absolute paths outside workspace are returned only when approved
//
// The result is sorted and free of duplicates.
func Permit(workspace string, approved, requested []string, sink ErrorSink) []string {
	if sink == nil {
		sink = Discard
	}
	p := permitter{
		workspace: path.Normalise(workspace),
		approved:  normaliseAll(approved),
		sink:      sink,
		seen:      map[string]bool{},
	}
	for _, r := range requested {
		p.classify(r)
	}
	slices.Sort(p.out)
	return p.out
}

// permitter carries the state of a single Permit call.
type permitter struct {
	workspace string
	approved  map[string]bool
	sink      ErrorSink
	seen      map[string]bool
	out       []string
}

func (p *permitter) classify(r string) {
	switch {
	case r == "" || r == Unspecified:
		return
	case glob.IsPattern(r):
		p.expand(r)
	case !path.IsAbs(r):
		p.relative(r)
	default:
		p.absolute(path.Normalise(r))
	}
}

func (p *permitter) relative(r string) {
	p.add(path.Resolve(p.workspace, r))
}

func (p *permitter) absolute(abs string) {
	if abs == p.workspace {
		return
	}
	if rel, ok := path.Rel(p.workspace, abs); ok {
		p.add(rel)
		return
	}
	if p.approved[abs] {
		p.add(abs)
		return
	}
	p.sink.Error("Removing non-workspace source directory '%s' - it has not been approved in Jenkins' global configuration", abs)
}

// expand walks the workspace and submits every matching directory.
func (p *permitter) expand(spec string) {
	m, err := glob.Compile(spec)
	if err != nil {
		p.sink.Error("Skipping source directory pattern: %v", err)
		return
	}
	if p.workspace == "" {
		p.sink.Error("Skipping source directory pattern '%s': no workspace", spec)
		return
	}

	root := filepath.FromSlash(p.workspace)
	matched := 0
	err = filepath.WalkDir(root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, the walk continues
			if name != root {
				p.sink.Error("Skipping unreadable directory '%s': %v", filepath.ToSlash(name), err)
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() || name == root {
			return nil
		}
		rel, err := filepath.Rel(root, name)
		if err != nil {
			return nil
		}
		if m.Match(filepath.ToSlash(rel)) {
			matched++
			p.absolute(path.Resolve(p.workspace, filepath.ToSlash(rel)))
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		p.sink.Error("Expanding '%s' failed: %v", spec, err)
		return
	}
	if info, ok := p.sink.(InfoSink); ok {
		info.Info("Pattern '%s' matched %d directories", spec, matched)
	}
}

func (p *permitter) add(dir string) {
	if p.seen[dir] {
		return
	}
	p.seen[dir] = true
	p.out = append(p.out, dir)
}

func normaliseAll(dirs []string) map[string]bool {
	set := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		if n := path.Normalise(d); n != "" {
			set[n] = true
		}
	}
	return set
}
