// Package log records what srcview was asked to show.
//
// Every rendered file, admission decision and configuration change is
// appended to ~/.srcview/log/srcview-log.db together with the workspace it
// happened in. Writing is best-effort: a failing audit log never fails the
// command that produced the entry.
//
//	log.Event("source:render", "render").
//		Author(cmd.Author()).
//		Path(file).
//		Detail("line_start", m.LineStart()).
//		Write(err)
//
// Sources are "{extension}:{command}" for CLI commands and "mcp:{tool}"
// for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is one audit record.
type Entry struct {
	Source string // e.g., "source:render", "mcp:srcview_admit"
	Author string
	Action string // render, admit, approve, revoke, set, ...

	Path     string // file or directory as requested
	Resolved string // absolute path actually read, when it differs

	Start int64 // unix seconds at Event()
	End   int64 // unix seconds at Write()

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder fills in an Entry. Create with [Event], finish with [Builder.Write].
type Builder struct {
	entry Entry
}

// Event starts an entry for the given source and action.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation ("mcp" for MCP tools).
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Path sets the requested file or directory.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Resolved sets the path that was actually opened.
// Call it once the lookup has succeeded.
func (b *Builder) Resolved(path string) *Builder {
	b.entry.Resolved = path
	return b
}

// Detail attaches operation specific data such as marker lines, the theme
// or the number of admitted directories. Values are stored as JSON.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write stores the entry; err decides between success and failure.
//
//	html, err := v.RenderFile(name, m)
//	log.Event("source:render", "render").Path(name).Write(err)
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Callers usually ignore the error: without a database nothing is recorded.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject tags subsequent entries with the workspace they belong to.
// Only a hash of the absolute workspace path is stored.
func SetProject(workspace string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(workspace)
	}
}

// Log writes an entry. A no-op until Open succeeds.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
