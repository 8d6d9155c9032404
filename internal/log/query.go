// query.go reads and prunes the audit log.

package log

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
)

// ErrNotOpen is returned by Query and Prune before Open succeeds.
var ErrNotOpen = errors.New("audit log is not open")

// Filter selects entries for Query. Zero fields match everything.
type Filter struct {
	Since       int64  // unix seconds; entries that started earlier are skipped
	Source      string // exact source, or a prefix ending in ':' such as "mcp:"
	FailedOnly  bool
	AllProjects bool // include entries from other workspaces
	Limit       int  // most recent entries first; 0 means no limit
}

// Query returns matching entries, newest first.
func Query(f Filter) ([]Entry, error) {
	mu.Lock()
	l := global
	mu.Unlock()
	if l == nil {
		return nil, ErrNotOpen
	}
	return l.query(f)
}

// Prune deletes entries that started before the given unix time, in every
// workspace, and returns how many were removed.
func Prune(before int64) (int64, error) {
	mu.Lock()
	l := global
	mu.Unlock()
	if l == nil {
		return 0, ErrNotOpen
	}
	res, err := l.db.Exec(`DELETE FROM log WHERE start < ?`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (l *Logger) query(f Filter) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if !f.AllProjects {
		where = append(where, "project = ?")
		args = append(args, l.project)
	}
	if f.Since > 0 {
		where = append(where, "start >= ?")
		args = append(args, f.Since)
	}
	switch {
	case strings.HasSuffix(f.Source, ":"):
		where = append(where, "source LIKE ? ESCAPE '\\'")
		args = append(args, escapeLike(f.Source)+"%")
	case f.Source != "":
		where = append(where, "source = ?")
		args = append(args, f.Source)
	}
	if f.FailedOnly {
		where = append(where, "success = 0")
	}

	q := `SELECT start, end, source, author, action, path, resolved_path, success, error, detail FROM log`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := l.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                                    Entry
			author, path, resolved, errText, det sql.NullString
			success                              int
		)
		if err := rows.Scan(&e.Start, &e.End, &e.Source, &author, &e.Action,
			&path, &resolved, &success, &errText, &det); err != nil {
			return nil, err
		}
		e.Author = author.String
		e.Path = path.String
		e.Resolved = resolved.String
		e.Success = success == 1
		e.Error = errText.String
		if det.Valid {
			_ = json.Unmarshal([]byte(det.String), &e.Detail)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
