// Package viewer shows a source file with an optional marker.
//
// A Viewer is built from a configuration snapshot taken at request entry.
// It finds the requested file inside the workspace or one of the permitted
// source directories, renders it and, when asked, wraps the fragment in a
// complete HTML page that links the configured Prism theme.
package viewer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/srcview/internal/admission"
	"github.com/jpl-au/srcview/internal/config"
	"github.com/jpl-au/srcview/internal/marker"
	"github.com/jpl-au/srcview/internal/path"
	"github.com/jpl-au/srcview/internal/render"
	"github.com/jpl-au/srcview/internal/theme"
)

var (
	// ErrNotFound is returned when no permitted directory contains the file.
	ErrNotFound = errors.New("source file not found")
	// ErrNotPermitted is returned for files outside every permitted directory.
	ErrNotPermitted = errors.New("source file is outside the permitted directories")
)

// Viewer renders source files. It is safe for concurrent use.
type Viewer struct {
	renderer *render.Renderer
	filter   *admission.Filter
	theme    theme.Theme
	maxLine  int
	assets   string
	images   render.ImageResolver
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithImageResolver replaces the icon prefix resolver.
func WithImageResolver(r render.ImageResolver) Option {
	return func(v *Viewer) {
		v.images = r
	}
}

// WithAssets sets the URL prefix of the Prism stylesheets and script
// linked from Page (e.g. "/static/prism/").
func WithAssets(prefix string) Option {
	return func(v *Viewer) {
		v.assets = prefix
	}
}

// New returns a Viewer for the given settings.
func New(snap config.Snapshot, opts ...Option) *Viewer {
	v := &Viewer{
		filter:  admission.New(snap),
		theme:   snap.Theme(),
		maxLine: snap.MaxLineLength(),
		images:  IconPrefix(snap.IconPrefix()),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.renderer = render.New(render.WithImageResolver(v.images))
	return v
}

// Theme returns the theme linked by Page.
func (v *Viewer) Theme() theme.Theme {
	return v.theme
}

// View renders the content of r. A read failure is returned as text in
// place of the HTML, so the caller can always display the result.
func (v *Viewer) View(fileName string, r io.Reader, m marker.Marker) string {
	return v.renderer.Render(fileName, render.Lines(r, v.maxLine), m)
}

// ViewFile locates name, then renders it. The resolved absolute path is
// returned alongside the HTML.
func (v *Viewer) ViewFile(workspace string, requested []string, name string, m marker.Marker, sink admission.ErrorSink) (html, resolved string, err error) {
	resolved, err = v.Locate(workspace, requested, name, sink)
	if err != nil {
		return "", "", err
	}
	f, err := os.Open(filepath.FromSlash(resolved))
	if err != nil {
		return "", resolved, fmt.Errorf("opening %s: %w", resolved, err)
	}
	defer f.Close()
	return v.View(name, f, m), resolved, nil
}

// Locate returns the absolute, normalised path of the regular file name.
//
// A relative name is looked up in the workspace first, then in each
// permitted source directory in sorted order. An absolute name must lie
// inside the workspace or a permitted directory. Names that climb out of
// the directory they are resolved against are not permitted.
//
// Only directories inside the workspace or approved in the configuration
// are searched. A permitted directory that is neither (a relative request
// such as "../x") is skipped. Symbolic links are followed, and the file
// they lead to must itself lie inside a searched directory.
func (v *Viewer) Locate(workspace string, requested []string, name string, sink admission.ErrorSink) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty file name", ErrNotFound)
	}
	workspace = path.Normalise(workspace)
	roots := []string{workspace}
	skipped := false
	for _, dir := range v.filter.Permit(workspace, requested, sink) {
		root := path.Resolve(workspace, dir)
		if !v.filter.Trusted(workspace, root) {
			skipped = true
			continue
		}
		roots = append(roots, root)
	}

	if path.IsAbs(name) {
		abs := path.Normalise(name)
		for _, root := range roots {
			if path.Within(root, abs) {
				if !isFile(abs) {
					return "", fmt.Errorf("%w: %s", ErrNotFound, name)
				}
				return contained(roots, abs, name)
			}
		}
		return "", fmt.Errorf("%w: %s", ErrNotPermitted, name)
	}

	denied := skipped
	for _, root := range roots {
		candidate := path.Resolve(root, name)
		if !path.Within(root, candidate) {
			denied = true
			continue
		}
		if isFile(candidate) {
			return contained(roots, candidate, name)
		}
	}
	if denied {
		return "", fmt.Errorf("%w: %s", ErrNotPermitted, name)
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// contained returns candidate when the file it resolves to, after
// following symbolic links, is inside one of roots (also resolved).
func contained(roots []string, candidate, name string) (string, error) {
	target, err := realPath(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	for _, root := range roots {
		resolved, err := realPath(root)
		if err != nil {
			resolved = root
		}
		if path.Within(resolved, target) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s links outside the permitted directories", ErrNotPermitted, name)
}

func realPath(p string) (string, error) {
	resolved, err := filepath.EvalSymlinks(filepath.FromSlash(p))
	if err != nil {
		return "", err
	}
	return path.Normalise(resolved), nil
}

func isFile(p string) bool {
	info, err := os.Stat(filepath.FromSlash(p))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IconPrefix resolves relative icon names against prefix. Absolute URLs,
// root-relative paths and data URIs are returned unchanged.
func IconPrefix(prefix string) render.ImageResolver {
	return render.ImageResolverFunc(func(icon string) string {
		if prefix == "" || icon == "" ||
			strings.HasPrefix(icon, "/") ||
			strings.HasPrefix(icon, "data:") ||
			strings.Contains(icon, "://") {
			return icon
		}
		return strings.TrimSuffix(prefix, "/") + "/" + icon
	})
}
