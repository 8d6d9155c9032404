package viewer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/srcview/internal/admission"
	"github.com/jpl-au/srcview/internal/config"
	"github.com/jpl-au/srcview/internal/marker"
	"github.com/jpl-au/srcview/internal/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree creates files (slash paths relative to root) and returns the
// normalised root.
func tree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("class "+filepath.Base(f)+" {}\n"), 0644))
	}
	return path.Normalise(root)
}

func snapshot(t *testing.T, set map[string]string) config.Snapshot {
	t.Helper()
	var c config.Config
	for k, v := range set {
		require.NoError(t, c.Set(k, v))
	}
	return c.Snapshot()
}

func TestLocate_Workspace(t *testing.T) {
	ws := tree(t, "src/Main.java", "lib/Util.java")
	v := New(config.DefaultSnapshot())

	got, err := v.Locate(ws, nil, "src/Main.java", admission.Discard)
	require.NoError(t, err)
	assert.Equal(t, ws+"/src/Main.java", got)

	got, err = v.Locate(ws, nil, ws+"/lib/Util.java", admission.Discard)
	require.NoError(t, err)
	assert.Equal(t, ws+"/lib/Util.java", got)
}

func TestLocate_SourceDirectories(t *testing.T) {
	ws := tree(t, "module/src/main/java/Greeter.java")
	v := New(config.DefaultSnapshot())

	_, err := v.Locate(ws, nil, "Greeter.java", admission.Discard)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := v.Locate(ws, []string{"module/src/main/java"}, "Greeter.java", admission.Discard)
	require.NoError(t, err)
	assert.Equal(t, ws+"/module/src/main/java/Greeter.java", got)

	got, err = v.Locate(ws, []string{"glob:**/java"}, "Greeter.java", admission.Discard)
	require.NoError(t, err)
	assert.Equal(t, ws+"/module/src/main/java/Greeter.java", got)
}

func TestLocate_Approved(t *testing.T) {
	ws := tree(t)
	shared := tree(t, "Shared.java")

	rejected := New(config.DefaultSnapshot())
	_, err := rejected.Locate(ws, []string{shared}, "Shared.java", admission.Discard)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = rejected.Locate(ws, []string{shared}, shared+"/Shared.java", admission.Discard)
	assert.ErrorIs(t, err, ErrNotPermitted)

	approved := New(snapshot(t, map[string]string{"sources.approved": shared}))
	got, err := approved.Locate(ws, []string{shared}, "Shared.java", admission.Discard)
	require.NoError(t, err)
	assert.Equal(t, shared+"/Shared.java", got)
}

func TestLocate_Escape(t *testing.T) {
	outer := tree(t, "secret.txt", "ws/Main.java")
	v := New(config.DefaultSnapshot())

	_, err := v.Locate(outer+"/ws", nil, "../secret.txt", admission.Discard)
	assert.ErrorIs(t, err, ErrNotPermitted)

	_, err = v.Locate(outer+"/ws", nil, outer+"/secret.txt", admission.Discard)
	assert.ErrorIs(t, err, ErrNotPermitted)
}

func TestLocate_RelativeOutsideDirectory(t *testing.T) {
	outer := tree(t, "secrets/Key.java", "ws/Main.java")
	ws := outer + "/ws"

	v := New(config.DefaultSnapshot())
	_, err := v.Locate(ws, []string{"../secrets"}, "Key.java", admission.Discard)
	assert.ErrorIs(t, err, ErrNotPermitted)
	_, err = v.Locate(ws, []string{"../secrets"}, outer+"/secrets/Key.java", admission.Discard)
	assert.ErrorIs(t, err, ErrNotPermitted)

	got, err := v.Locate(ws, []string{"../secrets"}, "Main.java", admission.Discard)
	require.NoError(t, err, "the workspace is still searched")
	assert.Equal(t, ws+"/Main.java", got)

	approved := New(snapshot(t, map[string]string{"sources.approved": outer + "/secrets"}))
	got, err = approved.Locate(ws, []string{"../secrets"}, "Key.java", admission.Discard)
	require.NoError(t, err)
	assert.Equal(t, outer+"/secrets/Key.java", got)
}

// link creates a symbolic link or skips the test where the platform does
// not allow it.
func link(t *testing.T, target, name string) {
	t.Helper()
	if err := os.Symlink(filepath.FromSlash(target), filepath.FromSlash(name)); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

func TestLocate_Symlink(t *testing.T) {
	ws := tree(t, "Main.java")
	outside := tree(t, "Secret.java")
	link(t, outside, ws+"/linked")
	link(t, outside+"/Secret.java", ws+"/Secret.java")
	link(t, ws+"/Main.java", ws+"/Alias.java")
	v := New(config.DefaultSnapshot())

	tests := []struct {
		name string
		file string
		want error
	}{
		{"directory link", "linked/Secret.java", ErrNotPermitted},
		{"file link", "Secret.java", ErrNotPermitted},
		{"absolute through link", ws + "/linked/Secret.java", ErrNotPermitted},
		{"link inside workspace", "Alias.java", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Locate(ws, nil, tt.file, admission.Discard)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ws+"/"+tt.file, got)
		})
	}

	_, _, err := v.ViewFile(ws, nil, "linked/Secret.java", marker.NewBuilder().Build(), admission.Discard)
	assert.ErrorIs(t, err, ErrNotPermitted)
}

func TestLocate_SymlinkApproved(t *testing.T) {
	ws := tree(t)
	outside := tree(t, "Secret.java")
	link(t, outside, ws+"/linked")

	v := New(snapshot(t, map[string]string{"sources.approved": outside}))
	got, err := v.Locate(ws, []string{outside}, "linked/Secret.java", admission.Discard)
	require.NoError(t, err, "the link target is an approved directory")
	assert.Equal(t, ws+"/linked/Secret.java", got)
}

func TestLocate_Directory(t *testing.T) {
	ws := tree(t, "src/Main.java")
	v := New(config.DefaultSnapshot())

	_, err := v.Locate(ws, nil, "src", admission.Discard)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = v.Locate(ws, nil, "", admission.Discard)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestViewFile(t *testing.T) {
	ws := tree(t, "src/Main.java")
	v := New(config.DefaultSnapshot())
	m := marker.NewBuilder().LineStart(1).Title("Unused class").Build()

	html, resolved, err := v.ViewFile(ws, nil, "src/Main.java", m, admission.Discard)
	require.NoError(t, err)
	assert.Equal(t, ws+"/src/Main.java", resolved)
	assert.Contains(t, html, `class="language-java line-numbers highlight match-braces"`)
	assert.Contains(t, html, "Unused class")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestView_ReadFailure(t *testing.T) {
	v := New(config.DefaultSnapshot())
	out := v.View("Main.java", failingReader{}, marker.NewBuilder().Build())
	assert.True(t, strings.HasPrefix(out, "reading Main.java: disk on fire"), out)
}

func TestView_MaxLineLength(t *testing.T) {
	v := New(snapshot(t, map[string]string{"limits.max_line_length": "16"}))
	out := v.View("Main.java", strings.NewReader(strings.Repeat("x", 64)), marker.NewBuilder().Build())
	assert.Contains(t, out, "token too long")
}

func TestIconPrefix(t *testing.T) {
	tests := []struct {
		prefix, icon, want string
	}{
		{"", "warning.svg", "warning.svg"},
		{"/static/icons/", "warning.svg", "/static/icons/warning.svg"},
		{"/static/icons", "warning.svg", "/static/icons/warning.svg"},
		{"/static/icons", "/plugin/xyz/icon", "/plugin/xyz/icon"},
		{"/static/icons", "https://example.com/i.png", "https://example.com/i.png"},
		{"/static/icons", "data:image/png;base64,AA==", "data:image/png;base64,AA=="},
		{"/static/icons", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+"|"+tt.icon, func(t *testing.T) {
			assert.Equal(t, tt.want, IconPrefix(tt.prefix).ImagePath(tt.icon))
		})
	}
}

func TestView_IconPrefix(t *testing.T) {
	v := New(snapshot(t, map[string]string{"appearance.icon_prefix": "/static/icons"}))
	m := marker.NewBuilder().LineStart(1).Icon("error.svg").Build()

	out := v.View("a.c", strings.NewReader("int x;\n"), m)
	assert.Contains(t, out, `<img src="/static/icons/error.svg" class="icon-md">`)
}
