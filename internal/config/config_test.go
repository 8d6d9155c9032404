package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/srcview/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global and local scopes at fresh temp directories.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, theme.Default, c.Theme())
	assert.Equal(t, DefaultMaxLineLength, c.MaxLineLength())
	assert.Empty(t, c.Approved())
	assert.False(t, c.IsSet("appearance.theme"))
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"author.name", "Ada", "Ada"},
		{"author.email", "ada@example.com", "ada@example.com"},
		{"appearance.theme", "Solarized_Light", "solarized-light"},
		{"appearance.icon_prefix", "/static/icons/", "/static/icons/"},
		{"sources.approved", `/b, C:\work\src ,/a,/b`, "/a,/b,C:/work/src"},
		{"limits.max_line_length", "4096", "4096"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var c Config
			require.NoError(t, c.Set(tt.key, tt.value))
			got, err := c.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, c.IsSet(tt.key))
			assert.Equal(t, tt.want, c.All()[tt.key])
		})
	}
}

func TestSet_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"appearance.theme", "neon"},
		{"sources.approved", "relative/dir"},
		{"limits.max_line_length", "0"},
		{"limits.max_line_length", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			var c Config
			assert.ErrorIs(t, c.Set(tt.key, tt.value), ErrInvalidValue)
		})
	}
}

func TestUnknownKey(t *testing.T) {
	var c Config
	_, err := c.Get("sync.files")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.ErrorIs(t, c.Set("sync.files", "true"), ErrUnknownKey)
	assert.False(t, IsValidKey("sync.files"))
	assert.True(t, IsValidKey("sources.approved"))
	assert.True(t, IsProtectedKey("sources.approved"))
	assert.False(t, IsProtectedKey("appearance.theme"))
}

func TestApproveRevoke(t *testing.T) {
	var c Config

	added, err := c.Approve(`C:\shared\src\`)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = c.Approve("C:/shared/src")
	require.NoError(t, err)
	assert.False(t, added, "normalised duplicate")

	_, err = c.Approve("relative")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = c.Approve("/opt/src")
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/src", "C:/shared/src"}, c.Approved())

	assert.True(t, c.Revoke("/opt/src/"))
	assert.False(t, c.Revoke("/opt/src"))
	assert.Equal(t, []string{"C:/shared/src"}, c.Approved())

	assert.Equal(t, 1, c.ClearApproved())
	assert.Empty(t, c.Approved())
}

func TestSnapshot_Immutable(t *testing.T) {
	var c Config
	_, err := c.Approve("/one")
	require.NoError(t, err)
	require.NoError(t, c.Set("appearance.theme", "coy"))

	snap := c.Snapshot()
	_, err = c.Approve("/two")
	require.NoError(t, err)
	require.NoError(t, c.Set("appearance.theme", "dark"))

	assert.Equal(t, []string{"/one"}, snap.Approved())
	assert.Equal(t, theme.Coy, snap.Theme())

	// Returned slices are copies
	snap.Approved()[0] = "/changed"
	assert.Equal(t, []string{"/one"}, snap.Approved())
}

func TestSnapshot_Zero(t *testing.T) {
	var snap Snapshot
	assert.Equal(t, theme.Default, snap.Theme())
	assert.Equal(t, DefaultMaxLineLength, snap.MaxLineLength())
	assert.Equal(t, DefaultSnapshot().Theme(), snap.Theme())
}

func TestLoad_Scopes(t *testing.T) {
	home, work := isolate(t)

	// Nothing on disk: global scope with defaults
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeGlobal, c.Scope())

	require.NoError(t, c.Set("appearance.theme", "okaidia"))
	_, err = c.Approve("/srv/shared")
	require.NoError(t, err)
	require.NoError(t, c.Save())
	assert.FileExists(t, filepath.Join(home, Dir, "config.yaml"))

	c, err = Load()
	require.NoError(t, err)
	assert.Equal(t, theme.Okaidia, c.Theme())
	assert.Equal(t, []string{"/srv/shared"}, c.Approved())

	// A local file takes precedence
	local := &Config{}
	require.NoError(t, local.Set("appearance.theme", "twilight"))
	require.NoError(t, local.SaveScope(ScopeLocal))
	assert.FileExists(t, filepath.Join(work, Dir, "config.yaml"))

	c, err = Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, c.Scope())
	assert.Equal(t, theme.Twilight, c.Theme())
	assert.Empty(t, c.Approved())
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(Dir, 0755))

	require.NoError(t, os.WriteFile(LocalPath(), []byte("appearance: [unclosed"), 0644))
	_, err := LoadScope(ScopeLocal)
	assert.ErrorContains(t, err, "malformed config file")

	require.NoError(t, os.WriteFile(LocalPath(), []byte("appearance:\n  theme: neon\n"), 0644))
	_, err = LoadScope(ScopeLocal)
	assert.ErrorIs(t, err, ErrInvalidValue)

	require.NoError(t, os.WriteFile(LocalPath(), []byte("sources:\n  approved: [relative]\n"), 0644))
	_, err = LoadScope(ScopeLocal)
	assert.ErrorIs(t, err, ErrInvalidValue)

	require.NoError(t, os.WriteFile(LocalPath(), []byte("limits:\n  max_line_length: 0\n"), 0644))
	_, err = LoadScope(ScopeLocal)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestLoad_NormalisesApproved(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(Dir, 0755))
	require.NoError(t, os.WriteFile(LocalPath(), []byte("sources:\n  approved: ['C:\\work\\src\\', '/a//b/']\n"), 0644))

	c, err := LoadScope(ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, []string{"C:/work/src", "/a/b"}, c.Approved())
}
