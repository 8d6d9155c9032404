package extension

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/jpl-au/srcview/internal/config"
	"github.com/jpl-au/srcview/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_Update(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := config.LoadScope(config.ScopeGlobal)
	require.NoError(t, err)
	ctx := NewContext(`C:\work\project\`, cfg)
	assert.Equal(t, "C:/work/project", ctx.Workspace())

	before := ctx.Snapshot()
	require.NoError(t, ctx.Update(func(c *config.Config) error {
		return c.Set("appearance.theme", "funky")
	}))
	assert.Equal(t, theme.Default, before.Theme())
	assert.Equal(t, theme.Funky, ctx.Snapshot().Theme())
	assert.Equal(t, theme.Funky, ctx.Viewer().Theme())
	assert.FileExists(t, config.GlobalPath())

	boom := errors.New("boom")
	assert.ErrorIs(t, ctx.Update(func(*config.Config) error { return boom }), boom)
}

func TestContext_NilConfig(t *testing.T) {
	ctx := NewContext(filepath.FromSlash("/w"), nil)
	assert.NotNil(t, ctx.Config())
	assert.Equal(t, theme.Default, ctx.Snapshot().Theme())
}
