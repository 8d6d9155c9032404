// context.go defines the Context handed to extensions.
//
// Extensions receive the Context during Init, after the CLI has resolved
// the workspace and loaded the configuration. The MCP server shares the
// same Context across concurrent tool calls, so configuration changes go
// through Update and readers take a Snapshot.

package extension

import (
	"sync"

	"github.com/jpl-au/srcview/internal/config"
	"github.com/jpl-au/srcview/internal/path"
	"github.com/jpl-au/srcview/internal/viewer"
)

// Context provides extensions controlled access to srcview internals.
type Context interface {
	// Workspace returns the absolute, normalised workspace directory.
	Workspace() string

	// Config returns the loaded configuration. Use Update to change it
	// while other goroutines may be reading.
	Config() *config.Config

	// Snapshot returns an immutable copy of the current settings.
	Snapshot() config.Snapshot

	// Viewer returns a viewer for the current settings.
	Viewer(opts ...viewer.Option) *viewer.Viewer

	// Read calls fn with the configuration while holding the read lock.
	Read(fn func(*config.Config))

	// Update applies fn to the configuration and saves it.
	// Nothing is saved when fn returns an error.
	Update(fn func(*config.Config) error) error
}

// extContext implements Context.
type extContext struct {
	workspace string

	mu  sync.RWMutex
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(workspace string, cfg *config.Config) Context {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &extContext{
		workspace: path.Normalise(workspace),
		cfg:       cfg,
	}
}

func (c *extContext) Workspace() string {
	return c.workspace
}

func (c *extContext) Config() *config.Config {
	return c.cfg
}

func (c *extContext) Snapshot() config.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Snapshot()
}

func (c *extContext) Viewer(opts ...viewer.Option) *viewer.Viewer {
	return viewer.New(c.Snapshot(), opts...)
}

func (c *extContext) Read(fn func(*config.Config)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.cfg)
}

func (c *extContext) Update(fn func(*config.Config) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := fn(c.cfg); err != nil {
		return err
	}
	return c.cfg.Save()
}
