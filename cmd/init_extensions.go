/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but are not initialised until the first
// command runs. By then the workspace flag is parsed and the configuration
// can be loaded once and shared through the Context.

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jpl-au/srcview/extension"
	"github.com/jpl-au/srcview/internal/config"
	"github.com/jpl-au/srcview/internal/log"
)

// noContextCommands lists commands that run without configuration.
var noContextCommands map[string]bool

// buildNoContextCommands collects the commands extensions declared
// contextless, plus cobra's own help and completion commands.
func buildNoContextCommands() map[string]bool {
	cmds := map[string]bool{
		"help":       true,
		"completion": true,
	}
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Contextless); ok {
			for _, name := range s.NoContextCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions loads configuration and injects the shared Context into
// every Initializable extension. Runs at most once per process.
func initExtensions() error {
	initOnce.Do(func() {
		ws, err := Workspace()
		if err != nil {
			initErr = err
			return
		}
		abs, err := filepath.Abs(ws)
		if err != nil {
			initErr = fmt.Errorf("resolve workspace %s: %w", ws, err)
			return
		}

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		extContext = extension.NewContext(abs, cfg)
		log.SetProject(extContext.Workspace())

		for _, ext := range extension.All() {
			if in, ok := ext.(extension.Initializable); ok {
				if err := in.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// ExtContext returns the shared Context, or nil before initialisation.
func ExtContext() extension.Context {
	return extContext
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noContextCommands = buildNoContextCommands()
	})
}
