// config.go implements the "srcview config" command.
//
// Config follows a cascade model similar to git: local config
// (.srcview/config.yaml) takes precedence over global (~/.srcview/config.yaml).
// The --local flag forces the local file even if it doesn't exist yet.

package core

import (
	"fmt"
	"slices"

	"github.com/jpl-au/srcview/cmd"
	"github.com/jpl-au/srcview/extension"
	"github.com/jpl-au/srcview/internal/config"
	"github.com/jpl-au/srcview/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  srcview config                          # show config
  srcview config appearance.theme         # show the theme
  srcview config appearance.theme okaidia # set the theme

Keys:
  author.name, author.email   recorded in the audit log
  appearance.theme            Prism theme (see: srcview theme)
  appearance.icon_prefix      URL prefix for relative marker icons
  sources.approved            comma separated absolute directories
  limits.max_line_length      longest source line in bytes

Configuration locations:
  Global: ~/.srcview/config.yaml
  Local:  .srcview/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.srcview/config.yaml)")
	return c
}

func loadConfig(c *cobra.Command) (*config.Config, error) {
	if forceLocal, _ := c.Flags().GetBool(extension.FlagLocal); forceLocal {
		return config.LoadScope(config.ScopeLocal)
	}
	return config.Load()
}

func scopeName(cfg *config.Config) string {
	if cfg.Scope() == config.ScopeLocal {
		return "local"
	}
	return "global"
}

func runConfig(c *cobra.Command, args []string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	switch len(args) {
	case 0:
		all := cfg.All()
		log.Event("core:config", "list").Author(cmd.Author()).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		keys := config.ValidKeys()
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Author(cmd.Author()).Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Detail("scope", scopeName(cfg)).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		v, _ := cfg.Get(args[0])
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "value": v, "scope": scopeName(cfg)})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], v, scopeName(cfg))
	}
	return nil
}
