// approve.go implements the "srcview approve" command group.
//
// Approved directories live in sources.approved of the configuration that
// was loaded (local if present, otherwise global). --local edits the
// workspace's .srcview/config.yaml instead.

package source

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/srcview/cmd"
	"github.com/jpl-au/srcview/extension"
	"github.com/jpl-au/srcview/internal/config"
	"github.com/jpl-au/srcview/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newApproveCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "approve",
		Short: "Manage approved source directories outside the workspace",
		Long: `Manage the directories outside the workspace that renders may read.

  srcview approve add /srv/shared/src   # approve a directory
  srcview approve rm /srv/shared/src    # revoke it
  srcview approve ls                    # list approved directories
  srcview approve clear                 # revoke everything`,
		Args: cobra.NoArgs,
		RunE: e.runApproveList,
	}
	c.PersistentFlags().Bool(extension.FlagLocal, false, "Use local config (.srcview/config.yaml)")

	c.AddCommand(&cobra.Command{
		Use:   "add <dir...>",
		Short: "Approve directories",
		Args:  cobra.MinimumNArgs(1),
		RunE:  e.runApproveAdd,
	})
	c.AddCommand(&cobra.Command{
		Use:     "rm <dir...>",
		Aliases: []string{"remove", "revoke"},
		Short:   "Revoke approved directories",
		Args:    cobra.MinimumNArgs(1),
		RunE:    e.runApproveRemove,
	})
	c.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List approved directories",
		Args:    cobra.NoArgs,
		RunE:    e.runApproveList,
	})
	c.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Revoke all approved directories",
		Args:  cobra.NoArgs,
		RunE:  e.runApproveClear,
	})
	return c
}

// update applies fn to the shared configuration, or to the local scope
// when --local is set.
func (e *Extension) update(c *cobra.Command, fn func(*config.Config) error) error {
	if local, _ := c.Flags().GetBool(extension.FlagLocal); local {
		cfg, err := config.LoadScope(config.ScopeLocal)
		if err != nil {
			return err
		}
		if err := fn(cfg); err != nil {
			return err
		}
		return cfg.Save()
	}
	return e.ctx.Update(fn)
}

// absolute makes a command line directory absolute against the working
// directory. Windows-style absolute paths are kept as given.
func absolute(dir string) (string, error) {
	if filepath.IsAbs(dir) || (len(dir) > 1 && dir[1] == ':') {
		return dir, nil
	}
	return filepath.Abs(dir)
}

type approveResult struct {
	Directory string `json:"directory"`
	Changed   bool   `json:"changed"`
}

func (e *Extension) runApproveAdd(c *cobra.Command, args []string) error {
	var results []approveResult
	err := e.update(c, func(cfg *config.Config) error {
		for _, arg := range args {
			dir, err := absolute(arg)
			if err != nil {
				return err
			}
			added, err := cfg.Approve(dir)
			if err != nil {
				return err
			}
			results = append(results, approveResult{Directory: dir, Changed: added})
		}
		return nil
	})
	log.Event("source:approve", "approve").Author(cmd.Author()).Detail("directories", args).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("approve: %w", err))
	}
	return printApprove(results, "approved", "already approved")
}

func (e *Extension) runApproveRemove(c *cobra.Command, args []string) error {
	var results []approveResult
	err := e.update(c, func(cfg *config.Config) error {
		for _, arg := range args {
			dir, err := absolute(arg)
			if err != nil {
				return err
			}
			results = append(results, approveResult{Directory: dir, Changed: cfg.Revoke(dir)})
		}
		return nil
	})
	log.Event("source:approve", "revoke").Author(cmd.Author()).Detail("directories", args).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("revoke: %w", err))
	}
	return printApprove(results, "revoked", "not approved")
}

func printApprove(results []approveResult, changed, unchanged string) error {
	if cmd.JSON() {
		return cmd.PrintJSON(results)
	}
	for _, r := range results {
		status := changed
		if !r.Changed {
			status = unchanged
		}
		fmt.Fprintf(cmd.Out(), "%s: %s\n", r.Directory, status)
	}
	return nil
}

func (e *Extension) runApproveList(c *cobra.Command, _ []string) error {
	var dirs []string
	if local, _ := c.Flags().GetBool(extension.FlagLocal); local {
		cfg, err := config.LoadScope(config.ScopeLocal)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		dirs = cfg.Approved()
	} else {
		dirs = e.ctx.Snapshot().Approved()
	}

	if cmd.JSON() {
		if dirs == nil {
			dirs = []string{}
		}
		return cmd.PrintJSON(dirs)
	}
	for _, d := range dirs {
		fmt.Fprintln(cmd.Out(), d)
	}
	return nil
}

func (e *Extension) runApproveClear(c *cobra.Command, _ []string) error {
	var n int
	err := e.update(c, func(cfg *config.Config) error {
		n = cfg.ClearApproved()
		return nil
	})
	log.Event("source:approve", "clear").Author(cmd.Author()).Detail("count", n).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("clear: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]int{"revoked": n})
	}
	fmt.Fprintf(cmd.Out(), "revoked %d directories\n", n)
	return nil
}
