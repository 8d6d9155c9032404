// log.go implements the "srcview log" command: reading and pruning the
// audit log.

package core

import (
	"fmt"
	"time"

	"github.com/jpl-au/srcview/cmd"
	"github.com/jpl-au/srcview/internal/duration"
	"github.com/jpl-au/srcview/internal/log"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Show the audit log for this workspace",
		Long: `Show what srcview rendered, admitted and changed, newest first.

  srcview log                    # last 20 entries for this workspace
  srcview log --since 7d --all   # a week across all workspaces
  srcview log --source mcp: -n 5 # recent MCP calls
  srcview log --failed
  srcview log prune --older-than 3m`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}
	c.Flags().String("since", "", "Only entries newer than this (12h, 7d, 4w, 3m)")
	c.Flags().String("source", "", "Only this source, or a prefix ending in ':'")
	c.Flags().IntP("limit", "n", 20, "Maximum entries (0 for all)")
	c.Flags().Bool("failed", false, "Only failed operations")
	c.Flags().Bool("all", false, "Include other workspaces")

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete old audit entries from every workspace",
		Args:  cobra.NoArgs,
		RunE:  runLogPrune,
	}
	prune.Flags().String("older-than", "", "Delete entries older than this (12h, 7d, 4w, 3m)")
	_ = prune.MarkFlagRequired("older-than")
	c.AddCommand(prune)
	return c
}

// logEntry is the JSON form of an audit entry.
type logEntry struct {
	Time     time.Time      `json:"time"`
	Source   string         `json:"source"`
	Author   string         `json:"author,omitempty"`
	Action   string         `json:"action"`
	Path     string         `json:"path,omitempty"`
	Resolved string         `json:"resolved,omitempty"`
	Success  bool           `json:"success"`
	Error    string         `json:"error,omitempty"`
	Detail   map[string]any `json:"detail,omitempty"`
}

func runLog(c *cobra.Command, _ []string) error {
	since, _ := c.Flags().GetString("since")
	source, _ := c.Flags().GetString("source")
	limit, _ := c.Flags().GetInt("limit")
	failed, _ := c.Flags().GetBool("failed")
	all, _ := c.Flags().GetBool("all")

	f := log.Filter{Source: source, Limit: limit, FailedOnly: failed, AllProjects: all}
	if since != "" {
		t, err := duration.Before(time.Now(), since)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		f.Since = t
	}

	entries, err := log.Query(f)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("audit log: %w", err))
	}

	if cmd.JSON() {
		out := make([]logEntry, len(entries))
		for i, e := range entries {
			out[i] = logEntry{
				Time:     time.Unix(e.Start, 0).UTC(),
				Source:   e.Source,
				Author:   e.Author,
				Action:   e.Action,
				Path:     e.Path,
				Resolved: e.Resolved,
				Success:  e.Success,
				Error:    e.Error,
				Detail:   e.Detail,
			}
		}
		return cmd.PrintJSON(out)
	}

	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "FAILED: " + e.Error
		}
		fmt.Fprintf(cmd.Out(), "%s  %-20s %-8s %s  %s\n",
			time.Unix(e.Start, 0).Format(time.DateTime), e.Source, e.Action, e.Path, status)
	}
	return nil
}

func runLogPrune(c *cobra.Command, _ []string) error {
	olderThan, _ := c.Flags().GetString("older-than")
	before, err := duration.Before(time.Now(), olderThan)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	n, err := log.Prune(before)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("audit log: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]int64{"deleted": n})
	}
	fmt.Fprintf(cmd.Out(), "deleted %d entries\n", n)
	return nil
}
