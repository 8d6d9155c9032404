// admit.go implements the "srcview admit" command.

package source

import (
	"fmt"
	"os"

	"github.com/jpl-au/srcview/cmd"
	"github.com/jpl-au/srcview/internal/admission"
	"github.com/jpl-au/srcview/internal/log"
	"github.com/spf13/cobra"
)

// newSink collects warnings for a single command.
func newSink() *log.Filtered {
	return log.NewFiltered("", 0)
}

// warnings returns the collected errors, or nil when there were none.
func warnings(sink *log.Filtered) []string {
	if !sink.HasErrors() {
		return nil
	}
	return sink.ErrorMessages()
}

// printWarnings writes collected warnings to stderr.
func printWarnings(msgs []string) {
	printTo("warning:", msgs)
}

func printTo(prefix string, messages []string) {
	if cmd.JSON() {
		return
	}
	for _, m := range messages {
		fmt.Fprintln(os.Stderr, prefix, m)
	}
}

func (e *Extension) newAdmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "admit [dir...]",
		Short: "Show which source directories may be read",
		Long: `Resolve requested source directories against the workspace.

  srcview admit src/main/java                # relative: resolved in the workspace
  srcview admit /abs/workspace/module        # inside: printed workspace-relative
  srcview admit /srv/shared                  # outside: only when approved
  srcview admit 'glob:**/src' 'regex:.*/gen' # patterns: matching directories

Rejected directories and malformed patterns are reported as warnings,
and the number of directories each pattern matched as notes.`,
		RunE: e.runAdmit,
	}
}

// admitResult is the JSON form of an admission.
type admitResult struct {
	Workspace string   `json:"workspace"`
	Permitted []string `json:"permitted"`
	Warnings  []string `json:"warnings,omitempty"`
	Info      []string `json:"info,omitempty"`
}

func (e *Extension) admit(requested []string) admitResult {
	sink := newSink()
	permitted := admission.New(e.ctx.Snapshot()).Permit(e.ctx.Workspace(), requested, sink)
	if permitted == nil {
		permitted = []string{}
	}
	return admitResult{
		Workspace: e.ctx.Workspace(),
		Permitted: permitted,
		Warnings:  warnings(sink),
		Info:      sink.InfoMessages(),
	}
}

func (e *Extension) runAdmit(_ *cobra.Command, args []string) error {
	res := e.admit(args)

	log.Event("source:admit", "admit").
		Author(cmd.Author()).
		Path(e.ctx.Workspace()).
		Detail("requested", len(args)).
		Detail("permitted", len(res.Permitted)).
		Detail("rejected", len(res.Warnings) > 0).
		Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	printTo("note:", res.Info)
	printWarnings(res.Warnings)
	for _, dir := range res.Permitted {
		fmt.Fprintln(cmd.Out(), dir)
	}
	return nil
}
