package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [module-id]",
		Short: "Show one module build, or list all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				modules, err := c.components.App.List(cmd.Context())
				if err != nil {
					return err
				}
				return printModules(out, modules)
			}

			id, err := domain.ParseModuleID(args[0])
			if err != nil {
				return zerr.With(zerr.Wrap(err, "invalid module id"), "id", args[0])
			}
			module, err := c.components.App.Status(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printModule(out, module)
		},
	}
}

// printModule writes the module header followed by its components ordered by batch.
func printModule(w io.Writer, m *domain.ModuleBuild) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "MODULE\t%s\n", m.ID)
	_, _ = fmt.Fprintf(tw, "NAME\t%s\n", m.Name)
	_, _ = fmt.Fprintf(tw, "STATE\t%s\n", m.State)
	_, _ = fmt.Fprintf(tw, "BATCH\t%d\n", m.Batch)
	if m.StateReason != "" {
		_, _ = fmt.Fprintf(tw, "REASON\t%s\n", m.StateReason)
	}
	if m.FailureType != domain.FailureNone {
		_, _ = fmt.Fprintf(tw, "FAILURE\t%s\n", m.FailureType)
	}
	_, _ = fmt.Fprintln(tw)

	_, _ = fmt.Fprintln(tw, "BATCH\tPACKAGE\tSTATE\tTASK\tNVR\tREUSED")
	last := 0
	for _, c := range m.Components {
		if c.Batch > last {
			last = c.Batch
		}
	}
	for batch := 1; batch <= last; batch++ {
		for _, c := range m.ComponentsInBatch(batch) {
			task := "-"
			if c.HasTask() {
				task = fmt.Sprintf("%d", c.TaskID)
			}
			nvr := c.NVR
			if nvr == "" {
				nvr = "-"
			}
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%t\n",
				c.Batch, c.Package, c.State, task, nvr, c.IsReused())
		}
	}
	return tw.Flush()
}

func printModules(w io.Writer, modules []*domain.ModuleBuild) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tSTATE\tBATCH\tCOMPONENTS")
	for _, m := range modules {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", m.ID, m.Name, m.State, m.Batch, len(m.Components))
	}
	return tw.Flush()
}
