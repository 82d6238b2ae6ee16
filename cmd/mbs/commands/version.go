package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/mbs/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the application version",
		Annotations: map[string]string{skipInitAnnotation: ""},
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mbs version %s\n", build.Version)
		},
	}
}
