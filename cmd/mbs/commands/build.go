package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <module.yaml>",
		Short: "Submit a module definition and build it to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := c.components.App.Build(cmd.Context(), args[0])
			if module != nil {
				if printErr := printModule(cmd.OutOrStdout(), module); printErr != nil {
					return printErr
				}
			}
			return err
		},
	}
}

func (c *CLI) newSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <module.yaml>",
		Short: "Queue a module build without driving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := c.components.App.Submit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(module.ID.String() + "\n"))
			return err
		},
	}
}

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <module-id>",
		Short: "Drive a submitted or interrupted module build to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseModuleID(args[0])
			if err != nil {
				return zerr.With(zerr.Wrap(err, "invalid module id"), "id", args[0])
			}
			runErr := c.components.App.Run(cmd.Context(), id)
			module, err := c.components.App.Status(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := printModule(cmd.OutOrStdout(), module); err != nil {
				return err
			}
			return runErr
		},
	}
}
