// Package commands implements the CLI commands for the mbs module build scheduler.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/mbs/internal/adapters/config"
	"go.trai.ch/mbs/internal/app"
)

// Initializer builds the application components for the given configuration path.
type Initializer func(ctx context.Context, configPath string) (*app.Components, error)

// skipInitAnnotation marks commands that run without application components.
const skipInitAnnotation = "mbs/skip-init"

// CLI represents the command line interface for mbs.
type CLI struct {
	initialize Initializer
	components *app.Components
	rootCmd    *cobra.Command
}

// New creates a new CLI instance that initializes components lazily.
func New(initialize Initializer) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mbs",
		Short:         "Batch scheduler for module builds",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "Path to configuration file")

	c := &CLI{
		initialize: initialize,
		rootCmd:    rootCmd,
	}

	rootCmd.PersistentPreRunE = c.preRun

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newSubmitCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) preRun(cmd *cobra.Command, _ []string) error {
	if _, ok := cmd.Annotations[skipInitAnnotation]; ok {
		return nil
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	components, err := c.initialize(cmd.Context(), configPath)
	if err != nil {
		return err
	}
	c.components = components
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// Components returns the components initialized for the last command, or nil.
func (c *CLI) Components() *app.Components {
	return c.components
}

// Close releases the initialized components.
func (c *CLI) Close() error {
	if c.components == nil {
		return nil
	}
	return c.components.Close()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}
