// Package commands implements the CLI commands for portway.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/portway/internal/adapters/detector"
	"go.trai.ch/portway/internal/app"
	"go.trai.ch/portway/internal/build"
)

// CLI represents the command line interface for portway.
type CLI struct {
	app       Application
	rootCmd   *cobra.Command
	setFormat func(detector.LogFormat)
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Watch(ctx context.Context, path string, opts app.RunOptions) error
}

// Option configures a CLI.
type Option func(*CLI)

// WithLogFormatter sets the function receiving the resolved --log-format.
func WithLogFormatter(fn func(detector.LogFormat)) Option {
	return func(c *CLI) {
		c.setFormat = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "portway",
		Short:         "Run an input through a processor and deliver the result to sinks",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (default: portway.yaml if present)")
	rootCmd.PersistentFlags().String("log-format", "auto", "Log format: auto, pretty, or json")
	rootCmd.PersistentFlags().Bool("trace", false, "Log a line for every finished pipeline span")

	c := &CLI{
		app:       a,
		rootCmd:   rootCmd,
		setFormat: func(detector.LogFormat) {},
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		flag, _ := cmd.Flags().GetString("log-format")
		c.setFormat(detector.ResolveLogFormat(detector.DetectLogFormat(), flag))
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error writers for the root command.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("processor", "p", "", "Processor kind: identity or expression (default from config)")
	cmd.Flags().String("expr", "", "Expression evaluated against the input; implies --processor=expression")
	cmd.Flags().StringSliceP("sink", "s", nil, "Sink kind: console, memory, sqlite, redis, or journal (repeatable)")
	cmd.Flags().String("delivery", "", "Delivery mode for several sinks: sequential or parallel")
}

func pipelineOptions(cmd *cobra.Command) app.RunOptions {
	configPath, _ := cmd.Flags().GetString("config")
	processor, _ := cmd.Flags().GetString("processor")
	expression, _ := cmd.Flags().GetString("expr")
	sinks, _ := cmd.Flags().GetStringSlice("sink")
	delivery, _ := cmd.Flags().GetString("delivery")
	trace, _ := cmd.Flags().GetBool("trace")

	return app.RunOptions{
		ConfigPath: configPath,
		Processor:  processor,
		Expression: expression,
		Sinks:      sinks,
		Delivery:   delivery,
		Trace:      trace,
	}
}
