package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/sysprobe/sysprobe/internal/execx"
	"github.com/sysprobe/sysprobe/internal/run"
)

const version = "1.0.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sysprobe",
		Short:         "Collect and report host hardware and OS information",
		Long:          "sysprobe probes the running machine across hardware and OS domains\nand renders the collected facts as a console report or a structured document.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReport,
	}

	flags := rootCmd.Flags()
	flags.Bool("brief", false, "Skip expensive sub-probes (GL/Vulkan queries, connectivity test)")
	flags.BoolP("verbose", "v", false, "Enable expensive sub-probes and debug tracing")
	flags.Bool("json", false, "Output the report as JSON")
	flags.Bool("yaml", false, "Output the report as YAML")
	flags.Bool("no-color", false, "Disable colorized console output")
	flags.Duration("timeout", execx.DefaultTimeout, "Per-command timeout")

	viper.SetDefault("timeout", execx.DefaultTimeout)
	for flag, key := range map[string]string{
		"brief":    "brief",
		"verbose":  "verbose",
		"json":     "json",
		"yaml":     "yaml",
		"no-color": "no_color",
		"timeout":  "timeout",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
	viper.SetEnvPrefix("SYSPROBE")
	viper.AutomaticEnv()

	return rootCmd
}

func runReport(cmd *cobra.Command, args []string) (err error) {
	verbose := viper.GetBool("verbose")

	logger := log.New(os.Stderr)
	logger.SetLevel(log.ErrorLevel)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "An error occurred: %v\n", r)
			if verbose {
				os.Stderr.Write(debug.Stack())
			}
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	format := run.FormatConsole
	switch {
	case viper.GetBool("json"):
		format = run.FormatJSON
	case viper.GetBool("yaml"):
		format = run.FormatYAML
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	err = run.Execute(ctx, run.Options{
		Brief:   viper.GetBool("brief"),
		Verbose: verbose,
		Format:  format,
		Color:   useColor(format),
		Timeout: viper.GetDuration("timeout"),
		Log:     logger,
		Out:     os.Stdout,
	})
	if errors.Is(err, run.ErrInterrupted) {
		fmt.Fprintln(os.Stderr, "Interrupted by user.")
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
	}
	return err
}

func useColor(format run.Format) bool {
	if format != run.FormatConsole || viper.GetBool("no_color") {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
