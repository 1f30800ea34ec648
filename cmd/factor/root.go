package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seantiz/factor/internal/config"
	"github.com/seantiz/factor/internal/engine"
	"github.com/seantiz/factor/internal/input"
	"github.com/seantiz/factor/internal/report"
)

// app carries state shared by the command tree for one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	v      *viper.Viper
	cfg    config.Config
	logger *slog.Logger
	code   int

	configFile string
	noColor    bool

	timeout    string
	elapsed    bool
	group      bool
	jsonOutput bool
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, v: config.New()}

	root := a.rootCmd()
	root.AddCommand(a.serveCmd())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	// An interrupt stops the search at the next candidate and the factors
	// found so far are still reported.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, input.ErrUsage) {
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return report.ExitInvalid
	}
	return a.code
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factor <INTEGER> [TIMEOUT]",
		Short: "Print the prime factors of an unsigned 64-bit integer",
		Long: `Factors INTEGER by trial division and prints either its prime factors
with multiplicity or a statement that it is prime.

INTEGER may use commas or underscores as grouping separators (one kind per
number). TIMEOUT is whole seconds or a duration such as 1500ms; when it
elapses the factors found so far are printed and the exit status is 2.`,
		Example: `  factor 600,851,475,143
  factor 18446744073709551557 10
  factor --json --timeout 2s 1_000_000_007`,
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.factor,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Configuration file (yaml, toml or json). Overridden by environment variables and flags.")
	pf.String(config.KeyLogLevel, "", "Log level: debug, info, warn or error")
	pf.String(config.KeyLogFormat, "", "Log format: text or json")
	pf.BoolVar(&a.noColor, "no-color", false, "Disable colored log output")

	f := cmd.Flags()
	f.StringVarP(&a.timeout, "timeout", "t", "", "Stop searching after this long (seconds or duration)")
	f.BoolVarP(&a.elapsed, "elapsed", "e", false, "Print the time spent searching")
	f.BoolVarP(&a.group, "group", "g", false, "Print numbers with thousands separators")
	f.BoolVar(&a.jsonOutput, "json", false, "Print the run as JSON")

	return cmd
}

// setup resolves configuration and the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "serve" {
		a.v.SetDefault(config.KeyLogFormat, config.FormatJSON)
	} else {
		a.v.SetDefault(config.KeyLogLevel, "warn")
	}

	if a.configFile != "" {
		if err := config.ReadFile(a.v, a.configFile); err != nil {
			return err
		}
	}
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}

	a.cfg = config.FromViper(a.v)
	a.logger = config.NewLoggerFor(a.cfg, a.stderr, a.noColor || !colorable(a.stderr))
	return nil
}

func (a *app) factor(cmd *cobra.Command, args []string) error {
	if len(args) == 2 && a.timeout != "" {
		return fmt.Errorf("timeout given twice: %w", input.ErrUsage)
	}

	parsed, err := input.ParseArgs(args)
	if err != nil {
		return err
	}
	if a.timeout != "" {
		if parsed.Timeout, err = input.ParseTimeout(a.timeout); err != nil {
			return err
		}
		parsed.HasTimeout = true
	}

	eng := engine.NewEngine(a.logger)
	run, _ := eng.Run(cmd.Context(), engine.Request{
		Number:     parsed.Number,
		Timeout:    parsed.Timeout,
		HasTimeout: parsed.HasTimeout,
	})

	if a.jsonOutput {
		err = report.JSON(a.stdout, run)
	} else {
		err = report.Text(a.stdout, run, report.Options{Elapsed: a.elapsed, Group: a.group})
	}
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	a.code = report.ExitCode(run.Outcome)
	return nil
}

// colorable reports whether w is a terminal that honors ANSI colors.
func colorable(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
