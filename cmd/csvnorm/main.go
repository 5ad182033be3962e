// Command csvnorm normalizes the phone, ID, amount and date columns of a CSV
// file. With no flags it asks for the input and output files in native dialogs.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/csvnorm/internal/config"
	"github.com/JonMunkholm/csvnorm/internal/core"
	"github.com/JonMunkholm/csvnorm/internal/logging"
	"github.com/JonMunkholm/csvnorm/internal/picker"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// newPicker builds the interactive chooser; replaced in tests.
var newPicker = picker.New

type options struct {
	input   string
	output  string
	backend string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	code := 0

	cmd := &cobra.Command{
		Use:   "csvnorm",
		Short: "Normalize the columns of a CSV file",
		Long: `csvnorm trims every field, strips non-digits from the phone, SSN,
postal code and amount columns, and rewrites the date columns as MM/DD/YYYY.

Without flags it opens a file dialog for the input and a save dialog for the
output. --input and --output skip the matching dialog.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code = normalize(cmd.Context(), opts, stdout, stderr)
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "input CSV file (skips the open dialog)")
	flags.StringVarP(&opts.output, "output", "o", "", "output CSV file (skips the save dialog)")
	flags.StringVar(&opts.backend, "picker", "", "file chooser: native or tui (default from PICKER_BACKEND)")

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return code
}

func normalize(ctx context.Context, opts options, stdout, stderr io.Writer) int {
	// Overload lets a local .env win over the inherited environment.
	envErr := godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.backend != "" {
		cfg.Picker.Backend = opts.backend
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if envErr != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	slog.Debug("configuration loaded", "config", cfg.String())

	p, err := newPicker(cfg.Picker.Backend)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.input != "" || opts.output != "" {
		p = picker.Static{Input: opts.input, Output: opts.output, Fallback: p}
	}

	sel, err := picker.Select(ctx, p, cfg.Picker.DefaultOutputName)
	switch {
	case errors.Is(err, picker.ErrInputCanceled):
		fmt.Fprintln(stderr, "No file selected. Exiting.")
		return 0
	case errors.Is(err, picker.ErrOutputCanceled):
		fmt.Fprintln(stderr, "No output file selected. Exiting.")
		return 0
	case err != nil:
		return fail(stderr, err)
	}

	st, err := core.NewNormalizer(cfg.Normalize).Process(ctx, sel.Input, sel.Output)
	if err != nil {
		return fail(stderr, err)
	}

	slog.Info("run finished", "input", sel.Input, "output", sel.Output, "rows", st.Rows)
	fmt.Fprintf(stdout, "Normalization complete. Output saved to %s\n", sel.Output)
	return 0
}

func fail(stderr io.Writer, err error) int {
	slog.Error("normalization failed", "error", err)
	fmt.Fprintf(stderr, "Error: %s\n  %v\n", core.FormatUserError(err), err)
	return 1
}
