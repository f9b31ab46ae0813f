package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/inclusivity/internal/config"
	"github.com/dshills/inclusivity/internal/patch"
	"github.com/dshills/inclusivity/internal/profile"
	"github.com/dshills/inclusivity/internal/render"
	"github.com/dshills/inclusivity/internal/review"
	"github.com/dshills/inclusivity/internal/scan"
	"github.com/dshills/inclusivity/internal/schema"
	_ "github.com/dshills/inclusivity/internal/source/golang"
	_ "github.com/dshills/inclusivity/internal/source/plaintext"
	_ "github.com/dshills/inclusivity/internal/source/ruby"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// checkFlags holds the parsed flags for the check command.
type checkFlags struct {
	config            string
	profileName       string
	format            string
	out               string
	autocorrect       bool
	diffOut           string
	include           []string
	exclude           []string
	jobs              int
	severityThreshold string
	failOn            string
	verbose           bool
}

func main() {
	root := &cobra.Command{
		Use:           "inclusivity",
		Short:         "Flag insensitive terms in source code",
		Long:          "Inclusivity finds insensitive terms in identifiers, literals and comments and proposes case-preserving alternatives.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var flags checkFlags
	checkCmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Scan files and directories for insensitive terms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args, flags)
		},
	}

	f := checkCmd.Flags()
	f.StringVar(&flags.config, "config", "", "Config file (default: .inclusivity.{yml,yaml,toml} in the working directory)")
	f.StringVar(&flags.profileName, "profile", "", "Built-in profile, overrides the config file")
	f.StringVar(&flags.format, "format", "text", "Output format: "+strings.Join(render.Formats, ", "))
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	f.BoolVarP(&flags.autocorrect, "autocorrect", "a", false, "Rewrite files with the first alternative")
	f.StringVar(&flags.diffOut, "diff-out", "", "Write corrections in diff-match-patch format to this file")
	f.StringArrayVar(&flags.include, "include", nil, "Only scan files matching this glob (may be repeated)")
	f.StringArrayVar(&flags.exclude, "exclude", nil, "Skip files matching this glob (may be repeated)")
	f.IntVar(&flags.jobs, "jobs", 0, "Files checked concurrently (default: number of CPUs)")
	f.StringVar(&flags.severityThreshold, "severity-threshold", "info", "Minimum severity to emit: info, warn, or critical")
	f.StringVar(&flags.failOn, "fail-on", "WARN", "Exit 2 if the verdict of uncorrected offenses is >= this level (WARN or FAIL)")
	f.BoolVar(&flags.verbose, "verbose", false, "Log processing steps to stderr")

	root.AddCommand(checkCmd, profilesCmd(), versionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(3)
	}
}

func profilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List built-in vocabulary profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range profile.Names() {
				p, err := profile.Get(name)
				if err != nil {
					return err
				}
				marker := ""
				if name == profile.Default {
					marker = " (default)"
				}
				fmt.Fprintf(tw, "%s%s\t%d terms\t%s\n", name, marker, len(p.Offenses), p.Description)
			}
			return tw.Flush()
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "inclusivity version %s\n", version)
		},
	}
}

func runCheck(ctx context.Context, paths []string, flags checkFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// --- Step 1: Validate flags ---
	if err := validateFlags(flags); err != nil {
		return codeError(3, "invalid flags: %s", err)
	}
	logger := newLogger(flags.verbose)
	if len(paths) == 0 {
		paths = []string{"."}
	}

	// --- Step 2: Load config and apply flag overrides ---
	cfg, err := config.Resolve(flags.config, ".")
	if err != nil {
		return codeError(3, "loading config: %s", err)
	}
	if flags.profileName != "" {
		cfg.Profile = flags.profileName
	}
	cfg.Include = append(cfg.Include, flags.include...)
	cfg.Exclude = append(cfg.Exclude, flags.exclude...)
	logger.Debug("config resolved", "path", cfg.Path, "profile", cfg.Profile)

	// --- Step 3: Build the linter ---
	linter, err := cfg.Linter()
	if err != nil {
		return codeError(3, "invalid config: %s", err)
	}
	policy, err := cfg.Policy()
	if err != nil {
		return codeError(3, "invalid config: %s", err)
	}

	// --- Step 4: Scan ---
	results, err := scan.Run(ctx, linter, scan.Options{
		Paths:       paths,
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		Jobs:        flags.jobs,
		Autocorrect: flags.autocorrect,
		Logger:      logger,
	})
	if err != nil {
		if ctx.Err() != nil {
			return codeError(1, "scan interrupted: %s", err)
		}
		return codeError(3, "%s", err)
	}

	// --- Step 5: Write corrections ---
	var changes []patch.Change
	for i := range results {
		r := &results[i]
		if !r.Changed() {
			continue
		}
		changes = append(changes, patch.Change{Path: r.Path, Before: string(r.Before), After: string(r.After)})
		logger.Info("correcting file", "path", r.Path)
		if err := r.Write(); err != nil {
			return codeError(1, "%s", err)
		}
	}

	// --- Step 6: Write diff ---
	if flags.diffOut != "" {
		logger.Debug("writing diff", "path", flags.diffOut, "files", len(changes))
		diffText := patch.GenerateDiff(changes, os.Stderr)
		if err := os.WriteFile(flags.diffOut, []byte(diffText), 0o644); err != nil {
			logger.Warn("diff write failed", "error", err)
		}
	}

	// --- Step 7: Build report; counts are taken before severity filtering ---
	files := make([]schema.FileResult, len(results))
	for i, r := range results {
		files[i] = r.FileResult
	}
	threshold, _ := schema.ParseSeverity(flags.severityThreshold)
	report := &schema.Report{
		Tool:    "inclusivity",
		Version: version,
		Input: schema.Input{
			Paths:             paths,
			Config:            cfg.Path,
			Profile:           cfg.Profile,
			Autocorrect:       flags.autocorrect,
			SeverityThreshold: flags.severityThreshold,
		},
		Summary: review.Summarize(files),
		Files:   review.FilterBySeverity(files, threshold),
		Meta: schema.Meta{
			Terms:          linter.Engine().Len(),
			AllowlistTerms: policy.Len(),
		},
	}

	// --- Step 8: Render output ---
	renderer, err := render.NewRenderer(flags.format)
	if err != nil {
		return codeError(3, "invalid format: %s", err)
	}
	outputBytes, err := renderer.Render(report)
	if err != nil {
		return codeError(3, "rendering output: %s", err)
	}
	if flags.out != "" {
		if err := os.WriteFile(flags.out, outputBytes, 0o644); err != nil {
			return codeError(3, "writing output file: %s", err)
		}
	} else {
		if _, err := os.Stdout.Write(outputBytes); err != nil {
			return codeError(3, "writing output: %s", err)
		}
		if len(outputBytes) > 0 && outputBytes[len(outputBytes)-1] != '\n' {
			fmt.Fprintln(os.Stdout)
		}
	}

	// --- Step 9: Evaluate --fail-on against what is left to fix ---
	verdict := review.Verdict(review.Outstanding(files))
	verdictThreshold := schema.Verdict(strings.ToUpper(flags.failOn))
	if schema.VerdictOrdinal(verdict) >= schema.VerdictOrdinal(verdictThreshold) {
		return codeError(2, "verdict %s meets or exceeds --fail-on threshold %s", verdict, verdictThreshold)
	}
	return nil
}

// validateFlags returns an error if any flag value is invalid.
func validateFlags(flags checkFlags) error {
	if !render.Supported(flags.format) {
		return fmt.Errorf("--format must be one of %s, got %q", strings.Join(render.Formats, ", "), flags.format)
	}

	switch schema.Verdict(strings.ToUpper(flags.failOn)) {
	case schema.VerdictWarn, schema.VerdictFail:
	default:
		return fmt.Errorf("--fail-on must be WARN or FAIL, got %q", flags.failOn)
	}

	switch flags.severityThreshold {
	case "info", "warn", "critical":
	default:
		return fmt.Errorf("--severity-threshold must be info, warn, or critical, got %q", flags.severityThreshold)
	}

	if flags.jobs < 0 {
		return fmt.Errorf("--jobs must be >= 0, got %d", flags.jobs)
	}

	if flags.diffOut != "" && !flags.autocorrect {
		return fmt.Errorf("--diff-out requires --autocorrect")
	}

	return nil
}

// newLogger returns a text logger on stderr; debug level when verbose.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
