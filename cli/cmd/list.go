package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/faultline/cli/reader"
	"github.com/justapithecus/faultline/cli/render"
)

// listWarningThreshold is the number of items above which we warn about using --limit.
const listWarningThreshold = 100

// isStderrTTY returns true if stderr is a TTY.
func isStderrTTY() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// ListCommand returns the list command with subcommands.
// List returns thin slices, not inspect-level detail.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List crash bundles",
		Subcommands: []*cli.Command{
			listCrashesCommand(),
		},
	}
}

func listCrashesCommand() *cli.Command {
	return &cli.Command{
		Name:  "crashes",
		Usage: "List crash bundles in the report directory",
		Flags: append(BundleFlags(),
			&cli.StringFlag{
				Name:  "binary",
				Usage: "Filter by crashed executable name",
			},
			&cli.StringFlag{
				Name:  "signal",
				Usage: "Filter by signal name (e.g. SIGSEGV)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of crashes to return (0 = no limit)",
				Value: 0,
			},
		),
		Action: listCrashesAction,
	}
}

func listCrashesAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	// TUI not supported for list commands
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for list commands", 1)
	}

	opts := reader.ListCrashesOptions{
		Binary: c.String("binary"),
		Signal: c.String("signal"),
		Limit:  c.Int("limit"),
	}

	results, err := reader.NewDirReader(c.String("dir")).ListCrashes(opts)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	// Warn if output is large and --limit was not specified (TTY only to avoid noise in pipelines)
	if len(results) > listWarningThreshold && opts.Limit == 0 && isStderrTTY() {
		fmt.Fprintf(os.Stderr, "Warning: returning %d results. Consider using --limit to reduce output.\n\n", len(results))
	}

	return r.Render(results)
}
