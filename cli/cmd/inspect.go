package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/faultline/cli/reader"
	"github.com/justapithecus/faultline/cli/render"
)

// InspectCommand returns the inspect command with subcommands.
// Inspect returns a deep view of a single crash bundle.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Inspect a single crash bundle",
		Subcommands: []*cli.Command{
			inspectCrashCommand(),
			inspectReportCommand(),
		},
	}
}

func inspectCrashCommand() *cli.Command {
	return &cli.Command{
		Name:      "crash",
		Usage:     "Inspect a crash bundle by ID",
		ArgsUsage: "<bundle-id>",
		Flags:     append(TUIReadOnlyFlags(), DirFlag),
		Action:    inspectCrashAction,
	}
}

func inspectCrashAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("bundle-id required", 1)
	}
	bundleID := c.Args().First()

	// Get renderer
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	resp, err := reader.NewDirReader(c.String("dir")).InspectCrash(bundleID)
	if err != nil {
		if errors.Is(err, reader.ErrBundleNotFound) {
			return cli.Exit(fmt.Sprintf("crash bundle not found: %s", bundleID), 2)
		}
		return cli.Exit(err.Error(), 1)
	}

	// Handle TUI mode
	if c.Bool("tui") {
		return r.RenderTUI("inspect_crash", resp)
	}

	// Standard render
	return r.Render(resp)
}

func inspectReportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Print the raw crash report text of a bundle",
		ArgsUsage: "<bundle-id>",
		Flags:     append(ReadOnlyFlags(), DirFlag),
		Action:    inspectReportAction,
	}
}

func inspectReportAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("bundle-id required", 1)
	}
	bundleID := c.Args().First()

	// Raw text output, no format machinery
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for report output", 1)
	}

	text, err := reader.NewDirReader(c.String("dir")).ReadReport(bundleID)
	if err != nil {
		if errors.Is(err, reader.ErrBundleNotFound) {
			return cli.Exit(fmt.Sprintf("crash bundle not found: %s", bundleID), 2)
		}
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprint(c.App.Writer, text)
	return nil
}
