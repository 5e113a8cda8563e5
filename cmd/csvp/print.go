package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/richardrobinson0924/CSVParsers/internal/format"
)

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Parse a file and pretty-print its typed rows",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPrint,
}

func init() {
	rootCmd.AddCommand(printCmd)
}

func runPrint(cmd *cobra.Command, args []string) error {
	prof, err := settings()
	if err != nil {
		return err
	}

	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()

	reader, err := newRowReader(prof, in)
	if err != nil {
		return err
	}

	// Set up stdout for handling colors
	var colorizer *format.Colorizer
	switch flagColor {
	case "always":
		colorizer = &format.DefaultColorizer
	case "never":
	case "auto":
		if isatty.IsTerminal(os.Stdout.Fd()) {
			colorizer = &format.DefaultColorizer
		}
	default:
		return fmt.Errorf("invalid --color value: %q (use auto, always, or never)", flagColor)
	}
	var stdout io.Writer = os.Stdout
	if colorizer != nil {
		stdout = colorable.NewColorableStdout()
	}

	printer := &format.RowPrinter{Out: stdout, Colorizer: colorizer}
	names := reader.Columns()
	badRows := 0
	for row, err := range reader.Rows() {
		if err != nil {
			badRows++
			fmt.Fprintln(os.Stderr, "csvp:", err)
			continue
		}
		if err := printer.PrintRow(names, reader.Values(row)); err != nil {
			return err
		}
	}
	if badRows > 0 {
		return fmt.Errorf("%d row(s) could not be parsed", badRows)
	}
	return nil
}
