package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	csvparsers "github.com/richardrobinson0924/CSVParsers"
)

var (
	flagFields    string
	flagProfile   string
	flagSeparator string
	flagHeader    bool
	flagColor     string
)

var rootCmd = &cobra.Command{
	Use:   "csvp",
	Short: "Typed row parser for delimiter-separated text",
	Long: `csvp parses delimiter-separated text into typed rows, one row per line.

The column layout is declared up front, either with --fields ("name:type"
pairs; types: string, int, uint, float, bool, date, duration, bytes) or
with a TOML profile (--profile).  Input is read from a file argument or
from stdin.

Examples:
  csvp print -f "id:int, name:string" data.csv
  cat data.csv | csvp print -f "id:int, name:string"
  csvp load -p profile.toml data.csv`,
}

// Execute runs the root command, exiting non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "csvp:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFields, "fields", "f", "", `column spec, e.g. "id:int, name:string"`)
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "TOML profile path")
	rootCmd.PersistentFlags().StringVarP(&flagSeparator, "separator", "s", "", "field separator (single character, default ,)")
	rootCmd.PersistentFlags().BoolVar(&flagHeader, "header", false, "treat the first line as a header row")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "colorize output: auto, always, never")
}

// settings merges the profile file (if any) with command line flags;
// flags win.
func settings() (*Profile, error) {
	prof := NewProfile()
	if flagProfile != "" {
		if err := prof.Load(flagProfile); err != nil {
			return nil, fmt.Errorf("loading profile: %w", err)
		}
	}
	if flagFields != "" {
		prof.Columns = flagFields
	}
	if flagSeparator != "" {
		prof.Separator = flagSeparator
	}
	if flagHeader {
		prof.Header = true
	}
	return prof, nil
}

// newRowReader builds a reader over the input from the merged settings.
func newRowReader(prof *Profile, in io.Reader) (*csvparsers.Reader[csvparsers.Row], error) {
	fields, err := prof.Fields()
	if err != nil {
		return nil, err
	}
	opts, err := prof.Options()
	if err != nil {
		return nil, err
	}
	return csvparsers.NewRowReader(in, fields, opts...)
}

// openInput returns the file named by args, or stdin when absent or "-".
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(args[0])
}
