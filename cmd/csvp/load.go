package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/richardrobinson0924/CSVParsers/pgcopy"
)

var flagTable string

var loadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Bulk-load a file into a PostgreSQL table",
	Long: `load streams the file's typed rows into a PostgreSQL table with the
COPY protocol, one pass, without materializing the file in memory.

The database connection comes from the profile's [database] section; the
target table from --table or the profile's database.table entry.  Column
names in the spec must match the table's column names.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVarP(&flagTable, "table", "t", "", "target table name")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	prof, err := settings()
	if err != nil {
		return err
	}
	table := flagTable
	if table == "" {
		table = prof.Database.Table
	}
	if table == "" {
		return fmt.Errorf("no target table (use --table or the profile's database.table entry)")
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

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, prof.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer conn.Close(ctx)

	n, err := pgcopy.CopyAll(ctx, conn, pgx.Identifier{table}, nil, reader)
	if err != nil {
		return err
	}
	fmt.Printf("loaded %d row(s) into %s\n", n, table)
	return nil
}
