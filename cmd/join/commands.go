package join

import (
	"fmt"

	"github.com/spf13/cobra"
)

// sources reads the source lists of a join command
func sources(cmd *cobra.Command) (dbs, tables, fields []string) {
	dbs, _ = cmd.Flags().GetStringSlice("dbs")
	tables, _ = cmd.Flags().GetStringSlice("tables")
	fields, _ = cmd.Flags().GetStringSlice("fields")
	return dbs, tables, fields
}

var (
	tablesCmd = &cobra.Command{
		Use:   "tables [db] [new-table]",
		Short: "Joins tables of one database into a new table of the same database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, tables, fields := sources(cmd)
			if err := session.Store.JoinTables(args[0], args[1], tables, fields); err != nil {
				return err
			}
			fmt.Printf("table %s created in database %s\n", args[1], args[0])
			return nil
		},
	}
	databasesCmd = &cobra.Command{
		Use:   "databases [new-db] [new-table]",
		Short: "Joins tables of several databases into a new database holding a single table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbs, tables, fields := sources(cmd)
			if err := session.Store.JoinDatabases(dbs, args[0], args[1], tables, fields); err != nil {
				return err
			}
			fmt.Printf("database %s created with table %s\n", args[0], args[1])
			return nil
		},
	}
	intoCmd = &cobra.Command{
		Use:   "into [db] [new-table]",
		Short: "Joins tables of several databases into a new table of an existing database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbs, tables, fields := sources(cmd)
			if err := session.Store.JoinIntoDatabase(dbs, args[0], args[1], tables, fields); err != nil {
				return err
			}
			fmt.Printf("table %s created in database %s\n", args[1], args[0])
			return nil
		},
	}
)
