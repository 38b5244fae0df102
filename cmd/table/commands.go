package table

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	createCmd = &cobra.Command{
		Use:   "create [db] [table] [fields...]",
		Short: "Creates a table with the given empty fields",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := append([]string{}, args[2:]...)
			if err := session.Store.CreateTable(args[0], args[1], fields); err != nil {
				return err
			}
			fmt.Printf("table %s created in database %s with %d field(s)\n", args[1], args[0], len(fields))
			return nil
		},
	}
	renameCmd = &cobra.Command{
		Use:   "rename [db] [old] [new]",
		Short: "Renames a table",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Store.RenameTable(args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("table %s renamed to %s\n", args[1], args[2])
			return nil
		},
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [db] [table]",
		Short: "Deletes a table and all of its fields",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Store.DeleteTable(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("table %s deleted from database %s\n", args[1], args[0])
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list [db]",
		Short: "Lists the tables of a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := session.Store.Tables(args[0])
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
	fieldsCmd = &cobra.Command{
		Use:   "fields [db] [table]",
		Short: "Lists the fields of a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := session.Store.Fields(args[0], args[1])
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
)
