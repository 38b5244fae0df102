package db

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	createCmd = &cobra.Command{
		Use:   "create [name]",
		Short: "Creates an empty database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Store.CreateDatabase(args[0]); err != nil {
				return err
			}
			fmt.Printf("database %s created\n", args[0])
			return nil
		},
	}
	renameCmd = &cobra.Command{
		Use:   "rename [old] [new]",
		Short: "Renames a database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Store.RenameDatabase(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("database %s renamed to %s\n", args[0], args[1])
			return nil
		},
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [name]",
		Short: "Deletes a database and all of its tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Store.DeleteDatabase(args[0]); err != nil {
				return err
			}
			fmt.Printf("database %s deleted\n", args[0])
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists all databases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range session.Store.Databases() {
				fmt.Println(name)
			}
			return nil
		},
	}
	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Deletes every database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return errors.New("refusing to delete every database without --yes")
			}
			if err := session.Store.Reset(); err != nil {
				return err
			}
			fmt.Println("store reset")
			return nil
		},
	}
)
