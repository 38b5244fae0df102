package field

import (
	"fmt"
	"strconv"

	"github.com/ValentinKolb/jDB/cmd/util"
	"github.com/spf13/cobra"
)

var (
	renameCmd = &cobra.Command{
		Use:   "rename [db] [table] [old] [new]",
		Short: "Renames a field, keeping its records",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Store.RenameField(args[0], args[1], args[2], args[3]); err != nil {
				return err
			}
			fmt.Printf("field %s renamed to %s\n", args[2], args[3])
			return nil
		},
	}
	appendCmd = &cobra.Command{
		Use:   "append [db] [table] [field] [value]",
		Short: "Appends a value to a field and prints its index",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := session.Store.AppendFieldContent(args[0], args[1], args[2], util.ParseValue(args[3]))
			if err != nil {
				return err
			}
			fmt.Printf("appended at index=%d\n", index)
			return nil
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [db] [table] [field] [index] [expected] [value]",
		Short: "Replaces the value at index if it currently holds the expected value",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}
			if err := session.Store.SetContentAt(
				args[0],
				args[1],
				args[2],
				index,
				util.ParseValue(args[4]),
				util.ParseValue(args[5]),
			); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}
	replaceCmd = &cobra.Command{
		Use:   "replace [db] [table] [field] [old] [new]",
		Short: "Replaces every occurrence of a value in a field",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			replaced, err := session.Store.SetAllMatching(
				args[0],
				args[1],
				args[2],
				util.ParseValue(args[3]),
				util.ParseValue(args[4]),
			)
			if err != nil {
				return err
			}
			fmt.Printf("replaced=%d\n", replaced)
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [db] [table] [field]",
		Short: "Prints the records of a field as index and value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := session.Store.Records(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			for _, rec := range records {
				fmt.Printf("%d\t%s\n", rec.Index, util.FormatValue(rec.Value))
			}
			return nil
		},
	}
)
