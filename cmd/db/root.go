package db

import (
	"github.com/ValentinKolb/jDB/cmd/util"
	"github.com/spf13/cobra"
)

var (
	session *util.Session

	// DatabaseCommands represents the database command group
	DatabaseCommands = &cobra.Command{
		Use:                "db",
		Short:              "Create, rename, delete and list databases",
		PersistentPreRunE:  openSession,
		PersistentPostRunE: closeSession,
	}
)

func init() {
	DatabaseCommands.AddCommand(createCmd)
	DatabaseCommands.AddCommand(renameCmd)
	DatabaseCommands.AddCommand(deleteCmd)
	DatabaseCommands.AddCommand(listCmd)
	DatabaseCommands.AddCommand(resetCmd)

	resetCmd.Flags().Bool("yes", false, util.WrapString("Confirm that every database should be deleted"))
}

func openSession(cmd *cobra.Command, _ []string) (err error) {
	session, err = util.OpenSessionFromFlags(cmd)
	return err
}

func closeSession(_ *cobra.Command, _ []string) error {
	return session.Close()
}
