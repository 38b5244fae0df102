package table

import (
	"github.com/ValentinKolb/jDB/cmd/util"
	"github.com/spf13/cobra"
)

var (
	session *util.Session

	// TableCommands represents the table command group
	TableCommands = &cobra.Command{
		Use:                "table",
		Short:              "Create, rename, delete and list tables of a database",
		PersistentPreRunE:  openSession,
		PersistentPostRunE: closeSession,
	}
)

func init() {
	TableCommands.AddCommand(createCmd)
	TableCommands.AddCommand(renameCmd)
	TableCommands.AddCommand(deleteCmd)
	TableCommands.AddCommand(listCmd)
	TableCommands.AddCommand(fieldsCmd)
}

func openSession(cmd *cobra.Command, _ []string) (err error) {
	session, err = util.OpenSessionFromFlags(cmd)
	return err
}

func closeSession(_ *cobra.Command, _ []string) error {
	return session.Close()
}
