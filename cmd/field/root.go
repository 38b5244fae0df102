package field

import (
	"github.com/ValentinKolb/jDB/cmd/util"
	"github.com/spf13/cobra"
)

var (
	session *util.Session

	// FieldCommands represents the field command group
	FieldCommands = &cobra.Command{
		Use:   "field",
		Short: "Rename fields and read or change their content",
		Long: `Rename fields and read or change their content.

Values are parsed as json literals. Arguments that are not valid json are
taken as plain strings, so 42 is a number while "42" (with the quotes
passed to jdb) and abc are strings.`,
		PersistentPreRunE:  openSession,
		PersistentPostRunE: closeSession,
	}
)

func init() {
	FieldCommands.AddCommand(renameCmd)
	FieldCommands.AddCommand(appendCmd)
	FieldCommands.AddCommand(setCmd)
	FieldCommands.AddCommand(replaceCmd)
	FieldCommands.AddCommand(getCmd)
}

func openSession(cmd *cobra.Command, _ []string) (err error) {
	session, err = util.OpenSessionFromFlags(cmd)
	return err
}

func closeSession(_ *cobra.Command, _ []string) error {
	return session.Close()
}
