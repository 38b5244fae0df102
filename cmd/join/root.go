package join

import (
	"github.com/ValentinKolb/jDB/cmd/util"
	"github.com/spf13/cobra"
)

var (
	session *util.Session

	// JoinCommands represents the join command group
	JoinCommands = &cobra.Command{
		Use:   "join",
		Short: "Merge fields of several tables into a new table",
		Long: `Merge fields of several tables into a new table.

When more than one source table holds a requested field, the first one keeps
the name and later ones are stored as <field>repeat<k>. Joins within one
database count repetitions per field (f, frepeat1, frepeat2, ...), joins
across databases use the first free name starting at <field>repeat2.`,
		PersistentPreRunE:  openSession,
		PersistentPostRunE: closeSession,
	}
)

func init() {
	JoinCommands.AddCommand(tablesCmd)
	JoinCommands.AddCommand(databasesCmd)
	JoinCommands.AddCommand(intoCmd)

	for _, cmd := range []*cobra.Command{tablesCmd, databasesCmd, intoCmd} {
		cmd.Flags().StringSlice("tables", nil, util.WrapString("Comma-separated list of source tables, in merge order"))
		cmd.Flags().StringSlice("fields", nil, util.WrapString("Comma-separated list of fields to merge, in merge order"))
		_ = cmd.MarkFlagRequired("tables")
		_ = cmd.MarkFlagRequired("fields")
	}
	for _, cmd := range []*cobra.Command{databasesCmd, intoCmd} {
		cmd.Flags().StringSlice("dbs", nil, util.WrapString("Comma-separated list of source databases, in merge order"))
		_ = cmd.MarkFlagRequired("dbs")
	}
}

func openSession(cmd *cobra.Command, _ []string) (err error) {
	session, err = util.OpenSessionFromFlags(cmd)
	return err
}

func closeSession(_ *cobra.Command, _ []string) error {
	return session.Close()
}
