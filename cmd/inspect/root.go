package inspect

import (
	"github.com/ValentinKolb/jDB/cmd/util"
	"github.com/spf13/cobra"
)

var session *util.Session

func init() {
	for _, cmd := range []*cobra.Command{DumpCmd, LogsCmd, StatsCmd} {
		cmd.PersistentPreRunE = openSession
		cmd.PersistentPostRunE = closeSession
	}

	DumpCmd.Flags().String("format", "json", util.WrapString("Output format (json, yaml)"))
	LogsCmd.Flags().Bool("clear", false, util.WrapString("Delete all journal entries instead of printing them"))
	LogsCmd.Flags().Int("tail", 0, util.WrapString("Only print the last n entries (0 prints all)"))
}

func openSession(cmd *cobra.Command, _ []string) (err error) {
	session, err = util.OpenSessionFromFlags(cmd)
	return err
}

func closeSession(_ *cobra.Command, _ []string) error {
	return session.Close()
}
