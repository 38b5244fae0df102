package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/jDB/cmd/db"
	"github.com/ValentinKolb/jDB/cmd/field"
	"github.com/ValentinKolb/jDB/cmd/inspect"
	"github.com/ValentinKolb/jDB/cmd/join"
	"github.com/ValentinKolb/jDB/cmd/table"
	"github.com/ValentinKolb/jDB/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "jdb",
		Short: "json document store",
		Long: fmt.Sprintf(`jDB (v%s)

A schema-light json document store. A store holds databases, databases hold
tables, tables hold fields and fields hold ordered, index-tagged values.
The whole store is written to a single (optionally encrypted) blob after
every change.

Every flag can also be set via environment variables in the format
JDB_<flag> (e.g. JDB_ENCRYPTION_KEY=secret) or in a .env file.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of jDB",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("jDB v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(db.DatabaseCommands)
	RootCmd.AddCommand(table.TableCommands)
	RootCmd.AddCommand(field.FieldCommands)
	RootCmd.AddCommand(join.JoinCommands)
	RootCmd.AddCommand(inspect.DumpCmd)
	RootCmd.AddCommand(inspect.LogsCmd)
	RootCmd.AddCommand(inspect.StatsCmd)
	RootCmd.AddCommand(inspect.ConfigCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupStoreFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
