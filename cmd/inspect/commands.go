package inspect

import (
	"errors"
	"fmt"
	"os"

	"github.com/ValentinKolb/jDB/cmd/util"
	"github.com/ValentinKolb/jDB/lib/serializer"
	"github.com/spf13/cobra"
)

var (
	// DumpCmd prints the whole store
	DumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Prints the whole store as json or yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			s, err := serializer.New(serializer.Name(format))
			if err != nil {
				return err
			}
			data, err := s.Serialize(session.Store.Snapshot())
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}

	// LogsCmd prints or clears the persisted log journal
	LogsCmd = &cobra.Command{
		Use:   "logs",
		Short: "Prints the persisted log journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if session.Journal == nil {
				return errors.New("the journal is disabled (empty --journal-key)")
			}
			if clearAll, _ := cmd.Flags().GetBool("clear"); clearAll {
				if err := session.Journal.Clear(); err != nil {
					return err
				}
				fmt.Println("journal cleared")
				return nil
			}

			entries, err := session.Journal.Entries()
			if err != nil {
				return err
			}
			if tail, _ := cmd.Flags().GetInt("tail"); tail > 0 && tail < len(entries) {
				entries = entries[len(entries)-tail:]
			}
			for _, e := range entries {
				fmt.Println(e)
			}
			return nil
		},
	}

	// StatsCmd prints the size of the store and the operation metrics
	StatsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Prints the size of the store and the metrics of this run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(Summarize(session.Store.Snapshot()))
			fmt.Println()
			session.Store.WriteMetrics(os.Stdout)
			return nil
		},
	}

	// ConfigCmd prints the effective configuration without opening the store
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Prints the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}
			conf, err := util.GetConfig()
			if err != nil {
				return err
			}
			fmt.Print(conf)
			return nil
		},
	}
)
