// Command oktex writes the TeX source of a picture
// described by a YAML drawing script.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benoitkugler/oktex/texfile"
	"github.com/ledgerwatch/log/v3"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		verbosity string
		logger    = log.New()
	)
	root := &cobra.Command{
		Use:           "oktex",
		Short:         "Write TeX pictures from drawing scripts",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logLevel(verbosity)
			if err != nil {
				return err
			}
			logger.SetHandler(log.LvlFilterHandler(lvl, log.StderrHandler))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&verbosity, "verbosity", "warn", "Log level (crit, error, warn, info, debug, trace, or 0-5)")

	root.AddCommand(renderCmd(logger), enginesCmd())
	return root
}

func logLevel(s string) (log.Lvl, error) {
	lvl, err := log.LvlFromString(strings.ToLower(s))
	if err != nil {
		l, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid verbosity %q", s)
		}
		return log.Lvl(l), nil
	}
	return lvl, nil
}

func enginesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List the supported TeX engines",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range texfile.EngineNames() {
				e, _ := texfile.ParseEngine(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, e)
			}
		},
	}
}
