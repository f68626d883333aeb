package cmd

import (
	"github.com/spf13/cobra"
)

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <logfile>",
		Short: "Count jobs per severity",
		Long: `Runs the same analysis as the default report but prints a table with the
number of jobs in each severity, including the OK jobs the report hides.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.run(args[0])
			if err != nil {
				return err
			}
			return out.Summary.WriteTable(cmd.OutOrStdout())
		},
	}
}
