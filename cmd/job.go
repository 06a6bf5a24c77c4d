package cmd

import (
	"github.com/spf13/cobra"
)

var (
	flagFormat      string
	flagMetricsFile string
)

func newJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job [job]",
		Short: "Generate job and tray level comparison charts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			jobs, err := selectJobs(s.cfg, args)
			if err != nil {
				return err
			}
			return s.jobAggregates(jobs, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	cmd.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "write a Prometheus textfile with the aggregate rows")
	return cmd
}
