package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates [job]",
		Short: "Generate per-template comparison charts",
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
			for _, job := range jobs {
				fmt.Fprintln(cmd.ErrOrStderr(), headline("Template aggregates: "+job.Name))
				if err := s.templateAggregates(job); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
