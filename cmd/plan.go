package cmd

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

var flagDump bool

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [job]",
		Short: "Show the variants, templates and duplex pairs a job aggregates",
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
			w := cmd.OutOrStdout()
			for _, job := range jobs {
				plan, err := s.plan(job)
				if err != nil {
					return err
				}
				if flagDump {
					pp.Fprintln(w, plan)
					continue
				}
				fmt.Fprintln(w, headline("Job: "+plan.Name))
				fmt.Fprintln(w, "Variants:")
				for _, v := range plan.Variants {
					fmt.Fprintf(w, "  - %s\n", v)
				}
				fmt.Fprintln(w, "Templates:")
				if len(plan.Templates) == 0 {
					fmt.Fprintln(w, warning("  (none with ground truth)"))
				}
				for _, t := range plan.Templates {
					fmt.Fprintf(w, "  - %s [%s]\n", t, t.State)
				}
				if job.Duplex {
					fmt.Fprintln(w, "Duplex pairs:")
					for _, p := range plan.Pairs {
						fmt.Fprintf(w, "  - %s/%s/%s\n", p.Tray, p.Part, p.ID())
					}
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagDump, "dump", false, "pretty-print the resolved plan structure")
	return cmd
}
