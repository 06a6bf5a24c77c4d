package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalnine/evalagg/internal/aggregate"
	"github.com/signalnine/evalagg/internal/evaluation"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [job]",
		Short: "Check that every report and results file a job needs is in place",
		Long:  "Resolve each job against the inventory and read every single-mode report and results file its aggregates would read, listing anything missing or unparseable instead of stopping at the first failure.",
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
			var failed int
			for _, job := range jobs {
				plan, err := s.plan(job)
				if err != nil {
					return err
				}
				problems := s.check(plan)
				if len(problems) == 0 {
					fmt.Fprintf(w, "%s: ok (%d variants, %d templates)\n", job.Name, len(plan.Variants), len(plan.Templates))
					continue
				}
				failed += len(problems)
				fmt.Fprintln(w, headline(job.Name+":"))
				for _, p := range problems {
					fmt.Fprintln(w, warning("  - "+p))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d problems found", failed)
			}
			return nil
		},
	}
}

// check lists every input of the plan's job aggregates that is absent or
// unusable.
func (s *session) check(plan aggregate.Plan) []string {
	var problems []string
	for _, t := range plan.Templates {
		if !t.State.Evaluable() {
			continue
		}
		for _, v := range plan.Variants {
			path, err := evaluation.SingleReportPath(s.cfg.Paths.Evaluations, t, v)
			if err != nil {
				problems = append(problems, err.Error())
				continue
			}
			if err := checkReport(path); err != nil {
				problems = append(problems, err.Error())
			}
			res := evaluation.ResultsPath(s.cfg.Paths.Results, t, v)
			if _, err := evaluation.ReadResults(res); err != nil {
				problems = append(problems, err.Error())
			}
		}
	}
	for _, p := range plan.Pairs {
		for _, v := range plan.Variants {
			path := evaluation.DuplexReportPath(s.cfg.Paths.Evaluations, p, v)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := checkReport(path); err != nil {
				problems = append(problems, err.Error())
			}
		}
	}
	return problems
}

func checkReport(path string) error {
	rec, err := evaluation.ReadReport(path)
	if err != nil {
		return err
	}
	if _, err := rec.Accuracy(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if _, err := rec.AverageTime(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if _, err := rec.Misses(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if _, err := rec.SampleSize(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
