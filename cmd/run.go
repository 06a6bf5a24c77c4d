package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/signalnine/evalagg/internal/aggregate"
	"github.com/signalnine/evalagg/internal/algorithm"
	"github.com/signalnine/evalagg/internal/config"
	"github.com/signalnine/evalagg/internal/metrics"
	"github.com/signalnine/evalagg/internal/report"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate template and job aggregates for every job",
		Args:  cobra.NoArgs,
		RunE:  runAll,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	cmd.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "write a Prometheus textfile with the aggregate rows")
	return cmd
}

func runAll(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	for _, job := range s.cfg.Jobs {
		fmt.Fprintln(cmd.ErrOrStderr(), headline("Template aggregates: "+job.Name))
		if err := s.templateAggregates(job); err != nil {
			return err
		}
	}
	return s.jobAggregates(s.cfg.Jobs, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func (s *session) templateAggregates(job config.Job) error {
	templates, err := resolveTemplates(s.inv, job)
	if err != nil {
		return err
	}
	return s.gen.TemplateAggregates(templates)
}

// plan resolves a job against the inventory.
func (s *session) plan(job config.Job) (aggregate.Plan, error) {
	templates, err := resolveTemplates(s.inv, job)
	if err != nil {
		return aggregate.Plan{}, err
	}
	variants := algorithm.EncodedVariants(job.MDefs)
	return aggregate.NewPlan(job.Name, variants, job.Trays(), templates, job.Duplex), nil
}

// jobAggregates writes the job level charts, prints every scope's rows to
// out and exports them when a metrics file is configured.
func (s *session) jobAggregates(jobs []config.Job, out, status io.Writer) error {
	exporter := metrics.NewExporter()
	for _, job := range jobs {
		plan, err := s.plan(job)
		if err != nil {
			return err
		}
		fmt.Fprintln(status, headline("Job aggregates: "+job.Name))
		scopes, err := s.gen.JobAggregates(plan)
		if err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}
		if err := report.Generate(job.Name, scopes, flagFormat, out); err != nil {
			return err
		}
		exporter.Observe(job.Name, scopes)
	}
	if flagMetricsFile == "" {
		return nil
	}
	if err := exporter.WriteTextfile(flagMetricsFile); err != nil {
		return err
	}
	s.log.Info("metrics written", "path", flagMetricsFile)
	return nil
}
