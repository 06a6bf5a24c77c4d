package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/signalnine/evalagg/internal/aggregate"
)

type JobSummary struct {
	Job    string            `json:"job"`
	Scopes []aggregate.Scope `json:"scopes"`
}

// Generate prints the rows of every aggregate scope of a job.
func Generate(job string, scopes []aggregate.Scope, format string, w io.Writer) error {
	s := JobSummary{Job: job, Scopes: scopes}
	switch format {
	case "markdown":
		return writeMarkdown(s, w)
	case "json":
		return writeJSON(s, w)
	default:
		return writeTable(s, w)
	}
}

func writeTable(s JobSummary, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCOPE\tALGORITHM\tPARAMS\tMODE\tACCURACY\tAVG TIME (MS)\tMISSES\tSAMPLES")
	fmt.Fprintln(tw, strings.Repeat("-", 100))
	for _, sc := range s.Scopes {
		for _, r := range sc.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f%%\t%.2f\t%d\t%d\n",
				sc.Title, r.Name, r.Params, r.Mode, r.Accuracy*100, r.AverageTime, r.Misses, r.SampleSize)
		}
	}
	return tw.Flush()
}

func writeMarkdown(s JobSummary, w io.Writer) error {
	fmt.Fprintf(w, "## %s\n", s.Job)
	for _, sc := range s.Scopes {
		fmt.Fprintf(w, "\n### %s\n\n", sc.Title)
		fmt.Fprintln(w, "| Algorithm | Params | Mode | Accuracy | Avg Time (ms) | Misses | Samples |")
		fmt.Fprintln(w, "|---|---|---|---|---|---|---|")
		for _, r := range sc.Rows {
			fmt.Fprintf(w, "| %s | %s | %s | %.2f%% | %.2f | %d | %d |\n",
				cell(r.Name), cell(r.Params), r.Mode, r.Accuracy*100, r.AverageTime, r.Misses, r.SampleSize)
		}
	}
	return nil
}

// cell escapes pipes so free-text values stay inside one table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func writeJSON(s JobSummary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
