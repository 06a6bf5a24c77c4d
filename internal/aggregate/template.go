package aggregate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/signalnine/evalagg/internal/chart"
	"github.com/signalnine/evalagg/internal/evaluation"
	"github.com/signalnine/evalagg/internal/inventory"
)

// TemplateAggregates writes one comparison chart per template into
// <template-dir>/_aggregates/figure.png. Templates without ground truth are
// logged and skipped.
func (g *Generator) TemplateAggregates(templates []inventory.Template) error {
	g.log.Info("generating template level aggregates", "templates", len(templates))
	for _, t := range templates {
		if !t.State.Evaluable() {
			g.log.Warn("template cannot be used for evaluation", "template", t.String(), "state", t.State.String())
			continue
		}
		if err := g.templateAggregate(t); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) templateAggregate(t inventory.Template) error {
	dir, err := evaluation.TemplateDir(g.evalRoot, t)
	if err != nil {
		return err
	}
	bars, err := g.TemplateBars(t)
	if err != nil {
		return err
	}

	out := evaluation.AggregateDir(dir)
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("creating aggregates dir: %w", err)
	}
	path := filepath.Join(out, evaluation.FigureName)
	g.log.Info("writing template aggregate", "template", t.String(), "algorithms", len(bars), "path", path)
	return chart.Save(path, chart.BarChart{
		Title: "Comparison of algorithms on " + t.String(),
		Bars:  bars,
	})
}

// TemplateBars reads every report below the template's directory and returns
// one bar per report, ordered by algorithm name.
func (g *Generator) TemplateBars(t inventory.Template) ([]chart.Bar, error) {
	dir, err := evaluation.TemplateDir(g.evalRoot, t)
	if err != nil {
		return nil, err
	}
	records, err := evaluation.CollectReports(dir)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})

	bars := make([]chart.Bar, 0, len(records))
	for _, rec := range records {
		acc, err := rec.Accuracy()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}
		avg, err := rec.AverageTime()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}
		bars = append(bars, chart.Bar{Label: rec.Name + "\n" + rec.Params, Accuracy: acc, Time: avg})
	}
	return bars, nil
}
