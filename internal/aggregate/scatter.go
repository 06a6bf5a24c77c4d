package aggregate

import (
	"fmt"
	"path/filepath"

	"github.com/signalnine/evalagg/internal/chart"
	"github.com/signalnine/evalagg/internal/evaluation"
	"github.com/signalnine/evalagg/internal/inventory"
)

// Scatter plots the per-sample scores of one encoded variant for every
// template on a single page, saved as <dir>/<encoded>.png.
func (g *Generator) Scatter(dir, encoded string, templates []inventory.Template) error {
	panels := make([]chart.Panel, 0, len(templates))
	for _, t := range templates {
		results, err := g.Results(t, encoded)
		if err != nil {
			return err
		}
		points := make([]chart.Point, len(results))
		for i, r := range results {
			points[i] = chart.Point{Score: r.Score, Correct: r.Correct()}
		}
		panels = append(panels, chart.Panel{Title: t.Tray + "/" + t.Part, Points: points})
	}
	path := filepath.Join(dir, encoded+".png")
	g.log.Debug("writing scatter plot", "variant", encoded, "templates", len(templates), "path", path)
	return chart.Save(path, chart.ScatterGrid{Title: encoded, Panels: panels})
}

// Results loads the scored samples of a template for one variant, resolved
// against the inventory. Samples without ground truth are dropped.
func (g *Generator) Results(t inventory.Template, encoded string) ([]evaluation.Result, error) {
	samples, err := g.samples.Samples(t.Tray, t.Part)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}
	byID := make(map[string]inventory.Sample, len(samples))
	for _, s := range samples {
		if _, dup := byID[s.ID]; !dup {
			byID[s.ID] = s
		}
	}

	lines, err := evaluation.ReadResults(evaluation.ResultsPath(g.resultsRoot, t, encoded))
	if err != nil {
		return nil, err
	}
	results := make([]evaluation.Result, 0, len(lines))
	for _, l := range lines {
		s := byID[l.ID]
		if s.State == inventory.Uncertain {
			continue
		}
		results = append(results, evaluation.Result{
			ID:            l.ID,
			Score:         l.Score,
			Elapsed:       l.Elapsed,
			SampleState:   s.State,
			TemplateState: t.State,
			Purity:        s.Purity,
		})
	}
	return results, nil
}
