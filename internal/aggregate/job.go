package aggregate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/signalnine/evalagg/internal/chart"
	"github.com/signalnine/evalagg/internal/evaluation"
	"github.com/signalnine/evalagg/internal/inventory"
)

// JobAggregate writes the scatter page of every variant and the comparison
// chart of the whole scope into dir. Duplex rows are added when pairs is
// not empty. The rows behind the chart are returned in display order.
func (g *Generator) JobAggregate(dir string, variants []string, templates []inventory.Template, pairs []inventory.Pair, title string) ([]Row, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating job aggregate dir: %w", err)
	}

	var rows []Row
	for _, encoded := range variants {
		if err := g.Scatter(dir, encoded, templates); err != nil {
			return nil, err
		}
		row, err := g.singleRow(encoded, templates)
		if err != nil {
			return nil, fmt.Errorf("%s (%s): %w", encoded, title, err)
		}
		rows = append(rows, row)
	}

	if len(pairs) > 0 {
		for _, encoded := range variants {
			row, ok, err := g.duplexRow(encoded, pairs)
			if err != nil {
				return nil, fmt.Errorf("%s (%s, duplex): %w", encoded, title, err)
			}
			if ok {
				rows = append(rows, row)
			}
		}
	}

	rows = mergeRows(rows)
	sortRows(rows)

	path := filepath.Join(dir, evaluation.FigureName)
	g.log.Info("writing job aggregate", "scope", title, "rows", len(rows), "path", path)
	err := chart.Save(path, chart.BarChart{
		Title: fmt.Sprintf("Comparison of algorithms (aggregate, %s)", title),
		Bars:  barsOf(rows),
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// singleRow sums the single-mode reports of every template for one variant.
func (g *Generator) singleRow(encoded string, templates []inventory.Template) (Row, error) {
	var acc totals
	for _, t := range templates {
		if !t.State.Evaluable() {
			g.log.Warn("skipping template", "template", t.String(), "state", t.State.String())
			continue
		}
		path, err := evaluation.SingleReportPath(g.evalRoot, t, encoded)
		if err != nil {
			return Row{}, err
		}
		rec, err := evaluation.ReadReport(path)
		if err != nil {
			return Row{}, err
		}
		if err := acc.add(rec); err != nil {
			return Row{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if acc.sampleSize == 0 {
		return Row{}, ErrNoSamples
	}
	return acc.row(Single), nil
}

// duplexRow sums the duplex reports of the pairs for one variant. The first
// pair without a regular report file ends accumulation for the variant; pairs
// after it are not read. ok is false when nothing was accumulated.
func (g *Generator) duplexRow(encoded string, pairs []inventory.Pair) (row Row, ok bool, err error) {
	var acc totals
	for _, p := range pairs {
		path := evaluation.DuplexReportPath(g.evalRoot, p, encoded)
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
			g.log.Debug("duplex report missing, stopping accumulation", "variant", encoded, "pair", p.Tray+"/"+p.Part+"/"+p.ID())
			break
		}
		if err != nil {
			return Row{}, false, fmt.Errorf("checking duplex report: %w", err)
		}
		rec, err := evaluation.ReadReport(path)
		if err != nil {
			return Row{}, false, err
		}
		if err := acc.add(rec); err != nil {
			return Row{}, false, fmt.Errorf("%s: %w", path, err)
		}
	}
	if acc.sampleSize == 0 {
		return Row{}, false, nil
	}
	return acc.row(Duplex), true, nil
}
