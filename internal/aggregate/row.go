package aggregate

import (
	"sort"

	"github.com/signalnine/evalagg/internal/chart"
	"github.com/signalnine/evalagg/internal/evaluation"
)

// Mode tells how the reports behind a row were produced.
type Mode string

const (
	Single Mode = "single"
	Duplex Mode = "duplex"
)

// Row is one algorithm variant's totals within an aggregation scope.
type Row struct {
	Name        string  `json:"name"`
	Params      string  `json:"params"`
	Mode        Mode    `json:"mode"`
	Accuracy    float64 `json:"accuracy"`
	AverageTime float64 `json:"average_time_ms"`
	Misses      int     `json:"misses"`
	SampleSize  int     `json:"sample_size"`
}

func (r Row) Identity() evaluation.Identity {
	return evaluation.Identity{Name: r.Name, Params: r.Params}
}

// Label is the x tick label of the row's bars. Duplex rows are marked so
// they stay apart from the single row of the same algorithm.
func (r Row) Label() string {
	if r.Mode == Duplex {
		return r.Name + "\n" + r.Params + " (duplex)"
	}
	return r.Name + "\n" + r.Params
}

// totals accumulates report metrics for one variant.
type totals struct {
	name       string
	params     string
	time       float64
	misses     int
	sampleSize int
}

func (t *totals) add(rec *evaluation.Record) error {
	avg, err := rec.AverageTime()
	if err != nil {
		return err
	}
	misses, err := rec.Misses()
	if err != nil {
		return err
	}
	size, err := rec.SampleSize()
	if err != nil {
		return err
	}
	t.name, t.params = rec.Name, rec.Params
	t.time += avg
	t.misses += misses
	t.sampleSize += size
	return nil
}

func (t *totals) row(mode Mode) Row {
	return Row{
		Name:        t.name,
		Params:      t.params,
		Mode:        mode,
		Accuracy:    accuracy(t.sampleSize, t.misses),
		AverageTime: t.time,
		Misses:      t.misses,
		SampleSize:  t.sampleSize,
	}
}

func accuracy(sampleSize, misses int) float64 {
	return float64(sampleSize-misses) / float64(sampleSize)
}

// mergeRows sums rows sharing an identity and mode, keeping the position of
// the first occurrence.
func mergeRows(rows []Row) []Row {
	type key struct {
		id   evaluation.Identity
		mode Mode
	}
	index := make(map[key]int)
	var merged []Row
	for _, r := range rows {
		k := key{r.Identity(), r.Mode}
		i, ok := index[k]
		if !ok {
			index[k] = len(merged)
			merged = append(merged, r)
			continue
		}
		m := &merged[i]
		m.AverageTime += r.AverageTime
		m.Misses += r.Misses
		m.SampleSize += r.SampleSize
		m.Accuracy = accuracy(m.SampleSize, m.Misses)
	}
	return merged
}

// sortRows orders rows by algorithm name; equal names keep their order.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})
}

func barsOf(rows []Row) []chart.Bar {
	bars := make([]chart.Bar, len(rows))
	for i, r := range rows {
		bars[i] = chart.Bar{Label: r.Label(), Accuracy: r.Accuracy, Time: r.AverageTime}
	}
	return bars
}
