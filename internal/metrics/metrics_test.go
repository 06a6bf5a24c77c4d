package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/evalagg/internal/aggregate"
	"github.com/signalnine/evalagg/internal/metrics"
)

func TestWriteTextfile(t *testing.T) {
	e := metrics.NewExporter()
	e.Observe("nightly", []aggregate.Scope{
		{Title: "all trays", Rows: []aggregate.Row{
			{Name: "TM", Params: "threshold=0.5", Mode: aggregate.Single, Accuracy: 0.9, AverageTime: 3, SampleSize: 150},
		}},
		{Title: "tray-a", Rows: []aggregate.Row{
			{Name: "TM", Params: "threshold=0.5", Mode: aggregate.Duplex, Accuracy: 0.5, AverageTime: 10, SampleSize: 20},
		}},
	})

	path := filepath.Join(t.TempDir(), "evalagg.prom")
	require.NoError(t, e.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "# TYPE evalagg_variant_accuracy gauge")
	assert.Contains(t, out, `evalagg_variant_accuracy{algorithm="TM",job="nightly",mode="single",params="threshold=0.5",scope="all trays"} 0.9`)
	assert.Contains(t, out, `evalagg_variant_samples{algorithm="TM",job="nightly",mode="duplex",params="threshold=0.5",scope="tray-a"} 20`)
	assert.Contains(t, out, `evalagg_variant_average_time_ms{algorithm="TM",job="nightly",mode="single",params="threshold=0.5",scope="all trays"} 3`)
}

func TestWriteTextfileBadDir(t *testing.T) {
	e := metrics.NewExporter()
	err := e.WriteTextfile(filepath.Join(t.TempDir(), "missing", "evalagg.prom"))
	assert.Error(t, err)
}
