package evaluation_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalnine/evalagg/internal/evaluation"
	"github.com/signalnine/evalagg/internal/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateDir(t *testing.T) {
	root := "/eval"
	present := inventory.Template{Tray: "tray-a", Part: "bolt", ID: "t01", State: inventory.Present}
	missing := inventory.Template{Tray: "tray-a", Part: "bolt", ID: "t02", State: inventory.Missing}

	dir, err := evaluation.TemplateDir(root, present)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "tray-a", "single_present", "bolt", "t01"), dir)

	dir, err = evaluation.TemplateDir(root, missing)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "tray-a", "single_missing", "bolt", "t02"), dir)

	uncertain := present
	uncertain.State = inventory.Uncertain
	_, err = evaluation.TemplateDir(root, uncertain)
	assert.ErrorIs(t, err, evaluation.ErrNoGroundTruth)
}

func TestReportPaths(t *testing.T) {
	p := inventory.Pair{
		Tray:    "tray-a",
		Part:    "bolt",
		Present: inventory.Template{ID: "t01"},
		Missing: inventory.Template{ID: "t02"},
	}
	assert.Equal(t,
		filepath.Join("/eval", "tray-a", "duplex", "bolt", "t01-t02", "tm", "evaluation.txt"),
		evaluation.DuplexReportPath("/eval", p, "tm"))

	tmpl := inventory.Template{Tray: "tray-a", Part: "bolt", ID: "t01", State: inventory.Present}
	path, err := evaluation.SingleReportPath("/eval", tmpl, "tm")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/eval", "tray-a", "single_present", "bolt", "t01", "tm", "evaluation.txt"), path)

	assert.Equal(t,
		filepath.Join("/res", "tray-a", "bolt", "t01", "tm", "results.txt"),
		evaluation.ResultsPath("/res", tmpl, "tm"))
	assert.Equal(t, filepath.Join("/eval", "_aggregates", "nightly"), evaluation.JobAggregateDir("/eval", "nightly"))
	assert.Equal(t, filepath.Join("/eval", "tray-a", "_aggregates", "nightly"), evaluation.TrayAggregateDir("/eval", "tray-a", "nightly"))
}

func TestParseResults(t *testing.T) {
	src := "s01 0.91 12.5\n\n  s02\t0.10   9\n"
	lines, err := evaluation.ParseResults(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []evaluation.Line{
		{ID: "s01", Score: 0.91, Elapsed: 12.5},
		{ID: "s02", Score: 0.10, Elapsed: 9},
	}, lines)

	_, err = evaluation.ParseResults(strings.NewReader("s01 0.5\n"))
	assert.Error(t, err)
	_, err = evaluation.ParseResults(strings.NewReader("s01 high 1\n"))
	assert.Error(t, err)
}

func TestResultCorrect(t *testing.T) {
	r := evaluation.Result{SampleState: inventory.Present, TemplateState: inventory.Present}
	assert.True(t, r.Correct())
	r.SampleState = inventory.Missing
	assert.False(t, r.Correct())
	r.SampleState = 0
	r.TemplateState = 0
	assert.False(t, r.Correct())
}
