package evaluation

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/signalnine/evalagg/internal/inventory"
)

const (
	SinglePresentDir = "single_present"
	SingleMissingDir = "single_missing"
	DuplexDir        = "duplex"
	AggregatesDir    = "_aggregates"
	FigureName       = "figure.png"
)

// ErrNoGroundTruth is returned for templates whose state cannot be evaluated.
var ErrNoGroundTruth = errors.New("template state has no ground truth")

// ModeDir maps a template state to its single-mode directory.
func ModeDir(s inventory.State) (string, error) {
	switch s {
	case inventory.Present:
		return SinglePresentDir, nil
	case inventory.Missing:
		return SingleMissingDir, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrNoGroundTruth, s)
	}
}

// TemplateDir is <root>/<tray>/<single_present|single_missing>/<part>/<id>.
func TemplateDir(root string, t inventory.Template) (string, error) {
	mode, err := ModeDir(t.State)
	if err != nil {
		return "", fmt.Errorf("%s: %w", t, err)
	}
	return filepath.Join(root, t.Tray, mode, t.Part, t.ID), nil
}

func SingleReportPath(root string, t inventory.Template, encoded string) (string, error) {
	dir, err := TemplateDir(root, t)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, encoded, ReportName), nil
}

func DuplexReportPath(root string, p inventory.Pair, encoded string) string {
	return filepath.Join(root, p.Tray, DuplexDir, p.Part, p.ID(), encoded, ReportName)
}

func ResultsPath(root string, t inventory.Template, encoded string) string {
	return filepath.Join(root, t.Tray, t.Part, t.ID, encoded, ResultsName)
}

func AggregateDir(dir string) string {
	return filepath.Join(dir, AggregatesDir)
}

func JobAggregateDir(root, job string) string {
	return filepath.Join(root, AggregatesDir, job)
}

func TrayAggregateDir(root, tray, job string) string {
	return filepath.Join(root, tray, AggregatesDir, job)
}
