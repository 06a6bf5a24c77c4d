// Package aggregate reduces evaluation reports into comparison charts at the
// template, tray and job level.
package aggregate

import (
	"errors"
	"io"
	"log/slog"

	"github.com/signalnine/evalagg/internal/inventory"
)

// ErrNoSamples is returned when a variant's reports add up to zero samples,
// which leaves its accuracy undefined.
var ErrNoSamples = errors.New("total sample size is zero")

// SampleLookup resolves the samples of a tray part.
type SampleLookup interface {
	Samples(tray, part string) ([]inventory.Sample, error)
}

// Generator writes aggregate charts below the evaluation root.
type Generator struct {
	evalRoot    string
	resultsRoot string
	samples     SampleLookup
	log         *slog.Logger
}

func New(evalRoot, resultsRoot string, samples SampleLookup, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		evalRoot:    evalRoot,
		resultsRoot: resultsRoot,
		samples:     samples,
		log:         log,
	}
}
