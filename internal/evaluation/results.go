package evaluation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/signalnine/evalagg/internal/inventory"
)

const ResultsName = "results.txt"

// Line is one raw entry of a results file.
type Line struct {
	ID      string
	Score   float64
	Elapsed float64
}

// Result is a scored sample resolved against the inventory.
type Result struct {
	ID            string
	Score         float64
	Elapsed       float64
	SampleState   inventory.State
	TemplateState inventory.State
	Purity        string
}

// Correct reports whether the sample's ground truth matches the state the
// template expects. Samples unknown to the inventory are never correct.
func (r Result) Correct() bool {
	return r.SampleState != 0 && r.SampleState == r.TemplateState
}

// ParseResults reads "id score elapsed" lines. Blank lines are ignored.
func ParseResults(r io.Reader) ([]Line, error) {
	sc := bufio.NewScanner(r)
	var lines []Line
	n := 0
	for sc.Scan() {
		n++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: want 3 fields, got %d", n, len(fields))
		}
		score, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: score: %w", n, err)
		}
		elapsed, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: elapsed: %w", n, err)
		}
		lines = append(lines, Line{ID: fields[0], Score: score, Elapsed: elapsed})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func ReadResults(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	defer f.Close()
	lines, err := ParseResults(f)
	if err != nil {
		return nil, fmt.Errorf("parsing results %s: %w", path, err)
	}
	return lines, nil
}
