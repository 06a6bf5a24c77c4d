// Package evaluation reads and writes the text reports produced by the
// evaluation pipeline and knows where they live on disk.
package evaluation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const ReportName = "evaluation.txt"

// Metric keys consumed by the aggregators.
const (
	KeyAccuracy    = "accuracy"
	KeyAverageTime = "average time"
	KeyMisses      = "misses"
	KeySampleSize  = "sample size"
)

var (
	ErrMalformedReport = errors.New("malformed evaluation report")
	ErrMissingMetric   = errors.New("missing metric")
)

// Record is the parsed content of one evaluation report.
type Record struct {
	Name    string
	Params  string
	Metrics map[string]string
}

// Identity is the key under which records of the same algorithm variant are
// merged.
type Identity struct {
	Name   string
	Params string
}

func (r *Record) Identity() Identity {
	return Identity{Name: r.Name, Params: r.Params}
}

// Parse reads a report: the algorithm name, the parameter description, then
// "key: value" lines. Lines with an empty key or value are dropped.
func Parse(r io.Reader) (*Record, error) {
	sc := bufio.NewScanner(r)
	var header []string
	rec := &Record{Metrics: map[string]string{}}
	for sc.Scan() {
		line := sc.Text()
		if len(header) < 2 {
			header = append(header, strings.TrimSpace(line))
			continue
		}
		key, value, _ := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		rec.Metrics[key] = value
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: header has %d of 2 lines", ErrMalformedReport, len(header))
	}
	rec.Name, rec.Params = header[0], header[1]
	return rec, nil
}

func ReadReport(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	defer f.Close()
	rec, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return rec, nil
}

func WriteReport(path string, rec *Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}
	keys := make([]string, 0, len(rec.Metrics))
	for k := range rec.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintln(&b, rec.Name)
	fmt.Fprintln(&b, rec.Params)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, rec.Metrics[k])
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// CollectReports reads every evaluation report below dir.
func CollectReports(dir string) ([]*Record, error) {
	var records []*Record
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != ReportName {
			return nil
		}
		rec, err := ReadReport(path)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting reports in %s: %w", dir, err)
	}
	return records, nil
}

func (r *Record) Float(key string) (float64, error) {
	raw, ok := r.Metrics[key]
	if !ok {
		return 0, fmt.Errorf("%s %q: %w %q", r.Name, r.Params, ErrMissingMetric, key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: metric %q: %w", r.Name, r.Params, key, err)
	}
	return v, nil
}

func (r *Record) Int(key string) (int, error) {
	raw, ok := r.Metrics[key]
	if !ok {
		return 0, fmt.Errorf("%s %q: %w %q", r.Name, r.Params, ErrMissingMetric, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %q: metric %q: %w", r.Name, r.Params, key, err)
	}
	return v, nil
}

func (r *Record) Accuracy() (float64, error)    { return r.Float(KeyAccuracy) }
func (r *Record) AverageTime() (float64, error) { return r.Float(KeyAverageTime) }
func (r *Record) Misses() (int, error)          { return r.Int(KeyMisses) }
func (r *Record) SampleSize() (int, error)      { return r.Int(KeySampleSize) }
