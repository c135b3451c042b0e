package reporting

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/benchmarks"
	"github.com/MGTheTrain/rsa-toolkit/internal/domain/crypto"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/logger"
)

type column struct {
	title     string
	variant   string
	operation string
}

var columns = []column{
	{"Prime number generation", "", benchmarks.OperationPrimeGeneration},
	{"Euler Key Generation Time", string(crypto.TotientEuler), benchmarks.OperationKeyGeneration},
	{"Euler Encryption Time", string(crypto.TotientEuler), benchmarks.OperationEncryption},
	{"Euler Decryption Time", string(crypto.TotientEuler), benchmarks.OperationDecryption},
	{"Euler CRT Decryption Time", string(crypto.TotientEuler), benchmarks.OperationCRTDecryption},
	{"Carmichael Key Generation Time", string(crypto.TotientCarmichael), benchmarks.OperationKeyGeneration},
	{"Carmichael Encryption Time", string(crypto.TotientCarmichael), benchmarks.OperationEncryption},
	{"Carmichael Decryption Time", string(crypto.TotientCarmichael), benchmarks.OperationDecryption},
	{"Carmichael CRT Decryption Time", string(crypto.TotientCarmichael), benchmarks.OperationCRTDecryption},
}

// Header returns the column titles of the exported table
func Header() []string {
	header := []string{"Prime Number Range"}
	for _, c := range columns {
		header = append(header, c.title)
	}
	return header
}

// Rows pivots timing records into one row per bit window holding the mean time of every column.
// Cells without a record stay empty.
func Rows(records []*benchmarks.TimingRecord) [][]string {
	type window struct{ min, max int }
	cells := make(map[window]map[column]float64)
	for _, r := range records {
		w := window{r.MinBits, r.MaxBits}
		if cells[w] == nil {
			cells[w] = make(map[column]float64)
		}
		for _, c := range columns {
			if c.operation == r.Operation && c.variant == r.Variant {
				cells[w][c] = r.MeanSeconds
			}
		}
	}

	windows := make([]window, 0, len(cells))
	for w := range cells {
		windows = append(windows, w)
	}
	sort.Slice(windows, func(i, j int) bool {
		if windows[i].min != windows[j].min {
			return windows[i].min < windows[j].min
		}
		return windows[i].max < windows[j].max
	})

	rows := make([][]string, 0, len(windows))
	for _, w := range windows {
		row := []string{fmt.Sprintf("%d-%d", w.min, w.max)}
		for _, c := range columns {
			v, ok := cells[w][c]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		rows = append(rows, row)
	}
	return rows
}

type csvExporter struct {
	logger logger.Logger
}

// NewCSVExporter creates a ReportExporter writing CSV files
func NewCSVExporter(logger logger.Logger) (benchmarks.ReportExporter, error) {
	return &csvExporter{logger: logger}, nil
}

// Export writes the run to path, creating missing parent directories
func (e *csvExporter) Export(run *benchmarks.BenchmarkRun, path string) error {
	if run == nil {
		return errors.New("benchmark run cannot be nil")
	}
	if path == "" {
		return errors.New("export path cannot be empty")
	}

	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(Header()); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	rows := Rows(run.Records)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write report rows: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}

	e.logger.Info("Exported ", len(rows), " benchmark rows of run ", run.ID, " to ", path)
	return nil
}
