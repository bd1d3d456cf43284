// Package leadio reads and writes lead files: CSV for import and export,
// XLSX for export. Export applies the final duplicate collapse and sorts
// rows by business name.
package leadio

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Kathail/NorthScrape/internal/dedup"
	"github.com/Kathail/NorthScrape/internal/model"
)

// columns defines the ordered lead file columns, shared by CSV and XLSX.
var columns = []string{"Name", "Address", "Phone", "Website"}

// ImportCSV reads lead records from a CSV file. The first row is treated as
// a header when it matches the expected columns. Malformed rows are skipped
// with a warning, never fatal; missing fields default to "N/A".
func ImportCSV(path string) ([]model.LeadRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "leadio: open csv")
	}
	defer f.Close()

	records, err := readCSV(f)
	if err != nil {
		return nil, err
	}
	zap.L().Info("csv imported",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return records, nil
}

func readCSV(r io.Reader) ([]model.LeadRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var records []model.LeadRecord
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			zap.L().Warn("csv row skipped", zap.Int("line", line), zap.Error(err))
			continue
		}
		if line == 1 && isHeader(row) {
			continue
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		records = append(records, model.LeadRecord{
			Name:    strings.TrimSpace(row[0]),
			Address: field(row, 1),
			Phone:   field(row, 2),
			Website: field(row, 3),
			Source:  model.SourceImported,
		})
	}
	return records, nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "Name")
}

// field returns the trimmed cell at idx, or the "N/A" sentinel when the row
// is short or the cell blank.
func field(row []string, idx int) string {
	if idx >= len(row) {
		return model.NA
	}
	v := strings.TrimSpace(row[idx])
	if v == "" {
		return model.NA
	}
	return v
}

// Finalize collapses duplicate leads and orders the survivors by name. Later
// records win over earlier ones with the same key, so re-enriched data
// replaces stale rows.
func Finalize(leads []model.LeadRecord) []model.LeadRecord {
	byKey := make(map[string]model.LeadRecord, len(leads))
	for _, l := range leads {
		byKey[dedup.ExportKey(l)] = l
	}

	out := make([]model.LeadRecord, 0, len(byKey))
	for _, l := range byKey {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ExportCSV writes leads to a CSV file after the final duplicate collapse.
func ExportCSV(leads []model.LeadRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "leadio: create csv")
	}
	defer f.Close()

	final := Finalize(leads)

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return eris.Wrap(err, "leadio: write header")
	}
	for _, l := range final {
		if err := w.Write([]string{l.Name, l.Address, l.Phone, l.Website}); err != nil {
			return eris.Wrap(err, "leadio: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "leadio: flush csv")
	}

	zap.L().Info("csv exported",
		zap.String("path", path),
		zap.Int("rows", len(final)),
		zap.Int("collapsed", len(leads)-len(final)),
	)
	return nil
}
