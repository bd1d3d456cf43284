package leadio

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/Kathail/NorthScrape/internal/model"
)

// ExportXLSX writes leads to an XLSX workbook after the final duplicate
// collapse, one sheet with the same columns as the CSV export.
func ExportXLSX(leads []model.LeadRecord, path string) error {
	final := Finalize(leads)

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "leadio: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().SetString(col)
	}
	for _, l := range final {
		row := sheet.AddRow()
		row.AddCell().SetString(l.Name)
		row.AddCell().SetString(l.Address)
		row.AddCell().SetString(l.Phone)
		row.AddCell().SetString(l.Website)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "leadio: save xlsx")
	}
	zap.L().Info("xlsx exported",
		zap.String("path", path),
		zap.Int("rows", len(final)),
	)
	return nil
}
