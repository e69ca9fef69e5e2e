// Package report renders ledger and activity data into spreadsheet and CSV
// documents for the admin export flows.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"
	"github.com/uzretail/storebot/internal/domain"
	"github.com/uzretail/storebot/internal/ledger"
)

const (
	productsSheet = "Mahsulotlar"
	statsSheet    = "Statistika"
)

// ProductsWorkbook renders the full product list plus an aggregate sheet
// into an xlsx workbook.
func ProductsWorkbook(products []domain.Product, stats ledger.Stats) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", productsSheet)

	headers := []string{"Nomi", "Miqdori", "Narxi", "Qiymati", "Kategoriya", "Yangilangan"}
	for i, h := range headers {
		f.SetCellValue(productsSheet, cell(i, 1), h)
	}
	for row, p := range products {
		f.SetCellValue(productsSheet, cell(0, row+2), p.Name)
		f.SetCellValue(productsSheet, cell(1, row+2), p.Quantity)
		f.SetCellValue(productsSheet, cell(2, row+2), p.Price)
		f.SetCellValue(productsSheet, cell(3, row+2), float64(p.Quantity)*p.Price)
		f.SetCellValue(productsSheet, cell(4, row+2), p.Category)
		f.SetCellValue(productsSheet, cell(5, row+2), p.UpdatedAt.Format("2006-01-02 15:04"))
	}

	f.NewSheet(statsSheet)
	f.SetCellValue(statsSheet, "A1", "Ko'rsatkich")
	f.SetCellValue(statsSheet, "B1", "Qiymat")
	f.SetCellValue(statsSheet, "A2", "Jami mahsulot turlari")
	f.SetCellValue(statsSheet, "B2", stats.ProductCount)
	f.SetCellValue(statsSheet, "A3", "Jami dona soni")
	f.SetCellValue(statsSheet, "B3", stats.TotalUnits)
	f.SetCellValue(statsSheet, "A4", "Jami qiymati")
	f.SetCellValue(statsSheet, "B4", stats.TotalValue)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}

// WorkbookFilename returns a timestamped export file name.
func WorkbookFilename(now time.Time) string {
	return fmt.Sprintf("ombor_hisoboti_%s.xlsx", now.Format("20060102_150405"))
}

// cell converts zero-based column and one-based row into an A1 reference.
// Export sheets never exceed 26 columns.
func cell(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}
