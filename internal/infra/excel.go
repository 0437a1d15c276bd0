package infra

// excel.go — .xlsx parsing for the product bulk import, built on excelize.
// Expected column layout (first sheet, header row skipped):
//   SKU | Name | Category | Price | Cost | Stock | MinStock | Barcode | Unit

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ProductRow is one parsed spreadsheet line.
type ProductRow struct {
	SKU      string
	Name     string
	Category string
	Price    decimal.Decimal
	Cost     decimal.Decimal
	Stock    int
	MinStock int
	Barcode  string
	Unit     string
}

// ReadProductRows parses an uploaded .xlsx stream. Malformed lines are
// collected as row-numbered error strings instead of aborting the whole
// import.
func ReadProductRows(r io.Reader) ([]ProductRow, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("excel: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("excel: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("excel: read rows: %w", err)
	}

	var parsed []ProductRow
	var parseErrors []string

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rowNum := i + 1

		cell := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		sku, name, category := cell(0), cell(1), cell(2)
		if sku == "" && name == "" {
			continue // blank line
		}
		if sku == "" || name == "" || category == "" {
			parseErrors = append(parseErrors, fmt.Sprintf("row %d: sku, name and category are required", rowNum))
			continue
		}

		price, err := parseDecimalCell(cell(3))
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("row %d: invalid price %q", rowNum, cell(3)))
			continue
		}
		cost, err := parseDecimalCell(cell(4))
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("row %d: invalid cost %q", rowNum, cell(4)))
			continue
		}
		stock, err := parseIntCell(cell(5))
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("row %d: invalid stock %q", rowNum, cell(5)))
			continue
		}
		minStock, err := parseIntCell(cell(6))
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("row %d: invalid min_stock %q", rowNum, cell(6)))
			continue
		}

		parsed = append(parsed, ProductRow{
			SKU:      sku,
			Name:     name,
			Category: category,
			Price:    price,
			Cost:     cost,
			Stock:    stock,
			MinStock: minStock,
			Barcode:  cell(7),
			Unit:     cell(8),
		})
	}

	return parsed, parseErrors, nil
}

func parseDecimalCell(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

func parseIntCell(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
