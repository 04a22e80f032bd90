package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/quantbt/trend-follow-bot/internal/backtest"
)

const (
	tradesSheet  = "Trades"
	summarySheet = "Summary"
)

// WriteReportXLSX writes one run as an Excel workbook with a Trades sheet
// and a Summary sheet.
func WriteReportXLSX(symbol string, res *backtest.Result, s backtest.Summary, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	fx := excelize.NewFile()
	defer fx.Close()

	fx.SetSheetName(fx.GetSheetName(0), tradesSheet)
	if _, err := fx.NewSheet(summarySheet); err != nil {
		return err
	}

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := writeTradesSheet(fx, res, headerStyle); err != nil {
		return err
	}
	if err := writeSummarySheet(fx, symbol, s, headerStyle); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func writeTradesSheet(fx *excelize.File, res *backtest.Result, headerStyle int) error {
	headers := []string{"Entry Date", "Entry Price", "Exit Date", "Exit Price",
		"Return %", "Holding Days", "Exit Reason", "Initial Stop"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := fx.SetCellValue(tradesSheet, cell, h); err != nil {
			return err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := fx.SetCellStyle(tradesSheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	for i, t := range res.Trades {
		row := i + 2
		values := []interface{}{
			t.EntryDate.Format("2006-01-02"),
			t.EntryPrice,
			t.ExitDate.Format("2006-01-02"),
			t.ExitPrice,
			t.ReturnPct,
			t.HoldingDays,
			string(t.ExitReason),
			t.InitialStop,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := fx.SetCellValue(tradesSheet, cell, v); err != nil {
				return err
			}
		}
	}

	return fx.SetColWidth(tradesSheet, "A", "H", 14)
}

func writeSummarySheet(fx *excelize.File, symbol string, s backtest.Summary, headerStyle int) error {
	if err := fx.SetCellValue(summarySheet, "A1", fmt.Sprintf("%s backtest", symbol)); err != nil {
		return err
	}
	if err := fx.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, m := range s.Flat() {
		nameCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := fx.SetCellValue(summarySheet, nameCell, m.Name); err != nil {
			return err
		}
		if err := fx.SetCellValue(summarySheet, valueCell, m.Value); err != nil {
			return err
		}
		row++
	}

	if s.OpenAtEnd {
		nameCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := fx.SetCellValue(summarySheet, nameCell, "open_at_end"); err != nil {
			return err
		}
		if err := fx.SetCellValue(summarySheet, valueCell, "yes"); err != nil {
			return err
		}
	}

	return fx.SetColWidth(summarySheet, "A", "B", 22)
}
