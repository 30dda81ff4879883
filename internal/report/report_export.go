package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/yungsandro2003/vivaponto/internal/domain"
)

var exportHeaders = []string{
	"Date", "Entry", "Break Start", "Break End", "Exit",
	"Worked", "Expected", "Balance",
}

// Export renders the same per-day rows Generate produces as an XLSX
// workbook. The caller owns closing the returned file.
func (s *service) Export(ctx context.Context, actor domain.Actor, q ReportQuery) (*excelize.File, string, error) {
	rep, err := s.Generate(ctx, actor, q)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, day := range rep.Days {
		values := []any{
			day.Date,
			deref(day.Entry),
			deref(day.BreakStart),
			deref(day.BreakEnd),
			deref(day.Exit),
			day.WorkedFormatted,
			fmt.Sprintf("%dh %02dm", day.ExpectedMinutes/60, day.ExpectedMinutes%60),
			day.BalanceFormatted,
		}
		for colIdx, val := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	totalsRow := len(rep.Days) + 2
	cell, _ := excelize.CoordinatesToCellName(1, totalsRow)
	f.SetCellValue(sheet, cell, "Totals")
	cell, _ = excelize.CoordinatesToCellName(6, totalsRow)
	f.SetCellValue(sheet, cell, rep.TotalWorkedFormatted)
	cell, _ = excelize.CoordinatesToCellName(7, totalsRow)
	f.SetCellValue(sheet, cell, fmt.Sprintf("%dh %02dm", rep.TotalExpected/60, rep.TotalExpected%60))
	cell, _ = excelize.CoordinatesToCellName(8, totalsRow)
	f.SetCellValue(sheet, cell, rep.TotalBalanceFormatted)

	filename := fmt.Sprintf("timesheet_%s_%s_%s.xlsx", rep.UserID, rep.StartDate, rep.EndDate)
	return f, filename, nil
}
