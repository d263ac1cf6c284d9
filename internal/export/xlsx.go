package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// BookingsSheet is the worksheet name of the bookings workbook.
const BookingsSheet = "Bookings"

var bookingColumns = []any{"Sponsor", "Offering", "Start Date", "End Date", "Active", "Booking ID"}

// WriteBookingsXLSX writes bookings as a single-sheet workbook with a bold
// header row.
func WriteBookingsXLSX(w io.Writer, bookings []core.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", BookingsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetRow(BookingsSheet, "A1", &bookingColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetRowStyle(BookingsSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, b := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{b.SponsorName, b.OfferingName, b.StartDate, b.EndDate, activeLabel(b.IsActive), b.ID}
		if err := f.SetSheetRow(BookingsSheet, cell, &row); err != nil {
			return fmt.Errorf("write booking %s: %w", b.ID, err)
		}
	}

	if err := f.SetColWidth(BookingsSheet, "A", "F", 20); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func activeLabel(active bool) string {
	if active {
		return "yes"
	}
	return "no"
}
