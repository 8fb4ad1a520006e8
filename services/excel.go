package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"akademyx-backend/models"
)

var exportHeaders = []string{
	"ID", "First Name", "Last Name", "Email", "Phone", "Age",
	"Occupation", "Location", "Status", "Submitted At",
}

// BuildApplicationsWorkbook renders the applications list into an Excel
// workbook for the admissions team.
func BuildApplicationsWorkbook(apps []models.Application) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("error building header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("error writing header: %w", err)
		}
	}

	for row, app := range apps {
		values := []interface{}{
			app.ID,
			app.FirstName,
			app.LastName,
			app.Email,
			app.Phone,
			app.Age,
			app.Occupation,
			app.Location,
			app.Status,
			app.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("error building cell for row %d: %w", row+2, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("error writing row %d: %w", row+2, err)
			}
		}
	}

	return f, nil
}
