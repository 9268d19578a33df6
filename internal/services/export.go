package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const applicationsSheet = "Applications"

var exportHeaders = []string{
	"Rank", "ID", "Name", "Email", "Domain", "Score",
	"Key Skills", "Missing Skills", "Submitted", "Overview",
}

// ExportApplications writes a workbook with one row per application, in the order given.
func ExportApplications(apps []models.Application, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", applicationsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(applicationsSheet, cell, header)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(applicationsSheet, "A1", lastHeader, headerStyle)

	for i, app := range apps {
		row := i + 2
		values := []interface{}{
			i + 1,
			app.ID,
			app.Name,
			app.Email,
			app.Domain,
			app.Score,
			strings.Join(app.KeySkills, ", "),
			strings.Join(app.MissingSkills, ", "),
			app.SubmissionDate(),
			app.Overview,
		}

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(applicationsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	f.SetColWidth(applicationsSheet, "A", "B", 8)
	f.SetColWidth(applicationsSheet, "C", "E", 25)
	f.SetColWidth(applicationsSheet, "G", "H", 40)
	f.SetColWidth(applicationsSheet, "J", "J", 80)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
