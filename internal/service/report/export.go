package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/campushr/attendance-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"Department", "Date", "Employee Name", "Employee ID",
	"Employee Type", "Sign In Time", "Sign Out Time", "Attendance Status",
}

// sectionExportHeader drops the department column: a single section is
// already scoped to one department.
var sectionExportHeader = []string{
	"Date", "Employee Name", "Employee ID",
	"Employee Type", "Sign In Time", "Sign Out Time", "Attendance Status",
}

// ExportCSV implements report.Service. Every field is quoted, including
// the header, so downstream spreadsheet imports never re-interpret ids
// or times regardless of their content.
func (s *ServiceImpl) ExportCSV(ctx context.Context, req report.Request, w io.Writer) error {
	result, err := s.Build(ctx, req)
	if err != nil {
		return err
	}

	if err := writeQuotedLine(w, exportHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, section := range result.Sections {
		for _, row := range section.Rows {
			fields := []string{
				section.Department,
				row.Date,
				row.EmployeeName,
				row.EmployeeID,
				row.EmploymentType,
				row.SignIn,
				row.SignOut,
				row.StatusDisplay,
			}
			if err := writeQuotedLine(w, fields); err != nil {
				return fmt.Errorf("failed to write report row: %w", err)
			}
		}
	}
	return nil
}

// ExportSectionCSV implements report.Service.
func (s *ServiceImpl) ExportSectionCSV(section report.Section, w io.Writer) error {
	if err := writeQuotedLine(w, sectionExportHeader); err != nil {
		return fmt.Errorf("failed to write section header: %w", err)
	}

	for _, row := range section.Rows {
		fields := []string{
			row.Date,
			row.EmployeeName,
			row.EmployeeID,
			row.EmploymentType,
			row.SignIn,
			row.SignOut,
			row.StatusDisplay,
		}
		if err := writeQuotedLine(w, fields); err != nil {
			return fmt.Errorf("failed to write section row: %w", err)
		}
	}
	return nil
}

// writeQuotedLine emits one record with every field quoted and embedded
// quotes doubled.
func writeQuotedLine(w io.Writer, fields []string) error {
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// ExportXLSX implements report.Service.
func (s *ServiceImpl) ExportXLSX(ctx context.Context, req report.Request, w io.Writer) error {
	result, err := s.Build(ctx, req)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance Report"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "H1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "H", 20); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	rowIdx := 2
	for _, section := range result.Sections {
		for _, row := range section.Rows {
			values := []interface{}{
				section.Department,
				row.Date,
				row.EmployeeName,
				row.EmployeeID,
				row.EmploymentType,
				row.SignIn,
				row.SignOut,
				row.StatusDisplay,
			}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx)
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return fmt.Errorf("failed to write report cell: %w", err)
				}
			}
			rowIdx++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
