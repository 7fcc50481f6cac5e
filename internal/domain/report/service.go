package report

import (
	"context"
	"io"
)

// Service builds and exports per-department daily attendance reports.
type Service interface {
	// Build aggregates stored records with the employee directory into
	// department/date sections, newest date first.
	Build(ctx context.Context, req Request) (Result, error)

	// ExportCSV writes the report as always-quoted delimited text.
	ExportCSV(ctx context.Context, req Request, w io.Writer) error

	// ExportSectionCSV writes one section as always-quoted delimited
	// text. The department column is omitted: a section is already
	// scoped to a single department and date.
	ExportSectionCSV(section Section, w io.Writer) error

	// ExportXLSX writes the report as a spreadsheet workbook.
	ExportXLSX(ctx context.Context, req Request, w io.Writer) error
}
