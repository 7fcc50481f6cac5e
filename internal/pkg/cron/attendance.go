package cron

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	"github.com/campushr/attendance-backend-go/internal/domain/employee"
	"github.com/campushr/attendance-backend-go/internal/domain/report"
	"github.com/campushr/attendance-backend-go/internal/service/file"
)

// AttendanceJobs owns the nightly housekeeping: materializing absences
// for staff who never signed in, and archiving yesterday's report.
type AttendanceJobs struct {
	records   attendance.Repository
	directory employee.Directory
	reports   report.Service
	files     file.Service
	loc       *time.Location
	now       func() time.Time
}

func NewAttendanceJobs(
	records attendance.Repository,
	directory employee.Directory,
	reports report.Service,
	files file.Service,
	loc *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		records:   records,
		directory: directory,
		reports:   reports,
		files:     files,
		loc:       loc,
		now:       time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
	scheduler.AddJob("export_daily_report", 1*time.Hour, j.ExportDailyReport)
}

// atMidnight gates an hourly job to the first hour of the institution's
// local day.
func (j *AttendanceJobs) atMidnight() bool {
	return j.now().In(j.loc).Hour() == 0
}

// yesterday returns the previous institution-local calendar day.
func (j *AttendanceJobs) yesterday() time.Time {
	local := j.now().In(j.loc).AddDate(0, 0, -1)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// MarkAbsentEmployees writes an explicit absent record for every
// directory employee with no record for yesterday. A missing record
// already reads as absent; materializing it keeps historical exports
// stable once the directory changes.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	if !j.atMidnight() {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job")

	day := j.yesterday()

	staff, err := j.directory.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	marked := 0
	for _, emp := range staff {
		rec, err := j.records.GetByEmployeeAndDate(ctx, emp.EmployeeID, day)
		if err != nil {
			slog.Error("Cron: Failed to check attendance",
				"employee_id", emp.EmployeeID, "error", err)
			continue
		}
		if rec != nil {
			continue
		}

		if _, err := j.records.UpsertStatus(ctx, emp.EmployeeID, emp.FullName, day, attendance.StatusAbsent, nil); err != nil {
			slog.Error("Cron: Failed to mark employee absent",
				"employee_id", emp.EmployeeID, "error", err)
			continue
		}
		marked++
	}

	slog.Info("Cron: Marked absent employees", "count", marked, "date", day.Format("2006-01-02"))
	return nil
}

// ExportDailyReport archives yesterday's attendance report as CSV in
// the export directory.
func (j *AttendanceJobs) ExportDailyReport(ctx context.Context) error {
	if !j.atMidnight() {
		return nil
	}

	day := j.yesterday().Format("2006-01-02")
	slog.Info("Cron: Starting daily report export", "date", day)

	var buf bytes.Buffer
	if err := j.reports.ExportCSV(ctx, report.Request{Date: day}, &buf); err != nil {
		return fmt.Errorf("failed to build daily report: %w", err)
	}

	path, err := j.files.SaveExport(ctx, fmt.Sprintf("attendance-%s.csv", day), &buf)
	if err != nil {
		return fmt.Errorf("failed to store daily report: %w", err)
	}

	slog.Info("Cron: Daily report exported", "path", path)
	return nil
}
