package cron

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	"github.com/campushr/attendance-backend-go/internal/domain/employee"
	"github.com/campushr/attendance-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecords struct {
	attendance.Repository
	existing map[string]attendance.Record
	marked   []string
}

func (s *stubRecords) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	if rec, ok := s.existing[employeeID]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (s *stubRecords) UpsertStatus(ctx context.Context, employeeID, employeeName string, date time.Time, status attendance.Status, notes *string) (attendance.Record, error) {
	s.marked = append(s.marked, employeeID)
	return attendance.Record{EmployeeID: employeeID, Date: date, Status: status}, nil
}

type stubStaff struct {
	refs []employee.Ref
}

func (s *stubStaff) GetByID(ctx context.Context, employeeID string) (employee.Ref, error) {
	for _, ref := range s.refs {
		if ref.EmployeeID == employeeID {
			return ref, nil
		}
	}
	return employee.Ref{}, employee.ErrEmployeeNotFound
}

func (s *stubStaff) List(ctx context.Context) ([]employee.Ref, error) {
	return s.refs, nil
}

type stubReports struct {
	exportedDates []string
}

func (s *stubReports) Build(ctx context.Context, req report.Request) (report.Result, error) {
	return report.Result{}, nil
}

func (s *stubReports) ExportCSV(ctx context.Context, req report.Request, w io.Writer) error {
	s.exportedDates = append(s.exportedDates, req.Date)
	_, err := io.WriteString(w, "\"Department\"\n")
	return err
}

func (s *stubReports) ExportSectionCSV(section report.Section, w io.Writer) error {
	return nil
}

func (s *stubReports) ExportXLSX(ctx context.Context, req report.Request, w io.Writer) error {
	return nil
}

type stubFiles struct {
	savedExports []string
}

func (s *stubFiles) SaveFrame(ctx context.Context, employeeID string, day time.Time, kind attendance.EventKind, frame []byte) (string, error) {
	return "", nil
}

func (s *stubFiles) SaveExport(ctx context.Context, filename string, content io.Reader) (string, error) {
	s.savedExports = append(s.savedExports, filename)
	return filename, nil
}

func (s *stubFiles) FrameURL(ctx context.Context, path string) (string, error) {
	return path, nil
}

func (s *stubFiles) Delete(ctx context.Context, path string) error {
	return nil
}

func newJobsAtClock(t *testing.T, clock time.Time) (*AttendanceJobs, *stubRecords, *stubReports, *stubFiles) {
	t.Helper()
	records := &stubRecords{existing: map[string]attendance.Record{}}
	reports := &stubReports{}
	files := &stubFiles{}
	staff := &stubStaff{refs: []employee.Ref{
		{EmployeeID: "emp-1", FullName: "Ana Cruz", Department: "Registrar"},
		{EmployeeID: "emp-2", FullName: "Ben Reyes", Department: "Library"},
	}}

	jobs := NewAttendanceJobs(records, staff, reports, files, time.UTC)
	jobs.now = func() time.Time { return clock }
	return jobs, records, reports, files
}

func TestScheduledJobsRunOnceAtMidnight(t *testing.T) {
	// Half past midnight: both hourly jobs pass the midnight gate.
	jobs, records, reports, files := newJobsAtClock(t, time.Date(2025, 4, 2, 0, 30, 0, 0, time.UTC))
	records.existing["emp-1"] = attendance.Record{
		EmployeeID: "emp-1",
		Date:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:     attendance.StatusPresent,
	}

	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler)
	scheduler.RunOnce(context.Background())

	// Only the employee without a record gets materialized as absent.
	assert.Equal(t, []string{"emp-2"}, records.marked)

	require.Len(t, reports.exportedDates, 1)
	assert.Equal(t, "2025-04-01", reports.exportedDates[0])
	assert.Equal(t, []string{"attendance-2025-04-01.csv"}, files.savedExports)
}

func TestScheduledJobsSkipOutsideMidnightHour(t *testing.T) {
	jobs, records, reports, files := newJobsAtClock(t, time.Date(2025, 4, 2, 13, 0, 0, 0, time.UTC))

	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler)
	scheduler.RunOnce(context.Background())

	assert.Empty(t, records.marked)
	assert.Empty(t, reports.exportedDates)
	assert.Empty(t, files.savedExports)
}

func TestRunOnceExecutesEveryRegisteredJob(t *testing.T) {
	scheduler := NewScheduler()

	counts := map[string]int{}
	scheduler.AddJob("first", time.Hour, func(ctx context.Context) error {
		counts["first"]++
		return nil
	})
	scheduler.AddJob("second", time.Hour, func(ctx context.Context) error {
		counts["second"]++
		return nil
	})

	scheduler.RunOnce(context.Background())
	assert.Equal(t, map[string]int{"first": 1, "second": 1}, counts)

	scheduler.RunOnce(context.Background())
	assert.Equal(t, map[string]int{"first": 2, "second": 2}, counts)
}
