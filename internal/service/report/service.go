package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	"github.com/campushr/attendance-backend-go/internal/domain/employee"
	"github.com/campushr/attendance-backend-go/internal/domain/report"
	attendancesvc "github.com/campushr/attendance-backend-go/internal/service/attendance"
)

// missing is rendered wherever the underlying value is absent: no
// check-in, no check-out, or an employee the directory cannot resolve.
const missing = "N/A"

// unassignedDepartment groups rows whose employee has no directory entry.
const unassignedDepartment = "Unassigned"

type ServiceImpl struct {
	records    attendance.Repository
	directory  employee.Directory
	classifier *attendancesvc.Classifier
	loc        *time.Location
	now        func() time.Time
}

type Option func(*ServiceImpl)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *ServiceImpl) { s.now = now }
}

func NewService(records attendance.Repository, directory employee.Directory, classifier *attendancesvc.Classifier, loc *time.Location, opts ...Option) report.Service {
	s := &ServiceImpl{
		records:    records,
		directory:  directory,
		classifier: classifier,
		loc:        loc,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build implements report.Service.
func (s *ServiceImpl) Build(ctx context.Context, req report.Request) (report.Result, error) {
	if err := req.Validate(); err != nil {
		return report.Result{}, err
	}

	start, end := s.window(req)

	records, err := s.records.ListRange(ctx, start, end)
	if err != nil {
		return report.Result{}, fmt.Errorf("failed to load attendance records: %w", err)
	}

	refs, err := s.directory.List(ctx)
	if err != nil {
		return report.Result{}, fmt.Errorf("failed to load employee directory: %w", err)
	}
	byID := make(map[string]employee.Ref, len(refs))
	for _, ref := range refs {
		byID[ref.EmployeeID] = ref
	}

	search := strings.ToLower(strings.TrimSpace(req.SearchTerm))

	type sectionKey struct {
		department string
		date       string
	}
	grouped := make(map[sectionKey][]report.Row)
	var warnings []string

	for _, rec := range records {
		department := unassignedDepartment
		employmentType := missing
		name := rec.EmployeeName

		ref, ok := byID[rec.EmployeeID]
		if ok {
			department = ref.Department
			employmentType = ref.EmploymentType
			if ref.FullName != "" {
				name = ref.FullName
			}
		} else {
			msg := fmt.Sprintf("employee %s has attendance on %s but no directory entry", rec.EmployeeID, rec.Date.Format("2006-01-02"))
			warnings = append(warnings, msg)
			slog.Warn("attendance record without directory entry",
				"employee_id", rec.EmployeeID,
				"date", rec.Date.Format("2006-01-02"),
			)
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(name), search) &&
			!strings.Contains(strings.ToLower(rec.EmployeeID), search) {
			continue
		}

		key := sectionKey{department: department, date: rec.Date.Format("2006-01-02")}
		grouped[key] = append(grouped[key], report.Row{
			EmployeeName:   name,
			EmployeeID:     rec.EmployeeID,
			EmploymentType: employmentType,
			Date:           key.date,
			SignIn:         s.clock12(rec.CheckIn),
			SignOut:        s.clock12(rec.CheckOut),
			StatusDisplay:  s.statusDisplay(rec),
		})
	}

	// Rows keep the order the repository returned them in; only the
	// sections themselves are ordered.
	sections := make([]report.Section, 0, len(grouped))
	for key, rows := range grouped {
		sections = append(sections, report.Section{
			Department: key.department,
			Date:       key.date,
			Rows:       rows,
		})
	}

	// Newest date first; departments alphabetical within a date.
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].Date != sections[j].Date {
			return sections[i].Date > sections[j].Date
		}
		return sections[i].Department < sections[j].Department
	})

	return report.Result{
		Sections:    sections,
		GeneratedAt: s.now().In(s.loc).Format("2006-01-02 15:04:05"),
		Warnings:    warnings,
	}, nil
}

// window resolves the request to an inclusive [start, end] day pair.
func (s *ServiceImpl) window(req report.Request) (time.Time, time.Time) {
	if req.Date != "" {
		day, _ := time.Parse("2006-01-02", req.Date)
		return day, day
	}
	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	return start, end
}

// clock12 renders a stored timestamp as an institution-local 12-hour
// clock string.
func (s *ServiceImpl) clock12(t *time.Time) string {
	if t == nil {
		return missing
	}
	return t.In(s.loc).Format("3:04 PM")
}

// statusDisplay renders the stored status for the report. Lateness is
// recomputed live from the stored check-in so the annotation always
// reflects the current expected-arrival threshold, while the stored
// status stays the single source of truth for which bucket a record is
// in.
func (s *ServiceImpl) statusDisplay(rec attendance.Record) string {
	if rec.Status == attendance.StatusLate && rec.CheckIn != nil {
		mins := s.classifier.MinutesLate(rec.CheckIn.In(s.loc))
		if mins > 0 {
			return fmt.Sprintf("Late (%d mins)", mins)
		}
	}

	switch rec.Status {
	case attendance.StatusPresent:
		return "Present"
	case attendance.StatusAbsent:
		return "Absent"
	case attendance.StatusLate:
		return "Late"
	case attendance.StatusHalfDay:
		return "Half Day"
	case attendance.StatusOnLeave:
		return "On Leave"
	default:
		return string(rec.Status)
	}
}
