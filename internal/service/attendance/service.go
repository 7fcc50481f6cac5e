package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	"github.com/campushr/attendance-backend-go/internal/pkg/database"
	"github.com/campushr/attendance-backend-go/internal/repository/postgresql"
)

type ServiceImpl struct {
	db         *database.DB
	repo       attendance.Repository
	classifier *Classifier
	loc        *time.Location
	now        func() time.Time
}

func NewService(db *database.DB, repo attendance.Repository, classifier *Classifier, loc *time.Location) attendance.Service {
	return &ServiceImpl{
		db:         db,
		repo:       repo,
		classifier: classifier,
		loc:        loc,
		now:        time.Now,
	}
}

// withTx runs fn inside a single database transaction. Repositories that
// are not database-backed run fn directly.
func (s *ServiceImpl) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// localDay normalizes a moment to its institution-local calendar day.
func (s *ServiceImpl) localDay(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// RecordEvent implements attendance.Service.
func (s *ServiceImpl) RecordEvent(ctx context.Context, employeeID, employeeName string, date time.Time, kind attendance.EventKind, at time.Time, imageRef *string) (attendance.Record, error) {
	if employeeID == "" {
		return attendance.Record{}, attendance.ErrEmployeeRequired
	}

	// Status matters on insert and on check-in updates; the repository
	// never writes it for a check-out against an existing record.
	var status attendance.Status
	if kind == attendance.EventCheckIn {
		status = s.classifier.Classify(&at)
	} else {
		status = s.classifier.Classify(nil)
	}

	rec, err := s.repo.UpsertEvent(ctx, attendance.EventWrite{
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		Date:         date,
		Kind:         kind,
		Time:         at,
		ImageRef:     imageRef,
		Status:       status,
	})
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert %s event: %w", kind, err)
	}
	return rec, nil
}

// Upsert implements attendance.Service. Manual create/upsert from the
// administrative surface; event times arrive as HH:MM on the given date.
func (s *ServiceImpl) Upsert(ctx context.Context, req attendance.UpsertRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	day, _ := time.Parse("2006-01-02", req.Date)

	// A request may carry several writes (check-in, check-out, status);
	// they land atomically or not at all.
	var rec attendance.Record
	err := s.withTx(ctx, func(ctx context.Context) error {
		var err error
		wrote := false

		if req.CheckIn != nil {
			at := s.combine(day, *req.CheckIn)
			rec, err = s.RecordEvent(ctx, req.EmployeeID, req.EmployeeName, day, attendance.EventCheckIn, at, req.CheckInImage)
			if err != nil {
				return err
			}
			wrote = true
		}

		if req.CheckOut != nil {
			at := s.combine(day, *req.CheckOut)
			rec, err = s.RecordEvent(ctx, req.EmployeeID, req.EmployeeName, day, attendance.EventCheckOut, at, req.CheckOutImage)
			if err != nil {
				return err
			}
			wrote = true
		}

		// Explicit status (leave, half-day) or notes override whatever the
		// classifier produced; a status-only request still creates the record.
		if req.Status != nil || req.Notes != nil || !wrote {
			status := attendance.StatusAbsent
			if req.Status != nil {
				status = attendance.Status(*req.Status)
			} else if wrote {
				status = rec.Status
			}
			rec, err = s.repo.UpsertStatus(ctx, req.EmployeeID, req.EmployeeName, day, status, req.Notes)
			if err != nil {
				return fmt.Errorf("failed to upsert attendance status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return s.toResponse(rec), nil
}

// List implements attendance.Service.
func (s *ServiceImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, s.toResponse(rec))
	}
	return responses, nil
}

// Today implements attendance.Service.
func (s *ServiceImpl) Today(ctx context.Context, employeeID string) (attendance.TodayResponse, error) {
	if employeeID == "" {
		return attendance.TodayResponse{}, attendance.ErrEmployeeRequired
	}

	today := s.localDay(s.now())
	rec, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}

	if rec == nil {
		return attendance.TodayResponse{HasRecord: false, CanCheckIn: true}, nil
	}

	resp := s.toResponse(*rec)
	return attendance.TodayResponse{
		HasRecord:   true,
		Record:      &resp,
		CanCheckIn:  !rec.HasEvent(attendance.EventCheckIn),
		CanCheckOut: rec.HasEvent(attendance.EventCheckIn) && !rec.HasEvent(attendance.EventCheckOut),
	}, nil
}

// Get implements attendance.Service.
func (s *ServiceImpl) Get(ctx context.Context, id string) (attendance.RecordResponse, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return s.toResponse(rec), nil
}

// Update implements attendance.Service. Administrative corrections bypass
// the classifier entirely; the caller owns the status.
func (s *ServiceImpl) Update(ctx context.Context, req attendance.UpdateRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	patch := attendance.AdminPatch{Notes: req.Notes}

	day := existing.Date
	if req.Date != nil && *req.Date != "" {
		parsed, _ := time.Parse("2006-01-02", *req.Date)
		day = parsed
		patch.Date = &parsed
	}

	if req.CheckIn != nil {
		at := s.combine(day, *req.CheckIn)
		patch.CheckIn = &at
	}
	if req.CheckOut != nil {
		at := s.combine(day, *req.CheckOut)
		patch.CheckOut = &at
	}
	if req.Status != nil {
		status := attendance.Status(*req.Status)
		patch.Status = &status
	}

	rec, err := s.repo.Update(ctx, req.ID, patch)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return s.toResponse(rec), nil
}

// Delete implements attendance.Service.
func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	return nil
}

// combine anchors an HH:MM string onto a calendar day in the institution
// timezone.
func (s *ServiceImpl) combine(day time.Time, hhmm string) time.Time {
	t, _ := time.Parse("15:04", hhmm)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, s.loc)
}

func (s *ServiceImpl) toResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		EmployeeName:  rec.EmployeeName,
		Date:          rec.Date.Format("2006-01-02"),
		CheckIn:       s.clockString(rec.CheckIn),
		CheckOut:      s.clockString(rec.CheckOut),
		Status:        string(rec.Status),
		CheckInImage:  rec.CheckInImage,
		CheckOutImage: rec.CheckOutImage,
		Notes:         rec.Notes,
		CreatedAt:     rec.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// clockString converts a stored timestamp to an institution-local HH:MM.
func (s *ServiceImpl) clockString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(s.loc).Format("15:04")
	return &formatted
}
