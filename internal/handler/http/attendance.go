package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	domaincapture "github.com/campushr/attendance-backend-go/internal/domain/capture"
	"github.com/campushr/attendance-backend-go/internal/handler/http/response"
	"github.com/campushr/attendance-backend-go/internal/pkg/geo"
	"github.com/campushr/attendance-backend-go/internal/pkg/jwt"
	capturesvc "github.com/campushr/attendance-backend-go/internal/service/capture"
	"github.com/campushr/attendance-backend-go/internal/service/file"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	workflow          *capturesvc.Workflow
	jwtService        jwt.Service
	fileService       file.Service
}

func NewAttendanceHandler(attendanceService attendance.Service, workflow *capturesvc.Workflow, jwtService jwt.Service, fileService file.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		workflow:          workflow,
		jwtService:        jwtService,
		fileService:       fileService,
	}
}

// checkInData is the JSON half of the multipart check-in/out payload.
type checkInData struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// formLocation serves the coordinates the client submitted with the
// request as a one-shot location fix.
type formLocation struct {
	coord geo.Coordinate
}

func (f *formLocation) Acquire(ctx context.Context) (geo.Coordinate, error) {
	if !f.coord.Valid() {
		return geo.Coordinate{}, fmt.Errorf("coordinates out of range")
	}
	return f.coord, nil
}

// formCamera replays the uploaded photo as a single captured frame.
type formCamera struct {
	frame []byte
}

func (f *formCamera) Open(ctx context.Context) (domaincapture.Session, error) {
	return &formSession{frame: f.frame}, nil
}

type formSession struct {
	frame []byte
}

func (s *formSession) Capture(ctx context.Context) ([]byte, error) { return s.frame, nil }
func (s *formSession) Close() error                                { return nil }

// resolveFrameURLs swaps stored frame paths for fetchable URLs on the
// way out. A failed resolution leaves the raw path in place.
func (h *attendanceHandlerImpl) resolveFrameURLs(ctx context.Context, rec *attendance.RecordResponse) {
	if rec == nil {
		return
	}
	if rec.CheckInImage != nil {
		if url, err := h.fileService.FrameURL(ctx, *rec.CheckInImage); err == nil {
			rec.CheckInImage = &url
		}
	}
	if rec.CheckOutImage != nil {
		if url, err := h.fileService.FrameURL(ctx, *rec.CheckOutImage); err == nil {
			rec.CheckOutImage = &url
		}
	}
}

// identity pulls the acting employee out of the verified token.
func (h *attendanceHandlerImpl) identity(r *http.Request) (string, string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", err
	}
	return h.jwtService.EmployeeClaims(claims)
}

// captureEvent handles the shared multipart flow of both sign
// endpoints: JSON coordinates in the 'data' field, proof photo in
// 'photo'.
func (h *attendanceHandlerImpl) captureEvent(w http.ResponseWriter, r *http.Request, kind attendance.EventKind) (attendance.RecordResponse, bool) {
	employeeID, employeeName, err := h.identity(r)
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return attendance.RecordResponse{}, false
	}

	// Max 10MB
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return attendance.RecordResponse{}, false
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return attendance.RecordResponse{}, false
	}

	var data checkInData
	if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return attendance.RecordResponse{}, false
	}

	photo, _, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Attendance proof photo is required", nil)
			return attendance.RecordResponse{}, false
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return attendance.RecordResponse{}, false
	}
	defer photo.Close()

	frame, err := io.ReadAll(photo)
	if err != nil {
		slog.Error("Failed to read photo", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return attendance.RecordResponse{}, false
	}

	rec, err := h.workflow.Run(r.Context(), employeeID, employeeName, kind,
		&formLocation{coord: geo.Coordinate{Latitude: data.Latitude, Longitude: data.Longitude}},
		&formCamera{frame: frame},
	)
	if err != nil {
		response.HandleError(w, err)
		return attendance.RecordResponse{}, false
	}

	resp, err := h.attendanceService.Get(r.Context(), rec.ID)
	if err != nil {
		response.HandleError(w, err)
		return attendance.RecordResponse{}, false
	}
	h.resolveFrameURLs(r.Context(), &resp)
	return resp, true
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.captureEvent(w, r, attendance.EventCheckIn)
	if !ok {
		return
	}
	response.Created(w, "Sign in successful", rec)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.captureEvent(w, r, attendance.EventCheckOut)
	if !ok {
		return
	}
	response.SuccessWithMessage(w, "Sign out successful", rec)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.Filter{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	records, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	employeeID, _, err := h.identity(r)
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	today, err := h.attendanceService.Today(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.resolveFrameURLs(r.Context(), today.Record)
	response.Success(w, today)
}

// Upsert implements AttendanceHandler. Manual record entry for
// administrators; repeating a request converges on the same record.
func (h *attendanceHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rec, err := h.attendanceService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Attendance record saved", rec)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.attendanceService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.resolveFrameURLs(r.Context(), &rec)
	response.Success(w, rec)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	rec, err := h.attendanceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance record updated", rec)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}
