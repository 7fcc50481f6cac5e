package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/campushr/attendance-backend-go/internal/domain/report"
	"github.com/campushr/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Attendance(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func reportRequest(r *http.Request) report.Request {
	q := r.URL.Query()
	return report.Request{
		Date:       q.Get("date"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		SearchTerm: q.Get("search"),
	}
}

// Attendance implements ReportHandler.
func (h *reportHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Build(r.Context(), reportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Export implements ReportHandler. The file is built in memory first so
// a failed build still returns a clean JSON error instead of a
// truncated download; format defaults to CSV.
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := reportRequest(r)

	name := req.Date
	if name == "" {
		name = fmt.Sprintf("%s_%s", req.StartDate, req.EndDate)
	}

	var buf bytes.Buffer
	var filename, contentType string

	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		filename = fmt.Sprintf("attendance-%s.csv", name)
		contentType = "text/csv"
		if err := h.reportService.ExportCSV(r.Context(), req, &buf); err != nil {
			response.HandleError(w, err)
			return
		}
	case "xlsx":
		filename = fmt.Sprintf("attendance-%s.xlsx", name)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		if err := h.reportService.ExportXLSX(r.Context(), req, &buf); err != nil {
			response.HandleError(w, err)
			return
		}
	default:
		response.HandleError(w, report.ErrUnsupportedFormat)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
