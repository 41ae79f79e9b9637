package http

import (
	"net/http"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	ExportDaily(w http.ResponseWriter, r *http.Request)
	Period(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Daily handles GET /reports/daily?date=YYYY-MM-DD
func (h *reportHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	req := report.DailyReportRequest{Date: r.URL.Query().Get("date")}

	result, err := h.reportService.Daily(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportDaily streams the daily report as an XLSX attachment.
func (h *reportHandlerImpl) ExportDaily(w http.ResponseWriter, r *http.Request) {
	req := report.DailyReportRequest{Date: r.URL.Query().Get("date")}

	buf, filename, err := h.reportService.ExportDaily(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, xlsxContentType, filename, buf.Len(), buf)
}

// Period handles GET /reports/period?start_date=...&end_date=...
func (h *reportHandlerImpl) Period(w http.ResponseWriter, r *http.Request) {
	req := report.PeriodReportRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.reportService.Period(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
