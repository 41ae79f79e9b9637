package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/sse"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Scan(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	jwtService        jwt.Service
	hub               *sse.Hub
	keepalive         time.Duration
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, jwtService jwt.Service, hub *sse.Hub) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
		hub:               hub,
		keepalive:         30 * time.Second,
	}
}

// Scan handles a kiosk barcode scan.
func (h *attendanceHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req attendance.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Scan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Scan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, h.attendanceService.CheckIn, "Check-in recorded")
}

func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, h.attendanceService.CheckOut, "Check-out recorded")
}

func (h *attendanceHandlerImpl) punch(w http.ResponseWriter, r *http.Request, record func(ctx context.Context, traineeID string, at time.Time) (attendance.SessionResponse, error), message string) {
	var req attendance.ManualPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := record(r.Context(), req.TraineeID, req.Instant(time.Now()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter attendance.SessionFilter
	filter.TraineeID = optionalQuery(r, "trainee_id")
	filter.ShiftID = optionalQuery(r, "shift_id")
	filter.Date = optionalQuery(r, "date")
	filter.StartDate = optionalQuery(r, "start_date")
	filter.EndDate = optionalQuery(r, "end_date")
	filter.Status = optionalQuery(r, "status")
	filter.SortBy = r.URL.Query().Get("sort_by")
	filter.SortOrder = r.URL.Query().Get("sort_order")

	var ok bool
	if filter.Page, ok = intQuery(r, "page"); !ok {
		response.BadRequest(w, "Invalid page parameter", nil)
		return
	}
	if filter.Limit, ok = intQuery(r, "limit"); !ok {
		response.BadRequest(w, "Invalid limit parameter", nil)
		return
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Sessions, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance status updated", result)
}

// Stream pushes attendance events over Server-Sent Events. EventSource cannot send
// headers, so the short-lived SSE token comes in the query string.
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	userID, role, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}
	if !user.HasPermission(role, user.PermissionAttendanceView) {
		response.Forbidden(w, "Insufficient permissions")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sse.TopicAttendance)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%q}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("SSE marshal error", "event", event.Name, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
