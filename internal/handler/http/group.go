package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type GroupHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	AssignShift(w http.ResponseWriter, r *http.Request)
	ListSchedules(w http.ResponseWriter, r *http.Request)
	DeleteSchedule(w http.ResponseWriter, r *http.Request)
}

type groupHandlerImpl struct {
	groupService group.GroupService
}

func NewGroupHandler(groupService group.GroupService) GroupHandler {
	return &groupHandlerImpl{groupService: groupService}
}

func (h *groupHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req group.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.groupService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Group created successfully", result)
}

func (h *groupHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.groupService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *groupHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.groupService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *groupHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req group.UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.groupService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Group updated successfully", result)
}

func (h *groupHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Group deleted successfully", nil)
}

func (h *groupHandlerImpl) AssignShift(w http.ResponseWriter, r *http.Request) {
	var req group.AssignShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.GroupID = chi.URLParam(r, "id")

	results, err := h.groupService.AssignShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assigned successfully", results)
}

func (h *groupHandlerImpl) ListSchedules(w http.ResponseWriter, r *http.Request) {
	filter := group.ScheduleFilter{
		GroupID:   chi.URLParam(r, "id"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	results, err := h.groupService.ListSchedules(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *groupHandlerImpl) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.DeleteSchedule(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "scheduleID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Group schedule deleted successfully", nil)
}
