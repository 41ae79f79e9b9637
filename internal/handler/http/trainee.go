package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/trainee"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TraineeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type traineeHandlerImpl struct {
	traineeService trainee.TraineeService
}

func NewTraineeHandler(traineeService trainee.TraineeService) TraineeHandler {
	return &traineeHandlerImpl{traineeService: traineeService}
}

func (h *traineeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req trainee.CreateTraineeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.traineeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Trainee created successfully", result)
}

func (h *traineeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.traineeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *traineeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter trainee.TraineeFilter
	filter.Search = optionalQuery(r, "search")
	filter.ShiftID = optionalQuery(r, "shift_id")
	filter.GroupID = optionalQuery(r, "group_id")
	filter.Status = optionalQuery(r, "status")

	var ok bool
	if filter.Page, ok = intQuery(r, "page"); !ok {
		response.BadRequest(w, "Invalid page parameter", nil)
		return
	}
	if filter.Limit, ok = intQuery(r, "limit"); !ok {
		response.BadRequest(w, "Invalid limit parameter", nil)
		return
	}

	result, err := h.traineeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Trainees, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *traineeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req trainee.UpdateTraineeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.traineeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Trainee updated successfully", result)
}

func (h *traineeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.traineeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Trainee deleted successfully", nil)
}
