package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/master/rank"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/master/specialization"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/service/master"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	// Rank handlers
	CreateRank(w http.ResponseWriter, r *http.Request)
	GetRank(w http.ResponseWriter, r *http.Request)
	ListRanks(w http.ResponseWriter, r *http.Request)
	UpdateRank(w http.ResponseWriter, r *http.Request)
	DeleteRank(w http.ResponseWriter, r *http.Request)

	// Specialization handlers
	CreateSpecialization(w http.ResponseWriter, r *http.Request)
	GetSpecialization(w http.ResponseWriter, r *http.Request)
	ListSpecializations(w http.ResponseWriter, r *http.Request)
	UpdateSpecialization(w http.ResponseWriter, r *http.Request)
	DeleteSpecialization(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== RANK HANDLERS ====================

func (h *masterHandlerImpl) CreateRank(w http.ResponseWriter, r *http.Request) {
	var req rank.CreateRankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateRank(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Rank created successfully", result)
}

func (h *masterHandlerImpl) GetRank(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetRank(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListRanks(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListRanks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) UpdateRank(w http.ResponseWriter, r *http.Request) {
	var req rank.UpdateRankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateRank(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rank updated successfully", result)
}

func (h *masterHandlerImpl) DeleteRank(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteRank(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rank deleted successfully", nil)
}

// ==================== SPECIALIZATION HANDLERS ====================

func (h *masterHandlerImpl) CreateSpecialization(w http.ResponseWriter, r *http.Request) {
	var req specialization.CreateSpecializationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateSpecialization(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Specialization created successfully", result)
}

func (h *masterHandlerImpl) GetSpecialization(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetSpecialization(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListSpecializations(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListSpecializations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) UpdateSpecialization(w http.ResponseWriter, r *http.Request) {
	var req specialization.UpdateSpecializationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateSpecialization(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Specialization updated successfully", result)
}

func (h *masterHandlerImpl) DeleteSpecialization(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteSpecialization(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Specialization deleted successfully", nil)
}
