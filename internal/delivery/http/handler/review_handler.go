package handler

import (
	"encoding/json"
	"net/http"

	"medfi-backend/internal/converter"
	"medfi-backend/internal/delivery/dto"
	"medfi-backend/internal/delivery/http/middleware"
	"medfi-backend/internal/usecase"
	"medfi-backend/pkg/response"
	"medfi-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type ReviewHandler struct {
	reviewUsecase usecase.ReviewUsecase
	validator     *validator.CustomValidator
}

func NewReviewHandler(reviewUsecase usecase.ReviewUsecase, validator *validator.CustomValidator) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
		validator:     validator,
	}
}

// List returns all applications, optionally filtered by status
// @Summary List verification applications
// @Tags Review
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status" Enums(unverified, pending, approved, rejected)
// @Success 200 {object} response.Response
// @Router /admin/applications [get]
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.reviewUsecase.ListAll(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		response.InternalServerError(w, "Failed to list applications")
		return
	}

	response.Success(w, http.StatusOK, "Applications retrieved successfully", list)
}

// Stats returns application counts per status
// @Summary Get review statistics
// @Tags Review
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/applications/stats [get]
func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reviewUsecase.Stats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get statistics")
		return
	}

	response.Success(w, http.StatusOK, "Statistics retrieved successfully", stats)
}

// Detail returns one application with its actionability
// @Summary Get one application
// @Tags Review
// @Security BearerAuth
// @Produce json
// @Param address path string true "Wallet address"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/applications/{address} [get]
func (h *ReviewHandler) Detail(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	detail, err := h.reviewUsecase.GetDetail(r.Context(), address)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Application not found")
		default:
			response.InternalServerError(w, "Failed to get application")
		}
		return
	}

	response.Success(w, http.StatusOK, "Application retrieved successfully", detail)
}

// History returns an application's audit trail
// @Summary Get application history
// @Tags Review
// @Security BearerAuth
// @Produce json
// @Param address path string true "Wallet address"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/applications/{address}/history [get]
func (h *ReviewHandler) History(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	history, err := h.reviewUsecase.History(r.Context(), address)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Application not found")
		default:
			response.InternalServerError(w, "Failed to get history")
		}
		return
	}

	response.Success(w, http.StatusOK, "History retrieved successfully", history)
}

// Decide approves or rejects a pending application
// @Summary Decide an application
// @Tags Review
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param address path string true "Wallet address"
// @Param request body dto.DecisionRequest true "Decision"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/applications/{address}/decision [post]
func (h *ReviewHandler) Decide(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	address := mux.Vars(r)["address"]

	var req dto.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.reviewUsecase.Decide(r.Context(), adminID, address, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Application not found")
		case usecase.ErrInvalidDecision:
			response.Error(w, http.StatusBadRequest, "Decision must be approved or rejected", nil)
		case usecase.ErrNotPending:
			response.Error(w, http.StatusConflict, "Application is not pending review", nil)
		case usecase.ErrDecisionInProgress:
			response.Error(w, http.StatusConflict, "Another decision is in progress", nil)
		default:
			response.InternalServerError(w, "Failed to apply decision")
		}
		return
	}

	response.Success(w, http.StatusOK, "Decision applied successfully", doctor)
}

// Watch streams the applications list over SSE. Each event is the full
// current list; the first arrives immediately and a new one follows
// every change, so the console never has to poll.
// @Summary Watch applications live
// @Tags Review
// @Security BearerAuth
// @Produce text/event-stream
// @Param status query string false "Filter by status" Enums(unverified, pending, approved, rejected)
// @Success 200
// @Router /admin/applications/watch [get]
func (h *ReviewHandler) Watch(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming is not supported")
		return
	}

	sub, err := h.reviewUsecase.Watch(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		response.InternalServerError(w, "Failed to open application stream")
		return
	}
	defer h.reviewUsecase.Unwatch(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sub.Done():
			return
		case doctors := <-sub.C:
			payload, err := json.Marshal(dto.ReviewListResponse{
				Doctors: converter.DoctorsToResponses(doctors),
				Total:   len(doctors),
			})
			if err != nil {
				continue
			}

			if _, err := w.Write([]byte("data: ")); err != nil {
				return
			}
			if _, err := w.Write(payload); err != nil {
				return
			}
			if _, err := w.Write([]byte("\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
