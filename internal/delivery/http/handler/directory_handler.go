package handler

import (
	"net/http"

	"medfi-backend/internal/domain/entity"
	"medfi-backend/internal/usecase"
	"medfi-backend/pkg/response"

	"github.com/gorilla/mux"
)

type DirectoryHandler struct {
	directoryUsecase usecase.DirectoryUsecase
}

func NewDirectoryHandler(directoryUsecase usecase.DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{directoryUsecase: directoryUsecase}
}

// List returns the public directory of approved doctors
// @Summary List approved doctors
// @Tags Directory
// @Produce json
// @Param specialty query string false "Filter by specialty"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DirectoryHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.directoryUsecase.ListApproved(r.Context(), r.URL.Query().Get("specialty"))
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", list)
}

// Detail returns one approved doctor's public profile
// @Summary Get doctor profile
// @Tags Directory
// @Produce json
// @Param address path string true "Wallet address"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{address} [get]
func (h *DirectoryHandler) Detail(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	detail, err := h.directoryUsecase.GetApprovedByAddress(r.Context(), address)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", detail)
}

// BookingSlots returns the bookable date and time grid for a doctor
// @Summary Get booking slots
// @Tags Directory
// @Produce json
// @Param address path string true "Wallet address"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{address}/booking/slots [get]
func (h *DirectoryHandler) BookingSlots(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	slots, err := h.directoryUsecase.BookingSlots(r.Context(), address)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get booking slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking slots retrieved successfully", slots)
}

// BookingPrefill returns the handoff payload for a chosen slot
// @Summary Get booking prefill
// @Tags Directory
// @Produce json
// @Param address path string true "Wallet address"
// @Param date query string false "Chosen date (YYYY-MM-DD)"
// @Param time query string false "Chosen time"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{address}/booking/prefill [get]
func (h *DirectoryHandler) BookingPrefill(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	query := r.URL.Query()

	prefill, err := h.directoryUsecase.BookingPrefill(r.Context(), address, query.Get("date"), query.Get("time"))
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get booking prefill")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking prefill retrieved successfully", prefill)
}

// FormOptions returns the fixed option lists the onboarding forms render
// @Summary Get form option lists
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Response
// @Router /meta/options [get]
func (h *DirectoryHandler) FormOptions(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Options retrieved successfully", map[string]interface{}{
		"specialties":        entity.Specialties,
		"experience_buckets": entity.ExperienceBuckets,
		"countries":          entity.Countries,
	})
}
