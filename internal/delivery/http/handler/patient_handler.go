package handler

import (
	"encoding/json"
	"net/http"

	"medfi-backend/internal/delivery/dto"
	"medfi-backend/internal/delivery/http/middleware"
	"medfi-backend/internal/usecase"
	"medfi-backend/pkg/response"
	"medfi-backend/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientProfileUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientProfileUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// Get returns the caller's patient profile, if any
// @Summary Get patient profile
// @Tags Patient
// @Produce json
// @Param X-Wallet-Address header string true "Wallet address"
// @Success 200 {object} response.Response
// @Router /patients/me [get]
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	address, ok := middleware.GetWalletFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Wallet address is required")
		return
	}

	profile, err := h.patientUsecase.Get(r.Context(), address)
	if err != nil {
		response.InternalServerError(w, "Failed to get profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

// Save creates or updates the caller's patient profile
// @Summary Save patient profile
// @Tags Patient
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Wallet address"
// @Param request body dto.PatientProfileRequest true "Profile"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /patients/me [put]
func (h *PatientHandler) Save(w http.ResponseWriter, r *http.Request) {
	address, ok := middleware.GetWalletFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Wallet address is required")
		return
	}

	var req dto.PatientProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.patientUsecase.Save(r.Context(), address, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to save profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile saved successfully", profile)
}
