package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"medfi-backend/internal/delivery/dto"
	"medfi-backend/internal/delivery/http/middleware"
	"medfi-backend/internal/usecase"
	"medfi-backend/pkg/response"
	"medfi-backend/pkg/validator"

	"github.com/gorilla/mux"
)

// maxUploadBytes caps document and selfie uploads.
const maxUploadBytes = 10 << 20

type OnboardingHandler struct {
	onboardingUsecase usecase.OnboardingUsecase
	validator         *validator.CustomValidator
}

func NewOnboardingHandler(onboardingUsecase usecase.OnboardingUsecase, validator *validator.CustomValidator) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingUsecase: onboardingUsecase,
		validator:         validator,
	}
}

func (h *OnboardingHandler) wallet(w http.ResponseWriter, r *http.Request) (string, bool) {
	address, ok := middleware.GetWalletFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Wallet address is required")
		return "", false
	}
	return address, true
}

// GetApplication returns the caller's application and step progress
// @Summary Get verification application
// @Tags Onboarding
// @Produce json
// @Param X-Wallet-Address header string true "Wallet address"
// @Success 200 {object} response.Response
// @Router /onboarding/application [get]
func (h *OnboardingHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	address, ok := h.wallet(w, r)
	if !ok {
		return
	}

	app, err := h.onboardingUsecase.GetApplication(r.Context(), address)
	if err != nil {
		response.InternalServerError(w, "Failed to get application")
		return
	}

	response.Success(w, http.StatusOK, "Application retrieved successfully", app)
}

// SavePersonal saves wizard step 1
// @Summary Save personal information
// @Tags Onboarding
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Wallet address"
// @Param request body dto.PersonalStepRequest true "Personal Step"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /onboarding/application/personal [put]
func (h *OnboardingHandler) SavePersonal(w http.ResponseWriter, r *http.Request) {
	address, ok := h.wallet(w, r)
	if !ok {
		return
	}

	var req dto.PersonalStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	app, err := h.onboardingUsecase.SavePersonal(r.Context(), address, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to save personal information")
		return
	}

	response.Success(w, http.StatusOK, "Personal information saved", app)
}

// SaveProfessional saves wizard step 2
// @Summary Save professional information
// @Tags Onboarding
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Wallet address"
// @Param request body dto.ProfessionalStepRequest true "Professional Step"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /onboarding/application/professional [put]
func (h *OnboardingHandler) SaveProfessional(w http.ResponseWriter, r *http.Request) {
	address, ok := h.wallet(w, r)
	if !ok {
		return
	}

	var req dto.ProfessionalStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	app, err := h.onboardingUsecase.SaveProfessional(r.Context(), address, &req)
	if err != nil {
		switch err {
		case usecase.ErrUnknownSpecialty:
			response.Error(w, http.StatusBadRequest, "Unknown specialty", nil)
		case usecase.ErrUnknownExperienceRange:
			response.Error(w, http.StatusBadRequest, "Unknown years of experience range", nil)
		default:
			response.InternalServerError(w, "Failed to save professional information")
		}
		return
	}

	response.Success(w, http.StatusOK, "Professional information saved", app)
}

// SaveVerification saves wizard step 3
// @Summary Save verification documents
// @Tags Onboarding
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Wallet address"
// @Param request body dto.VerificationStepRequest true "Verification Step"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /onboarding/application/verification [put]
func (h *OnboardingHandler) SaveVerification(w http.ResponseWriter, r *http.Request) {
	address, ok := h.wallet(w, r)
	if !ok {
		return
	}

	var req dto.VerificationStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	app, err := h.onboardingUsecase.SaveVerification(r.Context(), address, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to save verification documents")
		return
	}

	response.Success(w, http.StatusOK, "Verification documents saved", app)
}

// Upload stores a wizard file and writes its URL to the named field
// @Summary Upload an application file
// @Tags Onboarding
// @Accept multipart/form-data
// @Produce json
// @Param X-Wallet-Address header string true "Wallet address"
// @Param field path string true "Target field" Enums(profile_image, id_document, selfie_image)
// @Param file formData file true "File to upload"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /onboarding/application/uploads/{field} [post]
func (h *OnboardingHandler) Upload(w http.ResponseWriter, r *http.Request) {
	address, ok := h.wallet(w, r)
	if !ok {
		return
	}

	field := mux.Vars(r)["field"]

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "File is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to read file", nil)
		return
	}

	result, err := h.onboardingUsecase.AttachUpload(r.Context(), address, field, header.Filename, data)
	if err != nil {
		switch err {
		case usecase.ErrUnknownUploadField:
			response.Error(w, http.StatusBadRequest, "Unknown upload field", nil)
		default:
			response.Error(w, http.StatusBadGateway, "Upload failed", nil)
		}
		return
	}

	response.Success(w, http.StatusOK, "File uploaded successfully", result)
}

// Selfie stores a captured camera frame for the verification step
// @Summary Upload a selfie capture
// @Tags Onboarding
// @Accept multipart/form-data
// @Produce json
// @Param X-Wallet-Address header string true "Wallet address"
// @Param file formData file true "Captured frame"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /onboarding/application/selfie [post]
func (h *OnboardingHandler) Selfie(w http.ResponseWriter, r *http.Request) {
	address, ok := h.wallet(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "File is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to read file", nil)
		return
	}

	result, err := h.onboardingUsecase.CaptureSelfie(r.Context(), address, data, header.Header.Get("Content-Type"))
	if err != nil {
		response.InternalServerError(w, "Failed to store selfie")
		return
	}

	response.Success(w, http.StatusOK, "Selfie stored successfully", result)
}

// Submit moves the application into review
// @Summary Submit application for review
// @Tags Onboarding
// @Produce json
// @Param X-Wallet-Address header string true "Wallet address"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /onboarding/application/submit [post]
func (h *OnboardingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	address, ok := h.wallet(w, r)
	if !ok {
		return
	}

	doctor, err := h.onboardingUsecase.Submit(r.Context(), address)
	if err != nil {
		switch err {
		case usecase.ErrApplicationIncomplete:
			response.Error(w, http.StatusUnprocessableEntity, "Application is incomplete", nil)
		case usecase.ErrAlreadyUnderReview:
			response.Error(w, http.StatusConflict, "Application is already under review", nil)
		case usecase.ErrAlreadyApproved:
			response.Error(w, http.StatusConflict, "Application is already approved", nil)
		case usecase.ErrStatusChanged:
			response.Error(w, http.StatusConflict, "Application status changed, reload and retry", nil)
		default:
			response.InternalServerError(w, "Failed to submit application")
		}
		return
	}

	response.Success(w, http.StatusOK, "Application submitted for review", doctor)
}
