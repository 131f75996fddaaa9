package http

import (
	"net/http"

	"medfi-backend/internal/delivery/http/handler"
	"medfi-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	onboardingHandler *handler.OnboardingHandler
	reviewHandler     *handler.ReviewHandler
	directoryHandler  *handler.DirectoryHandler
	patientHandler    *handler.PatientHandler
	authMiddleware    *middleware.AuthMiddleware
	walletMiddleware  *middleware.WalletMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	onboardingHandler *handler.OnboardingHandler,
	reviewHandler *handler.ReviewHandler,
	directoryHandler *handler.DirectoryHandler,
	patientHandler *handler.PatientHandler,
	authMiddleware *middleware.AuthMiddleware,
	walletMiddleware *middleware.WalletMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		onboardingHandler: onboardingHandler,
		reviewHandler:     reviewHandler,
		directoryHandler:  directoryHandler,
		patientHandler:    patientHandler,
		authMiddleware:    authMiddleware,
		walletMiddleware:  walletMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Public directory routes
	api.HandleFunc("/doctors", r.directoryHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{address}", r.directoryHandler.Detail).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{address}/booking/slots", r.directoryHandler.BookingSlots).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{address}/booking/prefill", r.directoryHandler.BookingPrefill).Methods(http.MethodGet)
	api.HandleFunc("/meta/options", r.directoryHandler.FormOptions).Methods(http.MethodGet)

	// Onboarding routes (wallet holder)
	onboarding := api.PathPrefix("/onboarding").Subrouter()
	onboarding.Use(r.walletMiddleware.RequireWallet)
	onboarding.HandleFunc("/application", r.onboardingHandler.GetApplication).Methods(http.MethodGet)
	onboarding.HandleFunc("/application/personal", r.onboardingHandler.SavePersonal).Methods(http.MethodPut)
	onboarding.HandleFunc("/application/professional", r.onboardingHandler.SaveProfessional).Methods(http.MethodPut)
	onboarding.HandleFunc("/application/verification", r.onboardingHandler.SaveVerification).Methods(http.MethodPut)
	onboarding.HandleFunc("/application/uploads/{field}", r.onboardingHandler.Upload).Methods(http.MethodPost)
	onboarding.HandleFunc("/application/selfie", r.onboardingHandler.Selfie).Methods(http.MethodPost)
	onboarding.HandleFunc("/application/submit", r.onboardingHandler.Submit).Methods(http.MethodPost)

	// Patient routes (wallet holder)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.walletMiddleware.RequireWallet)
	patients.HandleFunc("/me", r.patientHandler.Get).Methods(http.MethodGet)
	patients.HandleFunc("/me", r.patientHandler.Save).Methods(http.MethodPut)

	// Review console routes (admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.HandleFunc("/applications", r.reviewHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/applications/stats", r.reviewHandler.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/applications/watch", r.reviewHandler.Watch).Methods(http.MethodGet)
	admin.HandleFunc("/applications/{address}", r.reviewHandler.Detail).Methods(http.MethodGet)
	admin.HandleFunc("/applications/{address}/history", r.reviewHandler.History).Methods(http.MethodGet)
	admin.HandleFunc("/applications/{address}/decision", r.reviewHandler.Decide).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
