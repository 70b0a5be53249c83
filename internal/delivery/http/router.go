package http

import (
	"net/http"

	"university-clinic-api/internal/delivery/http/handler"
	"university-clinic-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	appointmentHandler   *handler.AppointmentHandler
	triageHandler        *handler.TriageHandler
	doctorHandler        *handler.DoctorAppointmentHandler
	availabilityHandler  *handler.AvailabilityHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	prescriptionHandler  *handler.PrescriptionHandler
	holidayHandler       *handler.HolidayHandler
	scheduleHandler      *handler.StaffScheduleHandler
	auditLogHandler      *handler.AuditLogHandler
	userHandler          *handler.UserHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	triageHandler *handler.TriageHandler,
	doctorHandler *handler.DoctorAppointmentHandler,
	availabilityHandler *handler.AvailabilityHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	holidayHandler *handler.HolidayHandler,
	scheduleHandler *handler.StaffScheduleHandler,
	auditLogHandler *handler.AuditLogHandler,
	userHandler *handler.UserHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		appointmentHandler:   appointmentHandler,
		triageHandler:        triageHandler,
		doctorHandler:        doctorHandler,
		availabilityHandler:  availabilityHandler,
		medicalRecordHandler: medicalRecordHandler,
		prescriptionHandler:  prescriptionHandler,
		holidayHandler:       holidayHandler,
		scheduleHandler:      scheduleHandler,
		auditLogHandler:      auditLogHandler,
		userHandler:          userHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Shared authenticated routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPut)
	protected.HandleFunc("/doctors/available-slots", r.availabilityHandler.GetAvailableSlots).Methods(http.MethodGet)
	protected.HandleFunc("/doctors", r.userHandler.ListDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/medical-records", r.medicalRecordHandler.ListByPatient).Methods(http.MethodGet)
	protected.HandleFunc("/prescriptions", r.prescriptionHandler.ListMine).Methods(http.MethodGet)
	protected.HandleFunc("/prescriptions/{id}", r.prescriptionHandler.Get).Methods(http.MethodGet)

	// Patient routes (students and academic staff)
	patient := api.PathPrefix("").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)

	// Clinical staff routes (triage and walk-ins)
	staff := api.PathPrefix("").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireClinicalStaff)
	staff.HandleFunc("/appointments/walk-in", r.appointmentHandler.CreateWalkIn).Methods(http.MethodPost)
	staff.HandleFunc("/appointments/{id}/review", r.triageHandler.Review).Methods(http.MethodPut)
	staff.HandleFunc("/appointments/{id}/assign", r.triageHandler.Assign).Methods(http.MethodPut)
	staff.HandleFunc("/appointments/{id}/approve", r.triageHandler.Approve).Methods(http.MethodPut)
	staff.HandleFunc("/appointments/{id}/reject", r.triageHandler.Reject).Methods(http.MethodPut)
	staff.HandleFunc("/appointments/{id}/confirm-walk-in", r.triageHandler.ConfirmWalkIn).Methods(http.MethodPut)

	// Doctor routes
	doctor := api.PathPrefix("").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/appointments/{id}/confirm", r.doctorHandler.Confirm).Methods(http.MethodPut)
	doctor.HandleFunc("/appointments/{id}/status", r.doctorHandler.UpdateStatus).Methods(http.MethodPut)
	doctor.HandleFunc("/prescriptions/{id}/status", r.prescriptionHandler.UpdateStatus).Methods(http.MethodPut)

	// Medical staff routes (doctors, clinical staff, admin)
	medical := api.PathPrefix("").Subrouter()
	medical.Use(r.authMiddleware.Authenticate)
	medical.Use(middleware.RequireMedicalStaff)
	medical.HandleFunc("/medical-records", r.medicalRecordHandler.Create).Methods(http.MethodPost)
	medical.HandleFunc("/prescriptions", r.prescriptionHandler.Create).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/register/staff", r.authHandler.RegisterStaff).Methods(http.MethodPost)
	admin.HandleFunc("/users", r.userHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/active", r.userHandler.SetActive).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/holidays", r.holidayHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/holidays", r.holidayHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/holidays/{id}", r.holidayHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/holidays/{id}", r.holidayHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/schedules", r.scheduleHandler.Upsert).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}/schedules", r.scheduleHandler.ListByDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/schedules/{id}", r.scheduleHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
