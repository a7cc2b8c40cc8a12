package http

import (
	"net/http"

	"clinic-scheduler/internal/delivery/http/handler"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	appointmentHandler   *handler.AppointmentHandler
	suggestionHandler    *handler.SuggestionHandler
	workplaceHandler     *handler.WorkplaceHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	fileHandler          *handler.FileHandler
	notificationHandler  *handler.NotificationHandler
	userHandler          *handler.UserHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	authorizer           entity.Authorizer
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	suggestionHandler *handler.SuggestionHandler,
	workplaceHandler *handler.WorkplaceHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	fileHandler *handler.FileHandler,
	notificationHandler *handler.NotificationHandler,
	userHandler *handler.UserHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	authorizer entity.Authorizer,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		appointmentHandler:   appointmentHandler,
		suggestionHandler:    suggestionHandler,
		workplaceHandler:     workplaceHandler,
		medicalRecordHandler: medicalRecordHandler,
		fileHandler:          fileHandler,
		notificationHandler:  notificationHandler,
		userHandler:          userHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
		authorizer:           authorizer,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Appointments (any authenticated user)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Update).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	// Suggestions (doctors propose, admins review; role enforced in usecase)
	suggestions := api.PathPrefix("/suggestions").Subrouter()
	suggestions.Use(r.authMiddleware.Authenticate)
	suggestions.Use(middleware.RequireStaff(r.authorizer))
	suggestions.HandleFunc("", r.suggestionHandler.Create).Methods(http.MethodPost)
	suggestions.HandleFunc("", r.suggestionHandler.List).Methods(http.MethodGet)
	suggestions.HandleFunc("/{id}", r.suggestionHandler.Get).Methods(http.MethodGet)
	suggestions.HandleFunc("/{id}/decision", r.suggestionHandler.Decide).Methods(http.MethodPatch)

	// Workplaces (read open to staff, writes admin only)
	workplaces := api.PathPrefix("/workplaces").Subrouter()
	workplaces.Use(r.authMiddleware.Authenticate)
	workplaces.HandleFunc("", r.workplaceHandler.List).Methods(http.MethodGet)
	workplaces.HandleFunc("/{id}", r.workplaceHandler.Get).Methods(http.MethodGet)

	workplacesAdmin := api.PathPrefix("/workplaces").Subrouter()
	workplacesAdmin.Use(r.authMiddleware.Authenticate)
	workplacesAdmin.Use(middleware.RequirePrivileged(r.authorizer))
	workplacesAdmin.HandleFunc("", r.workplaceHandler.Create).Methods(http.MethodPost)
	workplacesAdmin.HandleFunc("/{id}", r.workplaceHandler.Update).Methods(http.MethodPatch)
	workplacesAdmin.HandleFunc("/{id}", r.workplaceHandler.Delete).Methods(http.MethodDelete)
	workplacesAdmin.HandleFunc("/{id}/doctors", r.workplaceHandler.AssignDoctor).Methods(http.MethodPost)
	workplacesAdmin.HandleFunc("/{id}/doctors/{doctorId}", r.workplaceHandler.UnassignDoctor).Methods(http.MethodDelete)

	// Medical records (doctors and admins write, participants read)
	records := api.PathPrefix("/medical-records").Subrouter()
	records.Use(r.authMiddleware.Authenticate)
	records.HandleFunc("", r.medicalRecordHandler.Create).Methods(http.MethodPost)
	records.HandleFunc("/{id}", r.medicalRecordHandler.Get).Methods(http.MethodGet)
	records.HandleFunc("/{id}", r.medicalRecordHandler.Update).Methods(http.MethodPatch)
	records.HandleFunc("/{id}", r.medicalRecordHandler.Delete).Methods(http.MethodDelete)
	records.HandleFunc("/patient/{patientId}", r.medicalRecordHandler.ListByPatient).Methods(http.MethodGet)

	// File attachments
	files := api.PathPrefix("/files").Subrouter()
	files.Use(r.authMiddleware.Authenticate)
	files.HandleFunc("", r.fileHandler.Upload).Methods(http.MethodPost)
	files.HandleFunc("", r.fileHandler.ListMine).Methods(http.MethodGet)
	files.HandleFunc("/medical-record/{recordId}", r.fileHandler.ListByRecord).Methods(http.MethodGet)
	files.HandleFunc("/{id}", r.fileHandler.Get).Methods(http.MethodGet)
	files.HandleFunc("/{id}", r.fileHandler.Delete).Methods(http.MethodDelete)

	// Notifications
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.List).Methods(http.MethodGet)
	notifications.HandleFunc("/unread", r.notificationHandler.ListUnread).Methods(http.MethodGet)
	notifications.HandleFunc("/unread-count", r.notificationHandler.UnreadCount).Methods(http.MethodGet)
	notifications.HandleFunc("/read", r.notificationHandler.MarkRead).Methods(http.MethodPost)
	notifications.HandleFunc("/read-all", r.notificationHandler.MarkAllRead).Methods(http.MethodPost)
	notifications.HandleFunc("/{id}", r.notificationHandler.Delete).Methods(http.MethodDelete)

	// User administration
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequirePrivileged(r.authorizer))
	admin.HandleFunc("/users", r.userHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/role", r.userHandler.ChangeRole).Methods(http.MethodPatch)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	// Profile updates (self-service, ownership enforced in usecase)
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.HandleFunc("/{id}", r.userHandler.Update).Methods(http.MethodPatch)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
