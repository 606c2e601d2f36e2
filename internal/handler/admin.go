package handler

import (
	"log/slog"
	"net/http"

	"github.com/prbeegala/pbconferenceapp/internal/model"
	"github.com/prbeegala/pbconferenceapp/internal/service"
)

// AdminHandler handles the admin dashboard and development seeding
type AdminHandler struct {
	adminService  *service.AdminService
	seederService *service.SeederService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService, seederService *service.SeederService) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		seederService: seederService,
	}
}

// Dashboard handles GET /v1/admin/dashboard - conference-wide counts
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Dashboard(r.Context())
	if err != nil {
		slog.Error("failed to build dashboard", "error", err)
		WriteError(w, model.NewInternalError("failed to build dashboard"))
		return
	}

	WriteData(w, http.StatusOK, stats, map[string]string{
		"submissions": "/v1/admin/submissions",
		"sessions":    "/v1/sessions",
	})
}

// Seed handles POST /v1/admin/seed - populate demo data (idempotent)
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if h.seederService == nil {
		WriteError(w, model.NewServiceUnavailableError("seeding is disabled"))
		return
	}

	result, err := h.seederService.Seed(r.Context())
	if err != nil {
		slog.Error("seeding failed", "error", err)
		WriteError(w, model.NewInternalError("seeding failed"))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}
