package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fundscope/fundscope-backend/internal/api/request"
	"github.com/fundscope/fundscope-backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	response := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	respondJSON(w, http.StatusOK, response)
}

// VersionInfoResponse represents the version check response containing
// application and database version information and feature availability.
type VersionInfoResponse struct {
	AppVersion string          `json:"app_version"`
	DbVersion  string          `json:"db_version"`
	Features   map[string]bool `json:"features"`
}

// Version handles GET requests to retrieve version information and feature availability.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfoResponse
// Error: 500 Internal Server Error if version check fails
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	version, err := h.systemService.GetVersionInfo()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get version information", err)
		return
	}

	response := VersionInfoResponse{
		AppVersion: version.AppVersion,
		DbVersion:  version.DbVersion,
		Features:   version.Features,
	}

	respondJSON(w, http.StatusOK, response)
}

// SetCredential handles PUT requests to store an encrypted provider API token.
//
// Endpoint: PUT /api/system/credential
// Response: 204 No Content on success
func (h *SystemHandler) SetCredential(w http.ResponseWriter, r *http.Request) {
	var req request.SetCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Provider == "" || req.Token == "" {
		respondError(w, http.StatusBadRequest, "provider and token are required", nil)
		return
	}

	if err := h.systemService.SetProviderCredential(req.Provider, req.Token); err != nil {
		respondServiceError(w, "failed to store credential", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
