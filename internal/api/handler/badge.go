package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tirehaus/arcade/internal/api/apierr"
	"github.com/tirehaus/arcade/internal/api/request"
	"github.com/tirehaus/arcade/internal/api/response"
	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/services/badge"
)

// BadgeHandler handles badge batch endpoints (operator-only)
type BadgeHandler struct {
	badges *badge.Service
}

// NewBadgeHandler creates a new badge handler
func NewBadgeHandler(badges *badge.Service) *BadgeHandler {
	return &BadgeHandler{badges: badges}
}

// CreateBatch handles POST /api/v1/badges/batches
func (h *BadgeHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.badges.CreateBatch(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.BatchFromModel(batch))
}

// GetBatch handles GET /api/v1/badges/batches/{id}
func (h *BadgeHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.badges.GetBatch(r.Context(), batchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BatchFromModel(batch))
}

// DeleteBatch handles DELETE /api/v1/badges/batches/{id}
func (h *BadgeHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	if err := h.badges.DeleteBatch(r.Context(), batchID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AddEmployee handles POST /api/v1/badges/batches/{id}/employees
func (h *BadgeHandler) AddEmployee(w http.ResponseWriter, r *http.Request) {
	var req request.AddEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	employee, err := h.badges.AddEmployee(r.Context(), batchID(r), req.Name, req.EmployeeCode, req.Phone)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, employee)
}

// RemoveEmployee handles DELETE /api/v1/badges/batches/{id}/employees/{employee_id}
func (h *BadgeHandler) RemoveEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := model.EmployeeID(mux.Vars(r)["employee_id"])

	if err := h.badges.RemoveEmployee(r.Context(), batchID(r), employeeID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ImportCSV handles POST /api/v1/badges/batches/{id}/import with a
// text/csv body
func (h *BadgeHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	staged, err := h.badges.ImportCSV(r.Context(), batchID(r), r.Body)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ImportResponse{Staged: staged})
}

// Badge handles GET /api/v1/badges/batches/{id}/employees/{employee_id}/badge.png
func (h *BadgeHandler) Badge(w http.ResponseWriter, r *http.Request) {
	employeeID := model.EmployeeID(mux.Vars(r)["employee_id"])

	png, err := h.badges.RenderBadge(r.Context(), batchID(r), employeeID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Binary(w, http.StatusOK, "image/png", png)
}

// ExportMapping handles GET /api/v1/badges/batches/{id}/export.csv
func (h *BadgeHandler) ExportMapping(w http.ResponseWriter, r *http.Request) {
	data, err := h.badges.ExportMapping(r.Context(), batchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="badge_mapping.csv"`)
	response.Binary(w, http.StatusOK, "text/csv", data)
}

// ExportArchive handles GET /api/v1/badges/batches/{id}/export.zip
func (h *BadgeHandler) ExportArchive(w http.ResponseWriter, r *http.Request) {
	data, err := h.badges.ExportArchive(r.Context(), batchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="badges.zip"`)
	response.Binary(w, http.StatusOK, "application/zip", data)
}

// Sync handles POST /api/v1/badges/batches/{id}/sync
func (h *BadgeHandler) Sync(w http.ResponseWriter, r *http.Request) {
	synced, err := h.badges.Sync(r.Context(), batchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SyncResponse{Synced: synced})
}

func batchID(r *http.Request) model.BatchID {
	return model.BatchID(mux.Vars(r)["id"])
}
