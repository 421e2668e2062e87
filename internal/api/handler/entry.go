package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tirehaus/arcade/internal/api/apierr"
	"github.com/tirehaus/arcade/internal/api/request"
	"github.com/tirehaus/arcade/internal/api/response"
	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/qr"
	"github.com/tirehaus/arcade/internal/services/entry"
)

// maxUploadBytes bounds score photo and badge image uploads
const maxUploadBytes = 10 << 20

// EntryHandler handles entry-flow endpoints
type EntryHandler struct {
	controller *entry.Controller
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(controller *entry.Controller) *EntryHandler {
	return &EntryHandler{controller: controller}
}

// Create handles POST /api/v1/entry/sessions
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := h.controller.StartSession(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session, h.controller.IsClosed()))
}

// Get handles GET /api/v1/entry/sessions/{id}
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.controller.GetSession(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session, h.controller.IsClosed()))
}

// Scan handles POST /api/v1/entry/sessions/{id}/scan. The body is
// either JSON with the decoded payload text, or multipart form data
// with an "image" file that the server decodes itself.
func (h *EntryHandler) Scan(w http.ResponseWriter, r *http.Request) {
	payload, err := h.scanPayload(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.controller.Scan(r.Context(), sessionID(r), payload)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session, h.controller.IsClosed()))
}

// Confirm handles POST /api/v1/entry/sessions/{id}/confirm
func (h *EntryHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	session, err := h.controller.Confirm(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session, h.controller.IsClosed()))
}

// SelectGame handles POST /api/v1/entry/sessions/{id}/game
func (h *EntryHandler) SelectGame(w http.ResponseWriter, r *http.Request) {
	var req request.SelectGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.controller.SelectGame(r.Context(), sessionID(r), req.Game)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session, h.controller.IsClosed()))
}

// Back handles POST /api/v1/entry/sessions/{id}/back
func (h *EntryHandler) Back(w http.ResponseWriter, r *http.Request) {
	session, err := h.controller.Back(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session, h.controller.IsClosed()))
}

// Submit handles POST /api/v1/entry/sessions/{id}/submit as
// multipart form data: a "score" field and a "photo" file. The form
// layer requires the photo before this endpoint is ever invoked, so
// a missing file here is rejected outright.
func (h *EntryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("expected multipart form data"))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		WriteError(w, model.ErrPhotoRequired)
		return
	}
	defer func() { _ = file.Close() }()

	photo, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		WriteError(w, apierr.NewInvalidRequestError("could not read photo"))
		return
	}

	session, err := h.controller.Submit(r.Context(), sessionID(r), r.FormValue("score"), photo, header.Filename)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session, h.controller.IsClosed()))
}

// Reset handles POST /api/v1/entry/sessions/{id}/reset
func (h *EntryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := h.controller.ResetSession(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session, h.controller.IsClosed()))
}

// End handles DELETE /api/v1/entry/sessions/{id}
func (h *EntryHandler) End(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.EndSession(r.Context(), sessionID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// scanPayload extracts the payload text from a scan request body
func (h *EntryHandler) scanPayload(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return "", apierr.NewInvalidRequestError("expected multipart form data")
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			return "", apierr.NewInvalidRequestError("missing image file")
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return "", apierr.NewInvalidRequestError("could not read image")
		}
		return qr.DecodeImage(data)
	}

	var req request.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", apierr.NewInvalidRequestError("invalid request body")
	}
	return req.Payload, nil
}

func sessionID(r *http.Request) model.SessionID {
	return model.SessionID(mux.Vars(r)["id"])
}
