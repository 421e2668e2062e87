package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tirehaus/arcade/internal/api"
	"github.com/tirehaus/arcade/internal/api/response"
	"github.com/tirehaus/arcade/internal/factory"
	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/services/auth"
	"github.com/tirehaus/arcade/internal/testutil"
)

const testAdminKey = "test-admin-key"

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := testutil.NopLogger()

	hash, err := auth.HashKey(testAdminKey)
	require.NoError(t, err)

	app := factory.NewTestApp(factory.Config{
		Logger:     logger,
		AuthConfig: auth.Config{AdminKeyHash: hash},
	})

	// Seed the directory with a known badge holder
	err = app.Storage.SaveEmployee(context.Background(), &model.Employee{
		ID:   "emp-1",
		Name: "Sam Rivera",
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		EntryController:  app.EntryController,
		DashboardService: app.DashboardService,
		BadgeService:     app.BadgeService,
		ContactService:   app.ContactService,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decodeSession(t *testing.T, rr *httptest.ResponseRecorder) response.SessionResponse {
	t.Helper()
	var session response.SessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	return session
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestListGames(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.GamesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, model.Games, resp.Games)
}

func TestEntryFlowEndToEnd(t *testing.T) {
	ts := newTestServer(t)

	// Start a session
	rr := ts.request(http.MethodPost, "/api/v1/entry/sessions", nil, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	session := decodeSession(t, rr)
	assert.Equal(t, "scan", session.Step)
	base := "/api/v1/entry/sessions/" + session.ID

	// Scan a badge payload
	rr = ts.request(http.MethodPost, base+"/scan", map[string]string{
		"payload": `{"uuid":"emp-1","name":"Somebody"}`,
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	session = decodeSession(t, rr)
	assert.Equal(t, "welcome", session.Step)
	require.NotNil(t, session.Employee)
	assert.Equal(t, "Sam Rivera", session.Employee.Name)

	// Confirm identity
	rr = ts.request(http.MethodPost, base+"/confirm", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "game", decodeSession(t, rr).Step)

	// Select a game
	rr = ts.request(http.MethodPost, base+"/game", map[string]string{"game": model.Games[0]}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "score", decodeSession(t, rr).Step)

	// Submit a score with a photo
	rr = ts.multipartSubmit(t, base+"/submit", "1200", []byte("jpeg-bytes"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", decodeSession(t, rr).Step)

	// The score is on the dashboard
	rr = ts.request(http.MethodGet, "/api/v1/scores", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var scores response.ScoresResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scores))
	require.Equal(t, 1, scores.Total)
	assert.Equal(t, 1200, scores.Scores[0].Score)
	assert.Equal(t, "Sam Rivera", scores.Scores[0].EmployeeName)
}

func (ts *testServer) multipartSubmit(t *testing.T, path, score string, photo []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("score", score))
	if photo != nil {
		fw, err := w.CreateFormFile("photo", "score.jpg")
		require.NoError(t, err)
		_, err = fw.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestScanUnknownEmployee(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/entry/sessions", nil, "")
	session := decodeSession(t, rr)

	rr = ts.request(http.MethodPost, "/api/v1/entry/sessions/"+session.ID+"/scan", map[string]string{
		"payload": `{"uuid":"ghost","name":"Nobody"}`,
	}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "EMPLOYEE_NOT_FOUND")
}

func TestScanMalformedPayload(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/entry/sessions", nil, "")
	session := decodeSession(t, rr)

	rr = ts.request(http.MethodPost, "/api/v1/entry/sessions/"+session.ID+"/scan", map[string]string{
		"payload": "gibberish",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "MALFORMED_PAYLOAD")
}

func TestSubmitWithoutPhoto(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/entry/sessions", nil, "")
	session := decodeSession(t, rr)
	base := "/api/v1/entry/sessions/" + session.ID

	ts.request(http.MethodPost, base+"/scan", map[string]string{
		"payload": `{"uuid":"emp-1","name":"Sam"}`,
	}, "")
	ts.request(http.MethodPost, base+"/confirm", nil, "")
	ts.request(http.MethodPost, base+"/game", map[string]string{"game": model.Games[0]}, "")

	rr = ts.multipartSubmit(t, base+"/submit", "100", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "PHOTO_REQUIRED")
}

func TestSessionNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/entry/sessions/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "SESSION_NOT_FOUND")
}

func TestStepOrderEnforced(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/entry/sessions", nil, "")
	session := decodeSession(t, rr)

	// Selecting a game from the scan step is out of order
	rr = ts.request(http.MethodPost, "/api/v1/entry/sessions/"+session.ID+"/game",
		map[string]string{"game": model.Games[0]}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_STEP")
}

// Badge route auth tests

func TestEndSessionRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/entry/sessions", nil, "")
	session := decodeSession(t, rr)

	rr = ts.request(http.MethodDelete, "/api/v1/entry/sessions/"+session.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/entry/sessions/"+session.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "SESSION_NOT_FOUND")
}

func TestDeleteBatchRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/badges/batches", nil, testAdminKey)
	require.Equal(t, http.StatusCreated, rr.Code)

	var batch response.BatchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &batch))
	base := "/api/v1/badges/batches/" + batch.ID

	rr = ts.request(http.MethodDelete, base, nil, testAdminKey)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, base, nil, testAdminKey)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "BATCH_NOT_FOUND")
}

func TestBadgeRoutesRequireAdminKey(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/badges/batches", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/badges/batches", nil, "wrong-key")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestBadgeBatchLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// Create a batch
	rr := ts.request(http.MethodPost, "/api/v1/badges/batches", nil, testAdminKey)
	require.Equal(t, http.StatusCreated, rr.Code)

	var batch response.BatchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &batch))
	base := "/api/v1/badges/batches/" + batch.ID

	// Stage an employee
	rr = ts.request(http.MethodPost, base+"/employees", map[string]string{"name": "Jane Doe"}, testAdminKey)
	require.Equal(t, http.StatusCreated, rr.Code)

	var employee model.Employee
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &employee))
	assert.NotEmpty(t, employee.ID)

	// The badge renders as a PNG
	rr = ts.request(http.MethodGet, base+"/employees/"+string(employee.ID)+"/badge.png", nil, testAdminKey)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))

	// Staged employees are not in the directory yet
	sessions := ts.request(http.MethodPost, "/api/v1/entry/sessions", nil, "")
	session := decodeSession(t, sessions)
	rr = ts.request(http.MethodPost, "/api/v1/entry/sessions/"+session.ID+"/scan", map[string]string{
		"payload": `{"uuid":"` + string(employee.ID) + `","name":"Jane Doe"}`,
	}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Sync the batch into the directory
	rr = ts.request(http.MethodPost, base+"/sync", nil, testAdminKey)
	require.Equal(t, http.StatusOK, rr.Code)

	var sync response.SyncResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sync))
	assert.Equal(t, 1, sync.Synced)

	// Now the scan resolves
	rr = ts.request(http.MethodPost, "/api/v1/entry/sessions/"+session.ID+"/scan", map[string]string{
		"payload": `{"uuid":"` + string(employee.ID) + `","name":"Jane Doe"}`,
	}, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBadgeCSVImportAndExports(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/badges/batches", nil, testAdminKey)
	require.Equal(t, http.StatusCreated, rr.Code)
	var batch response.BatchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &batch))
	base := "/api/v1/badges/batches/" + batch.ID

	// Import a CSV body
	csvBody := "name,employee_id\nJane Doe,E-1\nAvi Cohen,E-2\n"
	req := httptest.NewRequest(http.MethodPost, base+"/import", strings.NewReader(csvBody))
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("Authorization", "Bearer "+testAdminKey)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var imported response.ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &imported))
	assert.Equal(t, 2, imported.Staged)

	// CSV mapping export
	rr = ts.request(http.MethodGet, base+"/export.csv", nil, testAdminKey)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "Jane Doe")

	// Zip archive export
	rr = ts.request(http.MethodGet, base+"/export.zip", nil, testAdminKey)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/zip", rr.Header().Get("Content-Type"))
}

// Dashboard tests

func TestScoresEmptyState(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/scores?game="+model.GameFilterAll, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var scores response.ScoresResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scores))
	assert.Equal(t, 0, scores.Total)
	assert.Equal(t, "No scores found", scores.Message)
}

// Contact form tests

func TestContactFormAccepted(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/contact", map[string]any{
		"fullName": "Jane Doe",
		"email":    "jane@example.com",
		"phone":    "0501234567",
		"consent":  true,
	}, "")
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestContactFormValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/contact", map[string]any{
		"fullName": "",
		"email":    "not-an-email",
		"phone":    "123",
		"consent":  false,
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, rr.Body.String(), "fullName")
}
