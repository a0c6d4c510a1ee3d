package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tracker-service/internal/api/http"
	"github.com/spec-kit/tracker-service/internal/api/http/handlers"
	"github.com/spec-kit/tracker-service/internal/config"
	"github.com/spec-kit/tracker-service/internal/observability"
	"github.com/spec-kit/tracker-service/internal/persistence"
	"github.com/spec-kit/tracker-service/internal/repository/memory"
	"github.com/spec-kit/tracker-service/internal/service"
	"github.com/spec-kit/tracker-service/internal/storage"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	tickets := memory.NewTicketStore()
	comments := memory.NewCommentStore()
	users := memory.NewUserStore()
	memory.Seed(tickets, comments, users)

	ticketSvc := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   tickets,
		ActivityRepo: memory.NewActivityStore(),
		UserRepo:     users,
	})
	commentSvc := service.NewCommentService(service.CommentDependencies{
		TicketRepo:  tickets,
		CommentRepo: comments,
		UserRepo:    users,
		Locks:       ticketSvc.Locks(),
	})
	preferenceSvc := service.NewPreferenceService(memory.NewPreferenceStore(), users)

	uploadCfg := config.UploadConfig{Dir: t.TempDir(), BaseURL: "/uploads", MaxSizeMB: 1}
	fileStore, err := storage.NewLocalFileStore(uploadCfg)
	require.NoError(t, err)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), metrics, 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler("tracker-service", "test", &persistence.Postgres{}, &persistence.Redis{}, metrics),
		Tickets:  handlers.NewTicketsHandler(ticketSvc),
		Comments: handlers.NewCommentsHandler(commentSvc),
		Users:    handlers.NewUsersHandler(users, preferenceSvc, nil),
		Chat:     handlers.NewChatHandler(service.NewChatService(nil, nil)),
		Uploads:  handlers.NewUploadHandler(fileStore, uploadCfg),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestListTicketsEnvelope(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/tickets", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	meta := body["meta"].(map[string]any)
	require.EqualValues(t, 5, meta["total"])
	require.EqualValues(t, 20, meta["page_size"])
	require.Len(t, body["data"].([]any), 5)
}

func TestGetTicketNotFound(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/tickets/999", nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	require.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestPatchTicketRecordsActivity(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPatch, "/api/tickets/1",
		map[string]any{"status": "resolved"},
		map[string]string{"X-User-ID": "2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	require.Equal(t, "resolved", data["status"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/tickets/1/activities", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := body["data"].([]any)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	require.Equal(t, "status_changed", entry["action"])
	require.Equal(t, "in-progress", entry["oldValue"])
	require.Equal(t, "resolved", entry["newValue"])
	require.Equal(t, "2", entry["userId"])
}

func TestPatchTicketRequiresIdentity(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPatch, "/api/tickets/1",
		map[string]any{"status": "resolved"}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	require.Equal(t, "UNAUTHORIZED", errObj["code"])
}

func TestCreateComment(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/tickets/3/comments",
		map[string]any{"content": "hello", "authorId": "2"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	require.Equal(t, "hello", data["content"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/tickets/3/comments",
		map[string]any{"content": "", "authorId": "2"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]any)["code"])
}

func TestPreferencesRoundTrip(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/1/preferences", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "light", body["data"].(map[string]any)["theme"])

	resp, _ = doJSON(t, app, http.MethodPut, "/api/users/1/preferences",
		map[string]any{"theme": "dark", "defaultPage": "chat", "pageSize": 50}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = doJSON(t, app, http.MethodGet, "/api/users/1/preferences", nil, nil)
	require.Equal(t, "dark", body["data"].(map[string]any)["theme"])
	require.EqualValues(t, 50, body["data"].(map[string]any)["pageSize"])
}

func TestChatRequiresIdentity(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/chat/rooms", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "UNAUTHORIZED", body["error"].(map[string]any)["code"])
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/health/live", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "alive", body["status"])
}

func TestMetricsCountRequests(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/tickets", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/health/metrics", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	requests := body["requests"].(map[string]any)
	require.EqualValues(t, 1, requests["/api/tickets|GET|200"])
}
