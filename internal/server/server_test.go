package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"farmapi/internal/config"
	"farmapi/internal/storage"
)

type testServer struct {
	app       *fiber.App
	uploadDir string
	logs      *observer.ObservedLogs
}

func newTestServer(t *testing.T, mutate ...func(*config.AppConfig)) *testServer {
	t.Helper()
	publicDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "index.html"), []byte("<h1>farm</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "app.js"), []byte("console.log(1)"), 0o644))

	cfg := &config.AppConfig{
		Port:           "0",
		PublicDir:      publicDir,
		UploadDir:      filepath.Join(t.TempDir(), "uploads"),
		BodyLimit:      1024 * 1024,
		StorageBackend: config.BackendDisk,
		MetricsEnabled: true,
	}
	for _, m := range mutate {
		m(cfg)
	}
	require.NoError(t, cfg.Validate())

	store, err := storage.NewDisk(cfg.UploadDir)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	app, err := New(cfg, Deps{Logger: zap.New(core), Registry: prometheus.NewRegistry(), Store: store})
	require.NoError(t, err)

	return &testServer{app: app, uploadDir: cfg.UploadDir, logs: logs}
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func (s *testServer) upload(t *testing.T, filename string, content []byte) (int, map[string]string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	part.Write(content)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-image", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Host = "localhost:5000"

	status, b := s.do(t, req)
	var out map[string]string
	require.NoError(t, json.Unmarshal(b, &out))
	return status, out
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(&config.AppConfig{BodyLimit: 1}, Deps{})
	assert.EqualError(t, err, "storage is required")

	_, err = New(nil, Deps{})
	assert.Error(t, err)
}

func TestQueryEndpoint(t *testing.T) {
	s := newTestServer(t)

	status, b := s.do(t, postJSON("/api/query", `{"query":"Is it going to rain?"}`))
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"answer":"🤖 You asked: \"Is it going to rain?\". This is the AI response."}`, string(b))

	for _, body := range []string{`{}`, `{"query":""}`, ``} {
		status, b = s.do(t, postJSON("/api/query", body))
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.JSONEq(t, `{"error":"Query is required."}`, string(b), body)
	}
}

func TestWeatherEndpoint(t *testing.T) {
	s := newTestServer(t)

	for _, loc := range []string{"Eldoret", "Lagos, NG", "田んぼ"} {
		status, b := s.do(t, httptest.NewRequest(http.MethodGet, "/api/weather?location="+url.QueryEscape(loc), nil))
		assert.Equal(t, http.StatusOK, status)

		var got map[string]any
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, map[string]any{
			"location":    loc,
			"temperature": float64(28),
			"humidity":    float64(65),
			"conditions":  "Partly Cloudy",
			"advisory":    "Good time for irrigation 🌾",
		}, got)
	}

	status, b := s.do(t, httptest.NewRequest(http.MethodGet, "/api/weather", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Location is required."}`, string(b))
}

func TestContactEndpoint(t *testing.T) {
	s := newTestServer(t)

	status, b := s.do(t, postJSON("/api/contact", `{"name":"Wanjiru","email":"w@farm.ke","message":"Need seeds"}`))
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"success":true,"message":"✅ Your message has been received!"}`, string(b))

	entries := s.logs.FilterMessage("contact_message_received").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Need seeds", entries[0].ContextMap()["message"])

	for _, body := range []string{
		`{"email":"w@farm.ke","message":"m"}`,
		`{"name":"W","message":"m"}`,
		`{"name":"W","email":"w@farm.ke","message":""}`,
	} {
		status, b = s.do(t, postJSON("/api/contact", body))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, `{"error":"All fields are required."}`, string(b))
	}
	assert.Len(t, s.logs.FilterMessage("contact_message_received").All(), 1)
}

func TestAnalyzeImage_EndToEnd(t *testing.T) {
	s := newTestServer(t)
	content := []byte{0xff, 0xd8, 0xff, 0xe0, 'l', 'e', 'a', 'f'}

	status, body := s.upload(t, "leaf.jpg", content)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "🌱 Image analysis result: Healthy crop detected.", body["result"])
	assert.Equal(t, "http://localhost:5000/uploads/leaf.jpg", body["imageUrl"])
	assert.True(t, strings.HasSuffix(body["imageUrl"], "/uploads/leaf.jpg"))

	u, err := url.Parse(body["imageUrl"])
	require.NoError(t, err)
	status, got := s.do(t, httptest.NewRequest(http.MethodGet, u.Path, nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, content, got)

	onDisk, err := os.ReadFile(filepath.Join(s.uploadDir, "leaf.jpg"))
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)
}

func TestAnalyzeImage_SameNameOverwrites(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.upload(t, "crop.png", []byte("first version of the file"))
	require.Equal(t, http.StatusOK, status)
	status, _ = s.upload(t, "crop.png", []byte("second"))
	require.Equal(t, http.StatusOK, status)

	status, got := s.do(t, httptest.NewRequest(http.MethodGet, "/uploads/crop.png", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(s.uploadDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAnalyzeImage_MissingFile(t *testing.T) {
	s := newTestServer(t)

	status, b := s.do(t, httptest.NewRequest(http.MethodPost, "/api/analyze-image", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Image file is required."}`, string(b))
}

func TestAnalyzeImage_BodyLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.AppConfig) { c.BodyLimit = 1024 })

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, _ := w.CreateFormFile("image", "big.jpg")
	part.Write(bytes.Repeat([]byte("x"), 4096))
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-image", body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	status, _ := s.do(t, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	_, err := os.Stat(filepath.Join(s.uploadDir, "big.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestStaticAndUploads(t *testing.T) {
	s := newTestServer(t)

	status, b := s.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "<h1>farm</h1>", string(b))

	status, b = s.do(t, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "console.log(1)", string(b))

	status, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/uploads/never-uploaded.jpg", nil))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestIndependentInstances(t *testing.T) {
	a := newTestServer(t)
	b := newTestServer(t)

	status, _ := a.upload(t, "only-a.jpg", []byte("a"))
	require.Equal(t, http.StatusOK, status)

	status, _ = a.do(t, httptest.NewRequest(http.MethodGet, "/uploads/only-a.jpg", nil))
	assert.Equal(t, http.StatusOK, status)
	status, _ = b.do(t, httptest.NewRequest(http.MethodGet, "/uploads/only-a.jpg", nil))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, status)

	status, b := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"healthy"}`, string(b))

	s.do(t, httptest.NewRequest(http.MethodGet, "/api/weather?location=x", nil))
	status, b = s.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(b), `http_requests_total{method="GET",path="/api/weather",status="200"} 1`)

	req := httptest.NewRequest(http.MethodGet, "/api/weather?location=x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/weather?location=x", nil)
	req.Header.Set("Origin", "http://frontend.local")
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.AppConfig) {
		c.RateLimit = config.RateLimitConfig{RequestsPerSecond: 1.0 / 3600, Burst: 1}
	})

	status, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/api/weather?location=x", nil))
	assert.Equal(t, http.StatusOK, status)
	status, b := s.do(t, httptest.NewRequest(http.MethodGet, "/api/weather?location=x", nil))
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.JSONEq(t, `{"error":"too many requests"}`, string(b))

	// Static and health routes are outside the limited group.
	status, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, status)
}
