package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castproof/cast-attestation-webhook/api"
	"github.com/castproof/cast-attestation-webhook/metrics"
)

type stubHandler struct{}

func (stubHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/mint", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("minted"))
	})
}

func newTestServer(t *testing.T, pprof bool) *Server {
	cfg := &api.HTTPServerConfig{
		ListenAddr:               "127.0.0.1:0",
		Log:                      slog.New(slog.NewTextHandler(io.Discard, nil)),
		EnablePprof:              pprof,
		GracefulShutdownDuration: time.Second,
	}
	srv, err := New(cfg, stubHandler{}, nil)
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, srv *Server, method, path string) (int, string) {
	w := httptest.NewRecorder()
	srv.srv.Handler.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return w.Code, string(body)
}

func TestServer_HealthEndpoints(t *testing.T) {
	srv := newTestServer(t, false)

	code, body := get(t, srv, http.MethodGet, "/livez")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"alive"}`, body)

	code, body = get(t, srv, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ready"}`, body)
}

func TestServer_DrainUndrain(t *testing.T) {
	srv := newTestServer(t, false)

	_, body := get(t, srv, http.MethodGet, "/drain")
	assert.JSONEq(t, `{"status":"draining"}`, body)

	code, _ := get(t, srv, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	_, body = get(t, srv, http.MethodGet, "/drain")
	assert.JSONEq(t, `{"status":"already draining"}`, body)

	_, body = get(t, srv, http.MethodGet, "/undrain")
	assert.JSONEq(t, `{"status":"ready"}`, body)

	code, _ = get(t, srv, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, code)

	_, body = get(t, srv, http.MethodGet, "/undrain")
	assert.JSONEq(t, `{"status":"already ready"}`, body)
}

func TestServer_MountsHandlerRoutes(t *testing.T) {
	srv := newTestServer(t, false)

	code, body := get(t, srv, http.MethodPost, "/api/mint")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "minted", body)

	code, _ = get(t, srv, http.MethodGet, "/debug/pprof/")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServer_Pprof(t *testing.T) {
	srv := newTestServer(t, true)

	code, _ := get(t, srv, http.MethodGet, "/debug/pprof/")
	assert.Equal(t, http.StatusOK, code)
}

func TestNew_MetricsAddrRequiresServer(t *testing.T) {
	cfg := &api.HTTPServerConfig{
		MetricsAddr: "127.0.0.1:0",
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	_, err := New(cfg, stubHandler{}, nil)
	assert.Error(t, err)

	metricsSrv, err := metrics.New("test", cfg.MetricsAddr)
	require.NoError(t, err)
	_, err = New(cfg, stubHandler{}, metricsSrv)
	assert.NoError(t, err)
}

func TestServer_RunAndShutdown(t *testing.T) {
	srv := newTestServer(t, false)
	srv.RunInBackground()
	srv.Shutdown()

	code, _ := get(t, srv, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}
