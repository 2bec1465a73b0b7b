package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukex/nfgrapher/pkg/codec"
	"github.com/dukex/nfgrapher/pkg/otelhelper"
	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestApp() *fiber.App {
	logger := newTestLogger()

	return NewAPI(logger, newRegistry(logger), otelhelper.NoopTracer()).App()
}

func request(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(data)
}

func TestAPI_RootEndpoint(t *testing.T) {
	status, body := request(t, setupTestApp(), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "nfgrapher API", body)
}

func TestAPI_HealthCheck(t *testing.T) {
	app := setupTestApp()

	for _, path := range []string{"/livez", "/readyz"} {
		status, body := request(t, app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "OK", body)
	}
}

func TestAPI_Routes(t *testing.T) {
	app := setupTestApp()

	status, body := request(t, app, http.MethodGet, "/kinds", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"total_count":13`)

	status, _ = request(t, app, http.MethodGet, "/kinds/com.nativeformat.plugin.time.loop", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodGet, "/schema", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_ValidateExamples(t *testing.T) {
	app := setupTestApp()

	for _, name := range exampleNames() {
		t.Run(name, func(t *testing.T) {
			s, err := buildExample(name, score.SequentialIDs(name))
			require.NoError(t, err)

			data, err := codec.Encode(s)
			require.NoError(t, err)

			status, body := request(t, app, http.MethodPost, "/scores/validate?strict=true", string(data))
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, `"valid":true`)
			assert.Contains(t, body, `"issues":[]`)
		})
	}
}
