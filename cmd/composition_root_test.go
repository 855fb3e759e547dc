package cmd_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant/cmd"
	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() cmd.Config {
	return cmd.Config{
		HTTPPort:             "0",
		StorageDriver:        cmd.DriverMemory,
		NumberingDriver:      cmd.DriverMemory,
		BusinessTimezone:     "UTC",
		JWTSecret:            "s3cret",
		CounterRetentionDays: 30,
		CounterPruneSchedule: "0 30 3 * * *",
	}
}

func TestCompositionRoot_MemoryDrivers(t *testing.T) {
	cfg := memoryConfig()
	require.NoError(t, cfg.Validate())

	root, err := cmd.NewCompositionRoot(t.Context(), cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, root.Close()) })

	e, err := root.CreateRouter()
	require.NoError(t, err)

	token, err := httpadapter.SignStaffToken([]byte(cfg.JWTSecret), kernel.NewUUID(), time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"type":"DineIn","tableNo":"A3","partySize":4}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"tableNo":"A3"`)
	assert.Contains(t, rec.Body.String(), `-0001"`)

	jm := root.CreateJobManager()
	require.NoError(t, jm.StartAll())
	jm.StopAll()
}

func TestCompositionRoot_MenuSeedFileMissing(t *testing.T) {
	cfg := memoryConfig()
	cfg.MenuSeedFile = "/nonexistent/menu.json"

	_, err := cmd.NewCompositionRoot(t.Context(), cfg, slog.New(slog.DiscardHandler))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open menu seed")
}
