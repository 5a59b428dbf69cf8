package sync

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"embed-sync/core/journal"
	"embed-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, runner *fakeRunner, lister RunLister) *fiber.App {
	app := fiber.New()
	svc := NewService(runner, lister, reconcile.ScopeHistory, zap.NewNop())
	feature := NewFeature(svc)
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app
}

func postSync(t *testing.T, app *fiber.App, body string) (int, Response) {
	req := httptest.NewRequest("POST", "/sync", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out Response
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestLoader(t *testing.T) {
	feature := NewFeature(NewService(&fakeRunner{}, nil, reconcile.ScopeHistory, zap.NewNop()))
	assert.Equal(t, "sync", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}

func TestHandleSync(t *testing.T) {
	runner := &fakeRunner{}
	app := setupTestApp(t, runner, nil)

	status, body := postSync(t, app, `{"channels":["rules"],"dry_run":true}`)
	assert.Equal(t, 200, status)
	assert.Empty(t, body.Error)
	require.NotNil(t, body.Report)
	assert.Equal(t, "run-1", body.Report.RunID)
	assert.Equal(t, 2, body.Summary.Sent)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"rules"}, runner.calls[0].channels)
	assert.True(t, runner.calls[0].opts.DryRun)
}

func TestHandleSync_EmptyBody(t *testing.T) {
	runner := &fakeRunner{}
	app := setupTestApp(t, runner, nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, runner.calls[0].channels)
}

func TestHandleSync_BadRequest(t *testing.T) {
	runner := &fakeRunner{}
	app := setupTestApp(t, runner, nil)

	status, _ := postSync(t, app, `{"channels":`)
	assert.Equal(t, 400, status)

	status, _ = postSync(t, app, `{"purge_scope":"everything"}`)
	assert.Equal(t, 400, status)

	assert.Empty(t, runner.calls)
}

func TestHandleSync_Failure(t *testing.T) {
	app := setupTestApp(t, &fakeRunner{err: errors.New("channel rules: missing access")}, nil)

	status, body := postSync(t, app, `{}`)
	assert.Equal(t, 500, status)
	assert.Equal(t, "channel rules: missing access", body.Error)
	require.NotNil(t, body.Report)
	assert.Equal(t, reconcile.PhaseFailed, body.Report.Phase)
}

func TestHandleRuns(t *testing.T) {
	t.Run("JournalDisabled", func(t *testing.T) {
		app := setupTestApp(t, &fakeRunner{}, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/sync/runs", nil))
		require.NoError(t, err)
		assert.Equal(t, 503, resp.StatusCode)
	})

	t.Run("Success", func(t *testing.T) {
		lister := &fakeLister{runs: []journal.Run{{ID: "run-2", Status: journal.StatusDone}}}
		app := setupTestApp(t, &fakeRunner{}, lister)

		resp, err := app.Test(httptest.NewRequest("GET", "/sync/runs?limit=5", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 5, lister.limit)

		var runs []journal.Run
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
		require.Len(t, runs, 1)
		assert.Equal(t, "run-2", runs[0].ID)
	})

	t.Run("DefaultLimit", func(t *testing.T) {
		lister := &fakeLister{}
		app := setupTestApp(t, &fakeRunner{}, lister)

		_, err := app.Test(httptest.NewRequest("GET", "/sync/runs", nil))
		require.NoError(t, err)
		assert.Equal(t, journal.DefaultListLimit, lister.limit)
	})

	t.Run("Error", func(t *testing.T) {
		app := setupTestApp(t, &fakeRunner{}, &fakeLister{err: errors.New("db down")})

		resp, err := app.Test(httptest.NewRequest("GET", "/sync/runs", nil))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
	})
}
