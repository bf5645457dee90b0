package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommandPrintsVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func TestOrderCommandRequiresPhoneFlag(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "order")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"phone\" not set")
}

func TestSummaryByOrderIDHappyPath(t *testing.T) {
	server := newBackendFixture(t)
	defer server.Close()

	t.Setenv("PV_BACKEND_URL", server.URL)

	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "summary", "ord-7")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Order summary #ord-7")
	assert.Contains(t, stdout, "Margherita")
	assert.Contains(t, stdout, "Total: 42.50")
	assert.NotContains(t, stdout, "Transcript history")
}

func TestSummaryWithHistoryFlag(t *testing.T) {
	server := newBackendFixture(t)
	defer server.Close()

	t.Setenv("PV_BACKEND_URL", server.URL)

	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "summary", "ord-7", "--history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Transcript history")
	assert.Contains(t, stdout, "one margherita please")
}

func TestSummaryJSONOutput(t *testing.T) {
	server := newBackendFixture(t)
	defer server.Close()

	t.Setenv("PV_BACKEND_URL", server.URL)

	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "summary", "ord-7", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"order_id\": \"ord-7\"")
	assert.Contains(t, stdout, "\"total_cost\": 42.5")
	assert.NotContains(t, stdout, "\"turns\"")
}

func TestSummaryShowsFetchingSpinnerMessage(t *testing.T) {
	server := newBackendFixture(t)
	defer server.Close()

	t.Setenv("PV_BACKEND_URL", server.URL)

	home := t.TempDir()

	_, stderr, err := executeCLI(t, home, "summary", "ord-7")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Fetching order summary")
}

func TestSummaryWithoutArgumentUsesLatestSession(t *testing.T) {
	server := newBackendFixture(t)
	defer server.Close()

	t.Setenv("PV_BACKEND_URL", server.URL)

	home := t.TempDir()
	require.NoError(t, writeSessionsFixture(home))

	stdout, _, err := executeCLI(t, home, "summary")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Order summary #ord-7")
}

func TestSummaryWithoutArgumentAndNoSessionsFails(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recorded sessions")
}

func TestSummaryReturnsErrorWhenBackendIsDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprint(w, `{"detail":"database unavailable"}`)
	}))
	defer server.Close()

	t.Setenv("PV_BACKEND_URL", server.URL)

	home := t.TempDir()

	_, _, err := executeCLI(t, home, "summary", "ord-7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestSummaryRendersPartialViewWhenOnlyHistoryFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders/summary/ord-7":
			_, _ = fmt.Fprint(w, `{"order_id":7,"items":[],"total_cost":0}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = fmt.Fprint(w, `{"detail":"history unavailable"}`)
		}
	}))
	defer server.Close()

	t.Setenv("PV_BACKEND_URL", server.URL)

	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "summary", "ord-7", "--history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No items on this order yet.")
	assert.Contains(t, stdout, "Could not fetch the transcript history.")
}

func TestSessionsListShowsRecordedSessions(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionsFixture(home))

	stdout, _, err := executeCLI(t, home, "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ord-3")
	assert.Contains(t, stdout, "555-0100")
	assert.Contains(t, stdout, "ord-7")
	assert.Contains(t, stdout, "555-0142")
}

func TestSessionsListEmptyWhenNoFile(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "sessions", "list")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func newBackendFixture(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders/summary/ord-7":
			_, _ = fmt.Fprint(w, `{
				"order_id": "ord-7",
				"items": [
					{"pizza_name":"Margherita","dough_desc":"thin crust","price_each":12.50,"quantity":2,"cost":25.00,"ingredients":["tomato","mozzarella"]},
					{"pizza_name":"Diavola","dough_desc":"classic","price_each":17.50,"quantity":1,"cost":17.50,"ingredients":["salami","chili"]}
				],
				"total_cost": 42.50
			}`)
		case "/orders/transcript/ord-7":
			_, _ = fmt.Fprint(w, `{
				"items": [
					{"content":"one margherita please","parsed":"margherita x1","updated_slots":2},
					{"content":"make it two","parsed":"margherita x2","updated_slots":1}
				]
			}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprint(w, `{"detail":"not found"}`)
		}
	}))
}

func writeSessionsFixture(home string) error {
	configDir := filepath.Join(home, ".pv")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	sessions := `version = 1

[[sessions]]
id = "ord-3"
phone = "555-0100"
started_at = "2026-08-29T18:04:00Z"

[[sessions]]
id = "ord-7"
phone = "555-0142"
started_at = "2026-08-30T12:30:00Z"
`

	return os.WriteFile(filepath.Join(configDir, "sessions.toml"), []byte(sessions), 0o600)
}
