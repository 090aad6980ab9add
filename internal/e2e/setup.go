package e2e

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ckd-predict/portal-service/internal/catalog"
	httpserver "github.com/ckd-predict/portal-service/internal/http"
	"github.com/ckd-predict/portal-service/internal/session"
	"github.com/ckd-predict/portal-service/internal/testutil"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

// TestServer is a complete portal wired against an in-memory session
// store and a mock prediction backend. No external services needed.
type TestServer struct {
	Server    *httptest.Server
	Backend   *testutil.PredictionBackend
	Publisher *testutil.MockPublisher
	Store     *session.MemoryStore
}

// SetupE2ETest starts the full route table with mock dependencies
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	backend := testutil.NewPredictionBackend()
	publisher := testutil.NewMockPublisher()
	store := session.NewMemoryStore()
	issuer := session.NewIssuer(session.Config{Secret: "e2e-test-secret", TTL: time.Hour})

	api := upstream.NewClient(upstream.Config{BaseURL: backend.URL()})

	router := httpserver.SetupRouter(api, store, issuer, publisher, nil, catalog.Default())
	server := httptest.NewServer(httpserver.CORSMiddleware(router))

	return &TestServer{
		Server:    server,
		Backend:   backend,
		Publisher: publisher,
		Store:     store,
	}
}

// Cleanup shuts down the test servers
func (ts *TestServer) Cleanup(t *testing.T) {
	t.Helper()
	ts.Server.Close()
	ts.Backend.Close()
}

// Client returns a test HTTP client carrying the given session token
func (ts *TestServer) Client(token string) *testutil.HTTPTestClient {
	return testutil.NewHTTPTestClient(ts.Server.URL, token)
}
