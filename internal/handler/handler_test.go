package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/voltra-app/voltra-go/internal/repository"
	"github.com/voltra-app/voltra-go/internal/service"
	"github.com/voltra-app/voltra-go/internal/storage"
)

// testEnv wires the full handler surface over an in-memory store.
type testEnv struct {
	router  chi.Router
	session *service.SessionService
	auth    *service.AuthService
	orgs    *service.OrganizationService
	opps    *service.OpportunityService
	matcher *service.MatcherService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := storage.NewMemoryStore()
	directory := repository.NewDirectoryRepository(store)
	sessionService := service.NewSessionService(repository.NewSessionRepository(store), directory)
	authService := service.NewAuthService(directory, sessionService)
	orgService := service.NewOrganizationService(repository.NewOrganizationRepository(store))
	opportunityService := service.NewOpportunityService(orgService)
	matcherService := service.NewMatcherService("", time.Second)

	r := chi.NewRouter()
	r.Mount("/v1/auth", NewAuthHandler(authService, sessionService).Routes())
	r.Mount("/v1/profile", NewProfileHandler(sessionService).Routes())
	r.Mount("/v1/organizations", NewOrganizationHandler(orgService, sessionService).Routes())
	r.Mount("/v1/opportunities", NewOpportunityHandler(opportunityService, matcherService, sessionService).Routes())
	r.Mount("/v1/feed", NewOpportunityHandler(opportunityService, matcherService, sessionService).FeedRoutes())
	r.Delete("/v1/data", NewDataHandler(sessionService, orgService).Reset)

	return &testEnv{
		router:  r,
		session: sessionService,
		auth:    authService,
		orgs:    orgService,
		opps:    opportunityService,
		matcher: matcherService,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func (e *testEnv) signup(t *testing.T) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/v1/auth/signup", map[string]any{
		"email":       "jane@example.com",
		"password":    "secret1",
		"fullName":    "Jane Doe",
		"interests":   []string{"Education"},
		"accountType": "volunteer",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}
