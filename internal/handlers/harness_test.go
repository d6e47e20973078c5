package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ideapool/backend/internal/handlers"
	"github.com/ideapool/backend/internal/middleware"
	"github.com/ideapool/backend/internal/routes"
	"github.com/ideapool/backend/internal/sessions"
	"github.com/ideapool/backend/internal/store"
	"github.com/ideapool/backend/internal/tokens"
)

const testSecret = "test-secret"

type env struct {
	router *chi.Mux
	mock   sqlmock.Sqlmock
	cache  *sessions.Cache
	issuer *tokens.Issuer
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })

	issuer := tokens.NewIssuer(testSecret)
	cache := sessions.NewCache(rdb)

	h, err := handlers.New(store.NewUserStore(db), store.NewIdeaStore(db), cache, issuer, zap.NewNop().Sugar())
	require.NoError(t, err)

	r := chi.NewRouter()
	routes.Setup(r, h, middleware.Auth(issuer))

	return &env{router: r, mock: mock, cache: cache, issuer: issuer}
}

// do sends a JSON request through the full router, including the auth guard.
func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.AccessTokenHeader, token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// accessToken mints a valid token for userID.
func (e *env) accessToken(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := e.issuer.IssueAccess(userID)
	require.NoError(t, err)
	return tok
}

var userRows = []string{"id", "email", "name", "password"}

func (e *env) expectFindByEmail(email string, rows *sqlmock.Rows) {
	e.mock.ExpectQuery(`SELECT id, email, name, password FROM users WHERE email`).
		WithArgs(email).
		WillReturnRows(rows)
}

func (e *env) expectFindByID(id int64, rows *sqlmock.Rows) {
	e.mock.ExpectQuery(`SELECT id, email, name, password FROM users WHERE id`).
		WithArgs(id).
		WillReturnRows(rows)
}

func noUser() *sqlmock.Rows {
	return sqlmock.NewRows(userRows)
}

func oneUser(id int64, email, name, hash string) *sqlmock.Rows {
	return sqlmock.NewRows(userRows).AddRow(id, email, name, hash)
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
