package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/quotedesk/internal/entity"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(token string) (entity.Principal, error) {
	args := m.Called(token)
	return args.Get(0).(entity.Principal), args.Error(1)
}

func echoPrincipal(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(p)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func TestAuthenticate_ValidToken(t *testing.T) {
	v := new(MockVerifier)
	v.On("Verify", "tok").Return(entity.Principal{UserID: "agent-1"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()

	Authenticate(v)(http.HandlerFunc(echoPrincipal)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var p entity.Principal
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, "agent-1", p.UserID)
}

func TestAuthenticate_Rejects(t *testing.T) {
	v := new(MockVerifier)
	v.On("Verify", "bad").Return(entity.Principal{}, errors.New("expired"))

	for name, header := range map[string]string{
		"missing":      "",
		"wrong scheme": "Basic abc",
		"empty token":  "Bearer ",
		"invalid":      "Bearer bad",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()

			Authenticate(v)(http.HandlerFunc(echoPrincipal)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	cases := []struct {
		name   string
		ctx    func(*http.Request) *http.Request
		status int
	}{
		{"no principal", func(r *http.Request) *http.Request { return r }, http.StatusUnauthorized},
		{"agent", func(r *http.Request) *http.Request {
			return r.WithContext(WithPrincipal(r.Context(), entity.Principal{UserID: "a"}))
		}, http.StatusForbidden},
		{"admin", func(r *http.Request) *http.Request {
			return r.WithContext(WithPrincipal(r.Context(), entity.Principal{UserID: "a", IsAdmin: true}))
		}, http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireAdmin(ok).ServeHTTP(rec, tc.ctx(httptest.NewRequest(http.MethodGet, "/", nil)))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestLogger_PassesThroughStatus(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
