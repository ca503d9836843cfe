package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dokdig/pkg/requestcontext"
)

var signingKey = []byte("test-signing-key")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	require.NoError(t, err)
	return token
}

func TestRequireActor_InjectsIdent(t *testing.T) {
	var gotActor string
	handler := RequireActor(signingKey, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor = requestcontext.Actor(r.Context())
	}))

	token := signedToken(t, jwt.MapClaims{
		"NAVident": "Z999999",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Z999999", gotActor)
}

func TestRequireActor_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "missing header", token: ""},
		{name: "garbage token", token: "not-a-jwt"},
		{
			name: "wrong signing key",
			token: func() string {
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
					"NAVident": "Z999999",
					"exp":      time.Now().Add(time.Hour).Unix(),
				}).SignedString([]byte("some-other-key"))
				require.NoError(t, err)
				return token
			}(),
		},
		{
			name: "expired",
			token: signedTokenMap(jwt.MapClaims{
				"NAVident": "Z999999",
				"exp":      time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			name: "no actor ident",
			token: signedTokenMap(jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := RequireActor(signingKey, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called, "handler must not run without a valid actor")
		})
	}
}

func signedTokenMap(claims jwt.MapClaims) string {
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	return token
}

func TestCorrelation_EchoesCallerID(t *testing.T) {
	var gotID string
	handler := Correlation(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = requestcontext.CorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CorrelationHeader, "corr-123")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "corr-123", gotID)
	assert.Equal(t, "corr-123", rec.Header().Get(CorrelationHeader))
}

func TestCorrelation_GeneratesWhenAbsent(t *testing.T) {
	var gotID string
	handler := Correlation(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = requestcontext.CorrelationID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, gotID)
	assert.Equal(t, gotID, rec.Header().Get(CorrelationHeader))
}

func TestRequestTime_PinsSingleTimestamp(t *testing.T) {
	var first, second time.Time
	handler := RequestTime(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		first = requestcontext.Now(r.Context())
		second = requestcontext.Now(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, first.IsZero())
	assert.Equal(t, first, second)
}
