package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/genius-progression/pkg/ctxutil"
)

func captureUser(t *testing.T, called *bool, got *uuid.UUID, ok *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*got, *ok = ctxutil.UserIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentity_ValidHeader(t *testing.T) {
	t.Parallel()

	var (
		called bool
		got    uuid.UUID
		ok     bool
	)
	userID := uuid.New()
	handler := Identity(captureUser(t, &called, &got, &ok))

	req := httptest.NewRequest(http.MethodGet, "/v1/progress", nil)
	req.Header.Set(UserIDHeader, " "+userID.String()+" ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, called)
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestIdentity_NoHeaderIsAnonymous(t *testing.T) {
	t.Parallel()

	var (
		called bool
		got    uuid.UUID
		ok     bool
	)
	handler := Identity(captureUser(t, &called, &got, &ok))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.True(t, called)
	assert.False(t, ok)
}

func TestIdentity_Rejects(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"not-a-uuid", uuid.Nil.String()} {
		t.Run(header, func(t *testing.T) {
			t.Parallel()

			var (
				called bool
				got    uuid.UUID
				ok     bool
			)
			handler := Identity(captureUser(t, &called, &got, &ok))

			req := httptest.NewRequest(http.MethodGet, "/v1/progress", nil)
			req.Header.Set(UserIDHeader, header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), UserIDHeader)
		})
	}
}

func TestRequireUser(t *testing.T) {
	t.Parallel()

	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/progress", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	req := httptest.NewRequest(http.MethodGet, "/v1/progress", nil)
	req = req.WithContext(ctxutil.WithUserID(req.Context(), uuid.New()))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
