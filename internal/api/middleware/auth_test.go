package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authProbe(t *testing.T) (http.Handler, *bool, *int64, *int64) {
	t.Helper()

	called := false
	var tenantID, partnerID int64

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if id, ok := GetTenantID(r.Context()); ok {
			tenantID = id
		}
		if id, ok := GetPartnerID(r.Context()); ok {
			partnerID = id
		}
		w.WriteHeader(http.StatusOK)
	})

	return handler, &called, &tenantID, &partnerID
}

func TestAuthTenant(t *testing.T) {
	next, called, tenantID, _ := authProbe(t)
	handler := AuthTenant(next)

	req := httptest.NewRequest(http.MethodGet, "/my-bookings", nil)
	req.Header.Set("X-Tenant-ID", "100")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
	assert.Equal(t, int64(100), *tenantID)
}

func TestAuthTenant_MissingHeader(t *testing.T) {
	next, called, _, _ := authProbe(t)
	handler := AuthTenant(next)

	req := httptest.NewRequest(http.MethodGet, "/my-bookings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
	assert.Contains(t, rec.Body.String(), "access_denied")
}

func TestAuthTenant_InvalidHeader(t *testing.T) {
	for _, value := range []string{"abc", "0", "-5", "1.5"} {
		next, called, _, _ := authProbe(t)
		handler := AuthTenant(next)

		req := httptest.NewRequest(http.MethodGet, "/my-bookings", nil)
		req.Header.Set("X-Tenant-ID", value)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "value %q", value)
		assert.False(t, *called, "value %q", value)
	}
}

func TestAuthPartner(t *testing.T) {
	next, called, _, partnerID := authProbe(t)
	handler := AuthPartner(next)

	req := httptest.NewRequest(http.MethodGet, "/partners/10/schedule", nil)
	req.Header.Set("X-Partner-ID", "10")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
	assert.Equal(t, int64(10), *partnerID)
}

func TestAuthAny(t *testing.T) {
	t.Run("tenant header", func(t *testing.T) {
		next, called, tenantID, _ := authProbe(t)
		handler := AuthAny(next)

		req := httptest.NewRequest(http.MethodGet, "/bookings/1", nil)
		req.Header.Set("X-Tenant-ID", "100")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *called)
		assert.Equal(t, int64(100), *tenantID)
	})

	t.Run("partner header", func(t *testing.T) {
		next, called, _, partnerID := authProbe(t)
		handler := AuthAny(next)

		req := httptest.NewRequest(http.MethodGet, "/bookings/1", nil)
		req.Header.Set("X-Partner-ID", "10")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *called)
		assert.Equal(t, int64(10), *partnerID)
	})

	t.Run("both headers", func(t *testing.T) {
		next, _, tenantID, partnerID := authProbe(t)
		handler := AuthAny(next)

		req := httptest.NewRequest(http.MethodGet, "/bookings/1", nil)
		req.Header.Set("X-Tenant-ID", "100")
		req.Header.Set("X-Partner-ID", "10")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(100), *tenantID)
		assert.Equal(t, int64(10), *partnerID)
	})

	t.Run("no headers", func(t *testing.T) {
		next, called, _, _ := authProbe(t)
		handler := AuthAny(next)

		req := httptest.NewRequest(http.MethodGet, "/bookings/1", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
	})

	t.Run("invalid tenant header", func(t *testing.T) {
		next, called, _, _ := authProbe(t)
		handler := AuthAny(next)

		req := httptest.NewRequest(http.MethodGet, "/bookings/1", nil)
		req.Header.Set("X-Tenant-ID", "not-a-number")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
	})
}

func TestGetTenantID_NotSet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetTenantID(req.Context())
	assert.False(t, ok)

	_, ok = GetPartnerID(req.Context())
	assert.False(t, ok)
}
