package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireWalletMissingHeader(t *testing.T) {
	m := NewWalletMiddleware()
	handler := m.RequireWallet(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a wallet header")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireWalletBlankHeader(t *testing.T) {
	m := NewWalletMiddleware()
	handler := m.RequireWallet(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a blank wallet header")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/me", nil)
	req.Header.Set(WalletHeader, "   ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireWalletPassesAddress(t *testing.T) {
	m := NewWalletMiddleware()

	var got string
	handler := m.RequireWallet(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		address, ok := GetWalletFromContext(r.Context())
		require.True(t, ok)
		got = address
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/me", nil)
	req.Header.Set(WalletHeader, "0xAbC123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The address is the identity key and must pass through verbatim.
	assert.Equal(t, "0xAbC123", got)
}
