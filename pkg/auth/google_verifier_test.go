package auth

import (
	"FoodSaver-Backend/domain"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenInfoServer(t *testing.T, info map[string]string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "good-token", r.URL.Query().Get("id_token"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(info)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func validInfo() map[string]string {
	return map[string]string{
		"iss":            "https://accounts.google.com",
		"aud":            "web-client.apps.googleusercontent.com",
		"sub":            "110169484474386276334",
		"email":          "ana@example.com",
		"email_verified": "true",
		"name":           "Ana",
		"picture":        "https://lh3.googleusercontent.com/a/ana",
		"exp":            strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10),
	}
}

func TestGoogleVerifierAcceptsValidToken(t *testing.T) {
	srv := tokenInfoServer(t, validInfo(), http.StatusOK)
	v := NewGoogleVerifier(srv.URL, []string{"ios-client", "web-client.apps.googleusercontent.com"})

	identity, err := v.Verify(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "google", identity.Provider)
	assert.Equal(t, "110169484474386276334", identity.Subject)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.True(t, identity.EmailVerified)
	assert.Equal(t, "Ana", identity.DisplayName)
}

func TestGoogleVerifierRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"wrong audience", func(m map[string]string) { m["aud"] = "someone-else" }},
		{"wrong issuer", func(m map[string]string) { m["iss"] = "https://evil.example.com" }},
		{"expired", func(m map[string]string) { m["exp"] = strconv.FormatInt(time.Now().Add(-time.Minute).Unix(), 10) }},
		{"bad expiry", func(m map[string]string) { m["exp"] = "soon" }},
		{"unverified email", func(m map[string]string) { m["email_verified"] = "false" }},
		{"missing subject", func(m map[string]string) { delete(m, "sub") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validInfo()
			tt.mutate(info)
			srv := tokenInfoServer(t, info, http.StatusOK)
			v := NewGoogleVerifier(srv.URL, []string{"web-client.apps.googleusercontent.com"})

			_, err := v.Verify(context.Background(), "good-token")
			assert.ErrorIs(t, err, domain.ErrInvalidIDToken)
		})
	}
}

func TestGoogleVerifierRejectsWhenGoogleSaysNo(t *testing.T) {
	srv := tokenInfoServer(t, map[string]string{"error": "invalid_token"}, http.StatusBadRequest)
	v := NewGoogleVerifier(srv.URL, []string{"web-client.apps.googleusercontent.com"})

	_, err := v.Verify(context.Background(), "good-token")
	assert.ErrorIs(t, err, domain.ErrInvalidIDToken)
}

func TestGoogleVerifierNeedsTokenAndAudience(t *testing.T) {
	_, err := NewGoogleVerifier("http://unused", []string{"a"}).Verify(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingIDToken)

	_, err = NewGoogleVerifier("http://unused", nil).Verify(context.Background(), "token")
	assert.ErrorIs(t, err, domain.ErrOAuthNotConfigured)
}
