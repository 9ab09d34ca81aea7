package auth

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/entities"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var googleIssuers = []string{"accounts.google.com", "https://accounts.google.com"}

type (
	// IDTokenVerifier checks an identity provider token and returns who it belongs to.
	IDTokenVerifier interface {
		Verify(ctx context.Context, idToken string) (domain.Identity, error)
	}

	GoogleVerifier struct {
		endpoint  string
		audiences []string
		client    *http.Client
		now       func() time.Time
	}

	tokenInfo struct {
		Issuer        string `json:"iss"`
		Audience      string `json:"aud"`
		Subject       string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		Expiry        string `json:"exp"`
	}
)

// NewGoogleVerifier validates ID tokens against Google's tokeninfo endpoint.
// A token is accepted when its audience is one of audiences.
func NewGoogleVerifier(endpoint string, audiences []string) *GoogleVerifier {
	return &GoogleVerifier{
		endpoint:  endpoint,
		audiences: audiences,
		client:    &http.Client{Timeout: 10 * time.Second},
		now:       time.Now,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (domain.Identity, error) {
	if idToken == "" {
		return domain.Identity{}, domain.ErrMissingIDToken
	}
	if len(v.audiences) == 0 {
		return domain.Identity{}, domain.ErrOAuthNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint+"?"+url.Values{"id_token": {idToken}}.Encode(), nil)
	if err != nil {
		return domain.Identity{}, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	// tokeninfo answers 400 for malformed, expired or forged tokens
	if resp.StatusCode != http.StatusOK {
		return domain.Identity{}, domain.ErrInvalidIDToken
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return domain.Identity{}, fmt.Errorf("decode tokeninfo: %w", err)
	}

	if !contains(googleIssuers, info.Issuer) || !contains(v.audiences, info.Audience) || info.Subject == "" {
		return domain.Identity{}, domain.ErrInvalidIDToken
	}

	exp, err := strconv.ParseInt(info.Expiry, 10, 64)
	if err != nil || !v.now().Before(time.Unix(exp, 0)) {
		return domain.Identity{}, domain.ErrInvalidIDToken
	}

	verified := info.EmailVerified == "true"
	if info.Email != "" && !verified {
		return domain.Identity{}, domain.ErrInvalidIDToken
	}

	return domain.Identity{
		Provider:      entities.ProviderGoogle,
		Subject:       info.Subject,
		Email:         info.Email,
		EmailVerified: verified,
		DisplayName:   info.Name,
		PhotoURL:      info.Picture,
	}, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
