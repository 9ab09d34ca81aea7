package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessSignIn     = "signed in successfully"
	MessageSuccessSignOut    = "signed out successfully"
	MessageSuccessGetSession = "session retrieved successfully"
	MessageSuccessGetAuthURL = "authorization url created successfully"
	MessageFailedSignIn      = "failed to sign in with google"
	MessageFailedSignOut     = "failed to sign out"
	MessageFailedGetSession  = "failed to retrieve session"
	MessageFailedGetAuthURL  = "failed to create authorization url"

	ErrInvalidIDToken      = errors.New("invalid google id token")
	ErrMissingIDToken      = errors.New("missing id token from google response")
	ErrInvalidOAuthState   = errors.New("invalid or expired oauth state")
	ErrOAuthNotConfigured  = errors.New("google oauth is not configured")
	ErrTokenExchangeFailed = errors.New("google token exchange failed")
)

type (
	// Identity is what the identity provider tells us about a signed-in user.
	Identity struct {
		Provider      string
		Subject       string
		Email         string
		EmailVerified bool
		DisplayName   string
		PhotoURL      string
	}

	SessionClaims struct {
		UserID    string
		Role      string
		TokenID   string
		ExpiresAt time.Time
	}

	GoogleSignInRequest struct {
		IDToken string `json:"id_token" validate:"required"`
	}

	GoogleCallbackRequest struct {
		Code  string `json:"code" validate:"required"`
		State string `json:"state" validate:"required"`
	}

	AuthURLResponse struct {
		URL   string `json:"url"`
		State string `json:"state"`
	}

	SessionStats struct {
		Shared   int `json:"shared"`
		Received int `json:"received"`
		Impact   int `json:"impact"`
	}

	SessionUser struct {
		UID         string       `json:"uid"`
		Email       string       `json:"email"`
		DisplayName string       `json:"display_name"`
		PhotoURL    string       `json:"photo_url"`
		Stats       SessionStats `json:"stats"`
	}

	SignInResponse struct {
		Token     string      `json:"token"`
		ExpiresAt time.Time   `json:"expires_at"`
		User      SessionUser `json:"user"`
	}
)
