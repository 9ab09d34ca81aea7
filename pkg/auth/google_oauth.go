package auth

import (
	"FoodSaver-Backend/domain"
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// CodeExchanger drives the redirect-based sign-in: it builds the consent URL
// and trades the returned code for an ID token.
type CodeExchanger interface {
	AuthCodeURL(state string, verifier string) string
	Exchange(ctx context.Context, code string, verifier string) (string, error)
}

type googleOAuth struct {
	config *oauth2.Config
}

// NewGoogleOAuth returns nil when the web client is not configured.
func NewGoogleOAuth(clientID, clientSecret, redirectURL string) CodeExchanger {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil
	}
	return newGoogleOAuth(clientID, clientSecret, redirectURL, endpoints.Google)
}

func newGoogleOAuth(clientID, clientSecret, redirectURL string, endpoint oauth2.Endpoint) *googleOAuth {
	return &googleOAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
	}
}

func (g *googleOAuth) AuthCodeURL(state string, verifier string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.S256ChallengeOption(verifier))
}

func (g *googleOAuth) Exchange(ctx context.Context, code string, verifier string) (string, error) {
	tok, err := g.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenExchangeFailed, err)
	}

	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		return "", domain.ErrMissingIDToken
	}
	return idToken, nil
}
