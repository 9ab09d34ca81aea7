package auth

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/internal/metrics"
	"FoodSaver-Backend/pkg/jwt"
	"FoodSaver-Backend/pkg/session"
	"FoodSaver-Backend/pkg/user"
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const oauthStateTTL = 10 * time.Minute

type (
	AuthService interface {
		SignInWithIDToken(ctx context.Context, idToken string) (domain.SignInResponse, error)
		AuthURL(ctx context.Context) (domain.AuthURLResponse, error)
		SignInWithCode(ctx context.Context, code string, state string) (domain.SignInResponse, error)
		SignOut(ctx context.Context, claims domain.SessionClaims) error
		Session(ctx context.Context, userID string) (domain.SessionUser, error)
	}

	authService struct {
		verifier    IDTokenVerifier
		oauth       CodeExchanger
		userService user.UserService
		jwtService  jwt.JWTService
		store       session.Store
		publisher   user.EventPublisher
		now         func() time.Time
	}
)

func NewAuthService(
	verifier IDTokenVerifier,
	oauth CodeExchanger,
	userService user.UserService,
	jwtService jwt.JWTService,
	store session.Store,
	publisher user.EventPublisher,
) AuthService {
	return &authService{
		verifier:    verifier,
		oauth:       oauth,
		userService: userService,
		jwtService:  jwtService,
		store:       store,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *authService) SignInWithIDToken(ctx context.Context, idToken string) (domain.SignInResponse, error) {
	res, err := s.signIn(ctx, idToken)
	metrics.RecordSignIn("id_token", err == nil)
	return res, err
}

func (s *authService) signIn(ctx context.Context, idToken string) (domain.SignInResponse, error) {
	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		log.Warnf("google sign-in rejected: %v", err)
		return domain.SignInResponse{}, err
	}

	profile, err := s.userService.UpsertFromIdentity(ctx, identity)
	if err != nil {
		log.Errorf("upsert profile for %s user %s: %v", identity.Provider, identity.Subject, err)
		return domain.SignInResponse{}, err
	}

	token, claims, err := s.jwtService.GenerateTokenUser(profile.ID.String(), domain.RoleUser)
	if err != nil {
		return domain.SignInResponse{}, err
	}

	s.publish(session.EventSignedIn, claims.UserID)
	log.Infof("user %s signed in with %s", claims.UserID, identity.Provider)

	return domain.SignInResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		User:      user.ToSessionUser(profile),
	}, nil
}

func (s *authService) AuthURL(ctx context.Context) (domain.AuthURLResponse, error) {
	if s.oauth == nil {
		return domain.AuthURLResponse{}, domain.ErrOAuthNotConfigured
	}

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	if err := s.store.Put(ctx, session.OAuthStateKey(state), verifier, oauthStateTTL); err != nil {
		return domain.AuthURLResponse{}, err
	}

	return domain.AuthURLResponse{
		URL:   s.oauth.AuthCodeURL(state, verifier),
		State: state,
	}, nil
}

func (s *authService) SignInWithCode(ctx context.Context, code string, state string) (domain.SignInResponse, error) {
	if s.oauth == nil {
		return domain.SignInResponse{}, domain.ErrOAuthNotConfigured
	}

	verifier, err := s.store.Take(ctx, session.OAuthStateKey(state))
	if err != nil {
		metrics.RecordSignIn("code", false)
		if errors.Is(err, session.ErrNotFound) {
			return domain.SignInResponse{}, domain.ErrInvalidOAuthState
		}
		return domain.SignInResponse{}, err
	}

	idToken, err := s.oauth.Exchange(ctx, code, verifier)
	if err != nil {
		metrics.RecordSignIn("code", false)
		log.Warnf("google code exchange failed: %v", err)
		return domain.SignInResponse{}, err
	}

	res, err := s.signIn(ctx, idToken)
	metrics.RecordSignIn("code", err == nil)
	return res, err
}

// SignOut revokes the session token until it would have expired anyway.
func (s *authService) SignOut(ctx context.Context, claims domain.SessionClaims) error {
	if claims.TokenID == "" {
		return domain.ErrTokenInvalid
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl > 0 {
		if err := s.store.Put(ctx, session.RevokedKey(claims.TokenID), claims.UserID, ttl); err != nil {
			return err
		}
	}

	s.publish(session.EventSignedOut, claims.UserID)
	log.Infof("user %s signed out", claims.UserID)
	return nil
}

func (s *authService) Session(ctx context.Context, userID string) (domain.SessionUser, error) {
	return s.userService.GetSessionUser(ctx, userID)
}

func (s *authService) publish(eventType string, userID string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(session.Event{Type: eventType, UserID: userID, At: s.now()})
}
