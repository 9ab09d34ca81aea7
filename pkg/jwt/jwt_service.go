package jwt

import (
	"FoodSaver-Backend/domain"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type (
	JWTService interface {
		GenerateTokenUser(userId string, role string) (string, domain.SessionClaims, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetSessionByToken(token string) (domain.SessionClaims, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
		now       func() time.Time
	}
)

const issuer = "FOODSAVER"

func NewJWTService(secretKey string, ttl time.Duration) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(userId string, role string) (string, domain.SessionClaims, error) {
	now := j.now()
	session := domain.SessionClaims{
		UserID:    userId,
		Role:      role,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(j.ttl).Truncate(time.Second),
	}

	claims := jwtUserClaim{
		userId,
		role,
		jwt.RegisteredClaims{
			ID:        session.TokenID,
			Subject:   userId,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", domain.SessionClaims{}, err
	}
	return signed, session, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetSessionByToken(token string) (domain.SessionClaims, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.SessionClaims{}, domain.ErrTokenExpired
		}
		return domain.SessionClaims{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.SessionClaims{}, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || claims.UserID == "" || claims.ID == "" || claims.Issuer != j.issuer {
		return domain.SessionClaims{}, domain.ErrTokenInvalid
	}

	session := domain.SessionClaims{
		UserID:  claims.UserID,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
