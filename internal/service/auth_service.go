package service

import (
	"errors"
	"time"

	"wellbeing/internal/model"
	"wellbeing/internal/validate"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "wellbeing"

// AuthService issues and checks respondent session tokens
type AuthService struct {
	jwtSecret []byte
	ttl       time.Duration
	validate  *validator.Validate
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(secret string, ttl time.Duration) (*AuthService, error) {
	if secret == "" {
		return nil, errors.New("auth: JWT secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		jwtSecret: []byte(secret),
		ttl:       ttl,
		validate:  validate.New(),
		now:       time.Now,
	}, nil
}

// StartSession opens an anonymous questionnaire session under a pseudonym
func (s *AuthService) StartSession(req model.StartSessionRequest) (*model.StartSessionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ValidationError{Fields: validate.Describe(err)}
	}

	sessionID := uuid.NewString()
	now := s.now()
	claims := &model.RespondentClaims{
		SessionID: sessionID,
		Pseudo:    req.Pseudo,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.StartSessionResponse{
		Token:     tokenString,
		SessionID: sessionID,
	}, nil
}

// ValidateRespondentToken validates a respondent JWT and returns claims
func (s *AuthService) ValidateRespondentToken(tokenString string) (*model.RespondentClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.RespondentClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.RespondentClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
