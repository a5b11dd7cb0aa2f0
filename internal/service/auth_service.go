package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/util"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// googleValidator matches idtoken.Validate, injectable for tests.
type googleValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// AuthService verifies bearer tokens minted elsewhere: first-party JWTs
// signed with our secret, and Google ID tokens when an audience is
// configured. It stores no credentials of its own.
type AuthService struct {
	jwt       *util.JWTManager
	googleAud string
	validate  googleValidator
}

func NewAuthService(jwtManager *util.JWTManager, googleAud string) *AuthService {
	return &AuthService{
		jwt:       jwtManager,
		googleAud: googleAud,
		validate:  idtoken.Validate,
	}
}

// SetGoogleValidator swaps the Google token validator, used by tests.
func (s *AuthService) SetGoogleValidator(v googleValidator) {
	if v != nil {
		s.validate = v
	}
}

func (s *AuthService) VerifyToken(ctx context.Context, raw string) (*domain.Principal, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	if claims, err := s.jwt.Parse(raw); err == nil {
		return &domain.Principal{ID: claims.UserID, Email: claims.Email}, nil
	}

	if s.googleAud != "" {
		payload, err := s.validate(ctx, raw, s.googleAud)
		if err == nil {
			email, _ := payload.Claims["email"].(string)
			return &domain.Principal{
				// Google subjects are opaque strings; derive a stable
				// UUID from them so favorites and saved searches key on
				// the same identity across logins.
				ID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte("google:"+payload.Subject)),
				Email: email,
			}, nil
		}
	}

	return nil, ErrInvalidToken
}
