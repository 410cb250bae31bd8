package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"nebulanotes/internal/config"
	"nebulanotes/internal/repository"
	"nebulanotes/internal/session"
)

const (
	tokenIssuer = "nebula-notes"
	BcryptCost  = 12
)

var bcryptHashRe = regexp.MustCompile(`^\$2[aby]\$`)

// Compared against when the email is unknown so both failure paths cost a
// bcrypt round.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("nebula-notes-dummy"), BcryptCost)

type AuthService interface {
	Configured() bool
	// Login checks the credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, error)
	IssueToken(email string) (string, error)
	// Verify returns the session carried by token, or nil for anything
	// that is not a valid, unexpired token signed with the current secret.
	Verify(token string) *session.Data
	SessionDuration() time.Duration
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type authService struct {
	adminRepo repository.AdminRepository
	cfg       *config.Config
	now       func() time.Time
}

func NewAuthService(adminRepo repository.AdminRepository, cfg *config.Config) AuthService {
	return &authService{
		adminRepo: adminRepo,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *authService) Configured() bool {
	return s.cfg.AuthConfigured()
}

func (s *authService) SessionDuration() time.Duration {
	if s.cfg.SessionDuration <= 0 {
		return session.MaxAge
	}
	return s.cfg.SessionDuration
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if !s.Configured() {
		return "", ErrConfig
	}

	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count admin users: %w", err)
	}
	if count == 0 {
		return "", ErrNoAdmin
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidLogin
	}

	user, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(email)
}

func (s *authService) IssueToken(email string) (string, error) {
	if !s.Configured() {
		return "", ErrConfig
	}

	now := s.now()
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.SessionDuration())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.AuthSecret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) Verify(tokenString string) *session.Data {
	if !s.Configured() || tokenString == "" {
		return nil
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.AuthSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil
	}

	if claims.Email == "" {
		return nil
	}

	return &session.Data{Email: claims.Email}
}

// HashPassword hashes a plain password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// IsBcryptHash reports whether value already looks like a bcrypt hash.
func IsBcryptHash(value string) bool {
	return bcryptHashRe.MatchString(value)
}
