package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/net/idna"

	"github.com/tofind/freelead/internal/auth"
	"github.com/tofind/freelead/internal/entity"
	"github.com/tofind/freelead/internal/store"
)

var (
	// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailAlreadyExists signals a duplicate registration.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrInvalidEmail signals a malformed registration email.
	ErrInvalidEmail = errors.New("invalid email address")
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)

const defaultNiche = "web_designer"

// AuthService coordinates account creation, credential validation and token
// issuance.
type AuthService struct {
	users store.UserStore
	jwt   *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users store.UserStore, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{users: users, jwt: jwtManager}
}

// AuthResult carries the issued token plus the identity it was issued for.
type AuthResult struct {
	Token  string
	UserID string
	Email  string
	Niche  string
}

// Register creates an account and returns a token for immediate use.
func (s *AuthService) Register(ctx context.Context, email, password, niche string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	if niche == "" {
		niche = defaultNiche
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Niche:        niche,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID.String(), user.Email, user.Niche)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, UserID: user.ID.String(), Email: user.Email, Niche: user.Niche}, nil
}

// Login validates credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("email and password must not be empty")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID.String(), user.Email, user.Niche)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, UserID: user.ID.String(), Email: user.Email, Niche: user.Niche}, nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	if ascii, err := idna.Lookup.ToASCII(domain); err != nil || ascii == "" {
		return ErrInvalidEmail
	}
	return nil
}
