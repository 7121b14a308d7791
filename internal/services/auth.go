package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-calculations/internal/logger"
	"github.com/sbilibin2017/gw-calculations/internal/models"
	"github.com/sbilibin2017/gw-calculations/internal/password"
	"github.com/sbilibin2017/gw-calculations/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// TokenTypeBearer is returned with every issued access token.
const TokenTypeBearer = "bearer"

// UserFinder looks users up by username or email.
type UserFinder interface {
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// TokenIssuer issues signed access tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, claims map[string]any, ttl time.Duration) (string, error)
}

// RegisterInput holds the fields accepted at registration.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

// AuthResult is returned by a successful authentication.
type AuthResult struct {
	AccessToken string
	TokenType   string
	User        *models.UserPublic
}

// AuthService handles registration and login.
type AuthService struct {
	finder UserFinder
	writer UserWriter
	tokens TokenIssuer
	now    func() time.Time
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(finder UserFinder, writer UserWriter, tokens TokenIssuer) *AuthService {
	return &AuthService{
		finder: finder,
		writer: writer,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register validates the candidate and stores a new active, unverified user.
// The insert runs in the caller's transaction.
func (svc *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(in.Username) == "" {
		return nil, fmt.Errorf("%w: username must not be empty", ErrValidation)
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("%w: email must not be empty", ErrValidation)
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, MinPasswordLength)
	}

	existing, err := svc.finder.GetByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		log.Warnw("user already exists", "username", in.Username, "email", in.Email)
		return nil, ErrUserAlreadyExists
	}

	hash, err := password.Hash(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password is too long", ErrValidation)
	}
	if err != nil {
		log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user := &models.User{
		UserID:       uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		IsActive:     true,
		IsVerified:   false,
	}

	if err := svc.writer.Insert(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			log.Warnw("user already exists", "username", in.Username, "email", in.Email)
			return nil, ErrUserAlreadyExists
		}
		log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	log.Infow("user registered", "user_id", user.UserID, "username", user.Username)
	return user, nil
}

// Authenticate checks the credentials of the user identified by username or
// email, records the login and issues an access token.
func (svc *AuthService) Authenticate(ctx context.Context, identifier, plaintext string) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	user, err := svc.finder.GetByUsernameOrEmail(ctx, identifier, identifier)
	if err != nil {
		log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		log.Warnw("user does not exist", "identifier", identifier)
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		log.Warnw("invalid credentials", "username", user.Username)
		return nil, ErrInvalidCredentials
	}

	now := svc.now().UTC()
	user.LastLogin = &now
	if err := svc.writer.Update(ctx, user); err != nil {
		log.Errorw("failed to update last login", "user_id", user.UserID, "err", err)
		return nil, err
	}

	token, err := svc.tokens.Issue(ctx, map[string]any{"sub": user.Username}, 0)
	if err != nil {
		log.Errorw("failed to generate JWT", "err", err)
		return nil, err
	}

	return &AuthResult{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		User:        user.Public(),
	}, nil
}
