package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/config"
	"github.com/sam/photo-share-website/internal/domain"
	"github.com/sam/photo-share-website/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// dummyHash is compared against when the login name does not exist, so the
// unknown-handle path costs the same as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	activity    *ActivityService
	cfg         *config.Config
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, activity *ActivityService, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		activity:    activity,
		cfg:         cfg,
	}
}

type RegisterInput struct {
	LoginName   string
	Password    string
	FirstName   string
	LastName    string
	Location    string
	Description string
	Occupation  string
}

type LoginInput struct {
	LoginName string
	Password  string
}

// Register creates the account and logs the new user in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	existing, err := s.userRepo.GetByLoginName(ctx, input.LoginName)
	if err == nil && existing != nil {
		return nil, "", domain.ErrLoginNameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.New(),
		LoginName:    input.LoginName,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Location:     input.Location,
		Description:  input.Description,
		Occupation:   input.Occupation,
		CreatedAt:    time.Now(),
	}

	// The pre-check can miss a row committed by a concurrent registration;
	// the login_name unique index is the real guard.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", domain.ErrLoginNameTaken
		}
		return nil, "", err
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.activity.Record(user.ID, domain.ActivityAccountCreated, user.FirstName+" "+user.LastName+" registered", nil)

	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	user, err := s.userRepo.GetByLoginName(ctx, input.LoginName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(input.Password))
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.activity.Record(user.ID, domain.ActivityLogin, user.FirstName+" "+user.LastName+" logged in", nil)

	return user, token, nil
}

// Resolve maps a session token to its user. Expired or unknown tokens yield
// ErrUnauthenticated; an expired row is removed on the way out.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessionRepo.DeleteByTokenHash(ctx, session.TokenHash)
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// Logout invalidates the token. Invalidating a token that is already invalid
// is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	user, err := s.Resolve(ctx, token)

	if delErr := s.sessionRepo.DeleteByTokenHash(ctx, hashToken(token)); delErr != nil {
		return delErr
	}

	if err == nil {
		s.activity.Record(user.ID, domain.ActivityLogout, user.FirstName+" "+user.LastName+" logged out", nil)
	}
	return nil
}

func (s *AuthService) createSession(ctx context.Context, userID uuid.UUID) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	// A fresh login replaces any prior session for the user.
	_ = s.sessionRepo.DeleteByUserID(ctx, userID)

	session := &domain.Session{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hashToken(token),
		ExpiresAt: time.Now().Add(s.cfg.SessionTTL),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
