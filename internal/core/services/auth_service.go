package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
	"github.com/srgjo27/quincho_booking/internal/core/ports"
)

type AuthService struct {
	adminRepo ports.AdminRepository
	sessions  ports.SessionStore
}

func NewAuthService(adminRepo ports.AdminRepository, sessions ports.SessionStore) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		sessions:  sessions,
	}
}

// EnsureDefaultAdmin creates the admin account if the username is unknown.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return errors.New("default admin username and password are required")
	}

	_, err := s.adminRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return fmt.Errorf("lookup default admin: %w", err)
	}

	log.Println("Default admin not found, creating one...")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	admin := &domain.Admin{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.adminRepo.CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	log.Println("Default admin created.")

	return nil
}

// Login checks the credentials and opens a session. It returns the session
// token and the admin it belongs to.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		verr := domain.NewValidationError()
		if username == "" {
			verr.Add("username", "is required")
		}
		if password == "" {
			verr.Add("password", "is required")
		}
		return "", nil, verr
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, &domain.StorageError{Op: "get admin", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	session := domain.Session{AdminID: admin.ID, Username: admin.Username}

	token, err := s.sessions.Create(ctx, session)
	if err != nil {
		return "", nil, &domain.StorageError{Op: "create session", Err: err}
	}

	return token, &session, nil
}

func (s *AuthService) Session(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return nil, err
		}
		return nil, &domain.StorageError{Op: "get session", Err: err}
	}

	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		return &domain.StorageError{Op: "delete session", Err: err}
	}

	return nil
}
