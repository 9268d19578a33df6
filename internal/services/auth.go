package services

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	EnsureDefaultAdmin(username, password string) error
	Authenticate(username, password string) error
}

type authService struct {
	adminRepo repositories.AdminRepository
}

func NewAuthService(adminRepo repositories.AdminRepository) AuthService {
	return &authService{adminRepo: adminRepo}
}

// EnsureDefaultAdmin seeds the credentials table only when it is empty.
func (s *authService) EnsureDefaultAdmin(username, password string) error {
	count, err := s.adminRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if err := s.adminRepo.Create(&models.AdminCredential{
		Username:     username,
		PasswordHash: string(hash),
	}); err != nil {
		return err
	}

	log.Printf("✅ Default admin '%s' created\n", username)
	return nil
}

func (s *authService) Authenticate(username, password string) error {
	admin, err := s.adminRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
