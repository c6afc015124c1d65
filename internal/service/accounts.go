package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"photoshare/internal/models"
	"photoshare/internal/repository"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/bcrypt"
)

// AccountService handles sign-up.
type AccountService struct {
	users repository.UserRepo
}

func NewAccountService(users repository.UserRepo) *AccountService {
	return &AccountService{users: users}
}

// SignUp hashes the password and stores a new user with the fields as given.
// A taken username yields repository.ErrDuplicateUser.
func (s *AccountService) SignUp(ctx context.Context, p SignUpParams) (models.User, error) {
	hash, err := hashPassword(p.Password)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// passwordDigest maps a password of any length to a fixed 64-byte input,
// which stays under bcrypt's 72-byte limit.
func passwordDigest(password string) []byte {
	sum := blake2b.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordDigest(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
