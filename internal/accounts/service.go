package accounts

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayodelep/weathercat/pkg/common"
	"github.com/ayodelep/weathercat/pkg/config"
	"github.com/ayodelep/weathercat/pkg/logger"
)

const saltBytes = 16

// Service implements the account business logic. Passwords are salted with a
// per-user random salt before bcrypt hashing.
type Service struct {
	repo   RepositoryInterface
	jwtCfg config.JWTConfig
}

// NewService creates a new accounts service
func NewService(repo RepositoryInterface, jwtCfg config.JWTConfig) *Service {
	return &Service{repo: repo, jwtCfg: jwtCfg}
}

// CreateAccount registers a new user
func (s *Service) CreateAccount(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, common.NewValidationError("username and password are required")
	}

	salt, err := generateSalt()
	if err != nil {
		return nil, common.NewStorageError("failed to generate salt", err)
	}
	hash, err := hashPassword(password, salt)
	if err != nil {
		return nil, common.NewStorageError("failed to hash password", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		Salt:         salt,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("account created", zap.String("username", username))
	return user, nil
}

// Login verifies credentials and issues a signed token
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if common.IsCode(err, common.CodeNotFound) {
			return nil, common.NewUnauthorizedError("invalid username or password")
		}
		return nil, err
	}

	if err := verifyPassword(password, user.Salt, user.PasswordHash); err != nil {
		return nil, common.NewUnauthorizedError("invalid username or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, common.NewStorageError("failed to sign token", err)
	}

	logger.Info("user logged in", zap.String("username", username))
	return &LoginResponse{Message: "Login successful", Token: token}, nil
}

// UpdatePassword verifies the old password and stores a new hash. The salt
// is kept, only the hash changes.
func (s *Service) UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if common.IsCode(err, common.CodeNotFound) {
			return common.NewUnauthorizedError("invalid username or password")
		}
		return err
	}

	if err := verifyPassword(oldPassword, user.Salt, user.PasswordHash); err != nil {
		return common.NewUnauthorizedError("invalid username or password")
	}

	hash, err := hashPassword(newPassword, user.Salt)
	if err != nil {
		return common.NewStorageError("failed to hash password", err)
	}
	return s.repo.UpdatePasswordHash(ctx, username, hash)
}

func (s *Service) issueToken(user *User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.Username,
		"user_id": user.ID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(s.jwtCfg.Expiration) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

func generateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashPassword(password, salt string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password+salt), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(password, salt, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+salt))
}
