package accounts

import "context"

// RepositoryInterface defines the storage operations for accounts
type RepositoryInterface interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UpdatePasswordHash(ctx context.Context, username, hash string) error
}

// ServiceInterface defines the account business logic
type ServiceInterface interface {
	CreateAccount(ctx context.Context, username, password string) (*User, error)
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
	UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error
}
