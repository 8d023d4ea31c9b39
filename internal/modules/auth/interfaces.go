package auth

import (
	"context"

	"vidtube/internal/domain"
	"vidtube/internal/pkg/token"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	SetRefreshTokenHash(ctx context.Context, id int64, hash *string) error
	SwapRefreshTokenHash(ctx context.Context, id int64, oldHash, newHash string) (bool, error)
}

// TokenIssuerInterface mints and checks the access/refresh pair.
type TokenIssuerInterface interface {
	IssueAccess(userID int64, email, fullName string) (string, error)
	IssueRefresh(userID int64) (string, error)
	Verify(raw string, kind token.Kind) (*token.Claims, error)
}

// PasswordHasherInterface is the one-way credential transform.
type PasswordHasherInterface interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) (bool, error)
}
