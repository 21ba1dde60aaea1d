package ports

import (
	"context"

	"github.com/conectapg/portal/internal/core/domain"
)

// RegisterInput carries the data for a new citizen account. The role is
// always CIDADAO; staff accounts are provisioned out of band.
type RegisterInput struct {
	Nome  string
	Email string
	Senha string
}

// ProfileInput carries a profile edit for the signed-in user.
type ProfileInput struct {
	Nome  string
	Email string
}

// LoginResult is returned on a successful login. The token is an opaque
// bearer string issued by the backend; the portal assumes nothing stronger
// about it.
type LoginResult struct {
	User  domain.User
	Token string
}

// UserAPI is the outbound gateway surface for user endpoints.
type UserAPI interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, in RegisterInput) (*domain.User, error)
	Update(ctx context.Context, id int64, in ProfileInput) (*domain.User, error)
}

// UserService defines account use cases.
type UserService interface {
	// Login resolves the account behind the credentials. The current
	// backend performs no password check and issues a placeholder token;
	// this path must never be treated as a real authentication protocol.
	Login(ctx context.Context, email, senha string) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, in ProfileInput) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
