package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/core/ports"
	"github.com/conectapg/portal/internal/web/metrics"
)

const (
	msgLoginFailed      = "Erro ao fazer login"
	msgListUsersFailed  = "Erro ao listar usuários"
	msgGetUserFailed    = "Erro ao buscar usuário"
	msgCreateUserFailed = "Erro ao criar usuário"
	msgUpdateUserFailed = "Erro ao atualizar usuário"
)

// fakeToken is the placeholder bearer string used until the backend issues
// real tokens. See the Login doc comment.
const fakeToken = "fake-jwt-token"

// UserService implements ports.UserService over the gateway.
type UserService struct {
	api ports.UserAPI
	log zerolog.Logger
}

func NewUserService(api ports.UserAPI, log zerolog.Logger) *UserService {
	return &UserService{api: api, log: log}
}

// Login resolves the account behind the credentials.
//
// The current backend has no credential check: the lookup is by email only
// and the password is never verified anywhere in this tier. A successful
// lookup yields a placeholder token. This is a stub to be replaced the day
// the backend issues real tokens, not an authentication protocol; nothing
// in the portal may assume more than "opaque bearer string returned on
// successful lookup".
func (s *UserService) Login(ctx context.Context, email, senha string) (*ports.LoginResult, error) {
	if email == "" || senha == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.api.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Info().Str("email", email).Msg("login rejected: unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Msg("login lookup failed")
		return nil, normalize(err, msgLoginFailed)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Tipo)).Msg("login succeeded")
	return &ports.LoginResult{User: *user, Token: fakeToken}, nil
}

func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	user, err := s.api.Create(ctx, in)
	if err != nil {
		s.log.Error().Err(err).Str("email", in.Email).Msg("registration failed")
		return nil, normalize(err, msgCreateUserFailed)
	}
	s.log.Info().Int64("user_id", user.ID).Msg("citizen account created")
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id int64, in ports.ProfileInput) (*domain.User, error) {
	user, err := s.api.Update(ctx, id, in)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", id).Msg("profile update failed")
		return nil, normalize(err, msgUpdateUserFailed)
	}
	s.log.Info().Int64("user_id", id).Msg("profile updated")
	return user, nil
}

func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.api.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list users failed")
		return nil, normalize(err, msgListUsersFailed)
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.api.Get(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", id).Msg("get user failed")
		return nil, normalize(err, msgGetUserFailed)
	}
	return user, nil
}
