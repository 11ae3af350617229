package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sirpyerre/posts-gateway/internal/api/metrics"
	"github.com/sirpyerre/posts-gateway/internal/core/domain"
	"github.com/sirpyerre/posts-gateway/internal/core/ports"
)

// AuthService implements login and registration against an injected
// credential store and token codec.
type AuthService struct {
	repo  ports.UserRepository
	codec ports.TokenCodec
	audit ports.AuditSink
}

func NewAuthService(repo ports.UserRepository, codec ports.TokenCodec, audit ports.AuditSink) *AuthService {
	return &AuthService{repo: repo, codec: codec, audit: audit}
}

// Login verifies the supplied credentials and issues a signed token carrying
// the user's current roles. Unknown username, wrong password, and a disabled
// account all yield the same ErrInvalidCredentials so that responses carry no
// user-enumeration signal.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, s.loginFailed(username)
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, s.loginFailed(username)
		}
		return nil, err
	}
	if !user.Enabled {
		return nil, s.loginFailed(username)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, s.loginFailed(username)
	}

	token, err := s.codec.Issue(user.Username, user.Roles)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(ports.AuditLogin, username, true)

	return &ports.LoginResult{
		Token:    token,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	}, nil
}

// Register creates a new account with the base role only; a registering user
// can never self-assign elevated roles. Username and email collisions collapse
// into the single combined ErrDuplicateIdentity.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !taken {
		taken, err = s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
	}
	if taken {
		metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		s.record(ports.AuditRegister, username, false)
		return nil, domain.ErrDuplicateIdentity
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []domain.Role{domain.RoleUser},
		Enabled:      true,
	}

	// The store re-checks uniqueness under its own lock; a concurrent
	// registration that slipped past the checks above surfaces here.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			s.record(ports.AuditRegister, username, false)
		}
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.record(ports.AuditRegister, username, true)
	return created, nil
}

func (s *AuthService) loginFailed(username string) error {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	s.record(ports.AuditLogin, username, false)
	return domain.ErrInvalidCredentials
}

func (s *AuthService) record(kind, username string, success bool) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ports.AuditEvent{Kind: kind, Username: username, Success: success, At: time.Now().UTC()})
}
