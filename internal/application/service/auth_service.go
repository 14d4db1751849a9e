package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/domain/repository"
	"github.com/sangkips/warehouse-api/pkg/apperror"
	"github.com/sangkips/warehouse-api/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// FallbackAccount is a locally configured operator that can sign in while the remote API is down
type FallbackAccount struct {
	ID           int64
	Email        string
	Name         string
	Role         string
	PasswordHash string
}

// Enabled reports whether the account is configured
func (a FallbackAccount) Enabled() bool {
	return a.Email != "" && a.PasswordHash != ""
}

// AuthService handles authentication-related operations
type AuthService struct {
	provider   repository.IdentityProvider
	jwtManager *utils.JWTManager
	fallback   FallbackAccount
	registry   *WorkflowRegistry
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	provider repository.IdentityProvider,
	jwtManager *utils.JWTManager,
	fallback FallbackAccount,
	registry *WorkflowRegistry,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		provider:   provider,
		jwtManager: jwtManager,
		fallback:   fallback,
		registry:   registry,
		logger:     logger,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.User
	AccessToken string
	ExpiresIn   int64
	// Offline is set when the fallback account signed in
	Offline bool
}

// Login authenticates against the remote API and issues a session token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	email := strings.TrimSpace(input.Email)

	remoteToken, err := s.provider.ObtainToken(ctx, email, input.Password)
	if err != nil {
		if rejected(err) {
			return nil, apperror.ErrInvalidCredentials
		}
		s.logger.Warn("identity provider unreachable", zap.String("email", email), zap.Error(err))
		return s.loginFallback(email, input.Password)
	}

	user, err := s.provider.FetchCurrentUser(ctx, remoteToken)
	if err != nil {
		s.logger.Error("fetch current user failed", zap.String("email", email), zap.Error(err))
		return nil, apperror.Wrap(http.StatusServiceUnavailable, apperror.ErrIdentityUnavailable.Message, err)
	}

	return s.issue(*user, remoteToken, false)
}

func (s *AuthService) loginFallback(email, password string) (*LoginOutput, error) {
	if !s.fallback.Enabled() {
		return nil, apperror.ErrIdentityUnavailable
	}
	if !strings.EqualFold(email, s.fallback.Email) {
		return nil, apperror.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.fallback.PasswordHash), []byte(password)) != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	user := entity.User{
		ID:    s.fallback.ID,
		Email: s.fallback.Email,
		Name:  s.fallback.Name,
		Role:  s.fallback.Role,
	}
	if user.ID == 0 {
		user.ID = DefaultOwnerID
	}
	s.logger.Info("fallback operator signed in", zap.Int64("user_id", user.ID))
	return s.issue(user, "", true)
}

func (s *AuthService) issue(user entity.User, remoteToken string, offline bool) (*LoginOutput, error) {
	token, err := s.jwtManager.GenerateSessionToken(utils.SessionClaims{
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		RemoteToken: remoteToken,
	})
	if err != nil {
		return nil, err
	}
	return &LoginOutput{
		User:        &user,
		AccessToken: token,
		ExpiresIn:   int64(s.jwtManager.Expiry().Seconds()),
		Offline:     offline,
	}, nil
}

// Logout ends the operator's receiving session
func (s *AuthService) Logout(userID int64) {
	if s.registry != nil {
		s.registry.Drop(userID)
	}
}

// Me returns the operator of the session
func (s *AuthService) Me(ctx context.Context, identity repository.Identity) (*entity.User, error) {
	return identity.CurrentUser(ctx)
}

// rejected reports a 4xx answer, i.e. the remote API is up and refused the credentials
func rejected(err error) bool {
	var status interface{ HTTPStatus() int }
	if !errors.As(err, &status) {
		return false
	}
	code := status.HTTPStatus()
	return code >= 400 && code < 500
}
