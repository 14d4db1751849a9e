package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/pkg/apperror"
	"github.com/sangkips/warehouse-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

type httpStatusErr int

func (e httpStatusErr) Error() string   { return "remote status" }
func (e httpStatusErr) HTTPStatus() int { return int(e) }

type fakeProvider struct {
	tokenErr error
	user     *entity.User
}

func (f *fakeProvider) ObtainToken(_ context.Context, email, password string) (string, error) {
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	return "upstream-token", nil
}

func (f *fakeProvider) FetchCurrentUser(_ context.Context, token string) (*entity.User, error) {
	if token != "upstream-token" {
		return nil, errors.New("bad token")
	}
	return f.user, nil
}

func newAuthFixture(t *testing.T, provider *fakeProvider, fallback FallbackAccount) (*AuthService, *utils.JWTManager, *WorkflowRegistry) {
	t.Helper()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	registry := NewWorkflowRegistry(&stubStore{}, 1, 0, nil)
	return NewAuthService(provider, jwtManager, fallback, registry, nil), jwtManager, registry
}

func fallbackAccount(t *testing.T) FallbackAccount {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("offline-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return FallbackAccount{ID: 9, Email: "desk@example.com", Name: "Front Desk", PasswordHash: string(hash)}
}

func TestLoginRemoteIssuesSessionWithUpstreamToken(t *testing.T) {
	svc, jwtManager, _ := newAuthFixture(t, &fakeProvider{user: &entity.User{ID: 3, Email: "op@example.com", Name: "op"}}, FallbackAccount{})

	out, err := svc.Login(context.Background(), &LoginInput{Email: " op@example.com ", Password: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if out.Offline || out.User.ID != 3 || out.ExpiresIn != 3600 {
		t.Fatalf("out = %+v", out)
	}
	claims, err := jwtManager.ValidateSessionToken(out.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if claims.RemoteToken != "upstream-token" || claims.UserID != 3 {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLoginRejectedCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture(t, &fakeProvider{tokenErr: httpStatusErr(401)}, fallbackAccount(t))

	_, err := svc.Login(context.Background(), &LoginInput{Email: "desk@example.com", Password: "offline-pass"})
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoginFallbackWhenRemoteDown(t *testing.T) {
	cases := map[string]error{
		"transport":    errors.New("connection refused"),
		"server error": httpStatusErr(502),
	}
	for name, remoteErr := range cases {
		t.Run(name, func(t *testing.T) {
			svc, jwtManager, _ := newAuthFixture(t, &fakeProvider{tokenErr: remoteErr}, fallbackAccount(t))

			out, err := svc.Login(context.Background(), &LoginInput{Email: "DESK@example.com", Password: "offline-pass"})
			if err != nil {
				t.Fatal(err)
			}
			if !out.Offline || out.User.ID != 9 {
				t.Fatalf("out = %+v", out)
			}
			claims, _ := jwtManager.ValidateSessionToken(out.AccessToken)
			if claims.RemoteToken != "" {
				t.Fatal("fallback session must not carry an upstream token")
			}

			if _, err := svc.Login(context.Background(), &LoginInput{Email: "desk@example.com", Password: "wrong"}); !errors.Is(err, apperror.ErrInvalidCredentials) {
				t.Fatalf("wrong password: err = %v", err)
			}
		})
	}
}

func TestLoginRemoteDownWithoutFallback(t *testing.T) {
	svc, _, _ := newAuthFixture(t, &fakeProvider{tokenErr: errors.New("timeout")}, FallbackAccount{})

	_, err := svc.Login(context.Background(), &LoginInput{Email: "a@b.c", Password: "x"})
	if !errors.Is(err, apperror.ErrIdentityUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestLogoutDropsWorkflow(t *testing.T) {
	svc, _, registry := newAuthFixture(t, &fakeProvider{}, FallbackAccount{})
	registry.For(entity.User{ID: 5})

	svc.Logout(5)
	if registry.Len() != 0 {
		t.Fatalf("len = %d", registry.Len())
	}
}
