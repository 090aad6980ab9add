package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ckd-predict/portal-service/internal/session"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

// mockAuthenticator implements Authenticator for testing
type mockAuthenticator struct {
	loginFunc    func(ctx context.Context, email, password string) (*upstream.AuthResult, error)
	registerFunc func(ctx context.Context, req upstream.RegisterRequest) (*upstream.AuthResult, error)
	calls        int
}

func (m *mockAuthenticator) Login(ctx context.Context, email, password string) (*upstream.AuthResult, error) {
	m.calls++
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthenticator) Register(ctx context.Context, req upstream.RegisterRequest) (*upstream.AuthResult, error) {
	m.calls++
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func newTestService(api Authenticator) (*Service, *session.MemoryStore, *session.Issuer) {
	store := session.NewMemoryStore()
	issuer := session.NewIssuer(session.Config{Secret: "test-secret", TTL: time.Hour})
	return NewService(api, store, issuer, nil), store, issuer
}

func TestRegisterPasswordMismatchBlocksUpstream(t *testing.T) {
	api := &mockAuthenticator{}
	svc, _, _ := newTestService(api)

	_, err := svc.Register(context.Background(), SignupRequest{
		Username:        "jane",
		Email:           "jane@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("Expected ErrPasswordMismatch, got %v", err)
	}
	if api.calls != 0 {
		t.Errorf("Expected no upstream call on mismatch, got %d", api.calls)
	}
}

func TestRegisterOpensSession(t *testing.T) {
	api := &mockAuthenticator{
		registerFunc: func(ctx context.Context, req upstream.RegisterRequest) (*upstream.AuthResult, error) {
			return &upstream.AuthResult{
				Token: "upstream-token",
				User:  upstream.User{Username: req.Username, Email: req.Email, FullName: "Jane Doe"},
			}, nil
		},
	}
	svc, store, issuer := newTestService(api)

	resp, err := svc.Register(context.Background(), SignupRequest{
		Username:        "jane",
		Email:           "jane@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.User.Email != "jane@example.com" || resp.User.FullName != "Jane Doe" {
		t.Errorf("Unexpected user in response: %+v", resp.User)
	}

	sid, err := issuer.Verify(resp.Token)
	if err != nil {
		t.Fatalf("Returned token does not verify: %v", err)
	}
	rec, err := store.Get(context.Background(), sid)
	if err != nil {
		t.Fatalf("Session record not stored: %v", err)
	}
	if rec.Profile.Email != "jane@example.com" {
		t.Errorf("Stored profile has wrong email: %s", rec.Profile.Email)
	}
	if rec.UpstreamToken != "upstream-token" {
		t.Errorf("Upstream token not stored, got %q", rec.UpstreamToken)
	}
}

func TestLoginStoresExactlyReturnedProfile(t *testing.T) {
	age := 47
	api := &mockAuthenticator{
		loginFunc: func(ctx context.Context, email, password string) (*upstream.AuthResult, error) {
			return &upstream.AuthResult{
				Token: "upstream-token",
				User: upstream.User{
					Username: "jane",
					Email:    email,
					FullName: "Jane Doe",
					Age:      &age,
					Gender:   "female",
				},
			}, nil
		},
	}
	svc, store, issuer := newTestService(api)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	sid, _ := issuer.Verify(resp.Token)
	rec, err := store.Get(context.Background(), sid)
	if err != nil {
		t.Fatalf("Session record not stored: %v", err)
	}
	if rec.Profile.Username != "jane" || rec.Profile.FullName != "Jane Doe" ||
		rec.Profile.Age == nil || *rec.Profile.Age != 47 || rec.Profile.Gender != "female" {
		t.Errorf("Stored profile does not match upstream answer: %+v", rec.Profile)
	}
}

func TestLoginInvalidCredentialsSurface(t *testing.T) {
	api := &mockAuthenticator{
		loginFunc: func(ctx context.Context, email, password string) (*upstream.AuthResult, error) {
			return nil, &upstream.APIError{StatusCode: 401, Message: "invalid credentials"}
		},
	}
	svc, _, _ := newTestService(api)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "wrong"})
	apiErr, ok := upstream.AsAPIError(err)
	if !ok || apiErr.StatusCode != 401 {
		t.Errorf("Expected 401 APIError, got %v", err)
	}
}

func TestLogoutEmptiesStore(t *testing.T) {
	api := &mockAuthenticator{
		loginFunc: func(ctx context.Context, email, password string) (*upstream.AuthResult, error) {
			return &upstream.AuthResult{Token: "t", User: upstream.User{Email: email}}, nil
		},
	}
	svc, store, issuer := newTestService(api)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	sid, _ := issuer.Verify(resp.Token)

	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := store.Get(context.Background(), sid); err != session.ErrNotFound {
		t.Errorf("Expected ErrNotFound after logout, got %v", err)
	}
}

func TestUpdateProfileAtomicReplace(t *testing.T) {
	api := &mockAuthenticator{}
	svc, store, _ := newTestService(api)

	rec := &session.Record{
		ID: "sess-1",
		Profile: session.Profile{
			Email:    "jane@example.com",
			Username: "jane",
			FullName: "Jane Doe",
		},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := store.Set(context.Background(), rec); err != nil {
		t.Fatalf("Failed to seed session: %v", err)
	}

	age := 48
	profile, err := svc.UpdateProfile(context.Background(), rec, UpdateProfileRequest{
		FullName: "Jane A. Doe",
		Age:      &age,
		Gender:   "female",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if profile.FullName != "Jane A. Doe" {
		t.Errorf("Expected updated full name, got %s", profile.FullName)
	}
	if profile.Email != "jane@example.com" || profile.Username != "jane" {
		t.Errorf("Identity fields must survive the update, got %+v", profile)
	}

	stored, err := store.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Failed to read back session: %v", err)
	}
	if stored.Profile.FullName != "Jane A. Doe" || stored.Profile.Age == nil || *stored.Profile.Age != 48 {
		t.Errorf("Stored profile not replaced: %+v", stored.Profile)
	}
}

func TestDeleteAccountClearsSession(t *testing.T) {
	api := &mockAuthenticator{}
	svc, store, _ := newTestService(api)

	rec := &session.Record{
		ID:        "sess-1",
		Profile:   session.Profile{Email: "jane@example.com"},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := store.Set(context.Background(), rec); err != nil {
		t.Fatalf("Failed to seed session: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), rec); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	if _, err := store.Get(context.Background(), "sess-1"); err != session.ErrNotFound {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}
