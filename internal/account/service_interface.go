package account

import (
	"context"

	"github.com/ckd-predict/portal-service/internal/session"
)

// ServiceInterface defines the contract for account operations
type ServiceInterface interface {
	Register(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	UpdateProfile(ctx context.Context, rec *session.Record, req UpdateProfileRequest) (*session.Profile, error)
	DeleteAccount(ctx context.Context, rec *session.Record) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
