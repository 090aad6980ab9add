package account

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ckd-predict/portal-service/internal/messaging"
	"github.com/ckd-predict/portal-service/internal/session"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

// Authenticator is the slice of the prediction API this service needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*upstream.AuthResult, error)
	Register(ctx context.Context, req upstream.RegisterRequest) (*upstream.AuthResult, error)
}

type Service struct {
	api       Authenticator
	store     session.Store
	issuer    *session.Issuer
	publisher messaging.PublisherInterface
}

func NewService(api Authenticator, store session.Store, issuer *session.Issuer, publisher messaging.PublisherInterface) *Service {
	return &Service{
		api:       api,
		store:     store,
		issuer:    issuer,
		publisher: publisher,
	}
}

// Register validates the signup form, creates the account upstream,
// and opens a session holding the returned profile. A password
// mismatch never reaches the prediction API.
func (s *Service) Register(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.api.Register(ctx, upstream.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Age:      req.Age,
		Gender:   req.Gender,
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.openSession(ctx, result)
	if err != nil {
		return nil, err
	}

	s.publishAccountCreated(ctx, resp.User)

	return resp, nil
}

// Login forwards credentials upstream and opens a session holding the
// returned profile.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, result)
}

// Logout clears the session record. Subsequent reads with the old
// token see the logged-out state.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// UpdateProfile replaces the editable profile fields in one write.
// The caller's draft either lands whole or not at all.
func (s *Service) UpdateProfile(ctx context.Context, rec *session.Record, req UpdateProfileRequest) (*session.Profile, error) {
	updated := *rec
	updated.Profile.FullName = req.FullName
	updated.Profile.Age = req.Age
	updated.Profile.Gender = req.Gender

	if err := s.store.Set(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.publishProfileUpdated(ctx, updated.Profile)

	return &updated.Profile, nil
}

// DeleteAccount destroys the session record.
func (s *Service) DeleteAccount(ctx context.Context, rec *session.Record) error {
	if err := s.store.Clear(ctx, rec.ID); err != nil {
		return err
	}

	s.publishAccountDeleted(ctx, rec.Profile)

	return nil
}

func (s *Service) openSession(ctx context.Context, result *upstream.AuthResult) (*AuthResponse, error) {
	profile := session.Profile{
		Email:    result.User.Email,
		Username: result.User.Username,
		FullName: result.User.FullName,
		Age:      result.User.Age,
		Gender:   result.User.Gender,
	}

	rec := &session.Record{
		ID:            uuid.NewString(),
		Profile:       profile,
		UpstreamToken: result.Token,
		ExpiresAt:     time.Now().Add(s.issuer.TTL()),
	}
	if err := s.store.Set(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	token, err := s.issuer.Issue(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &AuthResponse{Token: token, User: profile}, nil
}

func (s *Service) publishAccountCreated(ctx context.Context, profile session.Profile) {
	if s.publisher == nil {
		return
	}
	event := messaging.AccountCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAccountCreated),
		Data: messaging.AccountCreatedData{
			PatientID: profile.PatientID(),
			Email:     profile.Email,
			Username:  profile.Username,
			CreatedAt: time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventAccountCreated, event); err != nil {
		log.Printf("Failed to publish account created event: %v", err)
	}
}

func (s *Service) publishProfileUpdated(ctx context.Context, profile session.Profile) {
	if s.publisher == nil {
		return
	}
	event := messaging.ProfileUpdatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventProfileUpdated),
		Data: messaging.ProfileUpdatedData{
			PatientID: profile.PatientID(),
			UpdatedAt: time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventProfileUpdated, event); err != nil {
		log.Printf("Failed to publish profile updated event: %v", err)
	}
}

func (s *Service) publishAccountDeleted(ctx context.Context, profile session.Profile) {
	if s.publisher == nil {
		return
	}
	event := messaging.AccountDeletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAccountDeleted),
		Data: messaging.AccountDeletedData{
			PatientID: profile.PatientID(),
			DeletedAt: time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventAccountDeleted, event); err != nil {
		log.Printf("Failed to publish account deleted event: %v", err)
	}
}
