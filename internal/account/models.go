package account

import "github.com/ckd-predict/portal-service/internal/session"

// SignupRequest is the registration form.
type SignupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FullName        string `json:"fullName,omitempty"`
	Age             *int   `json:"age,omitempty"`
	Gender          string `json:"gender,omitempty"`
}

// Validate checks required fields and the password confirmation. This
// runs before anything is sent upstream.
func (r SignupRequest) Validate() error {
	if r.Username == "" {
		return ErrMissingUsername
	}
	if r.Email == "" {
		return ErrMissingEmail
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// LoginRequest is the sign-in form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" {
		return ErrMissingEmail
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

// UpdateProfileRequest carries the editable profile fields. Email is
// the patient identity and cannot be changed here.
type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Age      *int   `json:"age"`
	Gender   string `json:"gender"`
}

// AuthResponse is returned on successful login or registration.
type AuthResponse struct {
	Token string          `json:"token"`
	User  session.Profile `json:"user"`
}

// SessionResponse is the answer to a session probe. A logged-out
// state is a valid answer, not an error.
type SessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *session.Profile `json:"user,omitempty"`
}
