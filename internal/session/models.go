package session

import "time"

// Profile is the single persisted representation of "who is signed in".
// It mirrors the fields the auth backend returns; everything else the
// portal shows is derived or transient.
type Profile struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Age      *int   `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// PatientID returns the identity key used toward the prediction
// backend: email, falling back to username.
func (p Profile) PatientID() string {
	if p.Email != "" {
		return p.Email
	}
	return p.Username
}

// DisplayName picks the name shown in navigation chrome.
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	if p.Username != "" {
		return p.Username
	}
	return "User"
}

// Record is one session: a Profile plus the bearer token the auth
// backend issued, keyed by the portal's own session ID.
type Record struct {
	ID            string    `json:"id"`
	Profile       Profile   `json:"profile"`
	UpstreamToken string    `json:"upstreamToken,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}
