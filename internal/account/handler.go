package account

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ckd-predict/portal-service/internal/session"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Register handles POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		log.Printf("Failed to register account: %v", err)

		switch {
		case errors.Is(err, ErrMissingUsername), errors.Is(err, ErrMissingEmail),
			errors.Is(err, ErrMissingPassword), errors.Is(err, ErrPasswordMismatch):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, upstream.ErrUnavailable):
			http.Error(w, "prediction service unavailable, please try again", http.StatusServiceUnavailable)
		default:
			if apiErr, ok := upstream.AsAPIError(err); ok {
				writeUpstreamAuthError(w, apiErr)
			} else {
				http.Error(w, "failed to register", http.StatusInternalServerError)
			}
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		log.Printf("Failed to log in: %v", err)

		switch {
		case errors.Is(err, ErrMissingEmail), errors.Is(err, ErrMissingPassword):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, upstream.ErrUnavailable):
			http.Error(w, "prediction service unavailable, please try again", http.StatusServiceUnavailable)
		default:
			if apiErr, ok := upstream.AsAPIError(err); ok {
				writeUpstreamAuthError(w, apiErr)
			} else {
				http.Error(w, "failed to log in", http.StatusInternalServerError)
			}
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Logout handles POST /api/auth/logout. Logging out without a session
// is a no-op, not an error.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	rec, ok := session.FromContext(r.Context())
	if ok {
		if err := h.service.Logout(r.Context(), rec.ID); err != nil {
			log.Printf("Failed to clear session %s: %v", rec.ID, err)
			http.Error(w, "failed to log out", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "logged out"})
}

// Session handles GET /api/session. The logged-out state is a valid
// 200 answer; screens probe this on mount.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	resp := SessionResponse{}
	if rec, ok := session.FromContext(r.Context()); ok {
		resp.Authenticated = true
		resp.User = &rec.Profile
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetProfile handles GET /api/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	rec, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec.Profile)
}

// UpdateProfile handles PUT /api/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	rec, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), rec, req)
	if err != nil {
		log.Printf("Failed to update profile: %v", err)
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// DeleteAccount handles DELETE /api/account
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	rec, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), rec); err != nil {
		log.Printf("Failed to delete account: %v", err)
		http.Error(w, "failed to delete account", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "account deleted"})
}

// Upstream auth errors keep their status class: a 401 stays a 401 so
// the login form can show "invalid credentials", everything else is a
// gateway problem.
func writeUpstreamAuthError(w http.ResponseWriter, apiErr *upstream.APIError) {
	if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusBadRequest ||
		apiErr.StatusCode == http.StatusConflict {
		http.Error(w, apiErr.Message, apiErr.StatusCode)
		return
	}
	http.Error(w, apiErr.Message, http.StatusBadGateway)
}
