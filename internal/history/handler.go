package history

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ckd-predict/portal-service/internal/pagination"
	"github.com/ckd-predict/portal-service/internal/session"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/history
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rec, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	params := pagination.ParseParams(r)

	page, err := h.service.List(r.Context(), rec.Profile.PatientID(), params)
	if err != nil {
		log.Printf("Failed to load history: %v", err)

		if errors.Is(err, upstream.ErrUnavailable) {
			http.Error(w, "prediction service unavailable, please try again", http.StatusServiceUnavailable)
		} else if apiErr, ok := upstream.AsAPIError(err); ok {
			http.Error(w, apiErr.Message, http.StatusBadGateway)
		} else {
			http.Error(w, "failed to load history", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}
