package clinical

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

// Submit handles POST /api/assessments/clinical
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	rec, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var obs Observation
	if err := json.NewDecoder(r.Body).Decode(&obs); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	assessment, err := h.service.Assess(r.Context(), rec.Profile.PatientID(), obs)
	if err != nil {
		log.Printf("Failed to run clinical assessment: %v", err)

		if errors.Is(err, upstream.ErrUnavailable) {
			http.Error(w, "prediction service unavailable, please try again", http.StatusServiceUnavailable)
		} else if apiErr, ok := upstream.AsAPIError(err); ok {
			http.Error(w, apiErr.Message, http.StatusBadGateway)
		} else {
			http.Error(w, "failed to run clinical assessment", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assessment)
}
