package forecast

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

// Predict handles POST /api/assessments/forecast
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	rec, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	forecast, err := h.service.Predict(r.Context(), rec.Profile.PatientID())
	if err != nil {
		log.Printf("Failed to run progression forecast: %v", err)

		if errors.Is(err, upstream.ErrUnavailable) {
			http.Error(w, "prediction service unavailable, please try again", http.StatusServiceUnavailable)
		} else if apiErr, ok := upstream.AsAPIError(err); ok {
			http.Error(w, apiErr.Message, http.StatusBadGateway)
		} else {
			http.Error(w, "failed to run forecast", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(forecast)
}
