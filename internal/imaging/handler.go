package imaging

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ckd-predict/portal-service/internal/session"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

// CT scans are a few MB; this bounds the in-memory part of the parse.
const maxUploadMemory = 32 << 20

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Upload handles POST /api/assessments/ct
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	rec, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "no scan file supplied", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.service.Analyze(r.Context(), rec.Profile.PatientID(), header.Filename, file)
	if err != nil {
		log.Printf("Failed to analyze CT scan: %v", err)

		if errors.Is(err, upstream.ErrUnavailable) {
			http.Error(w, "prediction service unavailable, please try again", http.StatusServiceUnavailable)
		} else if apiErr, ok := upstream.AsAPIError(err); ok {
			http.Error(w, apiErr.Message, http.StatusBadGateway)
		} else {
			http.Error(w, "failed to analyze scan", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
