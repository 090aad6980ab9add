package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"

	"github.com/ckd-predict/portal-service/internal/upstream"
)

// PredictionBackend is an in-memory stand-in for the external CKD
// prediction API. Canned results are configurable per test; requests
// are recorded for assertions.
type PredictionBackend struct {
	Server *httptest.Server

	mu    sync.Mutex
	users map[string]backendUser

	// Canned responses
	Tabular  upstream.TabularResult
	CT       upstream.CTResult
	Forecast upstream.ForecastResult
	History  []upstream.HistoryEntry

	// Request capture
	TabularCalls int
	HistoryCalls int
	LastClinical map[string]any
}

type backendUser struct {
	password string
	user     upstream.User
}

// NewPredictionBackend starts a mock prediction API server. Callers
// must Close it.
func NewPredictionBackend() *PredictionBackend {
	b := &PredictionBackend{
		users: make(map[string]backendUser),
		Tabular: upstream.TabularResult{
			Status: "Negative", Confidence: 90, Stage: 1,
		},
		CT: upstream.CTResult{
			Prediction: "Normal", Confidence: 95,
		},
		Forecast: upstream.ForecastResult{
			PredictedStage: 2, StageLabel: "Stage 2 (Mild)", Confidence: 80,
			DaysToProgression: 365, HistoryUsed: 3,
		},
		History: []upstream.HistoryEntry{},
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/register", b.handleRegister).Methods("POST")
	r.HandleFunc("/api/auth/login", b.handleLogin).Methods("POST")
	r.HandleFunc("/api/predictions/rf", b.handleTabular).Methods("POST")
	r.HandleFunc("/api/predict_ct", b.handleCT).Methods("POST")
	r.HandleFunc("/api/predictions/rnn", b.handleForecast).Methods("POST")
	r.HandleFunc("/api/predictions/history/{id}", b.handleHistory).Methods("GET")

	b.Server = httptest.NewServer(r)
	return b
}

// Close shuts the mock server down
func (b *PredictionBackend) Close() {
	b.Server.Close()
}

// URL returns the mock server's base URL
func (b *PredictionBackend) URL() string {
	return b.Server.URL
}

func (b *PredictionBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req upstream.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	b.mu.Lock()
	if _, exists := b.users[req.Email]; exists {
		b.mu.Unlock()
		writeError(w, http.StatusConflict, "account already exists")
		return
	}
	user := upstream.User{
		ID:       "user-" + req.Username,
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Age:      req.Age,
		Gender:   req.Gender,
	}
	b.users[req.Email] = backendUser{password: req.Password, user: user}
	b.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(upstream.AuthResult{Token: "backend-token-" + req.Username, User: user})
}

func (b *PredictionBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds upstream.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	b.mu.Lock()
	stored, ok := b.users[creds.Email]
	b.mu.Unlock()

	if !ok || stored.password != creds.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	json.NewEncoder(w).Encode(upstream.AuthResult{Token: "backend-token-" + stored.user.Username, User: stored.user})
}

func (b *PredictionBackend) handleTabular(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PatientID    string         `json:"patient_id"`
		ClinicalData map[string]any `json:"clinical_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	b.mu.Lock()
	b.TabularCalls++
	b.LastClinical = body.ClinicalData
	result := b.Tabular
	b.mu.Unlock()

	json.NewEncoder(w).Encode(result)
}

func (b *PredictionBackend) handleCT(w http.ResponseWriter, r *http.Request) {
	if _, _, err := r.FormFile("image"); err != nil {
		writeError(w, http.StatusBadRequest, "no image supplied")
		return
	}

	b.mu.Lock()
	result := b.CT
	b.mu.Unlock()

	json.NewEncoder(w).Encode(result)
}

func (b *PredictionBackend) handleForecast(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	result := b.Forecast
	b.mu.Unlock()

	json.NewEncoder(w).Encode(result)
}

func (b *PredictionBackend) handleHistory(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.HistoryCalls++
	history := b.History
	b.mu.Unlock()

	json.NewEncoder(w).Encode(map[string]any{"history": history})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
