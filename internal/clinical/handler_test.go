package clinical

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ckd-predict/portal-service/internal/session"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

// mockService implements ServiceInterface for testing
type mockService struct {
	assessFunc func(ctx context.Context, patientID string, obs Observation) (*Assessment, error)
}

func (m *mockService) Assess(ctx context.Context, patientID string, obs Observation) (*Assessment, error) {
	if m.assessFunc != nil {
		return m.assessFunc(ctx, patientID, obs)
	}
	return nil, errors.New("not implemented")
}

func signedInRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
	rec := &session.Record{
		ID:      "sess-1",
		Profile: session.Profile{Email: "jane@example.com", Username: "jane"},
	}
	return req.WithContext(session.ContextWithRecord(req.Context(), rec))
}

func TestHandlerSubmit_Success(t *testing.T) {
	mockSvc := &mockService{
		assessFunc: func(ctx context.Context, patientID string, obs Observation) (*Assessment, error) {
			if patientID != "jane@example.com" {
				t.Errorf("Expected patient jane@example.com, got %s", patientID)
			}
			if obs.BloodPressure != "140/90" {
				t.Errorf("Expected blood pressure 140/90, got %s", obs.BloodPressure)
			}
			return &Assessment{
				Risk:       "High Risk of CKD Detected",
				Summary:    "Confidence: 87.0% • Stage 2",
				Status:     "Positive",
				Confidence: 87,
				Stage:      2,
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(Observation{BloodPressure: "140/90"})
	req := signedInRequest("POST", "/api/assessments/clinical", body)
	rr := httptest.NewRecorder()
	handler.Submit(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	var got Assessment
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.Risk != "High Risk of CKD Detected" {
		t.Errorf("Unexpected risk headline: %q", got.Risk)
	}
}

func TestHandlerSubmit_Unauthorized(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest("POST", "/api/assessments/clinical", bytes.NewBufferString("{}"))
	rr := httptest.NewRecorder()
	handler.Submit(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestHandlerSubmit_InvalidBody(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := signedInRequest("POST", "/api/assessments/clinical", []byte("not json"))
	rr := httptest.NewRecorder()
	handler.Submit(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestHandlerSubmit_UpstreamUnavailable(t *testing.T) {
	mockSvc := &mockService{
		assessFunc: func(ctx context.Context, patientID string, obs Observation) (*Assessment, error) {
			return nil, upstream.ErrUnavailable
		},
	}
	handler := NewHandler(mockSvc)

	req := signedInRequest("POST", "/api/assessments/clinical", []byte("{}"))
	rr := httptest.NewRecorder()
	handler.Submit(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rr.Code)
	}
}

func TestHandlerSubmit_UpstreamAPIError(t *testing.T) {
	mockSvc := &mockService{
		assessFunc: func(ctx context.Context, patientID string, obs Observation) (*Assessment, error) {
			return nil, &upstream.APIError{StatusCode: 400, Message: "missing clinical data"}
		},
	}
	handler := NewHandler(mockSvc)

	req := signedInRequest("POST", "/api/assessments/clinical", []byte("{}"))
	rr := httptest.NewRecorder()
	handler.Submit(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", rr.Code)
	}
}
