package imaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ckd-predict/portal-service/internal/session"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

// mockService implements ServiceInterface for testing
type mockService struct {
	analyzeFunc func(ctx context.Context, patientID, filename string, file io.Reader) (*ScanResult, error)
}

func (m *mockService) Analyze(ctx context.Context, patientID, filename string, file io.Reader) (*ScanResult, error) {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, patientID, filename, file)
	}
	return nil, errors.New("not implemented")
}

func multipartScanRequest(t *testing.T, fieldName, filename string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	part.Write([]byte("fake-scan-bytes"))
	writer.Close()

	req := httptest.NewRequest("POST", "/api/assessments/ct", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := &session.Record{
		ID:      "sess-1",
		Profile: session.Profile{Email: "jane@example.com"},
	}
	return req.WithContext(session.ContextWithRecord(req.Context(), rec))
}

func TestHandlerUpload_Success(t *testing.T) {
	mockSvc := &mockService{
		analyzeFunc: func(ctx context.Context, patientID, filename string, file io.Reader) (*ScanResult, error) {
			if patientID != "jane@example.com" {
				t.Errorf("Expected patient jane@example.com, got %s", patientID)
			}
			if filename != "scan.png" {
				t.Errorf("Expected filename scan.png, got %s", filename)
			}
			data, _ := io.ReadAll(file)
			if string(data) != "fake-scan-bytes" {
				t.Errorf("Scan bytes not forwarded intact")
			}
			return &ScanResult{Diagnosis: "CKD Detected", Confidence: 91.3, Heatmap: "base64data"}, nil
		},
	}
	handler := NewHandler(mockSvc)

	req := multipartScanRequest(t, "image", "scan.png")
	rr := httptest.NewRecorder()
	handler.Upload(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var got ScanResult
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.Diagnosis != "CKD Detected" || got.Heatmap != "base64data" {
		t.Errorf("Unexpected result: %+v", got)
	}
}

func TestHandlerUpload_Unauthorized(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest("POST", "/api/assessments/ct", nil)
	rr := httptest.NewRecorder()
	handler.Upload(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestHandlerUpload_MissingFile(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := multipartScanRequest(t, "wrong_field", "scan.png")
	rr := httptest.NewRecorder()
	handler.Upload(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestHandlerUpload_UpstreamUnavailable(t *testing.T) {
	mockSvc := &mockService{
		analyzeFunc: func(ctx context.Context, patientID, filename string, file io.Reader) (*ScanResult, error) {
			return nil, upstream.ErrUnavailable
		},
	}
	handler := NewHandler(mockSvc)

	req := multipartScanRequest(t, "image", "scan.png")
	rr := httptest.NewRecorder()
	handler.Upload(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rr.Code)
	}
}
