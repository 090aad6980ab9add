package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Client talks to the external CKD prediction API. Every call is a
// single attempt with no retry; cancellation flows through ctx. The
// http.Client carries no timeout because model inference can be slow.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a prediction API client
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{},
	}
}

// Login authenticates a user against the prediction API
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.postJSON(ctx, "/api/auth/login", Credentials{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account in the prediction API
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var result AuthResult
	err := c.postJSON(ctx, "/api/auth/register", req, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PredictTabular submits normalized clinical data to the random-forest
// model.
func (c *Client) PredictTabular(ctx context.Context, patientID string, clinical any) (*TabularResult, error) {
	body := struct {
		PatientID    string `json:"patient_id"`
		ClinicalData any    `json:"clinical_data"`
	}{PatientID: patientID, ClinicalData: clinical}

	var result TabularResult
	if err := c.postJSON(ctx, "/api/predictions/rf", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PredictCT uploads a CT scan for CNN analysis. The request is
// multipart and the Content-Type header is left to the multipart
// writer so the boundary is set correctly.
func (c *Client) PredictCT(ctx context.Context, patientID, filename string, file io.Reader) (*CTResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy scan data: %w", err)
	}
	if err := writer.WriteField("patient_id", patientID); err != nil {
		return nil, fmt.Errorf("failed to write patient field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/predict_ct", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.decodeError(resp)
	}

	var result CTResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode CT prediction: %w", err)
	}
	return &result, nil
}

// ForecastProgression asks the RNN model for a stage progression
// forecast based on the patient's stored history.
func (c *Client) ForecastProgression(ctx context.Context, patientID string) (*ForecastResult, error) {
	body := struct {
		PatientID string `json:"patient_id"`
	}{PatientID: patientID}

	var result ForecastResult
	if err := c.postJSON(ctx, "/api/predictions/rnn", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchHistory retrieves all stored assessments for a patient.
func (c *Client) FetchHistory(ctx context.Context, patientID string) ([]HistoryEntry, error) {
	historyURL := fmt.Sprintf("%s/api/predictions/history/%s", c.baseURL, url.PathEscape(patientID))

	req, err := http.NewRequestWithContext(ctx, "GET", historyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.decodeError(resp)
	}

	var result struct {
		History []HistoryEntry `json:"history"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return result.History, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError turns a non-2xx answer into an APIError, preferring the
// body's "message", then "error", then the plain status text.
func (c *Client) decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	log.Printf("[ERROR] Prediction API returned %d: %s", resp.StatusCode, string(body))

	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	message := ""
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			message = parsed.Message
		} else if parsed.Error != "" {
			message = parsed.Error
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
