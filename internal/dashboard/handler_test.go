package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ckd-predict/portal-service/internal/session"
)

func TestParseSection(t *testing.T) {
	tests := []struct {
		input    string
		expected Section
	}{
		{"dashboard", SectionDashboard},
		{"history", SectionHistory},
		{"profile", SectionProfile},
		{"upload", SectionUpload},
		{"", SectionDashboard},
		{"settings", SectionDashboard},
		{"HISTORY", SectionDashboard},
	}
	for _, tt := range tests {
		if got := ParseSection(tt.input); got != tt.expected {
			t.Errorf("ParseSection(%q): expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestViewDefaultsToDashboard(t *testing.T) {
	handler := NewHandler()

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	rr := httptest.NewRecorder()
	handler.View(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var view View
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("Failed to decode view: %v", err)
	}
	if view.ActiveSection != SectionDashboard {
		t.Errorf("Expected dashboard section, got %s", view.ActiveSection)
	}
	if view.Overview == nil || len(view.Overview.Features) != 4 || len(view.Overview.RiskFactors) != 7 {
		t.Errorf("Expected overview content on dashboard section, got %+v", view.Overview)
	}
	if view.Authenticated {
		t.Error("Expected logged-out view without session")
	}
}

func TestViewWithSession(t *testing.T) {
	handler := NewHandler()

	req := httptest.NewRequest("GET", "/api/dashboard?section=history", nil)
	rec := &session.Record{
		ID:      "sess-1",
		Profile: session.Profile{Email: "jane@example.com", FullName: "Jane Doe"},
	}
	req = req.WithContext(session.ContextWithRecord(req.Context(), rec))
	rr := httptest.NewRecorder()
	handler.View(rr, req)

	var view View
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("Failed to decode view: %v", err)
	}
	if view.ActiveSection != SectionHistory {
		t.Errorf("Expected history section, got %s", view.ActiveSection)
	}
	if !view.Authenticated || view.User == nil || view.User.Email != "jane@example.com" {
		t.Errorf("Expected authenticated view, got %+v", view)
	}
	if view.Overview != nil {
		t.Error("Expected no overview content outside the dashboard section")
	}

	activeCount := 0
	for _, item := range view.Navigation {
		if item.Active {
			activeCount++
			if item.Section != SectionHistory {
				t.Errorf("Expected history nav item active, got %s", item.Section)
			}
		}
	}
	if activeCount != 1 {
		t.Errorf("Expected exactly one active nav item, got %d", activeCount)
	}
}
