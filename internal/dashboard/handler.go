package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/ckd-predict/portal-service/internal/session"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// View handles GET /api/dashboard. The section query parameter picks
// the active screen; anything else defaults to the main dashboard.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	active := ParseSection(r.URL.Query().Get("section"))

	view := View{
		ActiveSection: active,
		Navigation:    navigation(active),
	}
	if rec, ok := session.FromContext(r.Context()); ok {
		view.Authenticated = true
		view.User = &rec.Profile
	}
	if active == SectionDashboard {
		view.Overview = overviewContent()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func navigation(active Section) []NavItem {
	items := []NavItem{
		{Section: SectionDashboard, Label: "Dashboard"},
		{Section: SectionUpload, Label: "Upload Scan"},
		{Section: SectionHistory, Label: "History"},
		{Section: SectionProfile, Label: "Profile"},
	}
	for i := range items {
		items[i].Active = items[i].Section == active
	}
	return items
}

func overviewContent() *Overview {
	return &Overview{
		Features: []Feature{
			{
				Title:       "AI-Powered Analysis",
				Description: "Advanced machine learning algorithms analyze medical data for precise insights",
			},
			{
				Title:       "Instant Results",
				Description: "Get comprehensive risk assessment reports within minutes",
			},
			{
				Title:       "Secure & Private",
				Description: "Your medical data is encrypted and never shared with third parties",
			},
			{
				Title:       "Detailed Reports",
				Description: "Comprehensive insights with actionable recommendations",
			},
		},
		RiskFactors: []string{
			"Diabetes and high blood sugar levels",
			"High blood pressure (Hypertension)",
			"Family history of kidney disease",
			"Heart and blood vessel diseases",
			"Smoking and tobacco use",
			"Obesity and unhealthy diet",
			"Frequent use of pain medications",
		},
	}
}
