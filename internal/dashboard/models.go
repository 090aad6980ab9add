package dashboard

import "github.com/ckd-predict/portal-service/internal/session"

// NavItem is one entry in the dashboard navigation.
type NavItem struct {
	Section Section `json:"section"`
	Label   string  `json:"label"`
	Active  bool    `json:"active"`
}

// Feature is one of the product capability cards on the overview.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Overview is the static educational content of the main screen.
type Overview struct {
	Features    []Feature `json:"features"`
	RiskFactors []string  `json:"riskFactors"`
}

// View is the composed dashboard view model. A missing session yields
// Authenticated false with no user, which the client renders as the
// auth screens.
type View struct {
	ActiveSection Section          `json:"activeSection"`
	Navigation    []NavItem        `json:"navigation"`
	Authenticated bool             `json:"authenticated"`
	User          *session.Profile `json:"user,omitempty"`
	Overview      *Overview        `json:"overview,omitempty"`
}
