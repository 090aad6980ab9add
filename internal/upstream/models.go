package upstream

// User is the account record the prediction API returns on login and
// registration.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Age      *int   `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// Credentials for login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest for account creation
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
	Age      *int   `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// AuthResult is the upstream answer to login and registration.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TabularResult is the random-forest answer to a clinical submission.
type TabularResult struct {
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Stage      int     `json:"stage"`
	Message    string  `json:"message,omitempty"`
}

// CTResult is the CNN answer to a CT scan upload. Heatmap is a base64
// image and may be empty.
type CTResult struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Heatmap    string  `json:"heatmap,omitempty"`
}

// ForecastResult is the RNN progression forecast.
type ForecastResult struct {
	PredictedStage    int     `json:"predicted_stage"`
	StageLabel        string  `json:"predicted_stage_label"`
	Confidence        float64 `json:"confidence"`
	DaysToProgression int     `json:"days_to_progression"`
	HistoryUsed       int     `json:"history_used"`
}

// HistoryEntry is one stored assessment. The backend has grown several
// timestamp and type field names over time, so all are kept and the
// portal picks the first one present.
type HistoryEntry struct {
	ID           string         `json:"id,omitempty"`
	Type         string         `json:"type,omitempty"`
	EntryType    string         `json:"entry_type,omitempty"`
	Timestamp    string         `json:"timestamp,omitempty"`
	VisitDate    string         `json:"visit_date,omitempty"`
	CreatedAt    string         `json:"created_at,omitempty"`
	Prediction   map[string]any `json:"prediction,omitempty"`
	ClinicalData map[string]any `json:"clinical_data,omitempty"`
}

// DisplayType returns the entry kind with the backend's fallbacks.
func (e HistoryEntry) DisplayType() string {
	if e.Type != "" {
		return e.Type
	}
	if e.EntryType != "" {
		return e.EntryType
	}
	return "Update"
}

// DisplayTimestamp returns the first timestamp field present.
func (e HistoryEntry) DisplayTimestamp() string {
	if e.Timestamp != "" {
		return e.Timestamp
	}
	if e.VisitDate != "" {
		return e.VisitDate
	}
	return e.CreatedAt
}
