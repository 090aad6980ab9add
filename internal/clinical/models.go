package clinical

// Observation is the clinical form exactly as submitted. Every field
// arrives as a string and any field may be blank; normalization
// decides what blanks mean.
type Observation struct {
	SerumCreatinine  string `json:"serum_creatinine"`
	GFR              string `json:"gfr"`
	BUN              string `json:"bun"`
	SerumCalcium     string `json:"serum_calcium"`
	BloodPressure    string `json:"blood_pressure"`
	WaterIntake      string `json:"water_intake"`
	FamilyHistory    string `json:"family_history"`
	WeightChanges    string `json:"weight_changes"`
	StressLevel      string `json:"stress_level"`
	Smoking          string `json:"smoking"`
	Alcohol          string `json:"alcohol"`
	PainkillerUsage  string `json:"painkiller_usage"`
	Diet             string `json:"diet"`
	PhysicalActivity string `json:"physical_activity"`
}

// NormalizedObservation is the payload forwarded to the prediction
// API. Field names match the model's training columns.
type NormalizedObservation struct {
	SerumCreatinine  float64 `json:"serum_creatinine"`
	GFR              float64 `json:"gfr"`
	BUN              float64 `json:"bun"`
	SerumCalcium     float64 `json:"serum_calcium"`
	BloodPressure    float64 `json:"blood_pressure"`
	WaterIntake      float64 `json:"water_intake"`
	FamilyHistory    string  `json:"family_history"`
	WeightChanges    string  `json:"weight_changes"`
	StressLevel      string  `json:"stress_level"`
	Smoking          string  `json:"smoking"`
	Alcohol          string  `json:"alcohol"`
	PainkillerUsage  string  `json:"painkiller_usage"`
	Diet             string  `json:"diet"`
	PhysicalActivity string  `json:"physical_activity"`
}

// Assessment is the display-ready result of a clinical submission.
type Assessment struct {
	Risk       string  `json:"risk"`
	Summary    string  `json:"summary"`
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Stage      int     `json:"stage"`
	Message    string  `json:"message,omitempty"`
}
