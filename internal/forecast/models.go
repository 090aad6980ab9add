package forecast

// Forecast is the display-ready progression forecast.
type Forecast struct {
	PredictedStage    int     `json:"predictedStage"`
	StageLabel        string  `json:"stageLabel"`
	Confidence        float64 `json:"confidence"`
	DaysToProgression int     `json:"daysToProgression"`
	HistoryUsed       int     `json:"historyUsed"`
}
