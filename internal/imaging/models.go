package imaging

// ScanResult is the display-ready outcome of a CT scan analysis.
// Heatmap is a base64 image and is only rendered when present.
type ScanResult struct {
	Diagnosis  string  `json:"diagnosis"`
	Confidence float64 `json:"confidence"`
	Heatmap    string  `json:"heatmap,omitempty"`
}
