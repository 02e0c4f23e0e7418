package domain

// Diagnosis is the parsed result of one analysis request: a narrative block
// plus an ordered list of product recommendations. It is constructed once per
// completed model invocation and never mutated in place.
type Diagnosis struct {
	AnalysisText    string           `json:"analysis"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommendation is one structured product suggestion recovered from the
// model's free-form output.
type Recommendation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Price       string `json:"price"`
}

// ScanRequest represents an analysis request from the client.
// Image is a base64 data URL (e.g. "data:image/jpeg;base64,...").
type ScanRequest struct {
	Image string `json:"image" binding:"required"`
}
