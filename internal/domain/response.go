package domain

// SourceStats carries per-source success counts and first-observed errors
type SourceStats struct {
	Counts map[string]int    `json:"counts"`
	Errors map[string]string `json:"errors,omitempty"`
}

// MultilingualInfo is present in the response only when the multilingual
// flag was set on the request
type MultilingualInfo struct {
	Requested  bool              `json:"requested"`
	Translated map[string]string `json:"translated,omitempty"`
}

// SearchResponse is the envelope of GET /api/search
type SearchResponse struct {
	Query              string                     `json:"query"`
	Multilingual       *MultilingualInfo          `json:"multilingual,omitempty"`
	TotalCount         int                        `json:"totalCount"`
	Results            map[EvidenceLevel][]Record `json:"results"`
	NationalGuidelines []GuidelineMatch           `json:"nationalGuidelines"`
	ClinicalQuestions  []CQMatch                  `json:"clinicalQuestions"`
	Sources            SourceStats                `json:"sources"`
	PatientVoice       []Record                   `json:"patientVoice,omitempty"`
}

// CQEvidenceResponse is the envelope of GET /api/cq/evidence
type CQEvidenceResponse struct {
	Results  []Record `json:"results"`
	Keywords []string `json:"keywords"`
	Query    string   `json:"query,omitempty"`
}

// CQGroup is one guideline with its clinical questions, for GET /api/cq/list
type CQGroup struct {
	Guideline Guideline          `json:"guideline"`
	CQs       []ClinicalQuestion `json:"cqs"`
}

// CQListResponse is the envelope of GET /api/cq/list
type CQListResponse struct {
	TotalGuidelines int       `json:"totalGuidelines"`
	TotalCQs        int       `json:"totalCQs"`
	Groups          []CQGroup `json:"groups"`
}
