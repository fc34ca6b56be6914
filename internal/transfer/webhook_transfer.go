package transfer

type ReviewPayload struct {
	ContentCalendarID string `json:"contentCalendarId"`
	CompanyID         string `json:"companyId"`
	Status            string `json:"status"`
}

type GeneratePayload struct {
	ContentCalendarID string `json:"contentCalendarId"`
	CompanyID         string `json:"companyId"`
}

type BrandRulesPayload struct {
	CompanyID  string `json:"companyId"`
	BrandKbID  string `json:"brandKbId"`
	FormAnswer string `json:"formAnswer"`
}

// GenerationResult is what the external generation collaborator returns for a
// review or generation step. The payload is opaque text plus the status the
// step resolved to.
type GenerationResult struct {
	Status string `json:"status"`
	Text   string `json:"text"`
	Notes  string `json:"notes"`
}
