package domain

// CaseFailure represents a failed test case parsed from runner output
type CaseFailure struct {
	CaseName string `json:"case_name"`           // Case title as the runner printed it
	Location string `json:"location,omitempty"`  // file:line:col of the case, when present
	Message  string `json:"message"`             // Error block following the failure header
}
