package packets

// LoginRequest is checked as typed: no trimming, no case folding.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DashboardRequest edits any subset of the drafts. Values are not validated.
type DashboardRequest struct {
	CrowdCount *int    `json:"crowd_count"`
	WaitTime   *string `json:"wait_time"`
	AlertDraft *string `json:"alert_draft"`
}
