package domain

// Recognition is the outcome of a single recognize call.
type Recognition struct {
	Matched     bool     `json:"matched"`
	MatchedUser *User    `json:"matched_user,omitempty"`
	Message     string   `json:"message,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
	Threshold   *float64 `json:"threshold,omitempty"`
	AlertFlag   bool     `json:"alert_flag"`
}

// EffectiveAlert is true when the server raised an alert or the matched user is wanted.
func (r Recognition) EffectiveAlert() bool {
	return r.AlertFlag || (r.MatchedUser != nil && r.MatchedUser.Wanted)
}

// HealthStatus is the payload of the backend health check.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
