package store

import (
	"slices"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
)

// Notice is a one-shot confirmation shown to the user.
type Notice struct {
	Message string `json:"message"`
	Visible bool   `json:"visible"`
	Success bool   `json:"success"`
}

// ViewState is one snapshot of the UI state. Snapshots handed out by the
// Store are deep copies; mutating one never affects the Store or other readers.
type ViewState struct {
	Version         uint64               `json:"version"`
	Loading         bool                 `json:"loading"`
	Users           []domain.User        `json:"users"`
	LastRecognition *domain.Recognition  `json:"last_recognition,omitempty"`
	ErrorMessage    string               `json:"error_message,omitempty"`
	AlertActive     bool                 `json:"alert_active"`
	Notice          *Notice              `json:"notice,omitempty"`
	Health          *domain.HealthStatus `json:"health,omitempty"`
	SelectedUser    *domain.User         `json:"selected_user,omitempty"`
	LastUpdatedUser *domain.User         `json:"last_updated_user,omitempty"`
}

// HasError reports whether an error message is set.
func (s ViewState) HasError() bool {
	return s.ErrorMessage != ""
}

// NoticeVisible reports whether a notice is currently shown.
func (s ViewState) NoticeVisible() bool {
	return s.Notice != nil && s.Notice.Visible
}

func (s ViewState) clone() ViewState {
	out := s
	out.Users = cloneUsers(s.Users)
	if s.LastRecognition != nil {
		r := *s.LastRecognition
		r.MatchedUser = cloneUser(r.MatchedUser)
		r.Distance = cloneFloat(r.Distance)
		r.Threshold = cloneFloat(r.Threshold)
		out.LastRecognition = &r
	}
	if s.Notice != nil {
		n := *s.Notice
		out.Notice = &n
	}
	if s.Health != nil {
		h := *s.Health
		out.Health = &h
	}
	out.SelectedUser = cloneUser(s.SelectedUser)
	out.LastUpdatedUser = cloneUser(s.LastUpdatedUser)
	return out
}

func cloneUsers(users []domain.User) []domain.User {
	if users == nil {
		return []domain.User{}
	}
	out := slices.Clone(users)
	for i := range out {
		out[i].Confidence = cloneFloat(out[i].Confidence)
		out[i].Distance = cloneFloat(out[i].Distance)
	}
	return out
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Confidence = cloneFloat(u.Confidence)
	c.Distance = cloneFloat(u.Distance)
	return &c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
