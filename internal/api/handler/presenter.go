package handler

import (
	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/gateway"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/store"
)

// UserResponse is a user ready for display: the photo reference is resolved
// to a fetchable URL and initials are provided as an avatar fallback.
type UserResponse struct {
	ID         string   `json:"id" yaml:"id"`
	GivenName  string   `json:"given_name" yaml:"given_name"`
	FamilyName string   `json:"family_name" yaml:"family_name"`
	FullName   string   `json:"full_name" yaml:"full_name"`
	Initials   string   `json:"initials" yaml:"initials"`
	Email      string   `json:"email,omitempty" yaml:"email,omitempty"`
	Phone      string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Wanted     bool     `json:"wanted" yaml:"wanted"`
	PhotoURL   string   `json:"photo_url,omitempty" yaml:"photo_url,omitempty"`
	Confidence *float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Distance   *float64 `json:"distance,omitempty" yaml:"distance,omitempty"`
}

type RecognitionResponse struct {
	Matched     bool          `json:"matched" yaml:"matched"`
	MatchedUser *UserResponse `json:"matched_user,omitempty" yaml:"matched_user,omitempty"`
	Message     string        `json:"message,omitempty" yaml:"message,omitempty"`
	Distance    *float64      `json:"distance,omitempty" yaml:"distance,omitempty"`
	Threshold   *float64      `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	AlertFlag   bool          `json:"alert_flag" yaml:"alert_flag"`
}

type StateResponse struct {
	Version         uint64               `json:"version" yaml:"version"`
	Loading         bool                 `json:"loading" yaml:"loading"`
	Users           []UserResponse       `json:"users" yaml:"users"`
	LastRecognition *RecognitionResponse `json:"last_recognition,omitempty" yaml:"last_recognition,omitempty"`
	ErrorMessage    string               `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	AlertActive     bool                 `json:"alert_active" yaml:"alert_active"`
	Notice          *store.Notice        `json:"notice,omitempty" yaml:"notice,omitempty"`
	Health          *domain.HealthStatus `json:"health,omitempty" yaml:"health,omitempty"`
	SelectedUser    *UserResponse        `json:"selected_user,omitempty" yaml:"selected_user,omitempty"`
	LastUpdatedUser *UserResponse        `json:"last_updated_user,omitempty" yaml:"last_updated_user,omitempty"`
}

// Presenter renders snapshots against one backend base URL.
type Presenter struct {
	baseURL string
}

func NewPresenter(baseURL string) *Presenter {
	return &Presenter{baseURL: baseURL}
}

func (p *Presenter) State(s store.ViewState) StateResponse {
	users := make([]UserResponse, 0, len(s.Users))
	for _, u := range s.Users {
		users = append(users, p.User(u))
	}

	resp := StateResponse{
		Version:         s.Version,
		Loading:         s.Loading,
		Users:           users,
		ErrorMessage:    s.ErrorMessage,
		AlertActive:     s.AlertActive,
		Notice:          s.Notice,
		Health:          s.Health,
		SelectedUser:    p.userPtr(s.SelectedUser),
		LastUpdatedUser: p.userPtr(s.LastUpdatedUser),
	}

	if r := s.LastRecognition; r != nil {
		resp.LastRecognition = &RecognitionResponse{
			Matched:     r.Matched,
			MatchedUser: p.userPtr(r.MatchedUser),
			Message:     r.Message,
			Distance:    r.Distance,
			Threshold:   r.Threshold,
			AlertFlag:   r.AlertFlag,
		}
	}
	return resp
}

func (p *Presenter) User(u domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		GivenName:  u.GivenName,
		FamilyName: u.FamilyName,
		FullName:   u.FullName(),
		Initials:   u.Initials(),
		Email:      u.Email,
		Phone:      u.Phone,
		Wanted:     u.Wanted,
		PhotoURL:   gateway.ResolveImageURL(p.baseURL, u.PhotoRef),
		Confidence: u.Confidence,
		Distance:   u.Distance,
	}
}

func (p *Presenter) userPtr(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	r := p.User(*u)
	return &r
}
