package gateway

import "github.com/saturnino-fabrica-de-software/facerecon/internal/domain"

// userPayload is the backend's user object.
type userPayload struct {
	ID             string   `json:"id,omitempty"`
	Nombre         string   `json:"nombre"`
	Apellido       string   `json:"apellido"`
	Email          *string  `json:"email"`
	Telefono       *string  `json:"telefono"`
	Requisitoriado bool     `json:"requisitoriado"`
	URLFoto        *string  `json:"url_foto,omitempty"`
	Confidence     *float64 `json:"confidence,omitempty"`
	Distance       *float64 `json:"distance,omitempty"`
}

func (p userPayload) toDomain() domain.User {
	return domain.User{
		ID:         p.ID,
		GivenName:  p.Nombre,
		FamilyName: p.Apellido,
		Email:      deref(p.Email),
		Phone:      deref(p.Telefono),
		Wanted:     p.Requisitoriado,
		PhotoRef:   deref(p.URLFoto),
		Confidence: p.Confidence,
		Distance:   p.Distance,
	}
}

// userRequest is the JSON body of PUT /usuarios/{id}.
type userRequest struct {
	Nombre         string `json:"nombre"`
	Apellido       string `json:"apellido"`
	Email          string `json:"email"`
	Telefono       string `json:"telefono"`
	Requisitoriado bool   `json:"requisitoriado"`
}

func newUserRequest(f domain.UserFields) userRequest {
	return userRequest{
		Nombre:         f.GivenName,
		Apellido:       f.FamilyName,
		Email:          f.Email,
		Telefono:       f.Phone,
		Requisitoriado: f.Wanted,
	}
}

// recognizeResponse from POST /recognize
type recognizeResponse struct {
	Success        bool         `json:"success"`
	User           *userPayload `json:"user,omitempty"`
	Message        *string      `json:"message,omitempty"`
	Distance       *float64     `json:"distance,omitempty"`
	Threshold      *float64     `json:"threshold,omitempty"`
	AlertTriggered bool         `json:"alert_triggered"`
}

// toDomain keeps the matched user only when the backend reports a match,
// so MatchedUser is present exactly when Matched is true.
func (r recognizeResponse) toDomain() domain.Recognition {
	out := domain.Recognition{
		Matched:   r.Success && r.User != nil,
		Message:   deref(r.Message),
		Distance:  r.Distance,
		Threshold: r.Threshold,
		AlertFlag: r.AlertTriggered,
	}
	if out.Matched {
		u := r.User.toDomain()
		out.MatchedUser = &u
	}
	return out
}

// healthResponse from GET /health
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DeleteAck from DELETE /usuarios/{id}
type DeleteAck struct {
	Message string `json:"message"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
