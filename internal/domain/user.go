package domain

import (
	"errors"
	"strings"
	"unicode"
)

// User is a registered identity in the remote directory.
// Confidence and Distance are only populated on users returned by a recognition call.
type User struct {
	ID         string   `json:"id,omitempty"`
	GivenName  string   `json:"given_name"`
	FamilyName string   `json:"family_name"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Wanted     bool     `json:"wanted"`
	PhotoRef   string   `json:"photo_ref,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Distance   *float64 `json:"distance,omitempty"`
}

// FullName returns "given family".
func (u User) FullName() string {
	return strings.TrimSpace(u.GivenName + " " + u.FamilyName)
}

// Initials returns up to two upper-cased initials taken from the first two words of the full name.
func (u User) Initials() string {
	return Initials(u.FullName())
}

// Initials extracts initials from a full name, used as an avatar fallback.
func Initials(fullName string) string {
	var b strings.Builder
	for i, word := range strings.Fields(fullName) {
		if i == 2 {
			break
		}
		r := []rune(word)
		b.WriteRune(unicode.ToUpper(r[0]))
	}
	return b.String()
}

// UserFields are the editable attributes submitted on create and update.
type UserFields struct {
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Wanted     bool   `json:"wanted"`
}

var (
	ErrGivenNameRequired  = errors.New("given name is required")
	ErrFamilyNameRequired = errors.New("family name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPhoneRequired      = errors.New("phone is required")
)

// Validate checks the fields a registration form must fill before submission.
func (f UserFields) Validate() error {
	var errs []error
	if strings.TrimSpace(f.GivenName) == "" {
		errs = append(errs, ErrGivenNameRequired)
	}
	if strings.TrimSpace(f.FamilyName) == "" {
		errs = append(errs, ErrFamilyNameRequired)
	}
	if strings.TrimSpace(f.Email) == "" {
		errs = append(errs, ErrEmailRequired)
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs = append(errs, ErrPhoneRequired)
	}
	return errors.Join(errs...)
}

// Trimmed returns a copy with surrounding whitespace removed from every string field.
func (f UserFields) Trimmed() UserFields {
	return UserFields{
		GivenName:  strings.TrimSpace(f.GivenName),
		FamilyName: strings.TrimSpace(f.FamilyName),
		Email:      strings.TrimSpace(f.Email),
		Phone:      strings.TrimSpace(f.Phone),
		Wanted:     f.Wanted,
	}
}
