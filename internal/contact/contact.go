// Package contact validates the shop's contact form. Accepted submissions are
// logged only; nothing is delivered.
package contact

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"

	"github.com/alainchristian/kwa-mugisha/internal/i18n"
)

var (
	ErrMissingField   = errors.New("contact: missing required field")
	ErrInvalidContact = errors.New("contact: contact is neither an email address nor a phone number")
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// optional +25 / 25 prefix followed by 9 or 10 digits, e.g. 0788123456
	phonePattern = regexp.MustCompile(`^(\+?25)?[0-9]{9,10}$`)
)

// Form is the raw form input.
type Form struct {
	Name        string
	ContactInfo string
	Message     string
}

// Trimmed returns f with surrounding whitespace removed from every field.
func (f Form) Trimmed() Form {
	return Form{
		Name:        strings.TrimSpace(f.Name),
		ContactInfo: strings.TrimSpace(f.ContactInfo),
		Message:     strings.TrimSpace(f.Message),
	}
}

// Validate checks f after trimming. Missing fields are reported before the
// contact format.
func (f Form) Validate() error {
	f = f.Trimmed()
	if f.Name == "" || f.ContactInfo == "" || f.Message == "" {
		return ErrMissingField
	}
	if !IsEmail(f.ContactInfo) && !IsPhone(f.ContactInfo) {
		return ErrInvalidContact
	}
	return nil
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool { return emailPattern.MatchString(s) }

// IsPhone reports whether s is a 9 or 10 digit number, optionally prefixed
// with 25 or +25.
func IsPhone(s string) bool { return phonePattern.MatchString(s) }

// Submission is an accepted contact request.
type Submission struct {
	ID          string
	Name        string
	ContactInfo string
	Message     string
	Locale      i18n.Locale
	ByEmail     bool
	ReceivedAt  time.Time
}

var policy = bluemonday.StrictPolicy()

// Accept validates f and turns it into a submission with markup stripped.
func Accept(f Form, l i18n.Locale, now time.Time) (Submission, error) {
	if err := f.Validate(); err != nil {
		return Submission{}, err
	}
	f = f.Trimmed()
	return Submission{
		ID:          ulid.Make().String(),
		Name:        policy.Sanitize(f.Name),
		ContactInfo: f.ContactInfo,
		Message:     policy.Sanitize(f.Message),
		Locale:      l,
		ByEmail:     IsEmail(f.ContactInfo),
		ReceivedAt:  now.UTC(),
	}, nil
}

// MessageKey maps a validation outcome to its translation key.
func MessageKey(err error) string {
	switch {
	case err == nil:
		return "contact.success"
	case errors.Is(err, ErrMissingField):
		return "contact.missing"
	case errors.Is(err, ErrInvalidContact):
		return "contact.invalid"
	default:
		return "contact.error"
	}
}
