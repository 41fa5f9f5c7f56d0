package handlers

import (
	"time"

	"github.com/alainchristian/kwa-mugisha/internal/contact"
)

// ContactView is the status shown under the contact form. ReceivedOn is the
// localized date of an accepted submission.
type ContactView struct {
	Success    bool
	Message    string
	Form       contact.Form
	ReceivedAt time.Time
	ReceivedOn string
}

// NoticeView is the add-to-cart acknowledgement.
type NoticeView struct {
	ProductID string
	Message   string
}
