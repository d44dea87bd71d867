package landing

import (
	"fmt"
	"net/mail"
	"strings"
)

// AcknowledgmentMessage is shown after every accepted submission
const AcknowledgmentMessage = "Thank you for your interest. Our team will contact you shortly."

// Contact form field names, shared by hosts and validation errors
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldInterest = "interest"
	FieldMessage  = "message"
)

// Interest is the visitor's selected area of interest. Empty means none selected.
type Interest string

const (
	InterestNone       Interest = ""
	InterestMarketing  Interest = "marketing"
	InterestAdvisory   Interest = "advisory"
	InterestDeals      Interest = "deals"
	InterestInvestment Interest = "investment"
	InterestOther      Interest = "other"
)

// Interests lists every selectable interest in display order, starting with none
var Interests = []Interest{
	InterestNone,
	InterestMarketing,
	InterestAdvisory,
	InterestDeals,
	InterestInvestment,
	InterestOther,
}

// Valid reports whether the interest is one of the enumerated values
func (i Interest) Valid() bool {
	for _, known := range Interests {
		if i == known {
			return true
		}
	}
	return false
}

// ParseInterest converts a form value to an Interest
func ParseInterest(s string) (Interest, error) {
	i := Interest(strings.ToLower(strings.TrimSpace(s)))
	if !i.Valid() {
		return InterestNone, fmt.Errorf("unknown interest %q", s)
	}
	return i, nil
}

// ContactInput holds the contact form field values
type ContactInput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Interest Interest `json:"interest"`
	Message  string   `json:"message"`
}

// IsZero reports whether every field is empty
func (in ContactInput) IsZero() bool {
	return in == ContactInput{}
}

// Validate checks the required fields, email syntax and interest.
// Returns nil or a *ValidationError listing every failing field.
func (in ContactInput) Validate() error {
	var fields []FieldError

	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, FieldError{Field: FieldName, Message: "name is required"})
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		fields = append(fields, FieldError{Field: FieldEmail, Message: "email is required"})
	} else if !validEmail(email) {
		fields = append(fields, FieldError{Field: FieldEmail, Message: "email address is not valid"})
	}

	if !in.Interest.Valid() {
		fields = append(fields, FieldError{Field: FieldInterest, Message: fmt.Sprintf("unknown interest %q", string(in.Interest))})
	}

	if strings.TrimSpace(in.Message) == "" {
		fields = append(fields, FieldError{Field: FieldMessage, Message: "message is required"})
	}

	if len(fields) > 0 {
		return &ValidationError{Type: ErrTypeValidation, Fields: fields}
	}
	return nil
}

// validEmail accepts a bare address only ("a@b.c"), not "Name <a@b.c>"
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// ContactForm is the contact section state: the current draft and the
// acknowledgment message, which is absent until the first accepted submission.
type ContactForm struct {
	draft     ContactInput
	status    string
	hasStatus bool
}

// Submit validates in and, if valid, sets the acknowledgment message and
// clears the draft. An invalid submission leaves the message untouched and
// keeps the values as the draft so they can be shown again.
func (f *ContactForm) Submit(in ContactInput) error {
	if err := in.Validate(); err != nil {
		f.draft = in
		return err
	}
	f.status = AcknowledgmentMessage
	f.hasStatus = true
	f.draft = ContactInput{}
	return nil
}

// Status returns the acknowledgment message and whether one is set
func (f ContactForm) Status() (string, bool) {
	return f.status, f.hasStatus
}

// Draft returns the current field values
func (f ContactForm) Draft() ContactInput {
	return f.draft
}
