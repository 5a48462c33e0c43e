package validation

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
)

// Pure input checks. These run before any gateway or notification call and
// make no external calls themselves.

// Loose E.164 shape: optional +, 7 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func ValidateCustomer(c model.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return &ports.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if c.Contact.Email == "" && c.Contact.Phone == "" {
		return &ports.ValidationError{Field: "contact_info", Reason: "must carry an email or a phone"}
	}
	return nil
}

func ValidatePayment(p model.PaymentRequest) error {
	if strings.TrimSpace(p.Source) == "" {
		return &ports.ValidationError{Field: "source", Reason: "must not be empty"}
	}
	if p.Amount <= 0 {
		return &ports.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	return nil
}

// ResolveContactChannel decides the delivery medium exactly once. A
// well-formed email wins over a phone number; a record with neither usable
// field resolves to ChannelNone, which the pipeline treats as "skip
// notification", not as an error.
func ResolveContactChannel(contact model.ContactInfo) model.ContactChannel {
	if contact.Email != "" {
		if _, err := mail.ParseAddress(contact.Email); err == nil {
			return model.ContactChannel{Kind: model.ChannelEmail, Address: contact.Email}
		}
	}
	if contact.Phone != "" && phonePattern.MatchString(contact.Phone) {
		return model.ContactChannel{Kind: model.ChannelSMS, Address: contact.Phone}
	}
	return model.ContactChannel{Kind: model.ChannelNone}
}
