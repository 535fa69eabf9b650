package types

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
)

// ClientRecord is the contact data kept for one client. Records are created
// once and never updated; ClientID is the external, caller-supplied key.
type ClientRecord struct {
	ClientID  string `json:"client_id" yaml:"client_id"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Phone     string `json:"phone" yaml:"phone"`
	Email     string `json:"email" yaml:"email"`
}

const (
	FieldClientID  = "client_id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldPhone     = "phone"
	FieldEmail     = "email"

	NameMinLength  = 1
	NameMaxLength  = 50
	PhoneMinLength = 7
	PhoneMaxLength = 20
)

// Fields lists the record fields in the order they are validated and reported.
var Fields = []string{FieldClientID, FieldFirstName, FieldLastName, FieldPhone, FieldEmail}

// ParseClientRecord builds a ClientRecord from raw decoded input. Every field
// must be present and hold a string; unknown keys are ignored. All violations
// are collected and returned as ValidationErrors.
func ParseClientRecord(fields map[string]any) (ClientRecord, error) {
	values := make(map[string]string, len(Fields))
	var errs ValidationErrors
	for _, name := range Fields {
		raw, ok := fields[name]
		if !ok {
			errs = append(errs, &ValidationError{Field: name, Reason: "Field required", Kind: KindMissing})
			continue
		}
		s, ok := raw.(string)
		if !ok {
			errs = append(errs, &ValidationError{Field: name, Reason: "Input should be a valid string", Kind: KindStringType})
			continue
		}
		if ve := checkField(name, s); ve != nil {
			errs = append(errs, ve)
			continue
		}
		values[name] = s
	}
	if len(errs) > 0 {
		return ClientRecord{}, errs
	}
	return ClientRecord{
		ClientID:  values[FieldClientID],
		FirstName: values[FieldFirstName],
		LastName:  values[FieldLastName],
		Phone:     values[FieldPhone],
		Email:     values[FieldEmail],
	}, nil
}

// Validate checks an already typed record against the same rules as
// ParseClientRecord.
func (c ClientRecord) Validate() error {
	var errs ValidationErrors
	for name, v := range c.fieldValues() {
		if ve := checkField(name, v); ve != nil {
			errs = append(errs, ve)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Map returns the record as raw input, the inverse of ParseClientRecord.
func (c ClientRecord) Map() map[string]any {
	m := make(map[string]any, len(Fields))
	for name, v := range c.fieldValues() {
		m[name] = v
	}
	return m
}

func (c ClientRecord) fieldValues() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		vals := [...]string{c.ClientID, c.FirstName, c.LastName, c.Phone, c.Email}
		for i, name := range Fields {
			if !yield(name, vals[i]) {
				return
			}
		}
	}
}

func checkField(name, v string) *ValidationError {
	if !utf8.ValidString(v) {
		return &ValidationError{Field: name, Reason: "Input should be a valid string, unable to parse raw data as a unicode string", Kind: KindStringUnicode}
	}
	switch name {
	case FieldClientID:
		if v == "" {
			return &ValidationError{Field: name, Reason: "String should have at least 1 character", Kind: KindStringTooShort}
		}
	case FieldFirstName, FieldLastName:
		return checkLength(name, v, NameMinLength, NameMaxLength)
	case FieldPhone:
		return checkLength(name, v, PhoneMinLength, PhoneMaxLength)
	case FieldEmail:
		return checkEmail(v)
	}
	return nil
}

func checkLength(name, v string, minLen, maxLen int) *ValidationError {
	n := utf8.RuneCountInString(v)
	if n < minLen {
		return &ValidationError{Field: name, Reason: fmt.Sprintf("String should have at least %d %s", minLen, plural(minLen)), Kind: KindStringTooShort}
	}
	if n > maxLen {
		return &ValidationError{Field: name, Reason: fmt.Sprintf("String should have at most %d %s", maxLen, plural(maxLen)), Kind: KindStringTooLong}
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "character"
	}
	return "characters"
}

// checkEmail requires local-part "@" domain with an inner dot in the domain,
// then defers the full address grammar to govalidator.
func checkEmail(v string) *ValidationError {
	invalid := func(detail string) *ValidationError {
		return &ValidationError{
			Field:  FieldEmail,
			Reason: "value is not a valid email address: " + detail,
			Kind:   KindValueError,
		}
	}
	at := strings.LastIndexByte(v, '@')
	if at < 0 {
		return invalid("an email address must have an @-sign")
	}
	local, domain := v[:at], v[at+1:]
	if local == "" {
		return invalid("there must be something before the @-sign")
	}
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return invalid("the part after the @-sign is not a valid domain name")
	}
	if !govalidator.IsEmail(v) {
		return invalid("the email address is not valid")
	}
	return nil
}
