// Package validation defines the per-field acceptance predicates for the
// order intake form. Each rule is a pure function from a raw field value to a
// user-facing rejection message; an empty message means the value passed.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-intake/pkg/draft"
)

const (
	minNameLength    = 2
	maxNameLength    = 50
	minMobileDigits  = 10
	maxMobileDigits  = 12
	maxEmailLength   = 100
	minAddressLength = 5
	maxAddressLength = 200
	minPostCodeLen   = 3
	maxPostCodeLen   = 10
	maxHouseNumber   = 10
	minAgeYears      = 5
	maxDebitDay      = 30

	dateOfBirthLayout = "2006-01-02"
)

var (
	namePattern       = regexp.MustCompile(`^[A-Za-z' -]+$`)
	mobilePattern     = regexp.MustCompile(`^\d{10,12}$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postCodePattern   = regexp.MustCompile(`^[A-Za-z0-9 -]+$`)
	sortCodePattern   = regexp.MustCompile(`^\d{6}$`)
	accountPattern    = regexp.MustCompile(`^\d{8}$`)
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCvvPattern    = regexp.MustCompile(`^\d{3}$`)
)

// Rule validates a single raw field value. Now is the reference time for
// date-sensitive rules; implementations must not consult any other state.
type Rule func(value string, now time.Time) string

// Optional wraps a rule so the empty string always passes. Optional fields are
// validated only when the customer filled them in.
func Optional(rule Rule) Rule {
	return func(value string, now time.Time) string {
		if strings.TrimSpace(value) == "" {
			return ""
		}
		return rule(value, now)
	}
}

// Rules maps every canonical field name to its acceptance rule. The map is
// read-only after init.
var Rules = map[string]Rule{
	draft.FieldFirstName:    nameRule("First name"),
	draft.FieldLastName:     nameRule("Last name"),
	draft.FieldEmail:        emailRule,
	draft.FieldMobileNumber: mobileRule,
	draft.FieldDateOfBirth:  dateOfBirthRule,

	draft.FieldAddress:     addressRule,
	draft.FieldPostCode:    postCodeRule,
	draft.FieldHouseNumber: houseNumberRule,

	draft.FieldProduct: requiredRule("Please select a device"),
	draft.FieldColor:   requiredRule("Please select a colour"),
	draft.FieldStorage: requiredRule("Please select a storage option"),
	draft.FieldNetwork: requiredRule("Please select a network"),

	draft.FieldDirectDebitDay: Optional(directDebitDayRule),
	draft.FieldSortCode:       Optional(patternRule(sortCodePattern, "Sort code must be exactly 6 digits")),
	draft.FieldAccountNumber:  Optional(patternRule(accountPattern, "Account number must be exactly 8 digits")),
	draft.FieldNameOnCard:     Optional(noopRule),
	draft.FieldTimeWithBank:   Optional(noopRule),

	draft.FieldCardNumber: Optional(patternRule(cardNumberPattern, "Card number must be exactly 16 digits")),
	draft.FieldCardExpiry: Optional(patternRule(cardExpiryPattern, "Expiry must be in MM/YY format")),
	draft.FieldCardCvv:    Optional(patternRule(cardCvvPattern, "CVV must be exactly 3 digits")),
}

func nameRule(label string) Rule {
	return func(value string, _ time.Time) string {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return label + " is required"
		}
		if len(trimmed) < minNameLength || len(trimmed) > maxNameLength {
			return fmt.Sprintf("%s must be between %d and %d characters", label, minNameLength, maxNameLength)
		}
		if !namePattern.MatchString(trimmed) {
			return label + " may only contain letters, spaces, hyphens and apostrophes"
		}
		return ""
	}
}

func emailRule(value string, _ time.Time) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "Email is required"
	}
	if len(trimmed) > maxEmailLength {
		return fmt.Sprintf("Email must be %d characters or fewer", maxEmailLength)
	}
	if !emailPattern.MatchString(trimmed) {
		return "Enter a valid email address"
	}
	return ""
}

func mobileRule(value string, _ time.Time) string {
	if strings.TrimSpace(value) == "" {
		return "Mobile number is required"
	}
	if !mobilePattern.MatchString(value) {
		return fmt.Sprintf("Mobile number must be %d to %d digits", minMobileDigits, maxMobileDigits)
	}
	return ""
}

func dateOfBirthRule(value string, now time.Time) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "Date of birth is required"
	}
	dob, err := time.Parse(dateOfBirthLayout, trimmed)
	if err != nil {
		return "Enter a valid date of birth"
	}
	if dob.After(now.AddDate(-minAgeYears, 0, 0)) {
		return fmt.Sprintf("Date of birth must be at least %d years ago", minAgeYears)
	}
	return ""
}

func addressRule(value string, _ time.Time) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "Address is required"
	}
	if len(trimmed) < minAddressLength || len(trimmed) > maxAddressLength {
		return fmt.Sprintf("Address must be between %d and %d characters", minAddressLength, maxAddressLength)
	}
	return ""
}

func postCodeRule(value string, _ time.Time) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "Postcode is required"
	}
	if len(trimmed) < minPostCodeLen || len(trimmed) > maxPostCodeLen {
		return fmt.Sprintf("Postcode must be between %d and %d characters", minPostCodeLen, maxPostCodeLen)
	}
	if !postCodePattern.MatchString(trimmed) {
		return "Postcode may only contain letters, numbers, spaces and hyphens"
	}
	return ""
}

func houseNumberRule(value string, _ time.Time) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "House number is required"
	}
	if len(trimmed) > maxHouseNumber {
		return fmt.Sprintf("House number must be %d characters or fewer", maxHouseNumber)
	}
	return ""
}

func requiredRule(message string) Rule {
	return func(value string, _ time.Time) string {
		if strings.TrimSpace(value) == "" {
			return message
		}
		return ""
	}
}

func directDebitDayRule(value string, _ time.Time) string {
	day, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return "Direct debit day must be a number"
	}
	if day < 1 || day > maxDebitDay {
		return fmt.Sprintf("Direct debit day must be between 1 and %d", maxDebitDay)
	}
	return ""
}

func patternRule(pattern *regexp.Regexp, message string) Rule {
	return func(value string, _ time.Time) string {
		if !pattern.MatchString(strings.TrimSpace(value)) {
			return message
		}
		return ""
	}
}

func noopRule(string, time.Time) string {
	return ""
}
