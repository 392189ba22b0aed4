package validation

import (
	"time"

	"github.com/goliatone/go-intake/pkg/draft"
)

// Field validates a single field value and returns the rejection message, or
// "" when the value passes. Unknown field names always pass; the form only
// submits canonical names and extra inputs must not block the customer.
func Field(name, value string, now time.Time) string {
	rule, ok := Rules[name]
	if !ok {
		return ""
	}
	return rule(value, now)
}

// Draft runs every rule against the supplied draft and returns the rejection
// messages keyed by field name. An empty map means the draft may be submitted.
func Draft(o draft.Order, now time.Time) map[string]string {
	errs := make(map[string]string)
	for _, field := range draft.Fields {
		if msg := Field(field, o.Get(field), now); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}
