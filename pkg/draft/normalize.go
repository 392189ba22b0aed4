package draft

import "strings"

const (
	ukLocalPrefix = "07"
	ukIntlPrefix  = "447"

	ukLocalMax = 11
	ukIntlMax  = 12
)

// NormalizeMobile reduces raw mobile-number input to its canonical stored
// form: digits only, truncated to the UK length for recognised prefixes
// ("07..." to 11 digits, "447..." to 12). The function is idempotent, so
// re-applying the stored value never produces further change.
func NormalizeMobile(raw string) string {
	cleaned := stripNonDigits(raw)

	switch {
	case strings.HasPrefix(cleaned, ukLocalPrefix) && len(cleaned) > ukLocalMax:
		return cleaned[:ukLocalMax]
	case strings.HasPrefix(cleaned, ukIntlPrefix) && len(cleaned) > ukIntlMax:
		return cleaned[:ukIntlMax]
	default:
		return cleaned
	}
}

func stripNonDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
