package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxUsernameLength = 24

// NormalizeUsername canonicalizes and validates an account name. Names are
// NFC-normalized so visually identical inputs map to one account.
func NormalizeUsername(name string) (string, error) {
	cleaned := strings.TrimSpace(norm.NFC.String(name))
	if cleaned == "" {
		return "", E(KindInvalidArgument, "Name must not be empty.")
	}
	if len(cleaned) > maxUsernameLength {
		return "", E(KindInvalidArgument, "Name must be at most %d characters.", maxUsernameLength)
	}
	for _, r := range cleaned {
		if unicode.IsSpace(r) || unicode.IsControl(r) || !unicode.IsPrint(r) {
			return "", E(KindInvalidArgument, "Name contains invalid characters.")
		}
	}
	return cleaned, nil
}

// SanitizeMessage strips control and non-printable runes from chat input,
// collapsing exotic whitespace to plain spaces.
func SanitizeMessage(s string) string {
	if s == "" {
		return ""
	}
	var builder strings.Builder
	builder.Grow(len(s))
	changed := false
	for _, r := range s {
		sanitized, ok := sanitizeRune(r)
		if !ok {
			changed = true
			continue
		}
		if sanitized != r {
			changed = true
		}
		builder.WriteRune(sanitized)
	}
	if !changed {
		return s
	}
	return builder.String()
}

func sanitizeRune(r rune) (rune, bool) {
	switch {
	case r == '\r':
		return 0, false
	case unicode.IsSpace(r):
		if r == ' ' || r == '\n' {
			return r, true
		}
		return ' ', true
	case r < 0x20 || r == 0x7f:
		return 0, false
	case unicode.Is(unicode.Cf, r):
		return 0, false
	case unicode.IsControl(r):
		return 0, false
	case unicode.In(r, unicode.Zl, unicode.Zp):
		return 0, false
	case !unicode.IsPrint(r):
		return 0, false
	default:
		return r, true
	}
}
