// File: services/privacy/mask.go
package privacy

import (
	"strings"
	"unicode/utf8"
)

// MaskPlaceholder is returned when a value is too short or absent to mask
// meaningfully.
const MaskPlaceholder = "****"

// MaskPhone keeps the last 4 characters and replaces the rest with asterisks.
// Inputs of length 4 or less collapse to the placeholder. Never fails.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return MaskPlaceholder
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// MaskEmail keeps the first character of the local part and the full domain,
// e.g. "jane.doe@example.com" -> "j***@example.com". Values without an "@"
// collapse to the placeholder. The first character is taken as a rune so
// multi-byte locals stay valid UTF-8.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return MaskPlaceholder
	}
	first, _ := utf8.DecodeRuneInString(email)
	return string(first) + "***@" + email[at+1:]
}

// MaskFullName reduces a name to dotted uppercase initials,
// e.g. "Jane Q Doe" -> "J.Q.D.".
func MaskFullName(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return MaskPlaceholder
	}
	var b strings.Builder
	for _, tok := range tokens {
		first, _ := utf8.DecodeRuneInString(tok)
		b.WriteString(strings.ToUpper(string(first)))
		b.WriteString(".")
	}
	return b.String()
}

// MaskID keeps the first 8 characters of a UUID-like identifier and elides the
// rest. Empty input collapses to the placeholder.
func MaskID(id string) string {
	if id == "" {
		return MaskPlaceholder
	}
	if len(id) <= 8 {
		return id + "..."
	}
	return id[:8] + "..."
}
