package anonymize

import (
	"strings"

	"github.com/mymmrac/telego"
)

// messageText returns the message's text or caption, whichever is set.
func messageText(msg *telego.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}

// HasPrefix reports whether text starts with the command prefix,
// case-insensitively.
func HasPrefix(text, prefix string) bool {
	if len(text) < len(prefix) {
		return false
	}
	return strings.EqualFold(text[:len(prefix)], prefix)
}

// StripPrefix removes the leading command prefix and surrounding whitespace.
// Returns "" when nothing meaningful remains after the prefix.
//
//	StripPrefix("@anon Hello!", "@anon") == "Hello!"
//	StripPrefix("@anon", "@anon")        == ""
//	StripPrefix("@ANON  spaced ", "@anon") == "spaced"
func StripPrefix(text, prefix string) string {
	if !HasPrefix(text, prefix) {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[len(prefix):])
}
