package anonymize

import (
	"testing"

	"github.com/mymmrac/telego"
)

func TestHasPrefix(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		prefix string
		want   bool
	}{
		{"exact", "@anon", "@anon", true},
		{"with content", "@anon Hello!", "@anon", true},
		{"uppercase", "@ANON hi", "@anon", true},
		{"mixed case", "@Anon hi", "@anon", true},
		{"plain text", "hello", "@anon", false},
		{"prefix inside text", "say @anon", "@anon", false},
		{"shorter than prefix", "@an", "@anon", false},
		{"empty", "", "@anon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPrefix(tt.text, tt.prefix); got != tt.want {
				t.Errorf("HasPrefix(%q, %q) = %t, want %t", tt.text, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		prefix string
		want   string
	}{
		{"simple", "@anon Hello!", "@anon", "Hello!"},
		{"bare prefix", "@anon", "@anon", ""},
		{"prefix and spaces only", "@anon   ", "@anon", ""},
		{"case insensitive", "@ANON  spaced ", "@anon", "spaced"},
		{"multiline body", "@anon line1\nline2", "@anon", "line1\nline2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripPrefix(tt.text, tt.prefix); got != tt.want {
				t.Errorf("StripPrefix(%q, %q) = %q, want %q", tt.text, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestMessageText(t *testing.T) {
	if got := messageText(&telego.Message{Text: "t"}); got != "t" {
		t.Errorf("messageText with Text = %q, want %q", got, "t")
	}
	if got := messageText(&telego.Message{Caption: "c"}); got != "c" {
		t.Errorf("messageText with Caption = %q, want %q", got, "c")
	}
	if got := messageText(&telego.Message{}); got != "" {
		t.Errorf("messageText empty = %q, want empty", got)
	}
}
