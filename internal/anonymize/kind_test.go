package anonymize

import (
	"testing"

	"github.com/mymmrac/telego"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  *telego.Message
		want Kind
	}{
		{"text", &telego.Message{Text: "hello"}, KindText},
		{"photo", &telego.Message{Photo: []telego.PhotoSize{{FileID: "p"}}}, KindPhoto},
		{"video", &telego.Message{Video: &telego.Video{FileID: "v"}}, KindVideo},
		{"animation", &telego.Message{Animation: &telego.Animation{FileID: "a"}}, KindAnimation},
		{"document", &telego.Message{Document: &telego.Document{FileID: "d"}}, KindDocument},
		{"audio", &telego.Message{Audio: &telego.Audio{FileID: "m"}}, KindAudio},
		{"voice", &telego.Message{Voice: &telego.Voice{FileID: "vc"}}, KindVoice},
		{"video note", &telego.Message{VideoNote: &telego.VideoNote{FileID: "vn"}}, KindVideoNote},
		{"sticker", &telego.Message{Sticker: &telego.Sticker{FileID: "s"}}, KindSticker},
		{"empty", &telego.Message{}, KindUnknown},
		{"text wins over photo", &telego.Message{Text: "t", Photo: []telego.PhotoSize{{FileID: "p"}}}, KindText},
		{"photo with caption is still photo", &telego.Message{Caption: "c", Photo: []telego.PhotoSize{{FileID: "p"}}}, KindPhoto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.msg); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSupportsCaption(t *testing.T) {
	withCaption := []Kind{KindPhoto, KindVideo, KindAnimation, KindDocument, KindAudio}
	withoutCaption := []Kind{KindText, KindVoice, KindVideoNote, KindSticker, KindUnknown}

	for _, k := range withCaption {
		if !SupportsCaption(k) {
			t.Errorf("SupportsCaption(%v) = false, want true", k)
		}
	}
	for _, k := range withoutCaption {
		if SupportsCaption(k) {
			t.Errorf("SupportsCaption(%v) = true, want false", k)
		}
	}
}

func TestFileIDPicksLargestPhoto(t *testing.T) {
	msg := &telego.Message{Photo: []telego.PhotoSize{
		{FileID: "small", Width: 90},
		{FileID: "medium", Width: 320},
		{FileID: "large", Width: 1280},
	}}
	if got := FileID(msg); got != "large" {
		t.Errorf("FileID = %q, want %q", got, "large")
	}
}

func TestFileIDEmptyForText(t *testing.T) {
	if got := FileID(&telego.Message{Text: "hello"}); got != "" {
		t.Errorf("FileID for text = %q, want empty", got)
	}
}

func TestHasContent(t *testing.T) {
	if HasContent(&telego.Message{}) {
		t.Error("HasContent on empty message should be false")
	}
	if !HasContent(&telego.Message{Sticker: &telego.Sticker{FileID: "s"}}) {
		t.Error("HasContent on sticker should be true")
	}
}
