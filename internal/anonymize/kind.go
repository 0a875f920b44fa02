// Package anonymize contains the anonymization core: content classification,
// the repost router, and the orchestrator that drives delete-then-repost for
// direct and delayed requests.
package anonymize

import "github.com/mymmrac/telego"

// Kind is the content classification of an inbound message.
// The set is closed; dispatch switches over it exhaustively and only
// KindUnknown falls through to a no-op.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindPhoto
	KindVideo
	KindAnimation
	KindDocument
	KindAudio
	KindVoice
	KindVideoNote
	KindSticker
)

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindText:      "text",
	KindPhoto:     "photo",
	KindVideo:     "video",
	KindAnimation: "animation",
	KindDocument:  "document",
	KindAudio:     "audio",
	KindVoice:     "voice",
	KindVideoNote: "video_note",
	KindSticker:   "sticker",
}

func (k Kind) String() string { return kindNames[k] }

// Classify returns the content kind of a message. Exactly one kind is
// produced per message; when several fields are set (real messages carry at
// most one media kind) the precedence is text > photo > video > animation >
// document > audio > voice > video_note > sticker.
func Classify(msg *telego.Message) Kind {
	switch {
	case msg.Text != "":
		return KindText
	case len(msg.Photo) > 0:
		return KindPhoto
	case msg.Video != nil:
		return KindVideo
	case msg.Animation != nil:
		return KindAnimation
	case msg.Document != nil:
		return KindDocument
	case msg.Audio != nil:
		return KindAudio
	case msg.Voice != nil:
		return KindVoice
	case msg.VideoNote != nil:
		return KindVideoNote
	case msg.Sticker != nil:
		return KindSticker
	default:
		return KindUnknown
	}
}

// SupportsCaption reports whether the Bot API accepts a caption for the kind.
// Voice, video notes and stickers do not take captions.
func SupportsCaption(k Kind) bool {
	switch k {
	case KindPhoto, KindVideo, KindAnimation, KindDocument, KindAudio:
		return true
	default:
		return false
	}
}

// HasContent reports whether the message carries anything sendable at all.
func HasContent(msg *telego.Message) bool {
	return Classify(msg) != KindUnknown
}

// FileID returns the payload file reference for the message's kind, or ""
// for text and unknown content. Photos use the highest-resolution size.
func FileID(msg *telego.Message) string {
	switch Classify(msg) {
	case KindPhoto:
		return msg.Photo[len(msg.Photo)-1].FileID
	case KindVideo:
		return msg.Video.FileID
	case KindAnimation:
		return msg.Animation.FileID
	case KindDocument:
		return msg.Document.FileID
	case KindAudio:
		return msg.Audio.FileID
	case KindVoice:
		return msg.Voice.FileID
	case KindVideoNote:
		return msg.VideoNote.FileID
	case KindSticker:
		return msg.Sticker.FileID
	default:
		return ""
	}
}
