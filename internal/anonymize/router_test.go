package anonymize

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mymmrac/telego"
)

// fakeTransport records calls for assertions. Shared by the router and
// processor tests.
type transportCall struct {
	method  string
	chatID  int64
	text    string // text, caption or notice text
	fileID  string
	replyTo int
}

type fakeTransport struct {
	mu        sync.Mutex
	calls     []transportCall
	deleteErr error
	sendErr   error
	noticeID  int
}

func (f *fakeTransport) record(c transportCall) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

func (f *fakeTransport) callsByMethod(method string) []transportCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []transportCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeTransport) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.method != "delete" && c.method != "notice" {
			n++
		}
	}
	return n
}

func (f *fakeTransport) Delete(_ context.Context, chatID int64, messageID int) error {
	f.record(transportCall{method: "delete", chatID: chatID, replyTo: messageID})
	return f.deleteErr
}

func (f *fakeTransport) SendText(_ context.Context, chatID int64, text string, replyTo int) error {
	f.record(transportCall{method: "text", chatID: chatID, text: text, replyTo: replyTo})
	return f.sendErr
}

func (f *fakeTransport) SendPhoto(_ context.Context, chatID int64, fileID, caption string, replyTo int) error {
	f.record(transportCall{method: "photo", chatID: chatID, fileID: fileID, text: caption, replyTo: replyTo})
	return f.sendErr
}

func (f *fakeTransport) SendVideo(_ context.Context, chatID int64, fileID, caption string, replyTo int) error {
	f.record(transportCall{method: "video", chatID: chatID, fileID: fileID, text: caption, replyTo: replyTo})
	return f.sendErr
}

func (f *fakeTransport) SendAnimation(_ context.Context, chatID int64, fileID, caption string, replyTo int) error {
	f.record(transportCall{method: "animation", chatID: chatID, fileID: fileID, text: caption, replyTo: replyTo})
	return f.sendErr
}

func (f *fakeTransport) SendDocument(_ context.Context, chatID int64, fileID, caption string, replyTo int) error {
	f.record(transportCall{method: "document", chatID: chatID, fileID: fileID, text: caption, replyTo: replyTo})
	return f.sendErr
}

func (f *fakeTransport) SendAudio(_ context.Context, chatID int64, fileID, caption string, replyTo int) error {
	f.record(transportCall{method: "audio", chatID: chatID, fileID: fileID, text: caption, replyTo: replyTo})
	return f.sendErr
}

func (f *fakeTransport) SendVoice(_ context.Context, chatID int64, fileID string, replyTo int) error {
	f.record(transportCall{method: "voice", chatID: chatID, fileID: fileID, replyTo: replyTo})
	return f.sendErr
}

func (f *fakeTransport) SendVideoNote(_ context.Context, chatID int64, fileID string, replyTo int) error {
	f.record(transportCall{method: "video_note", chatID: chatID, fileID: fileID, replyTo: replyTo})
	return f.sendErr
}

func (f *fakeTransport) SendSticker(_ context.Context, chatID int64, fileID string, replyTo int) error {
	f.record(transportCall{method: "sticker", chatID: chatID, fileID: fileID, replyTo: replyTo})
	return f.sendErr
}

func (f *fakeTransport) SendNotice(_ context.Context, chatID int64, text string) (int, error) {
	f.record(transportCall{method: "notice", chatID: chatID, text: text})
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.noticeID++
	return f.noticeID, nil
}

func TestRouteDispatch(t *testing.T) {
	tests := []struct {
		name       string
		msg        *telego.Message
		override   string
		wantMethod string
		wantText   string
		wantFileID string
	}{
		{
			name:       "text uses override",
			msg:        &telego.Message{Text: "@anon hi"},
			override:   "hi",
			wantMethod: "text",
			wantText:   "hi",
		},
		{
			name:       "text falls back to message text",
			msg:        &telego.Message{Text: "hello"},
			wantMethod: "text",
			wantText:   "hello",
		},
		{
			name:       "photo with caption override",
			msg:        &telego.Message{Photo: []telego.PhotoSize{{FileID: "p1"}}, Caption: "original"},
			override:   "clean",
			wantMethod: "photo",
			wantText:   "clean",
			wantFileID: "p1",
		},
		{
			name:       "photo without override drops original caption",
			msg:        &telego.Message{Photo: []telego.PhotoSize{{FileID: "p1"}}, Caption: "original"},
			wantMethod: "photo",
			wantText:   "",
			wantFileID: "p1",
		},
		{
			name:       "video",
			msg:        &telego.Message{Video: &telego.Video{FileID: "v1"}},
			override:   "cap",
			wantMethod: "video",
			wantText:   "cap",
			wantFileID: "v1",
		},
		{
			name:       "animation",
			msg:        &telego.Message{Animation: &telego.Animation{FileID: "a1"}},
			wantMethod: "animation",
			wantFileID: "a1",
		},
		{
			name:       "document",
			msg:        &telego.Message{Document: &telego.Document{FileID: "d1"}},
			wantMethod: "document",
			wantFileID: "d1",
		},
		{
			name:       "audio",
			msg:        &telego.Message{Audio: &telego.Audio{FileID: "m1"}},
			wantMethod: "audio",
			wantFileID: "m1",
		},
		{
			name:       "voice ignores override",
			msg:        &telego.Message{Voice: &telego.Voice{FileID: "vc1"}},
			override:   "should not appear",
			wantMethod: "voice",
			wantFileID: "vc1",
		},
		{
			name:       "video note ignores override",
			msg:        &telego.Message{VideoNote: &telego.VideoNote{FileID: "vn1"}},
			override:   "should not appear",
			wantMethod: "video_note",
			wantFileID: "vn1",
		},
		{
			name:       "sticker ignores override",
			msg:        &telego.Message{Sticker: &telego.Sticker{FileID: "s1"}},
			override:   "should not appear",
			wantMethod: "sticker",
			wantFileID: "s1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeTransport{}
			r := NewRouter(ft)
			tt.msg.Chat = telego.Chat{ID: 500, Type: "supergroup"}

			if err := r.Route(context.Background(), tt.msg, tt.override, 7); err != nil {
				t.Fatalf("Route returned error: %v", err)
			}

			calls := ft.callsByMethod(tt.wantMethod)
			if len(calls) != 1 {
				t.Fatalf("got %d %s calls, want 1 (all calls: %+v)", len(calls), tt.wantMethod, ft.calls)
			}
			c := calls[0]
			if c.chatID != 500 {
				t.Errorf("chatID = %d, want 500", c.chatID)
			}
			if c.replyTo != 7 {
				t.Errorf("replyTo = %d, want 7", c.replyTo)
			}
			if c.text != tt.wantText {
				t.Errorf("text/caption = %q, want %q", c.text, tt.wantText)
			}
			if c.fileID != tt.wantFileID {
				t.Errorf("fileID = %q, want %q", c.fileID, tt.wantFileID)
			}
		})
	}
}

func TestRouteUnsupportedKind(t *testing.T) {
	ft := &fakeTransport{}
	r := NewRouter(ft)

	msg := &telego.Message{Chat: telego.Chat{ID: 500, Type: "group"}} // no content at all
	err := r.Route(context.Background(), msg, "", 0)

	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Route = %v, want ErrUnsupported", err)
	}
	if len(ft.calls) != 0 {
		t.Errorf("transport touched for unsupported content: %+v", ft.calls)
	}
}
