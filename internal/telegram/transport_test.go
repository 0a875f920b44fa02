package telegram

import (
	"errors"
	"testing"

	"github.com/mymmrac/telego/telegoapi"

	"github.com/nextlevelbuilder/anonbot/internal/anonymize"
)

func TestMapDeleteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil passes through",
			err:  nil,
			want: nil,
		},
		{
			name: "not found counts as success",
			err:  &telegoapi.Error{ErrorCode: 400, Description: "Bad Request: message to delete not found"},
			want: nil,
		},
		{
			name: "forbidden",
			err:  &telegoapi.Error{ErrorCode: 403, Description: "Forbidden: message can't be deleted"},
			want: anonymize.ErrDeleteForbidden,
		},
		{
			name: "too old",
			err:  &telegoapi.Error{ErrorCode: 400, Description: "Bad Request: message can't be deleted for everyone"},
			want: anonymize.ErrDeleteTooOld,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapDeleteError(tt.err)
			if tt.want == nil {
				if got != nil {
					t.Errorf("mapDeleteError = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("mapDeleteError = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapDeleteErrorWrapsUnknown(t *testing.T) {
	base := errors.New("network down")
	got := mapDeleteError(base)
	if got == nil || !errors.Is(got, base) {
		t.Errorf("mapDeleteError = %v, want wrapped %v", got, base)
	}
	if errors.Is(got, anonymize.ErrDeleteForbidden) || errors.Is(got, anonymize.ErrDeleteTooOld) {
		t.Error("unknown error must not map onto the taxonomy")
	}
}

func TestReplyParams(t *testing.T) {
	if got := replyParams(0); got != nil {
		t.Errorf("replyParams(0) = %+v, want nil", got)
	}
	if got := replyParams(-1); got != nil {
		t.Errorf("replyParams(-1) = %+v, want nil", got)
	}
	got := replyParams(42)
	if got == nil || got.MessageID != 42 {
		t.Errorf("replyParams(42) = %+v, want MessageID 42", got)
	}
}
