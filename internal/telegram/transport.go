// Package telegram connects the anonymization core to the Telegram Bot API
// via long polling.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoapi"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/nextlevelbuilder/anonbot/internal/anonymize"
	"github.com/nextlevelbuilder/anonbot/internal/config"
)

// Transport implements anonymize.Transport on top of the Bot API.
type Transport struct {
	bot *telego.Bot
}

// NewTransport creates the Bot API client. An optional HTTP proxy from config
// is honoured.
func NewTransport(cfg config.TelegramConfig) (*Transport, error) {
	var opts []telego.BotOption

	if cfg.Proxy != "" {
		proxyURL, parseErr := url.Parse(cfg.Proxy)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", cfg.Proxy, parseErr)
		}
		opts = append(opts, telego.WithHTTPClient(&http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyURL(proxyURL),
			},
		}))
	}

	bot, err := telego.NewBot(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Transport{bot: bot}, nil
}

// Bot exposes the underlying client for the update loop.
func (t *Transport) Bot() *telego.Bot { return t.bot }

// Delete removes a message, mapping API failures onto the core's taxonomy.
// A missing target counts as success (idempotent delete).
func (t *Transport) Delete(ctx context.Context, chatID int64, messageID int) error {
	err := t.bot.DeleteMessage(ctx, &telego.DeleteMessageParams{
		ChatID:    tu.ID(chatID),
		MessageID: messageID,
	})
	return mapDeleteError(err)
}

func mapDeleteError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *telegoapi.Error
	if errors.As(err, &apiErr) {
		desc := strings.ToLower(apiErr.Description)
		switch {
		case strings.Contains(desc, "message to delete not found"):
			return nil // already gone
		case apiErr.ErrorCode == 403:
			return anonymize.ErrDeleteForbidden
		case strings.Contains(desc, "message can't be deleted"):
			return anonymize.ErrDeleteTooOld
		}
	}
	return fmt.Errorf("delete message: %w", err)
}

// replyParams threads the outgoing message under replyTo when set.
func replyParams(replyTo int) *telego.ReplyParameters {
	if replyTo <= 0 {
		return nil
	}
	return &telego.ReplyParameters{MessageID: replyTo}
}

func (t *Transport) SendText(ctx context.Context, chatID int64, text string, replyTo int) error {
	_, err := t.bot.SendMessage(ctx, &telego.SendMessageParams{
		ChatID:          tu.ID(chatID),
		Text:            text,
		ReplyParameters: replyParams(replyTo),
	})
	if err != nil {
		return fmt.Errorf("send text: %w", err)
	}
	return nil
}

func (t *Transport) SendPhoto(ctx context.Context, chatID int64, fileID, caption string, replyTo int) error {
	_, err := t.bot.SendPhoto(ctx, &telego.SendPhotoParams{
		ChatID:          tu.ID(chatID),
		Photo:           tu.FileFromID(fileID),
		Caption:         caption,
		ReplyParameters: replyParams(replyTo),
	})
	if err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

func (t *Transport) SendVideo(ctx context.Context, chatID int64, fileID, caption string, replyTo int) error {
	_, err := t.bot.SendVideo(ctx, &telego.SendVideoParams{
		ChatID:          tu.ID(chatID),
		Video:           tu.FileFromID(fileID),
		Caption:         caption,
		ReplyParameters: replyParams(replyTo),
	})
	if err != nil {
		return fmt.Errorf("send video: %w", err)
	}
	return nil
}

func (t *Transport) SendAnimation(ctx context.Context, chatID int64, fileID, caption string, replyTo int) error {
	_, err := t.bot.SendAnimation(ctx, &telego.SendAnimationParams{
		ChatID:          tu.ID(chatID),
		Animation:       tu.FileFromID(fileID),
		Caption:         caption,
		ReplyParameters: replyParams(replyTo),
	})
	if err != nil {
		return fmt.Errorf("send animation: %w", err)
	}
	return nil
}

func (t *Transport) SendDocument(ctx context.Context, chatID int64, fileID, caption string, replyTo int) error {
	_, err := t.bot.SendDocument(ctx, &telego.SendDocumentParams{
		ChatID:          tu.ID(chatID),
		Document:        tu.FileFromID(fileID),
		Caption:         caption,
		ReplyParameters: replyParams(replyTo),
	})
	if err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

func (t *Transport) SendAudio(ctx context.Context, chatID int64, fileID, caption string, replyTo int) error {
	_, err := t.bot.SendAudio(ctx, &telego.SendAudioParams{
		ChatID:          tu.ID(chatID),
		Audio:           tu.FileFromID(fileID),
		Caption:         caption,
		ReplyParameters: replyParams(replyTo),
	})
	if err != nil {
		return fmt.Errorf("send audio: %w", err)
	}
	return nil
}

func (t *Transport) SendVoice(ctx context.Context, chatID int64, fileID string, replyTo int) error {
	_, err := t.bot.SendVoice(ctx, &telego.SendVoiceParams{
		ChatID:          tu.ID(chatID),
		Voice:           tu.FileFromID(fileID),
		ReplyParameters: replyParams(replyTo),
	})
	if err != nil {
		return fmt.Errorf("send voice: %w", err)
	}
	return nil
}

func (t *Transport) SendVideoNote(ctx context.Context, chatID int64, fileID string, replyTo int) error {
	_, err := t.bot.SendVideoNote(ctx, &telego.SendVideoNoteParams{
		ChatID:          tu.ID(chatID),
		VideoNote:       tu.FileFromID(fileID),
		ReplyParameters: replyParams(replyTo),
	})
	if err != nil {
		return fmt.Errorf("send video note: %w", err)
	}
	return nil
}

func (t *Transport) SendSticker(ctx context.Context, chatID int64, fileID string, replyTo int) error {
	_, err := t.bot.SendSticker(ctx, &telego.SendStickerParams{
		ChatID:          tu.ID(chatID),
		Sticker:         tu.FileFromID(fileID),
		ReplyParameters: replyParams(replyTo),
	})
	if err != nil {
		return fmt.Errorf("send sticker: %w", err)
	}
	return nil
}

// SendNotice posts a system notice and returns its message ID.
func (t *Transport) SendNotice(ctx context.Context, chatID int64, text string) (int, error) {
	msg, err := t.bot.SendMessage(ctx, &telego.SendMessageParams{
		ChatID: tu.ID(chatID),
		Text:   text,
	})
	if err != nil {
		return 0, fmt.Errorf("send notice: %w", err)
	}
	return msg.MessageID, nil
}
