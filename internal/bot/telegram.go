package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DefaultPollTimeout is the long-polling timeout for getUpdates.
const DefaultPollTimeout = 60 * time.Second

// Telegram implements Messenger and UpdateSource on the Telegram Bot API
// using long polling.
type Telegram struct {
	api         *tgbotapi.BotAPI
	endpoint    string
	client      *http.Client
	pollTimeout time.Duration
	debug       bool
	log         *slog.Logger
}

// TelegramOption configures the Telegram adapter.
type TelegramOption func(*Telegram)

// WithAPIEndpoint overrides the Bot API endpoint format
// (default "https://api.telegram.org/bot%s/%s").
func WithAPIEndpoint(endpoint string) TelegramOption {
	return func(t *Telegram) {
		t.endpoint = endpoint
	}
}

// WithTelegramHTTPClient sets the HTTP client used for Bot API calls.
func WithTelegramHTTPClient(hc *http.Client) TelegramOption {
	return func(t *Telegram) {
		t.client = hc
	}
}

// WithPollTimeout sets the long-polling timeout.
func WithPollTimeout(d time.Duration) TelegramOption {
	return func(t *Telegram) {
		t.pollTimeout = d
	}
}

// WithDebug enables request logging inside the Bot API library.
func WithDebug(debug bool) TelegramOption {
	return func(t *Telegram) {
		t.debug = debug
	}
}

// WithTelegramLogger sets the logger.
func WithTelegramLogger(l *slog.Logger) TelegramOption {
	return func(t *Telegram) {
		t.log = l
	}
}

// NewTelegram authenticates token against the Bot API and returns an adapter.
func NewTelegram(token string, opts ...TelegramOption) (*Telegram, error) {
	t := &Telegram{
		endpoint:    tgbotapi.APIEndpoint,
		pollTimeout: DefaultPollTimeout,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.client == nil {
		// Long polls must outlive the poll timeout.
		t.client = &http.Client{Timeout: t.pollTimeout + 10*time.Second}
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, t.endpoint, t.client)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	api.Debug = t.debug
	t.api = api

	t.log.Info("authorized on telegram", "username", api.Self.UserName)
	return t, nil
}

// Username returns the bot's Telegram username.
func (t *Telegram) Username() string {
	return t.api.Self.UserName
}

// Send implements Messenger.
func (t *Telegram) Send(_ context.Context, chatID int64, reply Reply) (int, error) {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if kb, ok := keyboard(reply); ok {
		msg.ReplyMarkup = kb
	}

	sent, err := t.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("sending message to chat %d: %w", chatID, err)
	}
	return sent.MessageID, nil
}

// Edit implements Messenger. A reply without controls removes the buttons.
func (t *Telegram) Edit(_ context.Context, chatID int64, messageID int, reply Reply) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, reply.Text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	if kb, ok := keyboard(reply); ok {
		edit.ReplyMarkup = &kb
	}

	if _, err := t.api.Request(edit); err != nil {
		return fmt.Errorf("editing message %d in chat %d: %w", messageID, chatID, err)
	}
	return nil
}

// AnswerCallback implements Messenger.
func (t *Telegram) AnswerCallback(_ context.Context, callbackID string) error {
	if _, err := t.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("answering callback %s: %w", callbackID, err)
	}
	return nil
}

// Updates implements UpdateSource. Polling stops when ctx is done.
func (t *Telegram) Updates(ctx context.Context) <-chan Update {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(t.pollTimeout.Seconds())

	in := t.api.GetUpdatesChan(cfg)
	out := make(chan Update)

	go func() {
		defer close(out)
		defer t.api.StopReceivingUpdates()

		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-in:
				if !ok {
					return
				}
				u, ok := toUpdate(&raw)
				if !ok {
					continue
				}
				select {
				case out <- u:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

func toUpdate(raw *tgbotapi.Update) (Update, bool) {
	if cq := raw.CallbackQuery; cq != nil {
		if cq.Message == nil || cq.Message.Chat == nil {
			return Update{}, false
		}
		return Update{Callback: &Callback{
			ID:        cq.ID,
			ChatID:    cq.Message.Chat.ID,
			MessageID: cq.Message.MessageID,
			Data:      cq.Data,
		}}, true
	}

	if m := raw.Message; m != nil && m.Chat != nil && m.IsCommand() {
		return Update{Command: &Command{
			ChatID: m.Chat.ID,
			Name:   m.Command(),
			Args:   strings.Fields(m.CommandArguments()),
		}}, true
	}

	return Update{}, false
}

func keyboard(reply Reply) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(reply.Controls) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	buttons := make([]tgbotapi.InlineKeyboardButton, len(reply.Controls))
	for i, c := range reply.Controls {
		buttons[i] = tgbotapi.NewInlineKeyboardButtonData(c.Label, c.Token.String())
	}
	return tgbotapi.NewInlineKeyboardMarkup(buttons), true
}
