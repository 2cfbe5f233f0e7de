package bot

import (
	"context"

	"github.com/donaldgifford/donutsmp-bot/internal/auction"
)

// Reply is a MarkdownV2 message with optional navigation buttons.
type Reply struct {
	Text     string
	Controls []auction.Control
}

// Messenger delivers replies to a chat platform.
type Messenger interface {
	// Send posts a new message and returns its id.
	Send(ctx context.Context, chatID int64, reply Reply) (int, error)
	// Edit replaces the text and buttons of an existing message.
	Edit(ctx context.Context, chatID int64, messageID int, reply Reply) error
	// AnswerCallback acknowledges a button press.
	AnswerCallback(ctx context.Context, callbackID string) error
}

// Command is a slash command sent by a user.
type Command struct {
	ChatID int64
	Name   string
	Args   []string
}

// Callback is an inline button press.
type Callback struct {
	ID        string
	ChatID    int64
	MessageID int
	Data      string
}

// Update carries exactly one of Command or Callback.
type Update struct {
	Command  *Command
	Callback *Callback
}

// UpdateSource streams incoming updates until ctx is done, then closes the
// channel.
type UpdateSource interface {
	Updates(ctx context.Context) <-chan Update
}
