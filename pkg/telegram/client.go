package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Telegram rejects bursts to the same chat above roughly one message per second.
const chatSendInterval = time.Second

// Notifier sends Markdown text to a single chat.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type client struct {
	bot     botSender
	chatID  int64
	limiter *rate.Limiter
}

// NewClient connects to the bot API and returns a Notifier for chatID.
func NewClient(botToken string, chatID int64) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return newClient(bot, chatID), nil
}

func newClient(bot botSender, chatID int64) *client {
	return &client{
		bot:     bot,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Every(chatSendInterval), 1),
	}
}

// SendMessage waits for the per-chat limiter, then sends text without a link preview.
func (c *client) SendMessage(ctx context.Context, text string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
