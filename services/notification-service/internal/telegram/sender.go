// Package telegram delivers alerts to an admin chat through the Bot API.
package telegram

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/md-rashed-zaman/fuelstation/services/notification-service/internal/alerts"
)

type Sender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// New authenticates the bot token against the public Bot API.
func New(token string, chatID int64) (*Sender, error) {
	return NewWithEndpoint(token, tgbotapi.APIEndpoint, chatID, &http.Client{Timeout: 10 * time.Second})
}

// NewWithEndpoint targets a custom Bot API server. endpoint is a format string
// taking the token and the method name.
func NewWithEndpoint(token, endpoint string, chatID int64, client *http.Client) (*Sender, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is required")
	}
	if chatID == 0 {
		return nil, errors.New("telegram chat id is required")
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, err
	}
	return &Sender{bot: bot, chatID: chatID}, nil
}

func (s *Sender) Name() string { return "telegram" }

func (s *Sender) Recipient() string { return strconv.FormatInt(s.chatID, 10) }

func (s *Sender) Send(ctx context.Context, alert alerts.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(s.chatID, alert.Text())
	msg.DisableWebPagePreview = true
	_, err := s.bot.Send(msg)
	return err
}
