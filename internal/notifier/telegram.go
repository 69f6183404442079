package notifier

import (
	tele "gopkg.in/telebot.v3"
)

// TelegramSender posts Markdown messages to a single configured chat. The
// bot only sends; it never polls for updates.
type TelegramSender struct {
	bot    *tele.Bot
	chatID int64
}

func NewTelegramSender(token string, chatID int64) (*TelegramSender, error) {
	b, err := tele.NewBot(tele.Settings{
		Token: token,
	})
	if err != nil {
		return nil, err
	}
	return &TelegramSender{bot: b, chatID: chatID}, nil
}

func (s *TelegramSender) SendMessage(text string) error {
	_, err := s.bot.Send(tele.ChatID(s.chatID), text, tele.ModeMarkdown)
	return err
}
