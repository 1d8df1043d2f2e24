package services

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramBot 텔레그램 봇 API 중 발송에 필요한 부분 (테스트 대체용)
type TelegramBot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramMessenger 텔레그램 채널 Messenger 구현
type TelegramMessenger struct {
	bot    TelegramBot
	chatID int64
}

// NewTelegramMessenger 봇 토큰과 채팅 ID로 텔레그램 채널 생성
func NewTelegramMessenger(token string, chatID int64) (*TelegramMessenger, error) {
	if token == "" {
		return nil, fmt.Errorf("텔레그램 봇 토큰이 없습니다")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("텔레그램 채팅 ID가 없습니다")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("텔레그램 봇 생성 실패: %w", err)
	}
	return &TelegramMessenger{bot: bot, chatID: chatID}, nil
}

// SendText HTML 텍스트 메시지 발송
func (m *TelegramMessenger) SendText(text string) error {
	msg := tgbotapi.NewMessage(m.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := m.bot.Send(msg); err != nil {
		return fmt.Errorf("텔레그램 발송 실패: %w", err)
	}
	return nil
}
