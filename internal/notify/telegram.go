// Package notify delivers moderation alerts to the staff channel.
package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"grievgo/backend/internal/models"
)

// Notifier is told about submissions the moderation check flagged.
// Delivery is best-effort; failures must not affect the request.
type Notifier interface {
	GrievanceFlagged(grievance *models.Grievance, reason string)
}

// TelegramNotifier posts flagged-submission alerts to a fixed chat.
type TelegramNotifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Moderation alerts authorized on account %s", bot.Self.UserName)

	return &TelegramNotifier{BotAPI: bot, ChatID: chatID}, nil
}

func (n *TelegramNotifier) GrievanceFlagged(grievance *models.Grievance, reason string) {
	text := fmt.Sprintf("⚠️ Grievance #%d (%s/%s) was auto-flagged: %s",
		grievance.ID, grievance.Category, grievance.Priority, reason)

	msg := tgbotapi.NewMessage(n.ChatID, text)
	if _, err := n.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send moderation alert for grievance %d: %v", grievance.ID, err)
	}
}
