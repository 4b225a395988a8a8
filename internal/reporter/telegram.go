package reporter

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-jobfinder-automation/internal/agent"
)

//TelegramReporter pushes a run summary to a chat after a search finishes.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	return &TelegramReporter{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *TelegramReporter) sendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

//SendSummary reports the envelope: count plus the first few records, or the
//error and the partial count on failure.
func (t *TelegramReporter) SendSummary(env *agent.Envelope) error {
	if !env.Success {
		return t.sendMessage(fmt.Sprintf(
			"❌ <b>Search failed</b>: %s\n📦 %d partial records kept", env.Error, len(env.PartialRecords)))
	}

	text := fmt.Sprintf("✅ <b>Search finished</b>: %d unique records\n", env.Count)
	shown := env.Records
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, r := range shown {
		text += fmt.Sprintf("\n💼 <b>%s</b>\n🏢 %s\n📍 %s\n🔗 <a href=\"%s\">View Job</a>\n", r.Title, r.Company, r.Location, r.URL)
	}
	if env.Count > len(shown) {
		text += fmt.Sprintf("\n…and %d more.", env.Count-len(shown))
	}
	return t.sendMessage(text)
}

func (t *TelegramReporter) SendError(errReq error) error {
	return t.sendMessage(fmt.Sprintf("⚠️ <b>Agent Error</b>:\n%v", errReq))
}
