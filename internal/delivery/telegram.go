package delivery

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/Vodeneev/oddsbot/internal/pkg/metrics"
)

// MaxMessageRunes is Telegram's text limit per message.
const MaxMessageRunes = 4096

// Sender is the part of *tgbotapi.BotAPI the gateway uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Ensure TelegramGateway implements Gateway
var _ Gateway = (*TelegramGateway)(nil)

// TelegramGateway delivers through the Bot API. Sends are spaced by a limiter
// to stay under Telegram's ~30 messages per minute.
type TelegramGateway struct {
	bot     Sender
	limiter *rate.Limiter
	metrics *metrics.Metrics
}

// NewTelegramGateway creates a gateway. interval <= 0 disables spacing.
func NewTelegramGateway(bot Sender, interval time.Duration, m *metrics.Metrics) *TelegramGateway {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &TelegramGateway{bot: bot, limiter: rate.NewLimiter(limit, 1), metrics: m}
}

func (g *TelegramGateway) Push(ctx context.Context, recipient string, text string) Result {
	res := g.push(ctx, recipient, text)
	g.metrics.Delivered(ModePush, res.OK)
	return res
}

func (g *TelegramGateway) push(ctx context.Context, recipient string, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Failed(ReasonEmptyText)
	}
	chatID, ok := ParseRecipient(recipient)
	if !ok {
		return Failed(ReasonBadChatID)
	}
	return g.send(ctx, chatID, 0, text)
}

func (g *TelegramGateway) Reply(ctx context.Context, handle *ReplyHandle, text string) Result {
	res, ok := checkReply(handle, text)
	if ok {
		res = g.send(ctx, handle.ChatID, handle.MessageID, text)
	}
	g.metrics.Delivered(ModeReply, res.OK)
	return res
}

// send delivers text as one or more messages; only the first one quotes
// replyTo.
func (g *TelegramGateway) send(ctx context.Context, chatID int64, replyTo int, text string) Result {
	for i, part := range SplitMessage(text, MaxMessageRunes) {
		if err := g.limiter.Wait(ctx); err != nil {
			return Failed(err.Error())
		}
		msg := tgbotapi.NewMessage(chatID, part)
		if i == 0 && replyTo != 0 {
			msg.ReplyToMessageID = replyTo
		}
		if _, err := g.bot.Send(msg); err != nil {
			slog.Error("Failed to send telegram message", "chat_id", chatID, "part", i, "error", err)
			return Failed(err.Error())
		}
	}
	return Ok()
}

// SplitMessage cuts text into chunks of at most limit runes, preferring
// line breaks.
func SplitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if curLen > 0 {
			parts = append(parts, strings.TrimRight(cur.String(), "\n"))
			cur.Reset()
			curLen = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		n := utf8.RuneCountInString(line)
		if curLen+n <= limit {
			cur.WriteString(line)
			curLen += n
			continue
		}
		flush()
		// Строка длиннее лимита режется по рунам.
		runes := []rune(line)
		for len(runes) > limit {
			parts = append(parts, string(runes[:limit]))
			runes = runes[limit:]
		}
		cur.WriteString(string(runes))
		curLen = len(runes)
	}
	flush()
	return parts
}
