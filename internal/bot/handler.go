package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vodeneev/oddsbot/internal/delivery"
	"github.com/Vodeneev/oddsbot/internal/pipeline"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
)

const accessDeniedText = "Access denied. You are not authorized to use this bot."

// Reporter is the part of the pipeline the bot drives.
type Reporter interface {
	Generate(ctx context.Context, sport enums.Sport, keyword string) string
	Broadcast(ctx context.Context, sport enums.Sport, recipients []string, trigger string) []pipeline.Delivery
}

// Event is one inbound message. Non-text messages have empty Text.
type Event struct {
	Text   string
	UserID int64
	Reply  *delivery.ReplyHandle
}

// EventFromUpdate extracts the message of an update; false when the update
// carries no message.
func EventFromUpdate(u tgbotapi.Update) (Event, bool) {
	m := u.Message
	if m == nil || m.Chat == nil {
		return Event{}, false
	}
	ev := Event{
		Text:  m.Text,
		Reply: delivery.NewReplyHandle(m.Chat.ID, m.MessageID),
	}
	if m.From != nil {
		ev.UserID = m.From.ID
	}
	return ev, true
}

// Handler answers inbound events. Each event gets at most one reply.
type Handler struct {
	reporter     Reporter
	gateway      delivery.Gateway
	recipients   []string
	defaultSport enums.Sport
	allowed      map[int64]bool
}

// NewHandler creates a handler. An empty allowedUserIDs lets everyone in.
func NewHandler(r Reporter, g delivery.Gateway, recipients []int64, allowedUserIDs []int64, defaultSport enums.Sport) *Handler {
	h := &Handler{
		reporter:     r,
		gateway:      g,
		recipients:   Recipients(recipients),
		defaultSport: defaultSport,
	}
	if len(allowedUserIDs) > 0 {
		h.allowed = make(map[int64]bool, len(allowedUserIDs))
		for _, id := range allowedUserIDs {
			h.allowed[id] = true
		}
	}
	return h
}

// Recipients formats chat ids for the gateway.
func Recipients(ids []int64) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strconv.FormatInt(id, 10))
	}
	return out
}

// HandleInboundEvent builds the answer and replies through the gateway.
// It returns false for events without text; nothing is sent for them.
func (h *Handler) HandleInboundEvent(ctx context.Context, ev Event) (string, bool) {
	if ev.Text == "" {
		return "", false
	}

	text := h.answer(ctx, ev)
	if ev.Reply != nil {
		if res := h.gateway.Reply(ctx, ev.Reply, text); !res.OK {
			slog.Error("Reply failed", "error", &pipeline.DeliveryFailure{
				Recipient: strconv.FormatInt(ev.Reply.ChatID, 10),
				Reason:    res.Reason,
			})
		}
	}
	return text, true
}

func (h *Handler) answer(ctx context.Context, ev Event) string {
	if h.allowed != nil && !h.allowed[ev.UserID] {
		slog.Warn("Command from user not in allow-list", "user_id", ev.UserID)
		return accessDeniedText
	}

	cmd := ParseCommand(ev.Text)
	switch cmd.Kind {
	case KindReport:
		slog.Info("Report command", "sport", cmd.Sport, "keyword", cmd.Keyword, "user_id", ev.UserID)
		return h.reporter.Generate(ctx, cmd.Sport, cmd.Keyword)
	case KindTest:
		return h.TestPush(ctx)
	default:
		return HelpText
	}
}

// TestPush broadcasts the default sport and returns an acknowledgement.
func (h *Handler) TestPush(ctx context.Context) string {
	if len(h.recipients) == 0 {
		return "⚠️ 沒有設定推播對象"
	}
	out := h.reporter.Broadcast(ctx, h.defaultSport, h.recipients, pipeline.TriggerManual)
	ok := 0
	for _, d := range out {
		if d.Result.OK {
			ok++
		}
	}
	return fmt.Sprintf("✅ 測試推播完成（%d/%d）", ok, len(out))
}
