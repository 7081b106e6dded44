package delivery

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Vodeneev/oddsbot/internal/pkg/metrics"
)

// Ensure LogGateway implements Gateway
var _ Gateway = (*LogGateway)(nil)

// LogGateway is the dry-run gateway: it logs instead of sending.
type LogGateway struct {
	metrics *metrics.Metrics
}

func NewLogGateway(m *metrics.Metrics) *LogGateway {
	return &LogGateway{metrics: m}
}

func (g *LogGateway) Push(_ context.Context, recipient string, text string) Result {
	res := Ok()
	switch {
	case strings.TrimSpace(text) == "":
		res = Failed(ReasonEmptyText)
	default:
		if _, ok := ParseRecipient(recipient); !ok {
			res = Failed(ReasonBadChatID)
		}
	}
	if res.OK {
		slog.Info("Dry-run push", "recipient", recipient, "text", text)
	}
	g.metrics.Delivered(ModePush, res.OK)
	return res
}

func (g *LogGateway) Reply(_ context.Context, handle *ReplyHandle, text string) Result {
	res, ok := checkReply(handle, text)
	if ok {
		slog.Info("Dry-run reply", "chat_id", handle.ChatID, "message_id", handle.MessageID, "text", text)
		res = Ok()
	}
	g.metrics.Delivered(ModeReply, res.OK)
	return res
}
