package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UpdateSource is the long-polling side of *tgbotapi.BotAPI.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// RunPolling handles updates one at a time until ctx is done.
func RunPolling(ctx context.Context, src UpdateSource, timeout int, h *Handler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeout

	updates := src.GetUpdatesChan(u)
	slog.Info("Telegram long polling started", "timeout", timeout)

	for {
		select {
		case <-ctx.Done():
			src.StopReceivingUpdates()
			slog.Info("Telegram long polling stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			ev, ok := EventFromUpdate(update)
			if !ok {
				continue
			}
			h.HandleInboundEvent(ctx, ev)
		}
	}
}
