// Package delivery sends rendered reports through the messaging platform.
package delivery

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
)

const (
	ModePush  = "push"
	ModeReply = "reply"

	ReasonEmptyText  = "empty text"
	ReasonHandleUsed = "reply handle already used"
	ReasonNoHandle   = "no reply handle"
	ReasonBadChatID  = "malformed recipient id"
)

// Result reports one delivery. There is no retry: a failed result is only
// logged by the caller.
type Result struct {
	OK     bool
	Reason string
}

func Ok() Result { return Result{OK: true} }

func Failed(reason string) Result { return Result{Reason: reason} }

// ReplyHandle binds a reply to one inbound message. It can be used once.
type ReplyHandle struct {
	ChatID    int64
	MessageID int
	used      atomic.Bool
}

func NewReplyHandle(chatID int64, messageID int) *ReplyHandle {
	return &ReplyHandle{ChatID: chatID, MessageID: messageID}
}

// claim marks the handle used; false if it already was.
func (h *ReplyHandle) claim() bool {
	return h.used.CompareAndSwap(false, true)
}

// Used reports whether a reply was already attempted with this handle.
func (h *ReplyHandle) Used() bool {
	return h.used.Load()
}

// Gateway is the outbound side of the messaging platform.
type Gateway interface {
	// Push sends an unsolicited message to a recipient id.
	Push(ctx context.Context, recipient string, text string) Result
	// Reply answers the inbound message behind handle, at most once.
	Reply(ctx context.Context, handle *ReplyHandle, text string) Result
}

// ParseRecipient converts a chat id string.
func ParseRecipient(recipient string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(recipient), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// checkReply validates text and consumes the handle.
func checkReply(handle *ReplyHandle, text string) (Result, bool) {
	if handle == nil {
		return Failed(ReasonNoHandle), false
	}
	if strings.TrimSpace(text) == "" {
		return Failed(ReasonEmptyText), false
	}
	if !handle.claim() {
		return Failed(ReasonHandleUsed), false
	}
	return Result{}, true
}
