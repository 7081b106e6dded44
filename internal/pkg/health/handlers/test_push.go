package handlers

import (
	"context"
	"net/http"
)

// HandleTestPush runs a manual broadcast and returns its acknowledgement.
func HandleTestPush(push func(ctx context.Context) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ack := push(r.Context())
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(ack + "\n"))
	}
}
