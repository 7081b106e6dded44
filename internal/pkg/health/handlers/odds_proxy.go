package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Vodeneev/oddsbot/internal/odds"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/models"
)

// OddsLister is the odds source served on /odds-proxy.
type OddsLister interface {
	ListOdds(ctx context.Context, sport enums.Sport) ([]models.OddsLine, error)
}

// HandleOddsProxy re-serves the odds source as {"status","data"}. A source
// failure is reported in the envelope with status 200, an unknown sport
// with 400.
func HandleOddsProxy(src OddsLister, defaultSport enums.Sport) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sport := defaultSport
		if q := r.URL.Query().Get("sport"); q != "" {
			s, ok := enums.ParseSport(q)
			if !ok {
				writeEnvelope(w, http.StatusBadRequest, odds.Envelope{
					Status:  "error",
					Message: "unknown sport " + q,
					Data:    []models.OddsLine{},
				})
				return
			}
			sport = s
		}

		lines, err := src.ListOdds(r.Context(), sport)
		if err != nil {
			slog.Error("Odds proxy fetch failed", "sport", sport, "error", err)
			writeEnvelope(w, http.StatusOK, odds.Envelope{Status: "error", Message: err.Error(), Data: []models.OddsLine{}})
			return
		}
		if lines == nil {
			lines = []models.OddsLine{}
		}
		writeEnvelope(w, http.StatusOK, odds.Envelope{Status: odds.StatusSuccess, Data: lines})
	}
}

func writeEnvelope(w http.ResponseWriter, status int, env odds.Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("Failed to encode odds envelope", "error", err)
	}
}
