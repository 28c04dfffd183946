package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"telegram-language-bot/internal/domain"
	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/infra/logging"
	"telegram-language-bot/internal/usecase"
)

type userView struct {
	ID               int64               `json:"user_id"`
	Username         string              `json:"username"`
	FirstName        string              `json:"first_name"`
	LastName         string              `json:"last_name"`
	ReferralCode     string              `json:"referral_code"`
	ReferredBy       *int64              `json:"referred_by,omitempty"`
	PremiumActive    bool                `json:"premium_active"`
	PremiumExpiresAt *time.Time          `json:"premium_expires_at,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	LastActivity     time.Time           `json:"last_activity"`
	QuizAttempts     int                 `json:"quiz_attempts"`
	QuizScoreTotal   int                 `json:"quiz_score_total"`
	Rating           model.RatingDetails `json:"rating"`
	CompletedContent int                 `json:"completed_content"`
}

// grants longer than a century are rejected before they overflow time.Duration
const maxPremiumDays = 36500

func newUserView(u *model.User, now time.Time) userView {
	return userView{
		ID:               u.ID,
		Username:         u.Username,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		ReferralCode:     u.ReferralCode,
		ReferredBy:       u.ReferredBy,
		PremiumActive:    u.PremiumActiveAt(now),
		PremiumExpiresAt: u.PremiumExpiresAt,
		CreatedAt:        u.CreatedAt,
		LastActivity:     u.LastActivity,
		QuizAttempts:     u.QuizAttempts,
		QuizScoreTotal:   u.QuizScoreTotal,
		Rating:           u.RatingDetails(),
	}
}

type premiumGrantRequest struct {
	Days int `json:"days"`
}

type premiumGrantResponse struct {
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"premium_expires_at"`
}

func healthHandler(check func(r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r); err != nil {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func statsHandler(statsUC usecase.StatsUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := statsUC.AdminStatistics(r.Context())
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func leaderboardHandler(accountUC usecase.AccountUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		entries, err := accountUC.Leaderboard(r.Context(), limit)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		if entries == nil {
			entries = []model.LeaderboardEntry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func userGetHandler(accountUC usecase.AccountUseCase, progressUC usecase.ProgressUseCase, now func() time.Time, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r, id, ok := userPathID(w, r)
		if !ok {
			return
		}
		u, err := accountUC.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		if u == nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		view := newUserView(u, now())
		if progressUC != nil {
			n, err := progressUC.CompletedCount(r.Context(), id)
			if err != nil {
				writeError(w, r, logger, err)
				return
			}
			view.CompletedContent = n
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func premiumGrantHandler(accountUC usecase.AccountUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r, id, ok := userPathID(w, r)
		if !ok {
			return
		}

		var req premiumGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Days < 0 {
			http.Error(w, "days must not be negative", http.StatusBadRequest)
			return
		}
		if req.Days > maxPremiumDays {
			http.Error(w, "days must not exceed "+strconv.Itoa(maxPremiumDays), http.StatusBadRequest)
			return
		}

		if !userExists(w, r, accountUC, id, logger) {
			return
		}

		// zero days falls back to the configured default
		expiresAt, err := accountUC.ActivatePremium(r.Context(), id, time.Duration(req.Days)*24*time.Hour)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, premiumGrantResponse{UserID: id, ExpiresAt: expiresAt})
	}
}

func premiumRevokeHandler(accountUC usecase.AccountUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r, id, ok := userPathID(w, r)
		if !ok {
			return
		}
		if !userExists(w, r, accountUC, id, logger) {
			return
		}
		if err := accountUC.RevokePremium(r.Context(), id); err != nil {
			writeError(w, r, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func premiumContentListHandler(premiumUC usecase.PremiumContentUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var track model.TrackType
		if s := r.URL.Query().Get("track"); s != "" {
			t, err := model.ParseTrackType(s)
			if err != nil {
				http.Error(w, "invalid track", http.StatusBadRequest)
				return
			}
			track = t
		}

		items, err := premiumUC.List(r.Context(), track)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		if items == nil {
			items = []*model.PremiumContent{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func sectionDeleteHandler(catalogUC usecase.CatalogUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return deleteHandler(catalogUC.DeleteSection, logger)
}

func quizDeleteHandler(quizUC usecase.QuizUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return deleteHandler(quizUC.DeleteQuiz, logger)
}

func deleteHandler(del func(ctx context.Context, id int64) error, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := del(r.Context(), id); err != nil {
			writeError(w, r, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func userExists(w http.ResponseWriter, r *http.Request, accountUC usecase.AccountUseCase, id int64, logger *zerolog.Logger) bool {
	u, err := accountUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, logger, err)
		return false
	}
	if u == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// userPathID is pathID for /users/{id} routes; the returned request logs with user_id.
func userPathID(w http.ResponseWriter, r *http.Request) (*http.Request, int64, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return r, 0, false
	}
	return r.WithContext(logging.WithUserID(r.Context(), id)), id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, logger *zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		l := logging.With(r.Context(), logger)
		l.Error().Err(err).Str("path", r.URL.Path).Msg("admin request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
