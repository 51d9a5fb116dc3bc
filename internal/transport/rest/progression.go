package rest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/genius-progression/internal/domain"
	"github.com/heartmarshall/genius-progression/internal/service/progression"
	"github.com/heartmarshall/genius-progression/pkg/ctxutil"
)

const (
	defaultSavedCardsLimit = 50
	maxSavedCardsLimit     = 200
)

// trackerRunner defines the minimal interface needed by ProgressionHandler.
type trackerRunner interface {
	Do(ctx context.Context, userID uuid.UUID, fn func(t *progression.Tracker) error) error
}

type savedCardLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID, category string, limit int) ([]domain.SavedCard, error)
}

// ProgressionHandler serves the progression REST endpoints.
type ProgressionHandler struct {
	trackers trackerRunner
	saved    savedCardLister
	log      *slog.Logger
}

// NewProgressionHandler creates a ProgressionHandler.
func NewProgressionHandler(trackers trackerRunner, saved savedCardLister, logger *slog.Logger) *ProgressionHandler {
	return &ProgressionHandler{
		trackers: trackers,
		saved:    saved,
		log:      logger.With("handler", "progression"),
	}
}

// Register mounts the handler's routes on mux.
func (h *ProgressionHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/progress", h.Progress)
	mux.HandleFunc("POST /v1/swipes", h.Swipe)
	mux.HandleFunc("GET /v1/saved-cards", h.SavedCards)
	mux.HandleFunc("POST /v1/sessions", h.StartSession)
	mux.HandleFunc("POST /v1/sessions/reviews", h.Review)
	mux.HandleFunc("POST /v1/sessions/complete", h.CompleteSession)
	mux.HandleFunc("GET /v1/hearts", h.Hearts)
	mux.HandleFunc("POST /v1/hearts/consume", h.ConsumeHeart)
	mux.HandleFunc("POST /v1/hearts/refill", h.RefillHearts)
	mux.HandleFunc("PUT /v1/premium", h.SetPremium)
	mux.HandleFunc("GET /v1/achievements", h.Achievements)
	mux.HandleFunc("POST /v1/achievements/{id}/trigger", h.TriggerSpecial)
	mux.HandleFunc("GET /v1/export", h.Export)
	mux.HandleFunc("POST /v1/import", h.Import)
}

// Progress handles GET /v1/progress.
func (h *ProgressionHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var view domain.ProgressView
	err := h.trackers.Do(r.Context(), userID, func(t *progression.Tracker) error {
		var err error
		view, err = t.Progress()
		return err
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProgressResponse(view))
}

// Swipe handles POST /v1/swipes.
func (h *ProgressionHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req swipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	var reward domain.Reward
	err := h.trackers.Do(ctx, userID, func(t *progression.Tracker) error {
		var err error
		reward, err = t.OnCardSwiped(ctx, progression.SwipeInput{
			CardID:    req.CardID,
			Category:  req.Category,
			Direction: domain.SwipeDirection(req.Direction),
		})
		return err
	})
	if err != nil {
		handleError(ctx, h.log, w, err)
		return
	}

	logWarning(ctx, h.log, "swipe", reward.Warning)
	writeJSON(w, http.StatusOK, toRewardResponse(reward))
}

// SavedCards handles GET /v1/saved-cards?category=&limit=.
func (h *ProgressionHandler) SavedCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	limit := defaultSavedCardsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxSavedCardsLimit {
			handleError(r.Context(), h.log, w,
				domain.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", maxSavedCardsLimit)))
			return
		}
		limit = n
	}

	cards, err := h.saved.ListByUser(r.Context(), userID, r.URL.Query().Get("category"), limit)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := make([]savedCardResponse, 0, len(cards))
	for _, c := range cards {
		resp = append(resp, savedCardResponse{CardID: c.CardID, Category: c.Category, SavedAt: c.SavedAt})
	}
	writeJSON(w, http.StatusOK, resp)
}

// StartSession handles POST /v1/sessions.
func (h *ProgressionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	var set *domain.FlashcardSet
	err := h.trackers.Do(ctx, userID, func(t *progression.Tracker) error {
		var err error
		set, err = t.StartSession(ctx, req.SetID)
		return err
	})
	if err != nil {
		handleError(ctx, h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(set))
}

// Review handles POST /v1/sessions/reviews.
func (h *ProgressionHandler) Review(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	var outcome progression.ReviewOutcome
	err := h.trackers.Do(ctx, userID, func(t *progression.Tracker) error {
		var err error
		outcome, err = t.OnFlashcardReviewed(ctx, progression.ReviewInput{CardID: req.CardID, Correct: req.Correct})
		return err
	})
	if err != nil {
		handleError(ctx, h.log, w, err)
		return
	}

	logWarning(ctx, h.log, "review", outcome.Warning)
	writeJSON(w, http.StatusOK, toReviewResponse(outcome))
}

// CompleteSession handles POST /v1/sessions/complete.
func (h *ProgressionHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req completeSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	summary := domain.SessionSummary{
		SetID:          req.SetID,
		CardsStudied:   req.CardsStudied,
		CardsCorrect:   req.CardsCorrect,
		CardsIncorrect: req.CardsIncorrect,
		Duration:       time.Duration(req.DurationMs) * time.Millisecond,
	}

	var reward domain.Reward
	err := h.trackers.Do(ctx, userID, func(t *progression.Tracker) error {
		var err error
		reward, err = t.OnSessionCompleted(ctx, summary)
		return err
	})
	if err != nil {
		handleError(ctx, h.log, w, err)
		return
	}

	logWarning(ctx, h.log, "complete_session", reward.Warning)
	writeJSON(w, http.StatusOK, toRewardResponse(reward))
}

// Hearts handles GET /v1/hearts.
func (h *ProgressionHandler) Hearts(w http.ResponseWriter, r *http.Request) {
	h.hearts(w, r, "hearts", func(ctx context.Context, t *progression.Tracker) (domain.HeartsStatus, error) {
		return t.Hearts(ctx)
	})
}

// ConsumeHeart handles POST /v1/hearts/consume. 409 when no hearts are left.
func (h *ProgressionHandler) ConsumeHeart(w http.ResponseWriter, r *http.Request) {
	h.hearts(w, r, "consume_heart", func(ctx context.Context, t *progression.Tracker) (domain.HeartsStatus, error) {
		return t.ConsumeHeart(ctx)
	})
}

// RefillHearts handles POST /v1/hearts/refill.
func (h *ProgressionHandler) RefillHearts(w http.ResponseWriter, r *http.Request) {
	h.hearts(w, r, "refill_hearts", func(ctx context.Context, t *progression.Tracker) (domain.HeartsStatus, error) {
		return t.RefillHearts(ctx)
	})
}

// SetPremium handles PUT /v1/premium.
func (h *ProgressionHandler) SetPremium(w http.ResponseWriter, r *http.Request) {
	var req premiumRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.hearts(w, r, "set_premium", func(ctx context.Context, t *progression.Tracker) (domain.HeartsStatus, error) {
		return t.SetPremium(ctx, req.IsPremium)
	})
}

func (h *ProgressionHandler) hearts(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(ctx context.Context, t *progression.Tracker) (domain.HeartsStatus, error),
) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	var status domain.HeartsStatus
	err := h.trackers.Do(ctx, userID, func(t *progression.Tracker) error {
		var err error
		status, err = fn(ctx, t)
		return err
	})
	if err != nil {
		handleError(ctx, h.log, w, err)
		return
	}

	logWarning(ctx, h.log, op, status.Warning)
	writeJSON(w, http.StatusOK, toHeartsResponse(status))
}

// Achievements handles GET /v1/achievements.
func (h *ProgressionHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var (
		views   []domain.AchievementView
		summary domain.UnlockSummary
	)
	err := h.trackers.Do(r.Context(), userID, func(t *progression.Tracker) error {
		var err error
		views, summary, err = t.Achievements()
		return err
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAchievementsResponse(views, summary))
}

// TriggerSpecial handles POST /v1/achievements/{id}/trigger.
func (h *ProgressionHandler) TriggerSpecial(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	id := r.PathValue("id")
	var reward domain.Reward
	err := h.trackers.Do(ctx, userID, func(t *progression.Tracker) error {
		var err error
		reward, err = t.TriggerSpecial(ctx, id)
		return err
	})
	if err != nil {
		handleError(ctx, h.log, w, err)
		return
	}

	logWarning(ctx, h.log, "trigger_special", reward.Warning)
	writeJSON(w, http.StatusOK, toRewardResponse(reward))
}

// Export handles GET /v1/export. The body is the snapshot document.
func (h *ProgressionHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var data []byte
	err := h.trackers.Do(r.Context(), userID, func(t *progression.Tracker) error {
		var err error
		data, err = t.Export()
		return err
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="progression.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// Import handles POST /v1/import. The body is a snapshot produced by Export.
func (h *ProgressionHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(data) > maxBodyBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "snapshot too large")
		return
	}

	ctx := r.Context()
	var result progression.ImportResult
	err = h.trackers.Do(ctx, userID, func(t *progression.Tracker) error {
		var err error
		result, err = t.Import(ctx, data)
		return err
	})
	if err != nil {
		handleError(ctx, h.log, w, err)
		return
	}

	logWarning(ctx, h.log, "import", result.Warning)
	writeJSON(w, http.StatusOK, importResponse{
		Unlocked:  result.Unlocked,
		Skipped:   result.Skipped,
		Persisted: result.Warning == nil,
	})
}

func (h *ProgressionHandler) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return id, true
}
