package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/engine"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
)

// userHeader carries the authenticated user's ID. Authentication itself
// happens upstream; the gateway injects this header on every request.
const userHeader = "X-User-ID"

// Handler exposes the engine service over HTTP. It binds and validates
// requests, delegates to the service, and shapes responses; no engine logic
// lives here.
type Handler struct {
	svc *engine.Service
	log *logger.Logger
}

func NewHandler(svc *engine.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log.With("component", "httpapi")}
}

// userID resolves the calling user from the request header. On failure it
// writes the 400 response and reports false.
func userID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader(userHeader)
	if raw == "" {
		respondError(c, http.StatusBadRequest, "missing_user", fmt.Errorf("missing %s header", userHeader))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_user", fmt.Errorf("malformed %s header", userHeader))
		return uuid.Nil, false
	}
	return id, true
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type attemptRequest struct {
	ItemID     string             `json:"item_id"`
	Format     string             `json:"format"`
	Mode       string             `json:"mode"`
	Difficulty int                `json:"difficulty"`
	ScoreNorm  float64            `json:"score_norm"`
	ErrorTags  []string           `json:"error_tags"`
	Skills     map[string]float64 `json:"skills"`
	OccurredAt *time.Time         `json:"occurred_at"`
}

// SubmitAttempt ingests one graded submission.
//
// POST /api/v1/attempts
func (h *Handler) SubmitAttempt(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "unreadable_body", err)
		return
	}
	if err := validateGrading(raw); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	var req attemptRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}

	in := engine.AttemptInput{
		UserID:       uid,
		ItemID:       req.ItemID,
		Format:       skillgraph.Format(req.Format),
		Mode:         mastery.Mode(req.Mode),
		Difficulty:   req.Difficulty,
		ScoreNorm:    req.ScoreNorm,
		ErrorTags:    req.ErrorTags,
		SkillWeights: req.Skills,
	}
	if req.OccurredAt != nil {
		in.OccurredAt = *req.OccurredAt
	}

	res, err := h.svc.SubmitAttempt(c.Request.Context(), in)
	if err != nil {
		h.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GetPlan returns the user's daily plan, building one if none is cached.
//
// GET /api/v1/plan
func (h *Handler) GetPlan(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	plan, err := h.svc.GetPlan(c.Request.Context(), uid)
	if err != nil {
		h.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// RebuildPlan forces a fresh plan.
//
// POST /api/v1/plan/rebuild
func (h *Handler) RebuildPlan(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	plan, err := h.svc.RebuildPlan(c.Request.Context(), uid)
	if err != nil {
		h.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

type dueResponse struct {
	Due   int              `json:"due"`
	Cards []spacedCardView `json:"cards"`
}

type spacedCardView struct {
	CardID         string    `json:"card_id"`
	NextReviewDate time.Time `json:"next_review_date"`
	OverdueDays    float64   `json:"overdue_days"`
	Repetitions    int       `json:"repetitions"`
	EasinessFactor float64   `json:"easiness_factor"`
}

// DueReviews lists the cards waiting for review, most overdue first.
//
// GET /api/v1/reviews/due
func (h *Handler) DueReviews(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	cards, err := h.svc.DueCards(c.Request.Context(), uid)
	if err != nil {
		h.respondFailure(c, err)
		return
	}
	now := time.Now()
	resp := dueResponse{Due: len(cards), Cards: make([]spacedCardView, len(cards))}
	for i, card := range cards {
		resp.Cards[i] = spacedCardView{
			CardID:         card.CardID,
			NextReviewDate: card.NextReviewDate,
			OverdueDays:    card.OverdueDays(now),
			Repetitions:    card.Repetitions,
			EasinessFactor: card.EasinessFactor,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ReviewForecast projects the review load over the coming days.
//
// GET /api/v1/reviews/forecast?days=7
func (h *Handler) ReviewForecast(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	days := engine.DefaultForecastDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("days must be a positive integer"))
			return
		}
		days = parsed
	}
	forecast, err := h.svc.ReviewForecast(c.Request.Context(), uid, days)
	if err != nil {
		h.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "forecast": forecast})
}

type reviewRequest struct {
	Quality *int `json:"quality"`
}

// ReviewCard applies a quality rating to a card.
//
// POST /api/v1/reviews/:cardID
func (h *Handler) ReviewCard(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	if req.Quality == nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", fmt.Errorf("quality is required"))
		return
	}
	out, err := h.svc.ReviewCard(c.Request.Context(), uid, c.Param("cardID"), *req.Quality)
	if err != nil {
		h.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type addCardRequest struct {
	CardID string `json:"card_id"`
}

// AddCard registers reviewable content for spaced repetition.
//
// POST /api/v1/cards
func (h *Handler) AddCard(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req addCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	card, err := h.svc.AddCard(c.Request.Context(), uid, req.CardID)
	if err != nil {
		h.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// RetireCard soft-deletes a card from the review queue.
//
// DELETE /api/v1/cards/:cardID
func (h *Handler) RetireCard(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	if err := h.svc.RetireCard(c.Request.Context(), uid, c.Param("cardID")); err != nil {
		h.respondFailure(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SkillGate reports a skill's readiness gate standing.
//
// GET /api/v1/skills/:skillID/gate
func (h *Handler) SkillGate(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	status, err := h.svc.SkillGate(c.Request.Context(), uid, c.Param("skillID"))
	if err != nil {
		h.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Overview returns the per-unit readiness dashboard.
//
// GET /api/v1/overview
func (h *Handler) Overview(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	ov, err := h.svc.ReadinessOverview(c.Request.Context(), uid)
	if err != nil {
		h.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

type examProfileRequest struct {
	WrittenExamDate    *time.Time `json:"written_exam_date"`
	OralExamDate       *time.Time `json:"oral_exam_date"`
	DailyBudgetMinutes int        `json:"daily_budget_minutes"`
}

// SaveExamProfile stores exam dates and the daily study budget.
//
// PUT /api/v1/exam-profile
func (h *Handler) SaveExamProfile(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req examProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	profile, err := h.svc.SaveExamProfile(c.Request.Context(), engine.ExamProfileInput{
		UserID:             uid,
		WrittenExamDate:    req.WrittenExamDate,
		OralExamDate:       req.OralExamDate,
		DailyBudgetMinutes: req.DailyBudgetMinutes,
	})
	if err != nil {
		h.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type onboardingRequest struct {
	Levels             map[string]int `json:"levels"`
	WrittenExamDate    *time.Time     `json:"written_exam_date"`
	OralExamDate       *time.Time     `json:"oral_exam_date"`
	DailyBudgetMinutes int            `json:"daily_budget_minutes"`
}

// Onboard seeds mastery priors from unit self-assessments and creates the
// exam profile.
//
// POST /api/v1/onboarding
func (h *Handler) Onboard(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	levels := make(map[skillgraph.Unit]int, len(req.Levels))
	for unit, level := range req.Levels {
		levels[skillgraph.Unit(unit)] = level
	}
	res, err := h.svc.Onboard(c.Request.Context(), engine.OnboardingInput{
		UserID:             uid,
		Levels:             levels,
		WrittenExamDate:    req.WrittenExamDate,
		OralExamDate:       req.OralExamDate,
		DailyBudgetMinutes: req.DailyBudgetMinutes,
	})
	if err != nil {
		h.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
