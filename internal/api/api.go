package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/kalambet/careercompass/internal/advisor"
	"github.com/kalambet/careercompass/internal/career"
	"github.com/kalambet/careercompass/internal/profile"
	"github.com/kalambet/careercompass/internal/storage"
	"github.com/kalambet/careercompass/internal/wizard"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Advisor produces recommendations. *advisor.Gateway and catalog.Advisor both
// satisfy it.
type Advisor interface {
	CareerSuggestions(ctx context.Context, p profile.Profile) []career.Suggestion
	SkillGap(ctx context.Context, p profile.Profile, careerTitle string) career.SkillGap
}

// ShareStore keeps profile snapshots. Implemented by storage.Store.
type ShareStore interface {
	SaveShare(sh storage.Share) error
	GetShare(id string) (storage.Share, error)
}

// RunCounter reports gateway call outcomes. Implemented by storage.Store.
type RunCounter interface {
	CountRunsByStatus() (map[string]int, error)
}

type AppDeps struct {
	Sessions *wizard.Registry
	Advisor  Advisor
	Analyzer advisor.PersonalityAnalyzer
	Shares   ShareStore
	Runs     RunCounter // optional
	Mode     string     // "online" or "offline", reported by /status

	// GatewayPerMinute limits calls that reach the completion service.
	// Zero disables the limit.
	GatewayPerMinute int
}

type app struct {
	AppDeps
	flights singleflight.Group
	limiter *rate.Limiter
}

// NewAppHandler returns the JSON API over the wizard and the recommendation
// services.
func NewAppHandler(deps AppDeps) http.Handler {
	a := &app{AppDeps: deps, limiter: newLimiter(deps.GatewayPerMinute)}

	r := chi.NewRouter()
	r.Get("/health", handleHealth)
	r.Get("/status", a.handleStatus)
	r.Get("/options", handleOptions)

	r.Post("/sessions", a.handleCreateSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", a.withSession(a.handleGetSession))
		r.Post("/next", a.withSession(a.handleNext))
		r.Post("/back", a.withSession(a.handleBack))
		r.Post("/reset", a.withSession(a.handleReset))
		r.Patch("/profile", a.withSession(a.handlePatchProfile))
		r.Post("/profile/{list}", a.withSession(a.handleAddToList))
		r.Delete("/profile/{list}/{value}", a.withSession(a.handleRemoveFromList))
		r.Post("/share", a.withSession(a.handleShare))

		r.Group(func(r chi.Router) {
			r.Use(a.limitGateway)
			r.Get("/recommendations", a.withSession(a.handleRecommendations))
			r.Post("/skill-gap", a.withSession(a.handleSkillGap))
		})
	})

	r.Post("/compare", handleCompare)
	r.Get("/personality/questions", handlePersonalityQuestions)
	r.With(a.limitGateway).Post("/personality", a.handlePersonality)
	r.Get("/shares/{shareID}", a.handleGetShare)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// StatusResponse is served by GET /status.
type StatusResponse struct {
	Mode     string         `json:"mode"`
	Sessions int            `json:"sessions"`
	Runs     map[string]int `json:"runs"`
}

func (a *app) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{Mode: a.Mode, Sessions: a.Sessions.Len(), Runs: map[string]int{}}
	if a.Runs != nil {
		counts, err := a.Runs.CountRunsByStatus()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "counting runs: %v", err)
			return
		}
		resp.Runs = counts
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, profile.Options())
}

func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

// limitGateway rejects requests with 429 once the completion budget is spent.
func (a *app) limitGateway(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.limiter.Allow() {
			w.Header().Set("Retry-After", "60")
			httpError(w, http.StatusTooManyRequests, "rate_limit_error", "too many recommendation requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response failed", "error", err)
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
