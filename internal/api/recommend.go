package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"

	"github.com/kalambet/careercompass/internal/advisor"
	"github.com/kalambet/careercompass/internal/career"
	"github.com/kalambet/careercompass/internal/notify"
	"github.com/kalambet/careercompass/internal/profile"
	"github.com/kalambet/careercompass/internal/wizard"
)

type RecommendationsResponse struct {
	Careers       []career.Suggestion   `json:"careers"`
	Notifications []notify.Notification `json:"notifications"`
}

type SkillGapRequest struct {
	Career         string   `json:"career"`
	RequiredSkills []string `json:"requiredSkills,omitempty"`
}

type SkillGapResponse struct {
	Result        career.SkillGap       `json:"result"`
	SkillMatch    int                   `json:"skillMatch"`
	Notifications []notify.Notification `json:"notifications"`
}

type CompareRequest struct {
	Careers []career.Suggestion `json:"careers"`
}

type PersonalityRequest struct {
	Answers advisor.Answers `json:"answers"`
}

type PersonalityResponse struct {
	Result        advisor.PersonalityResult `json:"result"`
	Notifications []notify.Notification     `json:"notifications"`
}

// flightResult is what a collapsed gateway call hands to every waiter.
type flightResult struct {
	value         any
	notifications []notify.Notification
}

// collapse runs fn once among concurrent callers asking op for the same
// session and profile. A caller whose profile changed meanwhile gets its own
// flight. fn gets a context detached from any single request so an early
// disconnect does not cancel the call for the others. Notifications fn emits
// are returned to every caller.
func (a *app) collapse(r *http.Request, s *wizard.Session, op string, p profile.Profile, fn func(ctx context.Context, p profile.Profile) any) flightResult {
	v, _, _ := a.flights.Do(flightKey(op, s.ID, p), func() (any, error) {
		var rec notify.Recorder
		ctx := context.WithoutCancel(r.Context())
		ctx = advisor.WithSession(ctx, s.ID)
		ctx = notify.NewContext(ctx, &rec)
		return flightResult{value: fn(ctx, p), notifications: rec.Drain()}, nil
	})
	return v.(flightResult)
}

// flightKey is op, session and a digest of the profile the call is made for.
func flightKey(op, sessionID string, p profile.Profile) string {
	h := fnv.New64a()
	_ = json.NewEncoder(h).Encode(p) // strings and slices only
	return fmt.Sprintf("%s:%s:%016x", op, sessionID, h.Sum64())
}

func (a *app) handleRecommendations(w http.ResponseWriter, r *http.Request, s *wizard.Session) {
	res := a.collapse(r, s, "careers", s.Controller.Profile(), func(ctx context.Context, p profile.Profile) any {
		return a.Advisor.CareerSuggestions(ctx, p)
	})
	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Careers:       res.value.([]career.Suggestion),
		Notifications: append(s.Events.Drain(), res.notifications...),
	})
}

func (a *app) handleSkillGap(w http.ResponseWriter, r *http.Request, s *wizard.Session) {
	var req SkillGapRequest
	if !decodeBody(w, r, &req) {
		return
	}
	title := strings.TrimSpace(req.Career)
	if title == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "career is required")
		return
	}

	res := a.collapse(r, s, "skill_gap:"+title, s.Controller.Profile(), func(ctx context.Context, p profile.Profile) any {
		return a.Advisor.SkillGap(ctx, p, title)
	})
	gap := res.value.(career.SkillGap)
	writeJSON(w, http.StatusOK, SkillGapResponse{
		Result:        gap,
		SkillMatch:    career.SkillMatch(career.Suggestion{RequiredSkills: req.RequiredSkills}, gap),
		Notifications: append(s.Events.Drain(), res.notifications...),
	})
}

func handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	cmp, err := career.Compare(req.Careers)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func handlePersonalityQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, advisor.Questions())
}

func (a *app) handlePersonality(w http.ResponseWriter, r *http.Request) {
	var req PersonalityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var rec notify.Recorder
	ctx := notify.NewContext(r.Context(), &rec)
	result, err := advisor.Analyze(ctx, a.Analyzer, req.Answers)
	if errors.Is(err, advisor.ErrIncompleteAnswers) {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "analyzing answers: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, PersonalityResponse{Result: result, Notifications: rec.Drain()})
}
