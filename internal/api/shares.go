package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kalambet/careercompass/internal/profile"
	"github.com/kalambet/careercompass/internal/storage"
	"github.com/kalambet/careercompass/internal/wizard"
)

const (
	shareIDLen      = 6
	shareIDAttempts = 3
)

type ShareResponse struct {
	ID        string          `json:"id"`
	Profile   profile.Profile `json:"profile"`
	CreatedAt time.Time       `json:"createdAt"`
}

func newShareID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:shareIDLen]
}

func (a *app) handleShare(w http.ResponseWriter, r *http.Request, s *wizard.Session) {
	p := s.Controller.Profile()
	raw, err := json.Marshal(p)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "encoding profile: %v", err)
		return
	}

	sh := storage.Share{
		SessionID:   s.ID,
		ProfileJSON: string(raw),
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	// Six hex characters collide eventually; retry with a fresh id.
	for range shareIDAttempts {
		sh.ID = newShareID()
		if err = a.Shares.SaveShare(sh); err == nil {
			break
		}
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "saving share: %v", err)
		return
	}
	writeJSON(w, http.StatusCreated, ShareResponse{ID: sh.ID, Profile: p, CreatedAt: sh.CreatedAt})
}

func (a *app) handleGetShare(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shareID")
	sh, err := a.Shares.GetShare(id)
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "share %q not found", id)
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "loading share: %v", err)
		return
	}

	var p profile.Profile
	if err := json.Unmarshal([]byte(sh.ProfileJSON), &p); err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "decoding share: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, ShareResponse{ID: sh.ID, Profile: p, CreatedAt: sh.CreatedAt})
}
