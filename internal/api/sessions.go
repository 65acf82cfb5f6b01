package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/careercompass/internal/notify"
	"github.com/kalambet/careercompass/internal/profile"
	"github.com/kalambet/careercompass/internal/wizard"
)

// SessionResponse carries the wizard state and the notifications emitted
// while serving the request.
type SessionResponse struct {
	ID            string                `json:"id"`
	State         wizard.State          `json:"state"`
	Notifications []notify.Notification `json:"notifications"`
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, s *wizard.Session)

// withSession resolves {id} and attaches the session's recorder to the
// request context, so anything a handler triggers lands in the response.
func (a *app) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s, err := a.Sessions.Get(id)
		if errors.Is(err, wizard.ErrUnknownSession) {
			httpError(w, http.StatusNotFound, "not_found", "session %q not found", id)
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "loading session: %v", err)
			return
		}
		ctx := notify.NewContext(r.Context(), s.Events)
		h(w, r.WithContext(ctx), s)
	}
}

func respondSession(w http.ResponseWriter, code int, s *wizard.Session) {
	writeJSON(w, code, SessionResponse{
		ID:            s.ID,
		State:         s.Controller.Snapshot(),
		Notifications: s.Events.Drain(),
	})
}

func (a *app) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	s, err := a.Sessions.Create()
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "creating session: %v", err)
		return
	}
	respondSession(w, http.StatusCreated, s)
}

func (a *app) handleGetSession(w http.ResponseWriter, r *http.Request, s *wizard.Session) {
	respondSession(w, http.StatusOK, s)
}

func (a *app) handleNext(w http.ResponseWriter, r *http.Request, s *wizard.Session) {
	if err := s.Controller.Advance(); err != nil {
		if errors.Is(err, wizard.ErrValidationBlocked) {
			respondSession(w, http.StatusUnprocessableEntity, s)
			return
		}
		httpError(w, http.StatusInternalServerError, "api_error", "advancing: %v", err)
		return
	}
	respondSession(w, http.StatusOK, s)
}

func (a *app) handleBack(w http.ResponseWriter, r *http.Request, s *wizard.Session) {
	s.Controller.Retreat()
	respondSession(w, http.StatusOK, s)
}

func (a *app) handleReset(w http.ResponseWriter, r *http.Request, s *wizard.Session) {
	if err := s.Controller.Reset(); err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "resetting: %v", err)
		return
	}
	respondSession(w, http.StatusOK, s)
}

func (a *app) handlePatchProfile(w http.ResponseWriter, r *http.Request, s *wizard.Session) {
	var patch profile.Patch
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := s.Controller.UpdateProfile(patch); err != nil {
		profileError(w, err)
		return
	}
	respondSession(w, http.StatusOK, s)
}

type listValueRequest struct {
	Value string `json:"value"`
}

func (a *app) handleAddToList(w http.ResponseWriter, r *http.Request, s *wizard.Session) {
	l, err := profile.ParseList(chi.URLParam(r, "list"))
	if err != nil {
		httpError(w, http.StatusNotFound, "not_found", "%v", err)
		return
	}
	var req listValueRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.Controller.AddTo(l, req.Value); err != nil {
		profileError(w, err)
		return
	}
	respondSession(w, http.StatusOK, s)
}

func (a *app) handleRemoveFromList(w http.ResponseWriter, r *http.Request, s *wizard.Session) {
	l, err := profile.ParseList(chi.URLParam(r, "list"))
	if err != nil {
		httpError(w, http.StatusNotFound, "not_found", "%v", err)
		return
	}
	value, err := url.PathUnescape(chi.URLParam(r, "value"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid value: %v", err)
		return
	}
	if err := s.Controller.RemoveFrom(l, value); err != nil {
		profileError(w, err)
		return
	}
	respondSession(w, http.StatusOK, s)
}

func profileError(w http.ResponseWriter, err error) {
	if errors.Is(err, profile.ErrInvalidPreference) {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
		return
	}
	httpError(w, http.StatusInternalServerError, "api_error", "saving profile: %v", err)
}
