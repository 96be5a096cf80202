package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/pinhole/internal/model"
	"github.com/Veraticus/pinhole/internal/settings"
	"github.com/gorilla/mux"
)

type profileResponse struct {
	CreatedAt time.Time            `json:"createdAt"`
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Settings  model.SettingsRecord `json:"settings"`
}

func toProfileResponse(p model.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		Settings:  model.RecordFrom(p.Settings),
	}
}

type createProfileRequest struct {
	Settings *settings.Patch `json:"settings,omitempty"`
	Name     string          `json:"name"`
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.backend.ListProfiles(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreateProfile saves the current settings under a name. Settings in the
// body are laid over the current ones first.
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "profile name is required")
		return
	}

	cs := s.store.Snapshot()
	if req.Settings != nil {
		cs = req.Settings.ApplyTo(cs)
	}
	if err := settings.Validate(cs); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	profile := &model.Profile{Name: strings.TrimSpace(req.Name), Settings: cs}
	if err := s.backend.CreateProfile(r.Context(), profile); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProfileResponse(*profile))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.backend.GetProfile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(*profile))
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.DeleteProfile(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLoadProfile makes a saved profile the current settings.
func (s *Server) handleLoadProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.backend.GetProfile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	next, err := s.store.Replace(r.Context(), profile.Settings)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.RecordFrom(next))
}
