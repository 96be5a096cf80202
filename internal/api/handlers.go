package api

import (
	"net/http"

	"github.com/Veraticus/pinhole/internal/exposure"
	"github.com/Veraticus/pinhole/internal/model"
	"github.com/Veraticus/pinhole/internal/settings"
	"github.com/Veraticus/pinhole/internal/viewfinder"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

func (s *Server) handleConditions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.LightingConditions)
}

func (s *Server) handleFilters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.Filters)
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.FilmFormats)
}

func (s *Server) handleISO(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.ISOValues)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.RecordFrom(s.store.Snapshot()))
}

func (s *Server) handlePatchSettings(w http.ResponseWriter, r *http.Request) {
	var patch settings.Patch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings: "+err.Error())
		return
	}

	next, err := s.store.Update(r.Context(), patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.RecordFrom(next))
}

func (s *Server) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	next, err := s.store.Reset(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.RecordFrom(next))
}

type exposureStep struct {
	Exposure     string  `json:"exposure"`
	Seconds      float64 `json:"seconds"`
	BracketStops int     `json:"bracketStops"`
}

// exposureResponse is the body for a computed exposure. Every scalar is
// always present so zero means zero; an absent exposure is written as
// noExposureResponse instead.
type exposureResponse struct {
	Exposure           *string        `json:"exposure"`
	Condition          string         `json:"condition"`
	Ladder             []exposureStep `json:"ladder,omitempty"`
	Seconds            float64        `json:"seconds"`
	ActualFStop        float64        `json:"actualFStop"`
	ReferenceFStop     float64        `json:"referenceFStop"`
	OptimalPinhole     float64        `json:"optimalPinhole"`
	FilterStops        int            `json:"filterStops"`
	BracketStops       int            `json:"bracketStops"`
	ReciprocityApplied bool           `json:"reciprocityApplied"`
}

type noExposureResponse struct {
	Exposure *string `json:"exposure"`
}

// handleExposure computes the exposure for the current settings with any
// fields in the body laid over them. The store is not modified.
func (s *Server) handleExposure(w http.ResponseWriter, r *http.Request) {
	var patch settings.Patch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings: "+err.Error())
		return
	}

	cs := patch.ApplyTo(s.store.Snapshot())
	res, ok := exposure.Compute(cs)
	if !ok {
		writeJSON(w, http.StatusOK, noExposureResponse{})
		return
	}

	formatted := res.Formatted
	resp := exposureResponse{
		Exposure:           &formatted,
		Condition:          res.Condition,
		Seconds:            res.Seconds,
		ActualFStop:        res.ActualFStop,
		ReferenceFStop:     res.ReferenceFStop,
		OptimalPinhole:     exposure.OptimalPinhole(cs.FocalLength),
		FilterStops:        res.FilterStops,
		BracketStops:       res.BracketStops,
		ReciprocityApplied: res.ReciprocityApplied,
	}
	for _, step := range exposure.Bracket(cs) {
		resp.Ladder = append(resp.Ladder, exposureStep{
			BracketStops: step.BracketStops,
			Exposure:     step.Formatted,
			Seconds:      step.Seconds,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type viewfinderRequest struct {
	FilmFormat      *model.FilmFormat `json:"filmFormat,omitempty"`
	FilmOrientation *string           `json:"filmOrientation,omitempty"`
	Width           float64           `json:"width"`
	Height          float64           `json:"height"`
}

type viewfinderResponse struct {
	viewfinder.Frame
	FilmFormat      model.FilmFormat  `json:"filmFormat"`
	Effective       viewfinder.Size   `json:"effective"`
	FilmOrientation model.Orientation `json:"filmOrientation"`
	AspectRatio     float64           `json:"aspectRatio"`
	Draw            bool              `json:"draw"`
}

// handleViewfinder places the framing rectangle for a display of the given
// size. Format and orientation default to the current settings.
func (s *Server) handleViewfinder(w http.ResponseWriter, r *http.Request) {
	var req viewfinderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cs := settings.Patch{
		FilmFormat:      req.FilmFormat,
		FilmOrientation: req.FilmOrientation,
	}.ApplyTo(s.store.Snapshot())
	if !cs.Orientation.Valid() {
		writeError(w, http.StatusBadRequest, "unknown film orientation "+string(cs.Orientation))
		return
	}

	frame := s.layout.Frame(req.Width, req.Height, cs.FilmFormat, cs.Orientation)
	writeJSON(w, http.StatusOK, viewfinderResponse{
		Frame:           frame,
		FilmFormat:      cs.FilmFormat,
		FilmOrientation: cs.Orientation,
		Effective:       viewfinder.EffectiveDimensions(cs.FilmFormat, cs.Orientation),
		AspectRatio:     viewfinder.AspectRatio(cs.FilmFormat, cs.Orientation),
		Draw:            !frame.Empty(),
	})
}
