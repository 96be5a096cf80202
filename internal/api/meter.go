package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Veraticus/pinhole/internal/model"
)

type brightnessResponse struct {
	ID                 string  `json:"id"`
	SuggestedCondition string  `json:"suggested_condition"`
	AvgLuminance       float64 `json:"avg_luminance"`
	EV                 float64 `json:"ev"`
	PixelCount         int     `json:"pixel_count"`
}

type readingResponse struct {
	CreatedAt          time.Time `json:"created_at"`
	ID                 string    `json:"id"`
	Source             string    `json:"source"`
	SuggestedCondition string    `json:"suggested_condition"`
	AvgLuminance       float64   `json:"avg_luminance"`
	EV                 float64   `json:"ev"`
	PixelCount         int       `json:"pixel_count"`
}

// handleAnalyzeBrightness measures an uploaded image (multipart field "file")
// and records the reading.
func (s *Server) handleAnalyzeBrightness(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload: "+err.Error())
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	reading, err := s.analyzer.Analyze(file)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	stored := reading.MeterReading(header.Filename)
	if err := s.backend.SaveReading(r.Context(), &stored); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info("Analyzed image",
		"source", header.Filename,
		"avg_luminance", reading.AvgLuminance,
		"ev", reading.EV)

	writeJSON(w, http.StatusOK, brightnessResponse{
		ID:                 stored.ID,
		AvgLuminance:       reading.AvgLuminance,
		EV:                 reading.EV,
		PixelCount:         reading.PixelCount,
		SuggestedCondition: reading.SuggestedCondition,
	})
}

func (s *Server) handleListReadings(w http.ResponseWriter, r *http.Request) {
	limit := s.readingsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	readings, err := s.backend.ListReadings(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := make([]readingResponse, 0, len(readings))
	for _, rd := range readings {
		out = append(out, toReadingResponse(rd))
	}
	writeJSON(w, http.StatusOK, out)
}

func toReadingResponse(r model.MeterReading) readingResponse {
	return readingResponse{
		ID:                 r.ID,
		Source:             r.Source,
		AvgLuminance:       r.AvgLuminance,
		EV:                 r.EV,
		PixelCount:         r.PixelCount,
		SuggestedCondition: r.SuggestedCondition,
		CreatedAt:          r.CreatedAt,
	}
}
