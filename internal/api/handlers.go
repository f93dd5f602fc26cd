package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/export"
)

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("failed to encode error response", "error", err)
	}
}

// respondServiceError maps service errors onto status codes.
func (s *Server) respondServiceError(w http.ResponseWriter, err error, action string) {
	var unsupported *export.UnsupportedFormatError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		s.respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.As(err, &unsupported):
		s.respondError(w, http.StatusBadRequest, "unsupported_format", err.Error())
	default:
		s.log.Error("failed to "+action, "error", err)
		s.respondError(w, http.StatusInternalServerError, "internal_error", "failed to "+action)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListFormats(w http.ResponseWriter, r *http.Request) {
	formats := make([]contract.FormatInfo, 0, len(s.exports.Formats()))
	for _, name := range s.exports.Formats() {
		info, err := s.exports.Describe(name)
		if err != nil {
			s.respondServiceError(w, err, "list formats")
			return
		}
		formats = append(formats, info)
	}
	s.respondJSON(w, http.StatusOK, formats)
}

// generateBody shadows the request's budget and days so an absent field can
// be told apart from an explicit zero or empty list.
type generateBody struct {
	contract.GenerateRequest
	BudgetHours *float64  `json:"budget_hours"`
	Days        *[]string `json:"days"`
}

// decodeGenerateRequest reads the body, filling budget, days and variant
// from config when the caller leaves them out. Explicit zero or empty values
// are passed through for the service to reject.
func (s *Server) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (contract.GenerateRequest, bool) {
	var body generateBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", fmt.Sprintf("invalid JSON body: %v", err))
		return contract.GenerateRequest{}, false
	}

	req := body.GenerateRequest
	if body.BudgetHours != nil {
		req.BudgetHours = *body.BudgetHours
	} else {
		req.BudgetHours = s.config.BudgetHours
	}
	if body.Days != nil {
		req.Days = *body.Days
	} else {
		req.Days = append([]string(nil), s.config.Days...)
	}
	if req.Variant == "" {
		req.Variant = string(s.config.Variant)
	}
	return req, true
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	plan, err := s.plans.Generate(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err, "generate plan")
		return
	}
	s.respondJSON(w, http.StatusOK, plan)
}

func (s *Server) handleExportPlan(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(export.FormatPDF)
	}
	info, err := s.exports.Describe(format)
	if err != nil {
		s.respondServiceError(w, err, "export plan")
		return
	}

	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}
	plan, err := s.plans.Generate(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err, "generate plan")
		return
	}

	// Rendered into memory first so a failure still gets a JSON error.
	var buf bytes.Buffer
	if err := s.exports.Export(r.Context(), &buf, plan, info.Name); err != nil {
		s.respondServiceError(w, err, "export plan")
		return
	}

	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="study_schedule.%s"`, info.Extension))
	w.Header().Set("X-Plan-ID", plan.PlanID)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Warn("failed to write export body", "error", err)
	}
}
