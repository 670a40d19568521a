package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/BTreeMap/SehatSahara/internal/assistant"
	"github.com/BTreeMap/SehatSahara/internal/compose"
	"github.com/BTreeMap/SehatSahara/internal/models"
	"github.com/go-chi/chi/v5"
)

// SummaryResponse is the body returned by /v1/prescriptions/summary.
type SummaryResponse struct {
	Language models.Language `json:"language"`
	Summary  string          `json:"summary"`
}

// MetaResponse describes what the engine supports.
type MetaResponse struct {
	Languages []models.Language `json:"languages"`
	Actions   []models.Action   `json:"actions"`
	Stats     assistant.Stats   `json:"stats"`
}

func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if !decodeJSON(w, r, "chatHandler", &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, "chatHandler", err)
		return
	}
	slog.Debug("Server.chatHandler: processing turn", "user_id", req.UserID)
	writeJSONResponse(w, http.StatusOK, s.engine.Process(r.Context(), req.Message, req.UserID))
}

func (s *Server) respondHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RespondRequest
	if !decodeJSON(w, r, "respondHandler", &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, "respondHandler", err)
		return
	}
	resp := s.engine.GenerateResponse(r.Context(), req.Message, req.NLU, req.UserContext, req.History, req.Strict)
	writeJSONResponse(w, http.StatusOK, resp)
}

// classifyHandler runs the configured classifier and then responds like
// /v1/respond. Strict output is the default.
func (s *Server) classifyHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ClassifyRequest
	if !decodeJSON(w, r, "classifyHandler", &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, "classifyHandler", err)
		return
	}
	result, err := s.classifier.Classify(r.Context(), req.Message)
	if err != nil {
		writeError(w, "classifyHandler", err)
		return
	}
	strict := true
	if req.Strict != nil {
		strict = *req.Strict
	}
	slog.Debug("Server.classifyHandler: classified", "intent", result.PrimaryIntent, "confidence", result.Confidence)
	writeJSONResponse(w, http.StatusOK, s.engine.GenerateResponse(r.Context(), req.Message, result, req.UserContext, nil, strict))
}

func (s *Server) progressHandler(w http.ResponseWriter, r *http.Request) {
	var uc models.UserContext
	if !decodeJSON(w, r, "progressHandler", &uc) {
		return
	}
	if uc.Language != "" && !uc.Language.IsSupported() {
		writeError(w, "progressHandler", models.ErrUnsupportedLanguage)
		return
	}
	report, err := s.engine.Progress(r.Context(), uc)
	if err != nil {
		writeError(w, "progressHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, report)
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SummaryRequest
	if !decodeJSON(w, r, "summaryHandler", &req) {
		return
	}
	lang := req.Language.OrDefault()
	writeJSONResponse(w, http.StatusOK, SummaryResponse{
		Language: lang,
		Summary:  compose.PrescriptionSummary(req.Prescription, lang),
	})
}

func (s *Server) metaHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.Success(MetaResponse{
		Languages: s.engine.SupportedLanguages(),
		Actions:   s.engine.SupportedActions(),
		Stats:     s.engine.Stats(),
	}))
}

func (s *Server) getConversationHandler(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(chi.URLParam(r, "userID"))
	state, err := s.engine.State(r.Context(), userID)
	if err != nil {
		writeError(w, "getConversationHandler", err)
		return
	}
	if state == nil {
		writeJSONResponse(w, http.StatusNotFound, models.Error("conversation not found"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(state))
}

func (s *Server) deleteConversationHandler(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(chi.URLParam(r, "userID"))
	if err := s.engine.Reset(r.Context(), userID); err != nil {
		writeError(w, "deleteConversationHandler", err)
		return
	}
	slog.Info("Server.deleteConversationHandler: conversation reset", "user_id", userID)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Conversation reset", nil))
}
