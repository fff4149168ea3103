package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bilal-bim/devbrain-ai/internal/export"
	"github.com/bilal-bim/devbrain-ai/internal/linear"
	"github.com/bilal-bim/devbrain-ai/internal/models"
	"github.com/bilal-bim/devbrain-ai/internal/parser"
)

const (
	notifyTimeout = 10 * time.Second
	maxUserIDLen  = 256
)

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"userId"`
		Idea   string `json:"idea"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeErrorString(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(payload.Idea) == "" {
		writeErrorString(w, http.StatusBadRequest, "Idea is required")
		return
	}
	if len(payload.UserID) > maxUserIDLen {
		writeErrorString(w, http.StatusBadRequest, fmt.Sprintf("userId must be at most %d characters", maxUserIDLen))
		return
	}

	start, err := s.generator.StartSession(r.Context(), payload.UserID, payload.Idea)
	if err != nil {
		log.Printf("❌ Failed to start session: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	reply, project := s.reply(r.Context(), start.Project)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"sessionId":     start.SessionID,
		"analysis":      start.Analysis,
		"nextPrompt":    start.NextPrompt,
		"aiResponse":    reply,
		"visualization": parser.Parse(reply),
		"project":       project.Summary(),
	})
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Response  string `json:"response"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeErrorString(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if payload.SessionID == "" || strings.TrimSpace(payload.Response) == "" {
		writeErrorString(w, http.StatusBadRequest, "sessionId and response are required")
		return
	}

	turn, err := s.generator.ProcessUserResponse(r.Context(), payload.SessionID, payload.Response)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	project := turn.Project
	if !turn.Advanced {
		// no stage ran, so the follow-up has not been recorded yet
		project, err = s.generator.AppendUser(r.Context(), payload.SessionID, payload.Response)
		if err != nil {
			writeLookupError(w, err)
			return
		}
	}

	reply, project := s.reply(r.Context(), project)

	if turn.Result.Visualization.Stage == models.StageContextGeneration && project.Status == models.StatusComplete {
		s.notifyComplete(project)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"sessionId":     project.ID,
		"result":        turn.Result,
		"nextPrompt":    turn.NextPrompt,
		"aiResponse":    reply,
		"visualization": parser.Parse(reply),
		"project":       project.Summary(),
	})
}

// reply asks the advisor to answer the latest turn and records the answer.
// A failure to record is logged; the reply is still returned.
func (s *Server) reply(ctx context.Context, project *models.Project) (string, *models.Project) {
	text, _ := s.advisor.StageReply(ctx, project)
	updated, err := s.generator.AppendAssistant(ctx, project.ID, text)
	if err != nil {
		log.Printf("⚠️ Failed to record reply for session %s: %v", project.ID, err)
		return text, project
	}
	return text, updated
}

func (s *Server) notifyComplete(project *models.Project) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyComplete(ctx, project); err != nil {
			log.Printf("❌ Completion notification failed: %v", err)
		}
	}()
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Format    string `json:"format"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeErrorString(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if payload.SessionID == "" || payload.Format == "" {
		writeErrorString(w, http.StatusBadRequest, "sessionId and format are required")
		return
	}

	project, err := s.generator.Session(r.Context(), payload.SessionID)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	bundle, err := export.Export(project, payload.Format)
	if errors.Is(err, export.ErrUnsupportedFormat) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		log.Printf("❌ Export failed for %s: %v", project.ID, err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"format":      bundle.Format,
		"data":        bundle.Data,
		"files":       bundle.Files,
		"downloadUrl": fmt.Sprintf("/api/mvi/download/%s/%s", project.ID, bundle.Format),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	format := r.PathValue("format")

	project, err := s.generator.Session(r.Context(), sessionID)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	bundle, err := export.Export(project, format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	name := fmt.Sprintf("%s-%s", project.ID, bundle.Format)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.zip"`, name))
	if err := export.Archive(bundle, name, w); err != nil {
		log.Printf("❌ Failed to stream archive %s: %v", name, err)
	}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	project, err := s.generator.Session(r.Context(), r.PathValue("sessionId"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"project": project,
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.generator.Delete(r.Context(), r.PathValue("sessionId")); err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if s.lister == nil {
		writeErrorString(w, http.StatusNotImplemented, "Session listing is not supported by this store")
		return
	}
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeErrorString(w, http.StatusBadRequest, "userId is required")
		return
	}

	sessions, err := s.lister.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to list sessions: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"sessions": sessions,
	})
}

func (s *Server) handleLinearSync(w http.ResponseWriter, r *http.Request) {
	if s.linear == nil {
		writeErrorString(w, http.StatusServiceUnavailable, "Linear is not configured")
		return
	}

	var payload struct {
		SessionID string `json:"sessionId"`
		TeamID    string `json:"teamId"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeErrorString(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if payload.SessionID == "" || payload.TeamID == "" {
		writeErrorString(w, http.StatusBadRequest, "sessionId and teamId are required")
		return
	}

	project, err := s.generator.Session(r.Context(), payload.SessionID)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	issues, err := linear.SyncFeatures(r.Context(), s.linear, project, payload.TeamID)
	if err != nil {
		log.Printf("❌ Linear sync failed for %s: %v", project.ID, err)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"success": false,
			"error":   err.Error(),
			"issues":  issues,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"issues":  issues,
	})
}

func (s *Server) handleLinearTeams(w http.ResponseWriter, r *http.Request) {
	if s.linear == nil {
		writeErrorString(w, http.StatusServiceUnavailable, "Linear is not configured")
		return
	}
	teams, err := s.linear.Teams(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"teams":   teams,
	})
}
